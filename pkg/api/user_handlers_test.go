package api_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	e := newEnv(t)
	aliceToken, _ := twoUsers(e)

	w := e.do(http.MethodGet, "/api/users", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []map[string]interface{} `json:"users"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Users, 2)
	for _, user := range resp.Users {
		assert.Contains(t, user, "email")
		assert.NotContains(t, user, "password")
		assert.NotContains(t, user, "password_hash")
	}
}

func TestGetUser(t *testing.T) {
	e := newEnv(t)
	aliceToken, _ := twoUsers(e)

	t.Run("any authenticated caller may read any profile", func(t *testing.T) {
		w := e.do(http.MethodGet, "/api/users/2", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			User struct {
				ID    int    `json:"id"`
				Email string `json:"email"`
			} `json:"user"`
		}
		decode(t, w, &resp)
		assert.Equal(t, 2, resp.User.ID)
		assert.Equal(t, "b@x.com", resp.User.Email)
	})

	t.Run("absent id is 404", func(t *testing.T) {
		w := e.do(http.MethodGet, "/api/users/999", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("self update", func(t *testing.T) {
		e := newEnv(t)
		id := e.register("a@x.com", "p1", "A")
		token := e.login("a@x.com", "p1")

		w := e.do(http.MethodPut, "/api/users/"+strconv.Itoa(id), token, map[string]string{
			"name": "Renamed",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Message string `json:"message"`
			User    struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"user"`
		}
		decode(t, w, &resp)
		assert.Equal(t, "User updated successfully", resp.Message)
		assert.Equal(t, "Renamed", resp.User.Name)
		assert.Equal(t, "a@x.com", resp.User.Email, "empty email field is skipped")
	})

	t.Run("someone else's profile is 403", func(t *testing.T) {
		e := newEnv(t)
		aliceToken, _ := twoUsers(e)

		w := e.do(http.MethodPut, "/api/users/2", aliceToken, map[string]string{"name": "X"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "You can only update your own profile")
	})

	t.Run("email collision is 409", func(t *testing.T) {
		e := newEnv(t)
		aliceToken, _ := twoUsers(e)

		w := e.do(http.MethodPut, "/api/users/1", aliceToken, map[string]string{
			"email": "b@x.com",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Email already exists")
	})

	t.Run("keeping your own email is not a collision", func(t *testing.T) {
		e := newEnv(t)
		aliceToken, _ := twoUsers(e)

		w := e.do(http.MethodPut, "/api/users/1", aliceToken, map[string]string{
			"email": "a@x.com",
			"name":  "Still A",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("someone else's account is 403", func(t *testing.T) {
		e := newEnv(t)
		aliceToken, _ := twoUsers(e)

		w := e.do(http.MethodDelete, "/api/users/2", aliceToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "You can only delete your own account")
	})

	t.Run("self delete moves both record gauges", func(t *testing.T) {
		e, metrics := newMetricsEnv(t)
		aliceToken, _ := twoUsers(e)
		e.createTodo(aliceToken, "mine")

		require.Equal(t, float64(2), testutil.ToFloat64(metrics.UsersTotal))
		require.Equal(t, float64(1), testutil.ToFloat64(metrics.TodosTotal))

		w := e.do(http.MethodDelete, "/api/users/1", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.UsersTotal))
		assert.Equal(t, float64(0), testutil.ToFloat64(metrics.TodosTotal), "the cascade empties the todo gauge")
	})

	t.Run("self delete removes the account and its todos", func(t *testing.T) {
		e := newEnv(t)
		aliceToken, bobToken := twoUsers(e)
		e.createTodo(aliceToken, "mine")

		w := e.do(http.MethodDelete, "/api/users/1", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "User deleted successfully")

		// The profile is gone for other callers, and the orphaned todo
		// id no longer resolves.
		w = e.do(http.MethodGet, "/api/users/1", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = e.do(http.MethodGet, "/api/todos/1", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
