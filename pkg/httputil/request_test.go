package httputil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	var dest struct {
		Title string `json:"title"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"title":"t"}`))
	require.NoError(t, ParseJSON(r, &dest))
	assert.Equal(t, "t", dest.Title)

	r = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{not json`))
	assert.Error(t, ParseJSON(r, &dest))
}

func TestParseJSONOrError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{broken`))

	var dest map[string]interface{}
	ok := ParseJSONOrError(w, r, &dest)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid JSON")
}

func TestParsePathInt(t *testing.T) {
	router := mux.NewRouter()

	var got int
	var err error
	router.HandleFunc("/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, err = ParsePathInt(r, "id")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/todos/42", nil))
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/todos/abc", nil))
	assert.Error(t, err)
}

func TestParsePathIntOrError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ParsePathIntOrError(w, r, "id"); !ok {
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos/nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireNonEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	assert.True(t, RequireNonEmpty(w, "value", "title"))

	w = httptest.NewRecorder()
	assert.False(t, RequireNonEmpty(w, "", "title"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title is required")
}
