package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/taskd/pkg/httputil"
	"github.com/platinummonkey/taskd/pkg/observability"
)

// UserHandlers handles user directory reads and self-service mutations.
// Any authenticated caller may read any profile; update and delete are
// restricted to the caller's own record.
type UserHandlers struct {
	storage Storage
	metrics *observability.Metrics
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(storage Storage, metrics *observability.Metrics) *UserHandlers {
	return &UserHandlers{storage: storage, metrics: metrics}
}

// RegisterRoutes registers user routes on the (already gated) subrouter
func (h *UserHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.list).Methods("GET")
	router.HandleFunc("/{id}", h.get).Methods("GET")
	router.HandleFunc("/{id}", h.update).Methods("PUT")
	router.HandleFunc("/{id}", h.delete).Methods("DELETE")
}

// list handles GET /api/users
func (h *UserHandlers) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.storage.ListUsers()
	if err != nil {
		httputil.WriteInternalError(w)
		return
	}

	profiles := make([]*Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Public())
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"users": profiles,
	})
}

// get handles GET /api/users/{id}
func (h *UserHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIntOrError(w, r, "id")
	if !ok {
		return
	}

	user, err := h.storage.GetUser(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"user": user.Public(),
	})
}

// update handles PUT /api/users/{id}. Self-service only. Empty-string
// fields are treated as absent, and an email change re-checks uniqueness
// against every record but the caller's own.
func (h *UserHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIntOrError(w, r, "id")
	if !ok {
		return
	}
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if id != caller {
		httputil.WriteForbidden(w, "You can only update your own profile")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	// Empty-string fields are treated as absent. Uniqueness for an
	// email change is decided inside UpdateUser, excluding this record.
	var update UserUpdate
	if req.Name != "" {
		update.Name = &req.Name
	}
	if req.Email != "" {
		update.Email = &req.Email
	}

	user, err := h.storage.UpdateUser(id, update)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, ErrEmailExists):
			httputil.WriteConflict(w, "Email already exists")
		default:
			httputil.WriteInternalError(w)
		}
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user.Public(),
	})
}

// delete handles DELETE /api/users/{id}. Self-service only; the store
// removes the account's todos with it.
func (h *UserHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIntOrError(w, r, "id")
	if !ok {
		return
	}
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	if id != caller {
		httputil.WriteForbidden(w, "You can only delete your own account")
		return
	}

	if _, err := h.storage.DeleteUser(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	// The cascade removes todos too, so both gauges move here
	syncRecordGauges(h.metrics, h.storage)

	httputil.WriteSuccess(w, map[string]interface{}{
		"message": "User deleted successfully",
	})
}
