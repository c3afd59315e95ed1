package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/taskd/pkg/httputil"
	"github.com/platinummonkey/taskd/pkg/observability"
)

// TodoHandlers handles todo CRUD. Every route is behind the auth gate,
// and every record access goes through the ownership policy.
type TodoHandlers struct {
	storage Storage
	metrics *observability.Metrics
}

// NewTodoHandlers creates a new todo handlers instance
func NewTodoHandlers(storage Storage, metrics *observability.Metrics) *TodoHandlers {
	return &TodoHandlers{storage: storage, metrics: metrics}
}

// RegisterRoutes registers todo routes on the (already gated) subrouter
func (h *TodoHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("", h.list).Methods("GET")
	router.HandleFunc("", h.create).Methods("POST")
	router.HandleFunc("/{id}", h.get).Methods("GET")
	router.HandleFunc("/{id}", h.update).Methods("PUT")
	router.HandleFunc("/{id}", h.delete).Methods("DELETE")
}

// list handles GET /api/todos. Always scoped to the caller; there is no
// way to list another user's todos.
func (h *TodoHandlers) list(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	todos, err := h.storage.ListTodosByOwner(caller)
	if err != nil {
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"todos": todos,
	})
}

// get handles GET /api/todos/{id}
func (h *TodoHandlers) get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	todo, ok := ownedTodo(w, r, h.storage, caller)
	if !ok {
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"todo": todo,
	})
}

// create handles POST /api/todos. The owner is always the caller; any
// owner id in the request body is ignored.
func (h *TodoHandlers) create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Title, "Title") {
		return
	}

	todo := &Todo{
		OwnerID:     caller,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.storage.CreateTodo(todo); err != nil {
		httputil.WriteInternalError(w)
		return
	}

	if h.metrics != nil {
		h.metrics.TodosCreatedTotal.Inc()
	}
	syncRecordGauges(h.metrics, h.storage)

	httputil.WriteCreated(w, map[string]interface{}{
		"message": "Todo created successfully",
		"todo":    todo,
	})
}

// update handles PUT /api/todos/{id}. Ownership is decided before the
// body is validated, so a non-owner learns nothing about what a valid
// update would look like. Absent fields are left unchanged.
func (h *TodoHandlers) update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	todo, ok := ownedTodo(w, r, h.storage, caller)
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	updated, err := h.storage.UpdateTodo(todo.ID, TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		// The record can vanish between the ownership check and the
		// write (e.g. a concurrent account deletion cascading here).
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFound(w, "Todo not found")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"message": "Todo updated successfully",
		"todo":    updated,
	})
}

// delete handles DELETE /api/todos/{id}
func (h *TodoHandlers) delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	todo, ok := ownedTodo(w, r, h.storage, caller)
	if !ok {
		return
	}

	if _, err := h.storage.DeleteTodo(todo.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFound(w, "Todo not found")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	syncRecordGauges(h.metrics, h.storage)

	httputil.WriteSuccess(w, map[string]interface{}{
		"message": "Todo deleted successfully",
	})
}
