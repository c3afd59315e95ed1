package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/taskd/pkg/auth"
	"github.com/platinummonkey/taskd/pkg/httputil"
	"github.com/platinummonkey/taskd/pkg/middleware"
	"github.com/platinummonkey/taskd/pkg/observability"
)

// AuthHandlers handles registration, login, and identity introspection
type AuthHandlers struct {
	storage Storage
	hasher  *auth.PasswordHasher
	tokens  *auth.TokenManager
	metrics *observability.Metrics
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(storage Storage, hasher *auth.PasswordHasher, tokens *auth.TokenManager, metrics *observability.Metrics) *AuthHandlers {
	return &AuthHandlers{
		storage: storage,
		hasher:  hasher,
		tokens:  tokens,
		metrics: metrics,
	}
}

// RegisterRoutes registers authentication routes. Register and login
// are public; /auth/me verifies the token in the handler itself because
// its status contract differs from the gate's (any token failure is
// 401 here, never 403).
func (h *AuthHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.register).Methods("POST")
	router.HandleFunc("/auth/login", h.login).Methods("POST")
	router.HandleFunc("/auth/me", h.me).Methods("GET")
}

// register handles POST /api/auth/register
func (h *AuthHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		httputil.WriteBadRequest(w, "Email, password, and name are required")
		return
	}

	// The hash is computed before touching the store; uniqueness is
	// decided by CreateUser itself, atomically with the insert, so
	// concurrent registrations of one address yield exactly one record.
	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		httputil.WriteInternalError(w)
		return
	}

	user := &User{
		Email:        req.Email,
		PasswordHash: digest,
		Name:         req.Name,
	}
	if err := h.storage.CreateUser(user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			httputil.WriteConflict(w, "Email already exists")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	if h.metrics != nil {
		h.metrics.RegistrationsTotal.Inc()
	}
	syncRecordGauges(h.metrics, h.storage)

	httputil.WriteCreated(w, map[string]interface{}{
		"message": "User created successfully",
		"user":    user.Public(),
	})
}

// login handles POST /api/auth/login
func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "Email and password are required")
		return
	}

	// Unknown email and wrong password produce the same response, so the
	// endpoint cannot be used to probe which addresses are registered.
	user, err := h.storage.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.countLogin("failure")
			httputil.WriteUnauthorized(w, "Invalid email or password")
			return
		}
		httputil.WriteInternalError(w)
		return
	}

	ok, err := h.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		httputil.WriteInternalError(w)
		return
	}
	if !ok {
		h.countLogin("failure")
		httputil.WriteUnauthorized(w, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		httputil.WriteInternalError(w)
		return
	}

	h.countLogin("success")
	httputil.WriteSuccess(w, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// me handles GET /api/auth/me. Missing and unverifiable tokens are
// both 401 on this route; 404 means the token outlived its account.
func (h *AuthHandlers) me(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		httputil.WriteUnauthorized(w, "Invalid or expired token")
		return
	}

	user, err := h.storage.GetUser(claims.UserID)
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

func (h *AuthHandlers) countLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
