package api

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/taskd/pkg/auth"
	"github.com/platinummonkey/taskd/pkg/httputil"
	"github.com/platinummonkey/taskd/pkg/middleware"
	"github.com/platinummonkey/taskd/pkg/observability"
)

// Options configures optional server collaborators. Zero values get
// sensible defaults from NewServer.
type Options struct {
	Hasher       *auth.PasswordHasher
	Tokens       *auth.TokenManager
	Logger       *observability.Logger
	Metrics      *observability.Metrics
	CORSOrigins  []string
	Debug        bool
	MaxBodyBytes int64
}

// defaultMaxBodyBytes caps request bodies at 1 MiB
const defaultMaxBodyBytes = 1 << 20

// Server represents the API server
type Server struct {
	storage Storage
	router  *mux.Router
	handler http.Handler
	logger  *observability.Logger
	metrics *observability.Metrics

	authHandlers *AuthHandlers
	todoHandlers *TodoHandlers
	userHandlers *UserHandlers
}

// NewServer creates the API server with all routes registered
func NewServer(storage Storage, opts Options) *Server {
	if opts.Hasher == nil {
		opts.Hasher = auth.NewPasswordHasher(auth.DefaultBcryptCost)
	}
	if opts.Tokens == nil {
		opts.Tokens = auth.NewTokenManager("", 0)
	}
	if opts.Logger == nil {
		opts.Logger = observability.NewLogger(observability.InfoLevel, os.Stdout)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	s := &Server{
		storage: storage,
		router:  mux.NewRouter(),
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}

	s.authHandlers = NewAuthHandlers(storage, opts.Hasher, opts.Tokens, opts.Metrics)
	s.todoHandlers = NewTodoHandlers(storage, opts.Metrics)
	s.userHandlers = NewUserHandlers(storage, opts.Metrics)

	gate := middleware.NewAuth(opts.Tokens, opts.Metrics)
	s.setupRoutes(gate)

	// Attached inside the router so mux.CurrentRoute can resolve the
	// route template for the path label.
	if opts.Metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(opts.Metrics))
	}

	s.handler = httputil.Chain(
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(opts.Logger),
		httputil.RecoveryMiddleware(opts.Logger, opts.Debug),
		httputil.CORSMiddleware(opts.CORSOrigins),
		httputil.MaxBytesMiddleware(opts.MaxBodyBytes),
	)(s.router)

	return s
}

// setupRoutes configures all the API routes. Registration and login are
// the only unauthenticated endpoints; everything else sits behind the
// auth gate.
func (s *Server) setupRoutes(gate *middleware.Auth) {
	api := s.router.PathPrefix("/api").Subrouter()

	s.authHandlers.RegisterRoutes(api)

	todos := api.PathPrefix("/todos").Subrouter()
	todos.Use(gate.Handler)
	s.todoHandlers.RegisterRoutes(todos)

	users := api.PathPrefix("/users").Subrouter()
	users.Use(gate.Handler)
	s.userHandlers.RegisterRoutes(users)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// syncRecordGauges refreshes the user/todo record gauges after any
// mutation that changes record counts. metrics may be nil.
func syncRecordGauges(metrics *observability.Metrics, storage Storage) {
	if metrics == nil {
		return
	}
	users, todos := storage.Counts()
	metrics.UsersTotal.Set(float64(users))
	metrics.TodosTotal.Set(float64(todos))
}
