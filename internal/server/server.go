package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/aiqa-platform/user-service/internal/auth"
	"github.com/aiqa-platform/user-service/internal/config"
	"github.com/aiqa-platform/user-service/internal/http/handlers"
	"github.com/aiqa-platform/user-service/internal/middleware"
	"github.com/aiqa-platform/user-service/internal/service"
	"github.com/aiqa-platform/user-service/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up the auth components, middleware, and routes, and returns
// a ready server.
func New(cfg config.Config, store storage.UserStore) (*Server, error) {
	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewHasher(cfg.BcryptCost)
	users := service.NewUserService(store, hasher, codec)

	router := NewRouter(codec, store, users)
	handler := middleware.CORS(cfg.CORSOrigins)(middleware.Logging(router))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}, nil
}

// NewRouter builds the route table. Login and register stay public;
// everything else under /api/users requires a bound principal.
func NewRouter(codec *auth.TokenCodec, store storage.UserStore, users *service.UserService) *mux.Router {
	router := mux.NewRouter()
	handlers.NewHealthHandler(time.Now()).Register(router)

	userHandler := handlers.NewUserHandler(users)

	public := router.PathPrefix("/api/users").Subrouter()
	public.HandleFunc("/login", userHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", userHandler.Register).Methods(http.MethodPost)

	protected := router.PathPrefix("/api/users").Subrouter()
	protected.Use(middleware.Authenticate(codec, store), middleware.RequireAuth)
	protected.HandleFunc("/updatePassword", userHandler.UpdatePassword).Methods(http.MethodPost)
	protected.HandleFunc("/username/{username}", userHandler.GetByUsername).Methods(http.MethodGet)
	protected.HandleFunc("/{id:[0-9]+}", userHandler.GetByID).Methods(http.MethodGet)

	return router
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
