package server

import (
	"fmt"
	"net/http"
	"time"

	"cooler-emporium/internal/config"
	custommiddleware "cooler-emporium/internal/middleware"
	"cooler-emporium/internal/service"
	"cooler-emporium/internal/storage"
	"cooler-emporium/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	store  storage.Store
	redis  *redis.Client
}

// NewServer wires the catalog and auth services onto the HTTP surface. The
// redis client may be nil, which disables login rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, catalog *service.CatalogService, auth *service.AuthService, store storage.Store, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Session middleware for the admin surface
	sessionMiddleware := custommiddleware.SessionMiddleware(auth, logger)

	// Login rate limiter, only when redis is configured
	var loginLimiter func(http.Handler) http.Handler
	if redisClient != nil && cfg.Admin.LoginRateLimit > 0 {
		loginLimiter = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.Admin.LoginRateLimit,
			Window:            time.Minute,
			KeyPrefix:         "login",
		}, logger)
	}

	// Register routes
	transport.NewCatalogHandler(catalog, logger).RegisterRoutes(router)
	transport.NewAuthHandler(auth, logger).RegisterRoutes(router, loginLimiter, sessionMiddleware)
	transport.NewAdminHandler(catalog, logger).RegisterRoutes(router, sessionMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		store:  store,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("Failed to close storage backend", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
