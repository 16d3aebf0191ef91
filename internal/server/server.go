package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hupe1980/neodb"
	"github.com/hupe1980/neodb/codec"
	"github.com/hupe1980/neodb/internal/cache"
	"github.com/hupe1980/neodb/internal/resource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures a Server.
type Config struct {
	CORSOrigins          []string
	MaxConcurrentQueries int64
	Debug                bool
	Codec                codec.Codec
	// CacheBytes bounds the cache of rendered /v1/approaches responses.
	// Zero disables caching.
	CacheBytes int64
	// Gatherer serves /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// Server serves a database over HTTP.
type Server struct {
	db     *neodb.DB
	logger *neodb.Logger
	codec  codec.Codec
	rc     *resource.Controller
	cache  cache.Cache
	engine *gin.Engine
}

// New builds the routes for db.
func New(db *neodb.DB, logger *neodb.Logger, cfg Config) *Server {
	if logger == nil {
		logger = neodb.NoopLogger()
	}
	if cfg.Codec == nil {
		cfg.Codec = codec.Default
	}
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		db:     db,
		logger: logger,
		codec:  cfg.Codec,
		rc: resource.NewController(resource.Config{
			MaxConcurrentQueries: cfg.MaxConcurrentQueries,
			MemoryLimitBytes:     cfg.CacheBytes,
		}),
		engine: gin.New(),
	}
	if cfg.CacheBytes > 0 {
		s.cache = cache.NewShardedLRU(cfg.CacheBytes, s.rc)
	}

	r := s.engine
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger))
	if len(cfg.CORSOrigins) > 0 {
		corsCfg := cors.Config{
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}
		if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
			corsCfg.AllowAllOrigins = true
		} else {
			corsCfg.AllowOrigins = cfg.CORSOrigins
		}
		r.Use(cors.New(corsCfg))
	}

	r.GET("/healthz", s.health)
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/v1")
	v1.GET("/stats", s.stats)
	v1.GET("/neos", s.neoByName)
	v1.GET("/neos/:designation", s.neoByDesignation)
	v1.GET("/approaches", QuerySlots(s.rc), s.approaches)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
