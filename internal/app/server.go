package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wcag-reviewer/internal/config"
	"wcag-reviewer/internal/observability"
	"wcag-reviewer/internal/ratelimit"
	"wcag-reviewer/internal/review"
)

type Server struct {
	cfg     *config.Config
	logger  *observability.Logger
	review  *review.Service
	limiter *ratelimit.Limiter
	engine  *gin.Engine
	http    *http.Server
}

func NewServer(
	cfg *config.Config,
	logger *observability.Logger,
	svc *review.Service,
	limiter *ratelimit.Limiter,
) *Server {

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		review:  svc,
		limiter: limiter,
		engine:  gin.New(),
	}

	s.routes()

	// the model call alone may take the whole profile timeout
	writeTimeout := 20 * time.Second
	if t := svc.Profile().Timeout + 5*time.Second; t > writeTimeout {
		writeTimeout = t
	}

	s.http = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown failed", "err", err)
		}
	}()

	s.logger.Info("starting server",
		"port", s.cfg.Port,
		"env", s.cfg.Env,
		"provider", s.cfg.AIProvider,
		"profile", s.review.Profile().Name,
		"segmenter", s.cfg.Segmenter,
	)

	if err := s.http.ListenAndServe(); err != nil &&
		err != http.ErrServerClosed {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
