package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wcag-reviewer/internal/observability"
	"wcag-reviewer/internal/review"
)

func (s *Server) routes() {
	r := s.engine

	observability.InitMetrics()

	r.Use(
		gin.CustomRecovery(func(c *gin.Context, rec any) {
			s.logger.Error("handler panic", "panic", rec, "request_id", c.GetString(requestIDKey))
			c.AbortWithStatusJSON(http.StatusInternalServerError, review.Result{Error: review.ServerError.Message()})
		}),
		requestID(),
		requestLogger(s.logger),
		cors(s.cfg.CORSOrigins),
	)

	r.GET("/", s.index)
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/sample", s.sample)
	api.POST("/prompt", rateLimit(s.limiter), s.prompt)
}
