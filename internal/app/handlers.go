package app

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wcag-reviewer/internal/review"
)

//go:embed static/index.html
var indexHTML []byte

type promptRequest struct {
	Text string `json:"text"`
}

func (s *Server) prompt(c *gin.Context) {
	if limit := s.cfg.MaxInputBytes; limit > 0 {
		// leave room for JSON escaping; the exact limit is enforced on the text
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(limit)*2+1024)
	}

	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cause := review.ErrBadBody
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			cause = review.ErrTextTooLarge
		}
		s.logger.Warn("bad prompt body", "err", err, "request_id", c.GetString(requestIDKey))
		status, res := review.Failure(review.InvalidInputError(cause))
		c.JSON(status, res)
		return
	}

	res, err := s.review.Review(c.Request.Context(), req.Text)
	if err != nil {
		status, res := review.Failure(err)
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) sample(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"text": BadSample})
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
