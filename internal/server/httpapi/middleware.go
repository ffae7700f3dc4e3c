package httpapi

import (
	"time"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server/auth"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	principalKey    = "aura.principal"
)

// requestLogger replaces gin's text logger with structured lines. The
// request id is echoed back in X-Request-Id and attached to the request
// context, so every line logged while serving the request carries it.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.ContextWith(c.Request.Context(), "request_id", id))

		c.Next()

		ctx := c.Request.Context()
		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if c.Writer.Status() >= 500 {
			s.logger.Error(ctx, "request failed", append(args, "errors", c.Errors.String())...)
			return
		}
		s.logger.Info(ctx, "request", args...)
	}
}

// requireAuth resolves the bearer token and stores the principal on the
// gin context and on the request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := s.gate.Authenticate(c.Request.Context(), c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			if cause := auth.Outage(err); cause != nil {
				abortWithError(c, cause)
				return
			}
			abortWithError(c, common.ErrorUnauthorized)
			return
		}

		c.Set(principalKey, p)
		ctx := logging.ContextWith(auth.WithPrincipal(c.Request.Context(), p), "subject", p.SubjectID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func principalFrom(c *gin.Context) models.Principal {
	v, _ := c.Get(principalKey)
	p, _ := v.(models.Principal)
	return p
}
