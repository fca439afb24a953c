package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rezonia/efactura/internal/logger"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// HeaderWarning carries assembly warnings on XML responses
const HeaderWarning = "X-Efactura-Warning"

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx := logger.ContextWithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(HeaderRequestID, id)

		start := time.Now()
		c.Next()

		reqLog := logger.WithRequestID(ctx, log)
		reqLog.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
