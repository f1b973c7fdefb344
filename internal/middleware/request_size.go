package middleware

import (
	"net/http"

	"github.com/MohdOwais22/subaku-backend/internal/logger"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultMaxRequestSize leaves room for several base64 product images in one body.
const DefaultMaxRequestSize = 50 << 20

// RequestSizeLimitMiddleware rejects declared oversize bodies up front and caps
// chunked ones while they are read.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			logger.WithRequestID(GetRequestID(c)).Warn("Request body too large",
				zap.String("path", c.Request.URL.Path),
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("limit", maxSize),
			)
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
