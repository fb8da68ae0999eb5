package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderdocs/backend/internal/interfaces/http/dto"
)

// DefaultMaxBodyBytes bounds webhook bodies. WooCommerce order
// payloads are small; anything past this is not a legitimate delivery.
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimit returns a middleware that rejects oversized request bodies
// and caps streaming reads at maxBytes.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
