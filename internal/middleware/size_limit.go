package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for boundary markers and part headers so a
// file of exactly the advertised size still fits.
var multipartOverhead = int64(8 * 1024)

// SizeLimit caps the request body at maxBodyBytes plus multipart overhead.
// Reads past the cap fail with http.MaxBytesError, which upload handlers
// answer with 413 request entity too large.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes+multipartOverhead)
		c.Next()
	}
}
