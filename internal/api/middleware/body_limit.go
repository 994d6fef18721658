package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chlyn/COSC369-Final-Project/pkg/response"
)

// BodyLimit caps request bodies at maxBytes. Declared oversize bodies are
// rejected up front; the rest fail while being read, see handler.bindJSON.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
