package middleware

import (
	"net/http"      // HTTP status codes
	"runtime/debug" // Stack traces

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Recovery turns a panic into a 500 and logs it with the request ID
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithFields(logrus.Fields{
					"request_id": c.GetString(RequestIDKey),
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"panic":      rec,
					"stack":      string(debug.Stack()),
				}).Error("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong, please try again"})
			}
		}()
		c.Next()
	}
}
