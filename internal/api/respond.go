package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"tetconnect/internal/middleware" // Context keys
	"tetconnect/internal/service"    // Service error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps a service error kind to its HTTP status
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindBadRequest:
		return http.StatusBadRequest
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a service failure. Unexpected failures are logged and
// answered with a generic message so storage detail never leaks.
func respondError(c *gin.Context, op string, err error) {
	kind := service.KindOf(err)
	status := statusFor(kind)
	if kind == service.KindUnexpected {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"op":         op,
			"error":      err.Error(),
		}).Error("Request failed unexpectedly")
		c.JSON(status, gin.H{"success": false, "error": "Something went wrong, please try again"})
		return
	}
	msg := err.Error()
	var se *service.Error
	if errors.As(err, &se) {
		msg = se.Msg // Keep wrapped detail out of client responses
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// badRequest writes a 400 with msg
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

// currentUser returns the authenticated user's ID set by the JWT middleware
func currentUser(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

// parseID reads a positive integer; anything else yields 0
func parseID(raw string) uint {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// pageParams reads page and page_size; the service applies the defaults
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return page, pageSize
}
