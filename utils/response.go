package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// Sentinel errors shared by services; controllers translate them through
// RespondServiceError so the error taxonomy maps to HTTP codes in one place.
var (
	ErrNotFound        = errors.New("not_found")
	ErrValidation      = errors.New("validation")
	ErrPolicyViolation = errors.New("policy_violation")
)

// RespondServiceError maps a service error onto the response envelope.
// Unknown errors are logged with context and reduced to a generic message.
func RespondServiceError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, ErrNotFound):
		JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation):
		JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPolicyViolation):
		JSONError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("%s: %v", context, err)
		JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
