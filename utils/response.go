package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{StatusCode: code, Error: http.StatusText(code), Message: message})
}

// AbortWithError writes the error body and stops the handler chain.
func AbortWithError(c *gin.Context, code int, message string) {
	JSONError(c, code, message)
	c.Abort()
}

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		JSONError(c, http.StatusBadRequest, "Validation failed ("+name+" must be a positive integer)")
		return 0, false
	}
	return uint(id), true
}
