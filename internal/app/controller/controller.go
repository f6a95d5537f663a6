package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// parseQueryID parses an optional numeric query parameter.
func parseQueryID(c *gin.Context, name string) (uint, bool) {
	idStr := c.Query(name)
	if idStr == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
