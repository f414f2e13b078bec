package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/interfaces/http/response"
)

// int64Param parses a positive integer path parameter, writing a 400 on failure.
func int64Param(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, domainerrors.BadRequest("invalid "+label+" ID"))
		return 0, false
	}
	return id, true
}

// intQuery reads an optional integer query parameter.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(name+" must be an integer"))
		return 0, false
	}
	return v, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return false
	}
	return true
}
