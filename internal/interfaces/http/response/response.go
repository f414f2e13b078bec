package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "skill-registry.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response, mapping domain sentinels to their HTTP status
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr == nil {
		appErr = domainerrors.InternalServerError("unknown error")
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

// List sends a list payload. When the store is unreachable the list renders
// empty with "degraded": true instead of failing the page.
func List[T any](c *gin.Context, items []T, err error) {
	if err != nil {
		if errors.Is(err, domainerrors.ErrStoreUnavailable) {
			Degraded(c, gin.H{"items": []T{}})
			return
		}
		Error(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	Success(c, http.StatusOK, gin.H{"items": items})
}

// Degraded sends payload with status 200 and "degraded": true.
func Degraded(c *gin.Context, payload gin.H) {
	payload["degraded"] = true
	c.JSON(http.StatusOK, payload)
}
