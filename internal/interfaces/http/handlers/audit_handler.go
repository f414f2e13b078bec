package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/interfaces/http/response"
	"skill-registry.backend/internal/usecases"
)

type auditService interface {
	ListAuditLogs(ctx context.Context, q usecases.AuditQuery) (*usecases.AuditPage, error)
	ListAuditFilters(ctx context.Context) (*entities.AuditFilters, error)
}

type AuditHandler struct {
	audit auditService
}

func NewAuditHandler(audit auditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAuditLogs pages the audit trail newest first.
// GET /api/v1/audit-logs?table=&operation=&page=&limit=
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 0)
	if !ok {
		return
	}
	result, err := h.audit.ListAuditLogs(c.Request.Context(), usecases.AuditQuery{
		Table:     c.Query("table"),
		Operation: c.Query("operation"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrStoreUnavailable) {
			response.Degraded(c, gin.H{"items": []*entities.AuditLogEntry{}})
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ListAuditFilters returns the tables and operations present in the trail.
// GET /api/v1/audit-logs/filters
func (h *AuditHandler) ListAuditFilters(c *gin.Context) {
	filters, err := h.audit.ListAuditFilters(c.Request.Context())
	if err != nil {
		if errors.Is(err, domainerrors.ErrStoreUnavailable) {
			response.Degraded(c, gin.H{"tables": []string{}, "operations": []string{}})
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, filters)
}
