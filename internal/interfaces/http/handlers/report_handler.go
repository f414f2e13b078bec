package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/interfaces/http/response"
)

type reportService interface {
	Dashboard(ctx context.Context) (*entities.DashboardStats, error)
	Reports(ctx context.Context) (*entities.Reports, error)
	UserSkills(ctx context.Context) ([]*entities.UserSkillsRow, error)
}

type ReportHandler struct {
	reports reportService
}

func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard returns totals and recent activity. An unreachable store renders
// zero totals flagged as degraded.
// GET /api/v1/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		if errors.Is(err, domainerrors.ErrStoreUnavailable) {
			response.Degraded(c, gin.H{"stats": &entities.DashboardStats{RecentActivity: []*entities.AuditLogEntry{}}})
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// GET /api/v1/reports
func (h *ReportHandler) Reports(c *gin.Context) {
	reports, err := h.reports.Reports(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reports)
}

// UserSkills lists each member's skills as "Skill (level)" text.
// GET /api/v1/reports/user-skills
func (h *ReportHandler) UserSkills(c *gin.Context) {
	items, err := h.reports.UserSkills(c.Request.Context())
	response.List(c, items, err)
}
