package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"skill-registry.backend/internal/domain/entities"
	"skill-registry.backend/internal/interfaces/http/response"
)

// DefaultExpertThreshold is used when minProficiency is omitted
const DefaultExpertThreshold = 3

type queryService interface {
	FindExperts(ctx context.Context, skillName string, minProficiency int) ([]*entities.Expert, error)
	GetMemberProfile(ctx context.Context, email string) ([]*entities.ProfileRow, error)
	GetEligibleRoles(ctx context.Context, memberID int64) ([]*entities.EligibleRole, error)
}

// QueryHandler serves the read-only registry queries
type QueryHandler struct {
	queries queryService
}

func NewQueryHandler(queries queryService) *QueryHandler {
	return &QueryHandler{queries: queries}
}

// FindExperts lists holders of a skill at or above a proficiency.
// GET /api/v1/experts?skill=&minProficiency=
func (h *QueryHandler) FindExperts(c *gin.Context) {
	minProficiency, ok := intQuery(c, "minProficiency", DefaultExpertThreshold)
	if !ok {
		return
	}
	items, err := h.queries.FindExperts(c.Request.Context(), strings.TrimSpace(c.Query("skill")), minProficiency)
	response.List(c, items, err)
}

// GetMemberProfile returns one row per skill of the member with that email.
// GET /api/v1/profiles/:email
func (h *QueryHandler) GetMemberProfile(c *gin.Context) {
	items, err := h.queries.GetMemberProfile(c.Request.Context(), strings.TrimSpace(c.Param("email")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetEligibleRoles lists the roles whose requirements the member meets.
// GET /api/v1/members/:id/eligible-roles
func (h *QueryHandler) GetEligibleRoles(c *gin.Context) {
	id, ok := int64Param(c, "id", "member")
	if !ok {
		return
	}
	items, err := h.queries.GetEligibleRoles(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}
