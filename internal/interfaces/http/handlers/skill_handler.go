package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"skill-registry.backend/internal/domain/entities"
	"skill-registry.backend/internal/interfaces/http/response"
)

type skillService interface {
	ListSkills(ctx context.Context) ([]*entities.SkillSummary, error)
	ListAllSkills(ctx context.Context) ([]*entities.Skill, error)
	GetSkill(ctx context.Context, id int64) (*entities.SkillDetail, error)
	CreateSkill(ctx context.Context, input *entities.SkillInput) (*entities.Skill, error)
	UpdateSkill(ctx context.Context, id int64, input *entities.SkillUpdateInput) (*entities.Skill, error)
	DeleteSkill(ctx context.Context, id int64) error
}

type SkillHandler struct {
	skills skillService
}

func NewSkillHandler(skills skillService) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// ListSkills lists skills with holder count and average proficiency.
// "?view=options" returns the bare catalog for pickers.
// GET /api/v1/skills
func (h *SkillHandler) ListSkills(c *gin.Context) {
	if c.Query("view") == "options" {
		items, err := h.skills.ListAllSkills(c.Request.Context())
		response.List(c, items, err)
		return
	}
	items, err := h.skills.ListSkills(c.Request.Context())
	response.List(c, items, err)
}

// GET /api/v1/skills/:id
func (h *SkillHandler) GetSkill(c *gin.Context) {
	id, ok := int64Param(c, "id", "skill")
	if !ok {
		return
	}
	detail, err := h.skills.GetSkill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// POST /api/v1/skills
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var input entities.SkillInput
	if !bindJSON(c, &input) {
		return
	}
	skill, err := h.skills.CreateSkill(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": "Skill created",
		"skill":   skill,
	})
}

// PUT /api/v1/skills/:id
func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	id, ok := int64Param(c, "id", "skill")
	if !ok {
		return
	}
	var input entities.SkillUpdateInput
	if !bindJSON(c, &input) {
		return
	}
	skill, err := h.skills.UpdateSkill(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Skill updated",
		"skill":   skill,
	})
}

// DELETE /api/v1/skills/:id
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id, ok := int64Param(c, "id", "skill")
	if !ok {
		return
	}
	if err := h.skills.DeleteSkill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Skill deleted"})
}
