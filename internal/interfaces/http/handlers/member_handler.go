package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"skill-registry.backend/internal/domain/entities"
	"skill-registry.backend/internal/interfaces/http/response"
)

type memberService interface {
	ListMembers(ctx context.Context) ([]*entities.MemberSummary, error)
	GetMember(ctx context.Context, id int64) (*entities.MemberDetail, error)
	CreateMember(ctx context.Context, input *entities.MemberInput) (*entities.Member, error)
	UpdateMember(ctx context.Context, id int64, input *entities.MemberInput) (*entities.Member, error)
	DeleteMember(ctx context.Context, id int64) error
}

type memberSkillService interface {
	ListSkills(ctx context.Context, memberID int64) ([]*entities.MemberSkill, error)
	AssignSkill(ctx context.Context, memberID int64, input *entities.SkillLevelInput) (*entities.MemberSkill, bool, error)
	UpdateProficiency(ctx context.Context, memberID, skillID int64, input *entities.ProficiencyInput) (*entities.MemberSkill, error)
	RemoveSkill(ctx context.Context, memberID, skillID int64) error
}

// MemberHandler handles member and member skill endpoints
type MemberHandler struct {
	members memberService
	skills  memberSkillService
}

func NewMemberHandler(members memberService, skills memberSkillService) *MemberHandler {
	return &MemberHandler{members: members, skills: skills}
}

// ListMembers lists members with role and skill count.
// GET /api/v1/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	items, err := h.members.ListMembers(c.Request.Context())
	response.List(c, items, err)
}

// GetMember returns a member with skills, unassigned skills and eligible roles.
// GET /api/v1/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := int64Param(c, "id", "member")
	if !ok {
		return
	}
	detail, err := h.members.GetMember(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// CreateMember creates a member with optional initial skills.
// POST /api/v1/members
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var input entities.MemberInput
	if !bindJSON(c, &input) {
		return
	}
	member, err := h.members.CreateMember(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": "Member created",
		"member":  member,
	})
}

// UpdateMember edits a member; a "skills" list replaces the skill set.
// PUT /api/v1/members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := int64Param(c, "id", "member")
	if !ok {
		return
	}
	var input entities.MemberInput
	if !bindJSON(c, &input) {
		return
	}
	member, err := h.members.UpdateMember(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Member updated",
		"member":  member,
	})
}

// DeleteMember removes a member and its skills.
// DELETE /api/v1/members/:id
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, ok := int64Param(c, "id", "member")
	if !ok {
		return
	}
	if err := h.members.DeleteMember(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Member deleted"})
}

// ListSkills lists the skills a member holds.
// GET /api/v1/members/:id/skills
func (h *MemberHandler) ListSkills(c *gin.Context) {
	id, ok := int64Param(c, "id", "member")
	if !ok {
		return
	}
	items, err := h.skills.ListSkills(c.Request.Context(), id)
	response.List(c, items, err)
}

// AssignSkill adds a skill to a member or updates its level.
// POST /api/v1/members/:id/skills
func (h *MemberHandler) AssignSkill(c *gin.Context) {
	id, ok := int64Param(c, "id", "member")
	if !ok {
		return
	}
	var input entities.SkillLevelInput
	if !bindJSON(c, &input) {
		return
	}
	ms, created, err := h.skills.AssignSkill(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"memberSkill": ms})
}

// UpdateProficiency changes the level of a held skill.
// PUT /api/v1/members/:id/skills/:skillId
func (h *MemberHandler) UpdateProficiency(c *gin.Context) {
	id, ok := int64Param(c, "id", "member")
	if !ok {
		return
	}
	skillID, ok := int64Param(c, "skillId", "skill")
	if !ok {
		return
	}
	var input entities.ProficiencyInput
	if !bindJSON(c, &input) {
		return
	}
	ms, err := h.skills.UpdateProficiency(c.Request.Context(), id, skillID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"memberSkill": ms})
}

// RemoveSkill removes a held skill.
// DELETE /api/v1/members/:id/skills/:skillId
func (h *MemberHandler) RemoveSkill(c *gin.Context) {
	id, ok := int64Param(c, "id", "member")
	if !ok {
		return
	}
	skillID, ok := int64Param(c, "skillId", "skill")
	if !ok {
		return
	}
	if err := h.skills.RemoveSkill(c.Request.Context(), id, skillID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Skill removed"})
}
