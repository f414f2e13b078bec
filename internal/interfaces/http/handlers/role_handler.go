package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"skill-registry.backend/internal/domain/entities"
	"skill-registry.backend/internal/interfaces/http/response"
)

type roleService interface {
	ListRoles(ctx context.Context) ([]*entities.RoleSummary, error)
	ListAllRoles(ctx context.Context) ([]*entities.Role, error)
	GetRole(ctx context.Context, id int64) (*entities.RoleDetail, error)
	CreateRole(ctx context.Context, input *entities.RoleInput) (*entities.Role, error)
	UpdateRole(ctx context.Context, id int64, input *entities.RoleUpdateInput) (*entities.Role, error)
	DeleteRole(ctx context.Context, id int64) error
	AddRequirement(ctx context.Context, roleID int64, input *entities.RequirementLevel) (*entities.RoleRequirement, error)
	UpdateRequirement(ctx context.Context, roleID, skillID int64, input *entities.MinProficiencyInput) (*entities.RoleRequirement, error)
	RemoveRequirement(ctx context.Context, roleID, skillID int64) error
}

// RoleHandler handles role and role requirement endpoints
type RoleHandler struct {
	roles roleService
}

func NewRoleHandler(roles roleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// ListRoles lists roles with member and requirement counts.
// "?view=options" returns the bare role list.
// GET /api/v1/roles
func (h *RoleHandler) ListRoles(c *gin.Context) {
	if c.Query("view") == "options" {
		items, err := h.roles.ListAllRoles(c.Request.Context())
		response.List(c, items, err)
		return
	}
	items, err := h.roles.ListRoles(c.Request.Context())
	response.List(c, items, err)
}

// GET /api/v1/roles/:id
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := int64Param(c, "id", "role")
	if !ok {
		return
	}
	detail, err := h.roles.GetRole(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// POST /api/v1/roles
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var input entities.RoleInput
	if !bindJSON(c, &input) {
		return
	}
	role, err := h.roles.CreateRole(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": "Role created",
		"role":    role,
	})
}

// PUT /api/v1/roles/:id
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := int64Param(c, "id", "role")
	if !ok {
		return
	}
	var input entities.RoleUpdateInput
	if !bindJSON(c, &input) {
		return
	}
	role, err := h.roles.UpdateRole(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Role updated",
		"role":    role,
	})
}

// DeleteRole removes a role; its members are left without a role.
// DELETE /api/v1/roles/:id
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := int64Param(c, "id", "role")
	if !ok {
		return
	}
	if err := h.roles.DeleteRole(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Role deleted"})
}

// POST /api/v1/roles/:id/requirements
func (h *RoleHandler) AddRequirement(c *gin.Context) {
	id, ok := int64Param(c, "id", "role")
	if !ok {
		return
	}
	var input entities.RequirementLevel
	if !bindJSON(c, &input) {
		return
	}
	req, err := h.roles.AddRequirement(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"requirement": req})
}

// PUT /api/v1/roles/:id/requirements/:skillId
func (h *RoleHandler) UpdateRequirement(c *gin.Context) {
	id, ok := int64Param(c, "id", "role")
	if !ok {
		return
	}
	skillID, ok := int64Param(c, "skillId", "skill")
	if !ok {
		return
	}
	var input entities.MinProficiencyInput
	if !bindJSON(c, &input) {
		return
	}
	req, err := h.roles.UpdateRequirement(c.Request.Context(), id, skillID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requirement": req})
}

// DELETE /api/v1/roles/:id/requirements/:skillId
func (h *RoleHandler) RemoveRequirement(c *gin.Context) {
	id, ok := int64Param(c, "id", "role")
	if !ok {
		return
	}
	skillID, ok := int64Param(c, "skillId", "skill")
	if !ok {
		return
	}
	if err := h.roles.RemoveRequirement(c.Request.Context(), id, skillID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Requirement removed"})
}
