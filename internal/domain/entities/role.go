package entities

import "strings"

// Role represents an organizational role
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleRequirement is a minimum proficiency a role requires for one skill
type RoleRequirement struct {
	RoleID         int64         `json:"roleId"`
	RoleName       string        `json:"roleName,omitempty"`
	SkillID        int64         `json:"skillId"`
	SkillName      string        `json:"skillName,omitempty"`
	Category       SkillCategory `json:"category,omitempty"`
	MinProficiency int           `json:"minProficiency"`
}

// RequirementLevel pairs the opposite side of a requirement (skill for roles, role for skills)
// with a minimum proficiency.
type RequirementLevel struct {
	ID             int64 `json:"id" validate:"required,gt=0"`
	MinProficiency int   `json:"minProficiency" validate:"required,min=1,max=5"`
}

// RequirementChanges is a requirement diff applied in one transaction.
type RequirementChanges struct {
	Update []RequirementLevel `json:"update" validate:"omitempty,dive"`
	Add    []RequirementLevel `json:"add" validate:"omitempty,dive"`
	Remove []int64            `json:"remove" validate:"omitempty,dive,gt=0"`
}

func (c RequirementChanges) IsEmpty() bool {
	return len(c.Update) == 0 && len(c.Add) == 0 && len(c.Remove) == 0
}

// RoleInput is the payload for creating a role with initial requirements keyed by skill ID.
type RoleInput struct {
	Name         string             `json:"name" validate:"required,max=100"`
	Description  string             `json:"description" validate:"max=1000"`
	Requirements []RequirementLevel `json:"requirements" validate:"omitempty,dive"`
}

func (in *RoleInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

// RoleUpdateInput edits a role and applies a requirement diff keyed by skill ID.
type RoleUpdateInput struct {
	Name         string             `json:"name" validate:"required,max=100"`
	Description  string             `json:"description" validate:"max=1000"`
	Requirements RequirementChanges `json:"requirements"`
}

func (in *RoleUpdateInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

// RoleSummary is a list row for roles
type RoleSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	MemberCount    int64  `json:"memberCount"`
	RequiredSkills int64  `json:"requiredSkills"`
}

// RoleDetail is the role view with requirements, members and skills not yet required
type RoleDetail struct {
	Role            *Role              `json:"role"`
	Requirements    []*RoleRequirement `json:"requirements"`
	Members         []*Member          `json:"members"`
	AvailableSkills []*Skill           `json:"availableSkills"`
}

// EligibleRole is a role whose every requirement a member meets
type EligibleRole struct {
	RoleID   int64  `json:"roleId"`
	RoleName string `json:"roleName"`
}

// UnmetRequirement describes a requirement a member falls short of
type UnmetRequirement struct {
	SkillID   int64  `json:"skillId"`
	SkillName string `json:"skillName"`
	Required  int    `json:"required"`
	Actual    int    `json:"actual"`
}

// MinProficiencyInput changes the threshold of an existing requirement
type MinProficiencyInput struct {
	MinProficiency int `json:"minProficiency" validate:"required,min=1,max=5"`
}
