package entities

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SkillCategory represents the closed set of skill categories
type SkillCategory string

const (
	SkillCategoryTechnical  SkillCategory = "Technical"
	SkillCategoryClinical   SkillCategory = "Clinical"
	SkillCategorySoftSkill  SkillCategory = "Soft Skill"
	SkillCategoryRegulatory SkillCategory = "Regulatory"
)

// SkillCategories lists the accepted categories in display order
var SkillCategories = []SkillCategory{
	SkillCategoryTechnical,
	SkillCategoryClinical,
	SkillCategorySoftSkill,
	SkillCategoryRegulatory,
}

func (c SkillCategory) IsValid() bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Skill represents a catalog skill
type Skill struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
}

func (s *Skill) AuditTable() string { return AuditTableSkills }

func (s *Skill) AuditRecordID() string { return strconv.FormatInt(s.ID, 10) }

func (s *Skill) AuditSnapshot() AuditSnapshot {
	return AuditSnapshot{
		{Name: "Skill", Value: s.Name},
		{Name: "Category", Value: string(s.Category)},
	}
}

// SkillInput is the payload for creating a skill with its initial role requirements.
// Requirement IDs refer to roles.
type SkillInput struct {
	Name         string             `json:"name" validate:"required,max=100"`
	Category     string             `json:"category" validate:"required,skillcategory"`
	Requirements []RequirementLevel `json:"requirements" validate:"omitempty,dive"`
}

func (in *SkillInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
}

// SkillUpdateInput edits a skill and applies a requirement diff keyed by role ID.
type SkillUpdateInput struct {
	Name         string             `json:"name" validate:"required,max=100"`
	Category     string             `json:"category" validate:"required,skillcategory"`
	Requirements RequirementChanges `json:"requirements"`
}

func (in *SkillUpdateInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
}

// SkillSummary is a list row for skills
type SkillSummary struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Category       SkillCategory   `json:"category"`
	MemberCount    int64           `json:"memberCount"`
	AvgProficiency decimal.Decimal `json:"avgProficiency"`
}

// SkillHolder is a member holding a skill
type SkillHolder struct {
	MemberID    int64  `json:"memberId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Proficiency int    `json:"proficiency"`
}

// SkillDetail is the skill view with holders and roles requiring it
type SkillDetail struct {
	Skill      *Skill             `json:"skill"`
	Members    []*SkillHolder     `json:"members"`
	RequiredBy []*RoleRequirement `json:"requiredBy"`
	OtherRoles []*Role            `json:"otherRoles"`
}
