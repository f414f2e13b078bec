package entities

import (
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// Member represents a team member
type Member struct {
	ID         int64       `json:"id"`
	FirstName  string      `json:"firstName"`
	MiddleName null.String `json:"middleName"`
	LastName   string      `json:"lastName"`
	Email      string      `json:"email"`
	PhoneNo    string      `json:"phoneNo"`
	RoleID     null.Int64  `json:"roleId"`
	RoleName   null.String `json:"roleName"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// FullName joins the non-empty name parts with a single space.
func FullName(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (m *Member) FullName() string {
	return FullName(m.FirstName, m.MiddleName.String, m.LastName)
}

func (m *Member) AuditTable() string { return AuditTableMembers }

func (m *Member) AuditRecordID() string { return strconv.FormatInt(m.ID, 10) }

func (m *Member) AuditSnapshot() AuditSnapshot {
	role := "None"
	if m.RoleName.Valid && m.RoleName.String != "" {
		role = m.RoleName.String
	}
	return AuditSnapshot{
		{Name: "Name", Value: m.FullName()},
		{Name: "Email", Value: m.Email},
		{Name: "Phone", Value: m.PhoneNo},
		{Name: "Role", Value: role},
	}
}

// MemberInput is the payload for creating or editing a member.
// A nil Skills slice on edit leaves the current skill set untouched.
type MemberInput struct {
	FirstName  string            `json:"firstName" validate:"required,max=100"`
	MiddleName string            `json:"middleName" validate:"max=100"`
	LastName   string            `json:"lastName" validate:"required,max=100"`
	Email      string            `json:"email" validate:"required,memberemail"`
	PhoneNo    string            `json:"phoneNo" validate:"required,phone10"`
	RoleID     *int64            `json:"roleId" validate:"required,gt=0"`
	Skills     []SkillLevelInput `json:"skills" validate:"omitempty,dive"`
}

// Normalize trims whitespace from the free-text fields.
func (in *MemberInput) Normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.MiddleName = strings.TrimSpace(in.MiddleName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.PhoneNo = strings.TrimSpace(in.PhoneNo)
}

// SkillLevelInput assigns a skill at a proficiency level; zero means the default level.
type SkillLevelInput struct {
	SkillID     int64 `json:"skillId" validate:"required,gt=0"`
	Proficiency int   `json:"proficiency" validate:"omitempty,min=1,max=5"`
}

// MemberSummary is a list row for members
type MemberSummary struct {
	ID         int64       `json:"id"`
	FullName   string      `json:"fullName"`
	Email      string      `json:"email"`
	PhoneNo    string      `json:"phoneNo"`
	RoleID     null.Int64  `json:"roleId"`
	RoleName   null.String `json:"roleName"`
	SkillCount int64       `json:"skillCount"`
}

// MemberDetail is the member view with skills, unassigned skills and eligible roles
type MemberDetail struct {
	Member          *Member         `json:"member"`
	Skills          []*MemberSkill  `json:"skills"`
	AvailableSkills []*Skill        `json:"availableSkills"`
	EligibleRoles   []*EligibleRole `json:"eligibleRoles"`
}
