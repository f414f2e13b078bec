package entities

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultProficiency is applied when a skill is assigned without a level
const DefaultProficiency = 3

// MemberSkill is a member's proficiency rating for one skill
type MemberSkill struct {
	MemberID         int64         `json:"memberId"`
	SkillID          int64         `json:"skillId"`
	SkillName        string        `json:"skillName,omitempty"`
	Category         SkillCategory `json:"category,omitempty"`
	ProficiencyLevel int           `json:"proficiencyLevel"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func (ms *MemberSkill) AuditTable() string { return AuditTableMemberSkills }

func (ms *MemberSkill) AuditRecordID() string {
	return fmt.Sprintf("%d-%d", ms.MemberID, ms.SkillID)
}

func (ms *MemberSkill) AuditSnapshot() AuditSnapshot {
	return AuditSnapshot{
		{Name: "Member", Value: strconv.FormatInt(ms.MemberID, 10)},
		{Name: "Skill", Value: strconv.FormatInt(ms.SkillID, 10)},
		{Name: "Proficiency", Value: strconv.Itoa(ms.ProficiencyLevel)},
	}
}

// ProficiencyInput sets a proficiency level on an existing assignment
type ProficiencyInput struct {
	Proficiency int `json:"proficiency" validate:"required,min=1,max=5"`
}
