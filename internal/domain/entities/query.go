package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// Expert is a member holding a skill at or above a threshold
type Expert struct {
	MemberID    int64       `json:"memberId"`
	Name        string      `json:"name"`
	Role        null.String `json:"role"`
	Proficiency int         `json:"proficiency"`
}

// ProfileRow is one held skill of a member profile
type ProfileRow struct {
	MemberID         int64         `json:"memberId"`
	FullName         string        `json:"fullName"`
	Email            string        `json:"email"`
	PhoneNo          string        `json:"phoneNo"`
	RoleName         null.String   `json:"roleName"`
	SkillName        string        `json:"skillName"`
	Category         SkillCategory `json:"category"`
	ProficiencyLevel int           `json:"proficiencyLevel"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// DashboardStats holds registry totals and the latest audit activity
type DashboardStats struct {
	TotalMembers     int64            `json:"totalMembers"`
	TotalRoles       int64            `json:"totalRoles"`
	TotalSkills      int64            `json:"totalSkills"`
	TotalAssignments int64            `json:"totalAssignments"`
	RecentActivity   []*AuditLogEntry `json:"recentActivity"`
}

// CategoryStat aggregates skills per category
type CategoryStat struct {
	Category          SkillCategory `json:"category"`
	SkillCount        int64         `json:"skillCount"`
	MembersWithSkills int64         `json:"membersWithSkills"`
}

// TopSkill is a skill ranked by the number of holders
type TopSkill struct {
	SkillID        int64           `json:"skillId"`
	SkillName      string          `json:"skillName"`
	Category       SkillCategory   `json:"category"`
	MemberCount    int64           `json:"memberCount"`
	AvgProficiency decimal.Decimal `json:"avgProficiency"`
}

// MemberStat aggregates a member's skills
type MemberStat struct {
	MemberID       int64           `json:"memberId"`
	FullName       string          `json:"fullName"`
	RoleName       null.String     `json:"roleName"`
	SkillCount     int64           `json:"skillCount"`
	AvgProficiency decimal.Decimal `json:"avgProficiency"`
}

// RoleStat aggregates a role's requirements and holders
type RoleStat struct {
	RoleID         int64  `json:"roleId"`
	RoleName       string `json:"roleName"`
	RequiredSkills int64  `json:"requiredSkills"`
	CurrentMembers int64  `json:"currentMembers"`
}

// Reports bundles the registry reports
type Reports struct {
	Categories  []*CategoryStat `json:"categories"`
	TopSkills   []*TopSkill     `json:"topSkills"`
	MemberStats []*MemberStat   `json:"memberStats"`
	RoleStats   []*RoleStat     `json:"roleStats"`
}

// UserSkillsRow lists a member's skills as "Skill (level)" joined by ", "
type UserSkillsRow struct {
	MemberID int64       `json:"memberId"`
	FullName string      `json:"fullName"`
	Email    string      `json:"email"`
	RoleName null.String `json:"roleName"`
	Skills   string      `json:"skills"`
}
