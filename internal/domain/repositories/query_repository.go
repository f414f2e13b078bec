package repositories

import (
	"context"

	"skill-registry.backend/internal/domain/entities"
)

// QueryRepository runs the read-only cross-table queries behind search and reports
type QueryRepository interface {
	FindExperts(ctx context.Context, skillName string, minProficiency int) ([]*entities.Expert, error)
	GetMemberProfile(ctx context.Context, email string) ([]*entities.ProfileRow, error)
	CategoryStats(ctx context.Context) ([]*entities.CategoryStat, error)
	TopSkills(ctx context.Context, limit int) ([]*entities.TopSkill, error)
	MemberStats(ctx context.Context) ([]*entities.MemberStat, error)
	RoleStats(ctx context.Context) ([]*entities.RoleStat, error)
	UserSkills(ctx context.Context) ([]*entities.UserSkillsRow, error)
}
