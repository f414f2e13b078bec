package repositories

import (
	"context"

	"skill-registry.backend/internal/domain/entities"
)

type MemberSkillRepository interface {
	Get(ctx context.Context, memberID, skillID int64) (*entities.MemberSkill, error)
	// ListByMember returns the member's skills with skill name and category
	ListByMember(ctx context.Context, memberID int64) ([]*entities.MemberSkill, error)
	ListBySkill(ctx context.Context, skillID int64) ([]*entities.MemberSkill, error)
	// ListHolders returns members holding the skill, highest proficiency first
	ListHolders(ctx context.Context, skillID int64) ([]*entities.SkillHolder, error)
	Create(ctx context.Context, ms *entities.MemberSkill) error
	UpdateProficiency(ctx context.Context, ms *entities.MemberSkill) error
	Delete(ctx context.Context, memberID, skillID int64) error
	Count(ctx context.Context) (int64, error)
}
