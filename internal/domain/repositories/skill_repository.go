package repositories

import (
	"context"

	"skill-registry.backend/internal/domain/entities"
)

type SkillRepository interface {
	Create(ctx context.Context, skill *entities.Skill) error
	GetByID(ctx context.Context, id int64) (*entities.Skill, error)
	List(ctx context.Context) ([]*entities.SkillSummary, error)
	ListAll(ctx context.Context) ([]*entities.Skill, error)
	ListUnassigned(ctx context.Context, memberID int64) ([]*entities.Skill, error)
	ListNotRequiredByRole(ctx context.Context, roleID int64) ([]*entities.Skill, error)
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, skill *entities.Skill) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
