package repositories

import (
	"context"

	"skill-registry.backend/internal/domain/entities"
)

type RoleRepository interface {
	Create(ctx context.Context, role *entities.Role) error
	GetByID(ctx context.Context, id int64) (*entities.Role, error)
	List(ctx context.Context) ([]*entities.RoleSummary, error)
	ListAll(ctx context.Context) ([]*entities.Role, error)
	ListNotRequiringSkill(ctx context.Context, skillID int64) ([]*entities.Role, error)
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, role *entities.Role) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// RoleRequirementRepository manages role_requirements rows
type RoleRequirementRepository interface {
	Get(ctx context.Context, roleID, skillID int64) (*entities.RoleRequirement, error)
	// ListByRole returns the role's requirements with skill name and category
	ListByRole(ctx context.Context, roleID int64) ([]*entities.RoleRequirement, error)
	// ListBySkill returns the requirements on a skill with role names
	ListBySkill(ctx context.Context, skillID int64) ([]*entities.RoleRequirement, error)
	ListAll(ctx context.Context) ([]*entities.RoleRequirement, error)
	Create(ctx context.Context, req *entities.RoleRequirement) error
	Update(ctx context.Context, req *entities.RoleRequirement) error
	Delete(ctx context.Context, roleID, skillID int64) error
	DeleteByRole(ctx context.Context, roleID int64) error
	DeleteBySkill(ctx context.Context, skillID int64) error
}
