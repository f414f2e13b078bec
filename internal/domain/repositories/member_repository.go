package repositories

import (
	"context"

	"skill-registry.backend/internal/domain/entities"
)

type MemberRepository interface {
	Create(ctx context.Context, member *entities.Member) error
	// GetByID returns the member with its role name resolved
	GetByID(ctx context.Context, id int64) (*entities.Member, error)
	GetByEmail(ctx context.Context, email string) (*entities.Member, error)
	List(ctx context.Context) ([]*entities.MemberSummary, error)
	ListByRole(ctx context.Context, roleID int64) ([]*entities.Member, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	PhoneTaken(ctx context.Context, phone string, excludeID int64) (bool, error)
	Update(ctx context.Context, member *entities.Member) error
	ClearRole(ctx context.Context, roleID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
