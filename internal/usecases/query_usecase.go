package usecases

import (
	"context"
	"errors"
	"strings"

	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/domain/repositories"
)

// QueryUsecase serves expert search, member profiles and eligible roles
type QueryUsecase struct {
	queryRepo   repositories.QueryRepository
	memberRepo  repositories.MemberRepository
	eligibility *EligibilityChecker
	validator   *Validator
}

func NewQueryUsecase(
	queryRepo repositories.QueryRepository,
	memberRepo repositories.MemberRepository,
	eligibility *EligibilityChecker,
	validator *Validator,
) *QueryUsecase {
	return &QueryUsecase{
		queryRepo:   queryRepo,
		memberRepo:  memberRepo,
		eligibility: eligibility,
		validator:   validator,
	}
}

// FindExperts lists members holding skillName at minProficiency or above,
// best first. An unknown skill yields an empty list.
func (u *QueryUsecase) FindExperts(ctx context.Context, skillName string, minProficiency int) ([]*entities.Expert, error) {
	if err := u.validator.Proficiency("minProficiency", minProficiency); err != nil {
		return nil, err
	}
	skillName = strings.TrimSpace(skillName)
	if skillName == "" {
		return []*entities.Expert{}, nil
	}
	return u.queryRepo.FindExperts(ctx, skillName, minProficiency)
}

// GetMemberProfile returns one row per skill of the member with email.
// Unknown emails and members without skills yield an empty list.
func (u *QueryUsecase) GetMemberProfile(ctx context.Context, email string) ([]*entities.ProfileRow, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return []*entities.ProfileRow{}, nil
	}
	rows, err := u.queryRepo.GetMemberProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*entities.ProfileRow{}
	}
	return rows, nil
}

// GetEligibleRoles lists the roles whose every requirement the member meets
func (u *QueryUsecase) GetEligibleRoles(ctx context.Context, memberID int64) ([]*entities.EligibleRole, error) {
	if _, err := u.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("member not found")
		}
		return nil, err
	}
	return u.eligibility.EligibleRoles(ctx, memberID)
}
