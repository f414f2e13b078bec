package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/domain/repositories"
	"skill-registry.backend/pkg/logger"
	"skill-registry.backend/pkg/metrics"
)

// EligibilityChecker evaluates role requirements against a member's skills.
type EligibilityChecker struct {
	roleRepo        repositories.RoleRepository
	requirementRepo repositories.RoleRequirementRepository
	memberSkillRepo repositories.MemberSkillRepository
	metrics         *metrics.RegistryMetrics
}

func NewEligibilityChecker(
	roleRepo repositories.RoleRepository,
	requirementRepo repositories.RoleRequirementRepository,
	memberSkillRepo repositories.MemberSkillRepository,
	m *metrics.RegistryMetrics,
) *EligibilityChecker {
	return &EligibilityChecker{
		roleRepo:        roleRepo,
		requirementRepo: requirementRepo,
		memberSkillRepo: memberSkillRepo,
		metrics:         m,
	}
}

// Unmet returns the requirements of roleID the member falls short of.
func (e *EligibilityChecker) Unmet(ctx context.Context, memberID, roleID int64) ([]entities.UnmetRequirement, error) {
	reqs, err := e.requirementRepo.ListByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, nil
	}
	levels, err := e.levels(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return unmetRequirements(reqs, levels), nil
}

// Ensure fails with ErrRoleIneligible unless the member meets every requirement
// of roleID. Call it inside the mutating transaction, after skill changes.
func (e *EligibilityChecker) Ensure(ctx context.Context, memberID, roleID int64) error {
	unmet, err := e.Unmet(ctx, memberID, roleID)
	if err != nil {
		return err
	}
	if len(unmet) == 0 {
		return nil
	}

	role, err := e.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	parts := make([]string, 0, len(unmet))
	for _, u := range unmet {
		parts = append(parts, fmt.Sprintf("%s (requires %d, has %d)", u.SkillName, u.Required, u.Actual))
	}
	logger.Info(ctx, "Role assignment rejected",
		zap.Int64("member_id", memberID),
		zap.String("role", role.Name),
		zap.Int("unmet", len(unmet)),
	)
	e.metrics.IncIneligible(role.Name)
	return domainerrors.RoleIneligible(fmt.Sprintf("member does not meet the requirements of role %q: %s", role.Name, strings.Join(parts, ", ")))
}

// EligibleRoles lists every role whose requirements the member meets, by name.
func (e *EligibilityChecker) EligibleRoles(ctx context.Context, memberID int64) ([]*entities.EligibleRole, error) {
	roles, err := e.roleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	reqs, err := e.requirementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	levels, err := e.levels(ctx, memberID)
	if err != nil {
		return nil, err
	}

	byRole := make(map[int64][]*entities.RoleRequirement)
	for _, r := range reqs {
		byRole[r.RoleID] = append(byRole[r.RoleID], r)
	}

	eligible := make([]*entities.EligibleRole, 0, len(roles))
	for _, role := range roles {
		if len(unmetRequirements(byRole[role.ID], levels)) == 0 {
			eligible = append(eligible, &entities.EligibleRole{RoleID: role.ID, RoleName: role.Name})
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].RoleName < eligible[j].RoleName
	})
	return eligible, nil
}

func (e *EligibilityChecker) levels(ctx context.Context, memberID int64) (map[int64]int, error) {
	skills, err := e.memberSkillRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	levels := make(map[int64]int, len(skills))
	for _, s := range skills {
		levels[s.SkillID] = s.ProficiencyLevel
	}
	return levels, nil
}

func unmetRequirements(reqs []*entities.RoleRequirement, levels map[int64]int) []entities.UnmetRequirement {
	var unmet []entities.UnmetRequirement
	for _, r := range reqs {
		if actual := levels[r.SkillID]; actual < r.MinProficiency {
			unmet = append(unmet, entities.UnmetRequirement{
				SkillID:   r.SkillID,
				SkillName: r.SkillName,
				Required:  r.MinProficiency,
				Actual:    actual,
			})
		}
	}
	return unmet
}
