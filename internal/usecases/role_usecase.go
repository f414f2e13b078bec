package usecases

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/domain/repositories"
	"skill-registry.backend/pkg/logger"
	"skill-registry.backend/pkg/metrics"
)

// RoleUsecase handles roles and their skill requirements
type RoleUsecase struct {
	uow             repositories.UnitOfWork
	roleRepo        repositories.RoleRepository
	requirementRepo repositories.RoleRequirementRepository
	skillRepo       repositories.SkillRepository
	memberRepo      repositories.MemberRepository
	audit           *AuditTrail
	validator       *Validator
	metrics         *metrics.RegistryMetrics
}

func NewRoleUsecase(
	uow repositories.UnitOfWork,
	roleRepo repositories.RoleRepository,
	requirementRepo repositories.RoleRequirementRepository,
	skillRepo repositories.SkillRepository,
	memberRepo repositories.MemberRepository,
	audit *AuditTrail,
	validator *Validator,
	m *metrics.RegistryMetrics,
) *RoleUsecase {
	return &RoleUsecase{
		uow:             uow,
		roleRepo:        roleRepo,
		requirementRepo: requirementRepo,
		skillRepo:       skillRepo,
		memberRepo:      memberRepo,
		audit:           audit,
		validator:       validator,
		metrics:         m,
	}
}

// CreateRole inserts a role with its initial skill requirements
func (u *RoleUsecase) CreateRole(ctx context.Context, input *entities.RoleInput) (*entities.Role, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("request body is required")
	}
	input.Normalize()
	if err := u.validator.Struct(input); err != nil {
		return nil, err
	}
	if err := uniqueIDs("requirements", levelIDs(input.Requirements)); err != nil {
		return nil, err
	}

	role := &entities.Role{Name: input.Name, Description: input.Description}
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.checkName(txCtx, input.Name, 0); err != nil {
			return err
		}
		if err := u.roleRepo.Create(txCtx, role); err != nil {
			return uniquenessConflict(err, "role name already exists")
		}
		return u.side(role.ID).add(txCtx, input.Requirements)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.IncMutation("role", "create")
	logger.Info(ctx, "Role created", zap.Int64("role_id", role.ID), zap.String("name", role.Name))
	return role, nil
}

// UpdateRole renames or redescribes a role and applies a requirement diff.
// Members already holding the role are not re-evaluated.
func (u *RoleUsecase) UpdateRole(ctx context.Context, id int64, input *entities.RoleUpdateInput) (*entities.Role, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("request body is required")
	}
	input.Normalize()
	if err := u.validator.Struct(input); err != nil {
		return nil, err
	}
	if err := validateChanges(u.validator, &input.Requirements); err != nil {
		return nil, err
	}

	var updated *entities.Role
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		current, err := u.getRole(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		if err := u.checkName(txCtx, input.Name, id); err != nil {
			return err
		}

		next := *current
		next.Name = input.Name
		next.Description = input.Description
		if err := u.roleRepo.Update(txCtx, &next); err != nil {
			return uniquenessConflict(err, "role name already exists")
		}
		updated = &next
		return u.side(id).apply(txCtx, input.Requirements)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.IncMutation("role", "update")
	logger.Info(ctx, "Role updated", zap.Int64("role_id", id))
	return updated, nil
}

// DeleteRole removes a role. Its members keep their data with no role, and
// each of them gets a team_members UPDATE audit entry.
func (u *RoleUsecase) DeleteRole(ctx context.Context, id int64) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.getRole(u.uow.WithLock(txCtx), id); err != nil {
			return err
		}
		members, err := u.memberRepo.ListByRole(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := u.memberRepo.ClearRole(txCtx, id); err != nil {
			return err
		}
		for _, before := range members {
			after := *before
			after.RoleID = null.Int64{}
			after.RoleName = null.String{}
			if err := u.audit.RecordUpdate(txCtx, before, &after); err != nil {
				return err
			}
		}
		if err := u.requirementRepo.DeleteByRole(txCtx, id); err != nil {
			return err
		}
		return u.roleRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	u.metrics.IncMutation("role", "delete")
	logger.Info(ctx, "Role deleted", zap.Int64("role_id", id))
	return nil
}

// ListRoles returns every role with member count and number of required skills
func (u *RoleUsecase) ListRoles(ctx context.Context) ([]*entities.RoleSummary, error) {
	return u.roleRepo.List(ctx)
}

func (u *RoleUsecase) ListAllRoles(ctx context.Context) ([]*entities.Role, error) {
	return u.roleRepo.ListAll(ctx)
}

// GetRole returns the role with requirements, current members and the skills it does not require
func (u *RoleUsecase) GetRole(ctx context.Context, id int64) (*entities.RoleDetail, error) {
	role, err := u.getRole(ctx, id)
	if err != nil {
		return nil, err
	}
	reqs, err := u.requirementRepo.ListByRole(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := u.memberRepo.ListByRole(ctx, id)
	if err != nil {
		return nil, err
	}
	available, err := u.skillRepo.ListNotRequiredByRole(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.RoleDetail{
		Role:            role,
		Requirements:    reqs,
		Members:         members,
		AvailableSkills: available,
	}, nil
}

// AddRequirement makes the role require a skill at a minimum level
func (u *RoleUsecase) AddRequirement(ctx context.Context, roleID int64, input *entities.RequirementLevel) (*entities.RoleRequirement, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("request body is required")
	}
	if err := u.validator.Struct(input); err != nil {
		return nil, err
	}

	var req *entities.RoleRequirement
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.getRole(txCtx, roleID); err != nil {
			return err
		}
		if err := u.side(roleID).add(txCtx, []entities.RequirementLevel{*input}); err != nil {
			return err
		}
		var err error
		req, err = u.requirementRepo.Get(txCtx, roleID, input.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.metrics.IncMutation("role_requirement", "create")
	return req, nil
}

// UpdateRequirement changes the minimum level of an existing requirement
func (u *RoleUsecase) UpdateRequirement(ctx context.Context, roleID, skillID int64, input *entities.MinProficiencyInput) (*entities.RoleRequirement, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("request body is required")
	}
	if err := u.validator.Struct(input); err != nil {
		return nil, err
	}

	var req *entities.RoleRequirement
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		changes := entities.RequirementChanges{
			Update: []entities.RequirementLevel{{ID: skillID, MinProficiency: input.MinProficiency}},
		}
		if err := u.side(roleID).apply(txCtx, changes); err != nil {
			return err
		}
		var err error
		req, err = u.requirementRepo.Get(txCtx, roleID, skillID)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.metrics.IncMutation("role_requirement", "update")
	return req, nil
}

// RemoveRequirement drops a requirement. Members holding the role are not re-evaluated.
func (u *RoleUsecase) RemoveRequirement(ctx context.Context, roleID, skillID int64) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		return u.side(roleID).apply(txCtx, entities.RequirementChanges{Remove: []int64{skillID}})
	})
	if err != nil {
		return err
	}

	u.metrics.IncMutation("role_requirement", "delete")
	return nil
}

func (u *RoleUsecase) side(roleID int64) requirementSide {
	return requirementSide{
		requirementRepo: u.requirementRepo,
		pair: func(skillID int64) (int64, int64) {
			return roleID, skillID
		},
		exists: func(ctx context.Context, skillID int64) error {
			if _, err := u.skillRepo.GetByID(ctx, skillID); err != nil {
				if errors.Is(err, domainerrors.ErrNotFound) {
					return domainerrors.NotFound("skill not found")
				}
				return err
			}
			return nil
		},
	}
}

func (u *RoleUsecase) checkName(ctx context.Context, name string, excludeID int64) error {
	taken, err := u.roleRepo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domainerrors.Conflict("role name already exists")
	}
	return nil
}

func (u *RoleUsecase) getRole(ctx context.Context, id int64) (*entities.Role, error) {
	role, err := u.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("role not found")
		}
		return nil, err
	}
	return role, nil
}
