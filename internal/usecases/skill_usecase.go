package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/domain/repositories"
	"skill-registry.backend/pkg/logger"
	"skill-registry.backend/pkg/metrics"
)

// SkillUsecase handles the skill catalog
type SkillUsecase struct {
	uow             repositories.UnitOfWork
	skillRepo       repositories.SkillRepository
	roleRepo        repositories.RoleRepository
	requirementRepo repositories.RoleRequirementRepository
	assignments     *skillAssignments
	audit           *AuditTrail
	validator       *Validator
	metrics         *metrics.RegistryMetrics
}

func NewSkillUsecase(
	uow repositories.UnitOfWork,
	skillRepo repositories.SkillRepository,
	roleRepo repositories.RoleRepository,
	requirementRepo repositories.RoleRequirementRepository,
	memberSkillRepo repositories.MemberSkillRepository,
	audit *AuditTrail,
	validator *Validator,
	m *metrics.RegistryMetrics,
) *SkillUsecase {
	return &SkillUsecase{
		uow:             uow,
		skillRepo:       skillRepo,
		roleRepo:        roleRepo,
		requirementRepo: requirementRepo,
		assignments: &skillAssignments{
			skillRepo:       skillRepo,
			memberSkillRepo: memberSkillRepo,
			audit:           audit,
		},
		audit:     audit,
		validator: validator,
		metrics:   m,
	}
}

// CreateSkill inserts a skill with the roles that should require it
func (u *SkillUsecase) CreateSkill(ctx context.Context, input *entities.SkillInput) (*entities.Skill, error) {
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

	skill := &entities.Skill{Name: input.Name, Category: entities.SkillCategory(input.Category)}
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.checkName(txCtx, input.Name, 0); err != nil {
			return err
		}
		if err := u.skillRepo.Create(txCtx, skill); err != nil {
			return uniquenessConflict(err, "skill name already exists")
		}
		if err := u.audit.RecordInsert(txCtx, skill); err != nil {
			return err
		}
		return u.side(skill.ID).add(txCtx, input.Requirements)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.IncMutation("skill", "create")
	logger.Info(ctx, "Skill created", zap.Int64("skill_id", skill.ID), zap.String("name", skill.Name))
	return skill, nil
}

// UpdateSkill renames or recategorizes a skill and applies a requirement diff
func (u *SkillUsecase) UpdateSkill(ctx context.Context, id int64, input *entities.SkillUpdateInput) (*entities.Skill, error) {
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

	var updated *entities.Skill
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		current, err := u.getSkill(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		if err := u.checkName(txCtx, input.Name, id); err != nil {
			return err
		}

		next := *current
		next.Name = input.Name
		next.Category = entities.SkillCategory(input.Category)
		if err := u.skillRepo.Update(txCtx, &next); err != nil {
			return uniquenessConflict(err, "skill name already exists")
		}
		if err := u.audit.RecordUpdate(txCtx, current, &next); err != nil {
			return err
		}
		updated = &next
		return u.side(id).apply(txCtx, input.Requirements)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.IncMutation("skill", "update")
	logger.Info(ctx, "Skill updated", zap.Int64("skill_id", id))
	return updated, nil
}

// DeleteSkill removes a skill together with its ratings and requirements
func (u *SkillUsecase) DeleteSkill(ctx context.Context, id int64) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		current, err := u.getSkill(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		held, err := u.assignments.memberSkillRepo.ListBySkill(txCtx, id)
		if err != nil {
			return err
		}
		for _, ms := range held {
			if err := u.assignments.remove(txCtx, ms); err != nil {
				return err
			}
		}
		if err := u.requirementRepo.DeleteBySkill(txCtx, id); err != nil {
			return err
		}
		if err := u.skillRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return u.audit.RecordDelete(txCtx, current)
	})
	if err != nil {
		return err
	}

	u.metrics.IncMutation("skill", "delete")
	logger.Info(ctx, "Skill deleted", zap.Int64("skill_id", id))
	return nil
}

// ListSkills returns every skill with holder count and average proficiency
func (u *SkillUsecase) ListSkills(ctx context.Context) ([]*entities.SkillSummary, error) {
	return u.skillRepo.List(ctx)
}

// ListAllSkills returns the plain catalog
func (u *SkillUsecase) ListAllSkills(ctx context.Context) ([]*entities.Skill, error) {
	return u.skillRepo.ListAll(ctx)
}

// GetSkill returns the skill with its holders, requiring roles and the remaining roles
func (u *SkillUsecase) GetSkill(ctx context.Context, id int64) (*entities.SkillDetail, error) {
	skill, err := u.getSkill(ctx, id)
	if err != nil {
		return nil, err
	}
	holders, err := u.assignments.memberSkillRepo.ListHolders(ctx, id)
	if err != nil {
		return nil, err
	}
	requiredBy, err := u.requirementRepo.ListBySkill(ctx, id)
	if err != nil {
		return nil, err
	}
	others, err := u.roleRepo.ListNotRequiringSkill(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.SkillDetail{
		Skill:      skill,
		Members:    holders,
		RequiredBy: requiredBy,
		OtherRoles: others,
	}, nil
}

func (u *SkillUsecase) side(skillID int64) requirementSide {
	return requirementSide{
		requirementRepo: u.requirementRepo,
		pair: func(roleID int64) (int64, int64) {
			return roleID, skillID
		},
		exists: func(ctx context.Context, roleID int64) error {
			if _, err := u.roleRepo.GetByID(ctx, roleID); err != nil {
				if errors.Is(err, domainerrors.ErrNotFound) {
					return domainerrors.NotFound("role not found")
				}
				return err
			}
			return nil
		},
	}
}

func (u *SkillUsecase) checkName(ctx context.Context, name string, excludeID int64) error {
	taken, err := u.skillRepo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domainerrors.Conflict("skill name already exists")
	}
	return nil
}

func (u *SkillUsecase) getSkill(ctx context.Context, id int64) (*entities.Skill, error) {
	skill, err := u.skillRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("skill not found")
		}
		return nil, err
	}
	return skill, nil
}
