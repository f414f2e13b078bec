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

// MemberSkillUsecase manages the proficiency ratings of a single member
type MemberSkillUsecase struct {
	uow         repositories.UnitOfWork
	memberRepo  repositories.MemberRepository
	assignments *skillAssignments
	validator   *Validator
	metrics     *metrics.RegistryMetrics
}

func NewMemberSkillUsecase(
	uow repositories.UnitOfWork,
	memberRepo repositories.MemberRepository,
	skillRepo repositories.SkillRepository,
	memberSkillRepo repositories.MemberSkillRepository,
	audit *AuditTrail,
	validator *Validator,
	m *metrics.RegistryMetrics,
) *MemberSkillUsecase {
	return &MemberSkillUsecase{
		uow:        uow,
		memberRepo: memberRepo,
		assignments: &skillAssignments{
			skillRepo:       skillRepo,
			memberSkillRepo: memberSkillRepo,
			audit:           audit,
		},
		validator: validator,
		metrics:   m,
	}
}

// AssignSkill inserts the rating or updates it when the member already holds
// the skill. created reports which of the two happened.
func (u *MemberSkillUsecase) AssignSkill(ctx context.Context, memberID int64, input *entities.SkillLevelInput) (ms *entities.MemberSkill, created bool, err error) {
	if input == nil {
		return nil, false, domainerrors.BadRequest("request body is required")
	}
	if err := u.validator.Struct(input); err != nil {
		return nil, false, err
	}
	level := input.Proficiency
	if level == 0 {
		level = entities.DefaultProficiency
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.ensureMember(txCtx, memberID); err != nil {
			return err
		}
		current, err := u.assignments.memberSkillRepo.Get(u.uow.WithLock(txCtx), memberID, input.SkillID)
		switch {
		case err == nil:
			ms = current
			_, err = u.assignments.set(txCtx, current, level)
			return err
		case errors.Is(err, domainerrors.ErrNotFound):
			ms, err = u.assignments.add(txCtx, memberID, input.SkillID, level)
			created = err == nil
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}

	op := "update"
	if created {
		op = "create"
	}
	u.metrics.IncMutation("member_skill", op)
	logger.Info(ctx, "Member skill assigned",
		zap.Int64("member_id", memberID),
		zap.Int64("skill_id", input.SkillID),
		zap.Int("proficiency", level),
		zap.Bool("created", created),
	)
	return ms, created, nil
}

// UpdateProficiency changes the level of a held skill. Setting the current
// level again is a no-op and writes no audit entry.
func (u *MemberSkillUsecase) UpdateProficiency(ctx context.Context, memberID, skillID int64, input *entities.ProficiencyInput) (*entities.MemberSkill, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("request body is required")
	}
	if err := u.validator.Struct(input); err != nil {
		return nil, err
	}

	var (
		ms      *entities.MemberSkill
		changed bool
	)
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		current, err := u.getAssignment(u.uow.WithLock(txCtx), memberID, skillID)
		if err != nil {
			return err
		}
		ms = current
		changed, err = u.assignments.set(txCtx, current, input.Proficiency)
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		u.metrics.IncMutation("member_skill", "update")
	}
	return ms, nil
}

// RemoveSkill deletes a held skill. The member's role is not re-evaluated.
func (u *MemberSkillUsecase) RemoveSkill(ctx context.Context, memberID, skillID int64) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		current, err := u.getAssignment(u.uow.WithLock(txCtx), memberID, skillID)
		if err != nil {
			return err
		}
		return u.assignments.remove(txCtx, current)
	})
	if err != nil {
		return err
	}

	u.metrics.IncMutation("member_skill", "delete")
	logger.Info(ctx, "Member skill removed", zap.Int64("member_id", memberID), zap.Int64("skill_id", skillID))
	return nil
}

// ListSkills returns the member's skills by category and name
func (u *MemberSkillUsecase) ListSkills(ctx context.Context, memberID int64) ([]*entities.MemberSkill, error) {
	if err := u.ensureMember(ctx, memberID); err != nil {
		return nil, err
	}
	return u.assignments.memberSkillRepo.ListByMember(ctx, memberID)
}

func (u *MemberSkillUsecase) ensureMember(ctx context.Context, memberID int64) error {
	if _, err := u.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("member not found")
		}
		return err
	}
	return nil
}

func (u *MemberSkillUsecase) getAssignment(ctx context.Context, memberID, skillID int64) (*entities.MemberSkill, error) {
	ms, err := u.assignments.memberSkillRepo.Get(ctx, memberID, skillID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("member does not have this skill")
		}
		return nil, err
	}
	return ms, nil
}
