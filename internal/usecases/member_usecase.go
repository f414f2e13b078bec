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

// MemberUsecase handles team member business logic
type MemberUsecase struct {
	uow         repositories.UnitOfWork
	memberRepo  repositories.MemberRepository
	roleRepo    repositories.RoleRepository
	skillRepo   repositories.SkillRepository
	assignments *skillAssignments
	eligibility *EligibilityChecker
	validator   *Validator
	metrics     *metrics.RegistryMetrics
}

// NewMemberUsecase creates a new member usecase
func NewMemberUsecase(
	uow repositories.UnitOfWork,
	memberRepo repositories.MemberRepository,
	roleRepo repositories.RoleRepository,
	skillRepo repositories.SkillRepository,
	memberSkillRepo repositories.MemberSkillRepository,
	audit *AuditTrail,
	eligibility *EligibilityChecker,
	validator *Validator,
	m *metrics.RegistryMetrics,
) *MemberUsecase {
	return &MemberUsecase{
		uow:        uow,
		memberRepo: memberRepo,
		roleRepo:   roleRepo,
		skillRepo:  skillRepo,
		assignments: &skillAssignments{
			skillRepo:       skillRepo,
			memberSkillRepo: memberSkillRepo,
			audit:           audit,
		},
		eligibility: eligibility,
		validator:   validator,
		metrics:     m,
	}
}

// CreateMember inserts a member with its initial skills. The member must meet
// every requirement of the chosen role once the skills are in place.
func (u *MemberUsecase) CreateMember(ctx context.Context, input *entities.MemberInput) (*entities.Member, error) {
	if err := u.validateInput(input); err != nil {
		return nil, err
	}

	var member *entities.Member
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		role, err := u.getRole(txCtx, *input.RoleID)
		if err != nil {
			return err
		}
		if err := u.checkUnique(txCtx, input, 0); err != nil {
			return err
		}

		member = &entities.Member{
			FirstName:  input.FirstName,
			MiddleName: optionalString(input.MiddleName),
			LastName:   input.LastName,
			Email:      input.Email,
			PhoneNo:    input.PhoneNo,
			RoleID:     null.Int64From(role.ID),
			RoleName:   null.StringFrom(role.Name),
		}
		if err := u.memberRepo.Create(txCtx, member); err != nil {
			return uniquenessConflict(err, "member with this email or phone already exists")
		}
		if err := u.assignments.audit.RecordInsert(txCtx, member); err != nil {
			return err
		}

		for _, s := range input.Skills {
			if _, err := u.assignments.add(txCtx, member.ID, s.SkillID, s.Proficiency); err != nil {
				return err
			}
		}
		return u.eligibility.Ensure(txCtx, member.ID, role.ID)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.IncMutation("member", "create")
	logger.Info(ctx, "Member created", zap.Int64("member_id", member.ID), zap.String("role", member.RoleName.String))
	return member, nil
}

// UpdateMember edits a member. A non-nil Skills list replaces the skill set
// before the role eligibility check runs. The check is skipped when neither
// the role nor the skill set changes.
func (u *MemberUsecase) UpdateMember(ctx context.Context, id int64, input *entities.MemberInput) (*entities.Member, error) {
	if err := u.validateInput(input); err != nil {
		return nil, err
	}

	var updated *entities.Member
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		current, err := u.getMember(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		role, err := u.getRole(txCtx, *input.RoleID)
		if err != nil {
			return err
		}
		if err := u.checkUnique(txCtx, input, id); err != nil {
			return err
		}

		if input.Skills != nil {
			if err := u.assignments.sync(txCtx, id, input.Skills); err != nil {
				return err
			}
		}

		next := *current
		next.FirstName = input.FirstName
		next.MiddleName = optionalString(input.MiddleName)
		next.LastName = input.LastName
		next.Email = input.Email
		next.PhoneNo = input.PhoneNo
		next.RoleID = null.Int64From(role.ID)
		next.RoleName = null.StringFrom(role.Name)
		if err := u.memberRepo.Update(txCtx, &next); err != nil {
			return uniquenessConflict(err, "member with this email or phone already exists")
		}
		if err := u.assignments.audit.RecordUpdate(txCtx, current, &next); err != nil {
			return err
		}
		updated = &next
		if current.RoleID.Valid && current.RoleID.Int64 == role.ID && input.Skills == nil {
			return nil
		}
		return u.eligibility.Ensure(txCtx, id, role.ID)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.IncMutation("member", "update")
	logger.Info(ctx, "Member updated", zap.Int64("member_id", id))
	return updated, nil
}

// DeleteMember removes a member and every skill it holds.
func (u *MemberUsecase) DeleteMember(ctx context.Context, id int64) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		current, err := u.getMember(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		if err := u.assignments.removeAll(txCtx, id); err != nil {
			return err
		}
		if err := u.memberRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return u.assignments.audit.RecordDelete(txCtx, current)
	})
	if err != nil {
		return err
	}

	u.metrics.IncMutation("member", "delete")
	logger.Info(ctx, "Member deleted", zap.Int64("member_id", id))
	return nil
}

// ListMembers returns every member with role name and skill count
func (u *MemberUsecase) ListMembers(ctx context.Context) ([]*entities.MemberSummary, error) {
	return u.memberRepo.List(ctx)
}

// GetMember returns the member with skills, unassigned skills and eligible roles
func (u *MemberUsecase) GetMember(ctx context.Context, id int64) (*entities.MemberDetail, error) {
	member, err := u.getMember(ctx, id)
	if err != nil {
		return nil, err
	}
	skills, err := u.assignments.memberSkillRepo.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}
	available, err := u.skillRepo.ListUnassigned(ctx, id)
	if err != nil {
		return nil, err
	}
	eligible, err := u.eligibility.EligibleRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.MemberDetail{
		Member:          member,
		Skills:          skills,
		AvailableSkills: available,
		EligibleRoles:   eligible,
	}, nil
}

func (u *MemberUsecase) validateInput(input *entities.MemberInput) error {
	if input == nil {
		return domainerrors.BadRequest("request body is required")
	}
	input.Normalize()
	if err := u.validator.Struct(input); err != nil {
		return err
	}
	return uniqueIDs("skills", skillLevelIDs(input.Skills))
}

func (u *MemberUsecase) checkUnique(ctx context.Context, input *entities.MemberInput, excludeID int64) error {
	taken, err := u.memberRepo.EmailTaken(ctx, input.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domainerrors.Conflict("email already belongs to another member")
	}
	taken, err = u.memberRepo.PhoneTaken(ctx, input.PhoneNo, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domainerrors.Conflict("phone number already belongs to another member")
	}
	return nil
}

func (u *MemberUsecase) getMember(ctx context.Context, id int64) (*entities.Member, error) {
	member, err := u.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("member not found")
		}
		return nil, err
	}
	return member, nil
}

func (u *MemberUsecase) getRole(ctx context.Context, id int64) (*entities.Role, error) {
	role, err := u.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("role not found")
		}
		return nil, err
	}
	return role, nil
}

func optionalString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// uniquenessConflict turns a unique index violation into a 409 with msg.
func uniquenessConflict(err error, msg string) error {
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		return domainerrors.Conflict(msg)
	}
	return err
}
