package usecases

import (
	"context"
	"errors"

	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/domain/repositories"
)

// requirementSide fixes one end of a role requirement: a role when editing a
// role, a skill when editing a skill. Levels then name the other end.
type requirementSide struct {
	requirementRepo repositories.RoleRequirementRepository
	pair            func(otherID int64) (roleID, skillID int64)
	exists          func(ctx context.Context, otherID int64) error
}

func (s requirementSide) build(other entities.RequirementLevel) *entities.RoleRequirement {
	roleID, skillID := s.pair(other.ID)
	return &entities.RoleRequirement{RoleID: roleID, SkillID: skillID, MinProficiency: other.MinProficiency}
}

func (s requirementSide) add(ctx context.Context, levels []entities.RequirementLevel) error {
	for _, l := range levels {
		if err := s.exists(ctx, l.ID); err != nil {
			return err
		}
		if err := s.requirementRepo.Create(ctx, s.build(l)); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.Conflict("requirement already exists")
			}
			return err
		}
	}
	return nil
}

// apply runs a requirement diff: removals, then threshold updates, then inserts.
func (s requirementSide) apply(ctx context.Context, changes entities.RequirementChanges) error {
	for _, otherID := range changes.Remove {
		roleID, skillID := s.pair(otherID)
		if err := s.requirementRepo.Delete(ctx, roleID, skillID); err != nil {
			return requirementNotFound(err)
		}
	}
	for _, l := range changes.Update {
		if err := s.requirementRepo.Update(ctx, s.build(l)); err != nil {
			return requirementNotFound(err)
		}
	}
	return s.add(ctx, changes.Add)
}

func validateChanges(v *Validator, changes *entities.RequirementChanges) error {
	if err := v.Struct(changes); err != nil {
		return err
	}
	if err := uniqueIDs("requirements.update", levelIDs(changes.Update)); err != nil {
		return err
	}
	if err := uniqueIDs("requirements.add", levelIDs(changes.Add)); err != nil {
		return err
	}
	return uniqueIDs("requirements.remove", changes.Remove)
}

func requirementNotFound(err error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("requirement not found")
	}
	return err
}
