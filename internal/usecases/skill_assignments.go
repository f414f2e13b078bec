package usecases

import (
	"context"
	"errors"

	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/domain/repositories"
)

// skillAssignments writes mem_skills rows together with their audit entries.
// Every method expects a transaction context.
type skillAssignments struct {
	skillRepo       repositories.SkillRepository
	memberSkillRepo repositories.MemberSkillRepository
	audit           *AuditTrail
}

func (w *skillAssignments) add(ctx context.Context, memberID, skillID int64, level int) (*entities.MemberSkill, error) {
	skill, err := w.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("skill not found")
		}
		return nil, err
	}
	if level == 0 {
		level = entities.DefaultProficiency
	}

	ms := &entities.MemberSkill{
		MemberID:         memberID,
		SkillID:          skill.ID,
		SkillName:        skill.Name,
		Category:         skill.Category,
		ProficiencyLevel: level,
	}
	if err := w.memberSkillRepo.Create(ctx, ms); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("member already has this skill")
		}
		return nil, err
	}
	if err := w.audit.RecordInsert(ctx, ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// set changes the level of an existing row. An unchanged level writes nothing
// and reports false.
func (w *skillAssignments) set(ctx context.Context, current *entities.MemberSkill, level int) (bool, error) {
	if current.ProficiencyLevel == level {
		return false, nil
	}
	updated := *current
	updated.ProficiencyLevel = level
	if err := w.memberSkillRepo.UpdateProficiency(ctx, &updated); err != nil {
		return false, err
	}
	if err := w.audit.RecordUpdate(ctx, current, &updated); err != nil {
		return false, err
	}
	*current = updated
	return true, nil
}

func (w *skillAssignments) remove(ctx context.Context, ms *entities.MemberSkill) error {
	if err := w.memberSkillRepo.Delete(ctx, ms.MemberID, ms.SkillID); err != nil {
		return err
	}
	return w.audit.RecordDelete(ctx, ms)
}

// removeAll deletes every skill the member holds.
func (w *skillAssignments) removeAll(ctx context.Context, memberID int64) error {
	held, err := w.memberSkillRepo.ListByMember(ctx, memberID)
	if err != nil {
		return err
	}
	for _, ms := range held {
		if err := w.remove(ctx, ms); err != nil {
			return err
		}
	}
	return nil
}

// sync makes the member's skill set equal to desired: missing skills are added,
// changed levels updated and skills no longer listed removed.
func (w *skillAssignments) sync(ctx context.Context, memberID int64, desired []entities.SkillLevelInput) error {
	held, err := w.memberSkillRepo.ListByMember(ctx, memberID)
	if err != nil {
		return err
	}
	current := make(map[int64]*entities.MemberSkill, len(held))
	for _, ms := range held {
		current[ms.SkillID] = ms
	}

	wanted := make(map[int64]struct{}, len(desired))
	for _, in := range desired {
		wanted[in.SkillID] = struct{}{}
		level := in.Proficiency
		if level == 0 {
			level = entities.DefaultProficiency
		}
		if ms, ok := current[in.SkillID]; ok {
			if _, err := w.set(ctx, ms, level); err != nil {
				return err
			}
			continue
		}
		if _, err := w.add(ctx, memberID, in.SkillID, level); err != nil {
			return err
		}
	}

	for _, ms := range held {
		if _, ok := wanted[ms.SkillID]; ok {
			continue
		}
		if err := w.remove(ctx, ms); err != nil {
			return err
		}
	}
	return nil
}

func skillLevelIDs(levels []entities.SkillLevelInput) []int64 {
	ids := make([]int64, 0, len(levels))
	for _, l := range levels {
		ids = append(ids, l.SkillID)
	}
	return ids
}
