package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/infrastructure/models"
)

type MemberSkillRepository struct {
	db *gorm.DB
}

func NewMemberSkillRepository(db *gorm.DB) *MemberSkillRepository {
	return &MemberSkillRepository{db: db}
}

type memberSkillRow struct {
	MemID            int64
	SkillID          int64
	SkillName        string
	Category         string
	ProficiencyLevel int
	UpdatedAt        time.Time
}

func (row memberSkillRow) toEntity() *entities.MemberSkill {
	return &entities.MemberSkill{
		MemberID:         row.MemID,
		SkillID:          row.SkillID,
		SkillName:        row.SkillName,
		Category:         entities.SkillCategory(row.Category),
		ProficiencyLevel: row.ProficiencyLevel,
		UpdatedAt:        row.UpdatedAt,
	}
}

func (r *MemberSkillRepository) joined(ctx context.Context) *gorm.DB {
	return getLockedDB(ctx, r.db, "ms").WithContext(ctx).
		Table("mem_skills ms").
		Select("ms.mem_id, ms.skill_id, s.skill_name, s.category, ms.proficiency_level, ms.updated_at").
		Joins("JOIN skills s ON s.skill_id = ms.skill_id")
}

func (r *MemberSkillRepository) scan(q *gorm.DB) ([]*entities.MemberSkill, error) {
	var rows []memberSkillRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, classify(err)
	}
	items := make([]*entities.MemberSkill, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *MemberSkillRepository) Get(ctx context.Context, memberID, skillID int64) (*entities.MemberSkill, error) {
	items, err := r.scan(r.joined(ctx).Where("ms.mem_id = ? AND ms.skill_id = ?", memberID, skillID))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return items[0], nil
}

func (r *MemberSkillRepository) ListByMember(ctx context.Context, memberID int64) ([]*entities.MemberSkill, error) {
	return r.scan(r.joined(ctx).Where("ms.mem_id = ?", memberID).Order("s.category ASC, s.skill_name ASC"))
}

func (r *MemberSkillRepository) ListBySkill(ctx context.Context, skillID int64) ([]*entities.MemberSkill, error) {
	return r.scan(r.joined(ctx).Where("ms.skill_id = ?", skillID).Order("ms.mem_id ASC"))
}

func (r *MemberSkillRepository) ListHolders(ctx context.Context, skillID int64) ([]*entities.SkillHolder, error) {
	var rows []struct {
		MemID            int64
		FirstName        string
		MiddleName       *string
		LastName         string
		Email            string
		ProficiencyLevel int
	}
	err := GetDB(ctx, r.db).WithContext(ctx).
		Table("mem_skills ms").
		Select("tm.mem_id, tm.first_name, tm.middle_name, tm.last_name, tm.email, ms.proficiency_level").
		Joins("JOIN team_members tm ON tm.mem_id = ms.mem_id").
		Where("ms.skill_id = ?", skillID).
		Order("ms.proficiency_level DESC, tm.first_name ASC, tm.last_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.SkillHolder, 0, len(rows))
	for _, row := range rows {
		middle := ""
		if row.MiddleName != nil {
			middle = *row.MiddleName
		}
		items = append(items, &entities.SkillHolder{
			MemberID:    row.MemID,
			FullName:    entities.FullName(row.FirstName, middle, row.LastName),
			Email:       row.Email,
			Proficiency: row.ProficiencyLevel,
		})
	}
	return items, nil
}

func (r *MemberSkillRepository) Create(ctx context.Context, ms *entities.MemberSkill) error {
	now := time.Now()
	m := &models.MemberSkill{
		MemberID:         ms.MemberID,
		SkillID:          ms.SkillID,
		ProficiencyLevel: ms.ProficiencyLevel,
		UpdatedAt:        now,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return classify(err)
	}
	ms.UpdatedAt = now
	return nil
}

func (r *MemberSkillRepository) UpdateProficiency(ctx context.Context, ms *entities.MemberSkill) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.MemberSkill{}).
		Where("mem_id = ? AND skill_id = ?", ms.MemberID, ms.SkillID).
		Updates(map[string]interface{}{
			"proficiency_level": ms.ProficiencyLevel,
			"updated_at":        now,
		})
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	ms.UpdatedAt = now
	return nil
}

func (r *MemberSkillRepository) Delete(ctx context.Context, memberID, skillID int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Delete(&models.MemberSkill{}, "mem_id = ? AND skill_id = ?", memberID, skillID)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MemberSkillRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.MemberSkill{}).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}
