package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/infrastructure/models"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Create(ctx context.Context, skill *entities.Skill) error {
	m := &models.Skill{Name: skill.Name, Category: string(skill.Category)}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return classify(err)
	}
	skill.ID = m.ID
	return nil
}

func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*entities.Skill, error) {
	var m models.Skill
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("skill_id = ?", id).First(&m).Error; err != nil {
		return nil, classify(err)
	}
	return toSkillEntity(&m), nil
}

func (r *SkillRepository) List(ctx context.Context) ([]*entities.SkillSummary, error) {
	var rows []struct {
		SkillID        int64
		SkillName      string
		Category       string
		MemberCount    int64
		AvgProficiency *float64
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Raw(`
		SELECT s.skill_id, s.skill_name, s.category,
			(SELECT COUNT(*) FROM mem_skills ms WHERE ms.skill_id = s.skill_id) AS member_count,
			(SELECT CAST(AVG(ms.proficiency_level) AS DOUBLE PRECISION) FROM mem_skills ms WHERE ms.skill_id = s.skill_id) AS avg_proficiency
		FROM skills s
		ORDER BY s.category ASC, s.skill_name ASC`).Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.SkillSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.SkillSummary{
			ID:             row.SkillID,
			Name:           row.SkillName,
			Category:       entities.SkillCategory(row.Category),
			MemberCount:    row.MemberCount,
			AvgProficiency: roundAvg(row.AvgProficiency),
		})
	}
	return items, nil
}

func (r *SkillRepository) ListAll(ctx context.Context) ([]*entities.Skill, error) {
	return r.find(ctx, GetDB(ctx, r.db).WithContext(ctx))
}

// ListUnassigned returns the skills the member does not hold yet.
func (r *SkillRepository) ListUnassigned(ctx context.Context, memberID int64) ([]*entities.Skill, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Where("skill_id NOT IN (?)", GetDB(ctx, r.db).Table("mem_skills").Select("skill_id").Where("mem_id = ?", memberID))
	return r.find(ctx, q)
}

func (r *SkillRepository) ListNotRequiredByRole(ctx context.Context, roleID int64) ([]*entities.Skill, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Where("skill_id NOT IN (?)", GetDB(ctx, r.db).Table("role_requirements").Select("skill_id").Where("role_id = ?", roleID))
	return r.find(ctx, q)
}

func (r *SkillRepository) find(_ context.Context, q *gorm.DB) ([]*entities.Skill, error) {
	var ms []models.Skill
	if err := q.Order("category ASC, skill_name ASC").Find(&ms).Error; err != nil {
		return nil, classify(err)
	}
	items := make([]*entities.Skill, 0, len(ms))
	for i := range ms {
		items = append(items, toSkillEntity(&ms[i]))
	}
	return items, nil
}

func (r *SkillRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Skill{}).
		Where("skill_name = ? AND skill_id <> ?", name, excludeID).
		Count(&count).Error
	if err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

func (r *SkillRepository) Update(ctx context.Context, skill *entities.Skill) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Skill{}).
		Where("skill_id = ?", skill.ID).
		Updates(map[string]interface{}{
			"skill_name": skill.Name,
			"category":   string(skill.Category),
		})
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *SkillRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Skill{}, "skill_id = ?", id)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *SkillRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Skill{}).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

func toSkillEntity(m *models.Skill) *entities.Skill {
	return &entities.Skill{
		ID:       m.ID,
		Name:     m.Name,
		Category: entities.SkillCategory(m.Category),
	}
}

func roundAvg(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v).Round(2)
}
