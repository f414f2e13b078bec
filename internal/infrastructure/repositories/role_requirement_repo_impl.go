package repositories

import (
	"context"

	"gorm.io/gorm"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/infrastructure/models"
)

type RoleRequirementRepository struct {
	db *gorm.DB
}

func NewRoleRequirementRepository(db *gorm.DB) *RoleRequirementRepository {
	return &RoleRequirementRepository{db: db}
}

type requirementRow struct {
	RoleID                 int64
	RoleName               string
	SkillID                int64
	SkillName              string
	Category               string
	MinProficiencyRequired int
}

func (row requirementRow) toEntity() *entities.RoleRequirement {
	return &entities.RoleRequirement{
		RoleID:         row.RoleID,
		RoleName:       row.RoleName,
		SkillID:        row.SkillID,
		SkillName:      row.SkillName,
		Category:       entities.SkillCategory(row.Category),
		MinProficiency: row.MinProficiencyRequired,
	}
}

func (r *RoleRequirementRepository) joined(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx).
		Table("role_requirements rr").
		Select("rr.role_id, ro.role_name, rr.skill_id, s.skill_name, s.category, rr.min_proficiency_required").
		Joins("JOIN roles ro ON ro.role_id = rr.role_id").
		Joins("JOIN skills s ON s.skill_id = rr.skill_id")
}

func (r *RoleRequirementRepository) scan(q *gorm.DB) ([]*entities.RoleRequirement, error) {
	var rows []requirementRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, classify(err)
	}
	items := make([]*entities.RoleRequirement, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *RoleRequirementRepository) Get(ctx context.Context, roleID, skillID int64) (*entities.RoleRequirement, error) {
	items, err := r.scan(r.joined(ctx).Where("rr.role_id = ? AND rr.skill_id = ?", roleID, skillID))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return items[0], nil
}

func (r *RoleRequirementRepository) ListByRole(ctx context.Context, roleID int64) ([]*entities.RoleRequirement, error) {
	return r.scan(r.joined(ctx).Where("rr.role_id = ?", roleID).Order("s.category ASC, s.skill_name ASC"))
}

func (r *RoleRequirementRepository) ListBySkill(ctx context.Context, skillID int64) ([]*entities.RoleRequirement, error) {
	return r.scan(r.joined(ctx).Where("rr.skill_id = ?", skillID).Order("ro.role_name ASC"))
}

func (r *RoleRequirementRepository) ListAll(ctx context.Context) ([]*entities.RoleRequirement, error) {
	return r.scan(r.joined(ctx).Order("ro.role_name ASC, s.skill_name ASC"))
}

func (r *RoleRequirementRepository) Create(ctx context.Context, req *entities.RoleRequirement) error {
	m := &models.RoleRequirement{RoleID: req.RoleID, SkillID: req.SkillID, MinProficiency: req.MinProficiency}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (r *RoleRequirementRepository) Update(ctx context.Context, req *entities.RoleRequirement) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.RoleRequirement{}).
		Where("role_id = ? AND skill_id = ?", req.RoleID, req.SkillID).
		Update("min_proficiency_required", req.MinProficiency)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *RoleRequirementRepository) Delete(ctx context.Context, roleID, skillID int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Delete(&models.RoleRequirement{}, "role_id = ? AND skill_id = ?", roleID, skillID)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *RoleRequirementRepository) DeleteByRole(ctx context.Context, roleID int64) error {
	err := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.RoleRequirement{}, "role_id = ?", roleID).Error
	return classify(err)
}

func (r *RoleRequirementRepository) DeleteBySkill(ctx context.Context, skillID int64) error {
	err := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.RoleRequirement{}, "skill_id = ?", skillID).Error
	return classify(err)
}
