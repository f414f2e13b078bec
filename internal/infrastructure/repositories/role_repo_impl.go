package repositories

import (
	"context"

	"gorm.io/gorm"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/infrastructure/models"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *entities.Role) error {
	m := &models.Role{Name: role.Name, Description: role.Description}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return classify(err)
	}
	role.ID = m.ID
	return nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*entities.Role, error) {
	var m models.Role
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("role_id = ?", id).First(&m).Error; err != nil {
		return nil, classify(err)
	}
	return toRoleEntity(&m), nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*entities.RoleSummary, error) {
	var rows []struct {
		RoleID         int64
		RoleName       string
		Description    string
		MemberCount    int64
		RequiredSkills int64
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Raw(`
		SELECT r.role_id, r.role_name, r.description,
			(SELECT COUNT(*) FROM team_members tm WHERE tm.role_id = r.role_id) AS member_count,
			(SELECT COUNT(*) FROM role_requirements rr WHERE rr.role_id = r.role_id) AS required_skills
		FROM roles r
		ORDER BY r.role_name ASC`).Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.RoleSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.RoleSummary{
			ID:             row.RoleID,
			Name:           row.RoleName,
			Description:    row.Description,
			MemberCount:    row.MemberCount,
			RequiredSkills: row.RequiredSkills,
		})
	}
	return items, nil
}

func (r *RoleRepository) ListAll(ctx context.Context) ([]*entities.Role, error) {
	return r.find(GetDB(ctx, r.db).WithContext(ctx))
}

func (r *RoleRepository) ListNotRequiringSkill(ctx context.Context, skillID int64) ([]*entities.Role, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Where("role_id NOT IN (?)", GetDB(ctx, r.db).Table("role_requirements").Select("role_id").Where("skill_id = ?", skillID))
	return r.find(q)
}

func (r *RoleRepository) find(q *gorm.DB) ([]*entities.Role, error) {
	var ms []models.Role
	if err := q.Order("role_name ASC").Find(&ms).Error; err != nil {
		return nil, classify(err)
	}
	items := make([]*entities.Role, 0, len(ms))
	for i := range ms {
		items = append(items, toRoleEntity(&ms[i]))
	}
	return items, nil
}

func (r *RoleRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Role{}).
		Where("role_name = ? AND role_id <> ?", name, excludeID).
		Count(&count).Error
	if err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *entities.Role) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Role{}).
		Where("role_id = ?", role.ID).
		Updates(map[string]interface{}{
			"role_name":   role.Name,
			"description": role.Description,
		})
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Role{}, "role_id = ?", id)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Role{}).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

func toRoleEntity(m *models.Role) *entities.Role {
	return &entities.Role{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
	}
}
