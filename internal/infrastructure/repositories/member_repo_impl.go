package repositories

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/infrastructure/models"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

type memberRow struct {
	MemID      int64
	FirstName  string
	MiddleName *string
	LastName   string
	Email      string
	PhoneNo    string
	RoleID     *int64
	RoleName   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	SkillCount int64
}

const memberSelect = "tm.mem_id, tm.first_name, tm.middle_name, tm.last_name, tm.email, tm.phone_no, tm.role_id, r.role_name, tm.created_at, tm.updated_at"

func (r *MemberRepository) withRole(ctx context.Context) *gorm.DB {
	return getLockedDB(ctx, r.db, "tm").WithContext(ctx).
		Table("team_members tm").
		Select(memberSelect).
		Joins("LEFT JOIN roles r ON r.role_id = tm.role_id")
}

func (r *MemberRepository) Create(ctx context.Context, member *entities.Member) error {
	now := time.Now()
	m := r.toModel(member)
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return classify(err)
	}
	member.ID = m.ID
	member.CreatedAt = m.CreatedAt
	member.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*entities.Member, error) {
	var row memberRow
	if err := r.withRole(ctx).Where("tm.mem_id = ?", id).Take(&row).Error; err != nil {
		return nil, classify(err)
	}
	return row.toEntity(), nil
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*entities.Member, error) {
	var row memberRow
	if err := r.withRole(ctx).Where("tm.email = ?", email).Take(&row).Error; err != nil {
		return nil, classify(err)
	}
	return row.toEntity(), nil
}

func (r *MemberRepository) List(ctx context.Context) ([]*entities.MemberSummary, error) {
	var rows []memberRow
	err := GetDB(ctx, r.db).WithContext(ctx).
		Table("team_members tm").
		Select(memberSelect + ", (SELECT COUNT(*) FROM mem_skills ms WHERE ms.mem_id = tm.mem_id) AS skill_count").
		Joins("LEFT JOIN roles r ON r.role_id = tm.role_id").
		Order("tm.first_name ASC, tm.last_name ASC, tm.mem_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.MemberSummary, 0, len(rows))
	for i := range rows {
		m := rows[i].toEntity()
		items = append(items, &entities.MemberSummary{
			ID:         m.ID,
			FullName:   m.FullName(),
			Email:      m.Email,
			PhoneNo:    m.PhoneNo,
			RoleID:     m.RoleID,
			RoleName:   m.RoleName,
			SkillCount: rows[i].SkillCount,
		})
	}
	return items, nil
}

func (r *MemberRepository) ListByRole(ctx context.Context, roleID int64) ([]*entities.Member, error) {
	var rows []memberRow
	err := r.withRole(ctx).
		Where("tm.role_id = ?", roleID).
		Order("tm.first_name ASC, tm.last_name ASC, tm.mem_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	items := make([]*entities.Member, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toEntity())
	}
	return items, nil
}

func (r *MemberRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.taken(ctx, "email = ?", email, excludeID)
}

func (r *MemberRepository) PhoneTaken(ctx context.Context, phone string, excludeID int64) (bool, error) {
	return r.taken(ctx, "phone_no = ?", phone, excludeID)
}

func (r *MemberRepository) taken(ctx context.Context, cond string, value string, excludeID int64) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Member{}).
		Where(cond, value).
		Where("mem_id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

func (r *MemberRepository) Update(ctx context.Context, member *entities.Member) error {
	now := time.Now()
	updates := map[string]interface{}{
		"first_name":  member.FirstName,
		"middle_name": member.MiddleName.Ptr(),
		"last_name":   member.LastName,
		"email":       member.Email,
		"phone_no":    member.PhoneNo,
		"role_id":     member.RoleID.Ptr(),
		"updated_at":  now,
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Member{}).
		Where("mem_id = ?", member.ID).
		Updates(updates)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	member.UpdatedAt = now
	return nil
}

// ClearRole detaches every member from roleID and returns the number of members affected.
func (r *MemberRepository) ClearRole(ctx context.Context, roleID int64) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Member{}).
		Where("role_id = ?", roleID).
		Updates(map[string]interface{}{"role_id": nil, "updated_at": time.Now()})
	if result.Error != nil {
		return 0, classify(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Member{}, "mem_id = ?", id)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Member{}).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

func (row *memberRow) toEntity() *entities.Member {
	return &entities.Member{
		ID:         row.MemID,
		FirstName:  row.FirstName,
		MiddleName: null.StringFromPtr(row.MiddleName),
		LastName:   row.LastName,
		Email:      row.Email,
		PhoneNo:    row.PhoneNo,
		RoleID:     null.Int64FromPtr(row.RoleID),
		RoleName:   null.StringFromPtr(row.RoleName),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func (r *MemberRepository) toModel(e *entities.Member) *models.Member {
	return &models.Member{
		ID:         e.ID,
		FirstName:  e.FirstName,
		MiddleName: e.MiddleName.Ptr(),
		LastName:   e.LastName,
		Email:      e.Email,
		PhoneNo:    e.PhoneNo,
		RoleID:     e.RoleID.Ptr(),
	}
}
