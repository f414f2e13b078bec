package repositories

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"skill-registry.backend/internal/domain/entities"
)

type QueryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

func middleName(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// FindExperts lists holders of the named skill at or above minProficiency,
// highest proficiency first and then by display name.
func (r *QueryRepository) FindExperts(ctx context.Context, skillName string, minProficiency int) ([]*entities.Expert, error) {
	var rows []struct {
		MemID            int64
		FirstName        string
		MiddleName       *string
		LastName         string
		RoleName         *string
		ProficiencyLevel int
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Raw(`
		SELECT tm.mem_id, tm.first_name, tm.middle_name, tm.last_name, r.role_name, ms.proficiency_level
		FROM mem_skills ms
		JOIN skills s ON s.skill_id = ms.skill_id
		JOIN team_members tm ON tm.mem_id = ms.mem_id
		LEFT JOIN roles r ON r.role_id = tm.role_id
		WHERE s.skill_name = ? AND ms.proficiency_level >= ?`, skillName, minProficiency).Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.Expert, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.Expert{
			MemberID:    row.MemID,
			Name:        entities.FullName(row.FirstName, middleName(row.MiddleName), row.LastName),
			Role:        null.StringFromPtr(row.RoleName),
			Proficiency: row.ProficiencyLevel,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Proficiency != items[j].Proficiency {
			return items[i].Proficiency > items[j].Proficiency
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MemberID < items[j].MemberID
	})
	return items, nil
}

// GetMemberProfile returns one row per skill held by the member with the given email.
func (r *QueryRepository) GetMemberProfile(ctx context.Context, email string) ([]*entities.ProfileRow, error) {
	var rows []struct {
		MemID            int64
		FirstName        string
		MiddleName       *string
		LastName         string
		Email            string
		PhoneNo          string
		RoleName         *string
		SkillName        string
		Category         string
		ProficiencyLevel int
		UpdatedAt        time.Time
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Raw(`
		SELECT tm.mem_id, tm.first_name, tm.middle_name, tm.last_name, tm.email, tm.phone_no,
			r.role_name, s.skill_name, s.category, ms.proficiency_level, ms.updated_at
		FROM team_members tm
		JOIN mem_skills ms ON ms.mem_id = tm.mem_id
		JOIN skills s ON s.skill_id = ms.skill_id
		LEFT JOIN roles r ON r.role_id = tm.role_id
		WHERE tm.email = ?
		ORDER BY s.category ASC, s.skill_name ASC`, email).Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.ProfileRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.ProfileRow{
			MemberID:         row.MemID,
			FullName:         entities.FullName(row.FirstName, middleName(row.MiddleName), row.LastName),
			Email:            row.Email,
			PhoneNo:          row.PhoneNo,
			RoleName:         null.StringFromPtr(row.RoleName),
			SkillName:        row.SkillName,
			Category:         entities.SkillCategory(row.Category),
			ProficiencyLevel: row.ProficiencyLevel,
			UpdatedAt:        row.UpdatedAt,
		})
	}
	return items, nil
}

func (r *QueryRepository) CategoryStats(ctx context.Context) ([]*entities.CategoryStat, error) {
	var rows []struct {
		Category          string
		SkillCount        int64
		MembersWithSkills int64
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Raw(`
		SELECT s.category,
			COUNT(DISTINCT s.skill_id) AS skill_count,
			COUNT(DISTINCT ms.mem_id) AS members_with_skills
		FROM skills s
		LEFT JOIN mem_skills ms ON ms.skill_id = s.skill_id
		GROUP BY s.category
		ORDER BY s.category ASC`).Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.CategoryStat, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.CategoryStat{
			Category:          entities.SkillCategory(row.Category),
			SkillCount:        row.SkillCount,
			MembersWithSkills: row.MembersWithSkills,
		})
	}
	return items, nil
}

func (r *QueryRepository) TopSkills(ctx context.Context, limit int) ([]*entities.TopSkill, error) {
	var rows []struct {
		SkillID        int64
		SkillName      string
		Category       string
		MemberCount    int64
		AvgProficiency *float64
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Raw(`
		SELECT s.skill_id, s.skill_name, s.category,
			COUNT(ms.mem_id) AS member_count,
			CAST(AVG(ms.proficiency_level) AS DOUBLE PRECISION) AS avg_proficiency
		FROM skills s
		JOIN mem_skills ms ON ms.skill_id = s.skill_id
		GROUP BY s.skill_id, s.skill_name, s.category
		ORDER BY member_count DESC, s.skill_name ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.TopSkill, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.TopSkill{
			SkillID:        row.SkillID,
			SkillName:      row.SkillName,
			Category:       entities.SkillCategory(row.Category),
			MemberCount:    row.MemberCount,
			AvgProficiency: roundAvg(row.AvgProficiency),
		})
	}
	return items, nil
}

func (r *QueryRepository) MemberStats(ctx context.Context) ([]*entities.MemberStat, error) {
	var rows []struct {
		MemID          int64
		FirstName      string
		MiddleName     *string
		LastName       string
		RoleName       *string
		SkillCount     int64
		AvgProficiency *float64
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Raw(`
		SELECT tm.mem_id, tm.first_name, tm.middle_name, tm.last_name, r.role_name,
			(SELECT COUNT(*) FROM mem_skills ms WHERE ms.mem_id = tm.mem_id) AS skill_count,
			(SELECT CAST(AVG(ms.proficiency_level) AS DOUBLE PRECISION) FROM mem_skills ms WHERE ms.mem_id = tm.mem_id) AS avg_proficiency
		FROM team_members tm
		LEFT JOIN roles r ON r.role_id = tm.role_id
		ORDER BY skill_count DESC, tm.first_name ASC, tm.last_name ASC`).Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.MemberStat, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.MemberStat{
			MemberID:       row.MemID,
			FullName:       entities.FullName(row.FirstName, middleName(row.MiddleName), row.LastName),
			RoleName:       null.StringFromPtr(row.RoleName),
			SkillCount:     row.SkillCount,
			AvgProficiency: roundAvg(row.AvgProficiency),
		})
	}
	return items, nil
}

func (r *QueryRepository) RoleStats(ctx context.Context) ([]*entities.RoleStat, error) {
	var rows []struct {
		RoleID         int64
		RoleName       string
		RequiredSkills int64
		CurrentMembers int64
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Raw(`
		SELECT r.role_id, r.role_name,
			(SELECT COUNT(*) FROM role_requirements rr WHERE rr.role_id = r.role_id) AS required_skills,
			(SELECT COUNT(*) FROM team_members tm WHERE tm.role_id = r.role_id) AS current_members
		FROM roles r
		ORDER BY r.role_name ASC`).Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.RoleStat, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entities.RoleStat{
			RoleID:         row.RoleID,
			RoleName:       row.RoleName,
			RequiredSkills: row.RequiredSkills,
			CurrentMembers: row.CurrentMembers,
		})
	}
	return items, nil
}

// UserSkills renders each member's skills as "Skill (level)" joined by ", ".
func (r *QueryRepository) UserSkills(ctx context.Context) ([]*entities.UserSkillsRow, error) {
	var rows []struct {
		MemID            int64
		FirstName        string
		MiddleName       *string
		LastName         string
		Email            string
		RoleName         *string
		SkillName        *string
		ProficiencyLevel *int
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Raw(`
		SELECT tm.mem_id, tm.first_name, tm.middle_name, tm.last_name, tm.email, r.role_name,
			s.skill_name, ms.proficiency_level
		FROM team_members tm
		LEFT JOIN roles r ON r.role_id = tm.role_id
		LEFT JOIN mem_skills ms ON ms.mem_id = tm.mem_id
		LEFT JOIN skills s ON s.skill_id = ms.skill_id
		ORDER BY tm.first_name ASC, tm.last_name ASC, tm.mem_id ASC, s.skill_name ASC`).Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	items := make([]*entities.UserSkillsRow, 0)
	skills := map[int64][]string{}
	index := map[int64]*entities.UserSkillsRow{}
	for _, row := range rows {
		item, ok := index[row.MemID]
		if !ok {
			item = &entities.UserSkillsRow{
				MemberID: row.MemID,
				FullName: entities.FullName(row.FirstName, middleName(row.MiddleName), row.LastName),
				Email:    row.Email,
				RoleName: null.StringFromPtr(row.RoleName),
			}
			index[row.MemID] = item
			items = append(items, item)
		}
		if row.SkillName != nil && row.ProficiencyLevel != nil {
			skills[row.MemID] = append(skills[row.MemID], *row.SkillName+" ("+strconv.Itoa(*row.ProficiencyLevel)+")")
		}
	}
	for _, item := range items {
		item.Skills = strings.Join(skills[item.MemberID], ", ")
	}
	return items, nil
}
