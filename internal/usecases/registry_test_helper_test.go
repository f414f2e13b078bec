package usecases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"skill-registry.backend/internal/domain/entities"
	domainrepos "skill-registry.backend/internal/domain/repositories"
	"skill-registry.backend/internal/infrastructure/datasources/sqlite"
	"skill-registry.backend/internal/infrastructure/repositories"
	"skill-registry.backend/internal/usecases"
)

// registry wires every usecase over a private in-memory SQLite store.
type registry struct {
	db           *gorm.DB
	auditRepo    *repositories.AuditLogRepository
	members      *usecases.MemberUsecase
	memberSkills *usecases.MemberSkillUsecase
	skills       *usecases.SkillUsecase
	roles        *usecases.RoleUsecase
	queries      *usecases.QueryUsecase
	audit        *usecases.AuditUsecase
	reports      *usecases.ReportUsecase
}

func newRegistry(t *testing.T) *registry {
	t.Helper()
	db, err := sqlite.OpenMemory(fmt.Sprintf("%s_%d", t.Name(), time.Now().UnixNano()))
	require.NoError(t, err)
	require.NoError(t, sqlite.EnsureSchema(db))
	return newRegistryWithAudit(t, db, repositories.NewAuditLogRepository(db))
}

func newRegistryWithAudit(t *testing.T, db *gorm.DB, auditRepo domainrepos.AuditLogRepository) *registry {
	t.Helper()
	uow := repositories.NewUnitOfWork(db)
	memberRepo := repositories.NewMemberRepository(db)
	skillRepo := repositories.NewSkillRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	requirementRepo := repositories.NewRoleRequirementRepository(db)
	memberSkillRepo := repositories.NewMemberSkillRepository(db)
	queryRepo := repositories.NewQueryRepository(db)
	validator := usecases.NewValidator("gmail.com")

	trail := usecases.NewAuditTrail(auditRepo, nil)
	checker := usecases.NewEligibilityChecker(roleRepo, requirementRepo, memberSkillRepo, nil)
	audit := usecases.NewAuditUsecase(auditRepo, 100, 1000)

	return &registry{
		db:           db,
		auditRepo:    repositories.NewAuditLogRepository(db),
		members:      usecases.NewMemberUsecase(uow, memberRepo, roleRepo, skillRepo, memberSkillRepo, trail, checker, validator, nil),
		memberSkills: usecases.NewMemberSkillUsecase(uow, memberRepo, skillRepo, memberSkillRepo, trail, validator, nil),
		skills:       usecases.NewSkillUsecase(uow, skillRepo, roleRepo, requirementRepo, memberSkillRepo, trail, validator, nil),
		roles:        usecases.NewRoleUsecase(uow, roleRepo, requirementRepo, skillRepo, memberRepo, trail, validator, nil),
		queries:      usecases.NewQueryUsecase(queryRepo, memberRepo, checker, validator),
		audit:        audit,
		reports:      usecases.NewReportUsecase(memberRepo, roleRepo, skillRepo, memberSkillRepo, queryRepo, audit, 10, 10),
	}
}

func (r *registry) mustRole(t *testing.T, name string, reqs ...entities.RequirementLevel) *entities.Role {
	t.Helper()
	role, err := r.roles.CreateRole(context.Background(), &entities.RoleInput{Name: name, Requirements: reqs})
	require.NoError(t, err)
	return role
}

func (r *registry) mustSkill(t *testing.T, name string, category entities.SkillCategory) *entities.Skill {
	t.Helper()
	skill, err := r.skills.CreateSkill(context.Background(), &entities.SkillInput{Name: name, Category: string(category)})
	require.NoError(t, err)
	return skill
}

func (r *registry) mustMember(t *testing.T, first, last, email, phone string, role int64, skills ...entities.SkillLevelInput) *entities.Member {
	t.Helper()
	member, err := r.members.CreateMember(context.Background(), &entities.MemberInput{
		FirstName: first,
		LastName:  last,
		Email:     email,
		PhoneNo:   phone,
		RoleID:    &role,
		Skills:    skills,
	})
	require.NoError(t, err)
	return member
}

// auditFor returns the entries of one table, oldest first.
func (r *registry) auditFor(t *testing.T, table string) []*entities.AuditLogEntry {
	t.Helper()
	items, _, err := r.auditRepo.List(context.Background(), entities.AuditLogFilter{TableName: table})
	require.NoError(t, err)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

func (r *registry) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, r.db.Table(table).Count(&n).Error)
	return n
}
