package usecases_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/usecases"
)

type reportFixture struct {
	memberRepo      *MockMemberRepository
	roleRepo        *MockRoleRepository
	skillRepo       *MockSkillRepository
	memberSkillRepo *MockMemberSkillRepository
	queryRepo       *MockQueryRepository
	auditRepo       *MockAuditLogRepository
	uc              *usecases.ReportUsecase
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		memberRepo:      new(MockMemberRepository),
		roleRepo:        new(MockRoleRepository),
		skillRepo:       new(MockSkillRepository),
		memberSkillRepo: new(MockMemberSkillRepository),
		queryRepo:       new(MockQueryRepository),
		auditRepo:       new(MockAuditLogRepository),
	}
	audit := usecases.NewAuditUsecase(f.auditRepo, 100, 1000)
	f.uc = usecases.NewReportUsecase(f.memberRepo, f.roleRepo, f.skillRepo, f.memberSkillRepo, f.queryRepo, audit, 10, 10)
	return f
}

func TestReportUsecase_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()
	f.memberRepo.On("Count", ctx).Return(int64(3), nil)
	f.roleRepo.On("Count", ctx).Return(int64(2), nil)
	f.skillRepo.On("Count", ctx).Return(int64(5), nil)
	f.memberSkillRepo.On("Count", ctx).Return(int64(7), nil)
	recent := []*entities.AuditLogEntry{{ID: 9, TableName: "skills", OperationType: entities.AuditInsert}}
	f.auditRepo.On("List", ctx, entities.AuditLogFilter{Limit: 10}).Return(recent, int64(1), nil)

	stats, err := f.uc.Dashboard(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalMembers)
	assert.Equal(t, int64(2), stats.TotalRoles)
	assert.Equal(t, int64(5), stats.TotalSkills)
	assert.Equal(t, int64(7), stats.TotalAssignments)
	assert.Equal(t, recent, stats.RecentActivity)
}

func TestReportUsecase_DashboardStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()
	f.memberRepo.On("Count", ctx).Return(int64(0), domainerrors.ErrStoreUnavailable)

	_, err := f.uc.Dashboard(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
	f.roleRepo.AssertNotCalled(t, "Count", mock.Anything)
}

func TestReportUsecase_Reports(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()
	f.queryRepo.On("CategoryStats", ctx).Return([]*entities.CategoryStat{{Category: entities.SkillCategoryTechnical, SkillCount: 2}}, nil)
	f.queryRepo.On("TopSkills", ctx, 10).Return([]*entities.TopSkill{{SkillName: "Java", MemberCount: 2, AvgProficiency: decimal.NewFromInt(4)}}, nil)
	f.queryRepo.On("MemberStats", ctx).Return([]*entities.MemberStat{}, nil)
	f.queryRepo.On("RoleStats", ctx).Return([]*entities.RoleStat{{RoleName: "Tester"}}, nil)

	reports, err := f.uc.Reports(ctx)
	assert.NoError(t, err)
	assert.Len(t, reports.Categories, 1)
	assert.Equal(t, "Java", reports.TopSkills[0].SkillName)
	assert.Empty(t, reports.MemberStats)
	assert.Equal(t, "Tester", reports.RoleStats[0].RoleName)

	f.queryRepo.On("UserSkills", ctx).Return([]*entities.UserSkillsRow{{FullName: "A B", Skills: "Java (3)"}}, nil)
	rows, err := f.uc.UserSkills(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Java (3)", rows[0].Skills)
}
