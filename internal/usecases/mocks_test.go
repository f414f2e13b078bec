package usecases_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"skill-registry.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// Mock MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *entities.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id int64) (*entities.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByEmail(ctx context.Context, email string) (*entities.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) List(ctx context.Context) ([]*entities.MemberSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MemberSummary), args.Error(1)
}

func (m *MockMemberRepository) ListByRole(ctx context.Context, roleID int64) ([]*entities.Member, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) PhoneTaken(ctx context.Context, phone string, excludeID int64) (bool, error) {
	args := m.Called(ctx, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *entities.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) ClearRole(ctx context.Context, roleID int64) (int64, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemberRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Create(ctx context.Context, role *entities.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id int64) (*entities.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Role), args.Error(1)
}

func (m *MockRoleRepository) List(ctx context.Context) ([]*entities.RoleSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RoleSummary), args.Error(1)
}

func (m *MockRoleRepository) ListAll(ctx context.Context) ([]*entities.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Role), args.Error(1)
}

func (m *MockRoleRepository) ListNotRequiringSkill(ctx context.Context, skillID int64) ([]*entities.Role, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Role), args.Error(1)
}

func (m *MockRoleRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleRepository) Update(ctx context.Context, role *entities.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock RoleRequirementRepository
type MockRoleRequirementRepository struct {
	mock.Mock
}

func (m *MockRoleRequirementRepository) Get(ctx context.Context, roleID, skillID int64) (*entities.RoleRequirement, error) {
	args := m.Called(ctx, roleID, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RoleRequirement), args.Error(1)
}

func (m *MockRoleRequirementRepository) ListByRole(ctx context.Context, roleID int64) ([]*entities.RoleRequirement, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RoleRequirement), args.Error(1)
}

func (m *MockRoleRequirementRepository) ListBySkill(ctx context.Context, skillID int64) ([]*entities.RoleRequirement, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RoleRequirement), args.Error(1)
}

func (m *MockRoleRequirementRepository) ListAll(ctx context.Context) ([]*entities.RoleRequirement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RoleRequirement), args.Error(1)
}

func (m *MockRoleRequirementRepository) Create(ctx context.Context, req *entities.RoleRequirement) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRoleRequirementRepository) Update(ctx context.Context, req *entities.RoleRequirement) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRoleRequirementRepository) Delete(ctx context.Context, roleID, skillID int64) error {
	args := m.Called(ctx, roleID, skillID)
	return args.Error(0)
}

func (m *MockRoleRequirementRepository) DeleteByRole(ctx context.Context, roleID int64) error {
	args := m.Called(ctx, roleID)
	return args.Error(0)
}

func (m *MockRoleRequirementRepository) DeleteBySkill(ctx context.Context, skillID int64) error {
	args := m.Called(ctx, skillID)
	return args.Error(0)
}

// Mock MemberSkillRepository
type MockMemberSkillRepository struct {
	mock.Mock
}

func (m *MockMemberSkillRepository) Get(ctx context.Context, memberID, skillID int64) (*entities.MemberSkill, error) {
	args := m.Called(ctx, memberID, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MemberSkill), args.Error(1)
}

func (m *MockMemberSkillRepository) ListByMember(ctx context.Context, memberID int64) ([]*entities.MemberSkill, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MemberSkill), args.Error(1)
}

func (m *MockMemberSkillRepository) ListBySkill(ctx context.Context, skillID int64) ([]*entities.MemberSkill, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MemberSkill), args.Error(1)
}

func (m *MockMemberSkillRepository) ListHolders(ctx context.Context, skillID int64) ([]*entities.SkillHolder, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SkillHolder), args.Error(1)
}

func (m *MockMemberSkillRepository) Create(ctx context.Context, ms *entities.MemberSkill) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockMemberSkillRepository) UpdateProficiency(ctx context.Context, ms *entities.MemberSkill) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockMemberSkillRepository) Delete(ctx context.Context, memberID, skillID int64) error {
	args := m.Called(ctx, memberID, skillID)
	return args.Error(0)
}

func (m *MockMemberSkillRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, entry *entities.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, filter entities.AuditLogFilter) ([]*entities.AuditLogEntry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AuditLogEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) DistinctTables(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAuditLogRepository) DistinctOperations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Mock QueryRepository
type MockQueryRepository struct {
	mock.Mock
}

func (m *MockQueryRepository) FindExperts(ctx context.Context, skillName string, minProficiency int) ([]*entities.Expert, error) {
	args := m.Called(ctx, skillName, minProficiency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Expert), args.Error(1)
}

func (m *MockQueryRepository) GetMemberProfile(ctx context.Context, email string) ([]*entities.ProfileRow, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProfileRow), args.Error(1)
}

func (m *MockQueryRepository) CategoryStats(ctx context.Context) ([]*entities.CategoryStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CategoryStat), args.Error(1)
}

func (m *MockQueryRepository) TopSkills(ctx context.Context, limit int) ([]*entities.TopSkill, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TopSkill), args.Error(1)
}

func (m *MockQueryRepository) MemberStats(ctx context.Context) ([]*entities.MemberStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MemberStat), args.Error(1)
}

func (m *MockQueryRepository) RoleStats(ctx context.Context) ([]*entities.RoleStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RoleStat), args.Error(1)
}

func (m *MockQueryRepository) UserSkills(ctx context.Context) ([]*entities.UserSkillsRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UserSkillsRow), args.Error(1)
}

// Mock SkillRepository
type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) Create(ctx context.Context, skill *entities.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *MockSkillRepository) GetByID(ctx context.Context, id int64) (*entities.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Skill), args.Error(1)
}

func (m *MockSkillRepository) List(ctx context.Context) ([]*entities.SkillSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SkillSummary), args.Error(1)
}

func (m *MockSkillRepository) ListAll(ctx context.Context) ([]*entities.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Skill), args.Error(1)
}

func (m *MockSkillRepository) ListUnassigned(ctx context.Context, memberID int64) ([]*entities.Skill, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Skill), args.Error(1)
}

func (m *MockSkillRepository) ListNotRequiredByRole(ctx context.Context, roleID int64) ([]*entities.Skill, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Skill), args.Error(1)
}

func (m *MockSkillRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSkillRepository) Update(ctx context.Context, skill *entities.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *MockSkillRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSkillRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
