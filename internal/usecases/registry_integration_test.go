package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/infrastructure/repositories"
)

func TestRegistry_MemberAuditFidelity(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	tester := r.mustRole(t, "Tester")
	senior := r.mustRole(t, "Senior Tester")

	member := r.mustMember(t, "Trigger", "Test", "trigger.test@gmail.com", "5550000001", tester.ID)

	roleID := senior.ID
	_, err := r.members.UpdateMember(ctx, member.ID, &entities.MemberInput{
		FirstName: "Trigger",
		LastName:  "Test",
		Email:     "trigger.test@gmail.com",
		PhoneNo:   "5550000001",
		RoleID:    &roleID,
	})
	require.NoError(t, err)

	entries := r.auditFor(t, entities.AuditTableMembers)
	require.Len(t, entries, 2)

	insert := entries[0]
	assert.Equal(t, entities.AuditInsert, insert.OperationType)
	assert.False(t, insert.OldValue.Valid)
	assert.Contains(t, insert.NewValue.String, "Name: Trigger Test")
	assert.Contains(t, insert.NewValue.String, "Role: Tester")

	update := entries[1]
	assert.Equal(t, entities.AuditUpdate, update.OperationType)
	assert.Contains(t, update.OldValue.String, "Role: Tester")
	assert.Contains(t, update.NewValue.String, "Role: Senior Tester")
	require.Len(t, update.Changes, 1)
	assert.Equal(t, "Role", update.Changes[0].Field)
	assert.Equal(t, "Tester", update.Changes[0].Old.String)
	assert.Equal(t, "Senior Tester", update.Changes[0].New.String)
}

func TestRegistry_SkillAndProficiencyAudit(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	staff := r.mustRole(t, "Staff")
	skill := r.mustSkill(t, "Trigger Skill", entities.SkillCategoryTechnical)
	member := r.mustMember(t, "Audit", "Person", "audit.person@gmail.com", "5550000002", staff.ID)

	skillEntries := r.auditFor(t, entities.AuditTableSkills)
	require.Len(t, skillEntries, 1)
	assert.Contains(t, skillEntries[0].NewValue.String, "Skill: Trigger Skill")

	ms, created, err := r.memberSkills.AssignSkill(ctx, member.ID, &entities.SkillLevelInput{SkillID: skill.ID})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entities.DefaultProficiency, ms.ProficiencyLevel)

	_, err = r.memberSkills.UpdateProficiency(ctx, member.ID, skill.ID, &entities.ProficiencyInput{Proficiency: 5})
	require.NoError(t, err)

	// same level again is a no-op
	_, err = r.memberSkills.UpdateProficiency(ctx, member.ID, skill.ID, &entities.ProficiencyInput{Proficiency: 5})
	require.NoError(t, err)

	entries := r.auditFor(t, entities.AuditTableMemberSkills)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.AuditInsert, entries[0].OperationType)
	assert.Contains(t, entries[0].NewValue.String, "Proficiency: 3")
	assert.Equal(t, entities.AuditUpdate, entries[1].OperationType)
	assert.Contains(t, entries[1].OldValue.String, "Proficiency: 3")
	assert.Contains(t, entries[1].NewValue.String, "Proficiency: 5")

	_, created, err = r.memberSkills.AssignSkill(ctx, member.ID, &entities.SkillLevelInput{SkillID: skill.ID, Proficiency: 2})
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, r.memberSkills.RemoveSkill(ctx, member.ID, skill.ID))
	entries = r.auditFor(t, entities.AuditTableMemberSkills)
	require.Len(t, entries, 4)
	last := entries[3]
	assert.Equal(t, entities.AuditDelete, last.OperationType)
	assert.False(t, last.NewValue.Valid)
	assert.Equal(t, "Member: 1, Skill: 1, Proficiency: 2", last.OldValue.String)

	err = r.memberSkills.RemoveSkill(ctx, member.ID, skill.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRegistry_EligibilityEnforced(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	java := r.mustSkill(t, "Java", entities.SkillCategoryTechnical)
	staff := r.mustRole(t, "Staff")
	dev := r.mustRole(t, "Developer", entities.RequirementLevel{ID: java.ID, MinProficiency: 3})

	devID := dev.ID
	_, err := r.members.CreateMember(ctx, &entities.MemberInput{
		FirstName: "Low",
		LastName:  "Skill",
		Email:     "low.skill@gmail.com",
		PhoneNo:   "5550000003",
		RoleID:    &devID,
		Skills:    []entities.SkillLevelInput{{SkillID: java.ID, Proficiency: 2}},
	})
	require.ErrorIs(t, err, domainerrors.ErrRoleIneligible)
	assert.Equal(t, int64(0), r.count(t, "team_members"))
	assert.Equal(t, int64(0), r.count(t, "mem_skills"))
	assert.Empty(t, r.auditFor(t, entities.AuditTableMembers))
	assert.Empty(t, r.auditFor(t, entities.AuditTableMemberSkills))

	member := r.mustMember(t, "Good", "Skill", "good.skill@gmail.com", "5550000004", dev.ID,
		entities.SkillLevelInput{SkillID: java.ID, Proficiency: 3})
	assert.Equal(t, "Developer", member.RoleName.String)

	// lowering the skill in the same edit that keeps the role fails as a whole
	_, err = r.members.UpdateMember(ctx, member.ID, &entities.MemberInput{
		FirstName: "Good",
		LastName:  "Skill",
		Email:     "good.skill@gmail.com",
		PhoneNo:   "5550000004",
		RoleID:    &devID,
		Skills:    []entities.SkillLevelInput{{SkillID: java.ID, Proficiency: 1}},
	})
	require.ErrorIs(t, err, domainerrors.ErrRoleIneligible)
	detail, err := r.members.GetMember(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, detail.Skills, 1)
	assert.Equal(t, 3, detail.Skills[0].ProficiencyLevel)

	// moving to a role without requirements while dropping the skill succeeds
	staffID := staff.ID
	updated, err := r.members.UpdateMember(ctx, member.ID, &entities.MemberInput{
		FirstName: "Good",
		LastName:  "Skill",
		Email:     "good.skill@gmail.com",
		PhoneNo:   "5550000004",
		RoleID:    &staffID,
		Skills:    []entities.SkillLevelInput{},
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff", updated.RoleName.String)
	assert.Equal(t, int64(0), r.count(t, "mem_skills"))

	roles, err := r.queries.GetEligibleRoles(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Staff", roles[0].RoleName)
}

func TestRegistry_ContactEditKeepsRoleAfterRequirementRaised(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	java := r.mustSkill(t, "Java", entities.SkillCategoryTechnical)
	dev := r.mustRole(t, "Developer", entities.RequirementLevel{ID: java.ID, MinProficiency: 3})
	member := r.mustMember(t, "Kept", "Role", "kept.role@gmail.com", "5550000005", dev.ID,
		entities.SkillLevelInput{SkillID: java.ID, Proficiency: 3})

	require.NoError(t, r.db.Exec("UPDATE role_requirements SET min_proficiency_required = 5 WHERE role_id = ?", dev.ID).Error)

	devID := dev.ID
	updated, err := r.members.UpdateMember(ctx, member.ID, &entities.MemberInput{
		FirstName: "Kept",
		LastName:  "Role",
		Email:     "kept.role@gmail.com",
		PhoneNo:   "5550000006",
		RoleID:    &devID,
	})
	require.NoError(t, err)
	assert.Equal(t, "5550000006", updated.PhoneNo)
	assert.Equal(t, "Developer", updated.RoleName.String)

	// resubmitting the skill set re-checks the role
	_, err = r.members.UpdateMember(ctx, member.ID, &entities.MemberInput{
		FirstName: "Kept",
		LastName:  "Role",
		Email:     "kept.role@gmail.com",
		PhoneNo:   "5550000007",
		RoleID:    &devID,
		Skills:    []entities.SkillLevelInput{{SkillID: java.ID, Proficiency: 3}},
	})
	require.ErrorIs(t, err, domainerrors.ErrRoleIneligible)
	detail, err := r.members.GetMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "5550000006", detail.Member.PhoneNo)
}

func TestRegistry_UniquenessInvariant(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	staff := r.mustRole(t, "Staff")
	first := r.mustMember(t, "First", "One", "first.one@gmail.com", "5550000005", staff.ID)
	r.mustMember(t, "Second", "Two", "second.two@gmail.com", "5550000006", staff.ID)

	staffID := staff.ID
	_, err := r.members.CreateMember(ctx, &entities.MemberInput{
		FirstName: "Third", LastName: "Three", Email: "first.one@gmail.com", PhoneNo: "5550000007", RoleID: &staffID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = r.members.UpdateMember(ctx, first.ID, &entities.MemberInput{
		FirstName: "First", LastName: "One", Email: "first.one@gmail.com", PhoneNo: "5550000006", RoleID: &staffID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	// keeping its own email and phone is allowed
	_, err = r.members.UpdateMember(ctx, first.ID, &entities.MemberInput{
		FirstName: "First", MiddleName: "Middle", LastName: "One", Email: "first.one@gmail.com", PhoneNo: "5550000005", RoleID: &staffID,
	})
	assert.NoError(t, err)

	_, err = r.skills.CreateSkill(ctx, &entities.SkillInput{Name: "Dup", Category: "Technical"})
	require.NoError(t, err)
	_, err = r.skills.CreateSkill(ctx, &entities.SkillInput{Name: "Dup", Category: "Clinical"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	_, err = r.roles.CreateRole(ctx, &entities.RoleInput{Name: "Staff"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestRegistry_CascadeOnDelete(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	java := r.mustSkill(t, "Java", entities.SkillCategoryTechnical)
	triage := r.mustSkill(t, "Triage", entities.SkillCategoryClinical)
	tester := r.mustRole(t, "Tester", entities.RequirementLevel{ID: triage.ID, MinProficiency: 1})
	a := r.mustMember(t, "Ann", "A", "ann.a@gmail.com", "5550000008", tester.ID,
		entities.SkillLevelInput{SkillID: java.ID, Proficiency: 4},
		entities.SkillLevelInput{SkillID: triage.ID, Proficiency: 2})
	b := r.mustMember(t, "Ben", "B", "ben.b@gmail.com", "5550000009", tester.ID,
		entities.SkillLevelInput{SkillID: triage.ID})

	// deleting a member removes its ratings with one audit entry each
	require.NoError(t, r.members.DeleteMember(ctx, a.ID))
	assert.Equal(t, int64(1), r.count(t, "mem_skills"))
	deletes, _, err := r.auditRepo.List(ctx, entities.AuditLogFilter{TableName: entities.AuditTableMemberSkills, OperationType: "DELETE"})
	require.NoError(t, err)
	assert.Len(t, deletes, 2)
	memberDeletes, _, err := r.auditRepo.List(ctx, entities.AuditLogFilter{TableName: entities.AuditTableMembers, OperationType: "DELETE"})
	require.NoError(t, err)
	require.Len(t, memberDeletes, 1)
	assert.Contains(t, memberDeletes[0].OldValue.String, "Name: Ann A")

	// deleting a skill removes ratings and requirements
	require.NoError(t, r.skills.DeleteSkill(ctx, triage.ID))
	assert.Equal(t, int64(0), r.count(t, "mem_skills"))
	assert.Equal(t, int64(0), r.count(t, "role_requirements"))
	skillDeletes, _, err := r.auditRepo.List(ctx, entities.AuditLogFilter{TableName: entities.AuditTableSkills, OperationType: "DELETE"})
	require.NoError(t, err)
	require.Len(t, skillDeletes, 1)
	assert.Equal(t, "Skill: Triage, Category: Clinical", skillDeletes[0].OldValue.String)

	// deleting a role detaches its members
	require.NoError(t, r.roles.DeleteRole(ctx, tester.ID))
	detail, err := r.members.GetMember(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, detail.Member.RoleID.Valid)
	updates, _, err := r.auditRepo.List(ctx, entities.AuditLogFilter{TableName: entities.AuditTableMembers, OperationType: "UPDATE"})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Contains(t, updates[0].OldValue.String, "Role: Tester")
	assert.Contains(t, updates[0].NewValue.String, "Role: None")

	assert.ErrorIs(t, r.roles.DeleteRole(ctx, tester.ID), domainerrors.ErrNotFound)
	assert.ErrorIs(t, r.skills.DeleteSkill(ctx, triage.ID), domainerrors.ErrNotFound)
	assert.ErrorIs(t, r.members.DeleteMember(ctx, a.ID), domainerrors.ErrNotFound)
}

type failingAuditRepo struct {
	*repositories.AuditLogRepository
	table string
}

func (f failingAuditRepo) Create(ctx context.Context, entry *entities.AuditLogEntry) error {
	if entry.TableName == f.table {
		return errors.New("audit write failed")
	}
	return f.AuditLogRepository.Create(ctx, entry)
}

func TestRegistry_AuditFailureRollsBackMutation(t *testing.T) {
	base := newRegistry(t)
	ctx := context.Background()
	staff := base.mustRole(t, "Staff")
	java := base.mustSkill(t, "Java", entities.SkillCategoryTechnical)

	r := newRegistryWithAudit(t, base.db, failingAuditRepo{
		AuditLogRepository: repositories.NewAuditLogRepository(base.db),
		table:              entities.AuditTableMemberSkills,
	})

	staffID := staff.ID
	_, err := r.members.CreateMember(ctx, &entities.MemberInput{
		FirstName: "Roll", LastName: "Back", Email: "roll.back@gmail.com", PhoneNo: "5550000010", RoleID: &staffID,
		Skills: []entities.SkillLevelInput{{SkillID: java.ID, Proficiency: 4}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit write failed")
	assert.Equal(t, int64(0), r.count(t, "team_members"))
	assert.Equal(t, int64(0), r.count(t, "mem_skills"))
	assert.Empty(t, r.auditFor(t, entities.AuditTableMembers))
}

func TestRegistry_ExpertsAndProfile(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	java := r.mustSkill(t, "Java", entities.SkillCategoryTechnical)
	staff := r.mustRole(t, "Staff")
	r.mustMember(t, "Expert", "A", "expert.a@gmail.com", "5550000011", staff.ID,
		entities.SkillLevelInput{SkillID: java.ID, Proficiency: 5})
	r.mustMember(t, "Novice", "B", "novice.b@gmail.com", "5550000012", staff.ID,
		entities.SkillLevelInput{SkillID: java.ID, Proficiency: 3})
	r.mustMember(t, "Profile", "C", "profile.c@gmail.com", "5550000013", staff.ID,
		entities.SkillLevelInput{SkillID: java.ID, Proficiency: 4})

	before := r.count(t, "audit_logs")

	experts, err := r.queries.FindExperts(ctx, "Java", 5)
	require.NoError(t, err)
	require.Len(t, experts, 1)
	assert.Equal(t, "Expert A", experts[0].Name)
	assert.Equal(t, 5, experts[0].Proficiency)

	experts, err = r.queries.FindExperts(ctx, "Java", 4)
	require.NoError(t, err)
	require.Len(t, experts, 2)
	assert.Equal(t, "Expert A", experts[0].Name)
	assert.Equal(t, "Profile C", experts[1].Name)

	again, err := r.queries.FindExperts(ctx, "Java", 4)
	require.NoError(t, err)
	assert.Equal(t, experts, again)

	profile, err := r.queries.GetMemberProfile(ctx, "profile.c@gmail.com")
	require.NoError(t, err)
	require.Len(t, profile, 1)
	assert.Equal(t, 4, profile[0].ProficiencyLevel)
	assert.Equal(t, "Java", profile[0].SkillName)

	assert.Equal(t, before, r.count(t, "audit_logs"), "reads must not write audit entries")
}

func TestRegistry_RoleRequirementEditing(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	java := r.mustSkill(t, "Java", entities.SkillCategoryTechnical)
	sql := r.mustSkill(t, "SQL", entities.SkillCategoryTechnical)
	empathy := r.mustSkill(t, "Empathy", entities.SkillCategorySoftSkill)
	role := r.mustRole(t, "Developer",
		entities.RequirementLevel{ID: java.ID, MinProficiency: 3},
		entities.RequirementLevel{ID: sql.ID, MinProficiency: 2})

	updated, err := r.roles.UpdateRole(ctx, role.ID, &entities.RoleUpdateInput{
		Name:        "Backend Developer",
		Description: "APIs",
		Requirements: entities.RequirementChanges{
			Update: []entities.RequirementLevel{{ID: java.ID, MinProficiency: 4}},
			Add:    []entities.RequirementLevel{{ID: empathy.ID, MinProficiency: 1}},
			Remove: []int64{sql.ID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Developer", updated.Name)

	detail, err := r.roles.GetRole(ctx, role.ID)
	require.NoError(t, err)
	require.Len(t, detail.Requirements, 2)
	assert.Equal(t, "Empathy", detail.Requirements[0].SkillName)
	assert.Equal(t, 4, detail.Requirements[1].MinProficiency)
	require.Len(t, detail.AvailableSkills, 1)
	assert.Equal(t, "SQL", detail.AvailableSkills[0].Name)

	_, err = r.roles.AddRequirement(ctx, role.ID, &entities.RequirementLevel{ID: java.ID, MinProficiency: 2})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	req, err := r.roles.AddRequirement(ctx, role.ID, &entities.RequirementLevel{ID: sql.ID, MinProficiency: 2})
	require.NoError(t, err)
	assert.Equal(t, "SQL", req.SkillName)

	req, err = r.roles.UpdateRequirement(ctx, role.ID, sql.ID, &entities.MinProficiencyInput{MinProficiency: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, req.MinProficiency)

	require.NoError(t, r.roles.RemoveRequirement(ctx, role.ID, sql.ID))
	assert.ErrorIs(t, r.roles.RemoveRequirement(ctx, role.ID, sql.ID), domainerrors.ErrNotFound)

	// a failing step leaves the whole diff unapplied
	_, err = r.roles.UpdateRole(ctx, role.ID, &entities.RoleUpdateInput{
		Name: "Renamed",
		Requirements: entities.RequirementChanges{
			Update: []entities.RequirementLevel{{ID: sql.ID, MinProficiency: 1}},
		},
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	roleDetail, err := r.roles.GetRole(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Developer", roleDetail.Role.Name)

	skillDetail, err := r.skills.GetSkill(ctx, java.ID)
	require.NoError(t, err)
	require.Len(t, skillDetail.RequiredBy, 1)
	assert.Empty(t, skillDetail.OtherRoles)
}

func TestRegistry_SkillEditWithRoleRequirements(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	lead := r.mustRole(t, "Lead")
	nurse := r.mustRole(t, "Nurse")

	skill, err := r.skills.CreateSkill(ctx, &entities.SkillInput{
		Name:         "Triage",
		Category:     "Clinical",
		Requirements: []entities.RequirementLevel{{ID: nurse.ID, MinProficiency: 3}},
	})
	require.NoError(t, err)

	updated, err := r.skills.UpdateSkill(ctx, skill.ID, &entities.SkillUpdateInput{
		Name:     "Emergency Triage",
		Category: "Clinical",
		Requirements: entities.RequirementChanges{
			Update: []entities.RequirementLevel{{ID: nurse.ID, MinProficiency: 4}},
			Add:    []entities.RequirementLevel{{ID: lead.ID, MinProficiency: 2}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Emergency Triage", updated.Name)

	detail, err := r.skills.GetSkill(ctx, skill.ID)
	require.NoError(t, err)
	require.Len(t, detail.RequiredBy, 2)
	assert.Equal(t, "Lead", detail.RequiredBy[0].RoleName)
	assert.Equal(t, 4, detail.RequiredBy[1].MinProficiency)

	entries := r.auditFor(t, entities.AuditTableSkills)
	require.Len(t, entries, 2)
	assert.Equal(t, "Skill: Triage, Category: Clinical", entries[1].OldValue.String)
	assert.Equal(t, "Skill: Emergency Triage, Category: Clinical", entries[1].NewValue.String)

	_, err = r.skills.CreateSkill(ctx, &entities.SkillInput{Name: "Bad", Category: "Cooking"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestRegistry_DashboardAndReports(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()
	java := r.mustSkill(t, "Java", entities.SkillCategoryTechnical)
	staff := r.mustRole(t, "Staff")
	r.mustMember(t, "Dash", "Board", "dash.board@gmail.com", "5550000014", staff.ID,
		entities.SkillLevelInput{SkillID: java.ID, Proficiency: 4})

	stats, err := r.reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalMembers)
	assert.Equal(t, int64(1), stats.TotalRoles)
	assert.Equal(t, int64(1), stats.TotalSkills)
	assert.Equal(t, int64(1), stats.TotalAssignments)
	require.Len(t, stats.RecentActivity, 3)
	assert.Equal(t, entities.AuditTableMemberSkills, stats.RecentActivity[0].TableName)

	rows, err := r.reports.UserSkills(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Java (4)", rows[0].Skills)

	filters, err := r.audit.ListAuditFilters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mem_skills", "skills", "team_members"}, filters.Tables)
	assert.Equal(t, []string{"INSERT"}, filters.Operations)
}
