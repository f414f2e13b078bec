package usecases

import (
	"context"

	"skill-registry.backend/internal/domain/entities"
	"skill-registry.backend/internal/domain/repositories"
)

// ReportUsecase assembles the dashboard and the registry reports
type ReportUsecase struct {
	memberRepo      repositories.MemberRepository
	roleRepo        repositories.RoleRepository
	skillRepo       repositories.SkillRepository
	memberSkillRepo repositories.MemberSkillRepository
	queryRepo       repositories.QueryRepository
	audit           *AuditUsecase
	recentActivity  int
	topSkills       int
}

func NewReportUsecase(
	memberRepo repositories.MemberRepository,
	roleRepo repositories.RoleRepository,
	skillRepo repositories.SkillRepository,
	memberSkillRepo repositories.MemberSkillRepository,
	queryRepo repositories.QueryRepository,
	audit *AuditUsecase,
	recentActivity, topSkills int,
) *ReportUsecase {
	if recentActivity <= 0 {
		recentActivity = 10
	}
	if topSkills <= 0 {
		topSkills = 10
	}
	return &ReportUsecase{
		memberRepo:      memberRepo,
		roleRepo:        roleRepo,
		skillRepo:       skillRepo,
		memberSkillRepo: memberSkillRepo,
		queryRepo:       queryRepo,
		audit:           audit,
		recentActivity:  recentActivity,
		topSkills:       topSkills,
	}
}

// Dashboard returns registry totals and the latest audit entries
func (u *ReportUsecase) Dashboard(ctx context.Context) (*entities.DashboardStats, error) {
	stats := &entities.DashboardStats{}
	var err error
	if stats.TotalMembers, err = u.memberRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRoles, err = u.roleRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSkills, err = u.skillRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalAssignments, err = u.memberSkillRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.RecentActivity, err = u.audit.Recent(ctx, u.recentActivity); err != nil {
		return nil, err
	}
	return stats, nil
}

// Reports returns category, top skill, member and role statistics
func (u *ReportUsecase) Reports(ctx context.Context) (*entities.Reports, error) {
	reports := &entities.Reports{}
	var err error
	if reports.Categories, err = u.queryRepo.CategoryStats(ctx); err != nil {
		return nil, err
	}
	if reports.TopSkills, err = u.queryRepo.TopSkills(ctx, u.topSkills); err != nil {
		return nil, err
	}
	if reports.MemberStats, err = u.queryRepo.MemberStats(ctx); err != nil {
		return nil, err
	}
	if reports.RoleStats, err = u.queryRepo.RoleStats(ctx); err != nil {
		return nil, err
	}
	return reports, nil
}

// UserSkills lists each member with skills rendered as "Skill (level)"
func (u *ReportUsecase) UserSkills(ctx context.Context) ([]*entities.UserSkillsRow, error) {
	return u.queryRepo.UserSkills(ctx)
}
