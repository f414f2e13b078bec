package main

import (
	"github.com/gin-gonic/gin"
	"skill-registry.backend/internal/interfaces/http/handlers"
	"skill-registry.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	memberHandler *handlers.MemberHandler
	skillHandler  *handlers.SkillHandler
	roleHandler   *handlers.RoleHandler
	queryHandler  *handlers.QueryHandler
	auditHandler  *handlers.AuditHandler
	reportHandler *handlers.ReportHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		members := v1.Group("/members")
		{
			members.GET("", d.memberHandler.ListMembers)
			members.POST("", middleware.IdempotencyMiddleware(), d.memberHandler.CreateMember)
			members.GET("/:id", d.memberHandler.GetMember)
			members.PUT("/:id", d.memberHandler.UpdateMember)
			members.DELETE("/:id", d.memberHandler.DeleteMember)

			members.GET("/:id/skills", d.memberHandler.ListSkills)
			members.POST("/:id/skills", middleware.IdempotencyMiddleware(), d.memberHandler.AssignSkill)
			members.PUT("/:id/skills/:skillId", d.memberHandler.UpdateProficiency)
			members.DELETE("/:id/skills/:skillId", d.memberHandler.RemoveSkill)

			members.GET("/:id/eligible-roles", d.queryHandler.GetEligibleRoles)
		}

		skills := v1.Group("/skills")
		{
			skills.GET("", d.skillHandler.ListSkills)
			skills.POST("", middleware.IdempotencyMiddleware(), d.skillHandler.CreateSkill)
			skills.GET("/:id", d.skillHandler.GetSkill)
			skills.PUT("/:id", d.skillHandler.UpdateSkill)
			skills.DELETE("/:id", d.skillHandler.DeleteSkill)
		}

		roles := v1.Group("/roles")
		{
			roles.GET("", d.roleHandler.ListRoles)
			roles.POST("", middleware.IdempotencyMiddleware(), d.roleHandler.CreateRole)
			roles.GET("/:id", d.roleHandler.GetRole)
			roles.PUT("/:id", d.roleHandler.UpdateRole)
			roles.DELETE("/:id", d.roleHandler.DeleteRole)

			roles.POST("/:id/requirements", middleware.IdempotencyMiddleware(), d.roleHandler.AddRequirement)
			roles.PUT("/:id/requirements/:skillId", d.roleHandler.UpdateRequirement)
			roles.DELETE("/:id/requirements/:skillId", d.roleHandler.RemoveRequirement)
		}

		v1.GET("/experts", d.queryHandler.FindExperts)
		v1.GET("/profiles/:email", d.queryHandler.GetMemberProfile)

		audit := v1.Group("/audit-logs")
		{
			audit.GET("", d.auditHandler.ListAuditLogs)
			audit.GET("/filters", d.auditHandler.ListAuditFilters)
		}

		v1.GET("/dashboard", d.reportHandler.Dashboard)
		v1.GET("/reports", d.reportHandler.Reports)
		v1.GET("/reports/user-skills", d.reportHandler.UserSkills)
	}
}
