package usecases

import (
	"context"
	"strings"

	"skill-registry.backend/internal/domain/entities"
	domainerrors "skill-registry.backend/internal/domain/errors"
	"skill-registry.backend/internal/domain/repositories"
	"skill-registry.backend/pkg/utils"
)

// AuditQuery filters and pages the audit trail
type AuditQuery struct {
	Table     string
	Operation string
	Page      int
	Limit     int
}

// AuditPage is one page of audit entries, newest first
type AuditPage struct {
	Items []*entities.AuditLogEntry `json:"items"`
	Meta  utils.PaginationMeta      `json:"meta"`
}

// AuditUsecase reads the audit trail
type AuditUsecase struct {
	auditRepo    repositories.AuditLogRepository
	defaultLimit int
	maxLimit     int
}

func NewAuditUsecase(auditRepo repositories.AuditLogRepository, defaultLimit, maxLimit int) *AuditUsecase {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	if maxLimit <= 0 {
		maxLimit = 1000
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &AuditUsecase{auditRepo: auditRepo, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// ListAuditLogs returns matching entries newest first. The limit defaults to
// the configured default and is capped at the configured maximum.
func (u *AuditUsecase) ListAuditLogs(ctx context.Context, q AuditQuery) (*AuditPage, error) {
	op := strings.ToUpper(strings.TrimSpace(q.Operation))
	if op != "" && !entities.AuditOperation(op).IsValid() {
		return nil, domainerrors.BadRequest("operation must be one of INSERT, UPDATE, DELETE")
	}

	p := utils.BoundedPaginationParams(q.Page, q.Limit, u.defaultLimit, u.maxLimit)
	items, total, err := u.auditRepo.List(ctx, entities.AuditLogFilter{
		TableName:     strings.TrimSpace(q.Table),
		OperationType: op,
		Limit:         p.Limit,
		Offset:        p.CalculateOffset(),
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entities.AuditLogEntry{}
	}
	return &AuditPage{Items: items, Meta: utils.CalculateMeta(total, p.Page, p.Limit)}, nil
}

// Recent returns the newest n entries
func (u *AuditUsecase) Recent(ctx context.Context, n int) ([]*entities.AuditLogEntry, error) {
	page, err := u.ListAuditLogs(ctx, AuditQuery{Limit: n})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ListAuditFilters returns the distinct tables and operations present in the trail
func (u *AuditUsecase) ListAuditFilters(ctx context.Context) (*entities.AuditFilters, error) {
	tables, err := u.auditRepo.DistinctTables(ctx)
	if err != nil {
		return nil, err
	}
	ops, err := u.auditRepo.DistinctOperations(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.AuditFilters{Tables: tables, Operations: ops}, nil
}
