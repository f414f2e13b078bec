package repositories

import (
	"context"

	"skill-registry.backend/internal/domain/entities"
)

// AuditLogRepository is append-only: entries are never updated or deleted
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entities.AuditLogEntry) error
	// List returns matching entries newest first and the total match count
	List(ctx context.Context, filter entities.AuditLogFilter) ([]*entities.AuditLogEntry, int64, error)
	DistinctTables(ctx context.Context) ([]string, error)
	DistinctOperations(ctx context.Context) ([]string, error)
}
