package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"skill-registry.backend/internal/domain/entities"
	"skill-registry.backend/internal/domain/repositories"
	"skill-registry.backend/pkg/logger"
	"skill-registry.backend/pkg/metrics"
)

// AuditTrail writes one audit entry per mutated row. It must be called with the
// transaction context of the mutation so a failed write rolls the mutation back.
type AuditTrail struct {
	repo    repositories.AuditLogRepository
	metrics *metrics.RegistryMetrics
	now     func() time.Time
}

func NewAuditTrail(repo repositories.AuditLogRepository, m *metrics.RegistryMetrics) *AuditTrail {
	return &AuditTrail{repo: repo, metrics: m, now: time.Now}
}

func (a *AuditTrail) RecordInsert(ctx context.Context, rec entities.Auditable) error {
	after := rec.AuditSnapshot()
	return a.write(ctx, rec, entities.AuditInsert, null.String{}, null.StringFrom(after.String()), diffSnapshots(nil, after))
}

func (a *AuditTrail) RecordUpdate(ctx context.Context, before, after entities.Auditable) error {
	old, cur := before.AuditSnapshot(), after.AuditSnapshot()
	return a.write(ctx, after, entities.AuditUpdate, null.StringFrom(old.String()), null.StringFrom(cur.String()), diffSnapshots(old, cur))
}

func (a *AuditTrail) RecordDelete(ctx context.Context, rec entities.Auditable) error {
	before := rec.AuditSnapshot()
	return a.write(ctx, rec, entities.AuditDelete, null.StringFrom(before.String()), null.String{}, diffSnapshots(before, nil))
}

func (a *AuditTrail) write(ctx context.Context, rec entities.Auditable, op entities.AuditOperation, oldValue, newValue null.String, changes []entities.FieldChange) error {
	entry := &entities.AuditLogEntry{
		TableName:     rec.AuditTable(),
		OperationType: op,
		RecordID:      rec.AuditRecordID(),
		OldValue:      oldValue,
		NewValue:      newValue,
		Changes:       changes,
		ChangeDate:    a.now().UTC(),
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		logger.Error(ctx, "Failed to write audit entry",
			zap.String("table", entry.TableName),
			zap.String("operation", string(op)),
			zap.String("record_id", entry.RecordID),
			zap.Error(err),
		)
		return fmt.Errorf("record %s audit for %s %s: %w", op, entry.TableName, entry.RecordID, err)
	}
	a.metrics.IncAuditEntry(entry.TableName, string(op))
	return nil
}

// diffSnapshots lists the fields whose value differs. A nil side means the row
// did not exist, so every field of the other side is reported.
func diffSnapshots(before, after entities.AuditSnapshot) []entities.FieldChange {
	changes := make([]entities.FieldChange, 0)
	switch {
	case before == nil:
		for _, f := range after {
			changes = append(changes, entities.FieldChange{Field: f.Name, New: null.StringFrom(f.Value)})
		}
	case after == nil:
		for _, f := range before {
			changes = append(changes, entities.FieldChange{Field: f.Name, Old: null.StringFrom(f.Value)})
		}
	default:
		old := make(map[string]string, len(before))
		for _, f := range before {
			old[f.Name] = f.Value
		}
		for _, f := range after {
			prev, ok := old[f.Name]
			if ok && prev == f.Value {
				continue
			}
			change := entities.FieldChange{Field: f.Name, New: null.StringFrom(f.Value)}
			if ok {
				change.Old = null.StringFrom(prev)
			}
			changes = append(changes, change)
		}
	}
	return changes
}
