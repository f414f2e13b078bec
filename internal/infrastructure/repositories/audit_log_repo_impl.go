package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"skill-registry.backend/internal/domain/entities"
	"skill-registry.backend/internal/infrastructure/models"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *entities.AuditLogEntry) error {
	changes := entry.Changes
	if changes == nil {
		changes = []entities.FieldChange{}
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("encode audit changes: %w", err)
	}

	m := &models.AuditLog{
		Table:         entry.TableName,
		OperationType: string(entry.OperationType),
		RecordID:      entry.RecordID,
		OldValue:      entry.OldValue.Ptr(),
		NewValue:      entry.NewValue.Ptr(),
		Changes:       datatypes.JSON(raw),
		ChangeDate:    entry.ChangeDate,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return classify(err)
	}
	entry.ID = m.ID
	return nil
}

func (r *AuditLogRepository) List(ctx context.Context, filter entities.AuditLogFilter) ([]*entities.AuditLogEntry, int64, error) {
	filtered := func() *gorm.DB {
		query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.AuditLog{})
		if t := strings.TrimSpace(filter.TableName); t != "" {
			query = query.Where("table_name = ?", t)
		}
		if op := strings.TrimSpace(filter.OperationType); op != "" {
			query = query.Where("operation_type = ?", strings.ToUpper(op))
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	var ms []models.AuditLog
	q := filtered().Order("change_date DESC, log_id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, classify(err)
	}

	items := make([]*entities.AuditLogEntry, 0, len(ms))
	for i := range ms {
		item, err := toAuditEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (r *AuditLogRepository) DistinctTables(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "table_name")
}

func (r *AuditLogRepository) DistinctOperations(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "operation_type")
}

func (r *AuditLogRepository) distinct(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AuditLog{}).
		Distinct(column).
		Order(column+" ASC").
		Pluck(column, &values).Error
	if err != nil {
		return nil, classify(err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func toAuditEntity(m *models.AuditLog) (*entities.AuditLogEntry, error) {
	var changes []entities.FieldChange
	if len(m.Changes) > 0 {
		if err := json.Unmarshal(m.Changes, &changes); err != nil {
			return nil, fmt.Errorf("decode audit changes of log %d: %w", m.ID, err)
		}
	}
	if changes == nil {
		changes = []entities.FieldChange{}
	}
	return &entities.AuditLogEntry{
		ID:            m.ID,
		TableName:     m.Table,
		OperationType: entities.AuditOperation(m.OperationType),
		RecordID:      m.RecordID,
		OldValue:      null.StringFromPtr(m.OldValue),
		NewValue:      null.StringFromPtr(m.NewValue),
		Changes:       changes,
		ChangeDate:    m.ChangeDate,
	}, nil
}
