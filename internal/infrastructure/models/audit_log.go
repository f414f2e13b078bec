package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID            int64          `gorm:"column:log_id;primaryKey;autoIncrement"`
	Table         string         `gorm:"column:table_name;type:varchar(64);not null;index"`
	OperationType string         `gorm:"type:varchar(10);not null"`
	RecordID      string         `gorm:"type:varchar(64);not null"`
	OldValue      *string        `gorm:"type:text"`
	NewValue      *string        `gorm:"type:text"`
	Changes       datatypes.JSON `gorm:"type:jsonb"`
	ChangeDate    time.Time      `gorm:"not null;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
