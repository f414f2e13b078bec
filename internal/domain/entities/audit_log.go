package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// AuditOperation is the kind of mutation recorded in the audit trail
type AuditOperation string

const (
	AuditInsert AuditOperation = "INSERT"
	AuditUpdate AuditOperation = "UPDATE"
	AuditDelete AuditOperation = "DELETE"
)

// Audited tables
const (
	AuditTableMembers      = "team_members"
	AuditTableSkills       = "skills"
	AuditTableMemberSkills = "mem_skills"
)

func (o AuditOperation) IsValid() bool {
	switch o {
	case AuditInsert, AuditUpdate, AuditDelete:
		return true
	}
	return false
}

// Auditable is implemented by every entity whose mutations are audited
type Auditable interface {
	AuditTable() string
	AuditRecordID() string
	AuditSnapshot() AuditSnapshot
}

// AuditField is one "Name: Value" pair of a snapshot
type AuditField struct {
	Name  string
	Value string
}

// AuditSnapshot is an ordered row rendering
type AuditSnapshot []AuditField

func (s AuditSnapshot) String() string {
	parts := make([]string, 0, len(s))
	for _, f := range s {
		parts = append(parts, f.Name+": "+f.Value)
	}
	return strings.Join(parts, ", ")
}

// FieldChange is one structured field/old/new triple
type FieldChange struct {
	Field string      `json:"field"`
	Old   null.String `json:"old"`
	New   null.String `json:"new"`
}

// AuditLogEntry is an immutable record of one row mutation
type AuditLogEntry struct {
	ID            int64          `json:"id"`
	TableName     string         `json:"tableName"`
	OperationType AuditOperation `json:"operationType"`
	RecordID      string         `json:"recordId"`
	OldValue      null.String    `json:"oldValue"`
	NewValue      null.String    `json:"newValue"`
	Changes       []FieldChange  `json:"changes"`
	ChangeDate    time.Time      `json:"changeDate"`
}

// AuditLogFilter narrows an audit listing; empty strings match everything
type AuditLogFilter struct {
	TableName     string
	OperationType string
	Limit         int
	Offset        int
}

// AuditFilters lists the distinct values available for filtering
type AuditFilters struct {
	Tables     []string `json:"tables"`
	Operations []string `json:"operations"`
}
