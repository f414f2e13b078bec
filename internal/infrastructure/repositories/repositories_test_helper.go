package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"skill-registry.backend/internal/infrastructure/datasources/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.OpenMemory(fmt.Sprintf("%s_%d", t.Name(), time.Now().UnixNano()))
	require.NoError(t, err, "open sqlite")
	return db
}

func newRegistryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, sqlite.EnsureSchema(db), "apply schema")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func seedRole(t *testing.T, db *gorm.DB, id int64, name string) {
	t.Helper()
	mustExec(t, db, "INSERT INTO roles(role_id, role_name, description) VALUES (?, ?, ?)", id, name, name+" role")
}

func seedSkill(t *testing.T, db *gorm.DB, id int64, name, category string) {
	t.Helper()
	mustExec(t, db, "INSERT INTO skills(skill_id, skill_name, category) VALUES (?, ?, ?)", id, name, category)
}

func seedMember(t *testing.T, db *gorm.DB, id int64, first, last, email, phone string, roleID interface{}) {
	t.Helper()
	now := time.Now()
	mustExec(t, db, `INSERT INTO team_members(mem_id, first_name, last_name, email, phone_no, role_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, id, first, last, email, phone, roleID, now, now)
}

func seedMemberSkill(t *testing.T, db *gorm.DB, memberID, skillID int64, level int) {
	t.Helper()
	mustExec(t, db, "INSERT INTO mem_skills(mem_id, skill_id, proficiency_level, updated_at) VALUES (?, ?, ?, ?)", memberID, skillID, level, time.Now())
}

func seedRequirement(t *testing.T, db *gorm.DB, roleID, skillID int64, min int) {
	t.Helper()
	mustExec(t, db, "INSERT INTO role_requirements(role_id, skill_id, min_proficiency_required) VALUES (?, ?, ?)", roleID, skillID, min)
}
