package sqlite

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Schema mirrors the goose migrations for SQLite stores (local runs and tests).
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS roles (
		role_id INTEGER PRIMARY KEY AUTOINCREMENT,
		role_name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS skills (
		skill_id INTEGER PRIMARY KEY AUTOINCREMENT,
		skill_name TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL CHECK (category IN ('Technical', 'Clinical', 'Soft Skill', 'Regulatory'))
	);`,
	`CREATE TABLE IF NOT EXISTS team_members (
		mem_id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		middle_name TEXT,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone_no TEXT NOT NULL UNIQUE,
		role_id INTEGER REFERENCES roles(role_id) ON DELETE SET NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE IF NOT EXISTS role_requirements (
		role_id INTEGER NOT NULL REFERENCES roles(role_id) ON DELETE CASCADE,
		skill_id INTEGER NOT NULL REFERENCES skills(skill_id) ON DELETE CASCADE,
		min_proficiency_required INTEGER NOT NULL CHECK (min_proficiency_required BETWEEN 1 AND 5),
		PRIMARY KEY (role_id, skill_id)
	);`,
	`CREATE TABLE IF NOT EXISTS mem_skills (
		mem_id INTEGER NOT NULL REFERENCES team_members(mem_id) ON DELETE CASCADE,
		skill_id INTEGER NOT NULL REFERENCES skills(skill_id) ON DELETE CASCADE,
		proficiency_level INTEGER NOT NULL CHECK (proficiency_level BETWEEN 1 AND 5),
		updated_at DATETIME,
		PRIMARY KEY (mem_id, skill_id)
	);`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		log_id INTEGER PRIMARY KEY AUTOINCREMENT,
		table_name TEXT NOT NULL,
		operation_type TEXT NOT NULL,
		record_id TEXT NOT NULL,
		old_value TEXT,
		new_value TEXT,
		changes TEXT,
		change_date DATETIME NOT NULL
	);`,
}

// Open opens a SQLite store at path with foreign keys enforced.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "skill_registry.db"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := gorm.Open(sqlite.Open(dsn+sep+"_foreign_keys=1"), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	return db, nil
}

// OpenMemory opens a named shared-cache in-memory store.
func OpenMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the registry tables when missing.
func EnsureSchema(db *gorm.DB, tables ...string) error {
	for _, stmt := range Schema {
		if len(tables) > 0 && !mentionsAny(stmt, tables) {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func mentionsAny(stmt string, tables []string) bool {
	for _, t := range tables {
		if containsTable(stmt, t) {
			return true
		}
	}
	return false
}

func containsTable(stmt, table string) bool {
	return strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS "+table+" (")
}
