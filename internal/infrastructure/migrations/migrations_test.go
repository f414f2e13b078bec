package migrations

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestValidate_EmbeddedMigrations(t *testing.T) {
	require.NoError(t, Validate())
}

func TestVersions_Ascending(t *testing.T) {
	versions, err := Versions()
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.Less(t, versions[0], versions[1])
}

func TestRegistryMigrationContainsConstraints(t *testing.T) {
	data, err := FS.ReadFile("20250101000000_create_registry_tables.sql")
	require.NoError(t, err)
	content := string(data)

	checks := []string{
		"email VARCHAR(255) NOT NULL UNIQUE",
		"phone_no VARCHAR(10) NOT NULL UNIQUE",
		"FOREIGN KEY (role_id) REFERENCES roles(role_id) ON DELETE SET NULL",
		"PRIMARY KEY (role_id, skill_id)",
		"PRIMARY KEY (mem_id, skill_id)",
		"FOREIGN KEY (mem_id) REFERENCES team_members(mem_id) ON DELETE CASCADE",
		"CHECK (category IN ('Technical', 'Clinical', 'Soft Skill', 'Regulatory'))",
		"CHECK (proficiency_level BETWEEN 1 AND 5)",
	}
	for _, c := range checks {
		require.True(t, strings.Contains(content, c), "missing %q", c)
	}
}

func TestValidateFS_RejectsBadFiles(t *testing.T) {
	err := validateFS(fstest.MapFS{"create_things.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")}})
	require.ErrorContains(t, err, "invalid migration filename")

	err = validateFS(fstest.MapFS{"20250101000000_things.sql": {Data: []byte("-- +goose Up\n")}})
	require.ErrorContains(t, err, "missing \"-- +goose Down\"")

	err = validateFS(fstest.MapFS{
		"20250101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"20250101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	})
	require.ErrorContains(t, err, "duplicate migration version")
}

func TestRun_RequiresDB(t *testing.T) {
	require.ErrorContains(t, Run(context.Background(), nil, "up"), "db is required")
	require.ErrorContains(t, MigrateToVersion(context.Background(), nil, ""), "targetVersion is required")
	require.ErrorContains(t, MigrateToVersion(context.Background(), nil, "abc"), "invalid version")
}
