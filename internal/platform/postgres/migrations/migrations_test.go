package migrations_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordtrail/wordtrail-api/internal/platform/postgres/migrations"
)

func TestCoreTablesMigrationSeedsSingletonRows(t *testing.T) {
	t.Parallel()

	data, err := migrations.FS.ReadFile("00001_create_core_tables.sql")
	require.NoError(t, err, "core tables migration must be embedded")

	content := string(data)
	up, _, found := strings.Cut(content, "-- +goose Down")
	require.True(t, found, "migration must have a Down section")

	// Row locks only serialize writers when the row exists. The singleton
	// rows that RecordResult and ConsumeQuota lock with FOR UPDATE must be
	// seeded by the migration, not created lazily on first use, or two
	// concurrent first-ever transactions would both miss the lock and the
	// second upsert would overwrite the first.
	seeds := []string{
		"INSERT INTO user_stats (id) VALUES (1);",
		"INSERT INTO unlock_states (level_id) VALUES ('daily-free-quota');",
		"INSERT INTO trusted_anchor (id, monotonic_millis) VALUES (1, 0);",
	}
	for _, seed := range seeds {
		assert.Contains(t, up, seed)
	}
}

func TestMigrationFilesWellFormed(t *testing.T) {
	t.Parallel()

	entries, err := migrations.FS.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries, "at least one migration must be embedded")

	for _, entry := range entries {
		data, err := migrations.FS.ReadFile(entry.Name())
		require.NoError(t, err)

		content := string(data)
		assert.Contains(t, content, "-- +goose Up", "%s missing Up directive", entry.Name())
		assert.Contains(t, content, "-- +goose Down", "%s missing Down directive", entry.Name())
	}
}
