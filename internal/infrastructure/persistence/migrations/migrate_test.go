package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedVersions(t *testing.T) {
	versions, err := EmbeddedVersions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, uint(1), versions[0])

	for i := 1; i < len(versions); i++ {
		assert.Less(t, versions[i-1], versions[i])
	}
}

func TestEveryUpMigrationHasDown(t *testing.T) {
	entries, err := fs.ReadDir(sqlFiles, "sql")
	require.NoError(t, err)

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}

	for name := range names {
		if base, ok := strings.CutSuffix(name, ".up.sql"); ok {
			assert.True(t, names[base+".down.sql"], "missing down migration for %s", name)
		}
	}
}

func TestInitialMigrationCreatesPlannerTables(t *testing.T) {
	body, err := fs.ReadFile(sqlFiles, "sql/000001_create_planner_tables.up.sql")
	require.NoError(t, err)

	for _, table := range []string{"recipes", "nutrition_profiles", "week_plans", "day_plans", "day_meals", "shopping_lists"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
}
