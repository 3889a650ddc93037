package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	script := `-- comment
CREATE TABLE a (
    id VARCHAR2(26) PRIMARY KEY
);

CREATE INDEX idx_a ON a (id);
`
	got := SplitStatements(script)
	require.Len(t, got, 2)
	assert.Equal(t, "CREATE TABLE a ( id VARCHAR2(26) PRIMARY KEY )", got[0])
	assert.Equal(t, "CREATE INDEX idx_a ON a (id)", got[1])
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{"migrations/common", "migrations/oracle"} {
		ups, err := fs.Glob(migrationsFS, dir+"/*.up.sql")
		require.NoError(t, err)
		downs, err := fs.Glob(migrationsFS, dir+"/*.down.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, ups, dir)
		assert.Len(t, downs, len(ups), dir)
	}

	oracle, err := migrationsFS.ReadFile("migrations/oracle/000001_init.up.sql")
	require.NoError(t, err)
	assert.Len(t, SplitStatements(string(oracle)), 6)
}

func TestDriverName(t *testing.T) {
	tests := map[string]string{"sqlite": "sqlite", "postgres": "pgx", "oracle": "oracle"}
	for backend, want := range tests {
		got, err := DriverName(backend)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := DriverName("mysql")
	assert.Error(t, err)
}
