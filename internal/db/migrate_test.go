package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_RefusesPlaintextWhenTLSRequired(t *testing.T) {
	err := Migrate(Options{
		URL:        "postgres://u:p@localhost:5432/app?sslmode=disable",
		RequireTLS: true,
	})
	require.ErrorIs(t, err, ErrTLSRequired)
}

func TestMigrate_RefusesUnverifiedTLS(t *testing.T) {
	err := Migrate(Options{
		URL:        "postgres://u:p@localhost:5432/app",
		SSLMode:    "require",
		RequireTLS: true,
	})
	require.ErrorIs(t, err, ErrTLSUnverified)
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)

	var up, down int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down++
		}
	}
	assert.Equal(t, up, down, "every up migration needs a down migration")
	assert.NotZero(t, up)

	body, err := fs.ReadFile(migrations, "migrations/000001_create_dashboard_tables.up.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "customers", "invoices", "revenue"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
