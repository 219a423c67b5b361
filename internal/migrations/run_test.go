package migrations_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deuxal/insurance-portal/internal/migrations"
	"github.com/deuxal/insurance-portal/internal/storage/pgtest"
)

func TestRunMigrations(t *testing.T) {
	db := pgtest.Open(t)

	require.NoError(t, migrations.Run(db, pgtest.MigrationsPath(t)))

	for _, table := range []string{"users", "profiles", "user_roles", "subscriptions", "client_requests"} {
		var exists bool
		err := db.QueryRow(`
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, table).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists, "table %s should exist", table)
	}

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE schemaname = 'public'
			AND tablename = 'subscriptions'
			AND indexname = 'idx_subscriptions_user_id'
		)`).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists, "index should exist")

	var isAdmin bool
	err = db.QueryRow(`SELECT has_role(gen_random_uuid(), 'admin')`).Scan(&isAdmin)
	require.NoError(t, err)
	require.False(t, isAdmin)
}

func TestMigrationIdempotency(t *testing.T) {
	db := pgtest.Open(t)
	path := pgtest.MigrationsPath(t)

	require.NoError(t, migrations.Run(db, path))
	require.NoError(t, migrations.Run(db, path))
}

func TestRunInvalidPath(t *testing.T) {
	db := pgtest.Open(t)
	require.Error(t, migrations.Run(db, "/nonexistent/migrations"))
}
