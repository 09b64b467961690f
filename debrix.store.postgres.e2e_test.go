//go:build integration

package debrix

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer starts an ephemeral PostgreSQL and returns its DSN
func setupPostgresContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("debrix_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")
	return dsn
}

func TestPostgresStore_E2E(t *testing.T) {
	dsn := setupPostgresContainer(t)

	prefix := 0
	runArtifactStoreSuite(t, func(t *testing.T) ArtifactStore {
		prefix++
		store, err := NewPostgresStore(PostgresConfig{
			DSN:          dsn,
			TablePrefix:  "suite" + string(rune('a'+prefix)) + "_",
			AutoMigrate:  true,
			QueryTimeout: 30 * time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestPostgresStore_E2E_Migrations(t *testing.T) {
	dsn := setupPostgresContainer(t)
	ctx := context.Background()

	store, err := NewPostgresStore(PostgresConfig{DSN: dsn, AutoMigrate: true})
	require.NoError(t, err)
	defer store.Close()

	version, err := store.CurrentSchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	require.NoError(t, store.RunMigrations(ctx))
	again, err := store.CurrentSchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, version, again)
}

func TestPostgresStore_E2E_CompilerCache(t *testing.T) {
	dsn := setupPostgresContainer(t)
	ctx := context.Background()

	store, err := OpenStore(StoreDriverNamePostgres, dsn)
	require.NoError(t, err)
	defer store.Close()

	compiler := MustNew(WithStore(store), WithSourceName("cached.debrix"))
	input := `<div class="x">{a + b}</div>`

	first, err := compiler.Build(ctx, input)
	require.NoError(t, err)

	stored, err := store.Get(ctx, ArtifactKey(TargetClient, input))
	require.NoError(t, err)
	assert.Equal(t, "cached.debrix", stored.Name)
	assert.Equal(t, first.Source, stored.Code)
	assert.Equal(t, first.Mappings, stored.Mappings)

	second, err := compiler.Build(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPostgresStore_E2E_CloseTwice(t *testing.T) {
	dsn := setupPostgresContainer(t)

	store, err := NewPostgresStore(PostgresConfig{DSN: dsn, AutoMigrate: true})
	require.NoError(t, err)

	require.NoError(t, store.Close())
	err = store.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgPostgresAlreadyClosed)
}
