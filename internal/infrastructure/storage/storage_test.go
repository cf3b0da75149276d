package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nevera-api/internal/domain"
	"github.com/jhoicas/Nevera-api/internal/domain/repository"
	"github.com/jhoicas/Nevera-api/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "fridge.db")})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "sqlite", s.Driver)
	_, err = s.Repo.Upsert(ctx, repository.UpsertParams{Item: "milk", Quantity: 1, Expiry: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	err = s.Tx.Run(ctx, func(repo repository.InventoryRepository) error {
		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), config.DBConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestOpen_SQLiteInaccesibleEsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-existe", "fridge.db")
	_, err := Open(context.Background(), config.DBConfig{Driver: "sqlite", SQLitePath: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	var se *domain.StorageError
	assert.ErrorAs(t, err, &se)
}
