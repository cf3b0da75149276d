package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nevera-api/internal/domain"
	"github.com/jhoicas/Nevera-api/internal/domain/entity"
	"github.com/jhoicas/Nevera-api/internal/domain/repository"
	"github.com/jhoicas/Nevera-api/internal/infrastructure/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "fridge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func day(s string) time.Time {
	d, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUpsert_InsertaYSuma(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewInventoryRepository(openTestDB(t))

	rec, err := repo.Upsert(ctx, repository.UpsertParams{Item: "milk", Quantity: 2, Expiry: day("2024-01-08")})
	require.NoError(t, err)
	assert.Equal(t, "milk", rec.Item)
	assert.Equal(t, 2, rec.Quantity)
	assert.Equal(t, "2024-01-08", entity.FormatDate(rec.Expiry))

	rec, err = repo.Upsert(ctx, repository.UpsertParams{Item: "milk", Quantity: 3, Expiry: day("2024-01-09")})
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Quantity)
	assert.Equal(t, "2024-01-09", entity.FormatDate(rec.Expiry), "el vencimiento se sobrescribe")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "un solo registro por nombre")
}

func TestUpsert_ClaveSensibleAMayusculas(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewInventoryRepository(openTestDB(t))

	_, err := repo.Upsert(ctx, repository.UpsertParams{Item: "milk", Quantity: 1, Expiry: day("2024-01-08")})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, repository.UpsertParams{Item: "Milk", Quantity: 1, Expiry: day("2024-01-08")})
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpsert_ConservaVencimientoMasProximo(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewInventoryRepository(openTestDB(t))

	_, err := repo.Upsert(ctx, repository.UpsertParams{Item: "eggs", Quantity: 1, Expiry: day("2024-01-22")})
	require.NoError(t, err)

	rec, err := repo.Upsert(ctx, repository.UpsertParams{
		Item: "eggs", Quantity: 1, Expiry: day("2024-02-01"), KeepEarliestExpiry: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Quantity)
	assert.Equal(t, "2024-01-22", entity.FormatDate(rec.Expiry))

	rec, err = repo.Upsert(ctx, repository.UpsertParams{
		Item: "eggs", Quantity: 1, Expiry: day("2024-01-10"), KeepEarliestExpiry: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", entity.FormatDate(rec.Expiry))
}

func TestUpsert_ConcurrenteNoPierdeIncrementos(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewInventoryRepository(openTestDB(t))

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Upsert(ctx, repository.UpsertParams{Item: "apple", Quantity: 1, Expiry: day("2024-02-01")})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, workers, all[0].Quantity)
}

func TestListExpired_EstrictamenteAnterior(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewInventoryRepository(openTestDB(t))

	for item, exp := range map[string]string{
		"chicken": "2024-01-02",
		"milk":    "2024-01-03",
		"butter":  "2024-03-31",
	} {
		_, err := repo.Upsert(ctx, repository.UpsertParams{Item: item, Quantity: 1, Expiry: day(exp)})
		require.NoError(t, err)
	}

	expired, err := repo.ListExpired(ctx, day("2024-01-03"))
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "chicken", expired[0].Item)

	expired, err = repo.ListExpired(ctx, time.Date(2024, 1, 4, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, expired, 2)
}

func TestListAll_Vacio(t *testing.T) {
	repo := sqlite.NewInventoryRepository(openTestDB(t))
	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestErroresSonStorageError(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewInventoryRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.ListAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)

	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list inventory", se.Op)
}
