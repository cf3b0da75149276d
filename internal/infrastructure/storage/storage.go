// Package storage abre el almacén de inventario según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nevera-api/internal/application/inventory"
	"github.com/jhoicas/Nevera-api/internal/domain/repository"
	"github.com/jhoicas/Nevera-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Nevera-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Nevera-api/pkg/config"
)

// Store repositorio y runner de transacciones sobre la misma conexión.
type Store struct {
	Driver string
	Repo   repository.InventoryRepository
	Tx     inventory.TxRunner
	close  func()
}

// Close libera la conexión.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta con sqlite (archivo SQLITE_PATH) o postgres y aplica el esquema.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: "sqlite",
			Repo:   sqlite.NewInventoryRepository(db),
			Tx:     sqlite.NewTxRunner(db),
			close:  func() { db.Close() },
		}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: "postgres",
			Repo:   postgres.NewInventoryRepository(pool),
			Tx:     postgres.NewTxRunner(pool),
			close:  pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}
