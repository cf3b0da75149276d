package sqlite

import (
	"context"
	"database/sql"

	"github.com/jhoicas/Nevera-api/internal/application/inventory"
	"github.com/jhoicas/Nevera-api/internal/domain"
	"github.com/jhoicas/Nevera-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con un repo atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.InventoryRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewInventoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("commit transaction", err)
	}
	return nil
}
