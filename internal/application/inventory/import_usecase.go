package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nevera-api/internal/application/ports"
	domaininv "github.com/jhoicas/Nevera-api/internal/domain/inventory"
	"github.com/jhoicas/Nevera-api/internal/domain/repository"
)

// ImportRow una fila de carga masiva. Expiry nil = vencimiento por defecto.
type ImportRow struct {
	Line     int // para mensajes de error
	Item     string
	Quantity int
	Expiry   *time.Time
}

// ImportUseCase carga un lote de alimentos en una sola transacción: o entran todos o ninguno.
type ImportUseCase struct {
	tx      TxRunner
	policy  domaininv.ExpiryPolicy
	now     func() time.Time
	metrics ports.Metrics
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx TxRunner, policy domaininv.ExpiryPolicy, now func() time.Time, metrics ports.Metrics) *ImportUseCase {
	return &ImportUseCase{tx: tx, policy: policy, now: now, metrics: metrics}
}

// Import aplica cada fila con las mismas reglas que AddOrUpdate. Devuelve las filas aplicadas.
func (uc *ImportUseCase) Import(ctx context.Context, rows []ImportRow) (int, error) {
	applied := 0
	err := uc.tx.Run(ctx, func(repo repository.InventoryRepository) error {
		inv := NewInventoryUseCase(repo, uc.policy, uc.now, uc.metrics)
		for _, r := range rows {
			if _, err := inv.AddOrUpdate(ctx, r.Item, r.Quantity, r.Expiry); err != nil {
				return fmt.Errorf("línea %d (%q): %w", r.Line, r.Item, err)
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}
