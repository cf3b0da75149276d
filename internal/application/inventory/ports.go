package inventory

import (
	"context"

	"github.com/jhoicas/Nevera-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción; fn recibe un repo atado a ella.
// Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.InventoryRepository) error) error
}
