package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Nevera-api/internal/domain/entity"
)

// UpsertParams entrada del upsert por nombre.
// KeepEarliestExpiry: si el alimento ya existe, conservar la fecha menor en vez de sobrescribir.
type UpsertParams struct {
	Item               string
	Quantity           int
	Expiry             time.Time
	KeepEarliestExpiry bool
}

// InventoryRepository define el puerto del almacén de inventario (DIP).
// Los errores de la base de datos se devuelven como *domain.StorageError.
type InventoryRepository interface {
	// Upsert inserta el alimento o suma la cantidad al existente en una sola sentencia atómica
	// y devuelve el registro resultante.
	Upsert(ctx context.Context, p UpsertParams) (*entity.InventoryRecord, error)
	ListAll(ctx context.Context) ([]*entity.InventoryRecord, error)
	// ListExpired devuelve los registros con vencimiento estrictamente anterior a asOf.
	ListExpired(ctx context.Context, asOf time.Time) ([]*entity.InventoryRecord, error)
}
