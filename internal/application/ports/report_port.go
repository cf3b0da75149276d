package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Nevera-api/internal/domain/entity"
)

// InventoryReportGenerator genera el PDF del inventario.
type InventoryReportGenerator interface {
	GenerateInventoryPDF(ctx context.Context, records []*entity.InventoryRecord, asOf time.Time) ([]byte, error)
}
