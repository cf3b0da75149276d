package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/domain/entity"
	"github.com/jhoicas/Nevera-api/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF del inventario.
type ReportUseCase struct {
	repo      repository.InventoryRepository
	generator ports.InventoryReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(repo repository.InventoryRepository, generator ports.InventoryReportGenerator, now func() time.Time) *ReportUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReportUseCase{repo: repo, generator: generator, now: now}
}

// InventoryPDF carga todo el inventario y lo dibuja marcando los vencidos a la fecha asOf
// (nil = hoy). Devuelve los bytes y el nombre de archivo sugerido.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, asOf *time.Time) (pdfBytes []byte, filename string, err error) {
	day := entity.Date(uc.now())
	if asOf != nil {
		day = entity.Date(*asOf)
	}

	records, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateInventoryPDF(ctx, records, day)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("inventario_%s.pdf", entity.FormatDate(day))
	return pdfBytes, filename, nil
}
