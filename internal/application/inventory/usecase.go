package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/domain"
	"github.com/jhoicas/Nevera-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Nevera-api/internal/domain/inventory"
	"github.com/jhoicas/Nevera-api/internal/domain/repository"
)

// InventoryUseCase registra alimentos y consulta el inventario.
// El vencimiento por defecto se calcula con la tabla de vida útil; la política decide
// si un nuevo registro sin fecha puede mover el vencimiento guardado.
type InventoryUseCase struct {
	repo    repository.InventoryRepository
	policy  domaininv.ExpiryPolicy
	now     func() time.Time
	metrics ports.Metrics
}

// NewInventoryUseCase construye el caso de uso. now nil = time.Now; metrics nil = sin métricas.
func NewInventoryUseCase(
	repo repository.InventoryRepository,
	policy domaininv.ExpiryPolicy,
	now func() time.Time,
	metrics ports.Metrics,
) *InventoryUseCase {
	if now == nil {
		now = time.Now
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if policy == "" {
		policy = domaininv.ExpiryRefresh
	}
	return &InventoryUseCase{repo: repo, policy: policy, now: now, metrics: metrics}
}

// Today fecha de hoy según el reloj del caso de uso.
func (uc *InventoryUseCase) Today() time.Time {
	return entity.Date(uc.now())
}

// AddOrUpdate suma quantity al alimento item (lo crea si no existe).
// expiry nil = hoy + vida útil por defecto. Con fecha explícita siempre se sobrescribe;
// sin ella, ExpiryKeepEarliest conserva la fecha guardada si es anterior.
func (uc *InventoryUseCase) AddOrUpdate(ctx context.Context, item string, quantity int, expiry *time.Time) (*entity.InventoryRecord, error) {
	if strings.TrimSpace(item) == "" {
		return nil, fmt.Errorf("%w: item es obligatorio", domain.ErrInvalidInput)
	}

	params := repository.UpsertParams{Item: item, Quantity: quantity}
	if expiry != nil {
		params.Expiry = entity.Date(*expiry)
	} else {
		params.Expiry = domaininv.DefaultExpiry(item, uc.now())
		params.KeepEarliestExpiry = uc.policy == domaininv.ExpiryKeepEarliest
	}

	rec, err := uc.repo.Upsert(ctx, params)
	if err != nil {
		return nil, err
	}
	uc.metrics.ItemUpserted()
	return rec, nil
}

// AddOrUpdateFromRequest adapta el body de POST /update a AddOrUpdate.
func (uc *InventoryUseCase) AddOrUpdateFromRequest(ctx context.Context, in dto.UpdateItemRequest) (*dto.InventoryItemDTO, error) {
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	var expiry *time.Time
	if in.Expiry != nil && strings.TrimSpace(*in.Expiry) != "" {
		t, err := entity.ParseDate(*in.Expiry)
		if err != nil {
			return nil, fmt.Errorf("%w: expiry debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		expiry = &t
	}
	rec, err := uc.AddOrUpdate(ctx, in.Item, quantity, expiry)
	if err != nil {
		return nil, err
	}
	out := ToItemDTO(rec)
	return &out, nil
}

// ListAll devuelve todo el inventario.
func (uc *InventoryUseCase) ListAll(ctx context.Context) ([]*entity.InventoryRecord, error) {
	return uc.repo.ListAll(ctx)
}

// ListExpired devuelve los alimentos con vencimiento anterior a asOf (nil = hoy).
func (uc *InventoryUseCase) ListExpired(ctx context.Context, asOf *time.Time) ([]*entity.InventoryRecord, time.Time, error) {
	day := uc.Today()
	if asOf != nil {
		day = entity.Date(*asOf)
	}
	list, err := uc.repo.ListExpired(ctx, day)
	return list, day, err
}

// DefaultExpiryDays expone la tabla de vida útil.
func (uc *InventoryUseCase) DefaultExpiryDays(item string) int {
	return domaininv.DefaultExpiryDays(item)
}

// ToItemDTO convierte un registro a su forma JSON.
func ToItemDTO(r *entity.InventoryRecord) dto.InventoryItemDTO {
	return dto.InventoryItemDTO{
		ID:       r.ID,
		Item:     r.Item,
		Quantity: r.Quantity,
		Expiry:   entity.FormatDate(r.Expiry),
	}
}

// ToItemDTOs convierte una lista; nunca devuelve nil.
func ToItemDTOs(list []*entity.InventoryRecord) []dto.InventoryItemDTO {
	out := make([]dto.InventoryItemDTO, 0, len(list))
	for _, r := range list {
		out = append(out, ToItemDTO(r))
	}
	return out
}
