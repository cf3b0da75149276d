package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Nevera-api/internal/domain"
	"github.com/jhoicas/Nevera-api/internal/domain/entity"
	"github.com/jhoicas/Nevera-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const (
	upsertRefreshSQL = `
		INSERT INTO inventory (item, quantity, expiry)
		VALUES ($1, $2, $3)
		ON CONFLICT (item)
		DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity, expiry = EXCLUDED.expiry
		RETURNING id, item, quantity, expiry`

	upsertKeepEarliestSQL = `
		INSERT INTO inventory (item, quantity, expiry)
		VALUES ($1, $2, $3)
		ON CONFLICT (item)
		DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity,
		              expiry = LEAST(inventory.expiry, EXCLUDED.expiry)
		RETURNING id, item, quantity, expiry`
)

func (r *InventoryRepo) Upsert(ctx context.Context, p repository.UpsertParams) (*entity.InventoryRecord, error) {
	query := upsertRefreshSQL
	if p.KeepEarliestExpiry {
		query = upsertKeepEarliestSQL
	}
	var rec entity.InventoryRecord
	err := r.q.QueryRow(ctx, query, p.Item, p.Quantity, entity.Date(p.Expiry)).Scan(
		&rec.ID, &rec.Item, &rec.Quantity, &rec.Expiry,
	)
	if err != nil {
		return nil, domain.NewStorageError("upsert inventory", err)
	}
	rec.Expiry = entity.Date(rec.Expiry)
	return &rec, nil
}

func (r *InventoryRepo) ListAll(ctx context.Context) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, `SELECT id, item, quantity, expiry FROM inventory ORDER BY id`)
	if err != nil {
		return nil, domain.NewStorageError("list inventory", err)
	}
	return collect(rows, "list inventory")
}

func (r *InventoryRepo) ListExpired(ctx context.Context, asOf time.Time) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, item, quantity, expiry FROM inventory
		WHERE expiry < $1
		ORDER BY expiry, id`, entity.Date(asOf))
	if err != nil {
		return nil, domain.NewStorageError("list expired", err)
	}
	return collect(rows, "list expired")
}

func collect(rows pgx.Rows, op string) ([]*entity.InventoryRecord, error) {
	defer rows.Close()
	list := make([]*entity.InventoryRecord, 0)
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.Item, &rec.Quantity, &rec.Expiry); err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		rec.Expiry = entity.Date(rec.Expiry)
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return list, nil
}
