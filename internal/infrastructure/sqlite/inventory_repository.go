package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jhoicas/Nevera-api/internal/domain"
	"github.com/jhoicas/Nevera-api/internal/domain/entity"
	"github.com/jhoicas/Nevera-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// Querier abstrae *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InventoryRepo implementación de InventoryRepository sobre SQLite.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Acepta db o tx.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Las fechas se guardan como texto YYYY-MM-DD: la comparación lexicográfica coincide con la cronológica.
const (
	upsertRefreshSQL = `
		INSERT INTO inventory (item, quantity, expiry) VALUES (?, ?, ?)
		ON CONFLICT (item) DO UPDATE SET
			quantity = inventory.quantity + excluded.quantity,
			expiry   = excluded.expiry
		RETURNING id, item, quantity, expiry`

	upsertKeepEarliestSQL = `
		INSERT INTO inventory (item, quantity, expiry) VALUES (?, ?, ?)
		ON CONFLICT (item) DO UPDATE SET
			quantity = inventory.quantity + excluded.quantity,
			expiry   = min(inventory.expiry, excluded.expiry)
		RETURNING id, item, quantity, expiry`
)

func (r *InventoryRepo) Upsert(ctx context.Context, p repository.UpsertParams) (*entity.InventoryRecord, error) {
	query := upsertRefreshSQL
	if p.KeepEarliestExpiry {
		query = upsertKeepEarliestSQL
	}
	row := r.q.QueryRowContext(ctx, query, p.Item, p.Quantity, entity.FormatDate(p.Expiry))
	rec, err := scanRecord(row)
	if err != nil {
		return nil, domain.NewStorageError("upsert inventory", err)
	}
	return rec, nil
}

func (r *InventoryRepo) ListAll(ctx context.Context) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, item, quantity, expiry FROM inventory ORDER BY id`)
	if err != nil {
		return nil, domain.NewStorageError("list inventory", err)
	}
	return collect(rows, "list inventory")
}

func (r *InventoryRepo) ListExpired(ctx context.Context, asOf time.Time) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, item, quantity, expiry FROM inventory
		WHERE expiry < ?
		ORDER BY expiry, id`, entity.FormatDate(entity.Date(asOf)))
	if err != nil {
		return nil, domain.NewStorageError("list expired", err)
	}
	return collect(rows, "list expired")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*entity.InventoryRecord, error) {
	var (
		rec    entity.InventoryRecord
		expiry string
	)
	if err := s.Scan(&rec.ID, &rec.Item, &rec.Quantity, &expiry); err != nil {
		return nil, err
	}
	t, err := parseStoredDate(expiry)
	if err != nil {
		return nil, err
	}
	rec.Expiry = t
	return &rec, nil
}

// parseStoredDate acepta "YYYY-MM-DD" o un timestamp RFC 3339: el driver convierte las
// columnas declaradas DATE a time.Time y database/sql las vuelve texto en ese formato.
func parseStoredDate(s string) (time.Time, error) {
	if len(s) > len(entity.DateLayout) {
		s = s[:len(entity.DateLayout)]
	}
	return entity.ParseDate(s)
}

func collect(rows *sql.Rows, op string) ([]*entity.InventoryRecord, error) {
	defer rows.Close()
	list := make([]*entity.InventoryRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}
	return list, nil
}
