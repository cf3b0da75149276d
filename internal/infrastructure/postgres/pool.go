package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Nevera-api/internal/domain"
	"github.com/jhoicas/Nevera-api/pkg/config"
)

// Querier abstrae pgxpool.Pool y pgx.Tx para que los repos funcionen con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS inventory (
	id       BIGSERIAL PRIMARY KEY,
	item     TEXT    NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 1,
	expiry   DATE    NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_item ON inventory (item);
CREATE INDEX IF NOT EXISTS idx_inventory_expiry ON inventory (expiry);`

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app,
// verifica la conexión y aplica el esquema.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, domain.NewStorageError("parse postgres DSN", err)
	}

	// Carga baja: un hogar, pocas peticiones concurrentes.
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, domain.NewStorageError("open postgres pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, domain.NewStorageError("ping postgres", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Migrate crea la tabla inventory y sus índices si no existen.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return domain.NewStorageError("migrate postgres schema", err)
	}
	return nil
}
