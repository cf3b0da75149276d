// Package sqlite implementa el almacén de inventario sobre un archivo SQLite
// (driver github.com/mattn/go-sqlite3, requiere cgo).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // driver "sqlite3"

	"github.com/jhoicas/Nevera-api/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS inventory (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	item     TEXT    NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 1,
	expiry   DATE    NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_item ON inventory (item);
CREATE INDEX IF NOT EXISTS idx_inventory_expiry ON inventory (expiry);`

// Open abre (o crea) el archivo, aplica el esquema y verifica la conexión.
// SQLite admite un solo escritor: se limita el pool a una conexión y se espera
// hasta 5 s ante SQLITE_BUSY.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, domain.NewStorageError("open sqlite", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, domain.NewStorageError("ping sqlite", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate crea la tabla inventory y sus índices si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return domain.NewStorageError("migrate sqlite schema", err)
	}
	return nil
}
