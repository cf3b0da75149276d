// seed_inventory carga alimentos desde un CSV (item,quantity,expiry) al inventario
// configurado (DB_DRIVER), en una sola transacción.
//
// Uso: go run ./cmd/seed_inventory [ruta/inventario.csv]
// Por defecto busca inventario.csv en el directorio actual. La cabecera es opcional;
// quantity vacío = 1, expiry vacío = vida útil por defecto. Acepta UTF-8 o ISO-8859-1.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Nevera-api/internal/application/inventory"
	"github.com/jhoicas/Nevera-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Nevera-api/internal/domain/inventory"
	"github.com/jhoicas/Nevera-api/internal/infrastructure/storage"
	"github.com/jhoicas/Nevera-api/pkg/config"
	"github.com/jhoicas/Nevera-api/pkg/logger"
)

func main() {
	csvPath := "inventario.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_inventory"})

	if err := run(context.Background(), csvPath, cfg, log); err != nil {
		log.Error().Err(err).Str("file", csvPath).Msg("carga revertida")
		os.Exit(1)
	}
}

// run importa el archivo en una transacción; el almacén se cierra siempre antes de volver.
func run(ctx context.Context, csvPath string, cfg *config.Config, log *logger.Logger) error {
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	rows, err := parseCSV(raw)
	if err != nil {
		return fmt.Errorf("leer CSV: %w", err)
	}

	policy, err := domaininv.ParseExpiryPolicy(cfg.Inventory.ExpiryPolicy)
	if err != nil {
		return err
	}

	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("abrir almacén de inventario: %w", err)
	}
	defer store.Close()

	n, err := inventory.NewImportUseCase(store.Tx, policy, time.Now, nil).Import(ctx, rows)
	if err != nil {
		return err
	}
	log.Info().Str("file", csvPath).Str("driver", store.Driver).Int("rows", n).Msg("inventario cargado")
	return nil
}

// parseCSV interpreta el archivo. Si no es UTF-8 válido se decodifica como ISO-8859-1.
func parseCSV(raw []byte) ([]inventory.ImportRow, error) {
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	var rows []inventory.ImportRow
	for first := true; ; first = false {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if first && strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")), "item") {
			continue
		}
		line, _ := r.FieldPos(0)
		row, err := parseRow(line, rec)
		if err != nil {
			return nil, err
		}
		if row.Item == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(line int, rec []string) (inventory.ImportRow, error) {
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	row := inventory.ImportRow{Line: line, Item: field(0), Quantity: 1}
	if q := field(1); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return row, fmt.Errorf("línea %d: quantity inválida %q", line, q)
		}
		row.Quantity = n
	}
	if e := field(2); e != "" {
		t, err := entity.ParseDate(e)
		if err != nil {
			return row, fmt.Errorf("línea %d: expiry inválida %q (YYYY-MM-DD)", line, e)
		}
		row.Expiry = &t
	}
	return row, nil
}
