package entity

import (
	"strings"
	"time"
)

// DateLayout formato ISO 8601 de fecha usado en la tabla y en la API.
const DateLayout = "2006-01-02"

// InventoryRecord un alimento en la nevera. Item es único (clave del upsert, sensible a mayúsculas).
type InventoryRecord struct {
	ID       int64
	Item     string
	Quantity int
	Expiry   time.Time // fecha de calendario, medianoche UTC
}

// IsExpired true si la fecha de vencimiento es estrictamente anterior a asOf.
// Un alimento que vence hoy no está vencido.
func (r *InventoryRecord) IsExpired(asOf time.Time) bool {
	return r.Expiry.Before(Date(asOf))
}

// Date trunca t a su fecha de calendario (en la zona de t) representada en UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// FormatDate devuelve la fecha en formato "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
