package ports

import "time"

// Metrics instrumentación de los casos de uso.
type Metrics interface {
	LabelsDetected(n int)
	ItemUpserted()
	RecipeSearch(elapsed time.Duration, err error)
}

// NopMetrics no registra nada.
type NopMetrics struct{}

func (NopMetrics) LabelsDetected(int) {}
func (NopMetrics) ItemUpserted() {}
func (NopMetrics) RecipeSearch(time.Duration, error) {}
