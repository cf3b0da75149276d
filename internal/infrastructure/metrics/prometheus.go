// Package metrics expone contadores Prometheus de la API y de los casos de uso.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Nevera-api/internal/application/ports"
)

var _ ports.Metrics = (*Collector)(nil)

const namespace = "nevera"

// Collector registro propio (no el global) con las métricas del servicio.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	labels       prometheus.Counter
	detections   prometheus.Counter
	upserts      prometheus.Counter
	recipeSearch *prometheus.HistogramVec
}

// NewCollector crea y registra todas las métricas.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Peticiones HTTP atendidas",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latencia de las peticiones HTTP",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		labels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detected_labels_total",
			Help:      "Etiquetas normalizadas devueltas por el detector",
		}),
		detections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Imágenes procesadas por el detector",
		}),
		upserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_upserts_total",
			Help:      "Altas o actualizaciones del inventario",
		}),
		recipeSearch: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recipe_search_duration_seconds",
				Help:      "Latencia de la API de recetas",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		c.httpRequests, c.httpDuration, c.labels, c.detections, c.upserts, c.recipeSearch,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) LabelsDetected(n int) {
	c.detections.Inc()
	c.labels.Add(float64(n))
}

func (c *Collector) ItemUpserted() { c.upserts.Inc() }

func (c *Collector) RecipeSearch(elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.recipeSearch.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Middleware mide cada petición usando la ruta registrada (no la URL) como etiqueta.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := ctx.Route().Path
		method := ctx.Method()

		c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve /metrics en formato de texto Prometheus.
func (c *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}

// Registry para tests o para registrar colectores adicionales.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }
