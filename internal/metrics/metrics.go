// Package metrics exposes inventory counters to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const namespace = "stockroom"

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "error"
)

// Collector records inventory operations.
type Collector struct {
	operations *prometheus.CounterVec
	products   prometheus.Gauge
}

// NewCollector creates the collectors and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Inventory operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		products: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "products",
			Help:      "Number of products currently held in the store.",
		}),
	}

	if reg != nil {
		for _, col := range []prometheus.Collector{c.operations, c.products} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// ObserveOperation counts one operation with an outcome derived from err.
func (c *Collector) ObserveOperation(operation string, err error) {
	c.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

// SetProducts updates the product gauge.
func (c *Collector) SetProducts(n int) {
	c.products.Set(float64(n))
}

// Outcome maps an operation error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, models.ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, models.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, models.ErrDuplicate):
		return OutcomeDuplicate
	default:
		return OutcomeFailed
	}
}
