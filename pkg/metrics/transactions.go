package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// TransactionMetrics records counters for the fuel sale lifecycle.
type TransactionMetrics struct {
	created         *prometheus.CounterVec
	completed       *prometheus.CounterVec
	cancelled       prometheus.Counter
	refunded        prometheus.Counter
	paymentFailures *prometheus.CounterVec
	litersDispensed *prometheus.CounterVec
	lowInventory    *prometheus.CounterVec
}

// NewTransactionMetrics registers the sale lifecycle metrics on the provided registerer.
func NewTransactionMetrics(reg prometheus.Registerer) *TransactionMetrics {
	if reg == nil {
		return &TransactionMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_created_total",
		Help: "Fuel sale transactions created.",
	}, []string{"fuel_type", "payment_method"})
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_completed_total",
		Help: "Fuel sale transactions completed.",
	}, []string{"fuel_type", "payment_method"})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transactions_cancelled_total",
		Help: "Fuel sale transactions cancelled before completion.",
	})
	refunded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transactions_refunded_total",
		Help: "Completed fuel sales reversed by refund.",
	})
	paymentFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_failures_total",
		Help: "Payment captures declined by the gateway.",
	}, []string{"payment_method"})
	litersDispensed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fuel_dispensed_liters_total",
		Help: "Liters of fuel dispensed by completed sales.",
	}, []string{"fuel_type"})
	lowInventory := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "low_inventory_signals_total",
		Help: "Tank levels observed at or below the reorder threshold.",
	}, []string{"fuel_type"})
	reg.MustRegister(created, completed, cancelled, refunded, paymentFailures, litersDispensed, lowInventory)
	return &TransactionMetrics{
		created:         created,
		completed:       completed,
		cancelled:       cancelled,
		refunded:        refunded,
		paymentFailures: paymentFailures,
		litersDispensed: litersDispensed,
		lowInventory:    lowInventory,
	}
}

// IncCreated increments the created counter.
func (m *TransactionMetrics) IncCreated(fuelType, paymentMethod string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(fuelType), normalizeLabel(paymentMethod)).Inc()
}

// IncCompleted increments the completed counter.
func (m *TransactionMetrics) IncCompleted(fuelType, paymentMethod string) {
	if m == nil || m.completed == nil {
		return
	}
	m.completed.WithLabelValues(normalizeLabel(fuelType), normalizeLabel(paymentMethod)).Inc()
}

// IncCancelled increments the cancelled counter.
func (m *TransactionMetrics) IncCancelled() {
	if m == nil || m.cancelled == nil {
		return
	}
	m.cancelled.Inc()
}

// IncRefunded increments the refunded counter.
func (m *TransactionMetrics) IncRefunded() {
	if m == nil || m.refunded == nil {
		return
	}
	m.refunded.Inc()
}

// IncPaymentFailure increments the gateway decline counter.
func (m *TransactionMetrics) IncPaymentFailure(paymentMethod string) {
	if m == nil || m.paymentFailures == nil {
		return
	}
	m.paymentFailures.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

// AddLitersDispensed adds dispensed volume for the fuel type.
func (m *TransactionMetrics) AddLitersDispensed(fuelType string, liters float64) {
	if m == nil || m.litersDispensed == nil || liters <= 0 {
		return
	}
	m.litersDispensed.WithLabelValues(normalizeLabel(fuelType)).Add(liters)
}

// IncLowInventory increments the reorder threshold counter.
func (m *TransactionMetrics) IncLowInventory(fuelType string) {
	if m == nil || m.lowInventory == nil {
		return
	}
	m.lowInventory.WithLabelValues(normalizeLabel(fuelType)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
