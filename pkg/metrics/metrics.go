package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores del motor de salidas. Se registran en el registry global de
// prometheus; el endpoint /metrics los expone cuando METRICS_ENABLED=true.
var (
	WithdrawalsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "almacen",
		Name:      "withdrawals_registered_total",
		Help:      "Salidas de almacén registradas correctamente.",
	})

	WithdrawalsReversed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "almacen",
		Name:      "withdrawals_reversed_total",
		Help:      "Salidas eliminadas con restauración de stock.",
	})

	InsufficientStockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "almacen",
		Name:      "insufficient_stock_rejections_total",
		Help:      "Salidas rechazadas por stock insuficiente.",
	})

	OrphanReversals = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "almacen",
		Name:      "orphan_reversals_total",
		Help:      "Reversiones cuyo producto ya no existe (stock no restaurado).",
	})
)
