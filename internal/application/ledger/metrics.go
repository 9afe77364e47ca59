package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// operationsTotal cuenta cada operación del ledger por resultado.
var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stock_ledger_operations_total",
		Help: "Total de operaciones del ledger por operación y resultado",
	},
	[]string{"operation", "result"},
)

func observeOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
}
