// Package metrics определяет все Prometheus-метрики сервиса. Register не
// нужен: promauto регистрирует метрики в реестре по умолчанию при создании.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "loadboard"

// BidsSubmittedTotal считает успешно поданные ставки.
var BidsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_submitted_total",
		Help:      "Total number of bids submitted.",
	},
)

// BidsResolvedTotal считает решённые ставки по исходу (accepted/rejected).
var BidsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_resolved_total",
		Help:      "Total number of bids resolved, by decision.",
	},
	[]string{"decision"},
)

// LoadTransitionsTotal считает переходы статусов грузов.
var LoadTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "load_transitions_total",
		Help:      "Total number of load status transitions, by source and target status.",
	},
	[]string{"from", "to"},
)

// EngineErrorsTotal считает отказы бизнес-правил по причинам.
var EngineErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "engine_errors_total",
		Help:      "Total number of business-rule failures, by reason.",
	},
	[]string{"reason"},
)
