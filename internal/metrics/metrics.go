package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal - количество HTTP запросов
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "org_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration - длительность обработки HTTP запросов
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "org_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// StoreMutationsTotal - количество применённых изменений хранилища
	StoreMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "org_store_mutations_total",
			Help: "Total number of applied store mutations",
		},
		[]string{"operation"},
	)

	// StorePersistFailuresTotal - неудачные попытки сохранить состояние
	StorePersistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "org_store_persist_failures_total",
			Help: "Total number of failed state snapshot saves",
		},
	)

	Departments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "org_departments",
			Help: "Number of departments in the tree",
		},
	)

	Employees = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "org_employees",
			Help: "Number of employees in the registry",
		},
	)

	// OpenRequests - заявки в статусах NEW и IN_PROGRESS
	OpenRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "org_open_requests",
			Help: "Number of requests that are new or in progress",
		},
	)
)
