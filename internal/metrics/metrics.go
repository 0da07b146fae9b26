package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ImportSheetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_import_sheets_total",
			Help: "Workbook sheets processed by the importer",
		},
	)

	ImportRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_import_rows_total",
			Help: "Spreadsheet rows successfully processed by the importer",
		},
	)

	ImportRowErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_import_row_errors_total",
			Help: "Spreadsheet rows skipped due to row-level errors",
		},
	)
)
