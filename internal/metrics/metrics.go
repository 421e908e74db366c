// Package metrics holds the Prometheus collectors for the catalog.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bacadong_query_duration_seconds",
			Help:    "Duration of catalog store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"store", "operation"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bacadong_query_errors_total",
			Help: "Total number of failed catalog store operations",
		},
		[]string{"store", "operation", "error_type"},
	)

	ViewsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bacadong_views_recorded_total",
			Help: "Total number of book view events recorded",
		},
	)

	RatingsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bacadong_ratings_recorded_total",
			Help: "Total number of ratings stored",
		},
	)

	CatalogBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bacadong_catalog_books",
			Help: "Number of books in the catalog",
		},
	)

	CatalogCategories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bacadong_catalog_categories",
			Help: "Number of categories in the catalog",
		},
	)

	CatalogViews = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bacadong_catalog_history_rows",
			Help: "Number of rows in book_history",
		},
	)
)

// Observe records the duration of a store operation and, on failure, its
// error class. Use with defer:
//
//	defer metrics.Observe("books", "newest", time.Now(), &err)
func Observe(store, operation string, start time.Time, errp *error) {
	QueryDuration.WithLabelValues(store, operation).Observe(time.Since(start).Seconds())
	if errp == nil || *errp == nil {
		return
	}
	QueryErrors.WithLabelValues(store, operation, errorType(*errp)).Inc()
}

// SetCatalogTotals updates the catalog size gauges.
func SetCatalogTotals(books, categories, historyRows int64) {
	CatalogBooks.Set(float64(books))
	CatalogCategories.Set(float64(categories))
	CatalogViews.Set(float64(historyRows))
}

func errorType(err error) string {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return "duplicate"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return "foreign_key"
	default:
		return "query"
	}
}
