package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed.",
		},
	)

	catalogQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_catalog_queries_total",
			Help: "Catalog list queries served.",
		},
	)
	catalogResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_matching_products",
			Help:    "Number of products matching a catalog query.",
			Buckets: []float64{0, 1, 5, 12, 24, 50, 100},
		},
	)
	cartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Cart mutations by operation.",
		},
		[]string{"operation"},
	)

	wishlistOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_wishlist_operations_total",
			Help: "Wishlist mutations by operation.",
		},
		[]string{"operation"},
	)
	reviewsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_reviews_submitted_total",
			Help: "Reviews accepted.",
		},
	)
	reviewPhotos = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_review_photos_total",
			Help: "Photos attached to accepted reviews.",
		},
	)
	ordersPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Simulated orders placed by payment method.",
		},
		[]string{"payment_method"},
	)
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_attempts_total",
			Help: "Sign-in and sign-up attempts by outcome.",
		},
		[]string{"action", "outcome"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func RecordCatalogQuery(matching int) {
	catalogQueries.Inc()
	catalogResultSize.Observe(float64(matching))
}

func RecordCartOperation(operation string) {
	cartOperations.WithLabelValues(operation).Inc()
}

func RecordWishlistOperation(operation string) {
	wishlistOperations.WithLabelValues(operation).Inc()
}

func RecordReview(photos int) {
	reviewsSubmitted.Inc()
	reviewPhotos.Add(float64(photos))
}

func RecordOrder(paymentMethod string) {
	ordersPlaced.WithLabelValues(paymentMethod).Inc()
}

func RecordAuthAttempt(action, outcome string) {
	authAttempts.WithLabelValues(action, outcome).Inc()
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request metrics labelled by the matched route
// pattern. It must wrap the ServeMux directly so the pattern set during
// routing is visible afterwards.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {
			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}

			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, path).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()
		}()

		next.ServeHTTP(rw, r)
	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
