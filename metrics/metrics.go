// Package metrics holds the Prometheus instruments of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrewpaige1/revisa-api/srs"
)

var (
	// reviewsTotal counts persisted ratings by quality
	reviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "revisa_reviews_total",
		Help: "Flashcard ratings persisted, by quality",
	}, []string{"quality"})

	reviewFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revisa_review_failures_total",
		Help: "Flashcard ratings that failed to persist",
	})

	// generationTotal counts AI generation requests by result (ok, partial, error)
	generationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "revisa_generation_total",
		Help: "AI flashcard generation requests by result",
	}, []string{"result"})

	generatedCards = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revisa_generated_cards_total",
		Help: "Flashcards inserted from AI generation",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "revisa_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern and status",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	}, []string{"route", "status"})
)

// ObserveReview records the outcome of one rating.
func ObserveReview(q srs.Quality, err error) {
	if err != nil {
		reviewFailures.Inc()
		return
	}
	reviewsTotal.WithLabelValues(strconv.Itoa(int(q))).Inc()
}

// ObserveGeneration records the outcome of one generation request.
func ObserveGeneration(result string, inserted int) {
	generationTotal.WithLabelValues(result).Inc()
	generatedCards.Add(float64(inserted))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrument times every request, labelled by the ServeMux pattern that matched.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(route, strconv.Itoa(rec.status)).Observe(time.Since(start).Seconds())
	})
}
