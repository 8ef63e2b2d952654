package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/andrewpaige1/revisa-api/srs"
)

func TestObserveReview(t *testing.T) {
	before := testutil.ToFloat64(reviewsTotal.WithLabelValues("4"))
	failedBefore := testutil.ToFloat64(reviewFailures)

	ObserveReview(srs.QualityGood, nil)
	ObserveReview(srs.QualityGood, errors.New("db down"))

	assert.Equal(t, before+1, testutil.ToFloat64(reviewsTotal.WithLabelValues("4")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(reviewFailures))
}

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(generatedCards)
	ObserveGeneration("ok", 5)
	ObserveGeneration("partial", 0)
	assert.Equal(t, before+5, testutil.ToFloat64(generatedCards))
	assert.GreaterOrEqual(t, testutil.ToFloat64(generationTotal.WithLabelValues("partial")), 1.0)
}

func TestInstrumentUsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := Instrument(mux)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things/42", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
