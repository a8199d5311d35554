package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsExposition(t *testing.T) {
	m := New(DefaultConfig())

	m.RecordEvaluation(OutcomeHarder, 2*time.Millisecond)
	m.RecordEvaluation(OutcomeFlow, time.Millisecond)
	m.RecordEvaluation(OutcomeFlow, time.Millisecond)
	m.RecordEstimate(96, 10)
	m.RecordApplied("harder")
	m.RecordDismissal()
	m.RecordCompletion()

	body := scrape(t, m)
	assert.Contains(t, body, `levelup_engine_evaluations_total{outcome="harder"} 1`)
	assert.Contains(t, body, `levelup_engine_evaluations_total{outcome="flow"} 2`)
	assert.Contains(t, body, "levelup_engine_willpower_count 1")
	assert.Contains(t, body, `levelup_lifecycle_suggestions_applied_total{direction="harder"} 1`)
	assert.Contains(t, body, "levelup_lifecycle_suggestions_dismissed_total 1")
	assert.Contains(t, body, "levelup_tracker_completions_total 1")
}

func TestSeparateRegistries(t *testing.T) {
	a := New(Config{})
	b := New(Config{})
	a.RecordCompletion()

	assert.Contains(t, scrape(t, a), "levelup_tracker_completions_total 1")
	assert.Contains(t, scrape(t, b), "levelup_tracker_completions_total 0")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordEvaluation(OutcomeError, time.Second)
		m.RecordEstimate(50, 20)
		m.RecordApplied("easier")
		m.RecordDismissal()
		m.RecordCompletion()
	})
	assert.Nil(t, m.Registry())
	assert.NotNil(t, m.Handler())
}
