package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector()

	c.RecordHTTPRequest("GET", "/api/queues/:id", 200, 15*time.Millisecond)
	c.RecordHTTPRequest("GET", "/api/queues/:id", 200, 5*time.Millisecond)
	c.RecordQueueCreated("clinic-001")
	c.RecordQueueTransition("completed")
	c.RecordAuthAttempt(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/api/queues/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.queueEntriesCreated.WithLabelValues("clinic-001")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.queueTransitions.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.authAttemptsTotal.WithLabelValues("failure")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.authAttemptsTotal.WithLabelValues("success")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.RecordQueueCreated("clinic-001")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `queue_entries_created_total{clinic_id="clinic-001"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNewCollector_Independent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.RecordQueueTransition("waiting")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.queueTransitions.WithLabelValues("waiting")))
}
