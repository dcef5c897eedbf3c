package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePlan(t *testing.T) {
	computed := PlanCount(PlanComputed)
	declined := PlanCount(PlanDeclined)

	ObservePlan(true)
	ObservePlan(true)
	ObservePlan(false)

	assert.Equal(t, computed+2, PlanCount(PlanComputed))
	assert.Equal(t, declined+1, PlanCount(PlanDeclined))
}

func TestHandlerExposesCounters(t *testing.T) {
	IncRecord("leads", "create")
	IncChangeEvent("leads", "INSERT")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `agrocrm_records_total{op="create",table="leads"}`)
	assert.Contains(t, string(body), `agrocrm_change_events_total{table="leads",type="INSERT"}`)
}
