package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestHandler_ExposesIntakeCounters(t *testing.T) {
	RecordApplication("participant")
	RecordRejectedEnvelope()
	RecordDelivery(nil)
	RecordDelivery(errors.New("blocked by user"))

	body := scrape(t)

	assert.Contains(t, body, `technohunter_intake_applications_total{type="participant"}`)
	assert.Contains(t, body, "technohunter_intake_envelopes_rejected_total")
	assert.Contains(t, body, `technohunter_notifications_deliveries_total{result="sent"}`)
	assert.Contains(t, body, `technohunter_notifications_deliveries_total{result="failed"}`)
}
