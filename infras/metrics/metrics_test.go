package metrics_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cheapticket/infras/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, reg)

	m.IncOTPSent()
	m.IncOTPVerification("expired")
	m.IncBookingSaved("hotel")
	m.IncBookingSaved("hotel")
	m.IncMailFailure("")
	m.ObserveHTTP(http.MethodPost, "/v1/hotel", http.StatusCreated, 20*time.Millisecond)

	mfs, err := reg.Gather()
	assert.NoError(t, err)

	got, err := fetchCounterValue(mfs, "cheapticket_booking_searches_saved_total", "kind", "hotel")
	assert.NoError(t, err)
	assert.Equal(t, 2.0, got)

	got, err = fetchCounterValue(mfs, "cheapticket_otp_verifications_total", "result", "expired")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = fetchCounterValue(mfs, "cheapticket_mail_failures_total", "purpose", "unknown")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = fetchCounterValue(mfs, "cheapticket_http_requests_total", "status", "201")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.IncOTPSent()
		m.IncBookingSaved("cruise")
		m.ObserveHTTP(http.MethodGet, "/healthz", http.StatusOK, time.Millisecond)
	})

	empty := metrics.NewWithRegistry(nil, nil)
	assert.NotPanics(t, func() { empty.IncMailFailure("otp") })
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.IncOTPSent()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "cheapticket_otp_sent_total 1"))
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}

		for _, metric := range mf.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric.GetCounter().GetValue(), nil
				}
			}
		}

		return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
	}

	return 0, fmt.Errorf("metric %q not found", name)
}
