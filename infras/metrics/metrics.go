package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cheapticket"

// Metrics holds the application collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	gatherer     prometheus.Gatherer
	otpSent      prometheus.Counter
	otpVerified  *prometheus.CounterVec
	bookings     *prometheus.CounterVec
	mailFailures *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New builds a private registry with the runtime collectors attached.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg. A nil reg yields a no-op set.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}

	otpSent := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_sent_total",
		Help:      "One-time passwords issued and mailed.",
	})
	otpVerified := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "OTP checks by outcome.",
	}, []string{"result"})
	bookings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_searches_saved_total",
		Help:      "Saved booking searches by kind.",
	}, []string{"kind"})
	mailFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_failures_total",
		Help:      "Mail that could not be delivered, by purpose.",
	}, []string{"purpose"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	reg.MustRegister(otpSent, otpVerified, bookings, mailFailures, httpRequests, httpDuration)

	return &Metrics{
		gatherer:     gatherer,
		otpSent:      otpSent,
		otpVerified:  otpVerified,
		bookings:     bookings,
		mailFailures: mailFailures,
		httpRequests: httpRequests,
		httpDuration: httpDuration,
	}
}

func (m *Metrics) IncOTPSent() {
	if m == nil || m.otpSent == nil {
		return
	}

	m.otpSent.Inc()
}

// IncOTPVerification counts an OTP check; result is "success", "invalid" or "expired".
func (m *Metrics) IncOTPVerification(result string) {
	if m == nil || m.otpVerified == nil {
		return
	}

	m.otpVerified.WithLabelValues(normalizeLabel(result)).Inc()
}

func (m *Metrics) IncBookingSaved(kind string) {
	if m == nil || m.bookings == nil {
		return
	}

	m.bookings.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (m *Metrics) IncMailFailure(purpose string) {
	if m == nil || m.mailFailures == nil {
		return
	}

	m.mailFailures.WithLabelValues(normalizeLabel(purpose)).Inc()
}

// ObserveHTTP records one finished request. route is the chi route pattern.
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil || m.httpRequests == nil {
		return
	}

	route = normalizeLabel(route)

	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}

	return value
}
