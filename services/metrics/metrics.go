package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "learnhub"

// Metrics is safe to use through a nil pointer; every method becomes a no-op.
type Metrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	CartAdds           prometheus.Counter
	Checkouts          *prometheus.CounterVec
	EnrollmentsCreated prometheus.Counter
	CertificatesIssued prometheus.Counter
	CertificateLookups *prometheus.CounterVec
	CartRemindersSent  prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
		CartAdds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_adds_total",
			Help:      "Courses added to carts.",
		}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkouts by result.",
		}, []string{"result"}),
		EnrollmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrollments_created_total",
			Help:      "Enrollments created by checkout.",
		}),
		CertificatesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "certificates_issued_total",
			Help:      "Certificates issued.",
		}),
		CertificateLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "certificate_verifications_total",
			Help:      "Public certificate verifications by result.",
		}, []string{"result"}),
		CartRemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_reminders_sent_total",
			Help:      "Abandoned cart reminders sent.",
		}),
	}
	reg.MustRegister(
		m.Requests, m.LatencyMS,
		m.CartAdds, m.Checkouts, m.EnrollmentsCreated,
		m.CertificatesIssued, m.CertificateLookups, m.CartRemindersSent,
	)
	return m
}

func (m *Metrics) ObserveRequest(handler string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Microseconds()) / 1000)
}

func (m *Metrics) CartAdded() {
	if m == nil {
		return
	}
	m.CartAdds.Inc()
}

// CheckoutDone records one checkout; result is "ok", "partial", "empty" or "error".
func (m *Metrics) CheckoutDone(result string, enrolled int) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(result).Inc()
	m.EnrollmentsCreated.Add(float64(enrolled))
}

func (m *Metrics) CertificateIssued() {
	if m == nil {
		return
	}
	m.CertificatesIssued.Inc()
}

func (m *Metrics) CertificateVerified(valid bool) {
	if m == nil {
		return
	}
	result := "valid"
	if !valid {
		result = "invalid"
	}
	m.CertificateLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) RemindersSent(n int) {
	if m == nil {
		return
	}
	m.CartRemindersSent.Add(float64(n))
}
