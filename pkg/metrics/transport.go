package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// instrumentedTransport http.RoundTripper с метриками интеграционных вызовов
type instrumentedTransport struct {
	base    http.RoundTripper
	metrics *Metrics
	target  string
}

// InstrumentTransport оборачивает транспорт HTTP клиента метриками
// количества и длительности запросов к внешнему сервису target
func (m *Metrics) InstrumentTransport(target string, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &instrumentedTransport{base: base, metrics: m, target: target}
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	t.metrics.IntegrationRequestDuration.WithLabelValues(t.target).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	t.metrics.IntegrationRequestsTotal.WithLabelValues(t.target, status).Inc()

	return resp, err
}
