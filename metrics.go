package spotled

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics, veri aktarımlarına ait Prometheus metrikleridir.
// nil bir *Metrics güvenle kullanılabilir; hiçbir şey kaydetmez.
type Metrics struct {
	Transfers    *prometheus.CounterVec // labels: result=ok|failed
	Attempts     prometheus.Counter     // başlatılan deneme sayısı
	Retries      *prometheus.CounterVec // labels: stage
	BytesWritten prometheus.Counter     // veri karakteristiğine yazılan byte
	Rewinds      prometheus.Counter     // geriye dönük ContinueFrom sayısı
	Duration     prometheus.Histogram   // başarılı aktarım süresi
}

// NewMetrics, aktarım metriklerini oluşturur ve reg'e kaydeder.
//
//	reg := prometheus.NewRegistry()
//	dev := spotled.NewDevice(transport, spotled.WithMetrics(spotled.NewMetrics(reg)))
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotled_transfer_total",
			Help: "Completed data transfers by result.",
		}, []string{"result"}),
		Attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spotled_transfer_attempts_total",
			Help: "Transfer attempts started, including retries.",
		}),
		Retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotled_transfer_failed_attempts_total",
			Help: "Failed transfer attempts by stage.",
		}, []string{"stage"}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spotled_data_bytes_written_total",
			Help: "Bytes written to the data characteristic.",
		}),
		Rewinds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spotled_continue_rewinds_total",
			Help: "Continue responses that moved the stream offset backwards.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spotled_transfer_duration_seconds",
			Help:    "Duration of successful data transfers.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Transfers, m.Attempts, m.Retries, m.BytesWritten, m.Rewinds, m.Duration)
	}
	return m
}

func (m *Metrics) transferDone(ok bool, started time.Time) {
	if m == nil {
		return
	}
	if !ok {
		m.Transfers.WithLabelValues("failed").Inc()
		return
	}
	m.Transfers.WithLabelValues("ok").Inc()
	m.Duration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) attemptStarted() {
	if m != nil {
		m.Attempts.Inc()
	}
}

func (m *Metrics) attemptFailed(stage Stage) {
	if m != nil {
		m.Retries.WithLabelValues(string(stage)).Inc()
	}
}

func (m *Metrics) wrote(n int) {
	if m != nil {
		m.BytesWritten.Add(float64(n))
	}
}

func (m *Metrics) rewound() {
	if m != nil {
		m.Rewinds.Inc()
	}
}
