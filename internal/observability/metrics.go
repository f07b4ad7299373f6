package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rbk",
			Subsystem: "tcp",
			Name:      "requests_total",
			Help:      "Total RBK API requests handled.",
		},
		[]string{"robot", "category", "api", "ret_code"},
	)
	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rbk",
			Subsystem: "tcp",
			Name:      "request_duration_seconds",
			Help:      "RBK API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"robot", "category", "api", "ret_code"},
	)
	tcpSessions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rbk",
			Subsystem: "tcp",
			Name:      "sessions_active",
			Help:      "Open client sessions per listener.",
		},
		[]string{"robot", "category"},
	)
	simTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rbk",
			Subsystem: "sim",
			Name:      "ticks_total",
			Help:      "Simulation ticks applied.",
		},
		[]string{"robot"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rbk",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total waypoint API requests.",
		},
		[]string{"robot", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rbk",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Waypoint API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"robot", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(apiRequests, apiDuration, tcpSessions, simTicks, httpRequests, httpDuration)
	})
}

func RecordAPIRequest(robot, category string, api uint16, retCode uint32, duration time.Duration) {
	RegisterMetrics()
	apiLabel := strconv.Itoa(int(api))
	codeLabel := strconv.FormatUint(uint64(retCode), 10)
	apiRequests.WithLabelValues(robot, category, apiLabel, codeLabel).Inc()
	apiDuration.WithLabelValues(robot, category, apiLabel, codeLabel).Observe(duration.Seconds())
}

func SessionOpened(robot, category string) {
	RegisterMetrics()
	tcpSessions.WithLabelValues(robot, category).Inc()
}

func SessionClosed(robot, category string) {
	RegisterMetrics()
	tcpSessions.WithLabelValues(robot, category).Dec()
}

func RecordSimTick(robot string) {
	RegisterMetrics()
	simTicks.WithLabelValues(robot).Inc()
}

func RecordHTTPRequest(robot, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(robot, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(robot, method, path, statusLabel).Observe(duration.Seconds())
}
