package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config carries the identity labels stamped on every instrument.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	videoViews      *prometheus.CounterVec
	commentsCreated prometheus.Counter
	commentsDeleted prometheus.Counter
	repliesCreated  prometheus.Counter
	repliesDeleted  prometheus.Counter
	loginsTotal     *prometheus.CounterVec
	rateLimitDenied *prometheus.CounterVec
}

var (
	portalMetricsOnce sync.Once
	portalMetrics     *Metrics
)

// Portal returns the singleton portal metrics registry.
func Portal() *Metrics {
	return PortalWithConfig(Config{})
}

// PortalWithConfig returns the singleton portal metrics registry using config labels.
func PortalWithConfig(cfg Config) *Metrics {
	portalMetricsOnce.Do(func() {
		portalMetrics = newPortalMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return portalMetrics
}

// ResetPortalMetricsForTest resets the portal metrics singleton for tests.
func ResetPortalMetricsForTest() {
	portalMetricsOnce = sync.Once{}
	portalMetrics = nil
}

func newPortalMetrics(registerer prometheus.Registerer, cfg Config) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	constLabels := identityLabels(cfg)

	videoViews := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "swiftprep_video_views_total",
		Help:        "Watch page renders by composite key.",
		ConstLabels: constLabels,
	}, []string{"composite_key"})
	commentsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "swiftprep_comments_created_total",
		Help:        "Comments created on lecture videos.",
		ConstLabels: constLabels,
	})
	commentsDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "swiftprep_comments_deleted_total",
		Help:        "Comments deleted by their authors.",
		ConstLabels: constLabels,
	})
	repliesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "swiftprep_replies_created_total",
		Help:        "Replies created on comments.",
		ConstLabels: constLabels,
	})
	repliesDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "swiftprep_replies_deleted_total",
		Help:        "Replies deleted by their authors.",
		ConstLabels: constLabels,
	})
	loginsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "swiftprep_logins_total",
		Help:        "Completed OAuth logins by outcome.",
		ConstLabels: constLabels,
	}, []string{"outcome"})
	rateLimitDenied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "swiftprep_rate_limit_denied_total",
		Help:        "Requests denied by the rate limiter by endpoint.",
		ConstLabels: constLabels,
	}, []string{"endpoint"})

	registerer.MustRegister(
		videoViews,
		commentsCreated,
		commentsDeleted,
		repliesCreated,
		repliesDeleted,
		loginsTotal,
		rateLimitDenied,
	)

	return &Metrics{
		videoViews:      videoViews,
		commentsCreated: commentsCreated,
		commentsDeleted: commentsDeleted,
		repliesCreated:  repliesCreated,
		repliesDeleted:  repliesDeleted,
		loginsTotal:     loginsTotal,
		rateLimitDenied: rateLimitDenied,
	}
}

func identityLabels(cfg Config) prometheus.Labels {
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "swiftprep"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	return prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}
}

// RecordVideoView increments watch page render counts for a composite key.
func (m *Metrics) RecordVideoView(compositeKey string) {
	if m == nil || m.videoViews == nil {
		return
	}
	m.videoViews.WithLabelValues(strings.TrimSpace(compositeKey)).Inc()
}

// RecordCommentCreated increments the comment creation counter.
func (m *Metrics) RecordCommentCreated() {
	if m == nil || m.commentsCreated == nil {
		return
	}
	m.commentsCreated.Inc()
}

// RecordCommentDeleted increments the comment deletion counter.
func (m *Metrics) RecordCommentDeleted() {
	if m == nil || m.commentsDeleted == nil {
		return
	}
	m.commentsDeleted.Inc()
}

// RecordReplyCreated increments the reply creation counter.
func (m *Metrics) RecordReplyCreated() {
	if m == nil || m.repliesCreated == nil {
		return
	}
	m.repliesCreated.Inc()
}

// RecordReplyDeleted increments the reply deletion counter.
func (m *Metrics) RecordReplyDeleted() {
	if m == nil || m.repliesDeleted == nil {
		return
	}
	m.repliesDeleted.Inc()
}

// RecordLogin increments completed login counts by outcome.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil || m.loginsTotal == nil {
		return
	}
	m.loginsTotal.WithLabelValues(strings.TrimSpace(outcome)).Inc()
}

// RecordRateLimitDenied increments rate limit deny counts by endpoint.
func (m *Metrics) RecordRateLimitDenied(endpoint string) {
	if m == nil || m.rateLimitDenied == nil {
		return
	}
	m.rateLimitDenied.WithLabelValues(strings.TrimSpace(endpoint)).Inc()
}
