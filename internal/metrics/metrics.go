package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)

	StreamClients = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameStreamClients,
			Help: HelpTextStreamClients,
		},
		[]string{LabelTransport},
	)
)

// Simulation Metrics
var (
	Ticks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicks,
			Help: HelpTextTicks,
		},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameTickDuration,
			Help:    HelpTextTickDuration,
			Buckets: TickLatencyBuckets,
		},
	)

	TickBacklog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameTickBacklog,
			Help: HelpTextTickBacklog,
		},
	)

	Actions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActions,
			Help: HelpTextActions,
		},
		[]string{LabelAction, LabelOutcome},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsCreated,
			Help: HelpTextSessionsCreated,
		},
	)

	SessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsEvicted,
			Help: HelpTextSessionsEvicted,
		},
	)

	SessionSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionSaves,
			Help: HelpTextSessionSaves,
		},
		[]string{LabelOutcome},
	)
)

// Economy Metrics
var (
	CropsRipened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsRipened,
			Help: HelpTextCropsRipened,
		},
		[]string{LabelGood},
	)

	GoodsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoodsHarvested,
			Help: HelpTextGoodsHarvested,
		},
		[]string{LabelGood},
	)

	GoodsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoodsCollected,
			Help: HelpTextGoodsCollected,
		},
		[]string{LabelGood},
	)

	GoodsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoodsSold,
			Help: HelpTextGoodsSold,
		},
		[]string{LabelGood},
	)

	UpgradesBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpgradesBought,
			Help: HelpTextUpgradesBought,
		},
		[]string{LabelUpgrade},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
	)
)

// RecordAction counts a player action and its coin flow
func RecordAction(action string, coinsDelta int, err error) {
	if err != nil {
		Actions.WithLabelValues(action, OutcomeError).Inc()
		return
	}
	Actions.WithLabelValues(action, OutcomeSuccess).Inc()
	if coinsDelta < 0 {
		CoinsSpent.Add(float64(-coinsDelta))
	}
}

// RecordSave counts a session save attempt
func RecordSave(err error) {
	if err != nil {
		SessionSaves.WithLabelValues(OutcomeError).Inc()
		return
	}
	SessionSaves.WithLabelValues(OutcomeSuccess).Inc()
}
