package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
	MetricNameStreamClients      = "event_stream_clients"
)

// Simulation metric names
const (
	MetricNameTicks           = "farm_ticks_total"
	MetricNameTickDuration    = "farm_tick_duration_seconds"
	MetricNameTickBacklog     = "farm_tick_backlog"
	MetricNameActions         = "farm_actions_total"
	MetricNameActiveSessions  = "farm_active_sessions"
	MetricNameSessionsCreated = "farm_sessions_created_total"
	MetricNameSessionsEvicted = "farm_sessions_evicted_total"
	MetricNameSessionSaves    = "farm_session_saves_total"
	MetricNameCropsRipened    = "farm_crops_ripened_total"
	MetricNameGoodsHarvested  = "farm_goods_harvested_total"
	MetricNameGoodsCollected  = "farm_products_collected_total"
	MetricNameGoodsSold       = "farm_goods_sold_total"
	MetricNameUpgradesBought  = "farm_upgrades_purchased_total"
	MetricNameCoinsEarned     = "farm_coins_earned_total"
	MetricNameCoinsSpent      = "farm_coins_spent_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
	HelpTextStreamClients      = "Connected event stream clients by transport"
)

// Simulation metric help text
const (
	HelpTextTicks           = "Total simulation ticks applied across all sessions"
	HelpTextTickDuration    = "Time spent advancing every active session by one clock interval"
	HelpTextTickBacklog     = "Clock intervals waiting to be folded into the next tick pass"
	HelpTextActions         = "Player actions by action and outcome"
	HelpTextActiveSessions  = "Farm sessions currently held in memory"
	HelpTextSessionsCreated = "Total farm sessions created"
	HelpTextSessionsEvicted = "Total farm sessions evicted from memory after idling"
	HelpTextSessionSaves    = "Farm session saves by outcome"
	HelpTextCropsRipened    = "Total crops that reached the ripe stage"
	HelpTextGoodsHarvested  = "Units of crops harvested"
	HelpTextGoodsCollected  = "Units of animal products collected"
	HelpTextGoodsSold       = "Units of goods sold"
	HelpTextUpgradesBought  = "Upgrade levels purchased"
	HelpTextCoinsEarned     = "Total coins earned from selling goods"
	HelpTextCoinsSpent      = "Total coins spent on seeds, animals and upgrades"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelAction    = "action"
	LabelOutcome   = "outcome"
	LabelGood      = "good"
	LabelUpgrade   = "upgrade"
	LabelTransport = "transport"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"

	TransportSSE       = "sse"
	TransportWebSocket = "websocket"

	unmatchedRoute = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// TickLatencyBuckets covers a tick pass from 10µs up to a full default interval
var TickLatencyBuckets = []float64{.00001, .0001, .0005, .001, .005, .01, .025, .05, .1, .25}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
