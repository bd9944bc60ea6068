package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/event"
)

func TestEventMetricsCollector_GoodsSold(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	eggsBefore := testutil.ToFloat64(GoodsSold.WithLabelValues("egg"))
	coinsBefore := testutil.ToFloat64(CoinsEarned)

	ev := event.NewGoodsSoldEvent("farm-m", map[domain.GoodID]int{domain.GoodEgg: -3}, 54, true)
	require.NoError(t, bus.Publish(context.Background(), ev))

	assert.Equal(t, eggsBefore+3, testutil.ToFloat64(GoodsSold.WithLabelValues("egg")))
	assert.Equal(t, coinsBefore+54, testutil.ToFloat64(CoinsEarned))
}

func TestEventMetricsCollector_TicksAndHarvests(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	ticksBefore := testutil.ToFloat64(Ticks)
	cornBefore := testutil.ToFloat64(GoodsHarvested.WithLabelValues("corn"))

	require.NoError(t, bus.Publish(context.Background(), event.NewFarmTickedEvent("farm-m", 5, 5)))
	require.NoError(t, bus.Publish(context.Background(), event.NewFarmEvent(event.CropHarvested, "farm-m",
		domain.CropPayload{FarmID: "farm-m", Crop: domain.CropCorn, Quantity: 2})))

	assert.Equal(t, ticksBefore+5, testutil.ToFloat64(Ticks))
	assert.Equal(t, cornBefore+2, testutil.ToFloat64(GoodsHarvested.WithLabelValues("corn")))
}

func TestEventMetricsCollector_BadPayloadIsNotFatal(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.FarmTicked)))

	err := c.HandleEvent(context.Background(), event.Event{Type: event.FarmTicked, Payload: func() {}})
	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.FarmTicked))))
}

func TestRecordAction(t *testing.T) {
	okBefore := testutil.ToFloat64(Actions.WithLabelValues("plant", OutcomeSuccess))
	errBefore := testutil.ToFloat64(Actions.WithLabelValues("plant", OutcomeError))
	spentBefore := testutil.ToFloat64(CoinsSpent)

	RecordAction("plant", -20, nil)
	RecordAction("plant", 0, errors.New("nope"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(Actions.WithLabelValues("plant", OutcomeSuccess)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(Actions.WithLabelValues("plant", OutcomeError)))
	assert.Equal(t, spentBefore+20, testutil.ToFloat64(CoinsSpent))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/farms/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/farms/{id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/farms/abc-123", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/farms/{id}", "418")))
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	var f http.Flusher = rw
	f.Flush()
	assert.True(t, rec.Flushed)

	_, _, err := rw.Hijack()
	assert.Error(t, err, "recorder cannot be hijacked")
}
