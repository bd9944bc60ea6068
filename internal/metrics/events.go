package metrics

import (
	"context"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/event"
	"github.com/osse101/Farmstead_Go/internal/logger"
)

// EventMetricsCollector subscribes to farm events and records economy metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all farm events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, event.FarmTypes(), e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.FarmTicked:
		var p domain.FarmTickedPayload
		if p, err = event.DecodePayload[domain.FarmTickedPayload](evt.Payload); err == nil {
			Ticks.Add(float64(p.Ticks))
		}

	case event.FarmCreated:
		SessionsCreated.Inc()

	case event.CropRipened:
		var p domain.CropPayload
		if p, err = event.DecodePayload[domain.CropPayload](evt.Payload); err == nil {
			CropsRipened.WithLabelValues(string(p.Crop)).Inc()
		}

	case event.CropHarvested:
		var p domain.CropPayload
		if p, err = event.DecodePayload[domain.CropPayload](evt.Payload); err == nil {
			GoodsHarvested.WithLabelValues(string(p.Crop)).Add(float64(p.Quantity))
		}

	case event.ProductCollected:
		var p domain.AnimalPayload
		if p, err = event.DecodePayload[domain.AnimalPayload](evt.Payload); err == nil {
			GoodsCollected.WithLabelValues(string(p.Product)).Inc()
		}

	case event.GoodsSold:
		var p domain.GoodsSoldPayload
		if p, err = event.DecodePayload[domain.GoodsSoldPayload](evt.Payload); err == nil {
			for good, qty := range p.Goods {
				if qty < 0 {
					qty = -qty
				}
				GoodsSold.WithLabelValues(string(good)).Add(float64(qty))
			}
			CoinsEarned.Add(float64(p.CoinsEarned))
		}

	case event.UpgradePurchased:
		var p domain.UpgradePurchasedPayload
		if p, err = event.DecodePayload[domain.UpgradePurchasedPayload](evt.Payload); err == nil {
			UpgradesBought.WithLabelValues(string(p.Upgrade)).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
