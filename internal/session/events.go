package session

import (
	"time"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/event"
	"github.com/osse101/Farmstead_Go/internal/farm"
)

// actionEvents maps a successful action to the events it announces.
// Tilling, watering and feeding change nothing observers track.
func actionEvents(id string, res *farm.ActionResult) []event.Event {
	if res == nil {
		return nil
	}
	now := time.Now().Unix()

	switch res.Action {
	case farm.ActionPlant:
		if res.Plot == nil {
			return nil
		}
		return []event.Event{event.NewFarmEvent(event.CropPlanted, id, domain.CropPayload{
			FarmID:    id,
			PlotIndex: res.Plot.Index,
			Crop:      res.Plot.Crop,
			Cost:      -res.CoinsDelta,
			Timestamp: now,
		})}

	case farm.ActionHarvest:
		var evts []event.Event
		for good, qty := range res.Goods {
			p := domain.CropPayload{FarmID: id, Crop: domain.CropID(good), Quantity: qty, Timestamp: now}
			if res.Plot != nil {
				p.PlotIndex = res.Plot.Index
			}
			evts = append(evts, event.NewFarmEvent(event.CropHarvested, id, p))
		}
		return evts

	case farm.ActionBuyAnimal:
		if res.Slot == nil {
			return nil
		}
		return []event.Event{event.NewFarmEvent(event.AnimalPurchased, id, domain.AnimalPayload{
			FarmID:    id,
			SlotIndex: res.Slot.Index,
			Animal:    res.Slot.Animal,
			Cost:      -res.CoinsDelta,
			Timestamp: now,
		})}

	case farm.ActionCollect:
		if res.Slot == nil {
			return nil
		}
		var evts []event.Event
		for good := range res.Goods {
			evts = append(evts, event.NewFarmEvent(event.ProductCollected, id, domain.AnimalPayload{
				FarmID:    id,
				SlotIndex: res.Slot.Index,
				Animal:    res.Slot.Animal,
				Product:   good,
				Timestamp: now,
			}))
		}
		return evts

	case farm.ActionSell, farm.ActionSmartSell:
		if len(res.Goods) == 0 {
			return nil
		}
		sold := make(map[domain.GoodID]int, len(res.Goods))
		for good, delta := range res.Goods {
			sold[good] = -delta
		}
		return []event.Event{event.NewGoodsSoldEvent(id, sold, res.CoinsDelta, res.Action == farm.ActionSmartSell)}

	case farm.ActionBuyUpgrade:
		return []event.Event{event.NewFarmEvent(event.UpgradePurchased, id, domain.UpgradePurchasedPayload{
			FarmID:    id,
			Upgrade:   res.Upgrade,
			Level:     res.Level,
			Cost:      -res.CoinsDelta,
			Timestamp: now,
		})}
	}
	return nil
}

// tickEvents announces a clock advance plus every crop that ripened and
// every product that became ready during it
func tickEvents(id string, report farm.TickReport, tickCount int64) []event.Event {
	if report.Ticks == 0 {
		return nil
	}
	now := time.Now().Unix()

	evts := make([]event.Event, 0, 1+len(report.Ripened)+len(report.Produced))
	evts = append(evts, event.NewFarmTickedEvent(id, report.Ticks, tickCount))
	for _, r := range report.Ripened {
		evts = append(evts, event.NewFarmEvent(event.CropRipened, id, domain.CropPayload{
			FarmID:    id,
			PlotIndex: r.Index,
			Crop:      r.Crop,
			Timestamp: now,
		}))
	}
	for _, p := range report.Produced {
		evts = append(evts, event.NewFarmEvent(event.AnimalReady, id, domain.AnimalPayload{
			FarmID:    id,
			SlotIndex: p.Index,
			Animal:    p.Animal,
			Product:   p.Product,
			Timestamp: now,
		}))
	}
	return evts
}
