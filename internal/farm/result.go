package farm

import "github.com/osse101/Farmstead_Go/internal/domain"

// ActionResult is the delta produced by a successful player action.
// Callers use it to spawn feedback such as floating coin indicators.
type ActionResult struct {
	Action     Action                `json:"action"`
	CoinsDelta int                   `json:"coins_delta"`
	Goods      map[domain.GoodID]int `json:"goods,omitempty"` // signed inventory changes
	Plot       *domain.Plot          `json:"plot,omitempty"`
	Slot       *domain.BarnSlot      `json:"slot,omitempty"`
	Upgrade    domain.UpgradeKey     `json:"upgrade,omitempty"`
	Level      int                   `json:"level,omitempty"`
	NewPlots   []domain.Plot         `json:"new_plots,omitempty"`
	NewSlots   []domain.BarnSlot     `json:"new_slots,omitempty"`
}

func plotResult(action Action, p domain.Plot) *ActionResult {
	return &ActionResult{Action: action, Plot: &p}
}

func slotResult(action Action, slot domain.BarnSlot) *ActionResult {
	return &ActionResult{Action: action, Slot: &slot}
}
