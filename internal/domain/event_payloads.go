package domain

// FarmTickedPayload is the payload for farm.ticked events
type FarmTickedPayload struct {
	FarmID    string `json:"farm_id"`
	Ticks     int    `json:"ticks"`
	TickCount int64  `json:"tick_count"`
	Timestamp int64  `json:"timestamp"`
}

// CropPayload is the payload for crop planted, ripened and harvested events
type CropPayload struct {
	FarmID    string `json:"farm_id"`
	PlotIndex int    `json:"plot_index"`
	Crop      CropID `json:"crop"`
	Quantity  int    `json:"quantity,omitempty"`
	Cost      int    `json:"cost,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// AnimalPayload is the payload for animal purchased, ready and collected events
type AnimalPayload struct {
	FarmID    string   `json:"farm_id"`
	SlotIndex int      `json:"slot_index"`
	Animal    AnimalID `json:"animal"`
	Product   GoodID   `json:"product,omitempty"`
	Cost      int      `json:"cost,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// GoodsSoldPayload is the payload for farm.goods_sold events
type GoodsSoldPayload struct {
	FarmID      string         `json:"farm_id"`
	Goods       map[GoodID]int `json:"goods"`
	CoinsEarned int            `json:"coins_earned"`
	SmartSell   bool           `json:"smart_sell"`
	Timestamp   int64          `json:"timestamp"`
}

// UpgradePurchasedPayload is the payload for farm.upgrade_purchased events
type UpgradePurchasedPayload struct {
	FarmID    string     `json:"farm_id"`
	Upgrade   UpgradeKey `json:"upgrade"`
	Level     int        `json:"level"`
	Cost      int        `json:"cost"`
	Timestamp int64      `json:"timestamp"`
}

// FarmCreatedPayload is the payload for farm.created events
type FarmCreatedPayload struct {
	FarmID     string     `json:"farm_id"`
	Difficulty Difficulty `json:"difficulty"`
	Timestamp  int64      `json:"timestamp"`
}
