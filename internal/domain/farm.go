package domain

import "time"

// SoilState is the cultivation state of a plot
type SoilState string

// Moisture is the water state of a plot
type Moisture string

// GrowthStage is the discrete growth phase of a planted crop (0=seed .. 3=ripe)
type GrowthStage int

// Plot is a single cultivable cell
type Plot struct {
	Index    int         `json:"index"`
	Soil     SoilState   `json:"soil"`
	Moisture Moisture    `json:"moisture"`
	Crop     CropID      `json:"crop,omitempty"` // empty when nothing is planted
	Stage    GrowthStage `json:"stage"`
	Progress float64     `json:"progress"` // [0,100)
}

// NewPlot returns a plot in its starting state {untilled, dry, empty}
func NewPlot(index int) Plot {
	return Plot{
		Index:    index,
		Soil:     SoilUntilled,
		Moisture: MoistureDry,
	}
}

// IsEmpty reports whether nothing is planted
func (p Plot) IsEmpty() bool {
	return p.Crop == ""
}

// IsRipe reports whether the plot can be harvested
func (p Plot) IsRipe() bool {
	return !p.IsEmpty() && p.Stage >= StageRipe
}

// BarnSlot is a single animal pen
type BarnSlot struct {
	Index    int      `json:"index"`
	Animal   AnimalID `json:"animal,omitempty"` // empty when the pen is vacant
	Hungry   bool     `json:"hungry"`
	Ready    bool     `json:"ready"`
	Progress float64  `json:"progress"` // [0,100)
}

// NewBarnSlot returns an empty pen
func NewBarnSlot(index int) BarnSlot {
	return BarnSlot{Index: index}
}

// IsEmpty reports whether the pen has no occupant
func (s BarnSlot) IsEmpty() bool {
	return s.Animal == ""
}

// IsProducing reports whether production progress may advance
func (s BarnSlot) IsProducing() bool {
	return !s.IsEmpty() && !s.Hungry && !s.Ready
}

// FarmState is the complete state of one player's running game.
// A session exclusively owns one FarmState; nothing in it is shared.
type FarmState struct {
	ID         string     `json:"id"`
	Difficulty Difficulty `json:"difficulty"`
	Plots      []Plot     `json:"plots"`
	Barn       []BarnSlot `json:"barn"`
	Inventory  Inventory  `json:"inventory"`
	Treasury   int        `json:"treasury"`
	Upgrades   UpgradeSet `json:"upgrades"`
	TickCount  int64      `json:"tick_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Clone returns a deep copy safe to hand to readers outside the session lock
func (s *FarmState) Clone() *FarmState {
	if s == nil {
		return nil
	}
	out := *s
	out.Plots = append([]Plot(nil), s.Plots...)
	out.Barn = append([]BarnSlot(nil), s.Barn...)
	out.Inventory = s.Inventory.Clone()
	return &out
}

// Plot returns a pointer to the plot at index, or nil when out of range
func (s *FarmState) Plot(index int) *Plot {
	if index < 0 || index >= len(s.Plots) {
		return nil
	}
	return &s.Plots[index]
}

// Slot returns a pointer to the barn slot at index, or nil when out of range
func (s *FarmState) Slot(index int) *BarnSlot {
	if index < 0 || index >= len(s.Barn) {
		return nil
	}
	return &s.Barn[index]
}
