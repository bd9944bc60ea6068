package farm

import (
	"math"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// maxStoredProgress is the largest progress value a plot or slot may hold
var maxStoredProgress = math.Nextafter(domain.MaxProgress, 0)

// PlotRef identifies a plot that changed during a tick
type PlotRef struct {
	Index int           `json:"index"`
	Crop  domain.CropID `json:"crop"`
}

// SlotRef identifies a barn slot that changed during a tick
type SlotRef struct {
	Index   int             `json:"index"`
	Animal  domain.AnimalID `json:"animal"`
	Product domain.GoodID   `json:"product,omitempty"`
}

// TickReport summarizes what happened while the clock advanced
type TickReport struct {
	Ticks         int       `json:"ticks"`
	StageAdvances int       `json:"stage_advances"`
	Ripened       []PlotRef `json:"ripened,omitempty"`
	Produced      []SlotRef `json:"produced,omitempty"`
	AutoFed       []SlotRef `json:"auto_fed,omitempty"`
}

// Tick advances every plot and barn slot by the given number of ticks.
// Applying Tick(n) is the same as applying Tick(1) n times. It never fails;
// out-of-range values found in the state are clamped.
func (e *Engine) Tick(s *domain.FarmState, ticks int, difficulty domain.Difficulty) TickReport {
	report := TickReport{}
	if s == nil || ticks <= 0 {
		return report
	}

	multiplier := difficulty.Multiplier()
	for i := 0; i < ticks; i++ {
		e.step(s, multiplier, &report)
		report.Ticks++
	}
	return report
}

func (e *Engine) step(s *domain.FarmState, multiplier float64, report *TickReport) {
	s.TickCount++
	if s.Inventory == nil {
		s.Inventory = domain.Inventory{}
	}

	for i := range s.Plots {
		e.stepPlot(&s.Plots[i], s.Upgrades, multiplier, report)
	}
	for i := range s.Barn {
		e.stepSlot(&s.Barn[i], s, multiplier, report)
	}
}

func (e *Engine) stepPlot(p *domain.Plot, upgrades domain.UpgradeSet, multiplier float64, report *TickReport) {
	clampPlot(p)

	// Sprinkler policy: always wet while tilled, checked every tick
	if upgrades.Sprinkler && p.Soil == domain.SoilTilled {
		p.Moisture = domain.MoistureWet
	}

	if p.IsEmpty() || p.Moisture != domain.MoistureWet || p.Stage >= domain.StageRipe {
		return
	}

	def, err := e.catalog.CropDef(p.Crop)
	if err != nil {
		return
	}

	p.Progress += e.increment(def.GrowthSeconds, multiplier)
	if p.Progress < domain.MaxProgress-progressEpsilon {
		return
	}

	p.Progress = 0
	p.Stage++
	report.StageAdvances++
	// The crop drinks its water on finishing a stage
	if !upgrades.Sprinkler {
		p.Moisture = domain.MoistureDry
	}
	if p.Stage >= domain.StageRipe {
		p.Stage = domain.StageRipe
		report.Ripened = append(report.Ripened, PlotRef{Index: p.Index, Crop: p.Crop})
	}
}

func (e *Engine) stepSlot(slot *domain.BarnSlot, s *domain.FarmState, multiplier float64, report *TickReport) {
	clampSlot(slot)
	if slot.IsEmpty() {
		return
	}

	def, err := e.catalog.AnimalDef(slot.Animal)
	if err != nil {
		return
	}

	if slot.Hungry && s.Upgrades.AutoFeeder && s.Inventory.Remove(def.Eats.Good(), 1) {
		slot.Hungry = false
		report.AutoFed = append(report.AutoFed, SlotRef{Index: slot.Index, Animal: slot.Animal})
	}

	if !slot.IsProducing() {
		return
	}

	slot.Progress += e.increment(def.ProductionSeconds, multiplier)
	if slot.Progress < domain.MaxProgress-progressEpsilon {
		return
	}

	slot.Progress = 0
	slot.Ready = true
	slot.Hungry = true
	report.Produced = append(report.Produced, SlotRef{Index: slot.Index, Animal: slot.Animal, Product: def.Produces})
}

func clampPlot(p *domain.Plot) {
	switch p.Soil {
	case domain.SoilUntilled, domain.SoilTilled, domain.SoilDepleted:
	default:
		p.Soil = domain.SoilUntilled
	}
	if p.Moisture != domain.MoistureWet {
		p.Moisture = domain.MoistureDry
	}
	if p.IsEmpty() {
		p.Stage = domain.StageSeed
		p.Progress = 0
		return
	}
	if p.Stage < domain.StageSeed {
		p.Stage = domain.StageSeed
	}
	if p.Stage >= domain.StageRipe {
		p.Stage = domain.StageRipe
		p.Progress = 0
		return
	}
	p.Progress = clampProgress(p.Progress)
}

func clampSlot(slot *domain.BarnSlot) {
	if slot.IsEmpty() {
		slot.Hungry = false
		slot.Ready = false
		slot.Progress = 0
		return
	}
	slot.Progress = clampProgress(slot.Progress)
}

func clampProgress(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > maxStoredProgress {
		return maxStoredProgress
	}
	return v
}
