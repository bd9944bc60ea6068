package farm

import (
	"time"

	"github.com/osse101/Farmstead_Go/internal/catalog"
)

// Engine provides pure farm logic (no DB or clock dependencies).
// Callers own the FarmState and must serialize access to it.
type Engine struct {
	catalog        *catalog.Catalog
	ticksPerSecond float64
}

// NewEngine creates an engine for the given catalog and tick interval
func NewEngine(cat *catalog.Catalog, tickInterval time.Duration) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	return &Engine{
		catalog:        cat,
		ticksPerSecond: float64(time.Second) / float64(tickInterval),
	}
}

// Catalog returns the catalog the engine validates against
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// TicksPerSecond returns how many ticks make up one second of game time
func (e *Engine) TicksPerSecond() float64 {
	return e.ticksPerSecond
}

// increment is the progress added per tick for something taking durationSeconds per cycle
func (e *Engine) increment(durationSeconds, multiplier float64) float64 {
	if durationSeconds <= 0 || multiplier <= 0 {
		return 0
	}
	return (100 / (durationSeconds * e.ticksPerSecond)) * multiplier
}
