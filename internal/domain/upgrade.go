package domain

// UpgradeSet holds the purchased upgrade flags and capacity levels.
// Levels only ever go up.
type UpgradeSet struct {
	Sprinkler  bool `json:"sprinkler"`
	Fertilizer bool `json:"fertilizer"`
	AutoFeeder bool `json:"auto_feeder"`
	FieldLevel int  `json:"field_level"`
	BarnLevel  int  `json:"barn_level"`
}

// Level returns the current level of an upgrade; flags report 0 or 1
func (u UpgradeSet) Level(key UpgradeKey) int {
	switch key {
	case UpgradeSprinkler:
		return boolLevel(u.Sprinkler)
	case UpgradeFertilizer:
		return boolLevel(u.Fertilizer)
	case UpgradeAutoFeeder:
		return boolLevel(u.AutoFeeder)
	case UpgradeFieldExpansion:
		return u.FieldLevel
	case UpgradeBarnExpansion:
		return u.BarnLevel
	}
	return 0
}

// Raise bumps an upgrade by one level
func (u *UpgradeSet) Raise(key UpgradeKey) {
	switch key {
	case UpgradeSprinkler:
		u.Sprinkler = true
	case UpgradeFertilizer:
		u.Fertilizer = true
	case UpgradeAutoFeeder:
		u.AutoFeeder = true
	case UpgradeFieldExpansion:
		u.FieldLevel++
	case UpgradeBarnExpansion:
		u.BarnLevel++
	}
}

// IsCapacity reports whether the upgrade adds plots or barn slots
func (k UpgradeKey) IsCapacity() bool {
	return k == UpgradeFieldExpansion || k == UpgradeBarnExpansion
}

func boolLevel(b bool) int {
	if b {
		return 1
	}
	return 0
}
