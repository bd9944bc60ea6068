package domain

// CropID identifies a crop type in the catalog
type CropID string

// AnimalID identifies an animal type in the catalog
type AnimalID string

// GoodID identifies anything that can sit in an inventory: a harvested crop or an animal product
type GoodID string

// UpgradeKey identifies a purchasable upgrade
type UpgradeKey string

// Difficulty scales every growth and production rate uniformly
type Difficulty string

// AllCrops lists every crop id in catalog order
var AllCrops = []CropID{CropCorn, CropWheat, CropCarrot, CropTomato, CropPumpkin}

// AllAnimals lists every animal id in catalog order
var AllAnimals = []AnimalID{AnimalChicken, AnimalCow, AnimalSheep}

// AllProducts lists every animal product good
var AllProducts = []GoodID{GoodEgg, GoodMilk, GoodWool}

// AllUpgrades lists every upgrade key
var AllUpgrades = []UpgradeKey{
	UpgradeSprinkler,
	UpgradeFertilizer,
	UpgradeAutoFeeder,
	UpgradeFieldExpansion,
	UpgradeBarnExpansion,
}

// Valid reports whether the id names a known crop
func (c CropID) Valid() bool {
	for _, id := range AllCrops {
		if id == c {
			return true
		}
	}
	return false
}

// Good returns the inventory good produced by harvesting this crop
func (c CropID) Good() GoodID {
	return GoodID(c)
}

// Valid reports whether the id names a known animal
func (a AnimalID) Valid() bool {
	for _, id := range AllAnimals {
		if id == a {
			return true
		}
	}
	return false
}

// Valid reports whether the id names a known crop or product good
func (g GoodID) Valid() bool {
	return g.IsCrop() || g.IsProduct()
}

// IsCrop reports whether the good is a harvested crop
func (g GoodID) IsCrop() bool {
	return CropID(g).Valid()
}

// IsProduct reports whether the good is an animal product
func (g GoodID) IsProduct() bool {
	for _, id := range AllProducts {
		if id == g {
			return true
		}
	}
	return false
}

// Valid reports whether the key names a known upgrade
func (k UpgradeKey) Valid() bool {
	for _, key := range AllUpgrades {
		if key == k {
			return true
		}
	}
	return false
}

// Valid reports whether the difficulty is one of easy, normal or hard
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyNormal || d == DifficultyHard
}

// Multiplier returns the rate multiplier for the difficulty.
// Unknown values fall back to normal.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 2.0
	case DifficultyHard:
		return 0.5
	default:
		return 1.0
	}
}
