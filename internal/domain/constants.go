package domain

// Crop identifiers. The set is closed: anything else is rejected by CropID.Valid.
const (
	CropCorn    CropID = "corn"
	CropWheat   CropID = "wheat"
	CropCarrot  CropID = "carrot"
	CropTomato  CropID = "tomato"
	CropPumpkin CropID = "pumpkin"
)

// Animal identifiers
const (
	AnimalChicken AnimalID = "chicken"
	AnimalCow     AnimalID = "cow"
	AnimalSheep   AnimalID = "sheep"
)

// Animal product goods. Crop goods share their CropID string.
const (
	GoodEgg  GoodID = "egg"
	GoodMilk GoodID = "milk"
	GoodWool GoodID = "wool"
)

// Upgrade keys
const (
	UpgradeSprinkler      UpgradeKey = "sprinkler"
	UpgradeFertilizer     UpgradeKey = "fertilizer"
	UpgradeAutoFeeder     UpgradeKey = "auto_feeder"
	UpgradeFieldExpansion UpgradeKey = "field_expansion"
	UpgradeBarnExpansion  UpgradeKey = "barn_expansion"
)

// Difficulty levels
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Growth stages
const (
	StageSeed    GrowthStage = 0
	StageSprout  GrowthStage = 1
	StageGrowing GrowthStage = 2
	StageRipe    GrowthStage = 3
)

// Soil and moisture states
const (
	SoilUntilled SoilState = "untilled"
	SoilTilled   SoilState = "tilled"
	SoilDepleted SoilState = "depleted"

	MoistureDry Moisture = "dry"
	MoistureWet Moisture = "wet"
)

// Session defaults
const (
	StartingTreasury  = 200
	StartingPlots     = 6
	StartingBarnSlots = 2
	MaxProgress       = 100.0
	MaxSellQuantity   = 10000
)
