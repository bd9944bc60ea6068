package catalog

import "github.com/osse101/Farmstead_Go/internal/domain"

func defaultCrops() []CropDef {
	return []CropDef{
		{ID: domain.CropCorn, Name: "Corn", Cost: 2, SellPrice: 5, GrowthSeconds: 3, Emoji: "🌽"},
		{ID: domain.CropWheat, Name: "Wheat", Cost: 4, SellPrice: 9, GrowthSeconds: 5, Emoji: "🌾"},
		{ID: domain.CropCarrot, Name: "Carrot", Cost: 6, SellPrice: 14, GrowthSeconds: 7, Emoji: "🥕"},
		{ID: domain.CropTomato, Name: "Tomato", Cost: 10, SellPrice: 24, GrowthSeconds: 10, Emoji: "🍅"},
		{ID: domain.CropPumpkin, Name: "Pumpkin", Cost: 20, SellPrice: 55, GrowthSeconds: 15, Emoji: "🎃"},
	}
}

func defaultAnimals() []AnimalDef {
	return []AnimalDef{
		{ID: domain.AnimalChicken, Name: "Chicken", Cost: 50, Produces: domain.GoodEgg, Eats: domain.CropCorn, ProductionSeconds: 8, Emoji: "🐔"},
		{ID: domain.AnimalCow, Name: "Cow", Cost: 120, Produces: domain.GoodMilk, Eats: domain.CropWheat, ProductionSeconds: 15, Emoji: "🐄"},
		{ID: domain.AnimalSheep, Name: "Sheep", Cost: 90, Produces: domain.GoodWool, Eats: domain.CropCarrot, ProductionSeconds: 12, Emoji: "🐑"},
	}
}

func defaultProducts() []ProductDef {
	return []ProductDef{
		{ID: domain.GoodEgg, Name: "Egg", SellPrice: 18, Emoji: "🥚"},
		{ID: domain.GoodMilk, Name: "Milk", SellPrice: 45, Emoji: "🥛"},
		{ID: domain.GoodWool, Name: "Wool", SellPrice: 35, Emoji: "🧶"},
	}
}

func defaultUpgrades() []UpgradeDef {
	return []UpgradeDef{
		{Key: domain.UpgradeSprinkler, Name: "Sprinkler", Description: "Keeps tilled soil watered", BaseCost: 150, MaxLevel: 1},
		{Key: domain.UpgradeFertilizer, Name: "Fertilizer", Description: "Doubles harvest yield", BaseCost: 300, MaxLevel: 1},
		{Key: domain.UpgradeAutoFeeder, Name: "Auto Feeder", Description: "Hungry animals eat from the inventory on their own", BaseCost: 250, MaxLevel: 1},
		{Key: domain.UpgradeFieldExpansion, Name: "Field Expansion", Description: "Adds three plots", BaseCost: 100, MaxLevel: 3, Grants: 3},
		{Key: domain.UpgradeBarnExpansion, Name: "Barn Expansion", Description: "Adds a barn slot", BaseCost: 200, MaxLevel: 2, Grants: 1},
	}
}
