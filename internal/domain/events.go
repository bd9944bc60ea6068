package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: farm.<action> (e.g., "farm.goods_sold")
const (
	// EventTypeFarmTicked is published after the clock advances a session
	EventTypeFarmTicked = "farm.ticked"

	// EventTypeCropRipened is published when a plot reaches the ripe stage
	EventTypeCropRipened = "farm.crop_ripened"

	// EventTypeCropHarvested is published when a ripe plot is harvested
	EventTypeCropHarvested = "farm.crop_harvested"

	// EventTypeCropPlanted is published when a seed goes into a plot
	EventTypeCropPlanted = "farm.crop_planted"

	// EventTypeAnimalPurchased is published when an animal is placed in a pen
	EventTypeAnimalPurchased = "farm.animal_purchased"

	// EventTypeAnimalReady is published when an animal finishes a production cycle
	EventTypeAnimalReady = "farm.animal_ready"

	// EventTypeProductCollected is published when a ready product is collected
	EventTypeProductCollected = "farm.product_collected"

	// EventTypeGoodsSold is published for both single sales and smart sells
	EventTypeGoodsSold = "farm.goods_sold"

	// EventTypeUpgradePurchased is published when an upgrade level is bought
	EventTypeUpgradePurchased = "farm.upgrade_purchased"

	// EventTypeFarmCreated is published when a new session starts
	EventTypeFarmCreated = "farm.created"
)

// AllFarmEventTypes lists every farm event, used by subscribers that want the full feed
var AllFarmEventTypes = []string{
	EventTypeFarmCreated,
	EventTypeFarmTicked,
	EventTypeCropPlanted,
	EventTypeCropRipened,
	EventTypeCropHarvested,
	EventTypeAnimalPurchased,
	EventTypeAnimalReady,
	EventTypeProductCollected,
	EventTypeGoodsSold,
	EventTypeUpgradePurchased,
}
