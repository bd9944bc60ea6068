package farm

import "time"

// Clock constants
const (
	DefaultTickInterval = 250 * time.Millisecond
	FeedReservePerSlot  = 2 // units of feed kept back per animal by smart sell
	BaseHarvestYield    = 1
	FertilizedYield     = 2

	// progressEpsilon absorbs float drift so a stage lasts exactly
	// duration*ticksPerSecond/multiplier ticks
	progressEpsilon = 1e-9
)

// Action names, used in results, events and metrics labels
type Action string

const (
	ActionTill       Action = "till"
	ActionWater      Action = "water"
	ActionPlant      Action = "plant"
	ActionHarvest    Action = "harvest"
	ActionBuyAnimal  Action = "buy_animal"
	ActionFeed       Action = "feed"
	ActionCollect    Action = "collect"
	ActionSell       Action = "sell"
	ActionSmartSell  Action = "smart_sell"
	ActionBuyUpgrade Action = "buy_upgrade"
)

// Formatted error details
const (
	ErrMsgPlotNotFoundFmt     = "plot %d"
	ErrMsgSlotNotFoundFmt     = "barn slot %d"
	ErrMsgCannotTillFmt       = "plot %d is already tilled"
	ErrMsgCannotWaterFmt      = "plot %d must be tilled and dry (soil=%s, moisture=%s)"
	ErrMsgCannotPlantFmt      = "plot %d must be tilled and empty (soil=%s, crop=%q)"
	ErrMsgCostFmt             = "%s costs %d, treasury has %d"
	ErrMsgCropNotRipeFmt      = "plot %d is at stage %d"
	ErrMsgSlotOccupiedFmt     = "barn slot %d already holds a %s"
	ErrMsgSlotEmptyFmt        = "barn slot %d is empty"
	ErrMsgNotHungryFmt        = "the %s in barn slot %d is not hungry"
	ErrMsgNoFeedFmt           = "the %s needs %s"
	ErrMsgNothingToCollectFmt = "barn slot %d has nothing to collect"
	ErrMsgSellQuantityFmt     = "cannot sell %d %s, have %d"
	ErrMsgUpgradeMaxedFmt     = "%s is at level %d of %d"
)
