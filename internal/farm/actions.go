package farm

import (
	"fmt"
	"sort"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// Every action validates all of its preconditions before touching the state,
// so a failed action leaves the state exactly as it was.

// Till prepares untilled or depleted soil for planting
func (e *Engine) Till(s *domain.FarmState, plotIndex int) (*ActionResult, error) {
	p, err := plotAt(s, plotIndex)
	if err != nil {
		return nil, err
	}
	if p.Soil != domain.SoilUntilled && p.Soil != domain.SoilDepleted {
		return nil, fmt.Errorf("%w: "+ErrMsgCannotTillFmt, domain.ErrInvalidPlotState, plotIndex)
	}

	p.Soil = domain.SoilTilled
	return plotResult(ActionTill, *p), nil
}

// Water wets a tilled, dry plot
func (e *Engine) Water(s *domain.FarmState, plotIndex int) (*ActionResult, error) {
	p, err := plotAt(s, plotIndex)
	if err != nil {
		return nil, err
	}
	if p.Soil != domain.SoilTilled || p.Moisture != domain.MoistureDry {
		return nil, fmt.Errorf("%w: "+ErrMsgCannotWaterFmt, domain.ErrInvalidPlotState, plotIndex, p.Soil, p.Moisture)
	}

	p.Moisture = domain.MoistureWet
	return plotResult(ActionWater, *p), nil
}

// Plant buys a seed and puts it in a tilled, empty plot
func (e *Engine) Plant(s *domain.FarmState, plotIndex int, crop domain.CropID) (*ActionResult, error) {
	def, err := e.catalog.CropDef(crop)
	if err != nil {
		return nil, err
	}
	p, err := plotAt(s, plotIndex)
	if err != nil {
		return nil, err
	}
	if p.Soil != domain.SoilTilled || !p.IsEmpty() {
		return nil, fmt.Errorf("%w: "+ErrMsgCannotPlantFmt, domain.ErrInvalidPlotState, plotIndex, p.Soil, p.Crop)
	}
	if s.Treasury < def.Cost {
		return nil, fmt.Errorf("%w: "+ErrMsgCostFmt, domain.ErrInsufficientFunds, def.Name, def.Cost, s.Treasury)
	}

	s.Treasury -= def.Cost
	p.Crop = crop
	p.Stage = domain.StageSeed
	p.Progress = 0

	res := plotResult(ActionPlant, *p)
	res.CoinsDelta = -def.Cost
	return res, nil
}

// Harvest collects a ripe crop and leaves the plot depleted and dry
func (e *Engine) Harvest(s *domain.FarmState, plotIndex int) (*ActionResult, error) {
	p, err := plotAt(s, plotIndex)
	if err != nil {
		return nil, err
	}
	if !p.IsRipe() {
		return nil, fmt.Errorf("%w: "+ErrMsgCropNotRipeFmt, domain.ErrNotReady, plotIndex, p.Stage)
	}

	yield := BaseHarvestYield
	if s.Upgrades.Fertilizer {
		yield = FertilizedYield
	}
	good := p.Crop.Good()
	ensureInventory(s)
	s.Inventory.Add(good, yield)

	p.Crop = ""
	p.Stage = domain.StageSeed
	p.Progress = 0
	p.Soil = domain.SoilDepleted
	p.Moisture = domain.MoistureDry

	res := plotResult(ActionHarvest, *p)
	res.Goods = map[domain.GoodID]int{good: yield}
	return res, nil
}

// BuyAnimal stocks an empty barn slot. New animals arrive hungry.
func (e *Engine) BuyAnimal(s *domain.FarmState, slotIndex int, animal domain.AnimalID) (*ActionResult, error) {
	def, err := e.catalog.AnimalDef(animal)
	if err != nil {
		return nil, err
	}
	slot, err := slotAt(s, slotIndex)
	if err != nil {
		return nil, err
	}
	if !slot.IsEmpty() {
		return nil, fmt.Errorf("%w: "+ErrMsgSlotOccupiedFmt, domain.ErrInvalidPlotState, slotIndex, slot.Animal)
	}
	if s.Treasury < def.Cost {
		return nil, fmt.Errorf("%w: "+ErrMsgCostFmt, domain.ErrInsufficientFunds, def.Name, def.Cost, s.Treasury)
	}

	s.Treasury -= def.Cost
	slot.Animal = animal
	slot.Hungry = true
	slot.Ready = false
	slot.Progress = 0

	res := slotResult(ActionBuyAnimal, *slot)
	res.CoinsDelta = -def.Cost
	return res, nil
}

// Feed gives a hungry animal one unit of its feed crop
func (e *Engine) Feed(s *domain.FarmState, slotIndex int) (*ActionResult, error) {
	slot, err := slotAt(s, slotIndex)
	if err != nil {
		return nil, err
	}
	if slot.IsEmpty() {
		return nil, fmt.Errorf("%w: "+ErrMsgSlotEmptyFmt, domain.ErrInvalidPlotState, slotIndex)
	}
	def, err := e.catalog.AnimalDef(slot.Animal)
	if err != nil {
		return nil, err
	}
	if !slot.Hungry {
		return nil, fmt.Errorf("%w: "+ErrMsgNotHungryFmt, domain.ErrInvalidPlotState, def.Name, slotIndex)
	}
	feed := def.Eats.Good()
	if s.Inventory.Count(feed) < 1 {
		return nil, fmt.Errorf("%w: "+ErrMsgNoFeedFmt, domain.ErrMissingFeed, def.Name, feed)
	}

	s.Inventory.Remove(feed, 1)
	slot.Hungry = false

	res := slotResult(ActionFeed, *slot)
	res.Goods = map[domain.GoodID]int{feed: -1}
	return res, nil
}

// Collect takes a finished product from a barn slot
func (e *Engine) Collect(s *domain.FarmState, slotIndex int) (*ActionResult, error) {
	slot, err := slotAt(s, slotIndex)
	if err != nil {
		return nil, err
	}
	if !slot.Ready || slot.IsEmpty() {
		return nil, fmt.Errorf("%w: "+ErrMsgNothingToCollectFmt, domain.ErrNotReady, slotIndex)
	}
	def, err := e.catalog.AnimalDef(slot.Animal)
	if err != nil {
		return nil, err
	}

	ensureInventory(s)
	s.Inventory.Add(def.Produces, 1)
	slot.Ready = false

	res := slotResult(ActionCollect, *slot)
	res.Goods = map[domain.GoodID]int{def.Produces: 1}
	return res, nil
}

// Sell converts goods into coins at catalog price
func (e *Engine) Sell(s *domain.FarmState, good domain.GoodID, quantity int) (*ActionResult, error) {
	if quantity <= 0 || quantity > domain.MaxSellQuantity {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantity)
	}
	price, err := e.catalog.SellPrice(good)
	if err != nil {
		return nil, err
	}
	held := s.Inventory.Count(good)
	if held < quantity {
		return nil, fmt.Errorf("%w: "+ErrMsgSellQuantityFmt, domain.ErrInvalidQuantity, quantity, good, held)
	}

	earned := quantity * price
	s.Inventory.Remove(good, quantity)
	s.Treasury += earned

	return &ActionResult{
		Action:     ActionSell,
		CoinsDelta: earned,
		Goods:      map[domain.GoodID]int{good: -quantity},
	}, nil
}

// FeedReserve returns how many units of each crop smart sell keeps back:
// twice the number of occupied barn slots whose animal eats that crop.
func (e *Engine) FeedReserve(s *domain.FarmState) map[domain.GoodID]int {
	reserve := make(map[domain.GoodID]int)
	for _, slot := range s.Barn {
		if slot.IsEmpty() {
			continue
		}
		def, err := e.catalog.AnimalDef(slot.Animal)
		if err != nil {
			continue
		}
		reserve[def.Eats.Good()] += FeedReservePerSlot
	}
	return reserve
}

// SmartSellSurplus sells every crop above its feed reserve and every animal product.
// Selling nothing is not an error.
func (e *Engine) SmartSellSurplus(s *domain.FarmState) (*ActionResult, error) {
	reserve := e.FeedReserve(s)

	goods := make([]domain.GoodID, 0, len(s.Inventory))
	for good := range s.Inventory {
		goods = append(goods, good)
	}
	sort.Slice(goods, func(i, j int) bool { return goods[i] < goods[j] })

	type sale struct {
		good  domain.GoodID
		qty   int
		price int
	}
	var sales []sale
	for _, good := range goods {
		price, err := e.catalog.SellPrice(good)
		if err != nil {
			continue
		}
		qty := s.Inventory.Count(good)
		if good.IsCrop() {
			qty -= reserve[good]
		}
		if qty > 0 {
			sales = append(sales, sale{good: good, qty: qty, price: price})
		}
	}

	res := &ActionResult{Action: ActionSmartSell, Goods: map[domain.GoodID]int{}}
	for _, sl := range sales {
		s.Inventory.Remove(sl.good, sl.qty)
		earned := sl.qty * sl.price
		s.Treasury += earned
		res.CoinsDelta += earned
		res.Goods[sl.good] = -sl.qty
	}
	return res, nil
}

// BuyUpgrade purchases the next level of an upgrade.
// Capacity upgrades append new plots or barn slots in their starting state.
func (e *Engine) BuyUpgrade(s *domain.FarmState, key domain.UpgradeKey) (*ActionResult, error) {
	def, err := e.catalog.Upgrade(key)
	if err != nil {
		return nil, err
	}
	level := s.Upgrades.Level(key)
	if level >= def.MaxLevel {
		sentinel := domain.ErrAlreadyOwned
		if key.IsCapacity() {
			sentinel = domain.ErrCapacityMaxed
		}
		return nil, fmt.Errorf("%w: "+ErrMsgUpgradeMaxedFmt, sentinel, def.Name, level, def.MaxLevel)
	}
	cost := def.CostFor(level + 1)
	if s.Treasury < cost {
		return nil, fmt.Errorf("%w: "+ErrMsgCostFmt, domain.ErrInsufficientFunds, def.Name, cost, s.Treasury)
	}

	s.Treasury -= cost
	s.Upgrades.Raise(key)

	res := &ActionResult{
		Action:     ActionBuyUpgrade,
		CoinsDelta: -cost,
		Upgrade:    key,
		Level:      s.Upgrades.Level(key),
	}

	switch key {
	case domain.UpgradeFieldExpansion:
		for i := 0; i < def.Grants; i++ {
			p := domain.NewPlot(len(s.Plots))
			s.Plots = append(s.Plots, p)
			res.NewPlots = append(res.NewPlots, p)
		}
	case domain.UpgradeBarnExpansion:
		for i := 0; i < def.Grants; i++ {
			slot := domain.NewBarnSlot(len(s.Barn))
			s.Barn = append(s.Barn, slot)
			res.NewSlots = append(res.NewSlots, slot)
		}
	}
	return res, nil
}

func plotAt(s *domain.FarmState, index int) (*domain.Plot, error) {
	p := s.Plot(index)
	if p == nil {
		return nil, fmt.Errorf("%w: "+ErrMsgPlotNotFoundFmt, domain.ErrNotFound, index)
	}
	return p, nil
}

func slotAt(s *domain.FarmState, index int) (*domain.BarnSlot, error) {
	slot := s.Slot(index)
	if slot == nil {
		return nil, fmt.Errorf("%w: "+ErrMsgSlotNotFoundFmt, domain.ErrNotFound, index)
	}
	return slot, nil
}

func ensureInventory(s *domain.FarmState) {
	if s.Inventory == nil {
		s.Inventory = domain.Inventory{}
	}
}
