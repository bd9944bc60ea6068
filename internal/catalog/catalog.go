// Package catalog holds the static crop, animal, product and upgrade definitions.
// A Catalog is immutable once built and safe for concurrent reads.
package catalog

import (
	"fmt"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// CropDef describes a plantable crop
type CropDef struct {
	ID            domain.CropID `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Cost          int           `json:"cost" yaml:"cost"`
	SellPrice     int           `json:"sell_price" yaml:"sell_price"`
	GrowthSeconds float64       `json:"growth_seconds" yaml:"growth_seconds"` // per growth stage
	Emoji         string        `json:"emoji,omitempty" yaml:"emoji"`
}

// AnimalDef describes an animal that can be stocked in a barn slot
type AnimalDef struct {
	ID                domain.AnimalID `json:"id" yaml:"id"`
	Name              string          `json:"name" yaml:"name"`
	Cost              int             `json:"cost" yaml:"cost"`
	Produces          domain.GoodID   `json:"produces" yaml:"produces"`
	Eats              domain.CropID   `json:"eats" yaml:"eats"`
	ProductionSeconds float64         `json:"production_seconds" yaml:"production_seconds"`
	Emoji             string          `json:"emoji,omitempty" yaml:"emoji"`
}

// ProductDef describes an animal product good
type ProductDef struct {
	ID        domain.GoodID `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	SellPrice int           `json:"sell_price" yaml:"sell_price"`
	Emoji     string        `json:"emoji,omitempty" yaml:"emoji"`
}

// UpgradeDef describes a purchasable upgrade
type UpgradeDef struct {
	Key         domain.UpgradeKey `json:"key" yaml:"key"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	BaseCost    int               `json:"base_cost" yaml:"base_cost"`
	MaxLevel    int               `json:"max_level" yaml:"max_level"`
	Grants      int               `json:"grants,omitempty" yaml:"grants"` // entities appended per level, capacity upgrades only
}

// CostFor returns the price of buying the given level (1-based).
// Capacity upgrades get more expensive with each level.
func (u UpgradeDef) CostFor(level int) int {
	if u.Key.IsCapacity() && level > 1 {
		return u.BaseCost * level
	}
	return u.BaseCost
}

// Catalog is the read-only lookup for every static definition
type Catalog struct {
	crops    map[domain.CropID]CropDef
	animals  map[domain.AnimalID]AnimalDef
	products map[domain.GoodID]ProductDef
	upgrades map[domain.UpgradeKey]UpgradeDef
}

func newCatalog(crops []CropDef, animals []AnimalDef, products []ProductDef, upgrades []UpgradeDef) *Catalog {
	c := &Catalog{
		crops:    make(map[domain.CropID]CropDef, len(crops)),
		animals:  make(map[domain.AnimalID]AnimalDef, len(animals)),
		products: make(map[domain.GoodID]ProductDef, len(products)),
		upgrades: make(map[domain.UpgradeKey]UpgradeDef, len(upgrades)),
	}
	for _, d := range crops {
		c.crops[d.ID] = d
	}
	for _, d := range animals {
		c.animals[d.ID] = d
	}
	for _, d := range products {
		c.products[d.ID] = d
	}
	for _, d := range upgrades {
		c.upgrades[d.Key] = d
	}
	return c
}

// Default returns the built-in catalog
func Default() *Catalog {
	return newCatalog(defaultCrops(), defaultAnimals(), defaultProducts(), defaultUpgrades())
}

// CropDef looks up a crop definition
func (c *Catalog) CropDef(id domain.CropID) (CropDef, error) {
	d, ok := c.crops[id]
	if !ok {
		return CropDef{}, fmt.Errorf("%w: crop %q", domain.ErrNotFound, id)
	}
	return d, nil
}

// AnimalDef looks up an animal definition
func (c *Catalog) AnimalDef(id domain.AnimalID) (AnimalDef, error) {
	d, ok := c.animals[id]
	if !ok {
		return AnimalDef{}, fmt.Errorf("%w: animal %q", domain.ErrNotFound, id)
	}
	return d, nil
}

// ProductDef looks up an animal product definition
func (c *Catalog) ProductDef(id domain.GoodID) (ProductDef, error) {
	d, ok := c.products[id]
	if !ok {
		return ProductDef{}, fmt.Errorf("%w: product %q", domain.ErrNotFound, id)
	}
	return d, nil
}

// Upgrade looks up an upgrade definition
func (c *Catalog) Upgrade(key domain.UpgradeKey) (UpgradeDef, error) {
	d, ok := c.upgrades[key]
	if !ok {
		return UpgradeDef{}, fmt.Errorf("%w: upgrade %q", domain.ErrNotFound, key)
	}
	return d, nil
}

// SellPrice returns the per-unit sale price of any good
func (c *Catalog) SellPrice(good domain.GoodID) (int, error) {
	d, err := c.Good(good)
	if err != nil {
		return 0, err
	}
	return d.SellPrice, nil
}

// Good kinds
const (
	GoodKindCrop    = "crop"
	GoodKindProduct = "product"
)

// GoodDef is the sellable view of an inventory good
type GoodDef struct {
	ID        domain.GoodID `json:"id"`
	Name      string        `json:"name"`
	Kind      string        `json:"kind"`
	SellPrice int           `json:"sell_price"`
}

// Good looks up any inventory good, crop or product
func (c *Catalog) Good(id domain.GoodID) (GoodDef, error) {
	if crop, ok := c.crops[domain.CropID(id)]; ok {
		return GoodDef{ID: id, Name: crop.Name, Kind: GoodKindCrop, SellPrice: crop.SellPrice}, nil
	}
	if product, ok := c.products[id]; ok {
		return GoodDef{ID: id, Name: product.Name, Kind: GoodKindProduct, SellPrice: product.SellPrice}, nil
	}
	return GoodDef{}, fmt.Errorf("%w: good %q", domain.ErrNotFound, id)
}

// Goods returns every sellable good, crops first
func (c *Catalog) Goods() []GoodDef {
	out := make([]GoodDef, 0, len(c.crops)+len(c.products))
	for _, crop := range c.Crops() {
		out = append(out, GoodDef{ID: crop.ID.Good(), Name: crop.Name, Kind: GoodKindCrop, SellPrice: crop.SellPrice})
	}
	for _, product := range c.Products() {
		out = append(out, GoodDef{ID: product.ID, Name: product.Name, Kind: GoodKindProduct, SellPrice: product.SellPrice})
	}
	return out
}

// Crops returns every crop in catalog order
func (c *Catalog) Crops() []CropDef {
	out := make([]CropDef, 0, len(domain.AllCrops))
	for _, id := range domain.AllCrops {
		if d, ok := c.crops[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Animals returns every animal in catalog order
func (c *Catalog) Animals() []AnimalDef {
	out := make([]AnimalDef, 0, len(domain.AllAnimals))
	for _, id := range domain.AllAnimals {
		if d, ok := c.animals[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Products returns every animal product in catalog order
func (c *Catalog) Products() []ProductDef {
	out := make([]ProductDef, 0, len(domain.AllProducts))
	for _, id := range domain.AllProducts {
		if d, ok := c.products[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Upgrades returns every upgrade in catalog order
func (c *Catalog) Upgrades() []UpgradeDef {
	out := make([]UpgradeDef, 0, len(domain.AllUpgrades))
	for _, key := range domain.AllUpgrades {
		if d, ok := c.upgrades[key]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Listing is the serializable view of the whole catalog
type Listing struct {
	Crops    []CropDef    `json:"crops"`
	Animals  []AnimalDef  `json:"animals"`
	Products []ProductDef `json:"products"`
	Upgrades []UpgradeDef `json:"upgrades"`
	Goods    []GoodDef    `json:"goods"`
}

// Listing returns every definition for clients
func (c *Catalog) Listing() Listing {
	return Listing{
		Crops:    c.Crops(),
		Animals:  c.Animals(),
		Products: c.Products(),
		Upgrades: c.Upgrades(),
		Goods:    c.Goods(),
	}
}
