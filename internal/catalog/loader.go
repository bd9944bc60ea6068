package catalog

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// balanceFile is the on-disk shape of a balancing override.
// Nil fields keep the built-in value.
type balanceFile struct {
	Crops []struct {
		ID            domain.CropID `yaml:"id"`
		Name          *string       `yaml:"name"`
		Cost          *int          `yaml:"cost"`
		SellPrice     *int          `yaml:"sell_price"`
		GrowthSeconds *float64      `yaml:"growth_seconds"`
		Emoji         *string       `yaml:"emoji"`
	} `yaml:"crops"`
	Animals []struct {
		ID                domain.AnimalID `yaml:"id"`
		Name              *string         `yaml:"name"`
		Cost              *int            `yaml:"cost"`
		Eats              *domain.CropID  `yaml:"eats"`
		ProductionSeconds *float64        `yaml:"production_seconds"`
	} `yaml:"animals"`
	Products []struct {
		ID        domain.GoodID `yaml:"id"`
		SellPrice *int          `yaml:"sell_price"`
	} `yaml:"products"`
	Upgrades []struct {
		Key      domain.UpgradeKey `yaml:"key"`
		BaseCost *int              `yaml:"base_cost"`
		MaxLevel *int              `yaml:"max_level"`
		Grants   *int              `yaml:"grants"`
	} `yaml:"upgrades"`
}

// Load returns the built-in catalog with the balancing file at path applied.
// An empty path returns the defaults unchanged.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse applies a YAML balancing document on top of the built-in catalog
func Parse(data []byte) (*Catalog, error) {
	var file balanceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := Default()
	title := cases.Title(language.English)

	for _, o := range file.Crops {
		d, ok := c.crops[o.ID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown crop %q in catalog file", domain.ErrInvalidInput, o.ID)
		}
		if o.Name != nil {
			d.Name = displayName(title, *o.Name, string(o.ID))
		}
		setInt(&d.Cost, o.Cost)
		setInt(&d.SellPrice, o.SellPrice)
		setFloat(&d.GrowthSeconds, o.GrowthSeconds)
		setString(&d.Emoji, o.Emoji)
		c.crops[o.ID] = d
	}

	for _, o := range file.Animals {
		d, ok := c.animals[o.ID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown animal %q in catalog file", domain.ErrInvalidInput, o.ID)
		}
		if o.Name != nil {
			d.Name = displayName(title, *o.Name, string(o.ID))
		}
		setInt(&d.Cost, o.Cost)
		setFloat(&d.ProductionSeconds, o.ProductionSeconds)
		if o.Eats != nil {
			d.Eats = *o.Eats
		}
		c.animals[o.ID] = d
	}

	for _, o := range file.Products {
		d, ok := c.products[o.ID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown product %q in catalog file", domain.ErrInvalidInput, o.ID)
		}
		setInt(&d.SellPrice, o.SellPrice)
		c.products[o.ID] = d
	}

	for _, o := range file.Upgrades {
		d, ok := c.upgrades[o.Key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown upgrade %q in catalog file", domain.ErrInvalidInput, o.Key)
		}
		setInt(&d.BaseCost, o.BaseCost)
		setInt(&d.MaxLevel, o.MaxLevel)
		setInt(&d.Grants, o.Grants)
		c.upgrades[o.Key] = d
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every definition against the catalog invariants
func (c *Catalog) Validate() error {
	for _, d := range c.crops {
		if d.Cost < 0 {
			return fmt.Errorf("%w: crop %s has negative cost", domain.ErrInvalidInput, d.ID)
		}
		if d.SellPrice <= 0 {
			return fmt.Errorf("%w: crop %s must have a positive sell price", domain.ErrInvalidInput, d.ID)
		}
		if d.GrowthSeconds <= 0 {
			return fmt.Errorf("%w: crop %s must have a positive growth duration", domain.ErrInvalidInput, d.ID)
		}
	}
	for _, d := range c.animals {
		if d.Cost < 0 {
			return fmt.Errorf("%w: animal %s has negative cost", domain.ErrInvalidInput, d.ID)
		}
		if _, ok := c.products[d.Produces]; !ok {
			return fmt.Errorf("%w: animal %s produces unknown good %q", domain.ErrInvalidInput, d.ID, d.Produces)
		}
		if _, ok := c.crops[d.Eats]; !ok {
			return fmt.Errorf("%w: animal %s eats %q which is not a crop", domain.ErrInvalidInput, d.ID, d.Eats)
		}
		if d.ProductionSeconds <= 0 {
			return fmt.Errorf("%w: animal %s must have a positive production duration", domain.ErrInvalidInput, d.ID)
		}
	}
	for _, d := range c.products {
		if d.SellPrice <= 0 {
			return fmt.Errorf("%w: product %s must have a positive sell price", domain.ErrInvalidInput, d.ID)
		}
	}
	for _, d := range c.upgrades {
		if d.BaseCost < 0 || d.MaxLevel < 1 {
			return fmt.Errorf("%w: upgrade %s has invalid cost or max level", domain.ErrInvalidInput, d.Key)
		}
		if d.Key.IsCapacity() && d.Grants < 1 {
			return fmt.Errorf("%w: capacity upgrade %s must grant at least one entity", domain.ErrInvalidInput, d.Key)
		}
		// Flag upgrades are owned or not
		if !d.Key.IsCapacity() && d.MaxLevel != 1 {
			return fmt.Errorf("%w: upgrade %s is a one-time purchase, max level must be 1", domain.ErrInvalidInput, d.Key)
		}
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// displayName title-cases a name from the balancing file. A blank name is
// rebuilt from the id, so "golden_corn" becomes "Golden Corn".
func displayName(title cases.Caser, name, id string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.ReplaceAll(id, "_", " ")
	}
	return title.String(name)
}
