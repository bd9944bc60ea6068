package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/Farmstead_Go/internal/catalog"
	"github.com/osse101/Farmstead_Go/internal/config"
)

// LoadCatalog builds the game catalog, applying the balancing file when one is configured
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"path", cfg.CatalogPath,
		"crops", len(cat.Crops()),
		"animals", len(cat.Animals()),
		"upgrades", len(cat.Upgrades()))
	return cat, nil
}
