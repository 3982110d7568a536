package catalog

import (
	"fmt"

	"github.com/Dvegrod/little-toolset/internal/config"
	"github.com/Dvegrod/little-toolset/internal/utils"
)

// Load opens the catalog selected by the configuration.
func Load(cfg config.Config) (Catalog, error) {
	switch cfg.CatalogSource {
	case config.CatalogFile:
		if cfg.CatalogFile == "" {
			return nil, fmt.Errorf("catalog source %q needs catalog.file to be set", cfg.CatalogSource)
		}
		utils.PrintDebug("Using catalog file %s", utils.StylePath(cfg.CatalogFile))
		return LoadFileCatalog(cfg.CatalogFile)
	case config.CatalogSlurm, "":
		utils.PrintDebug("Querying SLURM with %s", utils.StyleCommand(cfg.Slurm.SinfoBin))
		return NewSlurmCatalog(cfg.Slurm)
	default:
		return nil, fmt.Errorf("unknown catalog source %q (expected %q or %q)",
			cfg.CatalogSource, config.CatalogSlurm, config.CatalogFile)
	}
}
