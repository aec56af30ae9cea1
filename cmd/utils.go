package cmd

import (
	"fmt"

	"github.com/blogdex/blogdex/pkg/config"
	"github.com/blogdex/blogdex/pkg/log"
	"github.com/blogdex/blogdex/pkg/storage"
	"github.com/urfave/cli/v3"
)

// loadConfigAndStore loads the configuration, applies the debug flags and
// opens the dataset store. Callers own the returned store and must close
// it.
func loadConfigAndStore(c *cli.Command) (*config.Config, *storage.Store, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.Debug || c.Bool("debug") {
		log.SetGlobalDebug(true)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	return cfg, store, nil
}

func closeStore(store *storage.Store) {
	if err := store.Close(); err != nil {
		fmt.Printf("Warning: failed to close store: %v\n", err)
	}
}
