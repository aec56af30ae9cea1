package cmd

import (
	"context"
	"fmt"

	"github.com/blogdex/blogdex/pkg/config"
	"github.com/blogdex/blogdex/pkg/storage"
	"github.com/urfave/cli/v3"
)

// InitCommand creates the init command
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize configuration and database",
		Action: func(ctx context.Context, c *cli.Command) error {
			return initConfig(c.String("config"))
		},
	}
}

// initConfig writes the sample configuration and creates the database
// schema so the other commands have something to open.
func initConfig(configPath string) error {
	cfg, err := config.GetDefaultConfig()
	if err != nil {
		return fmt.Errorf("building default config: %w", err)
	}
	if err := cfg.SaveTemplateConfig(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	closeStore(store)

	fmt.Printf("Configuration initialized at %s\n", configPath)
	fmt.Printf("Database created at %s\n", cfg.DBPath)
	return nil
}
