package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show dataset statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			return showStats(ctx, c)
		},
	}
}

// showStats displays dataset statistics
func showStats(ctx context.Context, c *cli.Command) error {
	_, store, err := loadConfigAndStore(c)
	if err != nil {
		return err
	}
	defer closeStore(store)

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("getting stats: %w", err)
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Println("Dataset statistics:")
	for _, key := range keys {
		fmt.Printf("  %s: %v\n", key, stats[key])
	}

	return nil
}
