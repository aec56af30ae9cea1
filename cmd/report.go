package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/blogdex/blogdex/pkg/search"
	"github.com/urfave/cli/v3"
)

// ReportCommand creates the report command
func ReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Stream a per-post aggregate report to stdout",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-items",
				Usage: "Maximum number of report lines",
				Value: 100,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runReport(ctx, c, c.Int("max-items"))
		},
	}
}

func runReport(ctx context.Context, c *cli.Command, maxItems int) error {
	_, store, err := loadConfigAndStore(c)
	if err != nil {
		return err
	}
	defer closeStore(store)

	// Ctrl+C cancels mid-stream; the terminal marker is still emitted.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := search.NewService(store)
	sink := search.NewWriterSink(os.Stdout)
	return service.GenerateReport(ctx, maxItems, sink)
}
