package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blogdex/blogdex/pkg/storage"
	"github.com/klauspost/compress/zstd"
	"github.com/urfave/cli/v3"
)

// LoadCommand creates the load command
func LoadCommand() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "Load a blog dataset dump (.json or .json.zst) into the database",
		ArgsUsage: "<dump-file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one dump file argument")
			}
			return loadDataset(ctx, c, c.Args().First())
		},
	}
}

func loadDataset(ctx context.Context, c *cli.Command, path string) error {
	_, store, err := loadConfigAndStore(c)
	if err != nil {
		return err
	}
	defer closeStore(store)

	dataset, err := readDataset(path)
	if err != nil {
		return err
	}

	if err := store.LoadDataset(ctx, dataset); err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	fmt.Printf("Loaded %d users, %d posts, %d comments from %s\n",
		len(dataset.Users), len(dataset.Posts), len(dataset.Comments), path)
	return nil
}

// readDataset reads a dump file, transparently decompressing zstd archives.
func readDataset(path string) (*storage.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close dump file: %v\n", err)
		}
	}()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening zstd reader: %w", err)
		}
		defer zr.Close()
		reader = zr
	}

	var dataset storage.Dataset
	if err := json.NewDecoder(reader).Decode(&dataset); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	return &dataset, nil
}
