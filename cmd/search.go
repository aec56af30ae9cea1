package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogdex/blogdex/pkg/core"
	"github.com/blogdex/blogdex/pkg/search"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Define styles using lipgloss
var (
	searchHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214")).
				Margin(1, 0, 1, 0)

	postTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	postMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	noResultsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search indexed posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Free-text query over title and content",
			},
			&cli.IntFlag{
				Name:  "skip",
				Usage: "Number of results to skip",
			},
			&cli.IntFlag{
				Name:  "take",
				Usage: "Maximum number of results (defaults to default_limit from config)",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort field: id, title, comment_count, created_at",
			},
			&cli.BoolFlag{
				Name:  "asc",
				Usage: "Sort ascending instead of descending",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return searchPosts(ctx, c)
		},
	}
}

func searchPosts(ctx context.Context, c *cli.Command) error {
	cfg, store, err := loadConfigAndStore(c)
	if err != nil {
		return err
	}
	defer closeStore(store)

	field, err := core.ParseSortField(c.String("sort"))
	if err != nil {
		return err
	}

	take := c.Int("take")
	if take <= 0 {
		take = cfg.DefaultLimit
	}

	// Negative skip behaves like zero; clamping here too keeps the result
	// numbering aligned with what the query actually skipped.
	skip := c.Int("skip")
	if skip < 0 {
		skip = 0
	}

	service := search.NewService(store)
	posts, err := service.SearchPaged(ctx, c.String("query"), skip, take, field, !c.Bool("asc"))
	if err != nil {
		return err
	}

	caser := cases.Title(language.English)
	header := fmt.Sprintf("Posts By %s", caser.String(strings.ReplaceAll(string(field), "_", " ")))
	if q := strings.TrimSpace(c.String("query")); q != "" {
		header = fmt.Sprintf("Posts Matching %q By %s", q, caser.String(strings.ReplaceAll(string(field), "_", " ")))
	}
	fmt.Println(searchHeaderStyle.Render(header))

	if len(posts) == 0 {
		fmt.Println(noResultsStyle.Render("No results found"))
		return nil
	}

	for i, p := range posts {
		fmt.Printf("%d. %s\n", skip+i+1, postTitleStyle.Render(p.Title))
		meta := fmt.Sprintf("by %s, %d comments, %s", p.AuthorName, p.CommentCount, p.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("   %s\n", postMetaStyle.Render(meta))
		if p.Excerpt != "" {
			fmt.Printf("   %s\n", p.Excerpt)
		}
		if i < len(posts)-1 {
			fmt.Println()
		}
	}

	fmt.Printf("\nTotal: %d results\n", len(posts))
	return nil
}
