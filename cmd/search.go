package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/cratedig/internal/render"
	"github.com/jfmyers9/cratedig/pkg/catalog"
	"github.com/spf13/cobra"
)

var (
	searchOffset  int
	searchLimit   int
	searchCountry string
	searchPages   int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <album|artist|track|playlist> <keywords>...",
	Short: "Search the catalog",
	Long: `Search the catalog for one resource type and print the results.

Use --pages to keep following the next cursor and print several pages.
The page size and market default to page_size and market from the
config file.`,
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{"album", "artist", "track", "playlist"},
	RunE:      runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "Index of the first result")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Results per page (default: page_size from config)")
	searchCmd.Flags().StringVar(&searchCountry, "country", "", "Market code (default: market from config)")
	searchCmd.Flags().IntVar(&searchPages, "pages", 1, "Number of pages to print")
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	r := s.renderer(cmd.OutOrStdout())
	kind, keywords := args[0], strings.Join(args[1:], " ")

	po := s.pageOptions(searchOffset, searchLimit, searchCountry)
	opts := catalog.SearchOptions{Offset: po.Offset, Limit: po.Limit, Country: po.Country}

	logger.Debug().Str("type", kind).Str("keywords", keywords).Int("pages", searchPages).Msg("Searching")

	switch kind {
	case "album":
		return searchAndPrint(ctx, s.client, keywords, opts, r, r.Albums)
	case "artist":
		return searchAndPrint(ctx, s.client, keywords, opts, r, r.Artists)
	case "track":
		return searchAndPrint(ctx, s.client, keywords, opts, r, r.Tracks)
	case "playlist":
		return searchAndPrint(ctx, s.client, keywords, opts, r, r.Playlists)
	default:
		return fmt.Errorf("unknown search type %q (want album, artist, track or playlist)", kind)
	}
}

// searchAndPrint prints up to searchPages pages of a search.
func searchAndPrint[T catalog.Resource](ctx context.Context, client *catalog.Client, keywords string, opts catalog.SearchOptions, r *render.Renderer, show func([]T)) error {
	page, err := catalog.Search[T](ctx, client, keywords, opts)
	if err != nil {
		return err
	}
	if page == nil {
		return errNotAuthenticated
	}

	for i := 0; i < max(searchPages, 1); i++ {
		if i > 0 {
			if !page.HasNext() {
				break
			}
			if err := page.Next(ctx); err != nil {
				return fmt.Errorf("failed to fetch page %d: %w", i+1, err)
			}
		}
		show(page.Items)
		r.Footer(page.Offset, len(page.Items), page.Total)
	}
	return nil
}
