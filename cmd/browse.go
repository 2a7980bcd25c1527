package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/cratedig/internal/browse"
	"github.com/jfmyers9/cratedig/pkg/catalog"
	"github.com/spf13/cobra"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse <album|artist|track|playlist> <keywords>...",
	Short: "Browse search results in a terminal UI",
	Long: `Search the catalog and page through the results in a terminal UI.

Keys:
- n: next page
- p: previous page
- q: quit`,
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{"album", "artist", "track", "playlist"},
	RunE:      runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	kind, keywords := args[0], strings.Join(args[1:], " ")
	po := s.pageOptions(0, 0, "")
	opts := catalog.SearchOptions{Limit: po.Limit, Country: po.Country}
	title := fmt.Sprintf("%s results for %q", kind, keywords)

	switch kind {
	case "album":
		return browseSearch[catalog.SimpleAlbum](ctx, s.client, title, keywords, opts, func(a catalog.SimpleAlbum) (string, string) {
			return a.Name, joinArtists(a.Artists) + " · " + a.ReleaseDate
		})
	case "artist":
		return browseSearch[catalog.Artist](ctx, s.client, title, keywords, opts, func(a catalog.Artist) (string, string) {
			return a.Name, fmt.Sprintf("%d followers · %s", a.Followers.Total, strings.Join(a.Genres, ", "))
		})
	case "track":
		return browseSearch[catalog.Track](ctx, s.client, title, keywords, opts, func(t catalog.Track) (string, string) {
			return t.Name, joinArtists(t.Artists) + " · " + t.Album.Name
		})
	case "playlist":
		return browseSearch[catalog.SimplePlaylist](ctx, s.client, title, keywords, opts, func(p catalog.SimplePlaylist) (string, string) {
			return p.Name, fmt.Sprintf("by %s · %d tracks", p.Owner.DisplayName, p.TrackRef.Total)
		})
	default:
		return fmt.Errorf("unknown search type %q (want album, artist, track or playlist)", kind)
	}
}

func browseSearch[T catalog.Resource](ctx context.Context, client *catalog.Client, title, keywords string, opts catalog.SearchOptions, format browse.Formatter[T]) error {
	page, err := catalog.Search[T](ctx, client, keywords, opts)
	if err != nil {
		return err
	}
	if page == nil {
		return errNotAuthenticated
	}

	return browse.New(title, page, format).Run(ctx)
}

func joinArtists(artists []catalog.SimpleArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}
