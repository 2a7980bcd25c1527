package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	libraryOffset int
	libraryLimit  int
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Show your saved albums and tracks",
	Long:  `Show the albums and tracks saved in the authenticated user's library.`,
}

var libraryAlbumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "List saved albums",
	Args:  cobra.NoArgs,
	RunE:  runLibraryAlbums,
}

var libraryTracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List saved tracks",
	Args:  cobra.NoArgs,
	RunE:  runLibraryTracks,
}

var libraryContainsCmd = &cobra.Command{
	Use:   "contains <albums|tracks> <id>...",
	Short: "Check whether albums or tracks are saved",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runLibraryContains,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryAlbumsCmd, libraryTracksCmd, libraryContainsCmd)

	libraryCmd.PersistentFlags().IntVar(&libraryOffset, "offset", 0, "Index of the first item")
	libraryCmd.PersistentFlags().IntVar(&libraryLimit, "limit", 0, "Items per page (default: page_size from config)")
}

func runLibraryAlbums(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	page, err := s.client.Library().SavedAlbums(cmd.Context(), s.pageOptions(libraryOffset, libraryLimit, ""))
	if err != nil {
		return fmt.Errorf("failed to list saved albums: %w", err)
	}
	if page == nil {
		return errNotAuthenticated
	}

	r := s.renderer(cmd.OutOrStdout())
	r.SavedAlbums(page.Items)
	r.Footer(page.Offset, len(page.Items), page.Total)
	return nil
}

func runLibraryTracks(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	page, err := s.client.Library().SavedTracks(cmd.Context(), s.pageOptions(libraryOffset, libraryLimit, ""))
	if err != nil {
		return fmt.Errorf("failed to list saved tracks: %w", err)
	}
	if page == nil {
		return errNotAuthenticated
	}

	r := s.renderer(cmd.OutOrStdout())
	r.SavedTracks(page.Items)
	r.Footer(page.Offset, len(page.Items), page.Total)
	return nil
}

func runLibraryContains(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ids := args[1:]
	var saved []bool
	switch args[0] {
	case "albums", "album":
		saved, err = s.client.Library().ContainsAlbums(cmd.Context(), ids)
	case "tracks", "track":
		saved, err = s.client.Library().ContainsTracks(cmd.Context(), ids)
	default:
		return fmt.Errorf("unknown library collection %q (want albums or tracks)", args[0])
	}
	if err != nil {
		return err
	}
	if saved == nil {
		return errNotAuthenticated
	}

	out := cmd.OutOrStdout()
	for i, id := range ids {
		mark := "✗"
		if i < len(saved) && saved[i] {
			mark = "✓"
		}
		fmt.Fprintf(out, "%s %s\n", mark, id)
	}
	return nil
}

