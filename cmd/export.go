package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jfmyers9/cratedig/internal/archive"
	"github.com/spf13/cobra"
)

var exportDB string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export track lists to a SQLite archive",
	Long: `Export the full track list of a playlist or of your saved tracks to a
local SQLite archive. Every run creates a new export; nothing is
overwritten.

The archive defaults to ~/.local/share/cratedig/archive.db.`,
}

var exportPlaylistCmd = &cobra.Command{
	Use:   "playlist <id>",
	Short: "Export every track of a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportPlaylist,
}

var exportLibraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Export every saved track",
	Args:  cobra.NoArgs,
	RunE:  runExportLibrary,
}

var exportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List previous exports",
	Args:  cobra.NoArgs,
	RunE:  runExportList,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportPlaylistCmd, exportLibraryCmd, exportListCmd)

	exportCmd.PersistentFlags().StringVar(&exportDB, "db", "", "Archive database path (default: ~/.local/share/cratedig/archive.db)")
}

// openArchive opens the archive named by --db, creating its directory.
func openArchive() (*archive.Store, error) {
	path := exportDB
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".local", "share", "cratedig", "archive.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Opening archive")

	store, err := archive.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return store, nil
}

func runExportPlaylist(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	id := args[0]

	page, err := s.client.Playlists().Tracks(ctx, id, s.pageOptions(0, 50, ""))
	if err != nil {
		return fmt.Errorf("failed to list playlist tracks: %w", err)
	}
	if page == nil {
		return errNotAuthenticated
	}

	store, err := openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	exportID, written, err := archive.ExportPages(ctx, store, "playlist", id, page, archive.FromPlaylistTrack)
	if err != nil {
		return fmt.Errorf("export %d failed after %d tracks: %w", exportID, written, err)
	}

	logger.Info().Int64("export_id", exportID).Int("tracks", written).Str("playlist", id).Msg("Exported playlist")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d tracks from playlist %s (export %d)\n", written, id, exportID)
	return nil
}

func runExportLibrary(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	page, err := s.client.Library().SavedTracks(ctx, s.pageOptions(0, 50, ""))
	if err != nil {
		return fmt.Errorf("failed to list saved tracks: %w", err)
	}
	if page == nil {
		return errNotAuthenticated
	}

	store, err := openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	me, err := s.client.Users().Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	owner := "me"
	if me != nil && me.ID != "" {
		owner = me.ID
	}

	exportID, written, err := archive.ExportPages(ctx, store, "library", owner, page, archive.FromSavedTrack)
	if err != nil {
		return fmt.Errorf("export %d failed after %d tracks: %w", exportID, written, err)
	}

	logger.Info().Int64("export_id", exportID).Int("tracks", written).Msg("Exported library")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d saved tracks (export %d)\n", written, exportID)
	return nil
}

func runExportList(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	exports, err := store.Exports(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Export", "Source", "Source ID", "Tracks", "Created"})
	for _, e := range exports {
		t.AppendRow(table.Row{
			e.ID,
			e.Source,
			color.HiBlackString(e.SourceID),
			e.TrackCount,
			e.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintf(out, "\nTotal exports: %d\n", len(exports))
	return nil
}

