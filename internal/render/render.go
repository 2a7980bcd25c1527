// Package render prints catalog resources as terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jfmyers9/cratedig/pkg/catalog"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// Renderer writes tables to an output stream. Cells wider than Width
// display columns are truncated.
type Renderer struct {
	out   io.Writer
	width int
}

// New returns a Renderer writing to out. A width of zero or less
// disables truncation.
func New(out io.Writer, width int) *Renderer {
	return &Renderer{out: out, width: width}
}

// Fit truncates text to width display columns, ending it with "..."
// when anything was cut. Wide runes such as CJK and emoji count as two
// columns.
func Fit(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= runewidth.StringWidth(ellipsis) {
		return runewidth.Truncate(ellipsis, width, "")
	}
	return runewidth.Truncate(text, width, ellipsis)
}

func (r *Renderer) fit(text string) string {
	return Fit(text, r.width)
}

func (r *Renderer) heading(title string) {
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(r.out)
	cyan.Fprintln(r.out, title)
	fmt.Fprintln(r.out)
}

func (r *Renderer) table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// Albums prints a table of albums.
func (r *Renderer) Albums(albums []catalog.SimpleAlbum) {
	r.heading("Albums")

	rows := make([]table.Row, 0, len(albums))
	for i, album := range albums {
		rows = append(rows, table.Row{
			i + 1,
			color.New(color.Bold).Sprint(r.fit(album.Name)),
			r.fit(artistNames(album.Artists)),
			album.AlbumType,
			album.ReleaseDate,
			album.TotalTracks,
			color.HiBlackString(album.ID),
		})
	}
	r.table(table.Row{"#", "Name", "Artists", "Type", "Released", "Tracks", "Album ID"}, rows)
}

// Album prints album details followed by its first page of tracks.
func (r *Renderer) Album(album *catalog.Album) {
	r.heading(album.Name)

	r.table(table.Row{"Field", "Value"}, []table.Row{
		{"Artists", r.fit(artistNames(album.Artists))},
		{"Label", r.fit(album.Label)},
		{"Released", album.ReleaseDate},
		{"Popularity", album.Popularity},
		{"Genres", r.fit(strings.Join(album.Genres, ", "))},
		{"ID", color.HiBlackString(album.ID)},
	})

	r.SimpleTracks(album.Tracks.Items)
	r.Footer(album.Tracks.Offset, len(album.Tracks.Items), album.Tracks.Total)
}

// Artists prints a table of artists.
func (r *Renderer) Artists(artists []catalog.Artist) {
	r.heading("Artists")

	rows := make([]table.Row, 0, len(artists))
	for i, artist := range artists {
		rows = append(rows, table.Row{
			i + 1,
			color.New(color.Bold).Sprint(r.fit(artist.Name)),
			r.fit(strings.Join(artist.Genres, ", ")),
			artist.Followers.Total,
			artist.Popularity,
			color.HiBlackString(artist.ID),
		})
	}
	r.table(table.Row{"#", "Name", "Genres", "Followers", "Popularity", "Artist ID"}, rows)
}

// Tracks prints a table of full tracks.
func (r *Renderer) Tracks(tracks []catalog.Track) {
	r.heading("Tracks")

	rows := make([]table.Row, 0, len(tracks))
	for i, track := range tracks {
		rows = append(rows, table.Row{
			i + 1,
			color.New(color.Bold).Sprint(r.fit(track.Name)),
			r.fit(artistNames(track.Artists)),
			r.fit(track.Album.Name),
			formatDuration(track.Duration()),
			color.HiBlackString(track.ID),
		})
	}
	r.table(table.Row{"#", "Name", "Artists", "Album", "Length", "Track ID"}, rows)
}

// SimpleTracks prints a table of tracks as listed inside an album.
func (r *Renderer) SimpleTracks(tracks []catalog.SimpleTrack) {
	rows := make([]table.Row, 0, len(tracks))
	for _, track := range tracks {
		rows = append(rows, table.Row{
			track.TrackNumber,
			color.New(color.Bold).Sprint(r.fit(track.Name)),
			r.fit(artistNames(track.Artists)),
			formatDuration(track.Duration()),
			color.HiBlackString(track.ID),
		})
	}
	r.table(table.Row{"#", "Name", "Artists", "Length", "Track ID"}, rows)
}

// Playlists prints a table of playlists.
func (r *Renderer) Playlists(playlists []catalog.SimplePlaylist) {
	r.heading("Playlists")

	rows := make([]table.Row, 0, len(playlists))
	for i, playlist := range playlists {
		rows = append(rows, table.Row{
			i + 1,
			color.New(color.Bold).Sprint(r.fit(playlist.Name)),
			playlist.TrackRef.Total,
			r.fit(playlist.Owner.DisplayName),
			color.HiBlackString(playlist.ID),
		})
	}
	r.table(table.Row{"#", "Name", "Tracks", "Owner", "Playlist ID"}, rows)
}

// Playlist prints playlist details followed by its first page of tracks.
func (r *Renderer) Playlist(playlist *catalog.Playlist) {
	r.heading(playlist.Name)

	r.table(table.Row{"Field", "Value"}, []table.Row{
		{"Owner", r.fit(playlist.Owner.DisplayName)},
		{"Description", r.fit(playlist.Description)},
		{"Followers", playlist.Followers.Total},
		{"Tracks", playlist.Tracks.Total},
		{"ID", color.HiBlackString(playlist.ID)},
	})

	r.PlaylistTracks(playlist.Tracks.Items)
	r.Footer(playlist.Tracks.Offset, len(playlist.Tracks.Items), playlist.Tracks.Total)
}

// PlaylistTracks prints the entries of a playlist.
func (r *Renderer) PlaylistTracks(items []catalog.PlaylistTrack) {
	rows := make([]table.Row, 0, len(items))
	for i, item := range items {
		rows = append(rows, table.Row{
			i + 1,
			color.New(color.Bold).Sprint(r.fit(item.Track.Name)),
			r.fit(artistNames(item.Track.Artists)),
			formatDate(item.AddedAt.Time),
			color.HiBlackString(item.Track.ID),
		})
	}
	r.table(table.Row{"#", "Name", "Artists", "Added", "Track ID"}, rows)
}

// Users prints a table of user profiles.
func (r *Renderer) Users(users []catalog.User) {
	r.heading("Users")

	rows := make([]table.Row, 0, len(users))
	for i, user := range users {
		rows = append(rows, table.Row{
			i + 1,
			color.New(color.Bold).Sprint(r.fit(user.DisplayName)),
			user.Followers.Total,
			color.HiBlackString(user.ID),
		})
	}
	r.table(table.Row{"#", "Name", "Followers", "User ID"}, rows)
}

// SavedAlbums prints albums from the user's library.
func (r *Renderer) SavedAlbums(saved []catalog.SavedAlbum) {
	r.heading("Saved Albums")

	rows := make([]table.Row, 0, len(saved))
	for i, item := range saved {
		rows = append(rows, table.Row{
			i + 1,
			color.New(color.Bold).Sprint(r.fit(item.Album.Name)),
			r.fit(artistNames(item.Album.Artists)),
			formatDate(item.AddedAt.Time),
			color.HiBlackString(item.Album.ID),
		})
	}
	r.table(table.Row{"#", "Name", "Artists", "Added", "Album ID"}, rows)
}

// SavedTracks prints tracks from the user's library.
func (r *Renderer) SavedTracks(saved []catalog.SavedTrack) {
	r.heading("Saved Tracks")

	rows := make([]table.Row, 0, len(saved))
	for i, item := range saved {
		rows = append(rows, table.Row{
			i + 1,
			color.New(color.Bold).Sprint(r.fit(item.Track.Name)),
			r.fit(artistNames(item.Track.Artists)),
			formatDate(item.AddedAt.Time),
			color.HiBlackString(item.Track.ID),
		})
	}
	r.table(table.Row{"#", "Name", "Artists", "Added", "Track ID"}, rows)
}

// Footer prints the position of a page within its result set.
func (r *Renderer) Footer(offset, count, total int) {
	green := color.New(color.FgGreen, color.Bold)

	fmt.Fprintln(r.out)
	if count == 0 {
		green.Fprintf(r.out, "No results (total: %d)\n", total)
		return
	}
	green.Fprintf(r.out, "Showing %d-%d of %d\n", offset+1, offset+count, total)
}

// artistNames joins artist names with commas.
func artistNames(artists []catalog.SimpleArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// formatDuration renders d as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
