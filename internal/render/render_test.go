package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/jfmyers9/cratedig/pkg/catalog"
	"github.com/mattn/go-runewidth"
)

func newTestRenderer(t *testing.T, width int) (*Renderer, *bytes.Buffer) {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	return New(&buf, width), &buf
}

func TestFit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no truncation when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "no truncation when width is negative",
			input:    "Hello",
			width:    -1,
			expected: "Hello",
		},
		{
			name:     "short text unchanged",
			input:    "Hi",
			width:    10,
			expected: "Hi",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "This is a very long string that needs truncation",
			width:    20,
			expected: "This is a very lo...",
		},
		{
			name:     "truncate emoji text",
			input:    "🎵 This is a very long song title",
			width:    15,
			expected: "🎵 This is a...",
		},
		{
			name:     "truncate unicode text",
			input:    "日本語とても長いテキスト",
			width:    10,
			expected: "日本語...",
		},
		{
			name:     "width smaller than ellipsis",
			input:    "Hello",
			width:    2,
			expected: "..",
		},
		{
			name:     "empty string",
			input:    "",
			width:    5,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Fit(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("Fit(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
			}
			if tt.width > 0 {
				if w := runewidth.StringWidth(result); w > tt.width {
					t.Errorf("result width %d exceeds %d", w, tt.width)
				}
			}
		})
	}
}

func TestRenderer_Albums(t *testing.T) {
	r, buf := newTestRenderer(t, 12)

	r.Albums([]catalog.SimpleAlbum{
		{
			ID:          "4aawyAB9vmqN3uQ7FjRGTy",
			Name:        "Global Warming (Deluxe Version)",
			AlbumType:   "album",
			ReleaseDate: "2012-11-16",
			TotalTracks: 18,
			Artists:     []catalog.SimpleArtist{{Name: "Pitbull"}},
		},
	})

	out := buf.String()
	for _, want := range []string{"Albums", "Global Wa...", "Pitbull", "2012-11-16", "4aawyAB9vmqN3uQ7FjRGTy", "ALBUM ID"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Deluxe") {
		t.Errorf("expected album name to be truncated, got:\n%s", out)
	}
}

func TestRenderer_Tracks(t *testing.T) {
	r, buf := newTestRenderer(t, 0)

	track := catalog.Track{
		SimpleTrack: catalog.SimpleTrack{
			ID:         "t1",
			Name:       "Don't Stop the Party",
			DurationMS: 206000,
			Artists:    []catalog.SimpleArtist{{Name: "Pitbull"}, {Name: "TJR"}},
		},
		Album: catalog.SimpleAlbum{Name: "Global Warming"},
	}
	r.Tracks([]catalog.Track{track})

	out := buf.String()
	for _, want := range []string{"Don't Stop the Party", "Pitbull, TJR", "Global Warming", "3:26"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderer_Playlist(t *testing.T) {
	r, buf := newTestRenderer(t, 40)

	playlist := &catalog.Playlist{
		SimplePlaylist: catalog.SimplePlaylist{
			ID:    "p1",
			Name:  "Road Trip",
			Owner: catalog.User{DisplayName: "Jim"},
		},
		Tracks: catalog.Page[catalog.PlaylistTrack]{
			Items: []catalog.PlaylistTrack{{
				AddedAt: catalog.Timestamp{Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
				Track:   catalog.Track{SimpleTrack: catalog.SimpleTrack{ID: "t1", Name: "Hey Baby"}},
			}},
			Total: 31,
		},
	}
	r.Playlist(playlist)

	out := buf.String()
	for _, want := range []string{"Road Trip", "Jim", "Hey Baby", "2024-03-01", "Showing 1-1 of 31"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderer_Footer(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		count  int
		total  int
		want   string
	}{
		{name: "first page", offset: 0, count: 20, total: 42, want: "Showing 1-20 of 42"},
		{name: "middle page", offset: 20, count: 20, total: 42, want: "Showing 21-40 of 42"},
		{name: "empty", offset: 0, count: 0, total: 0, want: "No results (total: 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer(t, 0)
			r.Footer(tt.offset, tt.count, tt.total)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{ms: 0, want: "0:00"},
		{ms: 59499, want: "0:59"},
		{ms: 206000, want: "3:26"},
		{ms: 3600000, want: "60:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatDuration(time.Duration(tt.ms) * time.Millisecond)
			if got != tt.want {
				t.Errorf("formatDuration(%dms) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}
