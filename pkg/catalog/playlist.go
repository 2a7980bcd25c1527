package catalog

import (
	"context"
	"fmt"
)

// PlaylistTracksRef is the {href, total} stub a simplified playlist
// carries in place of its track list.
type PlaylistTracksRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SimplePlaylist is the lightweight playlist shape returned by searches
// and user playlist listings.
type SimplePlaylist struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Owner         User              `json:"owner"`
	Public        *bool             `json:"public"` // nil when the API does not say
	Collaborative bool              `json:"collaborative"`
	SnapshotID    string            `json:"snapshot_id"`
	Images        []Image           `json:"images"`
	TrackRef      PlaylistTracksRef `json:"tracks"` // left empty on Playlist, whose Tracks field wins
	ExternalURLs  ExternalURLs      `json:"external_urls"`
	Href          string            `json:"href"`
	Type          string            `json:"type"`
	URI           string            `json:"uri"`
}

func (SimplePlaylist) kind() Kind { return playlistKind }

// Playlist is the full playlist shape, including the first page of its
// tracks.
type Playlist struct {
	SimplePlaylist
	Followers Followers           `json:"followers"`
	Tracks    Page[PlaylistTrack] `json:"tracks"`
}

// PlaylistTrack is one entry of a playlist.
type PlaylistTrack struct {
	AddedAt Timestamp `json:"added_at"`
	AddedBy *User     `json:"added_by"`
	IsLocal bool      `json:"is_local"`
	Track   Track     `json:"track"`
}

// PlaylistService provides playlist operations.
type PlaylistService struct {
	client *Client
}

// Get fetches a full playlist. The embedded Tracks page is bound to the
// client for traversal.
func (s *PlaylistService) Get(ctx context.Context, id string) (*Playlist, error) {
	playlist, err := Get[Playlist](ctx, s.client, id)
	if err != nil {
		return nil, fmt.Errorf("get playlist %s: %w", id, err)
	}
	if playlist != nil {
		playlist.Tracks.bind(s.client, "")
	}
	return playlist, nil
}

// GetSimple fetches a playlist decoded into the lightweight shape.
func (s *PlaylistService) GetSimple(ctx context.Context, id string) (*SimplePlaylist, error) {
	playlist, err := Get[SimplePlaylist](ctx, s.client, id)
	if err != nil {
		return nil, fmt.Errorf("get playlist %s: %w", id, err)
	}
	return playlist, nil
}

// Search finds playlists by keyword.
func (s *PlaylistService) Search(ctx context.Context, keywords string, opts SearchOptions) (*Page[SimplePlaylist], error) {
	return Search[SimplePlaylist](ctx, s.client, keywords, opts)
}

// Tracks lists the entries of a playlist.
func (s *PlaylistService) Tracks(ctx context.Context, id string, opts PageOptions) (*Page[PlaylistTrack], error) {
	if id == "" {
		return nil, ErrMissingID
	}
	ep := opts.apply(newEndpoint(playlistKind.Collection, id, "tracks"), true)
	return fetchPage[PlaylistTrack](ctx, s.client, ep, "")
}

// ForUser lists a user's playlists. An empty userID lists the current
// user's playlists.
func (s *PlaylistService) ForUser(ctx context.Context, userID string, opts PageOptions) (*Page[SimplePlaylist], error) {
	ep := newEndpoint("me", "playlists")
	if userID != "" {
		ep = newEndpoint(userKind.Collection, userID, "playlists")
	}
	return fetchPage[SimplePlaylist](ctx, s.client, opts.apply(ep, false), "")
}
