package catalog

import (
	"context"
	"fmt"
	"time"
)

// SimpleTrack is the lightweight track shape, as listed on an album.
type SimpleTrack struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Artists      []SimpleArtist `json:"artists"`
	TrackNumber  int            `json:"track_number"`
	DiscNumber   int            `json:"disc_number"`
	Explicit     bool           `json:"explicit"`
	DurationMS   int            `json:"duration_ms"`
	PreviewURL   string         `json:"preview_url"`
	IsLocal      bool           `json:"is_local"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
	Href         string         `json:"href"`
	Type         string         `json:"type"`
	URI          string         `json:"uri"`
}

func (SimpleTrack) kind() Kind { return trackKind }

// Duration returns the track length.
func (t SimpleTrack) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// Track is the full track shape.
type Track struct {
	SimpleTrack
	Album       SimpleAlbum       `json:"album"`
	Popularity  int               `json:"popularity"`
	ExternalIDs map[string]string `json:"external_ids"`
}

// SavedTrack is a track in the current user's library.
type SavedTrack struct {
	AddedAt Timestamp `json:"added_at"`
	Track   Track     `json:"track"`
}

// TrackService provides track operations.
type TrackService struct {
	client *Client
}

// Get fetches a full track.
func (s *TrackService) Get(ctx context.Context, id string) (*Track, error) {
	track, err := Get[Track](ctx, s.client, id)
	if err != nil {
		return nil, fmt.Errorf("get track %s: %w", id, err)
	}
	return track, nil
}

// GetMany fetches several full tracks.
func (s *TrackService) GetMany(ctx context.Context, ids []string) ([]Track, error) {
	tracks, err := GetMany[Track](ctx, s.client, ids)
	if err != nil {
		return nil, fmt.Errorf("get tracks: %w", err)
	}
	return tracks, nil
}

// Search finds tracks by keyword.
func (s *TrackService) Search(ctx context.Context, keywords string, opts SearchOptions) (*Page[Track], error) {
	return Search[Track](ctx, s.client, keywords, opts)
}
