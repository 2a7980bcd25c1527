package catalog

import (
	"context"
	"fmt"
)

// SimpleAlbum is the lightweight album shape embedded in other objects
// and returned by searches.
type SimpleAlbum struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	AlbumType    string         `json:"album_type"` // "album", "single" or "compilation"
	AlbumGroup   string         `json:"album_group,omitempty"`
	Artists      []SimpleArtist `json:"artists"`
	Images       []Image        `json:"images"`
	ReleaseDate  string         `json:"release_date"`
	TotalTracks  int            `json:"total_tracks"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
	Href         string         `json:"href"`
	Type         string         `json:"type"`
	URI          string         `json:"uri"`
}

func (SimpleAlbum) kind() Kind { return albumKind }

// Album is the full album shape.
type Album struct {
	SimpleAlbum
	Label                string            `json:"label"`
	Popularity           int               `json:"popularity"`
	Genres               []string          `json:"genres"`
	ReleaseDatePrecision string            `json:"release_date_precision"`
	Copyrights           []Copyright       `json:"copyrights"`
	Tracks               Page[SimpleTrack] `json:"tracks"`
}

// SavedAlbum is an album in the current user's library.
type SavedAlbum struct {
	AddedAt Timestamp `json:"added_at"`
	Album   Album     `json:"album"`
}

// AlbumService provides album operations.
type AlbumService struct {
	client *Client
}

// Get fetches a full album.
//
// The embedded Tracks page is bound to the client, so its Next and
// Previous methods walk the album's track list.
func (s *AlbumService) Get(ctx context.Context, id string) (*Album, error) {
	album, err := Get[Album](ctx, s.client, id)
	if err != nil {
		return nil, fmt.Errorf("get album %s: %w", id, err)
	}
	if album != nil {
		album.Tracks.bind(s.client, "")
	}
	return album, nil
}

// GetSimple fetches an album decoded into the lightweight shape.
func (s *AlbumService) GetSimple(ctx context.Context, id string) (*SimpleAlbum, error) {
	album, err := Get[SimpleAlbum](ctx, s.client, id)
	if err != nil {
		return nil, fmt.Errorf("get album %s: %w", id, err)
	}
	return album, nil
}

// GetMany fetches several full albums.
func (s *AlbumService) GetMany(ctx context.Context, ids []string) ([]Album, error) {
	albums, err := GetMany[Album](ctx, s.client, ids)
	if err != nil {
		return nil, fmt.Errorf("get albums: %w", err)
	}
	for i := range albums {
		albums[i].Tracks.bind(s.client, "")
	}
	return albums, nil
}

// Search finds albums by keyword.
func (s *AlbumService) Search(ctx context.Context, keywords string, opts SearchOptions) (*Page[SimpleAlbum], error) {
	return Search[SimpleAlbum](ctx, s.client, keywords, opts)
}

// Tracks lists the tracks of an album.
func (s *AlbumService) Tracks(ctx context.Context, id string, opts PageOptions) (*Page[SimpleTrack], error) {
	if id == "" {
		return nil, ErrMissingID
	}
	ep := opts.apply(newEndpoint(albumKind.Collection, id, "tracks"), true)
	return fetchPage[SimpleTrack](ctx, s.client, ep, "")
}
