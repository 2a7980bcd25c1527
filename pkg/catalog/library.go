package catalog

import (
	"context"
	"fmt"
	"strings"
)

// LibraryService provides read access to the current user's saved
// albums and tracks.
//
// These endpoints need the user-library-read scope.
type LibraryService struct {
	client *Client
}

// SavedAlbums lists the albums saved in the current user's library.
func (s *LibraryService) SavedAlbums(ctx context.Context, opts PageOptions) (*Page[SavedAlbum], error) {
	ep := opts.apply(newEndpoint("me", "albums"), false)
	return fetchPage[SavedAlbum](ctx, s.client, ep, "")
}

// SavedTracks lists the tracks saved in the current user's library.
func (s *LibraryService) SavedTracks(ctx context.Context, opts PageOptions) (*Page[SavedTrack], error) {
	ep := opts.apply(newEndpoint("me", "tracks"), false)
	return fetchPage[SavedTrack](ctx, s.client, ep, "")
}

// ContainsAlbums reports, for each id, whether the album is saved.
func (s *LibraryService) ContainsAlbums(ctx context.Context, ids []string) ([]bool, error) {
	return s.contains(ctx, albumKind.Collection, ids)
}

// ContainsTracks reports, for each id, whether the track is saved.
func (s *LibraryService) ContainsTracks(ctx context.Context, ids []string) ([]bool, error) {
	return s.contains(ctx, trackKind.Collection, ids)
}

func (s *LibraryService) contains(ctx context.Context, collection string, ids []string) ([]bool, error) {
	if len(ids) == 0 {
		return []bool{}, nil
	}
	ep := newEndpoint("me", collection, "contains").set("ids", strings.Join(ids, ","))
	saved, err := fetchMany[bool](ctx, s.client, ep, "")
	if err != nil {
		return nil, fmt.Errorf("check saved %s: %w", collection, err)
	}
	return saved, nil
}
