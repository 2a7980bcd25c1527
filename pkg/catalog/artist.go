package catalog

import (
	"context"
	"fmt"
	"strings"
)

// SimpleArtist is the lightweight artist shape embedded in albums and
// tracks.
type SimpleArtist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

func (SimpleArtist) kind() Kind { return artistKind }

// Artist is the full artist shape.
type Artist struct {
	SimpleArtist
	Genres     []string  `json:"genres"`
	Popularity int       `json:"popularity"`
	Followers  Followers `json:"followers"`
	Images     []Image   `json:"images"`
}

// ArtistAlbumsOptions controls the artist albums listing.
type ArtistAlbumsOptions struct {
	PageOptions
	Groups []string // include_groups filter; defaults to "album"
}

// ArtistService provides artist operations.
type ArtistService struct {
	client *Client
}

// Get fetches a full artist.
func (s *ArtistService) Get(ctx context.Context, id string) (*Artist, error) {
	artist, err := Get[Artist](ctx, s.client, id)
	if err != nil {
		return nil, fmt.Errorf("get artist %s: %w", id, err)
	}
	return artist, nil
}

// GetMany fetches several full artists.
func (s *ArtistService) GetMany(ctx context.Context, ids []string) ([]Artist, error) {
	artists, err := GetMany[Artist](ctx, s.client, ids)
	if err != nil {
		return nil, fmt.Errorf("get artists: %w", err)
	}
	return artists, nil
}

// Search finds artists by keyword.
func (s *ArtistService) Search(ctx context.Context, keywords string, opts SearchOptions) (*Page[Artist], error) {
	return Search[Artist](ctx, s.client, keywords, opts)
}

// TopTracks returns up to 10 of the artist's most popular tracks in the
// given market.
func (s *ArtistService) TopTracks(ctx context.Context, id, country string) ([]Track, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	if country == "" {
		country = DefaultCountry
	}
	ep := newEndpoint(artistKind.Collection, id, "top-tracks").set("country", country)
	return fetchMany[Track](ctx, s.client, ep, "tracks")
}

// Related returns up to 20 artists similar to the given one.
func (s *ArtistService) Related(ctx context.Context, id string) ([]Artist, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	ep := newEndpoint(artistKind.Collection, id, "related-artists")
	return fetchMany[Artist](ctx, s.client, ep, "artists")
}

// Albums lists the artist's albums.
func (s *ArtistService) Albums(ctx context.Context, id string, opts ArtistAlbumsOptions) (*Page[SimpleAlbum], error) {
	if id == "" {
		return nil, ErrMissingID
	}
	groups := opts.Groups
	if len(groups) == 0 {
		groups = []string{"album"}
	}
	ep := opts.PageOptions.apply(newEndpoint(artistKind.Collection, id, "albums"), false).
		set("include_groups", strings.Join(groups, ","))
	return fetchPage[SimpleAlbum](ctx, s.client, ep, "")
}
