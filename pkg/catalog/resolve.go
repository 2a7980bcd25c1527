package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind maps a resource shape to its wire layout.
//
// The API nests single-type collections under predictable plural keys,
// but batch fetches and top-level resources are irregular. Kind records
// both so that callers never pass envelope keys themselves.
type Kind struct {
	Collection  string // Path segment, e.g. "albums"
	SearchType  string // Value of the search "type" parameter; empty if not searchable
	EnvelopeKey string // Field holding search results, SearchType + "s"
	BatchKey    string // Field holding multi-id results; empty if no batch endpoint
}

var (
	albumKind = Kind{
		Collection:  "albums",
		SearchType:  "album",
		EnvelopeKey: "albums",
		BatchKey:    "albums",
	}
	artistKind = Kind{
		Collection:  "artists",
		SearchType:  "artist",
		EnvelopeKey: "artists",
		BatchKey:    "artists",
	}
	trackKind = Kind{
		Collection:  "tracks",
		SearchType:  "track",
		EnvelopeKey: "tracks",
		BatchKey:    "tracks",
	}
	playlistKind = Kind{
		Collection:  "playlists",
		SearchType:  "playlist",
		EnvelopeKey: "playlists",
	}
	userKind = Kind{
		Collection: "users",
	}
)

// Resource is implemented by every top-level resource shape. The method
// set is unexported, so the set of resources is closed.
type Resource interface {
	kind() Kind
}

// KindOf returns the wire mapping used for resource type T.
func KindOf[T Resource]() Kind {
	var zero T
	return zero.kind()
}

// SearchOptions controls a search request.
type SearchOptions struct {
	Offset  int    // Index of the first result (default 0)
	Limit   int    // Page size (default DefaultLimit)
	Country string // Market code (default DefaultCountry)
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Country == "" {
		o.Country = DefaultCountry
	}
	return o
}

// Get fetches one resource by id from /{collection}/{id}.
//
// It returns nil and no error when the client is not authenticated.
//
// Example:
//
//	album, err := catalog.Get[catalog.Album](ctx, client, "4aawyAB9vmqN3uQ7FjRGTy")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if album == nil {
//	    log.Fatal("not authenticated")
//	}
//	fmt.Println(album.Name)
func Get[T Resource](ctx context.Context, c *Client, id string) (*T, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return fetchOne[T](ctx, c, newEndpoint(KindOf[T]().Collection, id))
}

// GetMany fetches several resources by id from /{collection}?ids=a,b,c.
//
// Order follows the API response, which matches the order of ids. Ids
// the API does not know come back as zero values. Kinds without a batch
// endpoint return ErrUnsupported.
func GetMany[T Resource](ctx context.Context, c *Client, ids []string) ([]T, error) {
	k := KindOf[T]()
	if k.BatchKey == "" {
		return nil, fmt.Errorf("%w: batch fetch of %s", ErrUnsupported, k.Collection)
	}
	if len(ids) == 0 {
		return []T{}, nil
	}
	ep := newEndpoint(k.Collection).set("ids", strings.Join(ids, ","))
	return fetchMany[T](ctx, c, ep, k.BatchKey)
}

// Search runs a single-type search and returns the first page.
//
// The results are read from the envelope field named after the searched
// type ("albums" for albums and so on).
//
// Example:
//
//	page, err := catalog.Search[catalog.Track](ctx, client, "test", catalog.SearchOptions{Limit: 1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(page.Total)
func Search[T Resource](ctx context.Context, c *Client, keywords string, opts SearchOptions) (*Page[T], error) {
	k := KindOf[T]()
	if k.SearchType == "" {
		return nil, fmt.Errorf("%w: search of %s", ErrUnsupported, k.Collection)
	}
	opts = opts.withDefaults()

	ep := newEndpoint("search").
		set("q", keywords).
		set("type", k.SearchType).
		set("offset", strconv.Itoa(opts.Offset)).
		set("limit", strconv.Itoa(opts.Limit)).
		set("country", opts.Country)

	return fetchPage[T](ctx, c, ep, k.EnvelopeKey)
}

// fetch wraps the transport. authenticated is false when no credentials
// were set, in which case no request was made.
func (c *Client) fetch(ctx context.Context, target string, absolute bool) (body []byte, authenticated bool, err error) {
	body, err = c.get(ctx, target, absolute)
	if errors.Is(err, errNotAuthenticated) {
		c.logDebugf("catalog: skipping %s, not authenticated", target)
		return nil, false, nil
	}
	return body, true, err
}

// fetchOne decodes the whole body of ep into a T.
func fetchOne[T any](ctx context.Context, c *Client, ep endpoint) (*T, error) {
	body, ok, err := c.fetch(ctx, ep.String(), false)
	if !ok || err != nil {
		return nil, err
	}
	var out T
	if err := extract(body, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// fetchMany decodes ep into a slice of T. With an empty arrayKey the
// body itself must be the array; otherwise the array is read from that
// field of the body.
func fetchMany[T any](ctx context.Context, c *Client, ep endpoint, arrayKey string) ([]T, error) {
	body, ok, err := c.fetch(ctx, ep.String(), false)
	if !ok || err != nil {
		return nil, err
	}
	var out []T
	if err := extract(body, arrayKey, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// fetchPage decodes ep into a Page. key selects the envelope field the
// page lives under; empty means the body is the page. The key is kept
// on the page so cursor traversal can extract the same way.
func fetchPage[T any](ctx context.Context, c *Client, ep endpoint, key string) (*Page[T], error) {
	body, ok, err := c.fetch(ctx, ep.String(), false)
	if !ok || err != nil {
		return nil, err
	}
	page, err := decodePage[T](body, key)
	if err != nil {
		return nil, err
	}
	page.bind(c, key)
	return page, nil
}

// extract decodes body into v. With a key, only that top-level field is
// decoded. Every failure is reported as *MalformedResponseError.
func extract(body []byte, key string, v any) error {
	raw := json.RawMessage(body)
	if key != "" {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return &MalformedResponseError{Key: key, Err: err}
		}
		field, ok := envelope[key]
		if !ok || isNull(field) {
			return &MalformedResponseError{Key: key, Err: errMissingKey}
		}
		raw = field
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &MalformedResponseError{Key: key, Err: err}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
