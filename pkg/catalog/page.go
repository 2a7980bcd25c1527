package catalog

import (
	"context"
)

// Page is one page of a paginated result set.
//
// Items keep the order the API returned them in. NextURL and PreviousURL
// are absolute cursors and are empty at either end of the result set.
//
// A Page returned by this package remembers the client it came from and
// the envelope key it was extracted with, so Next and Previous can fetch
// neighbouring pages without re-deriving the query.
type Page[T any] struct {
	Href     string `json:"href"`
	Items    []T    `json:"items"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
	Total    int    `json:"total"`
	NextURL     string `json:"next"`
	PreviousURL string `json:"previous"`

	client *Client
	key    string
}

// HasNext reports whether a next cursor is present.
func (p *Page[T]) HasNext() bool { return p.NextURL != "" }

// HasPrevious reports whether a previous cursor is present.
func (p *Page[T]) HasPrevious() bool { return p.PreviousURL != "" }

// Next replaces the page contents with the following page.
//
// It is a no-op when there is no next cursor, when the page was not
// obtained from a Client, or when that client is not authenticated. On
// error the page is left unchanged.
func (p *Page[T]) Next(ctx context.Context) error {
	return p.follow(ctx, p.NextURL)
}

// Previous replaces the page contents with the preceding page.
//
// It follows the Previous cursor and behaves like Next otherwise.
func (p *Page[T]) Previous(ctx context.Context) error {
	return p.follow(ctx, p.PreviousURL)
}

// follow fetches cursor and copies the resulting page into p.
func (p *Page[T]) follow(ctx context.Context, cursor string) error {
	if cursor == "" || p.client == nil {
		return nil
	}

	body, ok, err := p.client.fetch(ctx, cursor, true)
	if !ok || err != nil {
		return err
	}

	fetched, err := decodePage[T](body, p.key)
	if err != nil {
		return err
	}

	p.copyFrom(fetched)
	return nil
}

// copyFrom overwrites every exported field with the values of src. The
// client and key bindings are kept.
func (p *Page[T]) copyFrom(src *Page[T]) {
	items := make([]T, len(src.Items))
	copy(items, src.Items)

	p.Href = src.Href
	p.Items = items
	p.Offset = src.Offset
	p.Limit = src.Limit
	p.Total = src.Total
	p.NextURL = src.NextURL
	p.PreviousURL = src.PreviousURL
}

// bind attaches the client and extraction key used for traversal.
func (p *Page[T]) bind(c *Client, key string) {
	p.client = c
	p.key = key
}

// Walk calls fn for every item of p and of every following page.
//
// Traversal advances p in place, so after Walk returns p holds the last
// page visited. Walk stops at the first error from fn or from fetching.
func Walk[T any](ctx context.Context, p *Page[T], fn func(T) error) error {
	for {
		for _, item := range p.Items {
			if err := fn(item); err != nil {
				return err
			}
		}
		if !p.HasNext() || p.client == nil || !p.client.IsAuthenticated() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		before := p.NextURL
		if err := p.Next(ctx); err != nil {
			return err
		}
		if p.NextURL == before {
			// Cursor did not advance; avoid looping forever.
			return nil
		}
	}
}

func decodePage[T any](body []byte, key string) (*Page[T], error) {
	var page Page[T]
	if err := extract(body, key, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}
