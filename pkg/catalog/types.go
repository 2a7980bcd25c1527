package catalog

import (
	"encoding/json"
	"strconv"
	"time"
)

// Image is a cover or profile image.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Followers holds follower information for artists, users and playlists.
type Followers struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// ExternalURLs maps a service name to a URL, e.g. "spotify".
type ExternalURLs map[string]string

// Copyright is a copyright statement attached to an album.
type Copyright struct {
	Text string `json:"text"`
	Type string `json:"type"` // "C" (copyright) or "P" (performance)
}

// Timestamp is an ISO 8601 time as sent by the API.
//
// Parsing is lenient: an empty or unparseable value leaves the zero time
// rather than failing the whole response.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// PageOptions controls offset/limit paging on list endpoints.
type PageOptions struct {
	Offset  int    // Index of the first item (default 0)
	Limit   int    // Page size (default DefaultLimit)
	Country string // Market code (default DefaultCountry), ignored where unsupported
}

func (o PageOptions) withDefaults() PageOptions {
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

func (o PageOptions) apply(ep endpoint, withCountry bool) endpoint {
	o = o.withDefaults()
	ep = ep.set("offset", strconv.Itoa(o.Offset)).set("limit", strconv.Itoa(o.Limit))
	if withCountry {
		ep = ep.set("country", o.Country)
	}
	return ep
}
