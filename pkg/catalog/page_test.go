package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"
)

// pagedTracksServer serves a three-page track search. Page n lives at
// /pages/n; the search itself returns page 1. Cursors are absolute.
func pagedTracksServer(t *testing.T) (*Client, *int) {
	t.Helper()

	var client *Client
	requests := 0
	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		base := client.baseURL
		pages := map[string]string{
			"/search":  fmt.Sprintf(`{"tracks":{"href":"h1","items":[{"id":"t1"},{"id":"t2"}],"offset":0,"limit":2,"total":5,"next":"%s/pages/2","previous":null}}`, base),
			"/pages/1": fmt.Sprintf(`{"tracks":{"href":"h1","items":[{"id":"t1"},{"id":"t2"}],"offset":0,"limit":2,"total":5,"next":"%s/pages/2","previous":null}}`, base),
			"/pages/2": fmt.Sprintf(`{"tracks":{"href":"h2","items":[{"id":"t3"},{"id":"t4"}],"offset":2,"limit":2,"total":5,"next":"%s/pages/3","previous":"%s/pages/1"}}`, base, base),
			"/pages/3": fmt.Sprintf(`{"tracks":{"href":"h3","items":[{"id":"t5"}],"offset":4,"limit":2,"total":5,"next":null,"previous":"%s/pages/2"}}`, base),
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			respond(t, w, http.StatusNotFound, `{"error":{"status":404,"message":"no such page"}}`)
			return
		}
		respond(t, w, http.StatusOK, body)
	})
	return client, &requests
}

func trackIDs(items []Track) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestPage_Next(t *testing.T) {
	client, _ := pagedTracksServer(t)
	ctx := context.Background()

	page, err := Search[Track](ctx, client, "t", SearchOptions{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := page.Next(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := trackIDs(page.Items); !reflect.DeepEqual(got, []string{"t3", "t4"}) {
		t.Errorf("expected items t3,t4, got %v", got)
	}
	if page.Offset != 2 || page.Limit != 2 || page.Total != 5 || page.Href != "h2" {
		t.Errorf("expected fields of page 2, got offset=%d limit=%d total=%d href=%s",
			page.Offset, page.Limit, page.Total, page.Href)
	}
	if page.NextURL != client.baseURL+"/pages/3" {
		t.Errorf("expected next cursor of page 2, got %q", page.NextURL)
	}
	if page.PreviousURL != client.baseURL+"/pages/1" {
		t.Errorf("expected previous cursor of page 2, got %q", page.PreviousURL)
	}
}

func TestPage_NextWithoutCursorIsNoop(t *testing.T) {
	transport := &countingTransport{t: t}
	client, _ := NewClient(Config{
		Credentials: Credentials{AccessToken: "t"},
		HTTPClient:  &http.Client{Transport: transport},
	})

	page := &Page[Track]{
		Href:        "h",
		Items:       []Track{{SimpleTrack: SimpleTrack{ID: "only"}}},
		Offset:      4,
		Limit:       2,
		Total:       5,
		PreviousURL: "https://example.invalid/prev",
	}
	page.bind(client, "tracks")
	before := *page

	if err := page.Next(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(*page, before) {
		t.Errorf("expected page unchanged, got %+v", *page)
	}
	if n := transport.calls.Load(); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestPage_PreviousWithoutCursorIsNoop(t *testing.T) {
	page := &Page[Track]{Items: []Track{}, NextURL: "https://example.invalid/next"}

	if err := page.Previous(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.NextURL != "https://example.invalid/next" || len(page.Items) != 0 {
		t.Errorf("expected page unchanged, got %+v", page)
	}
}

func TestPage_NextThenPreviousRoundTrip(t *testing.T) {
	client, _ := pagedTracksServer(t)
	ctx := context.Background()

	page, err := Search[Track](ctx, client, "t", SearchOptions{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Move to the middle page so both cursors are present.
	if err := page.Next(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !page.HasNext() || !page.HasPrevious() {
		t.Fatalf("expected both cursors on middle page, got %+v", page)
	}
	original := trackIDs(page.Items)

	if err := page.Next(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Previous(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := trackIDs(page.Items); !reflect.DeepEqual(got, original) {
		t.Errorf("expected round trip to restore %v, got %v", original, got)
	}
}

func TestPage_PreviousFollowsPreviousCursor(t *testing.T) {
	client, _ := pagedTracksServer(t)
	ctx := context.Background()

	page := &Page[Track]{
		NextURL:     client.baseURL + "/pages/3",
		PreviousURL: client.baseURL + "/pages/1",
	}
	page.bind(client, "tracks")

	if err := page.Previous(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := trackIDs(page.Items); !reflect.DeepEqual(got, []string{"t1", "t2"}) {
		t.Errorf("expected page 1 items, got %v", got)
	}
}

func TestPage_CursorError(t *testing.T) {
	client, _ := pagedTracksServer(t)

	page := &Page[Track]{
		Items:   []Track{{SimpleTrack: SimpleTrack{ID: "keep"}}},
		NextURL: client.baseURL + "/pages/missing",
	}
	page.bind(client, "tracks")

	err := page.Next(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
	if apiErr.Body != `{"error":{"status":404,"message":"no such page"}}` {
		t.Errorf("expected raw body, got %q", apiErr.Body)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "keep" {
		t.Errorf("expected page unchanged on error, got %+v", page.Items)
	}
}

func TestPage_TopLevelCursor(t *testing.T) {
	var client *Client
	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/albums/a1/tracks":
			if r.URL.Query().Get("offset") == "1" {
				respond(t, w, http.StatusOK, `{"items":[{"id":"s2"}],"offset":1,"limit":1,"total":2,"previous":"`+client.baseURL+`/albums/a1/tracks?offset=0&limit=1"}`)
				return
			}
			respond(t, w, http.StatusOK, `{"items":[{"id":"s1"}],"offset":0,"limit":1,"total":2,"next":"`+client.baseURL+`/albums/a1/tracks?offset=1&limit=1"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	page, err := client.Albums().Tracks(ctx, "a1", PageOptions{Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := page.Next(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "s2" {
		t.Errorf("expected s2 after next, got %+v", page.Items)
	}
	if err := page.Previous(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "s1" {
		t.Errorf("expected s1 after previous, got %+v", page.Items)
	}
}

func TestPage_NotAuthenticatedTraversal(t *testing.T) {
	transport := &countingTransport{t: t}
	client, _ := NewClient(Config{HTTPClient: &http.Client{Transport: transport}})

	page := &Page[Track]{NextURL: "https://example.invalid/next"}
	page.bind(client, "tracks")

	if err := page.Next(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.NextURL != "https://example.invalid/next" {
		t.Errorf("expected page unchanged, got %+v", page)
	}
	if n := transport.calls.Load(); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestWalk(t *testing.T) {
	client, requests := pagedTracksServer(t)
	ctx := context.Background()

	page, err := Search[Track](ctx, client, "t", SearchOptions{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var seen []string
	err = Walk(ctx, page, func(track Track) error {
		seen = append(seen, track.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"t1", "t2", "t3", "t4", "t5"}; !reflect.DeepEqual(seen, want) {
		t.Errorf("expected %v, got %v", want, seen)
	}
	if *requests != 3 {
		t.Errorf("expected 3 requests, got %d", *requests)
	}
	if page.HasNext() {
		t.Error("expected walk to end on the last page")
	}
}

func TestWalk_StopsOnCallbackError(t *testing.T) {
	client, requests := pagedTracksServer(t)
	ctx := context.Background()

	page, err := Search[Track](ctx, client, "t", SearchOptions{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stop := errors.New("stop")
	err = Walk(ctx, page, func(track Track) error {
		if track.ID == "t2" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("expected stop error, got %v", err)
	}
	if *requests != 1 {
		t.Errorf("expected no page fetch after stop, got %d requests", *requests)
	}
}
