// Package catalog provides a typed client for the Spotify Web API
// catalog.
//
// # Overview
//
// The package fetches, searches and pages through albums, artists,
// tracks, playlists and users. Callers work with Go structs; URL
// construction and JSON envelopes stay inside the package.
//
// # Quick Start
//
//	import "github.com/jfmyers9/cratedig/pkg/catalog"
//
//	client, err := catalog.NewClient(catalog.Config{
//	    Credentials: catalog.Credentials{AccessToken: "your-access-token"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	album, err := client.Albums().Get(ctx, "4aawyAB9vmqN3uQ7FjRGTy")
//
// # Generic Resolution
//
// Every resource shape knows its collection path, its search type and
// the envelope keys the API nests it under. The generic functions use
// that mapping, so one call works for every shape:
//
//	artist, err := catalog.Get[catalog.Artist](ctx, client, id)
//	tracks, err := catalog.GetMany[catalog.Track](ctx, client, ids)
//	page, err := catalog.Search[catalog.SimpleAlbum](ctx, client, "global warming", catalog.SearchOptions{})
//
// Shapes come in pairs. SimpleAlbum is what the API embeds in other
// objects; Album embeds SimpleAlbum and adds the detail fields. Pick the
// one you need per call.
//
// # Paging
//
// Search and list calls return a *Page. Next and Previous follow the
// cursors the API returned and overwrite the page in place:
//
//	page, err := client.Tracks().Search(ctx, "test", catalog.SearchOptions{Limit: 10})
//	for page.HasNext() {
//	    if err := page.Next(ctx); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Walk visits every remaining item across pages.
//
// # Authentication
//
// The client only attaches tokens; obtaining them is left to the caller
// (golang.org/x/oauth2 works well). A client without an access token
// never touches the network: every call returns a nil result and a nil
// error. Check IsAuthenticated to tell that case apart from an empty
// result.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError with the raw body intact:
//
//	_, err := client.Albums().Get(ctx, "missing")
//	if errors.Is(err, catalog.ErrNotFound) {
//	    // 404
//	}
//	var apiErr *catalog.APIError
//	if errors.As(err, &apiErr) {
//	    fmt.Println(apiErr.StatusCode, apiErr.Body)
//	}
//
// Bodies that do not have the expected JSON structure are returned as
// *MalformedResponseError, which matches ErrMalformedResponse.
//
// Nothing is retried. Wrap the HTTPClient's transport for retries or rate
// limiting.
package catalog
