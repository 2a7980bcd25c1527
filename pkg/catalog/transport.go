package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// endpoint describes one API call: a path below the base URL plus its
// query parameters. It is built fresh for every call.
type endpoint struct {
	path  string
	query url.Values
}

// newEndpoint joins path segments into an endpoint. Each segment is
// path-escaped, so ids can be passed through as-is.
func newEndpoint(segments ...string) endpoint {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return endpoint{
		path:  "/" + strings.Join(escaped, "/"),
		query: url.Values{},
	}
}

// set adds a query parameter, skipping empty values.
func (e endpoint) set(key, value string) endpoint {
	if value != "" {
		e.query.Set(key, value)
	}
	return e
}

// String returns the path and encoded query.
func (e endpoint) String() string {
	if len(e.query) == 0 {
		return e.path
	}
	return e.path + "?" + e.query.Encode()
}

// get performs one authenticated GET and returns the raw response body.
//
// When absolute is false, target is appended to the client's base URL.
// When absolute is true, target is requested as-is; this is how page
// cursors are followed.
//
// A non-2xx response is returned as *APIError carrying the body verbatim.
// The body of a successful response is returned unparsed. No retries are
// attempted.
func (c *Client) get(ctx context.Context, target string, absolute bool) ([]byte, error) {
	tok := c.token()
	if tok == nil {
		return nil, errNotAuthenticated
	}

	reqURL := target
	if !absolute {
		reqURL = c.baseURL + target
	}

	c.logDebugf("catalog: GET %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	tok.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cratedig/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logDebugf("catalog: GET %s failed: %d", reqURL, resp.StatusCode)
		return nil, newAPIError(resp, body)
	}

	c.logDebugf("catalog: GET %s succeeded (%d bytes)", reqURL, len(body))
	return body, nil
}
