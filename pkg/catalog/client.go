package catalog

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// Config holds client configuration.
type Config struct {
	Credentials Credentials  // Optional: tokens for authenticated requests (may be set later)
	HTTPClient  *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL     string       // Optional: Base URL for API (defaults to the Spotify Web API, used for testing)
	Logger      Logger       // Optional: Logger interface for debug logging
}

// Credentials is the token pair used to authorize API calls.
type Credentials struct {
	AccessToken  string // Required for any call
	RefreshToken string // Optional
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for catalog API operations.
//
// A Client owns its credentials, so several independently authenticated
// clients can live in one process.
type Client struct {
	mu    sync.RWMutex
	creds Credentials

	httpClient *http.Client
	baseURL    string
	logger     Logger

	albums    *AlbumService
	artists   *ArtistService
	tracks    *TrackService
	playlists *PlaylistService
	users     *UserService
	library   *LibraryService
}

const (
	// DefaultBaseURL is the default Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// DefaultCountry is the market used when none is given.
	DefaultCountry = "US"

	// DefaultLimit is the page size used when none is given.
	DefaultLimit = 20
)

// NewClient creates a new catalog API client.
//
// The client may be created without credentials. Until SetCredentials is
// called every operation returns an absent result without touching the
// network.
//
// Returns an error if BaseURL is set but is not an absolute URL.
func NewClient(cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("catalog: invalid BaseURL %q", baseURL)
	}

	c := &Client{
		creds:      cfg.Credentials,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     cfg.Logger,
	}

	c.albums = &AlbumService{client: c}
	c.artists = &ArtistService{client: c}
	c.tracks = &TrackService{client: c}
	c.playlists = &PlaylistService{client: c}
	c.users = &UserService{client: c}
	c.library = &LibraryService{client: c}

	return c, nil
}

// Albums returns the album service.
func (c *Client) Albums() *AlbumService { return c.albums }

// Artists returns the artist service.
func (c *Client) Artists() *ArtistService { return c.artists }

// Tracks returns the track service.
func (c *Client) Tracks() *TrackService { return c.tracks }

// Playlists returns the playlist service.
func (c *Client) Playlists() *PlaylistService { return c.playlists }

// Users returns the user profile service.
func (c *Client) Users() *UserService { return c.users }

// Library returns the current user's library service.
func (c *Client) Library() *LibraryService { return c.library }

// SetCredentials replaces the tokens used for subsequent requests.
//
// Requests already in flight keep the token they started with.
func (c *Client) SetCredentials(creds Credentials) {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()
}

// Credentials returns the current token pair.
func (c *Client) Credentials() Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds
}

// AccessToken returns the current access token and whether one is set.
func (c *Client) AccessToken() (string, bool) {
	creds := c.Credentials()
	return creds.AccessToken, creds.AccessToken != ""
}

// IsAuthenticated reports whether an access token is set.
func (c *Client) IsAuthenticated() bool {
	_, ok := c.AccessToken()
	return ok
}

// token returns the oauth2 form of the current credentials, or nil when
// the client is unauthenticated.
func (c *Client) token() *oauth2.Token {
	creds := c.Credentials()
	if creds.AccessToken == "" {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
	}
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
