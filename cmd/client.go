package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfmyers9/cratedig/internal/config"
	"github.com/jfmyers9/cratedig/internal/logging"
	"github.com/jfmyers9/cratedig/internal/render"
	"github.com/jfmyers9/cratedig/pkg/catalog"
)

// errNotAuthenticated is returned by commands that need a token when none
// is configured.
var errNotAuthenticated = errors.New("not authenticated. Run 'cratedig auth' first")

// session bundles what catalog commands need.
type session struct {
	cfg    *config.Config
	client *catalog.Client
}

// newSession loads configuration and builds an authenticated catalog
// client from it.
func newSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newCatalogClient(cfg)
	if err != nil {
		return nil, err
	}

	if !client.IsAuthenticated() {
		return nil, errNotAuthenticated
	}

	return &session{cfg: cfg, client: client}, nil
}

func newCatalogClient(cfg *config.Config) (*catalog.Client, error) {
	client, err := catalog.NewClient(catalog.Config{
		Credentials: catalog.Credentials{
			AccessToken:  cfg.Spotify.AccessToken,
			RefreshToken: cfg.Spotify.RefreshToken,
		},
		BaseURL: cfg.BaseURL,
		Logger:  logging.NewCatalogLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}
	return client, nil
}

func (s *session) renderer(out io.Writer) *render.Renderer {
	return render.New(out, s.cfg.TableWidth)
}

// pageOptions fills unset paging flags from configuration.
func (s *session) pageOptions(offset, limit int, country string) catalog.PageOptions {
	if limit <= 0 {
		limit = s.cfg.PageSize
	}
	if country == "" {
		country = s.cfg.Market
	}
	return catalog.PageOptions{Offset: offset, Limit: limit, Country: country}
}
