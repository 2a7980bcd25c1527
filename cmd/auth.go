package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/jfmyers9/cratedig/internal/config"
	"github.com/spf13/cobra"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	authToken             string
	authRefreshToken      string
	authClientCredentials bool
	authTimeout           time.Duration
)

// clientCredentialsTokenURL is the token endpoint for the app-only flow.
var clientCredentialsTokenURL = spotifyauth.TokenURL

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Spotify",
	Long: `Authenticate with Spotify and store the resulting tokens in the config file.

By default this runs the authorization code flow:
1. A local server is started on the configured redirect URI
2. A browser URL is printed for you to authorize cratedig
3. After authorization, the tokens are saved to your config file

Use --client-credentials for an app-only token (no library access), or
--token to store a token you obtained elsewhere.

Create an app and get credentials at: https://developer.spotify.com/dashboard`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.Flags().StringVar(&authToken, "token", "", "Store this access token instead of logging in")
	authCmd.Flags().StringVar(&authRefreshToken, "refresh", "", "Refresh token to store with --token")
	authCmd.Flags().BoolVar(&authClientCredentials, "client-credentials", false, "Use the client credentials flow")
	authCmd.Flags().DurationVar(&authTimeout, "timeout", 5*time.Minute, "How long to wait for the browser login")
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var tok *oauth2.Token
	switch {
	case authToken != "":
		tok = &oauth2.Token{AccessToken: authToken, RefreshToken: authRefreshToken}
	case authClientCredentials:
		tok, err = clientCredentialsToken(ctx, cfg)
	default:
		tok, err = authorizationCodeToken(ctx, cfg, out)
	}
	if err != nil {
		return err
	}

	cfg.Spotify.AccessToken = tok.AccessToken
	cfg.Spotify.RefreshToken = tok.RefreshToken
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	logger.Info().Bool("refresh_token", tok.RefreshToken != "").Msg("Stored Spotify tokens")

	fmt.Fprintf(out, "\n✓ Authentication successful!\n")
	fmt.Fprintf(out, "✓ Tokens saved to %s/config.yaml\n", config.GetConfigDir())

	// App-only tokens cannot read /me, so only greet user tokens
	if !authClientCredentials {
		if err := greet(ctx, cfg, out); err != nil {
			logger.Warn().Err(err).Msg("Could not verify token")
		}
	}

	return nil
}

func requireAppCredentials(cfg *config.Config) error {
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return fmt.Errorf("spotify.client_id and spotify.client_secret are required (set them in the config file or SPOTIFY_CLIENT_ID/SPOTIFY_CLIENT_SECRET)")
	}
	return nil
}

// clientCredentialsToken fetches an app-only token.
func clientCredentialsToken(ctx context.Context, cfg *config.Config) (*oauth2.Token, error) {
	if err := requireAppCredentials(cfg); err != nil {
		return nil, err
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		TokenURL:     clientCredentialsTokenURL,
	}
	tok, err := cc.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client credentials token: %w", err)
	}
	return tok, nil
}

// authorizationCodeToken runs the browser login against a local callback
// server listening on the redirect URI.
func authorizationCodeToken(ctx context.Context, cfg *config.Config, out io.Writer) (*oauth2.Token, error) {
	if err := requireAppCredentials(cfg); err != nil {
		return nil, err
	}

	redirect, err := url.Parse(cfg.Spotify.RedirectURI)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("invalid redirect URI %q", cfg.Spotify.RedirectURI)
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.Spotify.ClientID),
		spotifyauth.WithClientSecret(cfg.Spotify.ClientSecret),
		spotifyauth.WithRedirectURL(cfg.Spotify.RedirectURI),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadPrivate,
			spotifyauth.ScopeUserReadEmail,
			spotifyauth.ScopeUserLibraryRead,
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopePlaylistReadCollaborative,
		),
	)

	state, err := newState()
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", redirect.Host, err)
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.Handle(redirect.Path, callbackHandler(auth, state, results))

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = server.Serve(listener) }()
	defer func() { _ = server.Close() }()

	fmt.Fprintln(out, "Spotify Authentication")
	fmt.Fprintln(out, "======================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Please visit this URL to authorize cratedig:")
	fmt.Fprintf(out, "\n  %s\n\n", auth.AuthURL(state))
	fmt.Fprintln(out, "Waiting for authorization...")

	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	select {
	case res := <-results:
		return res.token, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("timed out waiting for authorization: %w", ctx.Err())
	}
}

type callbackResult struct {
	token *oauth2.Token
	err   error
}

// tokenExchanger is the part of the Spotify authenticator the callback
// needs.
type tokenExchanger interface {
	Token(ctx context.Context, state string, r *http.Request, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// callbackHandler completes the login. Requests whose state does not
// match are rejected without exchanging the code.
func callbackHandler(auth tokenExchanger, state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if st := r.FormValue("state"); st != state {
			http.Error(w, "State mismatch", http.StatusForbidden)
			deliver(results, callbackResult{err: errors.New("state mismatch in authorization callback")})
			return
		}

		tok, err := auth.Token(r.Context(), state, r)
		if err != nil {
			http.Error(w, "Couldn't get token", http.StatusForbidden)
			deliver(results, callbackResult{err: fmt.Errorf("failed to exchange authorization code: %w", err)})
			return
		}

		fmt.Fprintf(w, "Authentication successful! You can close this window.")
		deliver(results, callbackResult{token: tok})
	})
}

// deliver sends the first result and drops later ones.
func deliver(results chan<- callbackResult, res callbackResult) {
	select {
	case results <- res:
	default:
	}
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// greet confirms the stored token works by fetching the current user.
func greet(ctx context.Context, cfg *config.Config, out io.Writer) error {
	client, err := newCatalogClient(cfg)
	if err != nil {
		return err
	}

	me, err := client.Users().Me(ctx)
	if err != nil {
		return err
	}
	if me != nil {
		fmt.Fprintf(out, "✓ Authenticated as: %s\n", me.DisplayName)
	}
	return nil
}
