package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Market used for catalog requests that accept a country
	// Default: "US"
	Market string

	// Page size for search and list commands
	// Default: 20
	PageSize int

	// API base URL; empty uses the catalog default
	BaseURL string

	// Maximum display width of a table cell
	// Default: 40
	TableWidth int

	// Spotify application and token settings
	Spotify SpotifyConfig
}

// SpotifyConfig holds Spotify specific configuration
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AccessToken  string
	RefreshToken string
}

const (
	envPrefix          = "CRATEDIG"
	configFileName     = "config.yaml"
	defaultRedirectURI = "http://127.0.0.1:8888/callback"
)

// Load reads configuration from file and environment
func Load() (*Config, error) {
	// A .env file in the working directory is optional
	_ = godotenv.Load()

	return load(getConfigDir())
}

func load(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	v.SetDefault("market", "US")
	v.SetDefault("page_size", 20)
	v.SetDefault("base_url", "")
	v.SetDefault("table_width", 40)
	v.SetDefault("spotify.redirect_uri", defaultRedirectURI)

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// CRATEDIG_SPOTIFY_CLIENT_ID and friends
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The plain SPOTIFY_* names used by most Spotify tooling also work
	_ = v.BindEnv("spotify.client_id", envPrefix+"_SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_ID")
	_ = v.BindEnv("spotify.client_secret", envPrefix+"_SPOTIFY_CLIENT_SECRET", "SPOTIFY_CLIENT_SECRET")
	_ = v.BindEnv("spotify.redirect_uri", envPrefix+"_SPOTIFY_REDIRECT_URI", "SPOTIFY_REDIRECT_URI")

	cfg := &Config{
		Market:     v.GetString("market"),
		PageSize:   v.GetInt("page_size"),
		BaseURL:    v.GetString("base_url"),
		TableWidth: v.GetInt("table_width"),
		Spotify: SpotifyConfig{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
			RedirectURI:  v.GetString("spotify.redirect_uri"),
			AccessToken:  v.GetString("spotify.access_token"),
			RefreshToken: v.GetString("spotify.refresh_token"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "cratedig")

	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	return c.saveTo(getConfigDir())
}

func (c *Config) saveTo(dir string) error {
	v := viper.New()

	configFile := filepath.Join(dir, configFileName)

	v.Set("market", c.Market)
	v.Set("page_size", c.PageSize)
	v.Set("base_url", c.BaseURL)
	v.Set("table_width", c.TableWidth)
	v.Set("spotify.client_id", c.Spotify.ClientID)
	v.Set("spotify.client_secret", c.Spotify.ClientSecret)
	v.Set("spotify.redirect_uri", c.Spotify.RedirectURI)
	v.Set("spotify.access_token", c.Spotify.AccessToken)
	v.Set("spotify.refresh_token", c.Spotify.RefreshToken)

	if err := v.WriteConfigAs(configFile); err != nil {
		return err
	}

	// Tokens live in this file
	return os.Chmod(configFile, 0600)
}
