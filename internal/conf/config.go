// config.go: defines the settings struct and functions to load settings from
// config file and environment.
package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerSettings contains settings for the HTTP server.
type ServerSettings struct {
	Port        int    // port to listen on
	FrontendDir string // directory of static frontend assets, empty disables static serving
	Debug       bool   // true to enable server debug logging
	CORS        struct {
		Enabled bool     // true to enable CORS middleware
		Origins []string // allowed origins, defaults to *
	}
	RateLimit struct {
		Enabled           bool // true to enable the in-memory rate limiter
		RequestsPerMinute int  // sustained requests per minute per client IP
		Burst             int  // burst size
	}
}

// SheetsSettings contains settings for the Google Sheets record store.
type SheetsSettings struct {
	SpreadsheetID    string // id of the spreadsheet holding both tables
	CredentialsFile  string // path to a service account JSON key file
	CredentialsJSON  string // inline service account JSON, takes precedence over the file
	ContestantsSheet string // sheet name of the contestants table
	VotesSheet       string // sheet name of the votes table
	Timezone         string // IANA timezone used to stamp vote dates
}

// AdminSettings contains settings for the admin panel.
type AdminSettings struct {
	Password string        // shared admin password
	TokenTTL time.Duration // lifetime of issued admin tokens
}

// BallotSettings selects the vote workflow variant.
type BallotSettings struct {
	RequireGuardian bool // true requires guardian name and number on submissions
}

// Settings is the root configuration struct.
type Settings struct {
	Debug   bool // true to enable debug logging
	Version string

	Server ServerSettings
	Sheets SheetsSettings
	Admin  AdminSettings
	Ballot BallotSettings
}

// Version is overridden at build time via -ldflags.
var Version = "dev"

// Load reads the configuration from config file and environment and returns
// the populated settings.
func Load() (*Settings, error) {
	// Initialize viper and read config
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}
	settings.Version = Version

	return settings, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/voting-go")

	viper.SetEnvPrefix("vote")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, defaults and environment apply.
	}

	return nil
}

// Validate checks that the settings required to serve are present.
func (s *Settings) Validate() error {
	if s.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets.spreadsheetid is required")
	}
	if s.Sheets.ContestantsSheet == "" || s.Sheets.VotesSheet == "" {
		return fmt.Errorf("sheet table names must not be empty")
	}
	if s.Admin.Password == "" {
		return fmt.Errorf("admin.password is required")
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", s.Server.Port)
	}
	if _, err := time.LoadLocation(s.Sheets.Timezone); err != nil {
		return fmt.Errorf("invalid sheets.timezone %q: %w", s.Sheets.Timezone, err)
	}
	return nil
}
