// defaults.go: default configuration values
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaultConfig sets the default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	// Server defaults
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.frontenddir", "frontend")
	viper.SetDefault("server.debug", false)
	viper.SetDefault("server.cors.enabled", true)
	viper.SetDefault("server.cors.origins", []string{"*"})
	viper.SetDefault("server.ratelimit.enabled", true)
	viper.SetDefault("server.ratelimit.requestsperminute", 100)
	viper.SetDefault("server.ratelimit.burst", 20)

	// Sheets defaults
	viper.SetDefault("sheets.spreadsheetid", "")
	viper.SetDefault("sheets.credentialsfile", "credentials.json")
	viper.SetDefault("sheets.credentialsjson", "")
	viper.SetDefault("sheets.contestantssheet", "Contestants")
	viper.SetDefault("sheets.votessheet", "Votes")
	viper.SetDefault("sheets.timezone", "Asia/Manila")

	// Admin defaults
	viper.SetDefault("admin.password", "")
	viper.SetDefault("admin.tokenttl", 12*time.Hour)

	// Ballot defaults
	viper.SetDefault("ballot.requireguardian", true)
}
