package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvgcolleges/voting-go/cmd/serve"
	"github.com/mvgcolleges/voting-go/internal/conf"
)

// Execute loads the configuration and runs the root command.
func Execute() error {
	settings, err := conf.Load()
	if err != nil {
		return err
	}
	return RootCommand(settings).Execute()
}

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voting-go",
		Short: "Sheets-backed voting service",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(serve.Command(settings))

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().IntVarP(&settings.Server.Port, "port", "p", viper.GetInt("server.port"), "Port to listen on")
	rootCmd.PersistentFlags().StringVar(&settings.Sheets.SpreadsheetID, "spreadsheet", viper.GetString("sheets.spreadsheetid"), "Google Sheets spreadsheet id")
}
