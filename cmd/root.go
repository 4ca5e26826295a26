package cmd

import (
	"fmt"
	"os"

	"github.com/eisenwinter/tokenkeep/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConfigFileLocation is of the config to load
var ConfigFileLocation string

// TopLevelLogger is the logger all loggers come from
var TopLevelLogger *zap.Logger

// LoadedConfig is the currently loaded configuration after initial bootstrapping
var LoadedConfig *config.Configuration

var rootCommand = cobra.Command{
	Use:   "tokenkeep",
	Short: "tokenkeep a user registration and access token service",
	Long: `tokenkeep issues opaque access tokens to registered clients
	and guards a small user registry behind them`,
	Run: func(cmd *cobra.Command, args []string) {
		serveCommand.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {

	rootCommand.PersistentFlags().
		StringVar(&ConfigFileLocation, "config", "", "config file to be used")

	clientCommand.AddCommand(&createClientCommand)
	clientCommand.AddCommand(&listClientsCommand)
	clientCommand.AddCommand(&retireClientCommand)

	userCommand.AddCommand(&userCreateCommand)
	userCommand.AddCommand(&listUsersCommand)

	tokenCommand.AddCommand(&tokenIssueCommand)
	tokenCommand.AddCommand(&tokenCheckCommand)

	rootCommand.AddCommand(&clientCommand)
	rootCommand.AddCommand(&userCommand)
	rootCommand.AddCommand(&tokenCommand)
	rootCommand.AddCommand(&auditCommand)
	rootCommand.AddCommand(&serveCommand)
	rootCommand.AddCommand(&keyCommand)
	rootCommand.AddCommand(&versionCommand)
}
