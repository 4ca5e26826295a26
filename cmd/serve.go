package cmd

import (
	"github.com/eisenwinter/tokenkeep/api"
	"github.com/eisenwinter/tokenkeep/api/app/meta"
	"github.com/eisenwinter/tokenkeep/metrics"
	"github.com/eisenwinter/tokenkeep/user"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCommand = cobra.Command{
	Use:   "serve",
	Short: "starts the http server",
	Long:  `Starts a http server and serves the service`,
	Run: func(cmd *cobra.Command, args []string) {
		//this is our composite root

		//setup datastore
		dataStore := mustResolveUsableDataStore()
		defer dataStore.Close()

		rdb := mustResolveRedisClient()
		if rdb != nil {
			defer rdb.Close()
		}

		var m *metrics.Metrics
		if LoadedConfig.Metrics != nil && LoadedConfig.Metrics.Enable {
			m = metrics.New()
		}

		//events dispatcher
		dispatcher := bootstrapDispatcher(dataStore.Auditor(), m)

		authority := mustResolveAuthority(resolveTokenStore(dataStore, rdb), dispatcher)
		clientService := resolveClientService(dataStore, dispatcher)
		userService := user.New(TopLevelLogger.Named("user_service"), dataStore, dispatcher)

		pingers := map[string]meta.Pinger{"sql": dataStore}
		if rdb != nil {
			pingers["redis"] = redisPinger{rdb}
		}

		server, err := api.NewServer(LoadedConfig, TopLevelLogger.Named("server"),
			authority,
			clientService,
			userService,
			m,
			rdb,
			pingers,
		)
		if err != nil {
			TopLevelLogger.Fatal("Failed to create server", zap.Error(err))
		}
		if err := server.Start(); err != nil {
			TopLevelLogger.Error("Server stopped with error", zap.Error(err))
			return
		}
		TopLevelLogger.Info("Shutdown complete")
	},
}
