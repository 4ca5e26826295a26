package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var retireClientCommand = cobra.Command{
	Use:   "retire",
	Short: "Retires a client (no tokens will be issued to it anymore)",
	Long: `This command retires a client, it will be unable to authenticate on the token endpoint.
	Tokens already issued stay valid until they expire.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errors.New("client retire (client_id) - requires a client_id")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		defer dataStore.Close()
		dispatcher := bootstrapDispatcher(dataStore.Auditor(), nil)
		service := resolveClientService(dataStore, dispatcher)
		err := service.Retire(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Unable to retire client: %s\r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Client %s has been retired\r\n", args[0])
	},
}
