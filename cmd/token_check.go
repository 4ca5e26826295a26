package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tokenCheckCommand = cobra.Command{
	Use:   "check",
	Short: "checks if an access token is currently valid",
	Long:  `checks if an access token is known and not expired, exits with 1 otherwise`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errors.New("token check (access_token) - requires an access token")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		defer dataStore.Close()
		rdb := mustResolveRedisClient()
		if rdb != nil {
			defer rdb.Close()
		}
		dispatcher := bootstrapDispatcher(dataStore.Auditor(), nil)
		authority := mustResolveAuthority(resolveTokenStore(dataStore, rdb), dispatcher)

		valid, err := authority.Validate(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Unable to check token: %s\r\n", err)
			os.Exit(1)
			return
		}
		if !valid {
			fmt.Println("invalid")
			os.Exit(1)
			return
		}
		fmt.Println("valid")
	},
}
