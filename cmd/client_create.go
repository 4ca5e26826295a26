package cmd

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/eisenwinter/tokenkeep/client"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var clientCreateSecret string
var clientCreateName string
var clientCreateScopes string
var clientCreatePublic bool
var clientCreateSkipIfExists bool

var createClientCommand = cobra.Command{
	Use:   "create",
	Short: "Creates a new client",
	Long: `this command can be used to create a new client,
	the secret is prompted for if not supplied and the client is not public`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errors.New("client create (client_id) - requires a client_id")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		defer dataStore.Close()
		dispatcher := bootstrapDispatcher(dataStore.Auditor(), nil)
		service := resolveClientService(dataStore, dispatcher)

		secret := clientCreateSecret
		if secret == "" && !clientCreatePublic {
			fmt.Println("secret?")
			pwd, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				fmt.Printf("Unable to read secret: %s\r\n", err)
				os.Exit(1)
				return
			}
			secret = string(pwd)
			if secret == "" {
				fmt.Println("an empty secret is only allowed for public clients (--public)")
				os.Exit(1)
				return
			}
		}

		fmt.Printf("Creating client with client_id: %s\r\n", args[0])
		c, err := service.Create(cmd.Context(),
			args[0],
			secret,
			clientCreateName,
			clientCreateScopes)
		if err != nil {
			fmt.Printf("Could not create new client: %s\r\n", err)
			if clientCreateSkipIfExists && errors.Is(err, client.ErrClientIDExists) {
				return
			}
			os.Exit(1)
			return
		}
		fmt.Printf("Created new client with internal id: %d\r\n", c.ID())
	},
}

func init() {
	createClientCommand.Flags().StringVarP(&clientCreateSecret, "secret", "s", "", "the client secret")
	createClientCommand.Flags().StringVarP(&clientCreateName, "name", "n", "", "the name of the client, defaults to the client_id")
	createClientCommand.Flags().StringVarP(&clientCreateScopes, "scope", "o", "", "client scopes separated by spaces")
	createClientCommand.Flags().BoolVarP(&clientCreatePublic, "public", "p", false, "creates a client without secret, public clients can only refresh tokens")
	createClientCommand.Flags().BoolVarP(&clientCreateSkipIfExists, "skip-if-exists", "k", false, "skips creation if client_id already exists and returns no error code")
}
