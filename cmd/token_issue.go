package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/eisenwinter/tokenkeep/tokens"
	"github.com/spf13/cobra"
)

var tokenIssueScope string

var tokenIssueCommand = cobra.Command{
	Use:   "issue",
	Short: "issues a token to the command line, mainly used for testing",
	Long: `issues an access token for the given client, without authenticating the client.
	The user id defaults to the client id.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errors.New("token issue (client_id) [user_id] - requires a client_id")
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
		clients := resolveClientService(dataStore, dispatcher)

		c, err := clients.ClientByClientID(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Unable to load client %s: %s\r\n", args[0], err)
			os.Exit(1)
			return
		}
		if c.IsRetired() {
			fmt.Printf("Client %s is retired\r\n", args[0])
			os.Exit(1)
			return
		}
		if !c.AreScopesCovered(tokenIssueScope) {
			fmt.Printf("Client %s is not allowed the scope %q\r\n", args[0], tokenIssueScope)
			os.Exit(1)
			return
		}
		scope := tokenIssueScope
		if scope == "" {
			scope = strings.Join(c.Scopes(), " ")
		}
		userID := c.ClientID()
		if len(args) > 1 && args[1] != "" {
			userID = args[1]
		}

		authority := mustResolveAuthority(resolveTokenStore(dataStore, rdb), dispatcher)
		t, err := authority.Issue(cmd.Context(), tokens.IssueRequest{
			ClientID:  c.ClientID(),
			UserID:    userID,
			Scopes:    scope,
			GrantType: tokens.GrantCommandLine,
		})
		if err != nil {
			fmt.Printf("Unable to issue token: %s\r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("access_token:  %s\r\n", t.AccessToken)
		if t.RefreshToken != nil {
			fmt.Printf("refresh_token: %s\r\n", *t.RefreshToken)
		}
		fmt.Printf("token_type:    %s\r\n", t.TokenType)
		fmt.Printf("expires_at:    %s\r\n", t.ExpiresAt.Format("2006-01-02 15:04:05"))
	},
}

func init() {
	tokenIssueCommand.Flags().StringVarP(&tokenIssueScope, "scope", "o", "", "requested scopes separated by spaces, defaults to all client scopes")
}
