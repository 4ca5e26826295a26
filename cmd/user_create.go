package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/eisenwinter/tokenkeep/user"
	"github.com/spf13/cobra"
)

var userCreateCommand = cobra.Command{
	Use:   "create",
	Short: "launches a on terminal user creation dialog",
	Long:  `this command may be used to register a user from command line`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		defer dataStore.Close()
		dispatcher := bootstrapDispatcher(dataStore.Auditor(), nil)
		reader := bufio.NewReader(os.Stdin)

		ask := func(question string) string {
			fmt.Println(question)
			answer, err := reader.ReadString('\n')
			if err != nil {
				fmt.Printf("Unable to read %s: %s\r\n", question, err)
				os.Exit(1)
			}
			return strings.Trim(answer, " \t\r\n")
		}

		nu := user.NewUser{
			FirstName:   ask("first name?"),
			LastName:    ask("last name?"),
			Email:       ask("email?"),
			PhoneNumber: ask("phone number?"),
			Address:     ask("address?"),
		}

		us := user.New(TopLevelLogger.Named("user_service"), dataStore, dispatcher)
		created, err := us.Create(cmd.Context(), nu)
		if err != nil {
			fmt.Printf("Unable to create user: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Created user for email %s with id: %d\r\n", created.Email, created.ID)
	},
}
