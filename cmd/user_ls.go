package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/user"
	"github.com/spf13/cobra"
)

var listUsersQuery string
var listUsersSort string

var listUsersCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all users",
	Long:  `This will list all users, optionally filtered by a fiql query (e.g. l_name==Love*)`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		defer dataStore.Close()
		dispatcher := bootstrapDispatcher(dataStore.Auditor(), nil)
		service := user.New(TopLevelLogger.Named("user_service"), dataStore, dispatcher)
		lst, err := service.List(cmd.Context(), db.ListOptions{Query: listUsersQuery, Sort: listUsersSort})
		if err != nil {
			fmt.Printf("Unable to load users: %s\r\n", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\r\n",
			"ID",
			"FirstName",
			"LastName",
			"Email",
			"Phone",
			"Address",
			"Created",
		)
		for _, v := range lst {
			fmt.Fprintf(
				w,
				"%d\t%s\t%s\t%s\t%s\t%s\t%s \r\n",
				v.ID,
				v.FirstName,
				v.LastName,
				v.Email,
				v.PhoneNumber,
				v.Address,
				v.CreatedDate.Format("2006-01-02 15:04:05"),
			)
		}

		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded\r\n", len(lst))
		w.Flush()
	},
}

func init() {
	listUsersCommand.Flags().StringVarP(&listUsersQuery, "query", "q", "", "fiql filter")
	listUsersCommand.Flags().StringVarP(&listUsersSort, "sort", "s", "", "sort expression, e.g. -created_date")
}
