package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/eisenwinter/tokenkeep/db"
	"github.com/spf13/cobra"
)

var listClientsQuery string

var listClientsCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all clients",
	Long:  `This will list all clients, optionally filtered by a fiql query (e.g. name==backend*)`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		defer dataStore.Close()
		dispatcher := bootstrapDispatcher(dataStore.Auditor(), nil)
		service := resolveClientService(dataStore, dispatcher)
		lst, err := service.List(cmd.Context(), db.ListOptions{Query: listClientsQuery})
		if err != nil {
			fmt.Printf("Unable to load clients: %s\r\n", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s \r\n",
			"ID",
			"ClientID",
			"Name",
			"Scope",
			"HasSecret",
			"Created",
			"Retired",
		)
		for _, v := range lst {
			retired := "-"
			if v.IsRetired() {
				retired = v.RetiredOn().Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(
				w,
				"%d\t%s\t%s\t%s\t%v\t%s\t%s \r\n",
				v.ID(),
				v.ClientID(),
				v.Name(),
				strings.Join(v.Scopes(), " "),
				v.HasSecret(),
				v.CreatedAt().Format("2006-01-02 15:04:05"),
				retired,
			)
		}

		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded\r\n", len(lst))
		w.Flush()
	},
}

func init() {
	listClientsCommand.Flags().StringVarP(&listClientsQuery, "query", "q", "", "fiql filter")
}
