package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var auditLimit int

var auditCommand = cobra.Command{
	Use:   "audit",
	Short: "Shows the latest audit log entries",
	Long:  `Shows the latest audit log entries, newest first`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		defer dataStore.Close()
		entries, err := dataStore.AuditLog(cmd.Context(), auditLimit)
		if err != nil {
			fmt.Printf("Unable to load audit log: %s\r\n", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\r\n", "ID", "Event", "Created", "Payload")
		for _, v := range entries {
			fmt.Fprintf(
				w,
				"%d\t%s\t%s\t%v\r\n",
				v.ID,
				v.EventType,
				v.CreatedAt.Format("2006-01-02 15:04:05"),
				v.Event,
			)
		}
		w.Flush()
	},
}

func init() {
	auditCommand.Flags().IntVarP(&auditLimit, "limit", "l", 50, "amount of entries to show")
}
