package cmd

import (
	"github.com/spf13/cobra"
)

var clientCommand = cobra.Command{
	Use:   "client",
	Short: "client commands",
	Long:  `this section harbors the commands to manage the clients tokens are issued to`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
