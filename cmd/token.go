package cmd

import (
	"github.com/spf13/cobra"
)

var tokenCommand = cobra.Command{
	Use:   "token",
	Short: "token commands",
	Long:  `issue and check access tokens from the command line, mainly used for testing`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
