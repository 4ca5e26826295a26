package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set through ldflags
var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

var versionCommand = cobra.Command{
	Use:   "version",
	Short: "prints the version",
	Long:  `prints version and build information`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tokenkeep %s, built %s from %s (%s)\r\n", Version, BuildTime, GitCommit, GitRef)
	},
}
