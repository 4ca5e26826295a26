package cmd

import (
	"fmt"
	"os"

	"github.com/eisenwinter/tokenkeep/generator"
	"github.com/spf13/cobra"
)

var keySize int32 = 32

var keyCommand = cobra.Command{
	Use:   "random-key",
	Short: "generates a random key",
	Long:  `generates a cryptographic secure random key, usable as client secret`,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := generator.New().CreateSecureTokenWithSize(int(keySize))
		if err != nil {
			fmt.Printf("Unable to generate key: %s\r\n", err)
			os.Exit(1)
			return
		}
		fmt.Println(key)
	},
}

func init() {
	keyCommand.Flags().Int32VarP(&keySize, "size", "s", 64, "sets key size in bytes")
}
