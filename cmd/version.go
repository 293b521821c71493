package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sqlite-tools %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
