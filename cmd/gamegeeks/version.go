package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamegeeks/gamegeeks"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the Game Geeks API version and current commit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Game Geeks API overview")
		fmt.Printf("Version: %s\nCommit: %s\n", gamegeeks.Version, gamegeeks.Commit)
	},
}
