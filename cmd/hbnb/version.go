package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/hbnb"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hbnb",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hbnb version %s\n", strings.TrimSpace(hbnb.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
