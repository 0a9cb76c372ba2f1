package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of myflomo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("myflomo version %s\n", strings.TrimSpace(myflomo.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
