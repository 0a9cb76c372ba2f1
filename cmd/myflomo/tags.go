package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo/pkg/tagindex"
)

var tagsJSON bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show the tag cloud",
	Long:  `Show every tag in use with the number of notes carrying it, most used first.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := openVault(true)
		defer closeVaults()

		ranked := tagindex.Ranked(tagindex.ComputeTagCounts(v.Service.List(context.Background())))
		if tagsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(ranked); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		fmt.Print(renderTagCloud(ranked))
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Autocomplete a tag",
	Long:  `Print known tags matching prefix, tags starting with it first. Known tags include tags no longer in use.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		v := openVault(true)
		defer closeVaults()

		for _, tag := range tagindex.Suggest(trimHash(prefix), v.Service.KnownTags()) {
			fmt.Println(tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(suggestCmd)
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "Output in JSON format")
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}
