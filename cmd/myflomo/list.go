package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo/pkg/views"
)

var (
	listJSON    bool
	filterTag   string
	filterGlob  string
	searchQuery string
	sortOption  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List notes, newest first by default.
Filters combine: --tag or --tag-glob first, then --search. Sort options: ` + sortIDs(),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		order, err := views.ParseSortOption(sortOption)
		if err != nil {
			fatal("Invalid --sort", err)
		}

		v := openVault(true)
		defer closeVaults()

		notes := views.Query{
			Tag:        filterTag,
			TagPattern: filterGlob,
			Search:     searchQuery,
			Sort:       order,
		}.Apply(v.Service.List(context.Background()))

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, n := range notes {
			fmt.Println(renderNoteLine(n, v.Location))
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v := openVault(true)
		defer closeVaults()

		n, ok := v.Service.Get(context.Background(), resolveID(v.Service, args[0]))
		if !ok {
			fatal("Failed to show note", fmt.Errorf("note %q not found", args[0]))
		}
		fmt.Print(renderNote(n, v.Location))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter notes by tag (without #)")
	listCmd.Flags().StringVar(&filterGlob, "tag-glob", "", "Filter notes by tag glob, e.g. 'work/**'")
	listCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "Case-insensitive search in content and tags")
	listCmd.Flags().StringVar(&sortOption, "sort", views.DefaultSort.String(), "Sort order")
}

func sortIDs() string {
	ids := make([]string, 0, 4)
	for _, o := range views.SortOptions() {
		ids = append(ids, o.String())
	}
	return strings.Join(ids, ", ")
}
