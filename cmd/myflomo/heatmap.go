package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo/pkg/views"
)

var (
	heatmapWeeks int
	heatmapEnd   string
	statsJSON    bool
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show note activity per day",
	Long:  `Draw a calendar heatmap of notes created per day, Monday to Sunday, ending at --end (default today).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := openVault(true)
		defer closeVaults()

		end, err := parseWindowEnd(heatmapEnd, v.Location, time.Now())
		if err != nil {
			fatal("Invalid --end", err)
		}
		weeks := heatmapWeeks
		if weeks <= 0 {
			weeks = v.HeatmapWeeks
		}

		h := views.BucketForHeatmap(v.Service.List(context.Background()), end, weeks)
		fmt.Print(renderHeatmap(h))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals: notes, tags and active days",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := openVault(true)
		defer closeVaults()

		s := views.ComputeStats(v.Service.List(context.Background()), v.Location)
		if statsJSON {
			if err := json.NewEncoder(os.Stdout).Encode(s); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		fmt.Print(renderStats(s))
	},
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(statsCmd)
	heatmapCmd.Flags().IntVar(&heatmapWeeks, "weeks", 0, "Number of weeks to show (default: vault config, then 10)")
	heatmapCmd.Flags().StringVar(&heatmapEnd, "end", "", "Last day of the window, YYYY-MM-DD (default: today)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
}

// parseWindowEnd reads a YYYY-MM-DD day in loc; empty means now.
func parseWindowEnd(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if s == "" {
		return now.In(loc), nil
	}
	return time.ParseInLocation(time.DateOnly, s, loc)
}
