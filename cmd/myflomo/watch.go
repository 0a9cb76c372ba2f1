package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/aretw0/myflomo/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes made to the vault by other processes",
	Long: `Print a line whenever another process (a sync tool, an editor, another
myflomo) changes the vault, reloading the store each time. Stop with Ctrl+C.
Only the fs adapter supports watching.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		v := openVault(true)
		defer closeVaults()

		events, err := v.Service.Watch(ctx)
		if err != nil {
			fatal("Failed to watch vault", err)
		}

		source := lifecycleadapter.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Fprintf(os.Stderr, "Watching %s (%d notes)...\n", v.Path, len(v.Service.List(ctx)))
		for e := range source.Events() {
			fmt.Printf("%s %s -> %d notes\n", time.Now().Format(time.TimeOnly), e, len(v.Service.List(ctx)))
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
