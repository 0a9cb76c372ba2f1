package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/myflomo"
	"github.com/aretw0/myflomo/pkg/tagindex"
	"github.com/aretw0/myflomo/pkg/views"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	adapter := flag.String("adapter", "fs", "Storage adapter to benchmark (fs, sqlite, memory)")
	keep := flag.Bool("keep", false, "Keep the benchmark vault after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "myflomo_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	vault, err := myflomo.New(benchDir, myflomo.WithAdapter(*adapter), myflomo.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	// Every create rewrites the whole collection, so this grows quadratically.
	fmt.Printf("Creating %d notes with the %s adapter in %s...\n", *count, *adapter, benchDir)
	startGen := time.Now()
	for i := range *count {
		text := fmt.Sprintf("Benchmark note %d #bench #group%d", i, i%10)
		if _, err := vault.Service.Create(ctx, text); err != nil {
			panic(err)
		}
	}
	genDuration := time.Since(startGen)
	_ = vault.Close()

	// Reopen to measure a cold start, as a new CLI invocation would.
	startOpen := time.Now()
	reopened, err := myflomo.New(benchDir, myflomo.WithAdapter(*adapter), myflomo.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	defer reopened.Close()
	openDuration := time.Since(startOpen)

	notes := reopened.Service.List(ctx)

	startQuery := time.Now()
	matched := views.Query{Tag: "group3", Search: "note", Sort: views.SortOption{Key: views.ByUpdated, Direction: views.Asc}}.Apply(notes)
	ranked := tagindex.Ranked(tagindex.ComputeTagCounts(notes))
	heatmap := views.BucketForHeatmap(notes, time.Now(), views.DefaultHeatmapWeeks)
	queryDuration := time.Since(startQuery)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %s):\n", len(notes), *adapter)
	fmt.Printf("  Create:    %v (%v/note)\n", genDuration, genDuration/time.Duration(max(*count, 1)))
	fmt.Printf("  Rehydrate: %v\n", openDuration)
	fmt.Printf("  Views:     %v (matched %d, tags %d, heatmap %d)\n", queryDuration, len(matched), len(ranked), heatmap.Total())
	fmt.Printf("--------------------------------------------------\n")
}
