package myflomo_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aretw0/myflomo"
	"github.com/aretw0/myflomo/pkg/tagindex"
	"github.com/aretw0/myflomo/pkg/views"
)

// Example_basic demonstrates how to open a vault, create notes and filter them by tag.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "myflomo-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	vault, err := myflomo.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}
	defer vault.Close()

	ctx := context.Background()
	if _, err := vault.Service.Create(ctx, "Buy milk #todo"); err != nil {
		log.Fatal(err)
	}
	if _, err := vault.Service.Create(ctx, "Call mom #todo #family"); err != nil {
		log.Fatal(err)
	}

	for _, n := range views.FilterByTag(vault.Service.List(ctx), "todo") {
		fmt.Println(n.Content)
	}
	// Output:
	// Call mom #todo #family
	// Buy milk #todo
}

// ExampleWithAdapter shows the tag cloud over an in-memory vault.
func ExampleWithAdapter() {
	vault, err := myflomo.New("", myflomo.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, text := range []string{"#read a book", "#read #write", "#write more", "#read again"} {
		if _, err := vault.Service.Create(ctx, text); err != nil {
			log.Fatal(err)
		}
	}

	for _, tc := range tagindex.Ranked(tagindex.ComputeTagCounts(vault.Service.List(ctx))) {
		fmt.Printf("%s %d\n", tc.Tag, tc.Count)
	}
	// Output:
	// read 3
	// write 2
}

// ExampleWithClock pins the clock so the heatmap is deterministic.
func ExampleWithClock() {
	day := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	vault, err := myflomo.New("",
		myflomo.WithAdapter("memory"),
		myflomo.WithClock(func() time.Time { return day }),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := vault.Service.Create(ctx, "first note"); err != nil {
		log.Fatal(err)
	}

	h := views.BucketForHeatmap(vault.Service.List(ctx), day, views.DefaultHeatmapWeeks)
	fmt.Println(h.Total(), views.Level(h.Columns[9][2].Count))
	// Output:
	// 1 1
}
