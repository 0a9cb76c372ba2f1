package main

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo/pkg/content"
)

var copyPlain bool

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a note to the clipboard",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v := openVault(true)
		defer closeVaults()

		n, ok := v.Service.Get(context.Background(), resolveID(v.Service, args[0]))
		if !ok {
			fatal("Failed to copy note", fmt.Errorf("note %q not found", args[0]))
		}

		text := n.Content
		if copyPlain {
			text = content.StripTags(text)
		}
		if err := clipboard.WriteAll(text); err != nil {
			fatal("Failed to write clipboard", err)
		}

		fmt.Printf("Copied %d characters.\n", content.CountCharacters(text))
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().BoolVar(&copyPlain, "plain", false, "Strip #tags before copying")
}
