package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo/pkg/core"
)

var addCmd = &cobra.Command{
	Use:   "add [content...]",
	Short: "Create a note",
	Long:  `Create a note from the arguments, or from stdin when no argument is given. Inline #tags are extracted.`,
	Run: func(cmd *cobra.Command, args []string) {
		text := readContent(args)

		v := openVault(false)
		defer closeVaults()

		n, err := v.Service.Create(context.Background(), text)
		if errors.Is(err, core.ErrValidation) {
			fatal("Nothing to save", err)
		}
		if err != nil {
			fatal("Failed to create note", err)
		}

		fmt.Println(n.ID)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id> [content...]",
	Short: "Replace the content of a note",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := readContent(args[1:])

		v := openVault(false)
		defer closeVaults()

		id := resolveID(v.Service, args[0])
		n, found, err := v.Service.Update(context.Background(), id, text)
		if err != nil {
			fatal("Failed to update note", err)
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Note %q not found, nothing changed.\n", args[0])
			return
		}

		fmt.Printf("Note '%s' updated.\n", n.ID)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v := openVault(false)
		defer closeVaults()

		id := resolveID(v.Service, args[0])
		removed, err := v.Service.Delete(context.Background(), id)
		if err != nil {
			fatal("Failed to delete note", err)
		}
		if !removed {
			fmt.Fprintf(os.Stderr, "Note %q not found.\n", args[0])
			return
		}

		fmt.Printf("Note '%s' deleted.\n", id)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
}

// readContent joins args, falling back to stdin when there are none.
func readContent(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("Failed to read stdin", err)
	}
	return strings.TrimRight(string(data), "\n")
}

// resolveID expands a unique id prefix (as printed by list) to the full id.
// Ambiguous or unknown prefixes are returned unchanged.
func resolveID(svc *core.Service, prefix string) string {
	if _, ok := svc.Get(context.Background(), prefix); ok {
		return prefix
	}
	return matchIDPrefix(svc.List(context.Background()), prefix)
}

func matchIDPrefix(notes []core.Note, prefix string) string {
	match := ""
	for _, n := range notes {
		if strings.HasPrefix(n.ID, prefix) {
			if match != "" {
				return prefix
			}
			match = n.ID
		}
	}
	if match == "" {
		return prefix
	}
	return match
}
