package main

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo/pkg/core"
)

var imageNote string

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage embedded images",
}

var imageAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Store an image and print its markdown reference",
	Long: `Store an image in the vault and print the ![image](local-image://...) markdown
to paste into a note. With --note, the markdown is appended to that note instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := readInput(args[0])
		if err != nil {
			fatal("Failed to read image", err)
		}

		v := openVault(false)
		defer closeVaults()
		ctx := context.Background()

		ref, err := v.Service.AddImage(ctx, detectMimeType(args[0], data), data)
		if err != nil {
			fatal("Failed to add image", err)
		}
		markdown := core.ImageMarkdown(ref)

		if imageNote == "" {
			fmt.Println(markdown)
			return
		}

		id := resolveID(v.Service, imageNote)
		n, ok := v.Service.Get(ctx, id)
		if !ok {
			fatal("Failed to attach image", fmt.Errorf("note %q not found", imageNote))
		}
		if _, _, err := v.Service.Update(ctx, id, n.Content+"\n"+markdown); err != nil {
			fatal("Failed to attach image", err)
		}
		fmt.Printf("Image %s attached to note '%s'.\n", ref, id)
	},
}

var imageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored image references",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := openVault(true)
		defer closeVaults()

		images := v.Service.Images()
		for _, ref := range slices.Sorted(maps.Keys(images)) {
			fmt.Printf("%s  %s\n", ref, dataURLMime(images[ref]))
		}
	},
}

var imageOrphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List images no note references any more",
	Long:  `List stored images that no note references. They are kept; nothing is deleted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := openVault(true)
		defer closeVaults()

		for _, ref := range v.Service.OrphanedImages() {
			fmt.Println(ref)
		}
	},
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageAddCmd)
	imageCmd.AddCommand(imageListCmd)
	imageCmd.AddCommand(imageOrphansCmd)
	imageAddCmd.Flags().StringVar(&imageNote, "note", "", "Append the image to this note")
}

// detectMimeType sniffs data; stdin input has no name to fall back on.
func detectMimeType(name string, data []byte) string {
	mime := http.DetectContentType(data)
	if strings.HasPrefix(mime, "image/") || name == "-" {
		return mime
	}
	// svg sniffs as text/xml
	if strings.HasSuffix(strings.ToLower(name), ".svg") {
		return "image/svg+xml"
	}
	return mime
}

// dataURLMime extracts the media type from data:<mime>;base64,...
func dataURLMime(url string) string {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "unknown"
	}
	mime, _, _ := strings.Cut(rest, ";")
	return mime
}
