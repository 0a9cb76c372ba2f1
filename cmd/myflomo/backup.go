package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo/pkg/core"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every note and image to a JSON backup",
	Long:  `Write a backup to --out, "-" for stdout, or myflomo-backup-<date>.json in the working directory.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := openVault(true)
		defer closeVaults()

		backup := v.Service.Export(context.Background())

		if exportOut == "-" {
			if _, err := backup.WriteTo(os.Stdout); err != nil {
				fatal("Failed to write backup", err)
			}
			return
		}

		out := exportOut
		if out == "" {
			out = core.BackupFileName(time.Now())
		}

		var buf bytes.Buffer
		if _, err := backup.WriteTo(&buf); err != nil {
			fatal("Failed to encode backup", err)
		}
		if err := atomic.WriteFile(out, &buf); err != nil {
			fatal("Failed to write backup", err)
		}

		fmt.Printf("Exported %d notes and %d images to %s\n", len(backup.Notes), len(backup.Images), out)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all notes and images with a backup",
	Long: `Replace the whole collection with the contents of a backup written by export.
The file is validated first; on any error nothing changes. Use "-" to read stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := readInput(args[0])
		if err != nil {
			fatal("Failed to read backup", err)
		}

		v := openVault(false)
		defer closeVaults()

		backup, err := v.Service.Import(context.Background(), data)
		if err != nil {
			fatal("Import aborted", err)
		}

		fmt.Printf("Imported %d notes and %d images.\n", len(backup.Notes), len(backup.Images))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file")
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
