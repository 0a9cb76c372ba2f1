package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo"
)

var (
	verbose  bool
	vaultDir string
	adapter  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "myflomo",
	Short: "Quick notes with #tags, searchable and local-first",
	Long: `MyFlomo keeps short notes in a local vault.
Tags are written inline as #tag, notes can embed images, and the whole
collection can be exported to a single JSON backup.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&vaultDir, "dir", "d", "", "Vault directory (default: nearest vault above the working directory)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite or memory (default: vault config, then fs)")
}

// resolveDir picks the vault: --dir, else the nearest vault root, else the
// working directory.
func resolveDir() string {
	if vaultDir != "" {
		return vaultDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}
	if root, err := myflomo.FindVaultRoot(cwd); err == nil {
		return root
	}
	return cwd
}

// openVault opens the vault or exits. Read-only vaults never write.
func openVault(readOnly bool) *myflomo.Vault {
	v, err := myflomo.New(resolveDir(),
		myflomo.WithAdapter(adapter),
		myflomo.WithReadOnly(readOnly),
		myflomo.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("Failed to open vault", err)
	}
	return trackVault(v)
}

// openVaults are the vaults the running command holds. fatal releases them
// too, since os.Exit skips deferred calls.
var openVaults []*myflomo.Vault

func trackVault(v *myflomo.Vault) *myflomo.Vault {
	openVaults = append(openVaults, v)
	return v
}

// closeVaults closes every tracked vault. Calling it again is a no-op.
func closeVaults() {
	for _, v := range openVaults {
		if err := v.Close(); err != nil {
			slog.Warn("failed to close vault", "path", v.Path, "error", err)
		}
	}
	openVaults = nil
}
