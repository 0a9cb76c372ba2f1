package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/myflomo"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a vault",
	Long: `Initialize a new vault in --dir or the current directory.
It writes .myflomo/config.yaml and seeds the store with a welcome note.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir := vaultDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				fatal("Failed to get CWD", err)
			}
			dir = cwd
		}

		cfg, err := myflomo.LoadConfig(dir)
		if err != nil {
			fatal("Failed to read existing config", err)
		}
		if adapter != "" {
			cfg.Adapter = adapter
		}
		if cfg.WelcomeNote == nil {
			on := true
			cfg.WelcomeNote = &on
		}

		v, err := myflomo.New(dir,
			myflomo.WithAdapter(cfg.Adapter),
			myflomo.WithWelcomeNote(*cfg.WelcomeNote),
			myflomo.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize vault", err)
		}
		trackVault(v)
		defer closeVaults()

		if err := myflomo.WriteConfig(v.Path, cfg); err != nil {
			fatal("Failed to write config", err)
		}

		fmt.Println("Initialized MyFlomo vault in", v.Path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
