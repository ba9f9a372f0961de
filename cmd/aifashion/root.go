// Command aifashion analyzes skin tone from face photos and ranks
// product candidates against curated color palettes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	service "github.com/TaddsTechnology/Ai-Fashion/internal/app"
	"github.com/TaddsTechnology/Ai-Fashion/internal/config"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/logger"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "aifashion",
	Short: "Skin-tone analysis and color-aware product ranking",
	Long: `aifashion estimates a person's skin tone from a face photo, places it
on the 10-step Monk scale, and ranks outfit or makeup candidates by how
well they suit that tone.

Configuration is layered: built-in defaults, then an optional YAML file
named by AIFASHION_CONFIG, then AIFASHION_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		if err := logger.Init(); err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		if err := logger.SetLevelString(cfg.LogLevel); err != nil {
			return err
		}
		svc, err = service.New(cfg)
		return err
	},
}

// svc is built once in the root PersistentPreRunE and shared by subcommands.
var svc *service.Service

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
}
