package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkravets/citecheck/internal/pipeline"
)

// cacheCmd groups cache maintenance commands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the resolution cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached resolution and URL probe",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig()
		if err != nil {
			return err
		}
		p, err := pipeline.New(cfg)
		if err != nil {
			return fmt.Errorf("initialize pipeline: %w", err)
		}
		if err := p.ClearCache(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("✓ Cache cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
