package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "naijaprop",
	Short: "Nigerian property risk and corridor intelligence",
	Long: "Scores properties against a locality-risk database (flood, security,\n" +
		"infrastructure), projects multi-year ROI including hidden costs, and finds\n" +
		"zones along a commute corridor between two points.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
