package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/advisor"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/scoring"
)

var (
	briefPrice float64
	briefYears int
)

var briefCmd = &cobra.Command{
	Use:   "brief <zone>",
	Short: "Draft an investment brief for a property offer",
	Long: `Runs the analysis and ROI projection, then drafts a short plain-language
brief. With advisor.api_key configured the brief is written by a Claude
model pinned to the computed figures; without one a deterministic template
is used.

Example:
  naijaprop brief Ajah --price 45000000 --years 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}

		repo, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		engine, err := newEngine(repo)
		if err != nil {
			return err
		}

		analysis, err := engine.AnalyzeProperty(ctx, args[0], briefPrice, "")
		if err != nil {
			return describeLookupErr(err)
		}
		proj, err := engine.CalculateROI(ctx, args[0], briefPrice, briefYears)
		if err != nil {
			return err
		}

		var opts []advisor.Option
		if cfg.Advisor.APIKey != "" {
			opts = append(opts, advisor.WithClient(advisor.NewClient(cfg.Advisor.APIKey)))
		}
		adv := advisor.New(cfg.Advisor.Model, int64(cfg.Advisor.MaxTokens), opts...)

		brief, err := adv.Draft(ctx, analysis, proj)
		if err != nil {
			return err
		}

		fmt.Println(brief.Text)
		if brief.Source == advisor.SourceModel {
			fmt.Printf("\n— drafted by %s\n", brief.Model)
		}
		return nil
	},
}

func init() {
	f := briefCmd.Flags()
	f.Float64Var(&briefPrice, "price", 0, "offered price in naira (required)")
	f.IntVar(&briefYears, "years", scoring.DefaultHoldingYears, "ROI holding period in years")
	_ = briefCmd.MarkFlagRequired("price")

	rootCmd.AddCommand(briefCmd)
}
