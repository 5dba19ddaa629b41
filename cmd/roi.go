package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/report"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/scoring"
)

var (
	roiPrice  float64
	roiYears  int
	roiSave   bool
	roiFormat string
)

var roiCmd = &cobra.Command{
	Use:   "roi <zone>",
	Short: "Project holding-period returns for a purchase",
	Long: `Simulates rental income, linear capital appreciation and hidden costs
(one-time plus recurring) over the holding period, and reports net return,
ROI percentage and liquidity.

Examples:
  naijaprop roi Ajah --price 45000000
  naijaprop roi Gwarinpa --price 60000000 --years 10 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		if roiFormat != "table" && roiFormat != "json" {
			return eris.Errorf("roi: --format must be table or json (got %q)", roiFormat)
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

		proj, err := engine.CalculateROI(ctx, args[0], roiPrice, roiYears)
		if err != nil {
			return describeLookupErr(err)
		}

		if roiSave {
			detail, _ := json.Marshal(proj)
			saveAssessment(ctx, repo, &model.Assessment{
				Kind:         model.AssessmentROI,
				Zone:         proj.Zone,
				Price:        proj.Price,
				HoldingYears: proj.HoldingYears,
				Score:        proj.ROIPercent,
				Verdict:      string(proj.Verdict),
				Detail:       detail,
			})
		}

		if roiFormat == "json" {
			return printJSON(proj)
		}
		printROI(proj)
		return nil
	},
}

func init() {
	f := roiCmd.Flags()
	f.Float64Var(&roiPrice, "price", 0, "purchase price in naira (required)")
	f.IntVar(&roiYears, "years", scoring.DefaultHoldingYears, "holding period in years")
	f.BoolVar(&roiSave, "save", false, "save the result to assessment history")
	f.StringVar(&roiFormat, "format", "table", "output format: table or json")
	_ = roiCmd.MarkFlagRequired("price")

	rootCmd.AddCommand(roiCmd)
}

func printROI(p *model.ROIProjection) {
	fmt.Printf("%s (%s) — %s over %d years\n\n", p.Zone, p.Location, report.Naira(p.Price), p.HoldingYears)

	fmt.Println("Income")
	fmt.Printf("  Rental (%.1f%% yield)   %s/year, %s total\n",
		p.RentalYield*100, report.Naira(p.AnnualRental), report.Naira(p.TotalRental))
	fmt.Printf("  Capital gain (%.0f%%)    %s\n", p.AppreciationTotal*100, report.Naira(p.CapitalGain))
	fmt.Printf("  Gross return           %s\n\n", report.Naira(p.GrossReturn))

	fmt.Println("Hidden costs")
	fmt.Printf("  One-time               %s\n", report.Naira(p.OneTimeCosts))
	fmt.Printf("  Generator              %s/year\n", report.Naira(p.GeneratorAnnual))
	fmt.Printf("  Flood insurance        %s/year\n", report.Naira(p.InsuranceAnnual))
	if p.OtherAnnual > 0 {
		fmt.Printf("  Other recurring        %s/year\n", report.Naira(p.OtherAnnual))
	}
	fmt.Printf("  Total over %d years     %s\n\n", p.HoldingYears, report.Naira(p.TotalHiddenCosts))

	fmt.Printf("Net return: %s  ROI: %.2f%%  (%.2f%%/year annualized)\n",
		report.Naira(p.NetReturn), p.ROIPercent, p.AnnualizedROI)
	fmt.Printf("Verdict: %s — %s\n", p.Verdict, p.Recommendation)
	fmt.Printf("Liquidity: %s (avg %d days to sell, demand %s)\n",
		p.Liquidity, p.DaysToSell, orDash(p.DemandLevel))
}
