package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/report"
)

var (
	analyzePrice  float64
	analyzeType   string
	analyzeSave   bool
	analyzeFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <zone>",
	Short: "Score a property offer against a zone's risk profile",
	Long: `Computes the weighted smart score (flood safety 40%, security 30%,
infrastructure 30%), classifies the offered price against the zone's typical
range, and itemizes one-time hidden costs.

Examples:
  naijaprop analyze Ajah --price 45000000
  naijaprop analyze "lekki" --price 120000000 --type duplex --format json
  naijaprop analyze Surulere --price 50000000 --save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		if analyzeFormat != "table" && analyzeFormat != "json" {
			return eris.Errorf("analyze: --format must be table or json (got %q)", analyzeFormat)
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

		analysis, err := engine.AnalyzeProperty(ctx, args[0], analyzePrice, analyzeType)
		if err != nil {
			return describeLookupErr(err)
		}

		if analyzeSave {
			detail, _ := json.Marshal(analysis)
			saveAssessment(ctx, repo, &model.Assessment{
				Kind:    model.AssessmentAnalysis,
				Zone:    analysis.Zone,
				Price:   analysis.PriceOffered,
				Score:   analysis.SmartScore,
				Verdict: string(analysis.RiskTier),
				Detail:  detail,
			})
		}

		if analyzeFormat == "json" {
			return printJSON(analysis)
		}
		printAnalysis(analysis)
		return nil
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.Float64Var(&analyzePrice, "price", 0, "offered price in naira (required)")
	f.StringVar(&analyzeType, "type", "", `property type (default "3-bedroom")`)
	f.BoolVar(&analyzeSave, "save", false, "save the result to assessment history")
	f.StringVar(&analyzeFormat, "format", "table", "output format: table or json")
	_ = analyzeCmd.MarkFlagRequired("price")

	rootCmd.AddCommand(analyzeCmd)
}

func printAnalysis(a *model.Analysis) {
	fmt.Printf("%s (%s) — %s at %s\n", a.Zone, a.Location, a.PropertyType, report.Naira(a.PriceOffered))
	fmt.Printf("Smart Score: %.1f/100  Risk Tier: %s\n", a.SmartScore, a.RiskTier)
	fmt.Printf("  %s\n\n", a.Recommendation)

	fmt.Println("Risk breakdown")
	fmt.Printf("  Flood risk       %5.1f  %-9s  last major flood: %s\n",
		a.Risk.Flood.Score, a.Risk.Flood.Level, orDash(a.Risk.Flood.LastMajorFlood))
	fmt.Printf("  Security         %5.1f  %-9s  %d police stations, %d incidents (2024)\n",
		a.Risk.Security.Score, a.Risk.Security.Level,
		a.Risk.Security.PoliceStations, a.Risk.Security.Incidents2024)
	fmt.Printf("  Infrastructure   %5.1f  %-9s  %dh power/day, fiber: %v\n\n",
		a.Risk.Infrastructure.Score, a.Risk.Infrastructure.Level,
		a.Risk.Infrastructure.PowerHours, a.Risk.Infrastructure.FiberInternet)

	fmt.Println("Price check")
	fmt.Printf("  Market range     %s\n", a.Price.MarketRange)
	fmt.Printf("  Verdict          %s — %s\n\n", a.Price.Status, a.Price.Verdict)

	fmt.Println("Hidden costs (one-time)")
	fmt.Printf("  Omo onile        %s\n", report.Naira(a.HiddenCosts.OmoOnile))
	fmt.Printf("  Land survey      %s\n", report.Naira(a.HiddenCosts.LandSurvey))
	fmt.Printf("  Flood insurance  %s\n", report.Naira(a.HiddenCosts.FloodInsurance))
	fmt.Printf("  Subtotal         %s\n", report.Naira(a.HiddenCosts.OneTimeTotal))
	fmt.Printf("  Generator        %s/month (recurring, not in subtotal)\n\n", report.Naira(a.HiddenCosts.GeneratorMonthly))

	if a.Notes != "" {
		fmt.Printf("Local intel: %s\n", a.Notes)
	}
}

// describeLookupErr expands a not-found error with the available zone names
// so the user can correct the query without a second command.
func describeLookupErr(err error) error {
	var nf *model.NotFoundError
	if errors.As(err, &nf) && len(nf.Available) > 0 {
		fmt.Println("Available zones:")
		for _, name := range nf.Available {
			fmt.Printf("  %s\n", name)
		}
	}
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
