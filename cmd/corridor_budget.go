package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/report"
)

var (
	budgetAmount   float64
	budgetBedrooms int
	budgetWidth    float64
	budgetJSON     bool
)

var corridorBudgetCmd = &cobra.Command{
	Use:   "budget <origin> <destination>",
	Short: "Corridor search constrained by total purchase budget",
	Long: `Converts a total budget into a price-per-m² ceiling using a fixed
bedroom-to-area table (2:80m², 3:120m², 4:160m², 5:200m²) and runs the
corridor search with otherwise default filters.

Example:
  naijaprop corridor budget "Victoria Island" Ajah --budget 60000000 --bedrooms 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}

		repo, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		matcher, err := newMatcher(repo)
		if err != nil {
			return err
		}

		res, err := matcher.SearchByBudget(ctx, args[0], args[1], budgetAmount, budgetBedrooms, budgetWidth)
		if err != nil {
			return describeLookupErr(err)
		}

		if budgetJSON {
			return printJSON(res)
		}

		fmt.Printf("Budget %s for a %d-bedroom (~%.0f m²) caps price at %s\n\n",
			report.Naira(res.Budget), res.Bedrooms, res.AssumedAreaSqm,
			report.NairaPerSqm(res.MaxPricePerSqm))
		printCorridor(&res.Corridor)
		return nil
	},
}

func init() {
	f := corridorBudgetCmd.Flags()
	f.Float64Var(&budgetAmount, "budget", 0, "total purchase budget in naira (required)")
	f.IntVar(&budgetBedrooms, "bedrooms", 3, "bedroom count for the area assumption")
	f.Float64Var(&budgetWidth, "width", 0, "corridor width in km (default 5)")
	f.BoolVar(&budgetJSON, "json", false, "emit JSON instead of a table")
	_ = corridorBudgetCmd.MarkFlagRequired("budget")

	corridorCmd.AddCommand(corridorBudgetCmd)
}
