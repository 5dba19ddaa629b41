package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/report"
)

var compareJSON bool

var corridorCompareCmd = &cobra.Command{
	Use:   "compare <origin> <destination>...",
	Short: "Compare corridor matches across several destinations",
	Long: `Runs a default-parameter corridor search from the origin to each
destination and summarises them, best-supplied route first. Destinations
whose route cannot be resolved are dropped from the comparison.

Example:
  naijaprop corridor compare "Victoria Island" Ajah "Ikeja GRA" Surulere`,
	Args: cobra.MinimumNArgs(2),
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

		comps, err := matcher.CompareRoutes(ctx, args[0], args[1:])
		if err != nil {
			return describeLookupErr(err)
		}

		if compareJSON {
			return printJSON(comps)
		}

		if len(comps) == 0 {
			fmt.Println("No destination produced a resolvable route.")
			return nil
		}

		fmt.Printf("Routes from %s\n\n", args[0])
		fmt.Printf("%-18s %9s %8s %8s %14s  %s\n", "DESTINATION", "DIST KM", "MINUTES", "MATCHES", "AVG ₦/M²", "NEAREST MATCH")
		for _, c := range comps {
			nearest := "-"
			if c.Best != nil {
				nearest = fmt.Sprintf("%s (%.2f km)", c.Best.Zone, c.Best.DistanceFromOriginKm)
			}
			fmt.Printf("%-18s %9.2f %8.0f %8d %14s  %s\n",
				c.Destination, c.DistanceKm, c.DurationMinutes, c.MatchCount,
				report.Naira(float64(c.AvgPricePerSqm)), nearest)
		}
		return nil
	},
}

func init() {
	corridorCompareCmd.Flags().BoolVar(&compareJSON, "json", false, "emit JSON instead of a table")
	corridorCmd.AddCommand(corridorCompareCmd)
}
