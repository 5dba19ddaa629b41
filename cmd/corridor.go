package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/report"
)

var (
	corridorWidth       float64
	corridorMaxPriceSqm float64
	corridorMinSecurity float64
	corridorMaxFlood    float64
	corridorFormat      string
)

var corridorCmd = &cobra.Command{
	Use:   "corridor <origin> <destination>",
	Short: "Find zones along the route between two locations",
	Long: `Lists every zone whose detour off the origin-destination route is within
the corridor width and that clears the price, security and flood filters.
Endpoints may be zone names or, with a geocoding key configured, free-text
addresses.

Examples:
  naijaprop corridor "Victoria Island" Ajah
  naijaprop corridor Ikoyi "Lekki Phase 1" --width 8 --min-security 70
  naijaprop corridor Surulere "Ikeja GRA" --max-price-sqm 500000 --format csv`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		if corridorFormat != "table" && corridorFormat != "csv" && corridorFormat != "json" {
			return eris.Errorf("corridor: --format must be table, csv or json (got %q)", corridorFormat)
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

		params := corridorDefaults()
		if cmd.Flags().Changed("width") {
			params.CorridorWidthKm = corridorWidth
		}
		if cmd.Flags().Changed("min-security") {
			params.MinSecurityScore = corridorMinSecurity
		}
		if cmd.Flags().Changed("max-flood") {
			params.MaxFloodRisk = corridorMaxFlood
		}
		params.MaxPricePerSqm = corridorMaxPriceSqm

		res, err := matcher.FindAlongCorridor(ctx, args[0], args[1], params)
		if err != nil {
			return describeLookupErr(err)
		}

		switch corridorFormat {
		case "json":
			return printJSON(res)
		case "csv":
			return writeCorridorCSV(os.Stdout, res)
		default:
			printCorridor(res)
			return nil
		}
	},
}

func init() {
	f := corridorCmd.Flags()
	f.Float64Var(&corridorWidth, "width", 0, "corridor width in km (default from config)")
	f.Float64Var(&corridorMaxPriceSqm, "max-price-sqm", 0, "price ceiling per m² (0 = no ceiling)")
	f.Float64Var(&corridorMinSecurity, "min-security", 0, "security score floor (default from config)")
	f.Float64Var(&corridorMaxFlood, "max-flood", 0, "flood risk ceiling (default from config)")
	f.StringVar(&corridorFormat, "format", "table", "output format: table, csv or json")

	rootCmd.AddCommand(corridorCmd)
}

func printCorridor(res *model.CorridorResult) {
	r := res.Route
	fmt.Printf("%s → %s: %.2f km", r.Origin, r.Destination, r.DistanceKm)
	if r.DurationMinutes > 0 {
		fmt.Printf(", ~%.0f min", r.DurationMinutes)
	}
	fmt.Printf(" (%s)\n", r.Provider)
	fmt.Printf("Route map: %s\n\n", mapsRouteURL(r.OriginCoords, r.DestinationCoords))

	if len(res.Matches) == 0 {
		fmt.Println("No zones match within the corridor.")
		return
	}

	fmt.Printf("%-18s %9s %7s %14s %9s %7s\n", "ZONE", "DIST KM", "SCORE", "PRICE/M²", "SECURITY", "FLOOD")
	for _, m := range res.Matches {
		fmt.Printf("%-18s %9.2f %7d %14s %9.0f %7.0f\n",
			m.Zone, m.DistanceFromOriginKm, m.SmartScore,
			report.Naira(m.PricePerSqm), m.SecurityScore, m.FloodRiskScore)
	}
}

func writeCorridorCSV(f *os.File, res *model.CorridorResult) error {
	w := csv.NewWriter(f)
	header := []string{"zone", "location", "distance_from_origin_km", "smart_score",
		"price_per_sqm", "security_score", "flood_risk_score", "rental_yield"}
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "corridor: write csv header")
	}
	for _, m := range res.Matches {
		row := []string{
			m.Zone,
			m.Location,
			strconv.FormatFloat(m.DistanceFromOriginKm, 'f', 2, 64),
			strconv.Itoa(m.SmartScore),
			strconv.FormatFloat(m.PricePerSqm, 'f', 0, 64),
			strconv.FormatFloat(m.SecurityScore, 'f', 0, 64),
			strconv.FormatFloat(m.FloodRiskScore, 'f', 0, 64),
			strconv.FormatFloat(m.RentalYield, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "corridor: write csv row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "corridor: flush csv")
}
