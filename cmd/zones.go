package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/corridor"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/report"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
	"github.com/amdsolutions007/Naija-Prop-Intel/pkg/geocode"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Browse the zone reference database",
}

var zonesListFormat string

var zonesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every zone with headline figures",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}

		repo, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		names, err := repo.Names(ctx)
		if err != nil {
			return err
		}

		if zonesListFormat == "json" {
			zones := make([]model.Zone, 0, len(names))
			for _, name := range names {
				z, err := repo.Zone(ctx, name)
				if err != nil {
					return err
				}
				zones = append(zones, z)
			}
			return printJSON(zones)
		}

		fmt.Printf("%-18s %7s %9s %7s %14s  %s\n", "ZONE", "FLOOD", "SECURITY", "INFRA", "AVG ₦/M²", "DEMAND")
		for _, name := range names {
			z, err := repo.Zone(ctx, name)
			if err != nil {
				return err
			}
			fmt.Printf("%-18s %7.0f %9.0f %7.0f %14s  %s\n",
				z.Name, z.FloodRisk.Score, z.Security.Score, z.Infrastructure.Score,
				report.Naira(z.MarketData.AvgPricePerSqm), orDash(z.MarketData.DemandLevel))
		}
		return nil
	},
}

var zonesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the full record for one zone",
	Args:  cobra.ExactArgs(1),
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

		z, err := store.Resolve(ctx, repo, args[0])
		if err != nil {
			return describeLookupErr(err)
		}

		fmt.Printf("Map: %s\n", mapsZoneURL(z.Coordinates))
		return printJSON(z)
	},
}

var (
	nearestLat   float64
	nearestLng   float64
	nearestMaxKm float64
)

var zonesNearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Find the closest zone to a coordinate",
	Long: `Finds the nearest zone within --max-km of the point (default 5 km),
the same lookup the geocoding path uses to map an address onto a zone.

Example:
  naijaprop zones nearest --lat 6.45 --lng 3.47`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}

		repo, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		point := model.Coordinates{Lat: nearestLat, Lng: nearestLng}
		if point.IsZero() {
			return eris.New("zones nearest: --lat and --lng are required")
		}

		match, found, err := geocode.NearestZone(ctx, repo, point, nearestMaxKm)
		if err != nil {
			return err
		}
		if !found {
			fmt.Printf("No zone within %.1f km of %.4f,%.4f\n", nearestMaxKm, point.Lat, point.Lng)
			return nil
		}

		fmt.Printf("%s (%s) — %.2f km away\n", match.Zone.Name, match.Zone.Location, match.DistanceKm)
		fmt.Printf("Map: %s\n", mapsZoneURL(match.Zone.Coordinates))
		return nil
	},
}

var nearbyMaxKm float64

var zonesNearbyCmd = &cobra.Command{
	Use:   "nearby <zone>",
	Short: "List zones within a radius of a zone",
	Args:  cobra.ExactArgs(1),
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

		nearby, err := matcher.NearbyZones(ctx, args[0], nearbyMaxKm)
		if err != nil {
			return describeLookupErr(err)
		}

		if len(nearby) == 0 {
			fmt.Println("No zones within range.")
			return nil
		}
		fmt.Printf("%-18s %9s %14s\n", "ZONE", "DIST KM", "AVG ₦/M²")
		for _, n := range nearby {
			fmt.Printf("%-18s %9.2f %14s\n", n.Zone, n.DistanceKm, report.Naira(n.AvgPricePerSqm))
		}
		return nil
	},
}

func init() {
	zonesListCmd.Flags().StringVar(&zonesListFormat, "format", "table", "output format: table or json")

	f := zonesNearestCmd.Flags()
	f.Float64Var(&nearestLat, "lat", 0, "latitude in decimal degrees")
	f.Float64Var(&nearestLng, "lng", 0, "longitude in decimal degrees")
	f.Float64Var(&nearestMaxKm, "max-km", geocode.DefaultNearestKm, "search radius in km")

	zonesNearbyCmd.Flags().Float64Var(&nearbyMaxKm, "km", corridor.DefaultNearbyKm, "search radius in km")

	zonesCmd.AddCommand(zonesListCmd, zonesShowCmd, zonesNearestCmd, zonesNearbyCmd)
	rootCmd.AddCommand(zonesCmd)
}
