package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/refdata"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
)

var refdataCmd = &cobra.Command{
	Use:   "refdata",
	Short: "Maintain the zone reference dataset",
}

var refdataValidateCmd = &cobra.Command{
	Use:   "validate <zones-file>",
	Short: "Validate every record in a zones file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := refdata.Inspect(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d zones\n", report.Path, report.Zones)
		for _, p := range report.Problems {
			fmt.Printf("  PROBLEM %s: %s — %s\n", p.Zone, p.Field, p.Reason)
		}
		for _, name := range report.NoCoordinates {
			fmt.Printf("  NOTE %s has no coordinates (excluded from corridor searches)\n", name)
		}
		if !report.OK() {
			return eris.Errorf("refdata: %d invalid records in %s", len(report.Problems), args[0])
		}
		fmt.Println("OK")
		return nil
	},
}

var fetchDest string

var refdataFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a zones snapshot from the configured mirror",
	Long: `Downloads the zones dataset from refdata.mirror_url (HTTP or FTP,
dispatched on the URL scheme) and writes it to --out.

Example:
  naijaprop refdata fetch --out data/zones.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("refdata"); err != nil {
			return err
		}

		fetcher := refdata.NewFetcher(refdata.FetchOptions{})
		n, err := fetcher.FetchToFile(ctx, cfg.Refdata.MirrorURL, fetchDest)
		if err != nil {
			return err
		}

		zap.L().Info("snapshot downloaded",
			zap.String("url", cfg.Refdata.MirrorURL),
			zap.String("dest", fetchDest),
			zap.Int64("bytes", n),
		)

		// Validate what we fetched before anyone points a store at it.
		report, err := refdata.Inspect(fetchDest)
		if err != nil {
			return err
		}
		if !report.OK() {
			return eris.Errorf("refdata: fetched snapshot has %d invalid records", len(report.Problems))
		}
		fmt.Printf("Fetched %d zones to %s\n", report.Zones, fetchDest)
		return nil
	},
}

var (
	importXLSXZones string
	importXLSXSheet string
	importXLSXSkip  int
	importXLSXOut   string
)

var refdataImportXLSXCmd = &cobra.Command{
	Use:   "import-xlsx <workbook>",
	Short: "Merge market figures from an Excel workbook into a zones file",
	Long: `Reads market columns (avg price/m², price range, appreciation, rental
yield, days to sell, demand) from a workbook and merges them into matching
zones. Blank cells leave the stored value untouched.

Example:
  naijaprop refdata import-xlsx q3-market.xlsx --zones data/zones.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := refdata.LoadMarketWorkbook(args[0], refdata.MarketSheet{
			SheetName: importXLSXSheet,
			SkipRows:  importXLSXSkip,
		})
		if err != nil {
			return err
		}

		zones, err := store.ReadZonesFile(importXLSXZones)
		if err != nil {
			return err
		}

		merged, updated, unmatched, err := refdata.ApplyMarketFigures(zones, rows)
		if err != nil {
			return err
		}
		for _, name := range unmatched {
			fmt.Printf("  NOTE workbook row %q matches no zone\n", name)
		}

		out := importXLSXOut
		if out == "" {
			out = importXLSXZones
		}
		if err := store.WriteZonesFile(out, merged); err != nil {
			return err
		}

		fmt.Printf("Updated %d of %d zones, wrote %s\n", updated, len(merged), out)
		return nil
	},
}

var (
	shapefileZones string
	shapefileField string
	shapefileOut   string
)

var refdataShapefileCmd = &cobra.Command{
	Use:   "enrich-shapefile <shapefile-or-zip>",
	Short: "Fill missing zone coordinates from an LGA shapefile",
	Long: `Computes LGA polygon centroids from a shapefile (or zipped shapefile)
and assigns them to zones that have no coordinates on record. Zones with
coordinates keep them.

Example:
  naijaprop refdata enrich-shapefile nga_adm2.zip --zones data/zones.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		zones, err := store.ReadZonesFile(shapefileZones)
		if err != nil {
			return err
		}

		enriched, filled, err := refdata.EnrichFromShapefile(zones, args[0], shapefileField, cfg.Refdata.TempDir)
		if err != nil {
			return err
		}

		out := shapefileOut
		if out == "" {
			out = shapefileZones
		}
		if err := store.WriteZonesFile(out, enriched); err != nil {
			return err
		}

		fmt.Printf("Filled coordinates for %d zones, wrote %s\n", filled, out)
		return nil
	},
}

var seedFrom string

var refdataSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a zones file into the configured sqlite/postgres store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		if cfg.Store.Driver != "sqlite" && cfg.Store.Driver != "postgres" {
			return eris.Errorf("refdata seed: store.driver is %q; seeding targets sqlite or postgres", cfg.Store.Driver)
		}

		repo, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		importer, ok := repo.(store.Importer)
		if !ok {
			return eris.Errorf("refdata seed: %s store does not support imports", cfg.Store.Driver)
		}

		n, err := refdata.SeedStore(ctx, importer, seedFrom)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d zones from %s into %s store\n", n, seedFrom, cfg.Store.Driver)
		return nil
	},
}

func init() {
	refdataFetchCmd.Flags().StringVar(&fetchDest, "out", "data/zones.json", "destination path for the snapshot")

	f := refdataImportXLSXCmd.Flags()
	f.StringVar(&importXLSXZones, "zones", "data/zones.json", "zones file to merge into")
	f.StringVar(&importXLSXSheet, "sheet", "", "sheet name (default: first sheet)")
	f.IntVar(&importXLSXSkip, "skip-rows", 0, "rows above the header row")
	f.StringVar(&importXLSXOut, "out", "", "output path (default: overwrite --zones)")

	sf := refdataShapefileCmd.Flags()
	sf.StringVar(&shapefileZones, "zones", "data/zones.json", "zones file to enrich")
	sf.StringVar(&shapefileField, "name-field", refdata.DefaultLGANameField, "attribute holding the LGA name")
	sf.StringVar(&shapefileOut, "out", "", "output path (default: overwrite --zones)")

	refdataSeedCmd.Flags().StringVar(&seedFrom, "from", "data/zones.json", "zones file to load")

	refdataCmd.AddCommand(refdataValidateCmd, refdataFetchCmd, refdataImportXLSXCmd, refdataShapefileCmd, refdataSeedCmd)
	rootCmd.AddCommand(refdataCmd)
}
