package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/report"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
)

var (
	exportKind  string
	exportZone  string
	exportLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved assessments",
	Long:  "Exports assessment history (saved analyze/roi runs) to an Excel workbook or a Notion database.",
}

// exportHistory loads the filtered assessment history from the configured
// store. Only sqlite/postgres stores keep history.
func exportHistory(cmd *cobra.Command) ([]model.Assessment, func(), error) {
	ctx := cmd.Context()

	if err := cfg.Validate("cli"); err != nil {
		return nil, nil, err
	}

	repo, err := openRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	h, ok := historyStore(repo)
	if !ok {
		repo.Close()
		return nil, nil, eris.Errorf("export: %s store keeps no history; use a sqlite or postgres store", cfg.Store.Driver)
	}

	records, err := h.ListAssessments(ctx, store.HistoryFilter{
		Kind:  model.AssessmentKind(exportKind),
		Zone:  exportZone,
		Limit: exportLimit,
	})
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	return records, func() { repo.Close() }, nil
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx <output.xlsx>",
	Short: "Write assessment history to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, closeRepo, err := exportHistory(cmd)
		if err != nil {
			return err
		}
		defer closeRepo()

		if len(records) == 0 {
			return eris.New("export: no saved assessments match the filter")
		}

		if err := report.WriteWorkbook(args[0], records); err != nil {
			return err
		}
		fmt.Printf("Wrote %d assessments to %s\n", len(records), args[0])
		return nil
	},
}

var exportNotionCmd = &cobra.Command{
	Use:   "notion",
	Short: "Push assessment history to the Notion deal tracker",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("notion"); err != nil {
			return err
		}

		records, closeRepo, err := exportHistory(cmd)
		if err != nil {
			return err
		}
		defer closeRepo()

		if len(records) == 0 {
			return eris.New("export: no saved assessments match the filter")
		}

		client := report.NewNotionClient(cfg.Notion.Token)
		created, err := report.PushAssessments(cmd.Context(), client, cfg.Notion.AssessmentDB, records)
		if err != nil {
			return err
		}

		zap.L().Info("notion export complete",
			zap.Int("created", created),
			zap.String("database", cfg.Notion.AssessmentDB),
		)
		fmt.Printf("Pushed %d assessments to Notion\n", created)
		return nil
	},
}

func init() {
	pf := exportCmd.PersistentFlags()
	pf.StringVar(&exportKind, "kind", "", "filter by kind: analysis or roi")
	pf.StringVar(&exportZone, "zone", "", "filter by zone name")
	pf.IntVar(&exportLimit, "limit", 100, "maximum records to export")

	exportCmd.AddCommand(exportXLSXCmd, exportNotionCmd)
	rootCmd.AddCommand(exportCmd)
}
