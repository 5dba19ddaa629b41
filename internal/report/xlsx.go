package report

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

const assessedFormat = "2006-01-02 15:04"

var analysisHeaders = []string{
	"Assessed", "Zone", "Property Type", "Price Offered", "Smart Score",
	"Risk Tier", "Flood Risk", "Security", "Infrastructure", "Price Status",
	"One-Time Costs", "Generator Monthly", "Recommendation",
}

var roiHeaders = []string{
	"Assessed", "Zone", "Price", "Holding Years", "Net Return", "ROI %",
	"Annualized ROI %", "Verdict", "Liquidity", "Days To Sell",
	"Recommendation",
}

// WriteWorkbook writes assessment history to an .xlsx workbook with one
// sheet per assessment kind. Records whose stored detail cannot be decoded
// fall back to the scalar columns kept on the history row.
func WriteWorkbook(path string, records []model.Assessment) error {
	file := xlsx.NewFile()

	analyses, err := file.AddSheet("Analyses")
	if err != nil {
		return eris.Wrap(err, "report: add analyses sheet")
	}
	projections, err := file.AddSheet("ROI Projections")
	if err != nil {
		return eris.Wrap(err, "report: add projections sheet")
	}

	writeHeader(analyses, analysisHeaders)
	writeHeader(projections, roiHeaders)

	for _, rec := range records {
		switch rec.Kind {
		case model.AssessmentAnalysis:
			writeAnalysisRow(analyses.AddRow(), rec)
		case model.AssessmentROI:
			writeROIRow(projections.AddRow(), rec)
		default:
			zap.L().Warn("skipping history record of unknown kind",
				zap.String("id", rec.ID),
				zap.String("kind", string(rec.Kind)),
			)
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrap(err, fmt.Sprintf("report: save workbook %s", path))
	}
	zap.L().Info("workbook written", zap.String("path", path), zap.Int("records", len(records)))
	return nil
}

func writeHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}

func writeAnalysisRow(row *xlsx.Row, rec model.Assessment) {
	row.AddCell().SetString(rec.CreatedAt.Format(assessedFormat))

	var an model.Analysis
	if len(rec.Detail) == 0 || json.Unmarshal(rec.Detail, &an) != nil {
		warnScalarFallback(rec)
		row.AddCell().SetString(rec.Zone)
		row.AddCell().SetString("")
		row.AddCell().SetString(Naira(rec.Price))
		row.AddCell().SetFloat(rec.Score)
		row.AddCell().SetString(rec.Verdict)
		return
	}

	row.AddCell().SetString(an.Zone)
	row.AddCell().SetString(an.PropertyType)
	row.AddCell().SetString(Naira(an.PriceOffered))
	row.AddCell().SetFloat(an.SmartScore)
	row.AddCell().SetString(string(an.RiskTier))
	row.AddCell().SetFloat(an.Risk.Flood.Score)
	row.AddCell().SetFloat(an.Risk.Security.Score)
	row.AddCell().SetFloat(an.Risk.Infrastructure.Score)
	row.AddCell().SetString(string(an.Price.Status))
	row.AddCell().SetString(Naira(an.HiddenCosts.OneTimeTotal))
	row.AddCell().SetString(Naira(an.HiddenCosts.GeneratorMonthly))
	row.AddCell().SetString(an.Recommendation)
}

func writeROIRow(row *xlsx.Row, rec model.Assessment) {
	row.AddCell().SetString(rec.CreatedAt.Format(assessedFormat))

	var roi model.ROIProjection
	if len(rec.Detail) == 0 || json.Unmarshal(rec.Detail, &roi) != nil {
		warnScalarFallback(rec)
		row.AddCell().SetString(rec.Zone)
		row.AddCell().SetString(Naira(rec.Price))
		row.AddCell().SetInt(rec.HoldingYears)
		row.AddCell().SetString("")
		row.AddCell().SetFloat(rec.Score)
		row.AddCell().SetString("")
		row.AddCell().SetString(rec.Verdict)
		return
	}

	row.AddCell().SetString(roi.Zone)
	row.AddCell().SetString(Naira(roi.Price))
	row.AddCell().SetInt(roi.HoldingYears)
	row.AddCell().SetString(Naira(roi.NetReturn))
	row.AddCell().SetFloat(roi.ROIPercent)
	row.AddCell().SetFloat(roi.AnnualizedROI)
	row.AddCell().SetString(string(roi.Verdict))
	row.AddCell().SetString(string(roi.Liquidity))
	row.AddCell().SetInt(roi.DaysToSell)
	row.AddCell().SetString(roi.Recommendation)
}

func warnScalarFallback(rec model.Assessment) {
	zap.L().Warn("history record has no decodable detail, exporting scalars only",
		zap.String("id", rec.ID),
		zap.String("zone", rec.Zone),
	)
}
