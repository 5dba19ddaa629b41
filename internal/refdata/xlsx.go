package refdata

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// MarketSheet selects and shapes the workbook sheet holding market figures.
type MarketSheet struct {
	SheetName  string // overrides SheetIndex when set
	SheetIndex int
	SkipRows   int // rows above the header
}

// MarketRow is one zone's market figures from a workbook. Nil fields were
// blank in the sheet and leave the stored value untouched on merge.
type MarketRow struct {
	Zone            string
	AvgPricePerSqm  *float64
	PriceRange      *string
	Appreciation5yr *float64
	RentalYield     *float64
	DaysToSellAvg   *int
	DemandLevel     *string
}

// Market-figure workbooks name their columns loosely; headers are matched
// after lowercasing and squashing spaces to underscores.
var marketHeaderAliases = map[string]string{
	"zone":              "zone",
	"zone_name":         "zone",
	"locality":          "zone",
	"avg_price_per_sqm": "avg_price_per_sqm",
	"price_per_sqm":     "avg_price_per_sqm",
	"price_range":       "price_range",
	"typical_range":     "price_range",
	"5yr_appreciation":  "appreciation_5yr",
	"appreciation_5yr":  "appreciation_5yr",
	"rental_yield":      "rental_yield",
	"days_to_sell":      "days_to_sell_avg",
	"days_to_sell_avg":  "days_to_sell_avg",
	"demand_level":      "demand_level",
	"demand":            "demand_level",
}

// LoadMarketWorkbook parses an XLSX workbook into per-zone market figures.
// The first non-skipped row must be a header naming at least the zone column.
func LoadMarketWorkbook(path string, opts MarketSheet) ([]MarketRow, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: open workbook %s", path)
	}
	sheet, err := pickSheet(f, opts)
	if err != nil {
		return nil, err
	}

	if len(sheet.Rows) <= opts.SkipRows {
		return nil, eris.Errorf("refdata: sheet %q has no header row", sheet.Name)
	}

	cols := map[string]int{}
	for i, cell := range cellStrings(sheet.Rows[opts.SkipRows]) {
		if field, ok := marketHeaderAliases[normalizeHeader(cell)]; ok {
			cols[field] = i
		}
	}
	if _, ok := cols["zone"]; !ok {
		return nil, eris.Errorf("refdata: sheet %q has no zone column", sheet.Name)
	}

	var rows []MarketRow
	for _, r := range sheet.Rows[opts.SkipRows+1:] {
		cells := cellStrings(r)
		row, err := parseMarketRow(cells, cols)
		if err != nil {
			return nil, eris.Wrapf(err, "refdata: workbook %s", path)
		}
		if row.Zone == "" {
			continue // trailing blank rows are common in hand-edited sheets
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ApplyMarketFigures merges workbook rows into zones by case-insensitive
// name. It returns the updated slice, the number of zones touched, and the
// row names that matched nothing. Merged records are re-validated.
func ApplyMarketFigures(zones []model.Zone, rows []MarketRow) ([]model.Zone, int, []string, error) {
	index := make(map[string]int, len(zones))
	for i, z := range zones {
		index[strings.ToLower(z.Name)] = i
	}

	var touched int
	var unmatched []string
	for _, row := range rows {
		i, ok := index[strings.ToLower(row.Zone)]
		if !ok {
			unmatched = append(unmatched, row.Zone)
			continue
		}

		md := &zones[i].MarketData
		if row.AvgPricePerSqm != nil {
			md.AvgPricePerSqm = *row.AvgPricePerSqm
		}
		if row.PriceRange != nil {
			md.PriceRange = *row.PriceRange
		}
		if row.Appreciation5yr != nil {
			md.Appreciation5yr = *row.Appreciation5yr
		}
		if row.RentalYield != nil {
			md.RentalYield = *row.RentalYield
		}
		if row.DaysToSellAvg != nil {
			md.DaysToSellAvg = *row.DaysToSellAvg
		}
		if row.DemandLevel != nil {
			md.DemandLevel = *row.DemandLevel
		}

		if err := zones[i].Validate(); err != nil {
			return nil, 0, nil, err
		}
		touched++
	}

	if len(unmatched) > 0 {
		zap.L().Warn("market rows matched no zone", zap.Strings("rows", unmatched))
	}
	return zones, touched, unmatched, nil
}

func parseMarketRow(cells []string, cols map[string]int) (MarketRow, error) {
	row := MarketRow{Zone: strings.TrimSpace(cellAt(cells, cols, "zone"))}

	assignFloat := func(field string, dst **float64) error {
		raw := cellAt(cells, cols, field)
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		v, err := parseNumber(raw)
		if err != nil {
			return eris.Wrapf(err, "zone %s: column %s", row.Zone, field)
		}
		*dst = &v
		return nil
	}

	if err := assignFloat("avg_price_per_sqm", &row.AvgPricePerSqm); err != nil {
		return row, err
	}
	if err := assignFloat("appreciation_5yr", &row.Appreciation5yr); err != nil {
		return row, err
	}
	if err := assignFloat("rental_yield", &row.RentalYield); err != nil {
		return row, err
	}

	if raw := strings.TrimSpace(cellAt(cells, cols, "days_to_sell_avg")); raw != "" {
		v, err := parseNumber(raw)
		if err != nil {
			return row, eris.Wrapf(err, "zone %s: column days_to_sell_avg", row.Zone)
		}
		days := int(v)
		row.DaysToSellAvg = &days
	}
	if raw := strings.TrimSpace(cellAt(cells, cols, "price_range")); raw != "" {
		row.PriceRange = &raw
	}
	if raw := strings.TrimSpace(cellAt(cells, cols, "demand_level")); raw != "" {
		row.DemandLevel = &raw
	}
	return row, nil
}

// parseNumber reads workbook numerics as typed into Nigerian listings:
// thousands separators, a leading naira sign, or a trailing percent (which
// converts to a fraction, matching how yields are stored).
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₦")
	s = strings.ReplaceAll(s, ",", "")
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse %q", raw)
	}
	if percent {
		v /= 100
	}
	return v, nil
}

func pickSheet(f *xlsx.File, opts MarketSheet) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("refdata: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}
	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("refdata: sheet index %d out of range (workbook has %d)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

func cellStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.String()
	}
	return out
}

func cellAt(cells []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}
