package refdata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

func createWorkbook(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "market.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestLoadMarketWorkbook(t *testing.T) {
	path := createWorkbook(t, map[string][][]string{
		"Figures": {
			{"Zone", "Avg Price Per Sqm", "Price Range", "5yr Appreciation", "Rental Yield", "Days To Sell", "Demand"},
			{"Ajah", "₦350,000", "₦25M - ₦60M (3-bedroom)", "71%", "5.5%", "120", "HIGH"},
			{"Ikoyi", "1500000", "", "", "0.042", "60", ""},
		},
	})

	rows, err := LoadMarketWorkbook(path, MarketSheet{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	ajah := rows[0]
	assert.Equal(t, "Ajah", ajah.Zone)
	require.NotNil(t, ajah.AvgPricePerSqm)
	assert.InDelta(t, 350_000, *ajah.AvgPricePerSqm, 1e-9)
	require.NotNil(t, ajah.PriceRange)
	assert.Equal(t, "₦25M - ₦60M (3-bedroom)", *ajah.PriceRange)
	require.NotNil(t, ajah.Appreciation5yr)
	assert.InDelta(t, 0.71, *ajah.Appreciation5yr, 1e-9)
	require.NotNil(t, ajah.RentalYield)
	assert.InDelta(t, 0.055, *ajah.RentalYield, 1e-9)
	require.NotNil(t, ajah.DaysToSellAvg)
	assert.Equal(t, 120, *ajah.DaysToSellAvg)
	require.NotNil(t, ajah.DemandLevel)
	assert.Equal(t, "HIGH", *ajah.DemandLevel)

	ikoyi := rows[1]
	assert.Equal(t, "Ikoyi", ikoyi.Zone)
	require.NotNil(t, ikoyi.AvgPricePerSqm)
	assert.InDelta(t, 1_500_000, *ikoyi.AvgPricePerSqm, 1e-9)
	assert.Nil(t, ikoyi.PriceRange, "blank cells stay unset")
	assert.Nil(t, ikoyi.Appreciation5yr)
	require.NotNil(t, ikoyi.RentalYield)
	assert.InDelta(t, 0.042, *ikoyi.RentalYield, 1e-9)
	assert.Nil(t, ikoyi.DemandLevel)
}

func TestLoadMarketWorkbookSkipRows(t *testing.T) {
	path := createWorkbook(t, map[string][][]string{
		"Sheet1": {
			{"Market figures, Q3 2025"},
			{"zone", "avg_price_per_sqm"},
			{"Surulere", "280000"},
		},
	})

	rows, err := LoadMarketWorkbook(path, MarketSheet{SkipRows: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Surulere", rows[0].Zone)
}

func TestLoadMarketWorkbookSheetSelection(t *testing.T) {
	path := createWorkbook(t, map[string][][]string{
		"Notes":   {{"free text"}},
		"Figures": {{"zone"}, {"Ajah"}},
	})

	rows, err := LoadMarketWorkbook(path, MarketSheet{SheetName: "Figures"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = LoadMarketWorkbook(path, MarketSheet{SheetName: "Absent"})
	require.Error(t, err)

	_, err = LoadMarketWorkbook(path, MarketSheet{SheetIndex: 9})
	require.Error(t, err)
}

func TestLoadMarketWorkbookRequiresZoneColumn(t *testing.T) {
	path := createWorkbook(t, map[string][][]string{
		"Sheet1": {{"price", "range"}, {"1", "2"}},
	})

	_, err := LoadMarketWorkbook(path, MarketSheet{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no zone column")
}

func TestLoadMarketWorkbookBadNumber(t *testing.T) {
	path := createWorkbook(t, map[string][][]string{
		"Sheet1": {
			{"zone", "rental_yield"},
			{"Ajah", "five percent"},
		},
	})

	_, err := LoadMarketWorkbook(path, MarketSheet{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rental_yield")
}

func TestLoadMarketWorkbookSkipsBlankRows(t *testing.T) {
	path := createWorkbook(t, map[string][][]string{
		"Sheet1": {
			{"zone", "demand"},
			{"Ajah", "HIGH"},
			{"", ""},
		},
	})

	rows, err := LoadMarketWorkbook(path, MarketSheet{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "350000", want: 350_000},
		{raw: "₦350,000", want: 350_000},
		{raw: "  1,500,000 ", want: 1_500_000},
		{raw: "5.5%", want: 0.055},
		{raw: "0.71", want: 0.71},
	}
	for _, tt := range tests {
		got, err := parseNumber(tt.raw)
		require.NoError(t, err, "raw %q", tt.raw)
		assert.InDelta(t, tt.want, got, 1e-9, "raw %q", tt.raw)
	}

	_, err := parseNumber("N/A")
	require.Error(t, err)
}

func TestApplyMarketFigures(t *testing.T) {
	zones := []model.Zone{testZone("Ajah"), testZone("Ikoyi")}
	price := 999_000.0
	demand := "VERY HIGH"
	rows := []MarketRow{
		{Zone: "ajah", AvgPricePerSqm: &price, DemandLevel: &demand},
		{Zone: "Epe", DemandLevel: &demand},
	}

	updated, touched, unmatched, err := ApplyMarketFigures(zones, rows)
	require.NoError(t, err)

	assert.Equal(t, 1, touched)
	assert.Equal(t, []string{"Epe"}, unmatched)
	assert.InDelta(t, 999_000, updated[0].MarketData.AvgPricePerSqm, 1e-9)
	assert.Equal(t, "VERY HIGH", updated[0].MarketData.DemandLevel)
	assert.Equal(t, "₦20M - ₦45M (3-bedroom)", updated[0].MarketData.PriceRange, "absent columns keep stored values")
	assert.InDelta(t, 250_000, updated[1].MarketData.AvgPricePerSqm, 1e-9, "unmentioned zones untouched")
}

func TestApplyMarketFiguresRejectsInvalidMerge(t *testing.T) {
	zones := []model.Zone{testZone("Ajah")}
	bad := -5.0
	rows := []MarketRow{{Zone: "Ajah", AvgPricePerSqm: &bad}}

	_, _, _, err := ApplyMarketFigures(zones, rows)
	require.Error(t, err)
	assert.True(t, model.IsMalformedRecord(err))
}
