package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCmd_RunE_Succeeds(t *testing.T) {
	path := writeFixtureZones(t, fixtureZone("Yaba", 6.51, 3.37))
	setTestConfig(t, path)

	analyzeCmd.SetContext(context.Background())
	defer analyzeCmd.SetContext(context.TODO())

	analyzePrice = 45_000_000
	analyzeFormat = "table"
	defer func() {
		analyzePrice = 0
		analyzeType = ""
		analyzeSave = false
	}()

	err := analyzeCmd.RunE(analyzeCmd, []string{"yaba"})
	require.NoError(t, err, "substring match on a known zone should analyze")
}

func TestAnalyzeCmd_RunE_UnknownZone(t *testing.T) {
	path := writeFixtureZones(t, fixtureZone("Yaba", 6.51, 3.37))
	setTestConfig(t, path)

	analyzeCmd.SetContext(context.Background())
	defer analyzeCmd.SetContext(context.TODO())

	analyzePrice = 45_000_000
	analyzeFormat = "table"
	defer func() { analyzePrice = 0 }()

	err := analyzeCmd.RunE(analyzeCmd, []string{"Timbuktu"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Timbuktu")
}

func TestAnalyzeCmd_RunE_BadFormat(t *testing.T) {
	path := writeFixtureZones(t, fixtureZone("Yaba", 6.51, 3.37))
	setTestConfig(t, path)

	analyzeCmd.SetContext(context.Background())
	defer analyzeCmd.SetContext(context.TODO())

	analyzePrice = 45_000_000
	analyzeFormat = "xml"
	defer func() {
		analyzePrice = 0
		analyzeFormat = "table"
	}()

	err := analyzeCmd.RunE(analyzeCmd, []string{"Yaba"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")
}

func TestROICmd_RunE_Succeeds(t *testing.T) {
	path := writeFixtureZones(t, fixtureZone("Yaba", 6.51, 3.37))
	setTestConfig(t, path)

	roiCmd.SetContext(context.Background())
	defer roiCmd.SetContext(context.TODO())

	roiPrice = 45_000_000
	roiYears = 5
	roiFormat = "table"
	defer func() { roiPrice = 0 }()

	err := roiCmd.RunE(roiCmd, []string{"Yaba"})
	require.NoError(t, err)
}

func TestROICmd_RunE_RejectsZeroYears(t *testing.T) {
	path := writeFixtureZones(t, fixtureZone("Yaba", 6.51, 3.37))
	setTestConfig(t, path)

	roiCmd.SetContext(context.Background())
	defer roiCmd.SetContext(context.TODO())

	roiPrice = 45_000_000
	roiYears = -1
	roiFormat = "table"
	defer func() {
		roiPrice = 0
		roiYears = 5
	}()

	err := roiCmd.RunE(roiCmd, []string{"Yaba"})
	require.Error(t, err)
}
