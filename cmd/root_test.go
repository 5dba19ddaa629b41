package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"analyze", "roi", "corridor", "zones", "refdata", "export", "brief", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "naijaprop", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestAnalyzeCommand_Flags(t *testing.T) {
	flag := analyzeCmd.Flags().Lookup("price")
	require.NotNil(t, flag, "analyze command should have --price flag")

	format := analyzeCmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "table", format.DefValue)
}

func TestROICommand_Flags(t *testing.T) {
	years := roiCmd.Flags().Lookup("years")
	require.NotNil(t, years, "roi command should have --years flag")
	assert.Equal(t, "5", years.DefValue)
}

func TestCorridorCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range corridorCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["budget"])
	assert.True(t, names["compare"])
}

func TestZonesCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range zonesCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"list", "show", "nearest", "nearby"} {
		assert.True(t, names[name], "expected zones subcommand %q", name)
	}
}

func TestRefdataCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range refdataCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"validate", "fetch", "import-xlsx", "enrich-shapefile", "seed"} {
		assert.True(t, names[name], "expected refdata subcommand %q", name)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}
