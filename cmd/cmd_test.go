package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/quote-genie/core/training"
	"github.com/kilianp07/quote-genie/pkg/export"
)

func TestGenerateThenTrain(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "absent.yaml")
	data := filepath.Join(dir, "quotes.csv")
	models := filepath.Join(dir, "models")

	rootCmd.SetArgs([]string{"generate", "-c", cfgFile, "--samples", "600", "--output", data, "--seed", "11", "--workers", "3"})
	require.NoError(t, rootCmd.Execute())

	recs, err := export.ReadFile(data)
	require.NoError(t, err)
	require.Len(t, recs, 600)
	assert.Equal(t, 1, recs[0].QuoteID)
	assert.Equal(t, 600, recs[599].QuoteID)

	rootCmd.SetArgs([]string{"train", "-c", cfgFile, "--data", data, "--models", models})
	require.NoError(t, rootCmd.Execute())

	for _, name := range []string{training.WinModelFile, training.MarketModelFile} {
		_, err := os.Stat(filepath.Join(models, name))
		assert.NoError(t, err, name)
	}
	m, err := training.Load(models)
	require.NoError(t, err)
	assert.Greater(t, m.MarketRate(recs[0].Features()), 0.0)
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"generate", "-c", filepath.Join(dir, "absent.yaml"), "--output", filepath.Join(dir, "q.parquet")})
	assert.Error(t, rootCmd.Execute())
}

func TestTrainMissingData(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"train", "-c", filepath.Join(dir, "absent.yaml"), "--data", filepath.Join(dir, "none.csv"), "--models", dir})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
