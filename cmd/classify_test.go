package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()
	modelFile := filepath.Join(dir, "model.csv")
	inputFile := filepath.Join(dir, "readings.csv")
	outputFile := filepath.Join(dir, "result.csv")

	require.NoError(t, os.WriteFile(modelFile, []byte("0,0\n1,12.5\n2,40\n"), 0644))
	require.NoError(t, os.WriteFile(inputFile, []byte("s-1,100,90\ns-2,0,5\ns-3,50,50\ns-4,-20,10\n"), 0644))

	rootCmd.SetArgs([]string{"classify", inputFile, outputFile,
		"--modelFile", modelFile, "--modelFormat", "centroid", "--removeColumn", "0"})
	require.NoError(t, rootCmd.Execute())

	output, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "100.00,90.00,10.00,1.00\n50.00,50.00,0.00,0.00\n-20.00,10.00,150.00,2.00\n", string(output))
}

func TestClassifyCommandMissingModel(t *testing.T) {
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "readings.csv")
	require.NoError(t, os.WriteFile(inputFile, []byte("100,90\n"), 0644))

	rootCmd.SetArgs([]string{"classify", inputFile, filepath.Join(dir, "out.csv"),
		"--modelFile", filepath.Join(dir, "missing.json"), "--modelFormat", "linear"})
	assert.Error(t, rootCmd.Execute())
}

func TestClassifyCommandSameFile(t *testing.T) {
	rootCmd.SetArgs([]string{"classify", "a.csv", "a.csv"})
	assert.Error(t, rootCmd.Execute())
}
