package batch

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"go-bloom-dict/bloom"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newFilter(t *testing.T, words ...string) *bloom.BloomFilter {
	t.Helper()
	filter, err := bloom.New(0.001, words, bloom.Options{})
	require.NoError(t, err)
	return filter
}

func TestRunWritesOneLabelPerLine(t *testing.T) {
	filter := newFilter(t, "apple", "banana", "cherry")
	runner := NewRunner(filter, quietLogger())

	input := "apple\nbanana\n\ncherry\nzzz_not_in_list"
	var out bytes.Buffer
	stats, err := runner.Run(strings.NewReader(input), &out)
	require.NoError(t, err)

	labels := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, labels, 5)
	require.Equal(t, 5, stats.Lines)
	require.Equal(t, stats.Lines, stats.Absent+stats.PossiblyPresent)
	require.NotEmpty(t, stats.RunID)

	require.Equal(t, "PossiblyPresent", labels[0])
	require.Equal(t, "PossiblyPresent", labels[1])
	require.Equal(t, "PossiblyPresent", labels[3])
	for i, label := range labels {
		expected, err := filter.Query(strings.Split(input, "\n")[i])
		require.NoError(t, err)
		require.Equal(t, expected.String(), label)
	}
}

func TestRunEmptyInput(t *testing.T) {
	runner := NewRunner(newFilter(t, "apple"), quietLogger())
	var out bytes.Buffer
	stats, err := runner.Run(strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Equal(t, 0, stats.Lines)
	require.Empty(t, out.String())
}

func TestRunNotBuiltFilter(t *testing.T) {
	runner := NewRunner(&bloom.BloomFilter{}, quietLogger())
	_, err := runner.Run(strings.NewReader("apple\n"), io.Discard)
	require.ErrorIs(t, err, bloom.ErrFilterNotBuilt)
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("caf\xe9\napple\n"), 0o644))

	runner := NewRunner(newFilter(t, "café", "apple"), quietLogger())
	stats, err := runner.RunFile(inputPath, "", "iso-8859-1")
	require.NoError(t, err)
	require.Equal(t, 2, stats.Lines)

	output, err := os.ReadFile(filepath.Join(dir, "output_words.txt"))
	require.NoError(t, err)
	require.Equal(t, "PossiblyPresent\nPossiblyPresent\n", string(output))
}

func TestRunFileExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "words.txt")
	outputPath := filepath.Join(dir, "labels.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("apple\n"), 0o644))

	runner := NewRunner(newFilter(t, "apple"), quietLogger())
	_, err := runner.RunFile(inputPath, outputPath, "")
	require.NoError(t, err)

	output, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Equal(t, "PossiblyPresent\n", string(output))
}

func TestRunFileMissingInput(t *testing.T) {
	runner := NewRunner(newFilter(t, "apple"), quietLogger())
	_, err := runner.RunFile(filepath.Join(t.TempDir(), "missing.txt"), "", "")
	require.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, filepath.Join("data", "output_words.txt"), OutputPath(filepath.Join("data", "words.txt")))
	require.Equal(t, "output_words.txt", OutputPath("words.txt"))
}

func TestRunFileRemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("apple\nbanana\n"), 0o644))

	runner := NewRunner(&bloom.BloomFilter{}, quietLogger())
	_, err := runner.RunFile(inputPath, "", "")
	require.ErrorIs(t, err, bloom.ErrFilterNotBuilt)

	_, statErr := os.Stat(filepath.Join(dir, "output_words.txt"))
	require.True(t, os.IsNotExist(statErr))
}

func TestRunKeepsLineCountsForLongLines(t *testing.T) {
	runner := NewRunner(newFilter(t, "apple"), quietLogger())
	input := "apple\n" + strings.Repeat("x", 2<<20) + "\napple"

	var out bytes.Buffer
	stats, err := runner.Run(strings.NewReader(input), &out)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Lines)
	require.Equal(t, 3, strings.Count(out.String(), "\n"))
}
