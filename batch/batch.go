package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-bloom-dict/bloom"
	"go-bloom-dict/corpus"
)

type Querier interface {
	Query(candidate string) (bloom.Answer, error)
}

type Stats struct {
	RunID           string
	Lines           int
	Absent          int
	PossiblyPresent int
}

// Runner answers one candidate per input line with one label per output line.
type Runner struct {
	filter Querier
	logger logrus.FieldLogger
}

func NewRunner(filter Querier, logger logrus.FieldLogger) *Runner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Runner{filter: filter, logger: logger}
}

// OutputPath places output_<name> next to the input file.
func OutputPath(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), "output_"+filepath.Base(inputPath))
}

// Run writes exactly one label per line of in, so both sides have the same line count.
func (runner *Runner) Run(in io.Reader, out io.Writer) (Stats, error) {
	stats := Stats{RunID: uuid.NewString()}
	logger := runner.logger.WithField("run_id", stats.RunID)

	lines, err := corpus.ReadLines(in)
	if err != nil {
		return stats, fmt.Errorf("read candidates: %w", err)
	}

	writer := bufio.NewWriter(out)
	for _, line := range lines {
		answer, err := runner.filter.Query(line)
		if err != nil {
			return stats, fmt.Errorf("query line %d: %w", stats.Lines+1, err)
		}
		if _, err := writer.WriteString(answer.String() + "\n"); err != nil {
			return stats, err
		}

		stats.Lines++
		if answer == bloom.Absent {
			stats.Absent++
		} else {
			stats.PossiblyPresent++
		}
	}
	if err := writer.Flush(); err != nil {
		return stats, err
	}

	logger.WithFields(logrus.Fields{
		"lines":            stats.Lines,
		"absent":           stats.Absent,
		"possibly_present": stats.PossiblyPresent,
	}).Info("batch complete")
	return stats, nil
}

// RunFile decodes inputPath with the corpus encoding and writes labels to
// outputPath, or to OutputPath(inputPath) when outputPath is empty.
func (runner *Runner) RunFile(inputPath, outputPath, encodingName string) (Stats, error) {
	if outputPath == "" {
		outputPath = OutputPath(inputPath)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	reader, err := corpus.Decoder(in, encodingName)
	if err != nil {
		return Stats{}, err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output: %w", err)
	}

	stats, err := runner.Run(reader, out)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close output: %w", closeErr)
	}
	if err != nil {
		// 不留下不完整的输出文件
		if removeErr := os.Remove(outputPath); removeErr != nil && !os.IsNotExist(removeErr) {
			runner.logger.WithError(removeErr).WithField("output", outputPath).Warn("could not remove partial output")
		}
		return stats, err
	}

	runner.logger.WithFields(logrus.Fields{
		"run_id": stats.RunID,
		"input":  inputPath,
		"output": outputPath,
	}).Info("output file written")
	return stats, nil
}
