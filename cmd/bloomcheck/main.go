package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anacrolix/tagflag"
	"github.com/sirupsen/logrus"

	"go-bloom-dict/batch"
	"go-bloom-dict/bloom"
	"go-bloom-dict/config"
	"go-bloom-dict/corpus"
	"go-bloom-dict/evaluate"
	"go-bloom-dict/index"
)

type args struct {
	Config   string  `help:"YAML config file"`
	Rate     string  `help:"desired false positive rate, e.g. 0.05 for 5%"`
	Corpus   string  `help:"word list the filter is built from, one word per line"`
	Encoding string  `help:"text encoding of the word list and the input file"`
	Hash     string  `help:"hash primitive: murmur3 or xxhash"`
	Workers  int     `help:"number of parallel build shards"`
	Evaluate int     `help:"measure the false positive rate over this many random absent words"`
	LogLevel string  `help:"log level"`
	Output   string  `help:"output file for batch mode, defaults to output_<input>"`
	tagflag.StartPos
	Input string `arity:"?" help:"file with one word per line to check"`
}

func main() {
	var flags args
	tagflag.Parse(&flags, tagflag.Description("checks words against a bloom filter built from a dictionary file"))

	if err := run(flags, os.Stdin, os.Stdout, newLogger(os.Stderr)); err != nil {
		fmt.Fprintf(os.Stderr, "bloomcheck: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}

// merge lets non-zero flags override the config file.
func merge(cfg *config.Config, flags args) error {
	if flags.Rate != "" {
		rate, err := parseRate(flags.Rate)
		if err != nil {
			return err
		}
		cfg.DesiredFalsePositiveRate = rate
	}
	if flags.Corpus != "" {
		cfg.Corpus.Path = flags.Corpus
	}
	if flags.Encoding != "" {
		cfg.Corpus.Encoding = flags.Encoding
	}
	if flags.Hash != "" {
		cfg.Hash = flags.Hash
	}
	if flags.Workers != 0 {
		cfg.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.Output != "" {
		cfg.OutputPath = flags.Output
	}
	return nil
}

func parseRate(value string) (float64, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", bloom.ErrInvalidParameter, err)
	}
	return rate, nil
}

func run(flags args, stdin io.Reader, stdout io.Writer, logger *logrus.Logger) error {
	cfg, err := config.Load(flags.Config)
	if err != nil {
		return err
	}
	if err := merge(cfg, flags); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)

	input := bufio.NewReader(stdin)
	if cfg.DesiredFalsePositiveRate == 0 {
		rate, err := promptRate(input, stdout)
		if err != nil {
			return err
		}
		cfg.DesiredFalsePositiveRate = rate
	}

	words, err := corpus.Load(cfg.Corpus.Path, cfg.Corpus.Encoding)
	if err != nil {
		return err
	}
	options, err := cfg.FilterOptions(logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "generating bloom filter...")
	filter, err := bloom.New(cfg.DesiredFalsePositiveRate, words.Words(), options)
	if err != nil {
		return err
	}
	printParameters(stdout, filter)

	if flags.Evaluate > 0 {
		truth := index.FromWords(words.Words())
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		report, err := evaluate.Evaluate(filter, truth, evaluate.RandomAbsentWords(rng, flags.Evaluate, truth))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "empirical false positive rate: %v (%d of %d)\n",
			report.EmpiricalFalsePositiveRate(), report.FalsePositives, report.Tested)
		logger.WithField("report", report.String()).Debug("evaluation finished")
	}

	if flags.Input != "" {
		fmt.Fprintln(stdout, "generating output file...")
		if _, err := batch.NewRunner(filter, logger).RunFile(flags.Input, cfg.OutputPath, cfg.Corpus.Encoding); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "done")
		return nil
	}

	return interactive(filter, input, stdout)
}

func printParameters(out io.Writer, filter *bloom.BloomFilter) {
	parameters := filter.Parameters()
	fmt.Fprintln(out, "bloom filter created")
	fmt.Fprintf(out, "desired false positive rate: %v\n", parameters.DesiredFalsePositiveRate)
	fmt.Fprintf(out, "bits per input word: %d\n", parameters.BitsPerElement)
	fmt.Fprintf(out, "hashes: %d\n", parameters.HashCount)
	fmt.Fprintf(out, "actual false positive rate: %v\n", parameters.TheoreticalFalsePositiveRate)
}

func promptRate(input *bufio.Reader, out io.Writer) (float64, error) {
	fmt.Fprint(out, `enter desired false positive rate (e.g. "0.05" = 5%): `)
	line, err := input.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, fmt.Errorf("read false positive rate: %w", err)
	}
	return parseRate(line)
}

// interactive answers one word per line until "q" or end of input.
func interactive(filter *bloom.BloomFilter, input *bufio.Reader, out io.Writer) error {
	for {
		fmt.Fprint(out, `enter word to test ("q" to exit): `)
		line, err := input.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		word := bloom.TrimTerminators(line)
		if word == "q" || (err == io.EOF && line == "") {
			fmt.Fprintln(out, "goodbye")
			return nil
		}

		answer, queryErr := filter.Query(word)
		if queryErr != nil {
			return queryErr
		}
		fmt.Fprintln(out, answer)
		if err == io.EOF {
			fmt.Fprintln(out, "goodbye")
			return nil
		}
	}
}
