package evaluate

import (
	"errors"
	"fmt"
	"math/rand"

	"go-bloom-dict/bloom"
	"go-bloom-dict/index"
)

// Querier is satisfied by *bloom.BloomFilter.
type Querier interface {
	Query(candidate string) (bloom.Answer, error)
	Parameters() bloom.FilterParameters
	LoadFactor() float64
}

type Report struct {
	Tested         int
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int

	TheoreticalFalsePositiveRate float64
	LoadFactor                   float64

	DistinctWords int
	CorpusEntries int
}

// EmpiricalFalsePositiveRate is false positives over all candidates that are
// really absent; 0 when there were none.
func (report Report) EmpiricalFalsePositiveRate() float64 {
	negatives := report.FalsePositives + report.TrueNegatives
	if negatives == 0 {
		return 0
	}
	return float64(report.FalsePositives) / float64(negatives)
}

func (report Report) String() string {
	return fmt.Sprintf("tested=%d tp=%d fp=%d tn=%d fn=%d empirical_fp_rate=%.6f theoretical_fp_rate=%.6f load_factor=%.4f distinct_words=%d corpus_entries=%d",
		report.Tested, report.TruePositives, report.FalsePositives, report.TrueNegatives, report.FalseNegatives,
		report.EmpiricalFalsePositiveRate(), report.TheoreticalFalsePositiveRate, report.LoadFactor,
		report.DistinctWords, report.CorpusEntries)
}

// Evaluate checks every candidate against the filter and the exact index.
func Evaluate(filter Querier, truth *index.ExactIndex, candidates []string) (Report, error) {
	if filter == nil || truth == nil {
		return Report{}, errors.New("evaluate needs a filter and an exact index")
	}

	report := Report{
		TheoreticalFalsePositiveRate: filter.Parameters().TheoreticalFalsePositiveRate,
		LoadFactor:                   filter.LoadFactor(),
		DistinctWords:                truth.Len(),
		CorpusEntries:                truth.TotalOccurrences(),
	}
	for _, candidate := range candidates {
		answer, err := filter.Query(candidate)
		if err != nil {
			return report, fmt.Errorf("query %q: %w", candidate, err)
		}
		report.Tested++

		present := truth.Contains(candidate)
		switch {
		case present && answer == bloom.PossiblyPresent:
			report.TruePositives++
		case present:
			report.FalseNegatives++
		case answer == bloom.PossiblyPresent:
			report.FalsePositives++
		default:
			report.TrueNegatives++
		}
	}
	return report, nil
}

const charset = "abcdefghijklmnopqrstuvwxyz"

// RandomAbsentWords generates count distinct lowercase words of 3 to 12
// letters that are not in truth.
func RandomAbsentWords(rng *rand.Rand, count int, truth *index.ExactIndex) []string {
	result := make([]string, 0, count)
	seen := make(map[string]bool, count)

	for len(result) < count {
		keyLength := 3 + rng.Intn(10)
		keyBytes := make([]byte, keyLength)
		for i := range keyBytes {
			keyBytes[i] = charset[rng.Intn(len(charset))]
		}

		word := string(keyBytes)
		if seen[word] || truth.Contains(word) {
			continue
		}
		seen[word] = true
		result = append(result, word)
	}
	return result
}
