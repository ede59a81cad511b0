package bloom

import (
	"fmt"
	"math"
)

type FilterParameters struct {
	BitsPerElement               uint64
	HashCount                    uint64
	DesiredFalsePositiveRate     float64
	TheoreticalFalsePositiveRate float64
}

// ComputeParameters derives the filter sizing from the desired false positive rate.
//
//	bitsPerElement = max(1, floor(ln(1/p) / ln(2)^2))
//	hashCount      = max(1, floor(0.7 * bitsPerElement))
//	theoretical    = 1 / e^(bitsPerElement * ln(2)^2)
//
// The theoretical rate only depends on bitsPerElement. It ignores the chosen
// hash count and the load factor, so it is reported next to the desired rate
// rather than treated as the true rate of a built filter.
func ComputeParameters(desiredFalsePositiveRate float64) (FilterParameters, error) {
	if math.IsNaN(desiredFalsePositiveRate) || desiredFalsePositiveRate <= 0 || desiredFalsePositiveRate >= 1 {
		return FilterParameters{}, fmt.Errorf("%w: desired false positive rate %v is outside (0,1)", ErrInvalidParameter, desiredFalsePositiveRate)
	}

	ln2Squared := math.Pow(math.Log(2), 2)
	bits := math.Log(1/desiredFalsePositiveRate) / ln2Squared
	if math.IsInf(bits, 0) {
		return FilterParameters{}, fmt.Errorf("%w: desired false positive rate %v is too small", ErrInvalidParameter, desiredFalsePositiveRate)
	}

	bitsPerElement := max(1, uint64(math.Floor(bits)))
	hashCount := max(1, uint64(math.Floor(0.7*float64(bitsPerElement))))

	return FilterParameters{
		BitsPerElement:               bitsPerElement,
		HashCount:                    hashCount,
		DesiredFalsePositiveRate:     desiredFalsePositiveRate,
		TheoreticalFalsePositiveRate: 1 / math.Pow(math.E, float64(bitsPerElement)*ln2Squared),
	}, nil
}

// 位数组大小 = 每个元素的位数 * 元素个数
func bitArraySize(parameters FilterParameters, corpusSize int) (uint, error) {
	if corpusSize <= 0 {
		return 0, ErrEmptyCorpus
	}
	n := uint64(corpusSize)
	if parameters.BitsPerElement > math.MaxUint64/n || parameters.BitsPerElement*n > uint64(math.MaxUint) {
		return 0, fmt.Errorf("%w: %d bits per element for %d entries", ErrFilterTooLarge, parameters.BitsPerElement, corpusSize)
	}
	return uint(parameters.BitsPerElement * n), nil
}
