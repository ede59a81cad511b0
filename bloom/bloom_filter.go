package bloom

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrEmptyCorpus      = errors.New("empty corpus")
	ErrFilterNotBuilt   = errors.New("filter not built")
	ErrFilterTooLarge   = errors.New("filter too large")
	ErrAlreadyBuilt     = errors.New("filter already built")
)

type Answer int

const (
	Absent Answer = iota
	PossiblyPresent
)

func (answer Answer) String() string {
	switch answer {
	case Absent:
		return "Absent"
	case PossiblyPresent:
		return "PossiblyPresent"
	}
	return fmt.Sprintf("Answer(%d)", int(answer))
}

// BloomFilter is immutable once built. Queries only read the bit array and can
// run concurrently.
type BloomFilter struct {
	parameters FilterParameters
	hash       HashFunc
	corpusSize int
	bitVec     *bitset.BitSet //位数组
}

// New builds a filter over corpus in one call.
func New(desiredFalsePositiveRate float64, corpus []string, options Options) (*BloomFilter, error) {
	builder := NewBloomFilterBuilder(desiredFalsePositiveRate, options)
	if err := builder.AddAll(corpus); err != nil {
		return nil, err
	}
	return builder.Build()
}

// Query answers Absent if any salted position is 0, PossiblyPresent if all are 1.
// Every inserted word answers PossiblyPresent.
func (filter *BloomFilter) Query(candidate string) (Answer, error) {
	if filter == nil || filter.bitVec == nil || filter.bitVec.Len() == 0 {
		return Absent, ErrFilterNotBuilt
	}

	answer := PossiblyPresent
	newPositioner(filter.hash, filter.parameters.HashCount, filter.bitVec.Len()).
		forEach(TrimTerminators(candidate), func(position uint) bool {
			if !filter.bitVec.Test(position) {
				answer = Absent
				return false
			}
			return true
		})
	return answer, nil
}

// 全1就可能存在 0就一定不存在
func (filter *BloomFilter) MayContain(candidate string) bool {
	answer, err := filter.Query(candidate)
	if err != nil {
		panic(err)
	}
	return answer == PossiblyPresent
}

func (filter *BloomFilter) Parameters() FilterParameters {
	return filter.parameters
}

// Size is the bit array length.
func (filter *BloomFilter) Size() uint {
	return filter.bitVec.Len()
}

func (filter *BloomFilter) CorpusSize() int {
	return filter.corpusSize
}

func (filter *BloomFilter) SetBits() uint {
	return filter.bitVec.Count()
}

// LoadFactor is the fraction of bits set to 1.
func (filter *BloomFilter) LoadFactor() float64 {
	return float64(filter.SetBits()) / float64(filter.Size())
}

// Equal reports whether both filters share parameters and an identical bit array.
func (filter *BloomFilter) Equal(other *BloomFilter) bool {
	if filter == nil || other == nil {
		return filter == other
	}
	return filter.parameters == other.parameters &&
		filter.corpusSize == other.corpusSize &&
		filter.bitVec.Equal(other.bitVec)
}
