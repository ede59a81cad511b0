package bloom

import (
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"

	"go-bloom-dict/future"
)

type Options struct {
	// Hash defaults to Murmur3.
	Hash HashFunc
	// Workers > 1 splits the corpus into shards built in parallel.
	Workers int
	Logger  logrus.FieldLogger
}

func DefaultOptions() Options {
	return Options{
		Hash:    Murmur3,
		Workers: 1,
		Logger:  logrus.StandardLogger(),
	}
}

func (options Options) withDefaults() Options {
	if options.Hash == nil {
		options.Hash = Murmur3
	}
	if options.Workers < 1 {
		options.Workers = 1
	}
	if options.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		options.Logger = discard
	}
	return options
}

type BloomFilterBuilder struct {
	words                    []string
	desiredFalsePositiveRate float64
	options                  Options
	built                    bool
}

func NewBloomFilterBuilder(desiredFalsePositiveRate float64, options Options) *BloomFilterBuilder {
	return &BloomFilterBuilder{
		words:                    make([]string, 0),
		desiredFalsePositiveRate: desiredFalsePositiveRate,
		options:                  options.withDefaults(),
	}
}

func (builder *BloomFilterBuilder) Add(word string) error {
	if builder.built {
		return ErrAlreadyBuilt
	}
	builder.words = append(builder.words, TrimTerminators(word))
	return nil
}

func (builder *BloomFilterBuilder) AddAll(words []string) error {
	for _, word := range words {
		if err := builder.Add(word); err != nil {
			return err
		}
	}
	return nil
}

// Build validates the parameters and corpus before allocating anything, then
// inserts every word. The builder drops its words afterwards.
func (builder *BloomFilterBuilder) Build() (*BloomFilter, error) {
	if builder.built {
		return nil, ErrAlreadyBuilt
	}

	parameters, err := ComputeParameters(builder.desiredFalsePositiveRate)
	if err != nil {
		return nil, err
	}
	size, err := bitArraySize(parameters, len(builder.words))
	if err != nil {
		return nil, err
	}

	bitVec, err := builder.fill(parameters, size)
	if err != nil {
		return nil, err
	}

	filter := &BloomFilter{
		parameters: parameters,
		hash:       builder.options.Hash,
		corpusSize: len(builder.words),
		bitVec:     bitVec,
	}
	builder.built = true
	builder.words = nil

	builder.options.Logger.WithFields(logrus.Fields{
		"desired_fp_rate":     parameters.DesiredFalsePositiveRate,
		"bits_per_element":    parameters.BitsPerElement,
		"hashes":              parameters.HashCount,
		"theoretical_fp_rate": parameters.TheoreticalFalsePositiveRate,
		"corpus_size":         filter.corpusSize,
		"bit_array_size":      filter.Size(),
		"set_bits":            filter.SetBits(),
		"load_factor":         filter.LoadFactor(),
	}).Info("bloom filter created")

	return filter, nil
}

func (builder *BloomFilterBuilder) fill(parameters FilterParameters, size uint) (*bitset.BitSet, error) {
	workers := min(builder.options.Workers, len(builder.words))
	if workers <= 1 {
		bitVec := bitset.New(size)
		insert(bitVec, builder.words, builder.options.Hash, parameters.HashCount)
		return bitVec, nil
	}

	// 每个分片写自己的位数组 最后按位或合并 结果与顺序构建相同
	shardLength := (len(builder.words) + workers - 1) / workers
	shards := make([]*future.Future[*bitset.BitSet], 0, workers)
	for start := 0; start < len(builder.words); start += shardLength {
		words := builder.words[start:min(start+shardLength, len(builder.words))]
		shard := future.NewFuture[*bitset.BitSet]()
		shards = append(shards, shard)

		go func() {
			defer func() {
				if r := recover(); r != nil {
					shard.MarkDoneAsError(fmt.Errorf("build shard panicked: %v", r))
				}
			}()
			bitVec := bitset.New(size)
			insert(bitVec, words, builder.options.Hash, parameters.HashCount)
			shard.MarkDoneWith(bitVec)
		}()
	}

	var bitVec *bitset.BitSet
	var firstErr error
	for i, shard := range shards {
		shard.Wait()
		if shard.Status() == future.Failed {
			builder.options.Logger.WithFields(logrus.Fields{
				"shard":  i,
				"status": shard.Status(),
			}).WithError(shard.Err()).Error("build shard failed")
			if firstErr == nil {
				firstErr = shard.Err()
			}
			continue
		}
		if bitVec == nil {
			bitVec = shard.Value()
			continue
		}
		bitVec.InPlaceUnion(shard.Value())
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return bitVec, nil
}

// 设置已经为1的位不会有任何影响
func insert(bitVec *bitset.BitSet, words []string, hash HashFunc, hashCount uint64) {
	positions := newPositioner(hash, hashCount, bitVec.Len())
	for _, word := range words {
		positions.forEach(word, func(position uint) bool {
			bitVec.Set(position)
			return true
		})
	}
}
