package huffcodec

import (
	"io"

	"github.com/pkg/errors"
)

// FrequencyTable holds the number of occurrences of each Symbol.
type FrequencyTable [NumSymbols]uint64

// CountFrequencies tallies every byte of r until r reports io.EOF.  The
// input is consumed; callers that need the bytes again must keep a copy.
func CountFrequencies(r io.ByteReader) (FrequencyTable, error) {
	var ft FrequencyTable
	for {
		c, err := r.ReadByte()
		if err == io.EOF {
			return ft, nil
		}
		if err != nil {
			return ft, errors.Wrap(err, "huffcodec: counting frequencies")
		}
		ft[c]++
	}
}

// CountBytes tallies every byte of data.
func CountBytes(data []byte) FrequencyTable {
	var ft FrequencyTable
	for _, c := range data {
		ft[c]++
	}
	return ft
}

// Total returns the sum of all counts.
func (ft *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, freq := range ft {
		sum += freq
	}
	return sum
}

// Distinct returns the number of symbols with a non-zero count.
func (ft *FrequencyTable) Distinct() int {
	var n int
	for _, freq := range ft {
		if freq != 0 {
			n++
		}
	}
	return n
}

// Symbols returns the symbols with a non-zero count, in ascending order.
func (ft *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ft.Distinct())
	for symbol, freq := range ft {
		if freq != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}
