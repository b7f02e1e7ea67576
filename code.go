package huffcodec

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxCodeSize is the longest code this package can assign.  A tree this deep
// needs an input whose length exceeds the 65th Fibonacci number, so it is
// never reached in practice.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits is the first bit, i.e. the branch taken at the root.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.  Bits above
// size are discarded.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits & lowMask(size)}
}

// Bit returns the i'th bit of the code, counting from the first bit sent.
func (hc Code) Bit(i byte) uint {
	return uint(hc.Bits>>i) & 1
}

// IsPrefixOf returns true iff every bit of hc matches the start of other.
// A code is a prefix of itself.
func (hc Code) IsPrefixOf(other Code) bool {
	if hc.Size > other.Size {
		return false
	}
	return hc.Bits == other.Bits&lowMask(hc.Size)
}

// String returns the string representation of this Code, first bit first.
func (hc Code) String() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := byte(0); i < hc.Size; i++ {
		sb.WriteByte('0' + byte(hc.Bit(i)))
	}
	return strconv.Quote(sb.String())
}

var _ fmt.Stringer = Code{}
