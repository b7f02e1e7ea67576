package huffcodec

import (
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// Mode is the framing mode of a compressed stream.
type Mode byte

const (
	// ModeRaw stores the input verbatim.
	ModeRaw Mode = iota

	// ModeSingle stores one symbol and its repeat count.
	ModeSingle

	// ModeHuffman stores a serialized tree followed by the coded input.
	ModeHuffman

	numModes
)

// MinHuffmanLength is the shortest input that is not stored raw.
const MinHuffmanLength = 8

const (
	headerModeBits       = 2
	headerMeaningfulBits = 3
	headerReservedBits   = 8 - headerModeBits - headerMeaningfulBits

	// repeatCountBits is the width of the ModeSingle repeat count.
	repeatCountBits = 64
)

var modeNames = [...]string{"raw", "single", "huffman"}

// String returns a short name for the mode.
func (m Mode) String() string {
	if m < numModes {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}

var _ fmt.Stringer = Mode(0)

// Header is the first byte of every compressed stream.
type Header struct {
	Mode Mode

	// MeaningfulBits is the number of data bits (1 .. 8) in the last byte
	// of a ModeHuffman stream.  It is 0 in the other modes.
	MeaningfulBits byte
}

func (h Header) String() string {
	if h.Mode == ModeHuffman {
		return fmt.Sprintf("%v (%d meaningful bits)", h.Mode, h.MeaningfulBits)
	}
	return h.Mode.String()
}

// ReadHeader reads and validates the header of a compressed stream.
func ReadHeader(r io.ByteReader) (Header, error) {
	return readHeader(NewBitReader(r))
}

func readHeader(br *BitReader) (Header, error) {
	var h Header

	mode, err := br.ReadBits(headerModeBits)
	if err != nil {
		return h, truncated(err, "header")
	}
	meaningful, err := br.ReadBits(headerMeaningfulBits)
	if err != nil {
		return h, truncated(err, "header")
	}
	reserved, err := br.ReadBits(headerReservedBits)
	if err != nil {
		return h, truncated(err, "header")
	}

	h.Mode = Mode(mode)
	if h.Mode >= numModes {
		return h, errors.Wrapf(ErrBadMode, "mode tag %d", mode)
	}
	if reserved != 0 {
		return h, errors.Wrapf(ErrBadHeader, "reserved bits %#x", reserved)
	}
	if h.Mode == ModeHuffman {
		h.MeaningfulBits = byte(meaningful) + 1
	} else if meaningful != 0 {
		return h, errors.Wrapf(ErrBadHeader, "meaningful-bits field %d in %v mode", meaningful, h.Mode)
	}
	return h, nil
}

func writeHeader(bw *BitWriter, h Header) {
	assert.Assertf(h.Mode < numModes, "invalid mode %d", byte(h.Mode))
	var meaningful uint64
	if h.Mode == ModeHuffman {
		assert.Assertf(h.MeaningfulBits >= 1 && h.MeaningfulBits <= 8, "MeaningfulBits %d out of range [1, 8]", h.MeaningfulBits)
		meaningful = uint64(h.MeaningfulBits - 1)
	}
	bw.WriteBits(uint64(h.Mode), headerModeBits)
	bw.WriteBits(meaningful, headerMeaningfulBits)
	bw.WriteBits(0, headerReservedBits)
}
