package huffcodec

import (
	"bufio"
	"bytes"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// Encode compresses everything read from r and writes the compressed frame
// to w.  The whole input is buffered in memory first: counting frequencies
// and emitting codes are two separate scans over the same bytes.
func Encode(w io.Writer, r io.Reader) error {
	assert.Assertf(w != nil, "io.Writer is nil")
	assert.Assertf(r != nil, "io.Reader is nil")

	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "huffcodec: reading input")
	}

	bw := bufio.NewWriter(w)
	if err := encode(bw, data); err != nil {
		return err
	}
	return errors.WithStack(bw.Flush())
}

// EncodeBytes compresses data and returns the compressed frame.
func EncodeBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) + 1)
	if err := encode(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(out io.ByteWriter, data []byte) error {
	bw := NewBitWriter(out)

	if len(data) < MinHuffmanLength {
		log.Debugf("encode: %d bytes, %v mode", len(data), ModeRaw)
		writeHeader(bw, Header{Mode: ModeRaw})
		for _, c := range data {
			if err := bw.WriteByte(c); err != nil {
				return err
			}
		}
		return bw.Flush()
	}

	ft := CountBytes(data)

	if ft.Distinct() == 1 {
		log.Debugf("encode: %d bytes, %v mode, symbol %d", len(data), ModeSingle, data[0])
		writeHeader(bw, Header{Mode: ModeSingle})
		bw.WriteBits(uint64(data[0]), 8)
		bw.WriteBits(uint64(len(data)), repeatCountBits)
		return bw.Flush()
	}

	t, err := BuildTree(&ft)
	if err != nil {
		return err
	}
	table := t.Codes()

	// The decoder must know where the data in the last byte ends, so the
	// total length is computed up front and recorded in the header.
	total := 8 + SerializedTreeBits(t.NumLeaves()) + table.EncodedBits(&ft)
	meaningful := byte(total % 8)
	if meaningful == 0 {
		meaningful = 8
	}

	log.Debugf("encode: %d bytes, %v mode, %d leaves, %d bits", len(data), ModeHuffman, t.NumLeaves(), total)

	writeHeader(bw, Header{Mode: ModeHuffman, MeaningfulBits: meaningful})
	WriteTree(bw, t)
	for _, c := range data {
		bw.WriteCode(table[c])
		if bw.Err() != nil {
			return bw.Err()
		}
	}

	assert.Assertf(bw.Count() == total, "wrote %d bits, expected %d", bw.Count(), total)
	return bw.Flush()
}
