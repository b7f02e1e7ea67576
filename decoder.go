package huffcodec

import (
	"bufio"
	"bytes"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// MaxRepeatCount is the largest single-symbol repeat count DecodeBytes will
// expand in memory.  Decode streams single-symbol frames and has no limit.
const MaxRepeatCount = 1 << 30

// Decode decompresses the frame read from r and writes the original bytes
// to w.
//
// Raw and Huffman frames are assembled in memory and written only once the
// whole frame has decoded successfully; on failure nothing is written to w.
// A single-symbol frame cannot fail once its symbol and count are read, so
// its output is streamed to w in chunks; only an error from w itself can
// leave partial output there.
//
// The Huffman body carries no symbol count.  A stream cut short exactly on
// a code boundary therefore decodes without error to a prefix of the
// original bytes; only a cut inside a field, the tree, or a code is
// reported as ErrTruncated.
//
func Decode(w io.Writer, r io.Reader) error {
	assert.Assertf(w != nil, "io.Writer is nil")
	assert.Assertf(r != nil, "io.Reader is nil")

	byteReader, ok := r.(io.ByteReader)
	if !ok {
		byteReader = bufio.NewReader(r)
	}
	br := NewBitReader(byteReader)

	h, err := readHeader(br)
	if err != nil {
		log.Debugf("decode: %v", err)
		return err
	}

	if h.Mode == ModeSingle {
		c, count, err := readSingle(br)
		if err != nil {
			log.Debugf("decode: %v mode: %v", h.Mode, err)
			return err
		}
		return writeRepeated(w, c, count)
	}

	out, err := decodeBuffered(br, h)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return errors.WithStack(err)
}

// DecodeBytes decompresses src and returns the original bytes.  On failure
// it returns a nil slice; on success the slice is non-nil, even when empty.
//
// Single-symbol frames with a repeat count above MaxRepeatCount are
// rejected with ErrBadHeader rather than allocated.
//
func DecodeBytes(src []byte) ([]byte, error) {
	br := NewBitReader(bytes.NewReader(src))

	h, err := readHeader(br)
	if err != nil {
		log.Debugf("decode: %v", err)
		return nil, err
	}

	if h.Mode == ModeSingle {
		c, count, err := readSingle(br)
		if err == nil && count > MaxRepeatCount {
			err = errors.Wrapf(ErrBadHeader, "repeat count %d exceeds %d", count, MaxRepeatCount)
		}
		if err != nil {
			log.Debugf("decode: %v mode: %v", h.Mode, err)
			return nil, err
		}
		return bytes.Repeat([]byte{c}, int(count)), nil
	}

	out, err := decodeBuffered(br, h)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

func decodeBuffered(br *BitReader, h Header) ([]byte, error) {
	var out bytes.Buffer
	var err error
	switch h.Mode {
	case ModeRaw:
		err = decodeRaw(br, &out)
	case ModeHuffman:
		err = decodeHuffman(br, &out, h.MeaningfulBits)
	default:
		assert.Assertf(false, "decodeBuffered: unexpected mode %v", h.Mode)
	}
	if err != nil {
		log.Debugf("decode: %v mode: %v", h.Mode, err)
		return nil, err
	}
	return out.Bytes(), nil
}

func decodeRaw(br *BitReader, out *bytes.Buffer) error {
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return truncated(err, "raw byte")
		}
		out.WriteByte(c)
	}
}

func readSingle(br *BitReader) (byte, uint64, error) {
	c, err := br.ReadByte()
	if err != nil {
		return 0, 0, truncated(err, "repeated symbol")
	}
	count, err := br.ReadBits(repeatCountBits)
	if err != nil {
		return 0, 0, truncated(err, "repeat count")
	}
	return c, count, nil
}

func writeRepeated(w io.Writer, c byte, count uint64) error {
	const chunkSize = 4096
	n := uint64(chunkSize)
	if count < n {
		n = count
	}
	chunk := bytes.Repeat([]byte{c}, int(n))
	for count > 0 {
		if count < n {
			n = count
		}
		if _, err := w.Write(chunk[:n]); err != nil {
			return errors.WithStack(err)
		}
		count -= n
	}
	return nil
}

func decodeHuffman(br *BitReader, out *bytes.Buffer, meaningful byte) error {
	br.SetFinalBits(meaningful)

	t, err := ReadTree(br)
	if err != nil {
		return err
	}

	root := t.Root()
	cursor := root
	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			if cursor != root {
				return errors.Wrap(ErrTruncated, "stream ends inside a code")
			}
			return nil
		}
		if err != nil {
			return truncated(err, "code")
		}

		if bit == 0 {
			cursor = t.Left(cursor)
		} else {
			cursor = t.Right(cursor)
		}
		if t.IsLeaf(cursor) {
			out.WriteByte(byte(t.Symbol(cursor)))
			cursor = root
		}
	}
}
