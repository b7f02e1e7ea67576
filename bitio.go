package huffcodec

import (
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// BitWriter turns a byte-oriented output into an LSB-first bit channel.
//
// Errors from the underlying io.ByteWriter are sticky: once a write fails,
// further bits are discarded and the error is reported by Err and Flush.
// A BitWriter is not safe for concurrent use.
type BitWriter struct {
	w     io.ByteWriter
	buf   byte
	fill  byte
	count uint64
	err   error
}

// NewBitWriter returns a BitWriter that emits completed bytes to w.
func NewBitWriter(w io.ByteWriter) *BitWriter {
	assert.Assertf(w != nil, "io.ByteWriter is nil")
	return &BitWriter{w: w}
}

// WriteBit appends the low bit of bit.
func (bw *BitWriter) WriteBit(bit uint) {
	bw.buf |= byte(bit&1) << bw.fill
	bw.fill++
	bw.count++
	if bw.fill == 8 {
		bw.emit()
	}
}

// WriteBits appends the low n bits of value, least significant first.
func (bw *BitWriter) WriteBits(value uint64, n byte) {
	assert.Assertf(n <= 64, "WriteBits: n %d > 64", n)
	for i := byte(0); i < n; i++ {
		bw.WriteBit(uint(value >> i))
	}
}

// WriteCode appends the bits of hc in transmission order.
func (bw *BitWriter) WriteCode(hc Code) {
	bw.WriteBits(hc.Bits, hc.Size)
}

// WriteByte appends the 8 bits of c, least significant first.  The
// returned error is the writer's sticky error, if any.
func (bw *BitWriter) WriteByte(c byte) error {
	if bw.fill == 0 {
		bw.buf = c
		bw.fill = 8
		bw.count += 8
		bw.emit()
		return bw.err
	}
	bw.WriteBits(uint64(c), 8)
	return bw.err
}

// Flush emits the partially filled last byte, if any, with zeros above the
// fill count.  It must be called once at the end of a write session;
// otherwise the tail bits are lost.
func (bw *BitWriter) Flush() error {
	if bw.fill != 0 {
		bw.emit()
	}
	return bw.err
}

// Pending returns the number of bits (0 .. 7) waiting for Flush.
func (bw *BitWriter) Pending() byte {
	return bw.fill
}

// Count returns the total number of bits written so far.
func (bw *BitWriter) Count() uint64 {
	return bw.count
}

// Err returns the first error reported by the underlying writer.
func (bw *BitWriter) Err() error {
	return bw.err
}

func (bw *BitWriter) emit() {
	if bw.err == nil {
		if err := bw.w.WriteByte(bw.buf); err != nil {
			bw.err = errors.WithStack(err)
		}
	}
	bw.buf = 0
	bw.fill = 0
}

var _ io.ByteWriter = (*BitWriter)(nil)

// BitReader turns a byte-oriented input into an LSB-first bit channel.
//
// The reader keeps one byte of lookahead so that it knows which byte is the
// last one before the underlying reader reports io.EOF.  Only the first
// FinalBits bits of that last byte are served; see SetFinalBits.
// A BitReader is not safe for concurrent use.
type BitReader struct {
	r         io.ByteReader
	cur       byte
	pos       byte
	avail     byte
	next      byte
	hasNext   bool
	started   bool
	finalBits byte
	err       error
}

// NewBitReader returns a BitReader that pulls bytes from r on demand.
func NewBitReader(r io.ByteReader) *BitReader {
	assert.Assertf(r != nil, "io.ByteReader is nil")
	return &BitReader{r: r, finalBits: 8}
}

// SetFinalBits declares how many bits (1 .. 8) of the stream's last byte
// carry data.  The remaining bits are padding and are never returned.  It
// must be called on a byte boundary, before the last byte is reached.
func (br *BitReader) SetFinalBits(n byte) {
	assert.Assertf(n >= 1 && n <= 8, "SetFinalBits: n %d out of range [1, 8]", n)
	assert.Assertf(br.avail == 0, "SetFinalBits: called with %d bits buffered", br.avail)
	br.finalBits = n
}

// ReadBit returns the next bit.  It returns io.EOF once the input is
// exhausted and no buffered bits remain.
func (br *BitReader) ReadBit() (uint, error) {
	if br.avail == 0 {
		if err := br.refill(); err != nil {
			return 0, err
		}
	}
	bit := uint(br.cur>>br.pos) & 1
	br.pos++
	br.avail--
	return bit, nil
}

// ReadBits reads n bits, least significant first.  It returns io.EOF if no
// bits at all were available, or io.ErrUnexpectedEOF if the input ran out
// part way through.
func (br *BitReader) ReadBits(n byte) (uint64, error) {
	assert.Assertf(n <= 64, "ReadBits: n %d > 64", n)
	var value uint64
	for i := byte(0); i < n; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			if err == io.EOF && i != 0 {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		value |= uint64(bit) << i
	}
	return value, nil
}

// ReadByte reads 8 bits, least significant first.  A partial byte is
// reported as io.ErrUnexpectedEOF.
func (br *BitReader) ReadByte() (byte, error) {
	if br.avail == 8 {
		br.avail = 0
		return br.cur, nil
	}
	value, err := br.ReadBits(8)
	return byte(value), err
}

func (br *BitReader) fetch() (byte, bool, error) {
	c, err := br.r.ReadByte()
	if err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.WithStack(err)
	}
	return c, true, nil
}

func (br *BitReader) refill() error {
	if br.err != nil {
		return br.err
	}
	if !br.started {
		br.started = true
		c, ok, err := br.fetch()
		if err != nil {
			br.err = err
			return err
		}
		br.next, br.hasNext = c, ok
	}
	if !br.hasNext {
		return io.EOF
	}

	br.cur = br.next
	br.pos = 0
	c, ok, err := br.fetch()
	if err != nil {
		br.err = err
		return err
	}
	br.next, br.hasNext = c, ok
	br.avail = 8
	if !ok {
		br.avail = br.finalBits
	}
	return nil
}

var _ io.ByteReader = (*BitReader)(nil)
