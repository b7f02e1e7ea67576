package huffcodec

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestBitWriter_LSBFirst(t *testing.T) {
	type testRow struct {
		name   string
		write  func(bw *BitWriter)
		expect []byte
	}

	testData := [...]testRow{
		{"empty", func(bw *BitWriter) {}, nil},
		{"one bit", func(bw *BitWriter) { bw.WriteBit(1) }, []byte{0x01}},
		{"three bits", func(bw *BitWriter) { bw.WriteBits(0x5, 3) }, []byte{0x05}},
		{"high bits ignored", func(bw *BitWriter) { bw.WriteBits(0xff, 2) }, []byte{0x03}},
		{"aligned byte", func(bw *BitWriter) { _ = bw.WriteByte(0xab) }, []byte{0xab}},
		{"byte then bit", func(bw *BitWriter) {
			_ = bw.WriteByte(0xab)
			bw.WriteBit(1)
		}, []byte{0xab, 0x01}},
		{"unaligned byte", func(bw *BitWriter) {
			bw.WriteBit(1)
			_ = bw.WriteByte(0xff)
		}, []byte{0xff, 0x01}},
		{"code", func(bw *BitWriter) { bw.WriteCode(MakeCode(4, 0x6)) }, []byte{0x06}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var buf bytes.Buffer
			bw := NewBitWriter(&buf)
			row.write(bw)
			require.NoError(t, bw.Flush())
			if !bytes.Equal(row.expect, buf.Bytes()) {
				t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", row.expect, buf.Bytes())
			}
		})
	}
}

func TestBitWriter_Pending(t *testing.T) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	bw.WriteBits(0, 13)
	require.Equal(t, byte(5), bw.Pending())
	require.Equal(t, uint64(13), bw.Count())
	require.Equal(t, 1, buf.Len())
	require.NoError(t, bw.Flush())
	require.Equal(t, byte(0), bw.Pending())
	require.Equal(t, 2, buf.Len())
}

type failingWriter struct{ err error }

func (w failingWriter) WriteByte(byte) error { return w.err }

func TestBitWriter_StickyError(t *testing.T) {
	boom := errors.New("boom")
	bw := NewBitWriter(failingWriter{boom})
	bw.WriteBits(0x3ff, 10)
	require.Equal(t, boom, errors.Cause(bw.Err()))
	require.Equal(t, boom, errors.Cause(bw.Flush()))
}

func TestBitReader_InverseLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n <= 70; n++ {
		bits := make([]uint, n)
		for i := range bits {
			bits[i] = uint(rng.Intn(2))
		}

		var buf bytes.Buffer
		bw := NewBitWriter(&buf)
		for _, bit := range bits {
			bw.WriteBit(bit)
		}
		require.NoError(t, bw.Flush())
		require.Equal(t, (n+7)/8, buf.Len(), "n=%d", n)

		br := NewBitReader(bytes.NewReader(buf.Bytes()))
		for i := 0; i < 8*buf.Len(); i++ {
			bit, err := br.ReadBit()
			require.NoError(t, err, "n=%d i=%d", n, i)
			if i < n {
				require.Equal(t, bits[i], bit, "n=%d i=%d", n, i)
			} else {
				require.Equal(t, uint(0), bit, "padding n=%d i=%d", n, i)
			}
		}
		_, err := br.ReadBit()
		require.Equal(t, io.EOF, err, "n=%d", n)
	}
}

func TestBitReader_ReadBits(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0x8f, 0x55}))

	a, err := br.ReadBits(4)
	require.NoError(t, err)
	require.Equal(t, uint64(0xf), a)

	b, err := br.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0x58), b)

	_, err = br.ReadBits(8)
	require.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestBitReader_ReadByte(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0x12, 0x34}))

	c, err := br.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x12), c)

	bit, err := br.ReadBit()
	require.NoError(t, err)
	require.Equal(t, uint(0), bit)

	_, err = br.ReadByte()
	require.Equal(t, io.ErrUnexpectedEOF, err)

	_, err = br.ReadByte()
	require.Equal(t, io.EOF, err)
}

func TestBitReader_Empty(t *testing.T) {
	br := NewBitReader(bytes.NewReader(nil))
	_, err := br.ReadBit()
	require.Equal(t, io.EOF, err)
	_, err = br.ReadByte()
	require.Equal(t, io.EOF, err)
}

func TestBitReader_SetFinalBits(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xff, 0xff, 0xff}))

	c, err := br.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xff), c)

	br.SetFinalBits(3)

	v, err := br.ReadBits(11)
	require.NoError(t, err)
	require.Equal(t, uint64(0x7ff), v)

	_, err = br.ReadBit()
	require.Equal(t, io.EOF, err)
}

type failingReader struct{ err error }

func (r failingReader) ReadByte() (byte, error) { return 0, r.err }

func TestBitReader_UpstreamError(t *testing.T) {
	boom := errors.New("boom")
	br := NewBitReader(failingReader{boom})
	_, err := br.ReadBit()
	require.Equal(t, boom, errors.Cause(err))
	_, err = br.ReadBit()
	require.Equal(t, boom, errors.Cause(err))
}
