package huffcodec

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrTruncated is returned when a compressed stream ends in the middle
	// of a field, a tree, or a code.
	ErrTruncated = errors.New("huffcodec: truncated stream")

	// ErrBadMode is returned when the header names a framing mode that
	// does not exist.
	ErrBadMode = errors.New("huffcodec: invalid framing mode")

	// ErrBadHeader is returned when the header's fields are inconsistent
	// with its mode, or a reserved bit is set.
	ErrBadHeader = errors.New("huffcodec: invalid header")

	// ErrMalformedTree is returned when a serialized tree cannot describe
	// a prefix code over the byte alphabet.
	ErrMalformedTree = errors.New("huffcodec: malformed code tree")

	// ErrDegenerateTree is returned by BuildTree when fewer than two
	// distinct symbols have a non-zero frequency.
	ErrDegenerateTree = errors.New("huffcodec: need at least 2 distinct symbols to build a tree")
)

// truncated converts the end-of-data signals of BitReader into ErrTruncated,
// wrapped with what was being read.  Other errors pass through with context.
func truncated(err error, what string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrTruncated, what)
	}
	return errors.Wrapf(err, "huffcodec: reading %s", what)
}
