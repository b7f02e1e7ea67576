// Package huffcodec implements a lossless byte-stream compressor built on
// Huffman prefix codes.  The code tree is serialized into the compressed
// stream, so the decoder needs nothing but the stream itself.
//
// Compressed frame layout (all fields LSB-first within each byte):
//
//     header   1 byte: mode (2 bits), meaningful bits - 1 (3 bits), reserved (3 bits)
//     raw      the input bytes, verbatim
//     single   symbol (8 bits), repeat count (64 bits)
//     huffman  serialized tree, then one code per input byte, zero-padded
//
// Inputs shorter than MinHuffmanLength bytes are stored raw.  Inputs made of
// a single distinct byte value are stored as (symbol, count).  Everything
// else is Huffman coded.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffcodec
