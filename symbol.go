package huffcodec

// Symbol represents a single byte of input.
type Symbol uint8

// NumSymbols is the size of the alphabet.  Every byte value is a Symbol.
const NumSymbols = 256

// maxTreeNodes is the largest number of nodes a tree over NumSymbols leaves
// can have.
const maxTreeNodes = 2*NumSymbols - 1
