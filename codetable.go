package huffcodec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each Symbol to its Code.  Symbols absent from the tree have
// a zero-size Code.
type CodeTable [NumSymbols]Code

// Codes derives the code of every leaf: the branch choices from the root
// down to it, 0 for left and 1 for right, first branch in the lowest bit.
func (t *Tree) Codes() CodeTable {
	var table CodeTable

	// Walk the tree with an explicit stack.  The stack holds internal
	// nodes only, so its length is the depth of the children of its top
	// item, which is also the size of their codes.
	//
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children
	//
	// bits holds the code of the current path; bit i is rewritten every
	// time the walk turns at depth i, so no per-node copy is needed.

	type stackItem struct {
		id NodeID
		x  byte
	}

	var bits uint64
	stack := make([]stackItem, 0, log2uint32(uint32(len(t.nodes)))+1)

	processChild := func(child NodeID) {
		size := len(stack)
		assert.Assertf(size <= MaxCodeSize, "code size %d > MaxCodeSize %d", size, MaxCodeSize)
		if t.IsLeaf(child) {
			table[t.nodes[child].symbol] = MakeCode(byte(size), bits)
			return
		}
		stack = append(stack, stackItem{id: child})
	}

	if t.IsLeaf(t.root) {
		return table
	}

	stack = append(stack, stackItem{id: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		depth := uint(len(stack) - 1)
		x := top.x
		top.x++
		switch x {
		case 0:
			bits &^= uint64(1) << depth
			processChild(t.nodes[top.id].left)
		case 1:
			bits |= uint64(1) << depth
			processChild(t.nodes[top.id].right)
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
	return table
}

// Lookup returns the Code for symbol.
func (table *CodeTable) Lookup(symbol Symbol) Code {
	return table[symbol]
}

// EncodedBits returns the number of bits needed to code every symbol
// counted in ft.
func (table *CodeTable) EncodedBits(ft *FrequencyTable) uint64 {
	var sum uint64
	for symbol, freq := range ft {
		sum += freq * uint64(table[symbol].Size)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.  Symbols without a code are omitted.
func (table *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	for symbol, hc := range table {
		if hc.Size == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
