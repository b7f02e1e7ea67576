package huffcodec

import (
	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// SerializedTreeBits returns the size in bits of a serialized tree with
// numLeaves leaves: 9 bits per leaf plus 1 bit per internal node.
func SerializedTreeBits(numLeaves int) uint64 {
	assert.Assertf(numLeaves >= 1, "numLeaves %d < 1", numLeaves)
	return uint64(10*numLeaves - 1)
}

// WriteTree serializes t in pre-order.  An internal node is written as a 1
// bit followed by its left and right subtrees; a leaf is written as a 0 bit
// followed by its 8-bit symbol.
func WriteTree(bw *BitWriter, t *Tree) {
	t.preorder(func(id NodeID, _ int) {
		if t.IsLeaf(id) {
			bw.WriteBit(0)
			bw.WriteBits(uint64(t.nodes[id].symbol), 8)
		} else {
			bw.WriteBit(1)
		}
	})
}

// ReadTree is the inverse of WriteTree.  The format is self-terminating, so
// ReadTree consumes exactly the bits WriteTree produced.
//
// Trees that cannot have come from BuildTree are rejected with
// ErrMalformedTree: a lone leaf, a symbol appearing twice, or more nodes
// than a 256-symbol alphabet allows.  Running out of input yields
// ErrTruncated.
//
func ReadTree(br *BitReader) (*Tree, error) {
	t := &Tree{root: NoNode}

	// stack holds the internal nodes still waiting for children.
	// stackItem.x counts the children attached so far (0 or 1).

	type stackItem struct {
		id NodeID
		x  byte
	}

	var stack []stackItem
	var seen [NumSymbols]bool

	for {
		if len(t.nodes) >= maxTreeNodes {
			return nil, errors.Wrapf(ErrMalformedTree, "more than %d nodes", maxTreeNodes)
		}

		bit, err := br.ReadBit()
		if err != nil {
			return nil, truncated(err, "tree node tag")
		}

		if bit != 0 {
			id := t.addInternal(NoNode, NoNode)
			stack = append(stack, stackItem{id: id})
			continue
		}

		c, err := br.ReadByte()
		if err != nil {
			return nil, truncated(err, "leaf symbol")
		}
		if len(stack) == 0 {
			return nil, errors.Wrapf(ErrMalformedTree, "root is a leaf (symbol %d)", c)
		}
		if seen[c] {
			return nil, errors.Wrapf(ErrMalformedTree, "duplicate leaf for symbol %d", c)
		}
		seen[c] = true
		id := t.addLeaf(Symbol(c), 0)

		// Attach the completed subtree to its parent.  Completing a
		// right child completes the parent, so keep climbing.

		for {
			if len(stack) == 0 {
				t.root = id
				return t, nil
			}
			top := &stack[len(stack)-1]
			if top.x == 0 {
				t.nodes[top.id].left = id
				top.x = 1
				break
			}
			t.nodes[top.id].right = id
			id = top.id
			stack = stack[:len(stack)-1]
		}
	}
}
