package huffcodec

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// NodeID identifies a node within a Tree.
type NodeID int32

// NoNode is returned by Left and Right for leaves.
const NoNode = NodeID(-1)

type treeNode struct {
	weight uint64
	left   NodeID
	right  NodeID
	symbol Symbol
}

// Tree is a binary prefix-code tree.  Leaves carry symbols; every internal
// node has exactly two children.  Nodes live in a single slice and refer to
// their children by index, so a Tree has no shared or cyclic references.
type Tree struct {
	nodes []treeNode
	root  NodeID
}

// BuildTree constructs a Huffman tree from the non-zero entries of ft using
// the greedy two-way merge: the two lightest nodes are repeatedly combined,
// the first one extracted becoming the left child.  Ties are broken by
// creation order, leaves first in symbol order.
//
// At least two distinct symbols are required; otherwise BuildTree returns
// ErrDegenerateTree.
//
func BuildTree(ft *FrequencyTable) (*Tree, error) {
	assert.Assertf(ft != nil, "FrequencyTable is nil")

	numLeaves := ft.Distinct()
	if numLeaves < 2 {
		return nil, errors.WithStack(ErrDegenerateTree)
	}

	t := &Tree{
		nodes: make([]treeNode, 0, 2*numLeaves-1),
		root:  NoNode,
	}

	// Step 1: build a minheap of leaves.

	h := weightHeap{make([]nodeAndWeight, 0, numLeaves)}
	for symbol, freq := range ft {
		if freq == 0 {
			continue
		}
		id := t.addLeaf(Symbol(symbol), freq)
		h.list = append(h.list, nodeAndWeight{id, freq})
	}
	h.Init()

	// Step 2: pop two nodes, join them under a new internal node, and
	// push that node back until only the root remains.

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndWeight)
		b := heap.Pop(&h).(nodeAndWeight)
		id := t.addInternal(a.id, b.id)
		heap.Push(&h, nodeAndWeight{id, t.nodes[id].weight})
	}

	t.root = heap.Pop(&h).(nodeAndWeight).id
	return t, nil
}

// Root returns the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// IsLeaf returns true iff id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.nodes[id].left == NoNode
}

// Symbol returns the symbol of the leaf id.
func (t *Tree) Symbol(id NodeID) Symbol {
	assert.Assertf(t.IsLeaf(id), "node %d is not a leaf", id)
	return t.nodes[id].symbol
}

// Left returns the left ("0") child of id, or NoNode for a leaf.
func (t *Tree) Left(id NodeID) NodeID {
	return t.nodes[id].left
}

// Right returns the right ("1") child of id, or NoNode for a leaf.
func (t *Tree) Right(id NodeID) NodeID {
	return t.nodes[id].right
}

// Weight returns the sum of the leaf frequencies beneath id.  Trees read
// back by ReadTree carry no frequencies, so all their weights are 0.
func (t *Tree) Weight(id NodeID) uint64 {
	return t.nodes[id].weight
}

// NumNodes returns the number of nodes in the tree.
func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. distinct symbols.
func (t *Tree) NumLeaves() int {
	return (len(t.nodes) + 1) / 2
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer, one node per line in pre-order.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	t.preorder(func(id NodeID, depth int) {
		buf.WriteByte('\t')
		buf.WriteString(strings.Repeat("  ", depth))
		if t.IsLeaf(id) {
			fmt.Fprintf(&buf, "leaf %d (%d)\n", t.nodes[id].symbol, t.nodes[id].weight)
		} else {
			fmt.Fprintf(&buf, "node (%d)\n", t.nodes[id].weight)
		}
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// preorder visits every node, parent before children and left before right,
// using an explicit stack so that chain-shaped trees cannot exhaust the
// goroutine stack.
func (t *Tree) preorder(fn func(id NodeID, depth int)) {
	type stackItem struct {
		id    NodeID
		depth int
	}

	stack := make([]stackItem, 0, log2uint32(uint32(len(t.nodes)))+1)
	stack = append(stack, stackItem{t.root, 0})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(top.id, top.depth)
		if node := t.nodes[top.id]; node.left != NoNode {
			stack = append(stack, stackItem{node.right, top.depth + 1})
			stack = append(stack, stackItem{node.left, top.depth + 1})
		}
	}
}

func (t *Tree) addLeaf(symbol Symbol, weight uint64) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{
		weight: weight,
		left:   NoNode,
		right:  NoNode,
		symbol: symbol,
	})
	return id
}

func (t *Tree) addInternal(left NodeID, right NodeID) NodeID {
	var weight uint64
	if left != NoNode && right != NoNode {
		a, b := t.nodes[left].weight, t.nodes[right].weight

		// saturating addition
		weight = a + b
		if weight < a {
			weight = math.MaxUint64
		}
	}

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{
		weight: weight,
		left:   left,
		right:  right,
	})
	return id
}

// type nodeAndWeight + type weightHeap {{{

type nodeAndWeight struct {
	id     NodeID
	weight uint64
}

type weightHeap struct {
	list []nodeAndWeight
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.id < b.id
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndWeight))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
