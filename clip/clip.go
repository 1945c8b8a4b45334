package clip

import (
	"slices"

	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/internal/hash"
	"github.com/arloliu/mclip/section"
)

// linearSearchLimit is the node count up to which FindNode compares names
// directly instead of binary searching the hash array.
const linearSearchLimit = 20

// Clip is a decoded MCLP clip.
//
// A Clip is immutable after decoding and safe for concurrent reads.
type Clip struct {
	Name       string
	FPS        float32
	FrameCount int

	nodes        []Node
	hashes       []uint32
	hashesSorted bool
	counts       section.EvalCounts
	evalMap      []section.EvalEntry
	seq          []section.SeqEntry

	data   []byte
	engine endian.EndianEngine
}

// NodeCount returns the number of nodes.
func (c *Clip) NodeCount() int {
	return len(c.nodes)
}

// Node returns the node at file position i. It panics if i is out of range.
func (c *Clip) Node(i int) *Node {
	return &c.nodes[i]
}

// Nodes returns all nodes in file order. The slice must not be modified.
func (c *Clip) Nodes() []Node {
	return c.nodes
}

// FindNode returns the node with the given name, or nil.
func (c *Clip) FindNode(name string) *Node {
	if i := c.NodeIndex(name); i >= 0 {
		return &c.nodes[i]
	}

	return nil
}

// NodeIndex returns the file position of the named node, or -1.
//
// Small clips are scanned linearly. Larger ones binary search the node-name
// hash array and then compare names across the run of equal hashes.
func (c *Clip) NodeIndex(name string) int {
	if len(c.nodes) <= linearSearchLimit || !c.hashesSorted {
		for i := range c.nodes {
			if c.nodes[i].Name == name {
				return i
			}
		}

		return -1
	}

	h := hash.Name32(name)
	i, found := slices.BinarySearch(c.hashes, h)
	if !found {
		return -1
	}
	for ; i < len(c.hashes) && c.hashes[i] == h; i++ {
		if c.nodes[i].Name == name {
			return i
		}
	}

	return -1
}

// Hashes returns the node-name hash array in file order.
func (c *Clip) Hashes() []uint32 {
	return c.hashes
}

// EvalCounts returns the per-kind track, channel and curve counts.
func (c *Clip) EvalCounts() section.EvalCounts {
	return c.counts
}

// EvalMap returns the eval map entries, animated channels first.
func (c *Clip) EvalMap() []section.EvalEntry {
	return c.evalMap
}

// Seq returns the sequence table.
func (c *Clip) Seq() []section.SeqEntry {
	return c.seq
}

// Bytes returns the raw clip bytes.
func (c *Clip) Bytes() []byte {
	return c.data
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float32 {
	if c.FPS <= 0 {
		return 0
	}

	return float32(c.FrameCount) / c.FPS
}

// ChannelSamples reads the raw values a sequence entry points at, the way a
// runtime walks the data: FrameCount values for an animated channel, a single
// value for a constant one and nil for a channel without a source.
func (c *Clip) ChannelSamples(e section.SeqEntry) []float32 {
	if !e.IsSourced() {
		return nil
	}

	off := int(e.Offset)
	if e.IsConstant() {
		return []float32{endian.Float32(c.engine, c.data[off:])}
	}

	out := make([]float32, c.FrameCount)
	step := int(e.Stride) * section.SampleSize
	for f := range out {
		out[f] = endian.Float32(c.engine, c.data[off+f*step:])
	}

	return out
}
