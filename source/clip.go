// Package source holds the text clip model: named per-axis animation channels
// sampled at a fixed rate, as exported by the content tool.
//
// A channel name has the form "path/to/node:chan", where chan is tx, ry, sz and
// so on. Channels are grouped into nodes by their short name, the part after
// the last '/' and before the last ':'.
package source

import (
	"fmt"
	"strings"

	"github.com/arloliu/mclip/errs"
)

// DefaultRate is the sample rate assumed when a clip does not declare one.
const DefaultRate = 30

// MaxFrameCount is the largest tracklength Parse accepts.
const MaxFrameCount = 1 << 20

// Channel is one named sequence of per-frame samples.
//
// LeftType, RightType and Default keep the raw tokens of the matching track
// keys so Write can reproduce them; they do not affect sampling.
type Channel struct {
	Name      string
	Data      []float32
	Min       float32
	Max       float32
	LeftType  string
	RightType string
	Default   string
}

// NewChannel creates a channel and computes its value range.
func NewChannel(name string, data []float32) *Channel {
	ch := &Channel{Name: name, Data: data}
	ch.updateRange()

	return ch
}

func (c *Channel) updateRange() {
	if len(c.Data) == 0 {
		c.Min, c.Max = 0, 0
		return
	}

	c.Min, c.Max = c.Data[0], c.Data[0]
	for _, v := range c.Data[1:] {
		c.Min = min(c.Min, v)
		c.Max = max(c.Max, v)
	}
}

// ShortName returns the node part of the channel name.
func (c *Channel) ShortName() string {
	return ShortName(c.Name)
}

// ChannelName returns the part after the last ':' or "<none>".
func (c *Channel) ChannelName() string {
	return ChannelName(c.Name)
}

// IsConst reports whether every sample has the same value.
func (c *Channel) IsConst() bool {
	return c.Min == c.Max
}

// Value returns the sample at frame, or 0 when frame is out of range.
func (c *Channel) Value(frame int) float32 {
	if frame < 0 || frame >= len(c.Data) {
		return 0
	}

	return c.Data[frame]
}

func (c *Channel) String() string {
	return fmt.Sprintf("%s: %g..%g", c.Name, c.Min, c.Max)
}

// ShortName strips a node path and channel suffix: "/obj/rig/hips:tx" → "hips".
// Names without ':' or '/' are returned unchanged.
func ShortName(name string) string {
	if !strings.ContainsAny(name, ":/") {
		return name
	}

	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}

	return name
}

// ChannelName returns the channel suffix of a full name: "hips:tx" → "tx".
func ChannelName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}

	return "<none>"
}

// QuatChannels names the channel indices holding a quaternion's x, y and z.
type QuatChannels struct {
	X, Y, Z int
}

// Clip is a parsed text clip.
//
// Note: Clip is NOT thread-safe for mutation; a fully built clip may be read
// concurrently.
type Clip struct {
	Path         string
	Name         string
	Rate         float32
	Start        int // first frame, stored as the file's start + 1
	FrameCount   int
	Channels     []*Channel
	QuatOrder    string
	QuatChannels []QuatChannels

	index map[string]int // "short:chan" → channel index, last definition wins
}

// New creates an empty clip with the given name, sample rate and frame count.
func New(name string, rate float32, frames int) *Clip {
	return &Clip{
		Name:       name,
		Rate:       rate,
		FrameCount: frames,
		QuatOrder:  "xyz",
		index:      make(map[string]int),
	}
}

// AddChannel appends a channel; data must hold exactly FrameCount samples.
//
// Returns:
//   - *Channel: the added channel
//   - error: ErrInvalidName for an empty name, ErrChannelLength on a sample count mismatch
func (c *Clip) AddChannel(name string, data []float32) (*Channel, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty channel name", errs.ErrInvalidName)
	}
	if len(data) != c.FrameCount {
		return nil, fmt.Errorf("%w: channel %q has %d samples, clip has %d frames",
			errs.ErrChannelLength, name, len(data), c.FrameCount)
	}

	ch := NewChannel(name, data)
	c.Channels = append(c.Channels, ch)
	c.indexChannel(len(c.Channels) - 1)

	return ch, nil
}

// MustAddChannel is AddChannel for statically known input; it panics on error.
func (c *Clip) MustAddChannel(name string, data []float32) *Channel {
	ch, err := c.AddChannel(name, data)
	if err != nil {
		panic(err)
	}

	return ch
}

func (c *Clip) indexChannel(i int) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	ch := c.Channels[i]
	c.index[ch.ShortName()+":"+ch.ChannelName()] = i
}

func (c *Clip) reindex() {
	c.index = make(map[string]int, len(c.Channels))
	for i := range c.Channels {
		c.indexChannel(i)
	}
}

// FindChannelIdx returns the index of channel chName of node nodeName, or -1.
func (c *Clip) FindChannelIdx(nodeName, chName string) int {
	if c.index == nil {
		return -1
	}

	if i, ok := c.index[nodeName+":"+chName]; ok {
		return i
	}

	return -1
}

// FindChannel returns channel chName of node nodeName, or nil.
func (c *Clip) FindChannel(nodeName, chName string) *Channel {
	if i := c.FindChannelIdx(nodeName, chName); i >= 0 {
		return c.Channels[i]
	}

	return nil
}

// NodeNames returns the distinct short names in first-seen channel order.
func (c *Clip) NodeNames() []string {
	seen := make(map[string]struct{}, len(c.Channels))
	names := make([]string, 0, len(c.Channels))
	for _, ch := range c.Channels {
		name := ch.ShortName()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
