package clip

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/source"
)

var quatComponents = [4]string{"qx", "qy", "qz", "qw"}

// ToSource rebuilds a text clip from the decoded data.
//
// Per node, rotation channels come first in the form selected by mode:
//   - DumpDefault: one rN channel of Euler degrees per sourced rotation axis
//   - DumpLogVecs: lvx, lvy and lvz log vector channels
//   - DumpQuats: qx, qy, qz and qw quaternion channels
//
// Sourced position and scale channels follow with their raw values, and
// non-default transform or rotation orders are kept as constant xOrd/rOrd
// channels so the result compiles back to the same clip.
func (c *Clip) ToSource(mode format.DumpMode) *source.Clip {
	out := source.New(c.Name, c.FPS, c.FrameCount)

	for i := range c.nodes {
		n := &c.nodes[i]
		c.addRotation(out, n, mode)
		c.addRaw(out, n, format.TrackPosition, n.Position)
		c.addRaw(out, n, format.TrackScale, n.Scale)

		if n.XformOrder != format.XformSRT {
			out.MustAddChannel(n.Name+":"+xformOrderChannel, c.constant(float32(n.XformOrder)))
		}
		if n.RotOrder != format.RotXYZ {
			out.MustAddChannel(n.Name+":"+rotOrderChannel, c.constant(float32(n.RotOrder)))
		}
	}

	return out
}

// Dump writes ToSource(mode) in clip syntax.
func (c *Clip) Dump(w io.Writer, mode format.DumpMode) error {
	return source.Write(w, c.ToSource(mode))
}

func (c *Clip) constant(v float32) []float32 {
	data := make([]float32, c.FrameCount)
	for i := range data {
		data[i] = v
	}

	return data
}

// column samples one component of a per-frame value.
func (c *Clip) column(axis int, get func(int) mgl32.Vec3) []float32 {
	data := make([]float32, c.FrameCount)
	for f := range data {
		data[f] = get(f)[axis]
	}

	return data
}

func (c *Clip) addRaw(out *source.Clip, n *Node, kind format.TrackKind, get func(int) mgl32.Vec3) {
	info := &n.tracks[kind].Info
	for ax := range 3 {
		if info.SrcMask&(1<<ax) == 0 {
			continue
		}
		name := n.Name + ":" + string([]byte{kind.Letter(), axisNames[ax]})
		out.MustAddChannel(name, c.column(ax, get))
	}
}

func (c *Clip) addRotation(out *source.Clip, n *Node, mode format.DumpMode) {
	info := &n.tracks[format.TrackRotation].Info
	if !info.HasSource() {
		return
	}

	switch mode {
	case format.DumpLogVecs:
		for ax := range 3 {
			out.MustAddChannel(n.Name+":lv"+string(axisNames[ax]), c.column(ax, n.LogVector))
		}
	case format.DumpQuats:
		qs := make([]mgl32.Quat, c.FrameCount)
		for f := range qs {
			qs[f] = n.Quat(f)
		}
		for comp, suffix := range quatComponents {
			data := make([]float32, c.FrameCount)
			for f, q := range qs {
				if comp == 3 {
					data[f] = q.W
				} else {
					data[f] = q.V[comp]
				}
			}
			out.MustAddChannel(n.Name+":"+suffix, data)
		}
	default:
		c.addRaw(out, n, format.TrackRotation, n.Degrees)
	}
}
