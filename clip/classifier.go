package clip

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/internal/pool"
	"github.com/arloliu/mclip/quat"
	"github.com/arloliu/mclip/section"
	"github.com/arloliu/mclip/source"
)

const (
	xformOrderChannel = "xOrd"
	rotOrderChannel   = "rOrd"
)

var axisNames = [3]byte{'x', 'y', 'z'}

// classifyNode builds the node at position idx from the channels of src named
// "name:<chan>".
func classifyNode(src *source.Clip, idx int, name string) Node {
	n := Node{
		Name:       name,
		Index:      idx,
		XformOrder: format.XformSRT,
		RotOrder:   format.RotXYZ,
		frameCount: src.FrameCount,
	}

	if v, ok := orderValue(src, name, xformOrderChannel); ok {
		if ord := format.TransformOrder(v); v >= 0 && ord.IsValid() {
			n.XformOrder = ord
		} else {
			Logger().Warn("transform order out of range, using SRT", "node", name, "value", v)
		}
	}
	if v, ok := orderValue(src, name, rotOrderChannel); ok {
		if ord := format.RotationOrder(v); v >= 0 && ord.IsValid() {
			n.RotOrder = ord
		} else {
			Logger().Warn("rotation order out of range, using XYZ", "node", name, "value", v)
		}
	}

	for k := range format.TrackKindCount {
		n.tracks[k] = classifyTrack(src, &n, format.TrackKind(k))
	}

	Logger().Debug("classified node",
		"node", name,
		"index", idx,
		"xord", n.XformOrder,
		"rord", n.RotOrder,
		"pos", maskString(n.tracks[format.TrackPosition].Info),
		"rot", maskString(n.tracks[format.TrackRotation].Info),
		"scl", maskString(n.tracks[format.TrackScale].Info),
	)

	return n
}

// orderValue reads an order channel at frame 0. Animated order channels are
// not supported; the first frame wins.
func orderValue(src *source.Clip, node, chName string) (int, bool) {
	ch := src.FindChannel(node, chName)
	if ch == nil {
		return 0, false
	}
	if !ch.IsConst() {
		Logger().Warn("animated order channel, using first frame", "node", node, "channel", chName)
	}

	return int(math.Round(float64(ch.Value(0)))), true
}

// classifyTrack materializes one track of node n.
//
// Tracks without any source channel keep a zero TrackInfo and no samples.
func classifyTrack(src *source.Clip, n *Node, kind format.TrackKind) Track {
	trk := Track{Kind: kind}

	var chans [3]*source.Channel
	for i := range 3 {
		chans[i] = src.FindChannel(n.Name, string([]byte{kind.Letter(), axisNames[i]}))
		if chans[i] != nil {
			trk.Info.SrcMask |= 1 << i
		}
	}
	if trk.Info.SrcMask == 0 {
		return trk
	}

	frames := src.FrameCount
	samples := make([]mgl32.Vec3, frames)
	def := kind.Default()
	for f := range frames {
		for i, ch := range chans {
			if ch != nil {
				samples[f][i] = ch.Value(f)
			} else {
				samples[f][i] = def
			}
		}
	}

	if kind == format.TrackRotation {
		toLogVectors(samples, n.RotOrder)
	}

	if frames > 0 {
		trk.Info.Min = samples[0]
		trk.Info.Max = samples[0]
	} else {
		for i, ch := range chans {
			if ch == nil {
				trk.Info.Min[i] = def
				trk.Info.Max[i] = def
			}
		}
	}
	for _, v := range samples[min(1, frames):] {
		for i := range 3 {
			trk.Info.Min[i] = min(trk.Info.Min[i], v[i])
			trk.Info.Max[i] = max(trk.Info.Max[i], v[i])
		}
	}

	for i := range 3 {
		if trk.Info.Max[i] != trk.Info.Min[i] {
			trk.Info.DataMask |= 1 << i
		}
	}
	trk.Info.Stride = uint8(section.StrideOf(trk.Info.DataMask)) //nolint: gosec
	if trk.Info.DataMask != 0 {
		trk.Samples = samples
	}

	return trk
}

// toLogVectors converts Euler degree samples to continuous log vectors in place.
func toLogVectors(samples []mgl32.Vec3, order format.RotationOrder) {
	qs, cleanup := pool.GetQuatSlice(len(samples))
	defer cleanup()

	for f, deg := range samples {
		qs[f] = quat.FromDegrees(deg, order)
	}
	quat.ContinuityFix(qs)
	for f, q := range qs {
		samples[f] = quat.LogVector(q)
	}
}

func maskString(info section.TrackInfo) string {
	b := []byte("---/---")
	for i := range 3 {
		if info.SrcMask&(1<<i) != 0 {
			b[i] = axisNames[i]
		}
		if info.DataMask&(1<<i) != 0 {
			b[4+i] = axisNames[i]
		}
	}

	return string(b)
}
