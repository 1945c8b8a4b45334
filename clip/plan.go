package clip

import (
	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/section"
)

// buildEvalMap counts sourced tracks, channels and curves per kind and lists
// every sourced channel: animated ones first, then constant ones, each group
// ordered kind, node, channel.
func buildEvalMap(nodes []Node) (section.EvalCounts, []section.EvalEntry) {
	var counts section.EvalCounts
	for i := range nodes {
		for k := range format.TrackKindCount {
			info := &nodes[i].tracks[k].Info
			if !info.HasSource() {
				continue
			}
			counts.Tracks[k]++
			counts.Channels[k] += int32(info.Channels()) //nolint: gosec
			counts.Curves[k] += int32(info.Curves())     //nolint: gosec
		}
	}

	entries := make([]section.EvalEntry, 0, counts.ChannelsTotal())
	for _, animated := range [2]bool{true, false} {
		for k := range format.TrackKindCount {
			for i := range nodes {
				info := &nodes[i].tracks[k].Info
				for ch := range 3 {
					bit := uint8(1) << ch
					if info.SrcMask&bit == 0 || (info.DataMask&bit != 0) != animated {
						continue
					}
					entries = append(entries, section.EvalEntry{
						Node:    uint16(i), //nolint: gosec
						Kind:    format.TrackKind(k),
						Channel: uint8(ch), //nolint: gosec
					})
				}
			}
		}
	}

	return counts, entries
}

// trackLayout records where one track landed in the output, relative to the clip start.
type trackLayout struct {
	infoTop int // first byte of the TrackInfo
	dataTop int // first sample, 0 when the track has no samples
}

// buildSeq resolves one sequence entry per channel of every sourced track,
// ordered kind, node, channel.
//
// Animated channels point into the interleaved samples with the track stride;
// constant channels point at their min component with stride 0; channels
// without a source stay 0/0.
func buildSeq(nodes []Node, layout [][format.TrackKindCount]trackLayout) []section.SeqEntry {
	seq := make([]section.SeqEntry, 0, len(nodes)*format.TrackKindCount*3)
	for k := range format.TrackKindCount {
		for i := range nodes {
			info := &nodes[i].tracks[k].Info
			if !info.HasSource() {
				continue
			}
			loc := layout[i][k]
			for ch := range 3 {
				e := section.SeqEntry{Node: uint16(i), Channel: uint8(ch)} //nolint: gosec
				bit := uint8(1) << ch
				switch {
				case info.SrcMask&bit == 0:
				case info.DataMask&bit != 0:
					e.Offset = int32(loc.dataTop + section.StrideOf(info.DataMask&(bit-1))*section.SampleSize) //nolint: gosec
					e.Stride = info.Stride
				default:
					e.Offset = int32(loc.infoTop + section.TrackMinOffset + ch*4) //nolint: gosec
				}
				seq = append(seq, e)
			}
		}
	}

	return seq
}
