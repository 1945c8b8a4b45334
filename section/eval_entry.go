package section

import (
	"fmt"

	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/errs"
	"github.com/arloliu/mclip/format"
)

// EvalCounts is the fixed prefix of the eval table: per track kind, the number
// of tracks with any source, of sourced channels and of sourced animated channels.
type EvalCounts struct {
	Tracks   [format.TrackKindCount]int32
	Channels [format.TrackKindCount]int32
	Curves   [format.TrackKindCount]int32
}

// TracksTotal returns the number of sourced tracks over all kinds.
func (c EvalCounts) TracksTotal() int {
	n := 0
	for _, v := range c.Tracks {
		n += int(v)
	}

	return n
}

// ChannelsTotal returns the number of eval map entries.
func (c EvalCounts) ChannelsTotal() int {
	n := 0
	for _, v := range c.Channels {
		n += int(v)
	}

	return n
}

// CurvesTotal returns the number of curve entries at the head of the eval map.
func (c EvalCounts) CurvesTotal() int {
	n := 0
	for _, v := range c.Curves {
		n += int(v)
	}

	return n
}

// AppendTo appends the 36-byte counts block to dst.
func (c *EvalCounts) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	for _, group := range [...]*[format.TrackKindCount]int32{&c.Tracks, &c.Channels, &c.Curves} {
		for _, v := range group {
			dst = engine.AppendUint32(dst, uint32(v)) //nolint: gosec
		}
	}

	return dst
}

// ParseEvalCounts parses the counts block from data[0:EvalCountsSize].
func ParseEvalCounts(data []byte, engine endian.EndianEngine) (EvalCounts, error) {
	if len(data) < EvalCountsSize {
		return EvalCounts{}, fmt.Errorf("%w: eval counts need %d bytes, have %d", errs.ErrTruncatedData, EvalCountsSize, len(data))
	}

	var c EvalCounts
	pos := 0
	for _, group := range [...]*[format.TrackKindCount]int32{&c.Tracks, &c.Channels, &c.Curves} {
		for i := range group {
			v := endian.Int32(engine, data[pos:])
			if v < 0 {
				return EvalCounts{}, fmt.Errorf("%w: negative eval count %d", errs.ErrInvalidFormat, v)
			}
			group[i] = v
			pos += 4
		}
	}

	return c, nil
}

// EvalEntry identifies one sourced channel: a curve when the axis varies,
// a constant otherwise.
type EvalEntry struct {
	Node    uint16
	Kind    format.TrackKind
	Channel uint8
}

// AppendTo appends the 4-byte entry to dst.
func (e EvalEntry) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint16(dst, e.Node)

	return append(dst, byte(e.Kind), e.Channel)
}

// ParseEvalEntry parses an entry from data[0:EvalEntrySize].
func ParseEvalEntry(data []byte, engine endian.EndianEngine) EvalEntry {
	return EvalEntry{
		Node:    engine.Uint16(data[0:2]),
		Kind:    format.TrackKind(data[2]),
		Channel: data[3],
	}
}

func (e EvalEntry) String() string {
	return fmt.Sprintf("node%02d %s[%d]", e.Node, e.Kind, e.Channel)
}
