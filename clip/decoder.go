package clip

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/errs"
	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/section"
)

// Decoder reads an MCLP clip.
//
// Every offset stored in the clip is checked against the clip size, so
// malformed input yields an error instead of a panic.
type Decoder struct {
	data   []byte
	engine endian.EndianEngine
	header section.ClipHeader
}

// NewDecoder validates the clip header at the start of data.
//
// The byte order is detected from the magic. Bytes past the size recorded in
// the header are ignored.
//
// Returns:
//   - *Decoder: Decoder bound to the clip bytes
//   - error: ErrInvalidHeaderSize, ErrInvalidFormat or ErrTruncatedData
func NewDecoder(data []byte) (*Decoder, error) {
	engine := detectEngine(data)

	header, err := section.ParseClipHeader(data, engine)
	if err != nil {
		return nil, err
	}
	if header.Size < section.ClipHeaderSize {
		return nil, fmt.Errorf("%w: clip size %d is smaller than the header", errs.ErrInvalidFormat, header.Size)
	}
	if uint64(header.Size) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: clip size %d, have %d bytes", errs.ErrTruncatedData, header.Size, len(data))
	}
	if header.FrameCount < 0 || header.NodeCount < 0 {
		return nil, fmt.Errorf("%w: negative frame or node count", errs.ErrInvalidFormat)
	}

	return &Decoder{
		data:   data[:header.Size],
		engine: engine,
		header: header,
	}, nil
}

func detectEngine(data []byte) endian.EndianEngine {
	be := endian.GetBigEndianEngine()
	if len(data) >= 4 && be.Uint32(data) == section.MagicClip {
		return be
	}

	return endian.GetLittleEndianEngine()
}

// Header returns the parsed clip header.
func (d *Decoder) Header() section.ClipHeader {
	return d.header
}

// Decode parses node records, samples and the lookup tables.
func (d *Decoder) Decode() (*Clip, error) {
	h := &d.header
	frames := int(h.FrameCount)
	nodeCount := int(h.NodeCount)

	c := &Clip{
		Name:       h.Name,
		FPS:        h.FPS,
		FrameCount: frames,
		data:       d.data,
		engine:     d.engine,
	}

	if err := d.check(section.ClipHeaderSize, nodeCount, section.NodeRecordSize, "node records"); err != nil {
		return nil, err
	}

	c.nodes = make([]Node, nodeCount)
	seen := make(map[string]int, nodeCount)
	for i := range c.nodes {
		top := section.ClipHeaderSize + i*section.NodeRecordSize
		rec := section.ParseNodeRecord(d.data[top:top+section.NodeRecordSize], d.engine)
		if prev, ok := seen[rec.Name]; ok {
			return nil, fmt.Errorf("%w: %q at nodes %d and %d", errs.ErrDuplicateNode, rec.Name, prev, i)
		}
		seen[rec.Name] = i

		n, err := d.decodeNode(rec, i, frames)
		if err != nil {
			return nil, err
		}
		c.nodes[i] = n
	}

	if err := d.check(int(h.HashOffset), nodeCount, section.HashEntrySize, "hash array"); err != nil {
		return nil, err
	}
	c.hashes = make([]uint32, nodeCount)
	c.hashesSorted = true
	for i := range c.hashes {
		c.hashes[i] = d.engine.Uint32(d.data[int(h.HashOffset)+i*section.HashEntrySize:])
		if i > 0 && c.hashes[i] < c.hashes[i-1] {
			c.hashesSorted = false
		}
	}

	if err := d.decodeEval(c); err != nil {
		return nil, err
	}
	if err := d.decodeSeq(c); err != nil {
		return nil, err
	}

	return c, nil
}

// check verifies that count items of size bytes starting at off fit in the clip.
func (d *Decoder) check(off, count, size int, what string) error {
	end := uint64(off) + uint64(count)*uint64(size) //nolint: gosec
	if off < 0 || end > uint64(len(d.data)) {
		return fmt.Errorf("%w: %s at 0x%X (%d x %d bytes) exceeds clip size %d",
			errs.ErrInvalidOffset, what, off, count, size, len(d.data))
	}

	return nil
}

func (d *Decoder) decodeNode(rec section.NodeRecord, idx, frames int) (Node, error) {
	n := Node{
		Name:       rec.Name,
		Index:      idx,
		XformOrder: rec.XformOrder,
		RotOrder:   rec.RotOrder,
		frameCount: frames,
	}

	for k := range format.TrackKindCount {
		kind := format.TrackKind(k)
		info := rec.Tracks[k]
		trk := Track{Kind: kind, Info: info}

		if info.IsAnimated() && frames > 0 {
			off := int(rec.DataOffset[k])
			stride := section.StrideOf(info.DataMask)
			if off == 0 {
				return Node{}, fmt.Errorf("%w: node %q %s track is animated without data",
					errs.ErrInvalidOffset, rec.Name, kind)
			}
			if err := d.check(off, frames*stride, section.SampleSize, rec.Name+" samples"); err != nil {
				return Node{}, err
			}

			trk.Samples = make([]mgl32.Vec3, frames)
			pos := off
			for f := range trk.Samples {
				v := info.Min
				for ax := range 3 {
					if info.DataMask&(1<<ax) != 0 {
						v[ax] = endian.Float32(d.engine, d.data[pos:])
						pos += section.SampleSize
					}
				}
				trk.Samples[f] = v
			}
		}

		n.tracks[k] = trk
	}

	return n, nil
}

func (d *Decoder) decodeEval(c *Clip) error {
	off := int(d.header.EvalOffset)
	if err := d.check(off, 1, section.EvalCountsSize, "eval counts"); err != nil {
		return err
	}

	counts, err := section.ParseEvalCounts(d.data[off:], d.engine)
	if err != nil {
		return err
	}
	for k := range format.TrackKindCount {
		if counts.Curves[k] > counts.Channels[k] {
			return fmt.Errorf("%w: %s has %d curves but %d channels",
				errs.ErrInvalidFormat, format.TrackKind(k), counts.Curves[k], counts.Channels[k])
		}
	}

	total := counts.ChannelsTotal()
	off += section.EvalCountsSize
	if err := d.check(off, total, section.EvalEntrySize, "eval map"); err != nil {
		return err
	}

	c.counts = counts
	c.evalMap = make([]section.EvalEntry, total)
	for i := range c.evalMap {
		e := section.ParseEvalEntry(d.data[off+i*section.EvalEntrySize:], d.engine)
		if int(e.Node) >= len(c.nodes) || e.Kind >= format.TrackKindCount || e.Channel > 2 {
			return fmt.Errorf("%w: eval entry %d (%s) out of range", errs.ErrInvalidFormat, i, e)
		}
		c.evalMap[i] = e
	}

	return nil
}

func (d *Decoder) decodeSeq(c *Clip) error {
	off := int(d.header.SeqOffset)
	total := c.counts.TracksTotal() * 3
	if err := d.check(off, total, section.SeqEntrySize, "seq table"); err != nil {
		return err
	}

	c.seq = make([]section.SeqEntry, total)
	for i := range c.seq {
		e := section.ParseSeqEntry(d.data[off+i*section.SeqEntrySize:], d.engine)
		if int(e.Node) >= len(c.nodes) || e.Channel > 2 {
			return fmt.Errorf("%w: seq entry %d refers to node %d channel %d",
				errs.ErrInvalidFormat, i, e.Node, e.Channel)
		}
		if e.IsSourced() {
			span := 1
			if !e.IsConstant() && c.FrameCount > 0 {
				span = (c.FrameCount-1)*int(e.Stride) + 1
			}
			if e.Offset < 0 {
				return fmt.Errorf("%w: seq entry %d has negative offset", errs.ErrInvalidOffset, i)
			}
			if err := d.check(int(e.Offset), span, section.SampleSize, "seq samples"); err != nil {
				return err
			}
		}
		c.seq[i] = e
	}

	return nil
}
