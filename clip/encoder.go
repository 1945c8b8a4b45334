package clip

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/errs"
	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/internal/options"
	"github.com/arloliu/mclip/internal/pool"
	"github.com/arloliu/mclip/internal/strtab"
	"github.com/arloliu/mclip/section"
	"github.com/arloliu/mclip/source"
)

// Encoder compiles a source clip into the MCLP binary format.
//
// NewEncoder does all the analysis: node discovery, track classification and
// eval map planning. Finish, AppendTo or WriteTo then serialize the result once.
//
// Note: The Encoder is NOT thread-safe.
//
// Note: The Encoder is NOT reusable. After the clip has been written, a new
// encoder must be created.
type Encoder struct {
	cfg      *EncoderConfig
	name     string
	fps      float32
	frames   int
	names    *strtab.Table
	nodes    []Node
	counts   section.EvalCounts
	evalMap  []section.EvalEntry
	seq      []section.SeqEntry
	finished bool
}

// NewEncoder analyzes src and prepares it for serialization.
//
// Nodes are the distinct channel short names of src, stored in ascending
// node-name hash order so the hash array is ready for binary search.
//
// Returns:
//   - *Encoder: The prepared encoder
//   - error: An option error, ErrInvalidName when a node name is longer than
//     section.FixStrMaxLen, or ErrTooManyNodes when the node count exceeds section.MaxNodeCount
func NewEncoder(src *source.Clip, opts ...EncoderOption) (*Encoder, error) {
	if src == nil {
		return nil, errors.New("nil source clip")
	}

	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	e := &Encoder{
		cfg:    cfg,
		name:   src.Name,
		fps:    src.Rate,
		frames: src.FrameCount,
		names:  strtab.New(),
	}
	if cfg.name != "" {
		e.name = cfg.name
	}
	if cfg.fps > 0 {
		e.fps = cfg.fps
	}
	if !(e.fps > 0) {
		e.fps = source.DefaultRate
	}

	for _, name := range src.NodeNames() {
		if len(name) > section.FixStrMaxLen {
			return nil, fmt.Errorf("%w: node %q is %d bytes, at most %d fit a node record",
				errs.ErrInvalidName, name, len(name), section.FixStrMaxLen)
		}
		e.names.Add(name)
	}
	if e.names.Len() > section.MaxNodeCount {
		return nil, fmt.Errorf("%w: %d nodes, at most %d are supported",
			errs.ErrTooManyNodes, e.names.Len(), section.MaxNodeCount)
	}

	e.nodes = make([]Node, e.names.Len())
	for i := range e.nodes {
		name, _, _ := e.names.At(i)
		e.nodes[i] = classifyNode(src, i, name)
	}
	e.counts, e.evalMap = buildEvalMap(e.nodes)

	Logger().Debug("encoder prepared",
		"clip", e.name,
		"nodes", len(e.nodes),
		"frames", e.frames,
		"channels", e.counts.ChannelsTotal(),
		"curves", e.counts.CurvesTotal(),
	)

	return e, nil
}

// Name returns the clip name that will be written.
func (e *Encoder) Name() string {
	return e.name
}

// FPS returns the sample rate that will be written.
func (e *Encoder) FPS() float32 {
	return e.fps
}

// FrameCount returns the number of frames per animated axis.
func (e *Encoder) FrameCount() int {
	return e.frames
}

// Nodes returns the classified nodes in file order. The slice must not be modified.
func (e *Encoder) Nodes() []Node {
	return e.nodes
}

// EvalCounts returns the per-kind track, channel and curve counts.
func (e *Encoder) EvalCounts() section.EvalCounts {
	return e.counts
}

// EvalMap returns every sourced channel, animated ones first.
func (e *Encoder) EvalMap() []section.EvalEntry {
	return e.evalMap
}

// Seq returns the sequence table. Offsets are resolved while the clip is
// written; before that Seq returns nil.
func (e *Encoder) Seq() []section.SeqEntry {
	return e.seq
}

// Finish serializes the clip into a new byte slice.
func (e *Encoder) Finish() ([]byte, error) {
	bb := pool.GetClipBuffer()
	defer pool.PutClipBuffer(bb)

	if err := e.encode(bb); err != nil {
		return nil, err
	}

	return bytes.Clone(bb.B), nil
}

// AppendTo serializes the clip at the end of dst and returns the extended slice.
// All offsets in the clip are relative to its first byte, so dst may already
// hold other clips.
func (e *Encoder) AppendTo(dst []byte) ([]byte, error) {
	bb := &pool.ByteBuffer{B: dst}
	if err := e.encode(bb); err != nil {
		return dst, err
	}

	return bb.B, nil
}

// WriteTo serializes the clip to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	bb := pool.GetClipBuffer()
	defer pool.PutClipBuffer(bb)

	if err := e.encode(bb); err != nil {
		return 0, err
	}

	return bb.WriteTo(w)
}

// writeContext tracks the output buffer and the start of the clip inside it.
type writeContext struct {
	buf    *pool.ByteBuffer
	base   int
	engine endian.EndianEngine
}

// rel returns the current write position relative to the clip start.
func (w *writeContext) rel() int {
	return w.buf.Len() - w.base
}

// reserve appends n zero bytes and returns their position relative to the clip start.
func (w *writeContext) reserve(n int) int {
	return w.buf.Extend(n) - w.base
}

func (w *writeContext) patch32(pos int, v uint32) {
	w.engine.PutUint32(w.buf.B[w.base+pos:], v)
}

// patchCur stores the current relative position at pos.
func (w *writeContext) patchCur(pos int) {
	w.patch32(pos, uint32(w.rel())) //nolint: gosec
}

func (w *writeContext) putUint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

func (w *writeContext) putFloat32(v float32) {
	w.buf.B = endian.AppendFloat32(w.engine, w.buf.B, v)
}

func (w *writeContext) put(fn func([]byte, endian.EndianEngine) []byte) {
	w.buf.B = fn(w.buf.B, w.engine)
}

func (e *Encoder) estimateSize() int {
	size := section.ClipHeaderSize + len(e.nodes)*(section.NodeRecordSize+section.HashEntrySize)
	for i := range e.nodes {
		for k := range format.TrackKindCount {
			size += e.frames * int(e.nodes[i].tracks[k].Info.Stride) * section.SampleSize
		}
	}
	size += section.EvalCountsSize + len(e.evalMap)*section.EvalEntrySize
	size += e.counts.TracksTotal() * 3 * section.SeqEntrySize

	return size
}

func (e *Encoder) encode(bb *pool.ByteBuffer) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	e.finished = true

	bb.Grow(max(e.estimateSize(), e.cfg.bufferSize))
	w := &writeContext{buf: bb, base: bb.Len(), engine: e.cfg.engine}

	w.reserve(section.ClipHeaderSize)

	recTops := make([]int, len(e.nodes))
	layout := make([][format.TrackKindCount]trackLayout, len(e.nodes))
	for i := range e.nodes {
		n := &e.nodes[i]
		recTops[i] = w.reserve(section.NodeRecordSize)
		rec := n.record()
		rec.WriteToSlice(w.buf.B, w.base+recTops[i], w.engine)
		for k := range format.TrackKindCount {
			layout[i][k].infoTop = recTops[i] + section.TrackInfoPos(format.TrackKind(k))
		}
	}

	hashTop := w.rel()
	for _, h := range e.names.Hashes() {
		w.putUint32(h)
	}

	for i := range e.nodes {
		for k := range format.TrackKindCount {
			trk := &e.nodes[i].tracks[k]
			if !trk.IsAnimated() {
				continue
			}
			w.patchCur(recTops[i] + section.DataOffsetPos(trk.Kind))
			layout[i][k].dataTop = w.rel()
			Logger().Debug("track data", "node", e.nodes[i].Name, "kind", trk.Kind, "offset", w.rel())
			for _, v := range trk.Samples {
				for ax := range 3 {
					if trk.Info.DataMask&(1<<ax) != 0 {
						w.putFloat32(v[ax])
					}
				}
			}
		}
	}

	evalTop := w.rel()
	w.put(e.counts.AppendTo)
	for _, entry := range e.evalMap {
		w.put(entry.AppendTo)
	}

	seqTop := w.rel()
	e.seq = buildSeq(e.nodes, layout)
	for _, entry := range e.seq {
		w.put(entry.AppendTo)
	}

	hdr := section.ClipHeader{
		Size:       uint32(w.rel()), //nolint: gosec
		FPS:        e.fps,
		FrameCount: int32(e.frames),     //nolint: gosec
		NodeCount:  int32(len(e.nodes)), //nolint: gosec
		HashOffset: uint32(hashTop),     //nolint: gosec
		EvalOffset: uint32(evalTop),     //nolint: gosec
		SeqOffset:  uint32(seqTop),      //nolint: gosec
		Name:       e.name,
	}
	if _, truncated := hdr.WriteToSlice(w.buf.B, w.base, w.engine); truncated {
		Logger().Warn("clip name truncated", "clip", e.name, "max", section.FixStrMaxLen)
	}

	Logger().Debug("clip written", "clip", e.name, "size", hdr.Size)

	return nil
}
