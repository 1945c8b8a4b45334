package library

import (
	"fmt"
	"slices"

	"github.com/arloliu/mclip/clip"
	"github.com/arloliu/mclip/compress"
	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/errs"
	"github.com/arloliu/mclip/internal/collision"
	"github.com/arloliu/mclip/internal/encoding"
	"github.com/arloliu/mclip/internal/hash"
	"github.com/arloliu/mclip/internal/options"
	"github.com/arloliu/mclip/internal/pool"
	"github.com/arloliu/mclip/section"
	"github.com/arloliu/mclip/source"
)

// Writer assembles an MLIB clip library.
//
// Each Add compiles a clip straight into the shared payload buffer; Finish
// compresses the payload and lays out header, directory and names.
//
// Note: The Writer is NOT thread-safe and NOT reusable after Finish.
type Writer struct {
	cfg       *WriterConfig
	engine    endian.EndianEngine
	tracker   *collision.Tracker
	entries   []section.LibEntry
	nodeNames []string
	nodeSeen  map[string]struct{}
	payload   *pool.ByteBuffer
	stats     compress.CompressionStats
	finished  bool
}

// NewWriter creates an empty library writer.
//
// Returns:
//   - *Writer: The writer
//   - error: An option error
func NewWriter(opts ...WriterOption) (*Writer, error) {
	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Writer{
		cfg:      cfg,
		engine:   endian.GetLittleEndianEngine(),
		tracker:  collision.NewTracker(),
		nodeSeen: make(map[string]struct{}),
		payload:  pool.GetLibraryBuffer(),
	}, nil
}

// Add compiles src and appends it to the library.
//
// The clip is stored under its encoded name, src.Name unless overridden with
// clip.WithClipName. Clips are always written little-endian; a byte order
// option is overridden.
//
// Returns:
//   - error: ErrEncoderFinished after Finish, ErrDuplicateClip, ErrHashCollision,
//     ErrInvalidName for an empty clip name, or an encoder error
func (w *Writer) Add(src *source.Clip, opts ...clip.EncoderOption) error {
	if w.finished {
		return fmt.Errorf("%w: library writer", errs.ErrEncoderFinished)
	}
	if w.tracker.Count() >= section.LibMaxClipCount {
		return fmt.Errorf("%w: library holds at most %d clips", errs.ErrInvalidNamesCount, section.LibMaxClipCount)
	}

	opts = append(slices.Clone(opts), clip.WithLittleEndian())
	enc, err := clip.NewEncoder(src, opts...)
	if err != nil {
		return err
	}

	id := hash.ID(enc.Name())
	if err := w.tracker.Track(enc.Name(), id); err != nil {
		return err
	}

	offset := w.payload.Len()
	w.payload.B, err = enc.AppendTo(w.payload.B)
	if err != nil {
		return err
	}

	entry := section.LibEntry{
		ClipID: id,
		Offset: uint32(offset),                   //nolint: gosec
		Size:   uint32(w.payload.Len() - offset), //nolint: gosec
	}
	if w.cfg.checksums {
		entry.Checksum = hash.Checksum(w.payload.B[offset:])
	}
	w.entries = append(w.entries, entry)

	for _, name := range src.NodeNames() {
		if _, ok := w.nodeSeen[name]; ok {
			continue
		}
		w.nodeSeen[name] = struct{}{}
		w.nodeNames = append(w.nodeNames, name)
	}

	clip.Logger().Debug("library clip added",
		"clip", enc.Name(),
		"id", fmt.Sprintf("0x%016x", id),
		"offset", offset,
		"size", entry.Size,
	)

	return nil
}

// AddFile loads the text clip at path and adds it.
func (w *Writer) AddFile(path string, opts ...clip.EncoderOption) error {
	src, err := source.Load(path)
	if err != nil {
		return err
	}

	return w.Add(src, opts...)
}

// Len returns the number of clips added so far.
func (w *Writer) Len() int {
	return w.tracker.Count()
}

// Names returns the clip names in insertion order.
func (w *Writer) Names() []string {
	return w.tracker.Names()
}

// NodeNames returns the union of node names of all added clips in first-seen order.
func (w *Writer) NodeNames() []string {
	return w.nodeNames
}

// Stats returns the payload compression statistics. They are populated by Finish.
func (w *Writer) Stats() compress.CompressionStats {
	return w.stats
}

// Finish compresses the payload and returns the complete library.
//
// Returns:
//   - []byte: The library bytes
//   - error: ErrNoClips when nothing was added, ErrEncoderFinished on a second
//     call, or a compression error
func (w *Writer) Finish() ([]byte, error) {
	if w.finished {
		return nil, fmt.Errorf("%w: library writer", errs.ErrEncoderFinished)
	}
	if len(w.entries) == 0 {
		return nil, errs.ErrNoClips
	}
	w.finished = true
	defer func() {
		pool.PutLibraryBuffer(w.payload)
		w.payload = nil
	}()

	codec, err := compress.GetCodec(w.cfg.compression)
	if err != nil {
		return nil, err
	}

	raw := w.payload.Bytes()
	packed, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress library payload: %w", err)
	}

	w.stats = compress.CompressionStats{
		Algorithm:      w.cfg.compression,
		OriginalSize:   int64(len(raw)),
		CompressedSize: int64(len(packed)),
	}

	namesSize := 0
	for _, list := range [][]string{w.tracker.Names(), w.nodeNames} {
		n, err := encoding.NamesSize(list)
		if err != nil {
			return nil, err
		}
		namesSize += n
	}

	dirOffset := section.LibHeaderSize
	namesOffset := dirOffset + len(w.entries)*section.LibEntrySize
	payloadOffset := namesOffset + namesSize
	total := payloadOffset + len(packed)

	header := section.LibHeader{
		Size:          uint32(total),          //nolint: gosec
		ClipCount:     uint32(len(w.entries)), //nolint: gosec
		RawSize:       uint32(len(raw)),       //nolint: gosec
		DirOffset:     uint32(dirOffset),      //nolint: gosec
		NamesOffset:   uint32(namesOffset),    //nolint: gosec
		PayloadOffset: uint32(payloadOffset),  //nolint: gosec
		Compression:   w.cfg.compression,
	}
	if w.cfg.checksums {
		header.Flags |= section.LibFlagChecksums
	}

	out := make([]byte, namesOffset, total)
	copy(out, header.Bytes(w.engine))
	pos := dirOffset
	for i := range w.entries {
		pos = w.entries[i].WriteToSlice(out, pos, w.engine)
	}

	out, err = encoding.AppendNames(out, w.tracker.Names(), w.engine)
	if err != nil {
		return nil, err
	}
	out, err = encoding.AppendNames(out, w.nodeNames, w.engine)
	if err != nil {
		return nil, err
	}
	out = append(out, packed...)

	clip.Logger().Debug("library finished",
		"clips", len(w.entries),
		"nodes", len(w.nodeNames),
		"compression", w.cfg.compression.String(),
		"raw", len(raw),
		"packed", len(packed),
		"size", total,
	)

	return out, nil
}
