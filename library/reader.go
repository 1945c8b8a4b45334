package library

import (
	"fmt"
	"iter"

	"github.com/arloliu/mclip/clip"
	"github.com/arloliu/mclip/compress"
	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/errs"
	"github.com/arloliu/mclip/internal/encoding"
	"github.com/arloliu/mclip/internal/hash"
	"github.com/arloliu/mclip/section"
)

// Reader gives access to the clips of an MLIB library.
type Reader struct {
	header    section.LibHeader
	entries   []section.LibEntry
	names     []string
	nodeNames []string
	index     map[uint64]int
	payload   []byte
}

// Open parses a library, verifies the clip names against their IDs and
// decompresses the payload.
//
// Returns:
//   - *Reader: The reader
//   - error: ErrInvalidHeaderSize, ErrInvalidFormat, ErrTruncatedData,
//     ErrInvalidOffset, a names payload error or a decompression error
func Open(data []byte) (*Reader, error) {
	engine := endian.GetLittleEndianEngine()

	header, err := section.ParseLibHeader(data, engine)
	if err != nil {
		return nil, err
	}
	if uint64(header.Size) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: library size %d, have %d bytes", errs.ErrTruncatedData, header.Size, len(data))
	}
	data = data[:header.Size]

	count := uint64(header.ClipCount)
	dirEnd := uint64(header.DirOffset) + count*section.LibEntrySize
	if uint64(header.DirOffset) < section.LibHeaderSize ||
		dirEnd > uint64(header.NamesOffset) ||
		header.NamesOffset > header.PayloadOffset ||
		header.PayloadOffset > header.Size {
		return nil, fmt.Errorf("%w: library sections out of order (dir %d, names %d, payload %d, size %d)",
			errs.ErrInvalidOffset, header.DirOffset, header.NamesOffset, header.PayloadOffset, header.Size)
	}

	r := &Reader{
		header:  header,
		entries: make([]section.LibEntry, count),
		index:   make(map[uint64]int, count),
	}

	ids := make([]uint64, count)
	for i := range r.entries {
		off := int(header.DirOffset) + i*section.LibEntrySize
		entry, err := section.ParseLibEntry(data[off:], engine)
		if err != nil {
			return nil, err
		}
		r.entries[i] = entry
		ids[i] = entry.ClipID
		r.index[entry.ClipID] = i
	}

	names := data[header.NamesOffset:header.PayloadOffset]
	clipNames, n, err := encoding.DecodeNames(names, engine)
	if err != nil {
		return nil, err
	}
	if err := encoding.VerifyNameHashes(clipNames, ids, hash.ID); err != nil {
		return nil, err
	}
	nodeNames, _, err := encoding.DecodeNames(names[n:], engine)
	if err != nil {
		return nil, err
	}
	r.names = clipNames
	r.nodeNames = nodeNames

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}
	r.payload, err = codec.Decompress(data[header.PayloadOffset:])
	if err != nil {
		return nil, fmt.Errorf("decompress library payload: %w", err)
	}
	if uint64(len(r.payload)) != uint64(header.RawSize) {
		return nil, fmt.Errorf("%w: payload decompressed to %d bytes, header says %d",
			errs.ErrInvalidFormat, len(r.payload), header.RawSize)
	}

	for i, e := range r.entries {
		if uint64(e.Offset)+uint64(e.Size) > uint64(len(r.payload)) {
			return nil, fmt.Errorf("%w: clip %q spans [%d, %d) of a %d-byte payload",
				errs.ErrInvalidOffset, r.names[i], e.Offset, uint64(e.Offset)+uint64(e.Size), len(r.payload))
		}
	}

	return r, nil
}

// Header returns the parsed library header.
func (r *Reader) Header() section.LibHeader {
	return r.header
}

// Len returns the number of clips.
func (r *Reader) Len() int {
	return len(r.entries)
}

// Names returns the clip names in directory order.
func (r *Reader) Names() []string {
	return r.names
}

// NodeNames returns the union of node names of all clips.
func (r *Reader) NodeNames() []string {
	return r.nodeNames
}

// Contains reports whether the library holds a clip called name.
func (r *Reader) Contains(name string) bool {
	_, ok := r.index[hash.ID(name)]
	return ok
}

// ClipBytes returns the raw MCLP bytes of clip i, checksum-verified when the
// library carries checksums. The slice aliases the reader's payload.
func (r *Reader) ClipBytes(i int) ([]byte, error) {
	if i < 0 || i >= len(r.entries) {
		return nil, fmt.Errorf("%w: index %d of %d", errs.ErrClipNotFound, i, len(r.entries))
	}

	e := r.entries[i]
	data := r.payload[e.Offset : e.Offset+e.Size]
	if r.header.HasChecksums() {
		if sum := hash.Checksum(data); sum != e.Checksum {
			return nil, fmt.Errorf("%w: clip %q: expected 0x%016x, got 0x%016x",
				errs.ErrChecksumMismatch, r.names[i], e.Checksum, sum)
		}
	}

	return data, nil
}

// ClipAt decodes clip i.
func (r *Reader) ClipAt(i int) (*clip.Clip, error) {
	data, err := r.ClipBytes(i)
	if err != nil {
		return nil, err
	}

	dec, err := clip.NewDecoder(data)
	if err != nil {
		return nil, fmt.Errorf("clip %q: %w", r.names[i], err)
	}

	c, err := dec.Decode()
	if err != nil {
		return nil, fmt.Errorf("clip %q: %w", r.names[i], err)
	}

	return c, nil
}

// Clip decodes the clip called name.
//
// Returns:
//   - *clip.Clip: The decoded clip
//   - error: ErrClipNotFound, ErrChecksumMismatch or a decode error
func (r *Reader) Clip(name string) (*clip.Clip, error) {
	i, ok := r.index[hash.ID(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrClipNotFound, name)
	}

	return r.ClipAt(i)
}

// Verify checks every clip checksum without decoding.
func (r *Reader) Verify() error {
	for i := range r.entries {
		if _, err := r.ClipBytes(i); err != nil {
			return err
		}
	}

	return nil
}

// All returns an iterator over clip names and decoded clips in directory order.
// Iteration stops at the first clip that fails to decode; use Verify or ClipAt
// to surface the error.
func (r *Reader) All() iter.Seq2[string, *clip.Clip] {
	return func(yield func(string, *clip.Clip) bool) {
		for i, name := range r.names {
			c, err := r.ClipAt(i)
			if err != nil {
				return
			}
			if !yield(name, c) {
				return
			}
		}
	}
}
