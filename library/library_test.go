package library

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mclip/clip"
	"github.com/arloliu/mclip/errs"
	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/internal/hash"
	"github.com/arloliu/mclip/section"
	"github.com/arloliu/mclip/source"
)

func ramp(n int, start, step float32) []float32 {
	data := make([]float32, n)
	for i := range data {
		data[i] = start + float32(i)*step
	}

	return data
}

func walkClip() *source.Clip {
	src := source.New("walk", 30, 10)
	src.MustAddChannel("/obj/rig/root:tx", ramp(10, 5, 0))
	src.MustAddChannel("/obj/rig/root:ty", ramp(10, 0, 1))
	src.MustAddChannel("/obj/rig/hips:rz", ramp(10, 0, 9))

	return src
}

func runClip() *source.Clip {
	src := source.New("run", 24, 6)
	src.MustAddChannel("/obj/rig/root:tz", ramp(6, 0, 2))
	src.MustAddChannel("/obj/rig/spine:rx", ramp(6, 10, -3))
	src.MustAddChannel("/obj/rig/spine:sy", ramp(6, 1, 0.1))

	return src
}

func standalone(t *testing.T, src *source.Clip) []byte {
	t.Helper()

	enc, err := clip.NewEncoder(src)
	require.NoError(t, err)
	data, err := enc.Finish()
	require.NoError(t, err)

	return data
}

func build(t *testing.T, opts ...WriterOption) []byte {
	t.Helper()

	w, err := NewWriter(opts...)
	require.NoError(t, err)
	require.NoError(t, w.Add(walkClip()))
	require.NoError(t, w.Add(runClip()))

	data, err := w.Finish()
	require.NoError(t, err)

	return data
}

func TestLibrary_RoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range compressions {
		t.Run(ct.String(), func(t *testing.T) {
			data := build(t, WithCompression(ct))

			r, err := Open(data)
			require.NoError(t, err)

			require.Equal(t, 2, r.Len())
			require.Equal(t, []string{"walk", "run"}, r.Names())
			require.Equal(t, []string{"root", "hips", "spine"}, r.NodeNames())
			require.Equal(t, ct, r.Header().Compression)
			require.True(t, r.Header().HasChecksums())
			require.NoError(t, r.Verify())

			walk, err := r.Clip("walk")
			require.NoError(t, err)
			require.Equal(t, standalone(t, walkClip()), walk.Bytes())
			require.Equal(t, 10, walk.FrameCount)

			run, err := r.ClipAt(1)
			require.NoError(t, err)
			require.Equal(t, standalone(t, runClip()), run.Bytes())
			require.InDelta(t, 24, run.FPS, 1e-6)
		})
	}
}

func TestLibrary_Layout(t *testing.T) {
	data := build(t, WithCompression(format.CompressionNone))
	le := binary.LittleEndian

	walk := standalone(t, walkClip())
	run := standalone(t, runClip())

	require.Equal(t, "MLIB", string(data[0:4]))
	require.Equal(t, uint32(len(data)), le.Uint32(data[4:8]))
	require.Equal(t, uint32(2), le.Uint32(data[8:12]))
	require.Equal(t, uint32(len(walk)+len(run)), le.Uint32(data[12:16]))
	require.Equal(t, byte(format.CompressionNone), data[16])
	require.Equal(t, section.LibFlagChecksums, data[17])
	require.Equal(t, uint32(section.LibHeaderSize), le.Uint32(data[20:24]))
	require.Equal(t, uint32(section.LibHeaderSize+2*section.LibEntrySize), le.Uint32(data[24:28]))

	dir := data[section.LibHeaderSize:]
	assert.Equal(t, hash.ID("walk"), le.Uint64(dir[0:8]))
	assert.Equal(t, uint32(0), le.Uint32(dir[8:12]))
	assert.Equal(t, uint32(len(walk)), le.Uint32(dir[12:16]))
	assert.Equal(t, hash.Checksum(walk), le.Uint64(dir[16:24]))
	assert.Equal(t, hash.ID("run"), le.Uint64(dir[24:32]))
	assert.Equal(t, uint32(len(walk)), le.Uint32(dir[32:36]))
	assert.Equal(t, uint32(len(run)), le.Uint32(dir[36:40]))

	payloadOffset := le.Uint32(data[28:32])
	require.Equal(t, append(walk, run...), data[payloadOffset:])
}

func TestLibrary_WithoutChecksums(t *testing.T) {
	data := build(t, WithCompression(format.CompressionNone), WithChecksums(false))

	r, err := Open(data)
	require.NoError(t, err)
	require.False(t, r.Header().HasChecksums())

	dir := data[section.LibHeaderSize:]
	require.Zero(t, binary.LittleEndian.Uint64(dir[16:24]))

	// a damaged sample goes unnoticed without checksums
	data[len(data)-1] ^= 0xFF
	r, err = Open(data)
	require.NoError(t, err)
	_, err = r.ClipBytes(1)
	require.NoError(t, err)
}

func TestLibrary_ChecksumMismatch(t *testing.T) {
	data := build(t, WithCompression(format.CompressionNone))
	data[len(data)-1] ^= 0xFF

	r, err := Open(data)
	require.NoError(t, err)

	_, err = r.Clip("walk")
	require.NoError(t, err)

	_, err = r.Clip("run")
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	require.ErrorIs(t, r.Verify(), errs.ErrChecksumMismatch)
}

func TestLibrary_ClipNotFound(t *testing.T) {
	r, err := Open(build(t))
	require.NoError(t, err)

	require.True(t, r.Contains("walk"))
	require.False(t, r.Contains("idle"))

	_, err = r.Clip("idle")
	require.ErrorIs(t, err, errs.ErrClipNotFound)

	_, err = r.ClipAt(2)
	require.ErrorIs(t, err, errs.ErrClipNotFound)

	_, err = r.ClipAt(-1)
	require.ErrorIs(t, err, errs.ErrClipNotFound)
}

func TestLibrary_All(t *testing.T) {
	r, err := Open(build(t))
	require.NoError(t, err)

	var names []string
	for name, c := range r.All() {
		names = append(names, name)
		require.NotNil(t, c)
	}
	require.Equal(t, []string{"walk", "run"}, names)

	count := 0
	for range r.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestWriter_Errors(t *testing.T) {
	t.Run("invalid compression", func(t *testing.T) {
		_, err := NewWriter(WithCompression(format.CompressionType(0x42)))
		require.ErrorContains(t, err, "invalid library compression")
	})

	t.Run("no clips", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)
		_, err = w.Finish()
		require.ErrorIs(t, err, errs.ErrNoClips)
	})

	t.Run("duplicate clip", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)
		require.NoError(t, w.Add(walkClip()))
		require.ErrorIs(t, w.Add(walkClip()), errs.ErrDuplicateClip)
		require.Equal(t, 1, w.Len())
	})

	t.Run("renamed duplicate", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)
		require.NoError(t, w.Add(walkClip()))
		require.NoError(t, w.Add(walkClip(), clip.WithClipName("walk_fast")))
		require.Equal(t, []string{"walk", "walk_fast"}, w.Names())
	})

	t.Run("empty name", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)
		src := walkClip()
		src.Name = ""
		require.ErrorIs(t, w.Add(src), errs.ErrInvalidName)
	})

	t.Run("nil clip", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)
		require.Error(t, w.Add(nil))
	})

	t.Run("finished", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)
		require.NoError(t, w.Add(walkClip()))
		_, err = w.Finish()
		require.NoError(t, err)

		require.ErrorIs(t, w.Add(runClip()), errs.ErrEncoderFinished)
		_, err = w.Finish()
		require.ErrorIs(t, err, errs.ErrEncoderFinished)
	})
}

func TestWriter_BigEndianOptionIgnored(t *testing.T) {
	w, err := NewWriter(WithCompression(format.CompressionNone))
	require.NoError(t, err)
	require.NoError(t, w.Add(walkClip(), clip.WithBigEndian()))
	data, err := w.Finish()
	require.NoError(t, err)

	r, err := Open(data)
	require.NoError(t, err)
	raw, err := r.ClipBytes(0)
	require.NoError(t, err)
	require.Equal(t, "MCLP", string(raw[0:4]))
}

func TestWriter_AddFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jump.clip")
	text := `{
   rate = 24
   start = -1
   tracklength = 3
   tracks = 2
   {
      name = /obj/rig/root:ty
      data = 0 1 2
   }
   {
      name = /obj/rig/root:rx
      data = 0 45 90
   }
}
`
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	w, err := NewWriter()
	require.NoError(t, err)
	require.NoError(t, w.AddFile(path))
	require.ErrorIs(t, w.AddFile(filepath.Join(dir, "missing.clip")), errs.ErrFileNotFound)
	require.Equal(t, []string{"root"}, w.NodeNames())

	data, err := w.Finish()
	require.NoError(t, err)

	stats := w.Stats()
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Positive(t, stats.OriginalSize)

	r, err := Open(data)
	require.NoError(t, err)
	jump, err := r.Clip("jump")
	require.NoError(t, err)
	require.Equal(t, 3, jump.FrameCount)
	require.NotNil(t, jump.FindNode("root"))
}

func TestOpen_Errors(t *testing.T) {
	le := binary.LittleEndian
	good := build(t, WithCompression(format.CompressionNone))

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{"short header", func(b []byte) []byte { return b[:20] }, errs.ErrInvalidHeaderSize},
		{"bad magic", func(b []byte) []byte { b[0] = 'X'; return b }, errs.ErrInvalidFormat},
		{"unknown compression", func(b []byte) []byte { b[16] = 0x42; return b }, errs.ErrInvalidFormat},
		{"truncated", func(b []byte) []byte { return b[:len(b)-1] }, errs.ErrTruncatedData},
		{"names before directory end", func(b []byte) []byte {
			le.PutUint32(b[24:28], section.LibHeaderSize+section.LibEntrySize)
			return b
		}, errs.ErrInvalidOffset},
		{"payload past end", func(b []byte) []byte {
			le.PutUint32(b[28:32], uint32(len(b)+1))
			return b
		}, errs.ErrInvalidOffset},
		{"clip ID mismatch", func(b []byte) []byte {
			le.PutUint64(b[section.LibHeaderSize:], hash.ID("idle"))
			return b
		}, errs.ErrHashMismatch},
		{"clip count mismatch", func(b []byte) []byte {
			le.PutUint32(b[8:12], 1)
			return b
		}, errs.ErrInvalidNamesCount},
		{"raw size mismatch", func(b []byte) []byte {
			le.PutUint32(b[12:16], le.Uint32(b[12:16])+1)
			return b
		}, errs.ErrInvalidFormat},
		{"clip past payload", func(b []byte) []byte {
			le.PutUint32(b[section.LibHeaderSize+section.LibEntrySize+12:], 1<<20)
			return b
		}, errs.ErrInvalidOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), good...))
			_, err := Open(data)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func BenchmarkWriter(b *testing.B) {
	walk, run := walkClip(), runClip()

	for b.Loop() {
		w, _ := NewWriter()
		_ = w.Add(walk)
		_ = w.Add(run)
		_, _ = w.Finish()
	}
}

func BenchmarkReader_Clip(b *testing.B) {
	w, _ := NewWriter()
	_ = w.Add(walkClip())
	_ = w.Add(runClip())
	data, _ := w.Finish()
	r, err := Open(data)
	require.NoError(b, err)

	for b.Loop() {
		_, _ = r.Clip("run")
	}
}
