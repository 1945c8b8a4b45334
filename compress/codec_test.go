package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mclip/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

// samplePayload mimics a clip payload: zero-padded names followed by slowly
// changing float32 samples.
func samplePayload(frames int) []byte {
	buf := make([]byte, 0, 64+frames*12)
	name := make([]byte, 64)
	copy(name, "/obj/rig/root")
	buf = append(buf, name...)

	for i := range frames {
		t := float64(i) / 30
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(math.Sin(t))))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(t)))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(1))
	}

	return buf
}

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		ct   format.CompressionType
		want string
	}{
		{format.CompressionNone, "None"},
		{format.CompressionZstd, "Zstd"},
		{format.CompressionS2, "S2"},
		{format.CompressionLZ4, "LZ4"},
		{format.CompressionType(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.ct.String())
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "payload")
		require.NoError(t, err)
		require.NotNil(t, codec)

		shared, err := GetCodec(ct)
		require.NoError(t, err)
		require.IsType(t, codec, shared)
	}

	_, err := CreateCodec(format.CompressionType(0), "payload")
	require.ErrorContains(t, err, "invalid payload compression")

	_, err = GetCodec(format.CompressionType(0x42))
	require.ErrorContains(t, err, "unsupported compression type")
}

func TestCompressionStats(t *testing.T) {
	tests := []struct {
		name      string
		stats     CompressionStats
		wantRatio float64
		wantSaved float64
	}{
		{"half", CompressionStats{format.CompressionZstd, 1000, 500}, 0.5, 50},
		{"none", CompressionStats{format.CompressionNone, 100, 100}, 1, 0},
		{"empty", CompressionStats{format.CompressionS2, 0, 0}, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.wantRatio, tt.stats.CompressionRatio(), 1e-9)
			require.InDelta(t, tt.wantSaved, tt.stats.SpaceSavings(), 1e-9)
		})
	}
}

func TestNoOpCompressor_SharesMemory(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte("clip")

	out, err := codec.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])

	back, err := codec.Decompress(out)
	require.NoError(t, err)
	require.Same(t, &data[0], &back[0])
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"single_byte", []byte{0x42}},
		{"small_text", []byte("Hello, World!")},
		{"repeated_pattern", bytes.Repeat([]byte("MCLP"), 100)},
		{"clip_payload", samplePayload(300)},
		{"large_clip_payload", samplePayload(20000)},
		{"zeros", make([]byte, 1<<20)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotEmpty(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_ShrinkClipPayload(t *testing.T) {
	data := samplePayload(1000)

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}

		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data))
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{"random_bytes", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"text_as_compressed", []byte("this is not compressed data")},
	}

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}

		t.Run(codecName, func(t *testing.T) {
			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const goroutines = 16
	data := samplePayload(500)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, goroutines)

			for range goroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()

					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}
					out, err := codec.Decompress(compressed)
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(data, out) {
						errCh <- errors.New("round trip mismatch")
					}
				}()
			}

			wg.Wait()
			close(errCh)
			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func BenchmarkAllCodecs_Compress(b *testing.B) {
	data := samplePayload(5000)

	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	data := samplePayload(5000)

	for name, codec := range getAllCodecs() {
		compressed, err := codec.Compress(data)
		require.NoError(b, err)

		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
