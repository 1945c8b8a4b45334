// Package compress provides the payload codecs of MLIB clip libraries.
//
// A library appends every compiled MCLP clip into one payload buffer and
// compresses that buffer as a whole, so a single codec call covers all clips.
// Clip data is mostly float32 samples and zero padding from fixed-width node
// names, which general purpose codecs shrink well.
//
// # Codecs
//
//   - format.CompressionNone: NoOpCompressor, the payload is stored as is
//   - format.CompressionZstd: ZstdCompressor, best ratio, the default of cmd/mlib
//   - format.CompressionS2: S2Compressor, fast with a fair ratio
//   - format.CompressionLZ4: LZ4Compressor, fastest decompression
//
// Zstd is backed by github.com/klauspost/compress/zstd. Building with the gozstd
// tag (and cgo enabled) switches it to the cgo binding github.com/valyala/gozstd;
// both produce standard zstd frames, so libraries are readable by either build.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// Codecs are stateless values and safe for concurrent use. Encoders and decoders
// that carry state internally are pooled.
package compress
