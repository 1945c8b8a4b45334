package compress

// ZstdCompressor compresses payloads with Zstandard.
//
// The implementation is chosen at build time: the pure Go encoder by default,
// the cgo binding with the gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with the default level.
//
// Example:
//
//	packed, err := NewZstdCompressor().Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
