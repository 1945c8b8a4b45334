package library

import (
	"github.com/arloliu/mclip/compress"
	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/internal/options"
)

// WriterConfig holds the settings of a Writer.
type WriterConfig struct {
	compression format.CompressionType
	checksums   bool
}

func newWriterConfig() *WriterConfig {
	return &WriterConfig{
		compression: format.CompressionZstd,
		checksums:   true,
	}
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*WriterConfig]

// WithCompression selects the payload codec. The default is Zstd.
func WithCompression(ct format.CompressionType) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if _, err := compress.CreateCodec(ct, "library"); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// WithChecksums enables or disables per-clip xxHash64 checksums. Enabled by default.
func WithChecksums(enabled bool) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.checksums = enabled
	})
}
