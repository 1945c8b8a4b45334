package clip

import (
	"fmt"

	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/internal/options"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	name       string
	fps        float32
	bufferSize int
	engine     endian.EndianEngine
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		engine: endian.GetLittleEndianEngine(),
	}
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithClipName overrides the clip name stored in the header.
// By default the source clip name is used.
func WithClipName(name string) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.name = name
	})
}

// WithFPS overrides the sample rate stored in the header.
func WithFPS(fps float32) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !(fps > 0) {
			return fmt.Errorf("invalid fps: %v", fps)
		}
		c.fps = fps

		return nil
	})
}

// WithBufferSize sets the initial capacity of the output buffer.
// Larger clips avoid regrowth when the expected size is known up front.
func WithBufferSize(size int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if size < 0 {
			return fmt.Errorf("invalid buffer size: %d", size)
		}
		c.bufferSize = size

		return nil
	})
}

// WithLittleEndian writes the clip in little-endian byte order. It is the default
// and the order runtime evaluators expect.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian writes the clip in big-endian byte order, for big-endian targets.
// The decoder detects the byte order from the magic.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.engine = endian.GetBigEndianEngine()
	})
}
