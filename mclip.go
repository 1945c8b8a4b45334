// Package mclip compiles text animation clips into MCLP, a compact node-indexed
// binary motion format read by runtime evaluators.
//
// A clip is a set of channels named "<node path>:<channel>" where the channel
// is one of tx ty tz (translation), rx ry rz (Euler degrees) or sx sy sz
// (scale). The compiler groups channels by node, converts rotations to log
// vectors, elides constant axes and writes the per-node track data together
// with the eval map and sequence table the runtime uses to drive curves.
//
// # Core Features
//
//   - Per-axis constant elision: only axes whose value changes carry samples
//   - Rotations stored as interpolation-safe log vectors (sign-continuous quaternions)
//   - Nodes sorted by 32-bit FNV-1 name hash for binary-search lookup
//   - Query API for positions, rotations, scales and full transforms
//   - Text re-dump in Euler degrees, log vectors or quaternions
//   - MLIB libraries bundling many clips with optional compression and checksums
//
// # Basic Usage
//
// Compiling a clip file:
//
//	data, err := mclip.CompileFile("walk.clip")
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("walk.mclp", data, 0o644)
//
// Decoding and querying:
//
//	c, err := mclip.Decode(data)
//	if err != nil {
//	    return err
//	}
//	root := c.FindNode("root")
//	m := root.EvalTransform(12.5, nil)
//
// # Package Structure
//
// This package wraps the clip, source and library packages for the common
// cases. Use clip.NewEncoder and clip.NewDecoder directly for encoder options,
// the planned eval map or the sequence table.
package mclip

import (
	"log/slog"

	"github.com/arloliu/mclip/clip"
	"github.com/arloliu/mclip/internal/hash"
	"github.com/arloliu/mclip/library"
	"github.com/arloliu/mclip/source"
)

// Compile encodes a parsed source clip.
//
// Parameters:
//   - src: The source clip
//   - opts: Encoder options such as clip.WithClipName or clip.WithFPS
//
// Returns:
//   - []byte: The MCLP bytes
//   - error: An encoder error
func Compile(src *source.Clip, opts ...clip.EncoderOption) ([]byte, error) {
	enc, err := clip.NewEncoder(src, opts...)
	if err != nil {
		return nil, err
	}

	return enc.Finish()
}

// CompileFile loads the text clip at path and encodes it.
//
// Returns:
//   - []byte: The MCLP bytes
//   - error: ErrFileNotFound, ErrSyntax or an encoder error
func CompileFile(path string, opts ...clip.EncoderOption) ([]byte, error) {
	src, err := source.Load(path)
	if err != nil {
		return nil, err
	}

	return Compile(src, opts...)
}

// Decode parses an MCLP clip.
func Decode(data []byte) (*clip.Clip, error) {
	dec, err := clip.NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return dec.Decode()
}

// NewLibraryWriter creates an MLIB writer.
func NewLibraryWriter(opts ...library.WriterOption) (*library.Writer, error) {
	return library.NewWriter(opts...)
}

// OpenLibrary parses an MLIB library.
func OpenLibrary(data []byte) (*library.Reader, error) {
	return library.Open(data)
}

// NodeHash returns the 32-bit node-name hash stored in the MCLP hash array.
func NodeHash(name string) uint32 {
	return hash.Name32(name)
}

// ClipID returns the 64-bit ID of a clip name inside an MLIB library.
func ClipID(name string) uint64 {
	return hash.ID(name)
}

// SetLogger configures the logger of the compiler and library packages.
// Pass nil to disable logging, which is the default.
func SetLogger(l *slog.Logger) {
	clip.SetLogger(l)
}
