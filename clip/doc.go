// Package clip compiles text motion clips into the MCLP binary format and
// reads them back.
//
// # Core Types
//
// **Encoder**: classifies the channels of a source.Clip into node tracks and
// serializes them.
//
// **Decoder**: validates and parses MCLP bytes into a Clip.
//
// **Clip / Node / Track**: the decoded, read-only model with per-frame queries
// and fractional-frame evaluation.
//
// # Tracks
//
// Every node has a position, a rotation and a scale track built from up to
// three channels named "<node>:t{x,y,z}", "<node>:r{x,y,z}" (Euler degrees) and
// "<node>:s{x,y,z}". An axis whose value never changes is stored once in the
// track range; only varying axes keep per-frame samples. Rotations are
// stored as log vectors of sign-continuous quaternions.
//
// # Encoding Workflow
//
//	src, err := source.Load("walk.clip")
//	enc, err := clip.NewEncoder(src)
//	data, err := enc.Finish()
//
// # Decoding Workflow
//
//	dec, err := clip.NewDecoder(data)
//	c, err := dec.Decode()
//	root := c.FindNode("root")
//	pos := root.Position(3)
//	m := root.EvalTransform(3.5, nil)
//
// # Thread Safety
//
// Encoders are single-use and not safe for concurrent use. A decoded Clip is
// immutable and may be read from many goroutines.
package clip
