// Package library bundles compiled MCLP clips into a single MLIB stream.
//
// # Layout
//
// All multi-byte fields are little-endian.
//
//	+-----------------------------+ 0
//	| header (32 bytes)           |  "MLIB", size, clip count, raw payload size,
//	|                             |  compression, flags, section offsets
//	+-----------------------------+ DirOffset
//	| directory                   |  24 bytes per clip: ID, offset, size, checksum
//	+-----------------------------+ NamesOffset
//	| names                       |  clip names, then node names (uint16 lists)
//	+-----------------------------+ PayloadOffset
//	| payload (compressed)        |  every clip appended, self-relative offsets
//	+-----------------------------+ Size
//
// Clip IDs are the xxHash64 of the clip name. Directory entries and clip names
// are in the order the clips were added; node names are the union of all node
// names in first-seen order.
//
// # Writing
//
//	w := library.NewWriter(library.WithCompression(format.CompressionZstd))
//	for _, path := range paths {
//	    if err := w.AddFile(path); err != nil {
//	        return err
//	    }
//	}
//	data, err := w.Finish()
//
// # Reading
//
//	r, err := library.Open(data)
//	if err != nil {
//	    return err
//	}
//	walk, err := r.Clip("walk")
//
// Reader decompresses the payload once in Open. Clips are decoded on demand and
// their checksums are verified before decoding when the library carries them.
//
// Note: Writer is NOT thread-safe. A Reader is safe for concurrent use once Open
// has returned.
package library
