// Package hash provides the two hash functions used by mclip.
//
// Name32 is the 32-bit node-name hash stored in the MCLP hash array. The runtime
// evaluator recomputes it to binary-search nodes, so the algorithm is fixed by
// the wire format: 32-bit FNV-1 (multiply, then xor) over the name bytes.
//
// ID is the 64-bit xxHash64 used for clip identifiers and payload checksums in
// clip libraries.
package hash

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Checksum computes the xxHash64 of the given bytes.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Name32 computes the 32-bit FNV-1 hash of a node name.
func Name32(name string) uint32 {
	h := fnv.New32()
	_, _ = h.Write([]byte(name))

	return h.Sum32()
}
