// Package encoding holds the small binary encodings shared by the clip library
// writer and reader.
//
// The only encoding today is the length-prefixed name list used for the library
// names payload:
//
//	[Count: uint16] [Len1: uint16][Name1: UTF-8] [Len2: uint16][Name2: UTF-8] ...
//
// A library stores two such lists back to back, clip names followed by node
// names. Clip names line up with the directory entries so that a reader can
// check each name against the stored clip ID with VerifyNameHashes.
//
// This package is internal and should not be imported by external code; use the
// library package instead.
package encoding
