// Package errs defines the sentinel errors returned by mclip packages.
//
// Call sites wrap these values with additional context using fmt.Errorf and the
// %w verb, so callers should always test for them with errors.Is:
//
//	if errors.Is(err, errs.ErrInvalidFormat) {
//	    // not an MCLP blob
//	}
package errs

import "errors"

// Source clip errors.
var (
	// ErrSyntax indicates the text clip does not follow the clip grammar.
	ErrSyntax = errors.New("clip syntax error")
	// ErrFileNotFound indicates the input path does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidFrameCount indicates a clip with a negative or missing frame count.
	ErrInvalidFrameCount = errors.New("invalid frame count")
	// ErrChannelLength indicates a channel whose sample count differs from the clip frame count.
	ErrChannelLength = errors.New("channel length does not match frame count")
	// ErrInvalidName indicates an empty or otherwise unusable node, channel or clip name.
	ErrInvalidName = errors.New("invalid name")
)

// Binary clip errors.
var (
	// ErrInvalidFormat indicates the data does not carry the expected magic.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidHeaderSize indicates the data is shorter than a header.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrInvalidOffset indicates a stored offset points outside the data.
	ErrInvalidOffset = errors.New("invalid offset")
	// ErrTruncatedData indicates the data is shorter than its header claims.
	ErrTruncatedData = errors.New("truncated data")
	// ErrDuplicateNode indicates two node records share the same name.
	ErrDuplicateNode = errors.New("duplicate node")
	// ErrEncoderFinished indicates an encoder was used after Finish.
	ErrEncoderFinished = errors.New("encoder already finished")
	// ErrNodeNotFound indicates a node lookup by name failed.
	ErrNodeNotFound = errors.New("node not found")
	// ErrTooManyNodes indicates a clip with more nodes than a uint16 node index can address.
	ErrTooManyNodes = errors.New("too many nodes")
)

// Library errors.
var (
	// ErrNoClips indicates a library writer was finished without clips.
	ErrNoClips = errors.New("no clips added")
	// ErrDuplicateClip indicates two clips with the same name were added to a library.
	ErrDuplicateClip = errors.New("duplicate clip")
	// ErrHashCollision indicates two distinct clip names hash to the same ID.
	ErrHashCollision = errors.New("hash collision")
	// ErrClipNotFound indicates a library lookup by name failed.
	ErrClipNotFound = errors.New("clip not found")
	// ErrChecksumMismatch indicates a clip payload does not match its stored checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrInvalidNamesPayload indicates a malformed names payload.
	ErrInvalidNamesPayload = errors.New("invalid names payload")
	// ErrInvalidNamesCount indicates a names payload with an unexpected entry count.
	ErrInvalidNamesCount = errors.New("invalid names count")
	// ErrHashMismatch indicates a stored name does not hash to its stored ID.
	ErrHashMismatch = errors.New("hash mismatch")
)
