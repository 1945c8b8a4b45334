package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/mclip/endian"
	"github.com/arloliu/mclip/errs"
)

// NamesSize returns the encoded size of names, or an error when a name or the
// list itself does not fit a uint16 length field.
func NamesSize(names []string) (int, error) {
	if len(names) > math.MaxUint16 {
		return 0, fmt.Errorf("%w: name count %d exceeds maximum %d", errs.ErrInvalidNamesCount, len(names), math.MaxUint16)
	}

	size := 2
	for _, name := range names {
		if len(name) > math.MaxUint16 {
			return 0, fmt.Errorf("%w: name %.32q... exceeds maximum length %d bytes", errs.ErrInvalidName, name, math.MaxUint16)
		}
		size += 2 + len(name)
	}

	return size, nil
}

// EncodeNames encodes names into a new length-prefixed payload.
func EncodeNames(names []string, engine endian.EndianEngine) ([]byte, error) {
	size, err := NamesSize(names)
	if err != nil {
		return nil, err
	}

	return AppendNames(make([]byte, 0, size), names, engine)
}

// AppendNames appends the length-prefixed encoding of names to dst.
//
// Returns:
//   - []byte: The extended slice
//   - error: ErrInvalidNamesCount or ErrInvalidName when a length overflows uint16
func AppendNames(dst []byte, names []string, engine endian.EndianEngine) ([]byte, error) {
	if _, err := NamesSize(names); err != nil {
		return dst, err
	}

	dst = engine.AppendUint16(dst, uint16(len(names))) //nolint: gosec
	for _, name := range names {
		dst = engine.AppendUint16(dst, uint16(len(name))) //nolint: gosec
		dst = append(dst, name...)
	}

	return dst, nil
}

// DecodeNames decodes a length-prefixed names payload starting at data[0].
//
// Returns:
//   - []string: The decoded names in order
//   - int: The number of bytes consumed
//   - error: ErrInvalidNamesPayload on truncated data
func DecodeNames(data []byte, engine endian.EndianEngine) ([]string, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: cannot read names count (need 2 bytes, have %d)", errs.ErrInvalidNamesPayload, len(data))
	}

	count := int(engine.Uint16(data))
	offset := 2

	names := make([]string, count)
	for i := range count {
		if len(data) < offset+2 {
			return nil, 0, fmt.Errorf("%w: cannot read length of name %d at offset %d", errs.ErrInvalidNamesPayload, i, offset)
		}

		n := int(engine.Uint16(data[offset:]))
		offset += 2

		if len(data) < offset+n {
			return nil, 0, fmt.Errorf("%w: name %d needs %d bytes at offset %d, have %d total",
				errs.ErrInvalidNamesPayload, i, n, offset, len(data))
		}

		names[i] = string(data[offset : offset+n])
		offset += n
	}

	return names, offset, nil
}

// VerifyNameHashes checks that hashFunc(names[i]) == ids[i] for every i.
func VerifyNameHashes(names []string, ids []uint64, hashFunc func(string) uint64) error {
	if len(names) != len(ids) {
		return fmt.Errorf("%w: %d names for %d IDs", errs.ErrInvalidNamesCount, len(names), len(ids))
	}

	for i, name := range names {
		if want := hashFunc(name); want != ids[i] {
			return fmt.Errorf("%w: name %q at index %d: expected 0x%016x, got 0x%016x",
				errs.ErrHashMismatch, name, i, want, ids[i])
		}
	}

	return nil
}
