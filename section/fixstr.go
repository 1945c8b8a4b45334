package section

// PutFixStr writes s as a fixed string into dst[0:FixStrSize].
//
// Names longer than FixStrMaxLen are truncated; the stored length byte always
// matches the stored characters.
//
// Returns:
//   - bool: true if s was truncated
func PutFixStr(dst []byte, s string) bool {
	n := len(s)
	truncated := n > FixStrMaxLen
	if truncated {
		n = FixStrMaxLen
	}

	clear(dst[:FixStrSize])
	dst[0] = byte(n)
	copy(dst[1:1+n], s[:n])

	return truncated
}

// AppendFixStr appends s as a fixed string and reports whether it was truncated.
func AppendFixStr(dst []byte, s string) ([]byte, bool) {
	start := len(dst)
	dst = append(dst, make([]byte, FixStrSize)...)
	truncated := PutFixStr(dst[start:], s)

	return dst, truncated
}

// FixStr reads a fixed string from src[0:FixStrSize].
// An out-of-range length byte is clamped to the field capacity.
func FixStr(src []byte) string {
	n := int(src[0])
	if n > FixStrSize-1 {
		n = FixStrSize - 1
	}

	return string(src[1 : 1+n])
}
