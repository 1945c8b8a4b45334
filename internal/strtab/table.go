// Package strtab provides a hash-sorted string intern table.
//
// Strings are kept in ascending order of their 32-bit name hash together with
// the ordinal in which they were added. The sorted hash column is written
// verbatim as the node hash array of an MCLP clip, which lets the runtime find a
// node by binary search over the hashes.
package strtab

import "github.com/arloliu/mclip/internal/hash"

// Table is an insertion-ordinal preserving, hash-sorted string set.
//
// Duplicate strings are not rejected by Add; callers check FindIdx first.
// Strings with equal hashes are kept adjacent in an unspecified relative order.
//
// Note: Table is NOT thread-safe.
type Table struct {
	strs   []string
	ords   []int
	hashes []uint32
}

// New creates an empty table.
func New() *Table {
	return &Table{}
}

// Len returns the number of interned strings.
func (t *Table) Len() int {
	return len(t.strs)
}

// Add interns s, keeping the table sorted by hash.
//
// The string receives the next insertion ordinal, so the first Add returns
// ordinal 0 from FindOrd, the second 1, and so on.
func (t *Table) Add(s string) {
	h := hash.Name32(s)
	ord := len(t.strs)

	pos := 0
	if ord > 0 {
		slot := t.findSlot(h)
		if h < t.hashes[slot] {
			pos = slot
		} else {
			pos = slot + 1
		}
	}

	t.strs = append(t.strs, "")
	t.ords = append(t.ords, 0)
	t.hashes = append(t.hashes, 0)

	copy(t.strs[pos+1:], t.strs[pos:ord])
	copy(t.ords[pos+1:], t.ords[pos:ord])
	copy(t.hashes[pos+1:], t.hashes[pos:ord])

	t.strs[pos] = s
	t.ords[pos] = ord
	t.hashes[pos] = h
}

// findSlot narrows [0, n) to an adjacent pair and returns its lower bound.
// The returned slot is the last position whose hash is <= h, or 0.
func (t *Table) findSlot(h uint32) int {
	lo, hi := 0, len(t.hashes)
	for hi-lo >= 2 {
		mid := (lo + hi) / 2
		if h < t.hashes[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}

	return lo
}

// FindIdx returns the sorted position of s, or -1 when s is not interned.
func (t *Table) FindIdx(s string) int {
	if len(t.strs) == 0 {
		return -1
	}

	h := hash.Name32(s)
	slot := t.findSlot(h)
	if t.hashes[slot] != h {
		return -1
	}

	for i := slot; i >= 0 && t.hashes[i] == h; i-- {
		if t.strs[i] == s {
			return i
		}
	}
	for i := slot + 1; i < len(t.strs) && t.hashes[i] == h; i++ {
		if t.strs[i] == s {
			return i
		}
	}

	return -1
}

// FindOrd returns the insertion ordinal of s, or -1 when s is not interned.
func (t *Table) FindOrd(s string) int {
	idx := t.FindIdx(s)
	if idx < 0 {
		return -1
	}

	return t.ords[idx]
}

// At returns the string, insertion ordinal and hash stored at sorted position i.
func (t *Table) At(i int) (string, int, uint32) {
	return t.strs[i], t.ords[i], t.hashes[i]
}

// Strings returns the interned strings in hash order.
// The returned slice is owned by the table.
func (t *Table) Strings() []string {
	return t.strs
}

// Hashes returns the hash column in ascending order.
// The returned slice is owned by the table.
func (t *Table) Hashes() []uint32 {
	return t.hashes
}

// Reset clears the table while retaining allocated memory.
func (t *Table) Reset() {
	t.strs = t.strs[:0]
	t.ords = t.ords[:0]
	t.hashes = t.hashes[:0]
}
