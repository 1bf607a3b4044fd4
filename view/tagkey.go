package view

import "encoding/binary"

// TagKey is the exact, collision-free encoding of a view's tag values,
// used as the row key in Data's per-view maps. Two TagKeys compare equal
// iff the tag-value slices they were built from are identical,
// element-for-element.
type TagKey string

// NewTagKey encodes tagValues into a TagKey. Each value is length-prefixed
// so that no concatenation of values can be mistaken for another; this
// differs from a plain delimiter join, which breaks if a value itself
// contains the delimiter.
func NewTagKey(tagValues []string) TagKey {
	var buf []byte

	var lenPrefix [4]byte

	for _, v := range tagValues {
		binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(v)))
		buf = append(buf, lenPrefix[:]...)
		buf = append(buf, v...)
	}

	return TagKey(buf)
}
