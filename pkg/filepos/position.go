// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
	"strings"
)

// Position is a byte offset into template source text.
type Position struct {
	Offset int
}

func NewPosition(offset int) Position {
	if offset < 0 {
		panic("Offsets are 0 based")
	}
	return Position{Offset: offset}
}

func (p Position) AsString() string { return fmt.Sprintf("offset %d", p.Offset) }

// Range is the half-open span [Start, End) of source text.
type Range struct {
	Start Position
	End   Position
}

func NewRange(start, end int) Range {
	if end < start {
		panic(fmt.Sprintf("Range end %d is before start %d", end, start))
	}
	return Range{Start: NewPosition(start), End: NewPosition(end)}
}

// NewRangeOf returns the range of the first occurrence of substr within src.
func NewRangeOf(src, substr string) (Range, bool) {
	idx := strings.Index(src, substr)
	if idx < 0 {
		return Range{}, false
	}
	return NewRange(idx, idx+len(substr)), true
}

func (r Range) Len() int { return r.End.Offset - r.Start.Offset }

func (r Range) IsEmpty() bool { return r.Len() == 0 }

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return r.Start.Offset <= other.Start.Offset && other.End.Offset <= r.End.Offset
}

// Slice returns the text covered by r. Ranges are produced against src,
// so an out of bounds range indicates a programmer error.
func (r Range) Slice(src string) string {
	return src[r.Start.Offset:r.End.Offset]
}

func (r Range) AsString() string {
	return fmt.Sprintf("offsets %d..%d", r.Start.Offset, r.End.Offset)
}
