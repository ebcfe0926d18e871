// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Source is a named piece of template text.
type Source struct {
	name string
	text string
}

func NewSource(name, text string) Source {
	return Source{name: name, text: text}
}

func (s Source) Name() string { return s.name }
func (s Source) Text() string { return s.text }

// LineCol returns the 1 based line and column (in runes) of pos.
func (s Source) LineCol(pos Position) (int, int) {
	offset := s.clamp(pos.Offset)
	lineStart := strings.LastIndexByte(s.text[:offset], '\n') + 1
	line := strings.Count(s.text[:lineStart], "\n") + 1
	col := utf8.RuneCountInString(s.text[lineStart:offset]) + 1
	return line, col
}

// AsCompactString formats pos as name:line:col, omitting an empty name.
func (s Source) AsCompactString(pos Position) string {
	line, col := s.LineCol(pos)
	filePrefix := s.name
	if len(filePrefix) > 0 {
		filePrefix += ":"
	}
	return fmt.Sprintf("%s%d:%d", filePrefix, line, col)
}

// Excerpt renders the first line touched by r with a caret marker below it:
//
//	page.html:1:6 | <p>{ title }</p>
//	              |      ^^^^^
func (s Source) Excerpt(r Range) string {
	start := s.clamp(r.Start.Offset)
	end := s.clamp(r.End.Offset)

	lineStart := strings.LastIndexByte(s.text[:start], '\n') + 1
	lineEnd := strings.IndexByte(s.text[start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(s.text)
	} else {
		lineEnd += start
	}
	if end > lineEnd {
		end = lineEnd
	}

	prefix := s.AsCompactString(NewPosition(start)) + " | "
	pad := strings.Repeat(" ", utf8.RuneCountInString(s.text[lineStart:start]))
	carets := strings.Repeat("^", max(1, utf8.RuneCountInString(s.text[start:end])))

	return fmt.Sprintf("%s%s\n%s| %s%s",
		prefix, s.text[lineStart:lineEnd], strings.Repeat(" ", len(prefix)-2), pad, carets)
}

// ExcerptAt renders a caret excerpt for a single position.
func (s Source) ExcerptAt(pos Position) string {
	return s.Excerpt(Range{Start: pos, End: pos})
}

func (s Source) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(s.text) {
		return len(s.text)
	}
	return offset
}
