// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"fmt"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/filepos"
)

type ParseErrorReason int

const (
	// ReasonExpected means a literal token (ParseError.Detail) was absent.
	ReasonExpected ParseErrorReason = iota
	// ReasonExpectedClosingTag means input ended before the closing tag of
	// the tag named ParseError.Detail.
	ReasonExpectedClosingTag
	ReasonExpectedIdentifier
	ReasonExpectedTagName
	ReasonExpectedAttributeName
	ReasonUnexpectedRemainder
	ReasonNestingTooDeep
)

func (r ParseErrorReason) String() string {
	switch r {
	case ReasonExpected:
		return "expected"
	case ReasonExpectedClosingTag:
		return "expected closing tag"
	case ReasonExpectedIdentifier:
		return "expected identifier"
	case ReasonExpectedTagName:
		return "expected tag name"
	case ReasonExpectedAttributeName:
		return "expected attribute name"
	case ReasonUnexpectedRemainder:
		return "unexpected remainder"
	case ReasonNestingTooDeep:
		return "nesting too deep"
	default:
		return fmt.Sprintf("unknown reason %d", int(r))
	}
}

// ParseError reports why parsing stopped and where.
type ParseError struct {
	Reason   ParseErrorReason
	Detail   string
	Position filepos.Position
}

var _ error = ParseError{}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s (at %s)", e.Message(), e.Position.AsString())
}

// Message describes the failure without location information.
func (e ParseError) Message() string {
	switch e.Reason {
	case ReasonExpected:
		return fmt.Sprintf("Expected %q", e.Detail)
	case ReasonExpectedClosingTag:
		return fmt.Sprintf("Expected closing tag '</%s>' before end of input", e.Detail)
	case ReasonNestingTooDeep:
		return fmt.Sprintf("Expected nesting to be at most %s levels deep", e.Detail)
	case ReasonExpectedIdentifier:
		return "Expected identifier (one or more letters)"
	case ReasonExpectedTagName:
		return "Expected tag name (one or more letters)"
	case ReasonExpectedAttributeName:
		return "Expected attribute name (one or more letters)"
	case ReasonUnexpectedRemainder:
		return "Unexpected input (only tags and '{ ... }' expressions may appear here)"
	default:
		return "Parse error: " + e.Reason.String()
	}
}

// Range is the zero-width range at the error position.
func (e ParseError) Range() filepos.Range {
	return filepos.Range{Start: e.Position, End: e.Position}
}
