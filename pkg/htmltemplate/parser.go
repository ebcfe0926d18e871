// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/filepos"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/orderedmap"
)

const (
	keywordFor = "for"
	keywordIf  = "if"
	keywordIn  = "in"
	keywordEnd = "end"
)

type ParserOpts struct {
	// MaxDepth bounds how deeply nodes may nest; 0 means unbounded.
	MaxDepth int
}

// Parser turns template source into annotated expression trees.
// It holds no per-parse state and may be shared between goroutines.
type Parser struct {
	opts ParserOpts
}

func NewParser(opts ParserOpts) *Parser {
	return &Parser{opts}
}

// ParseOne parses exactly one node; any input left after it is an error.
func ParseOne(src string) (AnnotatedExpr, error) {
	return NewParser(ParserOpts{}).ParseOne(src)
}

// ParseTemplate parses a whitespace separated sequence of nodes.
func ParseTemplate(src string) ([]AnnotatedExpr, error) {
	return NewParser(ParserOpts{}).ParseTemplate(src)
}

func (p *Parser) ParseOne(src string) (AnnotatedExpr, error) {
	st := &parseState{src: src, maxDepth: p.opts.MaxDepth}

	result, err := st.parseNode()
	if err != nil {
		return AnnotatedExpr{}, err
	}
	if !st.atEnd() {
		return AnnotatedExpr{}, st.err(ReasonUnexpectedRemainder, "")
	}
	return result, nil
}

func (p *Parser) ParseTemplate(src string) ([]AnnotatedExpr, error) {
	st := &parseState{src: src, maxDepth: p.opts.MaxDepth}

	var result []AnnotatedExpr

	st.skipWS()
	for !st.atEnd() {
		node, err := st.parseNode()
		if err != nil {
			return nil, err
		}
		result = append(result, node)
		st.skipWS()
	}
	return result, nil
}

type parseState struct {
	src      string
	pos      int
	depth    int
	maxDepth int
}

func (s *parseState) parseNode() (AnnotatedExpr, error) {
	start := s.pos

	s.depth++
	defer func() { s.depth-- }()

	if s.maxDepth > 0 && s.depth > s.maxDepth {
		return AnnotatedExpr{}, s.err(ReasonNestingTooDeep, strconv.Itoa(s.maxDepth))
	}

	switch {
	case s.consume("{"):
		s.skipWS()
		return s.parseStatementOrExpression()
	case s.consume("<"):
		return s.parseTag(start)
	default:
		return AnnotatedExpr{}, s.err(ReasonUnexpectedRemainder, "")
	}
}

func (s *parseState) parseTag(start int) (AnnotatedExpr, error) {
	name, err := s.parseWhile(isTagName, ReasonExpectedTagName)
	if err != nil {
		return AnnotatedExpr{}, err
	}

	attrs := orderedmap.NewMap[AnnotatedExpr]()

	for !s.atEnd() {
		s.skipWS()
		if s.consume(">") {
			break
		}
		if !s.peekIs(isAttributeName) {
			return AnnotatedExpr{}, s.err(ReasonExpected, "Attribute or >")
		}

		attrName, err := s.parseWhile(isAttributeName, ReasonExpectedAttributeName)
		if err != nil {
			return AnnotatedExpr{}, err
		}
		if err := s.expect("="); err != nil {
			return AnnotatedExpr{}, err
		}
		if err := s.expect("{"); err != nil {
			return AnnotatedExpr{}, err
		}
		s.skipWS()

		attrValue, err := s.parseExpression()
		if err != nil {
			return AnnotatedExpr{}, err
		}
		s.skipWS()

		if err := s.expect("}"); err != nil {
			return AnnotatedExpr{}, err
		}
		attrs.Set(attrName, attrValue)
	}

	s.skipWS()

	closingTag := "</" + name + ">"
	var body []AnnotatedExpr

	for !s.consume(closingTag) {
		if s.atEnd() {
			return AnnotatedExpr{}, s.err(ReasonExpectedClosingTag, name)
		}
		node, err := s.parseNode()
		if err != nil {
			return AnnotatedExpr{}, err
		}
		body = append(body, node)
		s.skipWS()
	}

	return AnnotatedExpr{
		Expression: Tag[AnnotatedExpr]{Name: name, Attributes: attrs, Body: body},
		Range:      filepos.NewRange(start, s.pos),
	}, nil
}

// parseStatementOrExpression runs after '{'. The leading identifier decides
// whether this is a for/if statement or a plain expression; keywords are
// not reserved at the lexical level.
func (s *parseState) parseStatementOrExpression() (AnnotatedExpr, error) {
	start := s.pos

	result, err := s.parseExpression()
	if err != nil {
		return AnnotatedExpr{}, err
	}

	switch {
	case result.IsVariable(keywordFor):
		return s.parseFor(start)
	case result.IsVariable(keywordIf):
		return s.parseIf(start)
	default:
		s.skipWS()
		if err := s.expect("}"); err != nil {
			return AnnotatedExpr{}, err
		}
		return result, nil
	}
}

func (s *parseState) parseFor(start int) (AnnotatedExpr, error) {
	s.skipWS()
	variableName, err := s.parseIdentifier()
	if err != nil {
		return AnnotatedExpr{}, err
	}
	s.skipWS()
	if err := s.expectKeyword(keywordIn); err != nil {
		return AnnotatedExpr{}, err
	}
	s.skipWS()

	collection, err := s.parseExpression()
	if err != nil {
		return AnnotatedExpr{}, err
	}
	s.skipWS()
	if err := s.expect("}"); err != nil {
		return AnnotatedExpr{}, err
	}

	body, err := s.parseBody()
	if err != nil {
		return AnnotatedExpr{}, err
	}

	return AnnotatedExpr{
		Expression: For[AnnotatedExpr]{VariableName: variableName, Collection: collection, Body: body},
		Range:      filepos.NewRange(start, s.pos),
	}, nil
}

func (s *parseState) parseIf(start int) (AnnotatedExpr, error) {
	s.skipWS()
	condition, err := s.parseExpression()
	if err != nil {
		return AnnotatedExpr{}, err
	}
	s.skipWS()
	if err := s.expect("}"); err != nil {
		return AnnotatedExpr{}, err
	}

	body, err := s.parseBody()
	if err != nil {
		return AnnotatedExpr{}, err
	}

	return AnnotatedExpr{
		Expression: If[AnnotatedExpr]{Condition: condition, Body: body},
		Range:      filepos.NewRange(start, s.pos),
	}, nil
}

// parseBody collects nodes up to and including a `{ end }` node,
// which is consumed but not returned.
func (s *parseState) parseBody() ([]AnnotatedExpr, error) {
	var body []AnnotatedExpr

	s.skipWS()
	for {
		if s.atEnd() {
			return nil, s.err(ReasonExpected, "{ "+keywordEnd+" }")
		}
		node, err := s.parseNode()
		if err != nil {
			return nil, err
		}
		if node.IsVariable(keywordEnd) {
			return body, nil
		}
		body = append(body, node)
		s.skipWS()
	}
}

// parseExpression parses a variable followed by a left-associative chain of `.field` accesses.
func (s *parseState) parseExpression() (AnnotatedExpr, error) {
	start := s.pos

	name, err := s.parseIdentifier()
	if err != nil {
		return AnnotatedExpr{}, err
	}
	result := AnnotatedExpr{Expression: Variable[AnnotatedExpr]{Name: name}, Range: filepos.NewRange(start, s.pos)}

	for s.consume(".") {
		field, err := s.parseIdentifier()
		if err != nil {
			return AnnotatedExpr{}, err
		}
		result = AnnotatedExpr{
			Expression: Member[AnnotatedExpr]{LHS: result, RHS: field},
			Range:      filepos.NewRange(start, s.pos),
		}
	}
	return result, nil
}

func (s *parseState) parseIdentifier() (string, error) {
	return s.parseWhile(isIdentifier, ReasonExpectedIdentifier)
}

func (s *parseState) expect(literal string) error {
	if !s.consume(literal) {
		return s.err(ReasonExpected, literal)
	}
	return nil
}

func (s *parseState) expectKeyword(keyword string) error {
	start := s.pos
	name, err := s.parseIdentifier()
	if err != nil {
		return err
	}
	if name != keyword {
		return ParseError{Reason: ReasonExpected, Detail: keyword, Position: filepos.NewPosition(start)}
	}
	return nil
}

func (s *parseState) parseWhile(pred func(rune) bool, reason ParseErrorReason) (string, error) {
	start := s.pos
	for s.peekIs(pred) {
		_, size := utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += size
	}
	if s.pos == start {
		return "", s.err(reason, "")
	}
	return s.src[start:s.pos], nil
}

func (s *parseState) consume(prefix string) bool {
	if !strings.HasPrefix(s.src[s.pos:], prefix) {
		return false
	}
	s.pos += len(prefix)
	return true
}

func (s *parseState) skipWS() {
	for s.peekIs(unicode.IsSpace) {
		_, size := utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += size
	}
}

func (s *parseState) peekIs(pred func(rune) bool) bool {
	if s.atEnd() {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return pred(r)
}

func (s *parseState) atEnd() bool { return s.pos >= len(s.src) }

func (s *parseState) err(reason ParseErrorReason, detail string) ParseError {
	return ParseError{Reason: reason, Detail: detail, Position: filepos.NewPosition(s.pos)}
}

func isIdentifier(r rune) bool    { return unicode.IsLetter(r) }
func isTagName(r rune) bool       { return unicode.IsLetter(r) }
func isAttributeName(r rune) bool { return unicode.IsLetter(r) }
