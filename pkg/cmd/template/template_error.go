// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"strings"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/filepos"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/htmltemplate"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
)

// TemplateError attaches the template source to a parse or evaluation
// error so it can be shown with a caret excerpt:
//
//	- Expected variable "title" to be defined
//	    page.html:1:6 | <p>{ title }</p>
//	                  |      ^^^^^
type TemplateError struct {
	Source filepos.Source
	Err    error
}

var _ error = TemplateError{}

func NewTemplateError(src filepos.Source, err error) error {
	return TemplateError{Source: src, Err: err}
}

func (e TemplateError) Error() string {
	excerpt := e.Excerpt()
	if len(excerpt) == 0 {
		return e.Err.Error()
	}
	return "- " + e.Message() + "\n    " + strings.ReplaceAll(excerpt, "\n", "\n    ")
}

func (e TemplateError) Unwrap() error { return e.Err }

func (e TemplateError) Message() string {
	switch typedErr := e.Err.(type) {
	case htmltemplate.ParseError:
		return typedErr.Message()
	case template.EvalError:
		return typedErr.Message()
	default:
		return e.Err.Error()
	}
}

// Excerpt is empty for errors without a source location.
func (e TemplateError) Excerpt() string {
	switch typedErr := e.Err.(type) {
	case htmltemplate.ParseError:
		return e.Source.ExcerptAt(typedErr.Position)
	case template.EvalError:
		return e.Source.Excerpt(typedErr.Range)
	default:
		return ""
	}
}
