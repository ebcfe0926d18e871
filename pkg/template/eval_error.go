// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/filepos"
)

type EvalErrorReason int

const (
	// ReasonVariableMissing means EvalError.Name is not bound.
	ReasonVariableMissing EvalErrorReason = iota
	ReasonExpectedString
	ReasonExpectedHTMLConvertible
	ReasonExpectedArray
	ReasonExpectedBool
	ReasonExpectedDictionary
	// ReasonMissingProperty means the dictionary has no key EvalError.Name.
	ReasonMissingProperty
	// ReasonOutputTooLarge means rendering exceeded EvalOpts.MaxOutputBytes.
	ReasonOutputTooLarge
)

func (r EvalErrorReason) String() string {
	switch r {
	case ReasonVariableMissing:
		return "variable missing"
	case ReasonExpectedString:
		return "expected string"
	case ReasonExpectedHTMLConvertible:
		return "expected HTML convertible"
	case ReasonExpectedArray:
		return "expected array"
	case ReasonExpectedBool:
		return "expected bool"
	case ReasonExpectedDictionary:
		return "expected dictionary"
	case ReasonMissingProperty:
		return "missing property"
	case ReasonOutputTooLarge:
		return "output too large"
	default:
		return fmt.Sprintf("unknown reason %d", int(r))
	}
}

// EvalError reports why evaluation failed and which source range caused it.
type EvalError struct {
	Reason EvalErrorReason
	// Name is the variable or property name, or the byte limit, depending on Reason.
	Name  string
	Range filepos.Range
	// Actual is the type of the offending value for type mismatches.
	Actual string
}

var _ error = EvalError{}

func (e EvalError) Error() string {
	return fmt.Sprintf("%s (at %s)", e.Message(), e.Range.AsString())
}

// Message describes the failure without location information.
func (e EvalError) Message() string {
	switch e.Reason {
	case ReasonVariableMissing:
		return fmt.Sprintf("Expected variable %q to be defined", e.Name)
	case ReasonExpectedString:
		return fmt.Sprintf("Expected attribute value to be a string, but was %s", e.Actual)
	case ReasonExpectedHTMLConvertible:
		return fmt.Sprintf("Expected value to be a string or html, but was %s", e.Actual)
	case ReasonExpectedArray:
		return fmt.Sprintf("Expected for loop collection to be an array, but was %s", e.Actual)
	case ReasonExpectedBool:
		return fmt.Sprintf("Expected if condition to be a bool, but was %s", e.Actual)
	case ReasonExpectedDictionary:
		return fmt.Sprintf("Expected value to be a dictionary, but was %s", e.Actual)
	case ReasonMissingProperty:
		return fmt.Sprintf("Expected dictionary to have property %q", e.Name)
	case ReasonOutputTooLarge:
		return fmt.Sprintf("Expected rendered output to be at most %s bytes", e.Name)
	default:
		return "Evaluation error: " + e.Reason.String()
	}
}

func newTypeErr(reason EvalErrorReason, r filepos.Range, actual Value) EvalError {
	return EvalError{Reason: reason, Range: r, Actual: TypeName(actual)}
}
