// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"sort"
	"strings"
)

// Value is what variables are bound to and what expressions evaluate to.
// The set of implementations is closed: String, RawHTML, Array, Bool and Dictionary.
type Value interface {
	Type() string
	value()
}

// String is text that gets HTML-escaped when rendered.
type String string

// RawHTML is pre-escaped markup inserted verbatim.
type RawHTML string

type Array []Value

type Bool bool

type Dictionary map[string]Value

var _ = []Value{String(""), RawHTML(""), Array{}, Bool(false), Dictionary{}}

func (String) Type() string     { return "string" }
func (RawHTML) Type() string    { return "html" }
func (Array) Type() string      { return "array" }
func (Bool) Type() string       { return "bool" }
func (Dictionary) Type() string { return "dictionary" }

func (String) value()     {}
func (RawHTML) value()    {}
func (Array) value()      {}
func (Bool) value()       {}
func (Dictionary) value() {}

// TypeName is like val.Type() but tolerates nil.
func TypeName(val Value) string {
	if val == nil {
		return "nil"
	}
	return val.Type()
}

// Equal compares values structurally.
func Equal(a, b Value) bool {
	switch typedA := a.(type) {
	case String:
		typedB, ok := b.(String)
		return ok && typedA == typedB
	case RawHTML:
		typedB, ok := b.(RawHTML)
		return ok && typedA == typedB
	case Bool:
		typedB, ok := b.(Bool)
		return ok && typedA == typedB
	case Array:
		typedB, ok := b.(Array)
		if !ok || len(typedA) != len(typedB) {
			return false
		}
		for i := range typedA {
			if !Equal(typedA[i], typedB[i]) {
				return false
			}
		}
		return true
	case Dictionary:
		typedB, ok := b.(Dictionary)
		if !ok || len(typedA) != len(typedB) {
			return false
		}
		for k, v := range typedA {
			otherV, found := typedB[k]
			if !found || !Equal(v, otherV) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		panic(fmt.Sprintf("unknown value type %T", typedA))
	}
}

// Describe renders val for debugging (dictionary keys sorted).
func Describe(val Value) string {
	switch typedVal := val.(type) {
	case String:
		return fmt.Sprintf("%q", string(typedVal))
	case RawHTML:
		return fmt.Sprintf("html(%q)", string(typedVal))
	case Bool:
		return fmt.Sprintf("%t", bool(typedVal))
	case Array:
		var items []string
		for _, item := range typedVal {
			items = append(items, Describe(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case Dictionary:
		var keys []string
		for k := range typedVal {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var items []string
		for _, k := range keys {
			items = append(items, fmt.Sprintf("%s: %s", k, Describe(typedVal[k])))
		}
		return "{" + strings.Join(items, ", ") + "}"
	case nil:
		return "nil"
	default:
		panic(fmt.Sprintf("unknown value type %T", typedVal))
	}
}
