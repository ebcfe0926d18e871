// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"fmt"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/filepos"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/orderedmap"
)

// Expression is one node of the tree; R is what child nodes are
// (AnnotatedExpr or SimpleExpr). Implemented by Variable, Tag, For, If and Member.
type Expression[R any] interface {
	expression(R)
}

type Variable[R any] struct {
	Name string
}

type Tag[R any] struct {
	Name       string
	Attributes *orderedmap.Map[R]
	Body       []R
}

type For[R any] struct {
	VariableName string
	Collection   R
	Body         []R
}

type If[R any] struct {
	Condition R
	Body      []R
}

type Member[R any] struct {
	LHS R
	RHS string
}

var _ = []Expression[SimpleExpr]{
	Variable[SimpleExpr]{}, Tag[SimpleExpr]{}, For[SimpleExpr]{}, If[SimpleExpr]{}, Member[SimpleExpr]{}}

func (Variable[R]) expression(R) {}
func (Tag[R]) expression(R)      {}
func (For[R]) expression(R)      {}
func (If[R]) expression(R)       {}
func (Member[R]) expression(R)   {}

// AnnotatedExpr is a node together with the source range it was parsed from.
type AnnotatedExpr struct {
	Expression Expression[AnnotatedExpr]
	Range      filepos.Range
}

// SimpleExpr is a node without position information.
type SimpleExpr struct {
	Expression Expression[SimpleExpr]
}

// Simple strips positions from e and all of its descendants.
func (e AnnotatedExpr) Simple() SimpleExpr {
	if e.Expression == nil {
		return SimpleExpr{}
	}
	return SimpleExpr{Expression: Map(e.Expression, AnnotatedExpr.Simple)}
}

// SimpleAll strips positions from every node of a sequence.
func SimpleAll(exprs []AnnotatedExpr) []SimpleExpr {
	return mapSlice(exprs, AnnotatedExpr.Simple)
}

// IsVariable reports whether e is exactly a variable reference named name.
func (e AnnotatedExpr) IsVariable(name string) bool {
	v, ok := e.Expression.(Variable[AnnotatedExpr])
	return ok && v.Name == name
}

// Map transforms every direct child of expr with transform, keeping the
// node kind and its non-child fields.
func Map[R, S any](expr Expression[R], transform func(R) S) Expression[S] {
	switch typedExpr := expr.(type) {
	case Variable[R]:
		return Variable[S]{Name: typedExpr.Name}

	case Tag[R]:
		attrs := orderedmap.NewMap[S]()
		typedExpr.Attributes.Iterate(func(k string, v R) {
			attrs.Set(k, transform(v))
		})
		return Tag[S]{Name: typedExpr.Name, Attributes: attrs, Body: mapSlice(typedExpr.Body, transform)}

	case For[R]:
		return For[S]{
			VariableName: typedExpr.VariableName,
			Collection:   transform(typedExpr.Collection),
			Body:         mapSlice(typedExpr.Body, transform),
		}

	case If[R]:
		return If[S]{Condition: transform(typedExpr.Condition), Body: mapSlice(typedExpr.Body, transform)}

	case Member[R]:
		return Member[S]{LHS: transform(typedExpr.LHS), RHS: typedExpr.RHS}

	default:
		panic(fmt.Sprintf("unknown expression type %T", typedExpr))
	}
}

func mapSlice[R, S any](items []R, transform func(R) S) []S {
	if len(items) == 0 {
		return nil
	}
	result := make([]S, 0, len(items))
	for _, item := range items {
		result = append(result, transform(item))
	}
	return result
}

// Constructors for the structural form, mostly useful for building expected trees.

func NewVariable(name string) SimpleExpr {
	return SimpleExpr{Variable[SimpleExpr]{Name: name}}
}

// NewTag builds a tag node; attrs may be nil.
func NewTag(name string, attrs *orderedmap.Map[SimpleExpr], body ...SimpleExpr) SimpleExpr {
	if attrs == nil {
		attrs = orderedmap.NewMap[SimpleExpr]()
	}
	return SimpleExpr{Tag[SimpleExpr]{Name: name, Attributes: attrs, Body: mapSlice(body, identity[SimpleExpr])}}
}

func NewFor(variableName string, collection SimpleExpr, body ...SimpleExpr) SimpleExpr {
	return SimpleExpr{For[SimpleExpr]{VariableName: variableName, Collection: collection, Body: mapSlice(body, identity[SimpleExpr])}}
}

func NewIf(condition SimpleExpr, body ...SimpleExpr) SimpleExpr {
	return SimpleExpr{If[SimpleExpr]{Condition: condition, Body: mapSlice(body, identity[SimpleExpr])}}
}

func NewMember(lhs SimpleExpr, rhs string) SimpleExpr {
	return SimpleExpr{Member[SimpleExpr]{LHS: lhs, RHS: rhs}}
}

// NewAttributes pairs up alternating names and values.
func NewAttributes(nameValues ...interface{}) *orderedmap.Map[SimpleExpr] {
	if len(nameValues)%2 != 0 {
		panic("Expected even number of attribute names and values")
	}
	attrs := orderedmap.NewMap[SimpleExpr]()
	for i := 0; i < len(nameValues); i += 2 {
		attrs.Set(nameValues[i].(string), nameValues[i+1].(SimpleExpr))
	}
	return attrs
}

func identity[T any](v T) T { return v }
