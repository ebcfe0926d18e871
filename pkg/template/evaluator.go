// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/filepos"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/htmltemplate"
)

type (
	expr = htmltemplate.AnnotatedExpr
)

type EvalOpts struct {
	// MaxOutputBytes bounds the length of any rendered node sequence; 0 means unbounded.
	MaxOutputBytes int
}

// Evaluator renders annotated trees against an Env. It never mutates the
// tree or the Env, so it may be used from several goroutines at once.
type Evaluator struct {
	opts EvalOpts
}

func NewEvaluator(opts EvalOpts) *Evaluator {
	return &Evaluator{opts}
}

// EvalTemplate renders a node sequence with no output limit.
func EvalTemplate(exprs []expr, env Env) (RawHTML, error) {
	return NewEvaluator(EvalOpts{}).EvalTemplate(exprs, env)
}

// Eval evaluates a single node to its raw value with no output limit.
func Eval(e expr, env Env) (Value, error) {
	return NewEvaluator(EvalOpts{}).Eval(e, env)
}

// EvalTemplate concatenates the HTML rendering of every node.
func (ev *Evaluator) EvalTemplate(exprs []expr, env Env) (RawHTML, error) {
	result, err := ev.evalSeq(exprs, env)
	if err != nil {
		return "", err
	}
	return RawHTML(result), nil
}

// Eval returns the node's value without converting it to HTML.
func (ev *Evaluator) Eval(e expr, env Env) (Value, error) {
	switch typedExpr := e.Expression.(type) {
	case htmltemplate.Variable[expr]:
		val, found := env.Lookup(typedExpr.Name)
		if !found {
			return nil, EvalError{Reason: ReasonVariableMissing, Name: typedExpr.Name, Range: e.Range}
		}
		return val, nil

	case htmltemplate.Tag[expr]:
		return ev.evalTag(e, typedExpr, env)

	case htmltemplate.For[expr]:
		return ev.evalFor(typedExpr, env)

	case htmltemplate.If[expr]:
		cond, err := ev.Eval(typedExpr.Condition, env)
		if err != nil {
			return nil, err
		}
		typedCond, ok := cond.(Bool)
		if !ok {
			return nil, newTypeErr(ReasonExpectedBool, typedExpr.Condition.Range, cond)
		}
		if !typedCond {
			return RawHTML(""), nil
		}
		return ev.EvalTemplate(typedExpr.Body, env)

	case htmltemplate.Member[expr]:
		lhs, err := ev.Eval(typedExpr.LHS, env)
		if err != nil {
			return nil, err
		}
		dict, ok := lhs.(Dictionary)
		if !ok {
			return nil, newTypeErr(ReasonExpectedDictionary, typedExpr.LHS.Range, lhs)
		}
		val, found := dict[typedExpr.RHS]
		if !found {
			return nil, EvalError{Reason: ReasonMissingProperty, Name: typedExpr.RHS, Range: e.Range}
		}
		return val, nil

	default:
		panic(fmt.Sprintf("unknown expression type %T", typedExpr))
	}
}

// evalTag renders attributes in source order, then the body.
func (ev *Evaluator) evalTag(e expr, tag htmltemplate.Tag[expr], env Env) (Value, error) {
	var attrs strings.Builder

	err := tag.Attributes.IterateErr(func(name string, attrExpr expr) error {
		val, err := ev.Eval(attrExpr, env)
		if err != nil {
			return err
		}
		str, ok := val.(String)
		if !ok {
			return newTypeErr(ReasonExpectedString, attrExpr.Range, val)
		}
		attrs.WriteString(" " + name + `="` + EscapeAttribute(string(str)) + `"`)
		return nil
	})
	if err != nil {
		return nil, err
	}

	body, err := ev.evalSeq(tag.Body, env)
	if err != nil {
		return nil, err
	}

	result := "<" + tag.Name + attrs.String() + ">" + body + "</" + tag.Name + ">"

	if err := ev.checkOutputLen(len(result), e.Range); err != nil {
		return nil, err
	}
	return RawHTML(result), nil
}

func (ev *Evaluator) evalFor(loop htmltemplate.For[expr], env Env) (Value, error) {
	coll, err := ev.Eval(loop.Collection, env)
	if err != nil {
		return nil, err
	}
	items, ok := coll.(Array)
	if !ok {
		return nil, newTypeErr(ReasonExpectedArray, loop.Collection.Range, coll)
	}

	var result strings.Builder

	for _, item := range items {
		childEnv := env.With(loop.VariableName, item)

		for _, bodyExpr := range loop.Body {
			html, err := ev.evalHTML(bodyExpr, childEnv)
			if err != nil {
				return nil, err
			}
			result.WriteString(html)

			if err := ev.checkOutputLen(result.Len(), bodyExpr.Range); err != nil {
				return nil, err
			}
		}
	}

	return RawHTML(result.String()), nil
}

func (ev *Evaluator) evalSeq(exprs []expr, env Env) (string, error) {
	var result strings.Builder

	for _, e := range exprs {
		html, err := ev.evalHTML(e, env)
		if err != nil {
			return "", err
		}
		result.WriteString(html)

		if err := ev.checkOutputLen(result.Len(), e.Range); err != nil {
			return "", err
		}
	}

	return result.String(), nil
}

func (ev *Evaluator) evalHTML(e expr, env Env) (string, error) {
	val, err := ev.Eval(e, env)
	if err != nil {
		return "", err
	}
	return ToHTML(val, e.Range)
}

func (ev *Evaluator) checkOutputLen(length int, r filepos.Range) error {
	if ev.opts.MaxOutputBytes > 0 && length > ev.opts.MaxOutputBytes {
		return EvalError{Reason: ReasonOutputTooLarge, Name: strconv.Itoa(ev.opts.MaxOutputBytes), Range: r}
	}
	return nil
}

// ToHTML converts a value produced by the node at r into output text.
func ToHTML(val Value, r filepos.Range) (string, error) {
	switch typedVal := val.(type) {
	case String:
		return EscapeHTML(string(typedVal)), nil
	case RawHTML:
		return string(typedVal), nil
	default:
		return "", newTypeErr(ReasonExpectedHTMLConvertible, r, val)
	}
}
