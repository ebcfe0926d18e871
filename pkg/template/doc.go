// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package template evaluates parsed HTML templates (see package htmltemplate)
against an Env of Values and produces a single RawHTML fragment.

Strings are HTML-escaped whenever they become output text; RawHTML is
inserted verbatim. Every failure is an EvalError carrying the source range
of the sub-expression that caused it.
*/
package template
