// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package template implements the render command (not to be confused with
"pkg/template", home of the evaluator itself).

Front-and-center is template.Options. It holds the settings parsed from the
command line AND implements the command: loading input files and data
values, parsing and evaluating each template, and writing the results.
*/
package template
