// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package datavalues converts data files (YAML, TOML, JSON) and command line
key/value pairs into template.Dictionary values used to build the
environment a template is evaluated against.

The template language only knows strings, raw HTML, arrays, booleans and
dictionaries, so numbers and timestamps are kept as their textual form and
null values are rejected. In YAML, a scalar tagged !html becomes raw HTML.
*/
package datavalues
