// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package website serves the tmpl playground: an index page listing built-in
examples and a /template endpoint that renders a posted template against
posted data values.
*/
package website
