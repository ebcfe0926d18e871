// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a byte offset into the
template source, and Range: a half-open span of two such positions.

Positions are crucial when reporting errors to the user. They are plain
offsets (not references into parser state) so errors stay valid after
parsing completes. Source pairs a name (usually a file) with the original
text so that a Position or Range can be turned into a line number and a
caret excerpt.
*/
package filepos
