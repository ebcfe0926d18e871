// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package htmltemplate parses template source into an expression tree.

A template is a sequence of nodes. A node is either an HTML-like tag
(`<p class={ cls }>...</p>`) or a brace-delimited expression or statement
(`{ post.title }`, `{ for post in posts }...{ end }`, `{ if x }...{ end }`).
There is no literal text node: only whitespace may appear between nodes.

The tree exists in two shapes sharing one generic definition, Expression[R]:
AnnotatedExpr carries the source Range each node was parsed from and is used
for diagnostics, SimpleExpr carries no positions and is used for structural
comparison.
*/
package htmltemplate
