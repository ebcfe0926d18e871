// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files enumerates and loads template inputs from local paths,
directories, standard input and HTTP URLs, and writes rendered pages to an
output directory.

A File's Type is decided by its extension: templates (.html, .htm, .tpl)
are rendered, data values files (.yml, .yaml, .toml, .json) are loaded into
the evaluation environment, and anything else is skipped unless it was named
explicitly.
*/
package files
