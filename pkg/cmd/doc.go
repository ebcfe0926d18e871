// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd is home to the full set of tmpl's commands (instances of
cobra.Command), not to be confused with ./cmd which contains the
bootstrapping for executing tmpl in various environments.

For a list of commands run:

	$ tmpl help

The default command renders templates (see package template).
*/
package cmd
