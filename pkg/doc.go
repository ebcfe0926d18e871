// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of tmpl.

Packages are layered so that each depends on the others only as much as it
needs to. In the inventory below, individual packages are named alongside
their coupling with the other packages in the codebase.

	(# of dependents) => <package name> => (# of dependencies)

# Entry Point

tmpl is built into two executable formats:

	./cmd/tmpl                  // a command-line tool
	./cmd/tmpl-lambda-website   // an AWS Lambda function serving the playground

tmpl contains a mini website that is the "Playground".

	(1) => pkg/website => (2)

# Commands

The most commonly used command is "template", which is also the root command.

	(2) => pkg/cmd => (4)
	(2) => pkg/cmd/template => (7)

# Templating

A template is parsed into a tree of annotated expressions (every node
carries the range of source it came from) and then evaluated against an
environment of values to produce HTML.

	(4) => pkg/htmltemplate => (2)
	(4) => pkg/template => (2)

# Data Values

Values handed to templates come from YAML, TOML and JSON files and from
command line flags.

	(1) => pkg/datavalues => (2)
	(2) => pkg/files => (0)

# Utilities

The remainder are domain-agnostic utilities.

	(5) => pkg/filepos => (0)
	(3) => pkg/orderedmap => (0)
	(2) => pkg/cmd/ui => (0)
	(1) => pkg/version => (0)

# Dependencies

	pkg/cmd:
	- pkg/cmd/template
	- pkg/cmd/ui
	- pkg/files
	- pkg/filepos
	- pkg/htmltemplate
	- pkg/version
	- pkg/website
	pkg/cmd/template:
	- pkg/cmd/ui
	- pkg/datavalues
	- pkg/files
	- pkg/filepos
	- pkg/htmltemplate
	- pkg/template
	pkg/website:
	- pkg/htmltemplate
	- pkg/template
	pkg/datavalues:
	- pkg/orderedmap
	- pkg/template
	pkg/template:
	- pkg/filepos
	- pkg/htmltemplate
	pkg/htmltemplate:
	- pkg/filepos
	- pkg/orderedmap
*/
package pkg
