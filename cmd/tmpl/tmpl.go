// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"
	"github.com/fatih/color"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd"
)

func main() {
	command := cmd.NewDefaultTmplCmd()

	err := command.Execute()
	if err != nil {
		color.New(color.FgRed).Fprint(os.Stderr, "tmpl: Error: ")
		color.New().Fprintf(os.Stderr, "%s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
