// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/template"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/version"
	"github.com/spf13/cobra"
)

func NewDefaultTmplCmd() *cobra.Command {
	return NewTmplCmd(template.NewOptions())
}

// NewTmplCmd builds the root command; rendering templates is its default action.
func NewTmplCmd(o *template.Options) *cobra.Command {
	cmd := NewTemplateCmd(o)

	cmd.Use = "tmpl"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "tmpl renders HTML templates"
	cmd.Long = `tmpl renders HTML templates.

Templates are made of tags and '{ ... }' expressions:

  <ul>{ for post in posts }{ if post.published }<li><a href={post.url}>{ post.title }</a></li>{ end }{ end }</ul>

Values come from data values files and flags (see --data-value and --data-values-file).`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewTemplateCmd(template.NewOptions()))
	cmd.AddCommand(NewParseCmd(NewParseOptions()))
	cmd.AddCommand(NewWebsiteCmd(NewWebsiteOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
