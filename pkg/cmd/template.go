// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/template"
	"github.com/spf13/cobra"
)

// NewTemplateCmd constructs the render command. It lives outside of the
// "template" package so that package does not depend on cobra.
func NewTemplateCmd(o *template.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"t", "render"},
		Short:   "Render HTML templates",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	o.BindFlags(cmd.Flags())
	return cmd
}
