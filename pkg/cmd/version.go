// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"io"
	"os"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/ui"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	Require string

	stdout io.Writer
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{stdout: os.Stdout}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.Require, "require", "", "Fail unless the version satisfies the constraint (eg '>= 0.1, < 1.0')")
	return cmd
}

func (o *VersionOptions) Run() error {
	if len(o.Require) > 0 {
		err := version.Satisfies(o.Require)
		if err != nil {
			return err
		}
	}

	ui.NewCustomWriterTTY(false, o.stdout, nil).Printf("tmpl version %s\n", version.Version)

	return nil
}
