// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/template"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/files"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/filepos"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/htmltemplate"
	"github.com/spf13/cobra"
)

type ParseOptions struct {
	Files     []string
	Positions bool
	MaxDepth  int

	stdout io.Writer
}

func NewParseOptions() *ParseOptions {
	return &ParseOptions{stdout: os.Stdout}
}

func NewParseCmd(o *ParseOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Print the parsed structure of templates",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringArrayVarP(&o.Files, "file", "f", nil, "File (ie local path, HTTP URL, -) (can be specified multiple times)")
	cmd.Flags().BoolVar(&o.Positions, "positions", false, "Show source offsets of each node")
	cmd.Flags().IntVar(&o.MaxDepth, "max-depth", template.DefaultMaxDepth, "Maximum nesting of tags, loops and conditionals (0 for unlimited)")
	return cmd
}

func (o *ParseOptions) Run() error {
	if len(o.Files) == 0 {
		return fmt.Errorf("Expected at least one file (use -f)")
	}

	filesToParse, err := files.NewSortedFilesFromPaths(o.Files, false, files.SymlinkAllowOpts{})
	if err != nil {
		return err
	}

	parser := htmltemplate.NewParser(htmltemplate.ParserOpts{MaxDepth: o.MaxDepth})
	printer := htmltemplate.NewPrinterWithOpts(o.stdout, htmltemplate.PrinterOpts{Positions: o.Positions})

	for _, file := range filesToParse {
		data, err := file.Bytes()
		if err != nil {
			return fmt.Errorf("Reading %s: %s", file.Description(), err)
		}

		src := filepos.NewSource(file.RelativePath(), string(data))

		exprs, err := parser.ParseTemplate(src.Text())
		if err != nil {
			return template.NewTemplateError(src, err)
		}

		if len(filesToParse) > 1 {
			fmt.Fprintf(o.stdout, "# %s\n", file.RelativePath())
		}
		printer.Print(exprs)
	}

	return nil
}
