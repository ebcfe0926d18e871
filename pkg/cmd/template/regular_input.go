// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/ui"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/files"
)

type RegularFilesSourceOpts struct {
	files     []string
	recursive bool

	outputDir string

	files.SymlinkAllowOpts
}

func (s *RegularFilesSourceOpts) Set(cmdFlags CmdFlags) {
	cmdFlags.StringArrayVarP(&s.files, "file", "f", nil, "File (ie local path, HTTP URL, -) (can be specified multiple times)")
	cmdFlags.BoolVarP(&s.recursive, "recursive", "R", false, "Interpret file as directory")

	cmdFlags.StringVar(&s.outputDir, "output-files", "", "Delete given directory, and then create it with output files")

	cmdFlags.BoolVar(&s.SymlinkAllowOpts.AllowAll, "dangerous-allow-all-symlink-destinations", false,
		"Symlinks to all destinations are allowed")
	cmdFlags.StringSliceVar(&s.SymlinkAllowOpts.AllowedDstPaths, "allow-symlink-destination", nil,
		"File paths to which symlinks are allowed (can be specified multiple times)")
}

type RegularFilesSource struct {
	opts RegularFilesSourceOpts
	ui   ui.UI
}

func NewRegularFilesSource(opts RegularFilesSourceOpts, ui ui.UI) *RegularFilesSource {
	return &RegularFilesSource{opts, ui}
}

func (s *RegularFilesSource) HasInput() bool  { return len(s.opts.files) > 0 }
func (s *RegularFilesSource) HasOutput() bool { return true }

func (s *RegularFilesSource) Input() (TemplateInput, error) {
	filesToProcess, err := files.NewSortedFilesFromPaths(s.opts.files, s.opts.recursive, s.opts.SymlinkAllowOpts)
	if err != nil {
		return TemplateInput{}, err
	}
	return TemplateInput{Files: filesToProcess}, nil
}

// Output writes rendered pages to the output directory, or to stdout
// one page per line when no directory was given.
func (s *RegularFilesSource) Output(out TemplateOutput) error {
	if out.Err != nil {
		return out.Err
	}

	if len(s.opts.outputDir) > 0 {
		return files.NewOutputDirectory(s.opts.outputDir, out.Files, s.ui).Write()
	}

	for _, file := range out.Files {
		s.ui.Debugf("### %s\n", file.RelativePath())
		s.ui.Printf("%s\n", file.Bytes())
	}

	return nil
}
