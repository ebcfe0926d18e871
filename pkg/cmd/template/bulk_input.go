// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/ui"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/files"
)

type BulkFilesSourceOpts struct {
	bulkIn  string
	bulkOut bool
}

func (s *BulkFilesSourceOpts) Set(cmdFlags CmdFlags) {
	cmdFlags.StringVar(&s.bulkIn, "bulk-in", "", "Accept files in bulk format")
	cmdFlags.BoolVar(&s.bulkOut, "bulk-out", false, "Output files in bulk format")
}

type BulkFilesSource struct {
	opts BulkFilesSourceOpts
	ui   ui.UI
}

// BulkFiles is the JSON form of a set of input or output files.
type BulkFiles struct {
	Files   []BulkFile `json:"files,omitempty"`
	Errors  string     `json:"errors,omitempty"`
	Excerpt string     `json:"excerpt,omitempty"`
}

type BulkFile struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

func NewBulkFilesSource(opts BulkFilesSourceOpts, ui ui.UI) *BulkFilesSource {
	return &BulkFilesSource{opts, ui}
}

func (s *BulkFilesSource) HasInput() bool  { return len(s.opts.bulkIn) > 0 }
func (s *BulkFilesSource) HasOutput() bool { return s.opts.bulkOut }

func (s BulkFilesSource) Input() (TemplateInput, error) {
	var fs BulkFiles
	err := json.Unmarshal([]byte(s.opts.bulkIn), &fs)
	if err != nil {
		return TemplateInput{}, fmt.Errorf("Unmarshaling bulk files: %s", err)
	}
	return fs.AsInput()
}

// AsInput turns bulk files into in-memory template input, keeping their order.
func (fs BulkFiles) AsInput() (TemplateInput, error) {
	var result []*files.File

	for _, f := range fs.Files {
		file, err := files.NewFileFromSource(files.NewBytesSource(f.Name, []byte(f.Data)))
		if err != nil {
			return TemplateInput{}, err
		}
		result = append(result, file)
	}

	return TemplateInput{Files: result}, nil
}

func (s *BulkFilesSource) Output(out TemplateOutput) error {
	resultBytes, err := json.Marshal(NewBulkFilesFromOutput(out))
	if err != nil {
		return err
	}

	s.ui.Debugf("### result\n")
	s.ui.Printf("%s", resultBytes)

	return nil
}

// NewBulkFilesFromOutput collects output files, or the error with its
// source excerpt when rendering failed.
func NewBulkFilesFromOutput(out TemplateOutput) BulkFiles {
	fs := BulkFiles{}

	if out.Err != nil {
		fs.Errors = out.Err.Error()

		var tplErr TemplateError
		if errors.As(out.Err, &tplErr) {
			fs.Errors = tplErr.Message()
			fs.Excerpt = tplErr.Excerpt()
		}
		return fs
	}

	for _, outputFile := range out.Files {
		fs.Files = append(fs.Files, BulkFile{
			Name: outputFile.RelativePath(),
			Data: string(outputFile.Bytes()),
		})
	}

	return fs
}
