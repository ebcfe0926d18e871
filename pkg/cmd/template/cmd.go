// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"time"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/ui"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/datavalues"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/files"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/filepos"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/htmltemplate"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
)

const (
	DefaultMaxDepth       = 256
	DefaultMaxOutputBytes = 64 << 20
)

type Options struct {
	Debug bool

	MaxDepth       int
	MaxOutputBytes int

	BulkFilesSourceOpts    BulkFilesSourceOpts
	RegularFilesSourceOpts RegularFilesSourceOpts
	DataValuesFlags        DataValuesFlags
}

type TemplateInput struct {
	Files []*files.File
}

type TemplateOutput struct {
	Files []files.OutputFile
	Err   error
	Empty bool
}

type FileSource interface {
	HasInput() bool
	HasOutput() bool
	Input() (TemplateInput, error)
	Output(TemplateOutput) error
}

var _ []FileSource = []FileSource{&BulkFilesSource{}, &RegularFilesSource{}}

func NewOptions() *Options {
	return &Options{
		MaxDepth:       DefaultMaxDepth,
		MaxOutputBytes: DefaultMaxOutputBytes,
	}
}

// BindFlags registers flags for template options.
func (o *Options) BindFlags(cmdFlags CmdFlags) {
	cmdFlags.BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmdFlags.IntVar(&o.MaxDepth, "max-depth", DefaultMaxDepth, "Maximum nesting of tags, loops and conditionals (0 for unlimited)")
	cmdFlags.IntVar(&o.MaxOutputBytes, "max-output-bytes", DefaultMaxOutputBytes, "Maximum size of a rendered template in bytes (0 for unlimited)")

	o.BulkFilesSourceOpts.Set(cmdFlags)
	o.RegularFilesSourceOpts.Set(cmdFlags)
	o.DataValuesFlags.Set(cmdFlags)
}

func (o *Options) Run() error {
	ui := ui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Since(t1))
	}()

	srcs := []FileSource{
		NewBulkFilesSource(o.BulkFilesSourceOpts, ui),
		NewRegularFilesSource(o.RegularFilesSourceOpts, ui),
	}

	in, err := o.pickSource(srcs, func(s FileSource) bool { return s.HasInput() }).Input()
	if err != nil {
		return err
	}

	out := o.RunWithFiles(in, ui)
	if out.Empty {
		return nil
	}

	return o.pickSource(srcs, func(s FileSource) bool { return s.HasOutput() }).Output(out)
}

// RunWithFiles loads data values from the input's data files and flags,
// then renders every template file in input order. It stops at the first error.
func (o *Options) RunWithFiles(in TemplateInput, ui ui.UI) TemplateOutput {
	var templateFiles []*files.File
	var fileValues []template.Dictionary

	for _, file := range in.Files {
		switch {
		case file.IsTemplate():
			templateFiles = append(templateFiles, file)

		case file.Type() == files.TypeDataValues:
			data, err := file.Bytes()
			if err != nil {
				return TemplateOutput{Err: fmt.Errorf("Reading %s: %s", file.Description(), err)}
			}
			dict, err := datavalues.FromFile(file.RelativePath(), data)
			if err != nil {
				return TemplateOutput{Err: err}
			}
			fileValues = append(fileValues, dict)

		default:
			ui.Debugf("skipping %s (unknown file type)\n", file.Description())
		}
	}

	values, err := o.DataValuesFlags.Values(fileValues)
	if err != nil {
		return TemplateOutput{Err: err}
	}

	if o.DataValuesFlags.Inspect {
		return o.inspectValues(values, ui)
	}

	parser := htmltemplate.NewParser(htmltemplate.ParserOpts{MaxDepth: o.MaxDepth})
	evaluator := template.NewEvaluator(template.EvalOpts{MaxOutputBytes: o.MaxOutputBytes})
	env := template.NewEnv(values)

	var outputFiles []files.OutputFile

	for _, file := range templateFiles {
		data, err := file.Bytes()
		if err != nil {
			return TemplateOutput{Err: fmt.Errorf("Reading %s: %s", file.Description(), err)}
		}

		src := filepos.NewSource(file.RelativePath(), string(data))

		exprs, err := parser.ParseTemplate(src.Text())
		if err != nil {
			return TemplateOutput{Err: NewTemplateError(src, err)}
		}

		if o.Debug {
			ui.Debugf("### tree %s\n", file.RelativePath())
			htmltemplate.NewPrinterWithOpts(ui.DebugWriter(), htmltemplate.PrinterOpts{Positions: true}).Print(exprs)
		}

		result, err := evaluator.EvalTemplate(exprs, env)
		if err != nil {
			return TemplateOutput{Err: NewTemplateError(src, err)}
		}

		outputFiles = append(outputFiles, files.NewOutputFile(file.OutputRelativePath(), []byte(result)))
	}

	return TemplateOutput{Files: outputFiles}
}

func (o *Options) pickSource(srcs []FileSource, pickFunc func(FileSource) bool) FileSource {
	for _, src := range srcs {
		if pickFunc(src) {
			return src
		}
	}
	return srcs[len(srcs)-1]
}

func (o *Options) inspectValues(values template.Dictionary, ui ui.UI) TemplateOutput {
	valuesBytes, err := datavalues.AsYAML(values)
	if err != nil {
		return TemplateOutput{Err: fmt.Errorf("Marshaling data values: %s", err)}
	}

	ui.Printf("%s", valuesBytes) // no newline

	return TemplateOutput{Empty: true}
}
