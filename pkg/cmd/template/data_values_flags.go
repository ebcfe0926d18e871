// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"os"
	"strings"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/datavalues"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/files"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
)

const (
	dvsKVSep = "="
	// '__' gets translated into a '.' since periods may not be liked by shells
	dvsEnvKeySep = "__"
)

type DataValuesFlags struct {
	FromFiles []string

	EnvFromStrings []string
	EnvFromYAML    []string

	KVsFromStrings []string
	KVsFromYAML    []string
	KVsFromHTML    []string
	KVsFromFiles   []string

	Inspect bool

	EnvironFunc  func() []string
	ReadFileFunc func(string) ([]byte, error)
}

func (s *DataValuesFlags) Set(cmdFlags CmdFlags) {
	cmdFlags.StringArrayVar(&s.FromFiles, "data-values-file", nil, "Set multiple data values via a YAML, TOML or JSON file (format: /file/path.yml) (can be specified multiple times)")

	cmdFlags.StringArrayVar(&s.EnvFromStrings, "data-values-env", nil, "Extract data values (as strings) from prefixed env vars (format: PREFIX for PREFIX_all__key1=str) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.EnvFromYAML, "data-values-env-yaml", nil, "Extract data values (parsed as YAML) from prefixed env vars (format: PREFIX for PREFIX_all__key1=true) (can be specified multiple times)")

	cmdFlags.StringArrayVarP(&s.KVsFromStrings, "data-value", "v", nil, "Set specific data value to given value, as string (format: all.key1.subkey=123) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.KVsFromYAML, "data-value-yaml", nil, "Set specific data value to given value, parsed as YAML (format: all.key1.subkey=true) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.KVsFromHTML, "data-value-html", nil, "Set specific data value to given value, as raw HTML inserted without escaping (format: all.key1.subkey=<b>hi</b>) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.KVsFromFiles, "data-value-file", nil, "Set specific data value to given file contents, as string (format: all.key1.subkey=/file/path) (can be specified multiple times)")

	cmdFlags.BoolVar(&s.Inspect, "data-values-inspect", false, "Inspect data values")
}

type dataValuesFlagsSource struct {
	Values        []string
	TransformFunc func(string) (template.Value, error)
}

// Values merges data values in increasing precedence: fileValues (data
// files given as regular input), --data-values-file, env vars, then key/value flags.
func (s *DataValuesFlags) Values(fileValues []template.Dictionary) (template.Dictionary, error) {
	plainValFunc := func(rawVal string) (template.Value, error) { return template.String(rawVal), nil }
	htmlValFunc := func(rawVal string) (template.Value, error) { return template.RawHTML(rawVal), nil }

	yamlValFunc := func(rawVal string) (template.Value, error) {
		val, err := datavalues.ValueFromYAML([]byte(rawVal))
		if err != nil {
			return nil, fmt.Errorf("Deserializing YAML value: %s", err)
		}
		if val == nil {
			return nil, fmt.Errorf("Deserializing YAML value: Expected non-empty value")
		}
		return val, nil
	}

	result := append([]template.Dictionary{}, fileValues...)

	for _, path := range s.FromFiles {
		vals, err := s.file(path)
		if err != nil {
			return nil, err
		}
		result = append(result, vals)
	}

	for _, src := range []dataValuesFlagsSource{{s.EnvFromStrings, plainValFunc}, {s.EnvFromYAML, yamlValFunc}} {
		for _, envPrefix := range src.Values {
			vals, err := s.env(envPrefix, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting data values from env under prefix '%s': %s", envPrefix, err)
			}
			result = append(result, vals)
		}
	}

	// KVs and files take precedence over environment variables
	for _, src := range []dataValuesFlagsSource{{s.KVsFromStrings, plainValFunc}, {s.KVsFromYAML, yamlValFunc}, {s.KVsFromHTML, htmlValFunc}} {
		for _, kv := range src.Values {
			vals, err := s.kv(kv, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting data value from KV: %s", err)
			}
			result = append(result, vals)
		}
	}

	for _, kv := range s.KVsFromFiles {
		vals, err := s.kvFile(kv)
		if err != nil {
			return nil, fmt.Errorf("Extracting data value from file: %s", err)
		}
		result = append(result, vals)
	}

	return datavalues.Merge(result...), nil
}

func (s *DataValuesFlags) file(path string) (template.Dictionary, error) {
	data, err := s.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("Reading data values file '%s': %s", path, err)
	}
	return datavalues.FromFile(path, data)
}

func (s *DataValuesFlags) env(prefix string, valueFunc func(string) (template.Value, error)) (template.Dictionary, error) {
	result := template.Dictionary{}

	environFunc := os.Environ
	if s.EnvironFunc != nil {
		environFunc = s.EnvironFunc
	}

	for _, envVar := range environFunc() {
		pieces := strings.SplitN(envVar, dvsKVSep, 2)
		if len(pieces) != 2 {
			return nil, fmt.Errorf("Expected env variable to be key-value pair (format: key=value)")
		}

		if !strings.HasPrefix(pieces[0], prefix+"_") {
			continue
		}

		val, err := valueFunc(pieces[1])
		if err != nil {
			return nil, fmt.Errorf("Extracting data value from env variable '%s': %s", pieces[0], err)
		}

		keyPath := strings.ReplaceAll(strings.TrimPrefix(pieces[0], prefix+"_"), dvsEnvKeySep, datavalues.KeySeparator)

		err = datavalues.SetPath(result, keyPath, val)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *DataValuesFlags) kv(kv string, valueFunc func(string) (template.Value, error)) (template.Dictionary, error) {
	pieces := strings.SplitN(kv, dvsKVSep, 2)
	if len(pieces) != 2 {
		return nil, fmt.Errorf("Expected format key=value")
	}

	val, err := valueFunc(pieces[1])
	if err != nil {
		return nil, fmt.Errorf("Deserializing value for key '%s': %s", pieces[0], err)
	}

	result := template.Dictionary{}

	err = datavalues.SetPath(result, pieces[0], val)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *DataValuesFlags) kvFile(kv string) (template.Dictionary, error) {
	pieces := strings.SplitN(kv, dvsKVSep, 2)
	if len(pieces) != 2 {
		return nil, fmt.Errorf("Expected format key=/file/path")
	}

	contents, err := s.readFile(pieces[1])
	if err != nil {
		return nil, fmt.Errorf("Reading file '%s': %s", pieces[1], err)
	}

	result := template.Dictionary{}

	err = datavalues.SetPath(result, pieces[0], template.String(contents))
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *DataValuesFlags) readFile(path string) ([]byte, error) {
	if path == "-" {
		return files.ReadStdin()
	}
	if s.ReadFileFunc != nil {
		return s.ReadFileFunc(path)
	}
	return os.ReadFile(path)
}
