// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
)

type FileType string

const (
	FileTypeYAML FileType = "yaml"
	FileTypeTOML FileType = "toml"
	FileTypeJSON FileType = "json"
)

// FileTypeOf picks a decoder by file extension.
func FileTypeOf(path string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FileTypeYAML, nil
	case ".toml":
		return FileTypeTOML, nil
	case ".json":
		return FileTypeJSON, nil
	default:
		return "", fmt.Errorf("Expected data values file '%s' to have .yml, .yaml, .toml or .json extension", path)
	}
}

// FromFile decodes data read from path according to its extension.
func FromFile(path string, data []byte) (template.Dictionary, error) {
	fileType, err := FileTypeOf(path)
	if err != nil {
		return nil, err
	}

	var dict template.Dictionary

	switch fileType {
	case FileTypeYAML:
		dict, err = FromYAML(data)
	case FileTypeTOML:
		dict, err = FromTOML(data)
	case FileTypeJSON:
		dict, err = FromJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("Loading data values file '%s': %s", path, err)
	}
	return dict, nil
}
