// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
)

// FromJSON decodes a single JSON object. Numbers keep their literal text.
func FromJSON(data []byte) (template.Dictionary, error) {
	val, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return dictionaryFromGo(val)
}

// ValueFromJSON decodes any JSON value except null.
func ValueFromJSON(data []byte) (template.Value, error) {
	val, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return FromGo(val)
}

func decodeJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var val interface{}

	err := dec.Decode(&val)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling JSON: %s", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("Unmarshaling JSON: expected a single value")
	}
	return val, nil
}
