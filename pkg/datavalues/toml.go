// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
)

// Zone names the toml decoder attaches to local date-times, dates and times.
var tomlLocalLayouts = map[string]string{
	"datetime-local": "2006-01-02T15:04:05.999999999",
	"date-local":     "2006-01-02",
	"time-local":     "15:04:05.999999999",
}

// FromTOML decodes a TOML document. Integers, floats and date-times become
// strings in their TOML textual form.
func FromTOML(data []byte) (template.Dictionary, error) {
	var decoded map[string]interface{}

	_, err := toml.Decode(string(data), &decoded)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling TOML: %s", err)
	}

	if decoded == nil {
		return template.Dictionary{}, nil
	}
	return dictionaryFromGo(tomlLocalTimesAsStrings(decoded).(map[string]interface{}))
}

// tomlLocalTimesAsStrings replaces local dates and times with their TOML
// text, since they carry no offset to format as RFC 3339.
func tomlLocalTimesAsStrings(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case time.Time:
		if layout, found := tomlLocalLayouts[typedVal.Location().String()]; found {
			return typedVal.Format(layout)
		}
		return typedVal

	case map[string]interface{}:
		for k, v := range typedVal {
			typedVal[k] = tomlLocalTimesAsStrings(v)
		}
		return typedVal

	case []map[string]interface{}:
		for _, item := range typedVal {
			tomlLocalTimesAsStrings(item)
		}
		return typedVal

	case []interface{}:
		for i, item := range typedVal {
			typedVal[i] = tomlLocalTimesAsStrings(item)
		}
		return typedVal

	default:
		return val
	}
}
