// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
)

// FromGo converts decoded Go data (as produced by encoding/json or the
// TOML decoder) into a template.Value.
func FromGo(val interface{}) (template.Value, error) {
	switch typedVal := val.(type) {
	case template.Value:
		return typedVal, nil

	case nil:
		return nil, fmt.Errorf("Expected value to be non-null (null has no template representation)")

	case string:
		return template.String(typedVal), nil

	case bool:
		return template.Bool(typedVal), nil

	case int:
		return template.String(strconv.Itoa(typedVal)), nil

	case int64:
		return template.String(strconv.FormatInt(typedVal, 10)), nil

	case uint64:
		return template.String(strconv.FormatUint(typedVal, 10)), nil

	case float64:
		return template.String(strconv.FormatFloat(typedVal, 'g', -1, 64)), nil

	case json.Number:
		return template.String(typedVal.String()), nil

	case time.Time:
		return template.String(typedVal.Format(time.RFC3339Nano)), nil

	case fmt.Stringer:
		return template.String(typedVal.String()), nil

	case []interface{}:
		result := template.Array{}
		for i, item := range typedVal {
			convertedItem, err := FromGo(item)
			if err != nil {
				return nil, fmt.Errorf("Converting array item %d: %s", i, err)
			}
			result = append(result, convertedItem)
		}
		return result, nil

	case []map[string]interface{}:
		result := template.Array{}
		for i, item := range typedVal {
			convertedItem, err := FromGo(item)
			if err != nil {
				return nil, fmt.Errorf("Converting array item %d: %s", i, err)
			}
			result = append(result, convertedItem)
		}
		return result, nil

	case map[string]interface{}:
		result := template.Dictionary{}
		for _, k := range sortedKeys(typedVal) {
			convertedItem, err := FromGo(typedVal[k])
			if err != nil {
				return nil, fmt.Errorf("Converting key '%s': %s", k, err)
			}
			result[k] = convertedItem
		}
		return result, nil

	default:
		return nil, fmt.Errorf("Unsupported value type %T", typedVal)
	}
}

// dictionaryFromGo is FromGo for values that must be dictionaries, such as a whole data file.
func dictionaryFromGo(val interface{}) (template.Dictionary, error) {
	converted, err := FromGo(val)
	if err != nil {
		return nil, err
	}
	dict, ok := converted.(template.Dictionary)
	if !ok {
		return nil, fmt.Errorf("Expected data values to be a map, but was %s", template.TypeName(converted))
	}
	return dict, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
