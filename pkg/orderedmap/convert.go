// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"sort"
)

// FromUnorderedMap builds a Map from a Go map with keys in sorted order so
// that iteration is reproducible. The input is not modified.
func FromUnorderedMap[V any](m map[string]V) *Map[V] {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := NewMap[V]()
	for _, key := range keys {
		result.Set(key, m[key])
	}
	return result
}

// AsUnorderedMap flattens m into a Go map.
func (m *Map[V]) AsUnorderedMap() map[string]V {
	result := make(map[string]V, m.Len())
	m.Iterate(func(k string, v V) {
		result[k] = v
	})
	return result
}
