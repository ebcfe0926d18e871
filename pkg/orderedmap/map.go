// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"encoding/json"
)

// Map is a string-keyed map that remembers insertion order.
type Map[V any] struct {
	items []MapItem[V]
}

type MapItem[V any] struct {
	Key   string
	Value V
}

func NewMap[V any]() *Map[V] {
	return &Map[V]{}
}

func NewMapWithItems[V any](items []MapItem[V]) *Map[V] {
	m := NewMap[V]()
	for _, item := range items {
		m.Set(item.Key, item.Value)
	}
	return m
}

// Set replaces the value of an existing key in place, keeping its
// original position, or appends a new key.
func (m *Map[V]) Set(key string, value V) {
	for i, item := range m.items {
		if item.Key == key {
			m.items[i].Value = value
			return
		}
	}
	m.items = append(m.items, MapItem[V]{key, value})
}

func (m *Map[V]) Get(key string) (V, bool) {
	for _, item := range m.items {
		if item.Key == key {
			return item.Value, true
		}
	}
	var zero V
	return zero, false
}

func (m *Map[V]) Delete(key string) bool {
	for i, item := range m.items {
		if item.Key == key {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Map[V]) Keys() (keys []string) {
	m.Iterate(func(k string, _ V) {
		keys = append(keys, k)
	})
	return
}

func (m *Map[V]) Iterate(iterFunc func(k string, v V)) {
	if m == nil {
		return
	}
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map[V]) IterateErr(iterFunc func(k string, v V) error) error {
	if m == nil {
		return nil
	}
	for _, item := range m.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// Below methods disallow marshaling of Map directly
var _ []json.Marshaler = []json.Marshaler{&Map[int]{}}

func (*Map[V]) MarshalJSON() ([]byte, error) { panic("Unexpected marshaling of *orderedmap.Map") }
