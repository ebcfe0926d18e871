// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"sort"
)

// Env maps variable names to values. It is persistent: With returns a new
// Env sharing its parent, so a binding added for one loop iteration is never
// visible to the parent or to sibling iterations. The zero Env is empty.
type Env struct {
	values   map[string]Value
	bindings *binding
}

type binding struct {
	name  string
	value Value
	next  *binding
}

// NewEnv copies values so later changes by the caller are not observed.
func NewEnv(values map[string]Value) Env {
	copied := make(map[string]Value, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Env{values: copied}
}

// With returns a child Env where name is bound to val.
func (e Env) With(name string, val Value) Env {
	return Env{values: e.values, bindings: &binding{name: name, value: val, next: e.bindings}}
}

func (e Env) Lookup(name string) (Value, bool) {
	for b := e.bindings; b != nil; b = b.next {
		if b.name == name {
			return b.value, true
		}
	}
	val, found := e.values[name]
	return val, found
}

// Names lists every visible variable name, sorted.
func (e Env) Names() []string {
	seen := map[string]struct{}{}
	for b := e.bindings; b != nil; b = b.next {
		seen[b.name] = struct{}{}
	}
	for k := range e.values {
		seen[k] = struct{}{}
	}

	var names []string
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AsDictionary flattens visible bindings into a Dictionary.
func (e Env) AsDictionary() Dictionary {
	result := Dictionary{}
	for _, name := range e.Names() {
		result[name], _ = e.Lookup(name)
	}
	return result
}
