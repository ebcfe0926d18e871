// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/orderedmap"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
	"gopkg.in/yaml.v3"
)

const (
	// HTMLTag marks a YAML scalar as pre-escaped HTML.
	HTMLTag = "!html"

	yamlBoolTag = "!!bool"
	yamlNullTag = "!!null"
	yamlStrTag  = "!!str"
)

// FromYAML decodes the first document of a YAML stream, which must be a
// map. An empty stream produces an empty dictionary.
func FromYAML(data []byte) (template.Dictionary, error) {
	val, err := ValueFromYAML(data)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return template.Dictionary{}, nil
	}
	dict, ok := val.(template.Dictionary)
	if !ok {
		return nil, fmt.Errorf("Expected data values to be a map, but was %s", template.TypeName(val))
	}
	return dict, nil
}

// ValueFromYAML decodes any YAML value. It returns nil for an empty stream.
func ValueFromYAML(data []byte) (template.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node

	err := dec.Decode(&doc)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("Unmarshaling YAML: %s", err)
	}

	return fromYAMLNode(&doc)
}

func fromYAMLNode(node *yaml.Node) (template.Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return template.Dictionary{}, nil
		}
		return fromYAMLNode(node.Content[0])

	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)

	case yaml.SequenceNode:
		result := template.Array{}
		for _, itemNode := range node.Content {
			item, err := fromYAMLNode(itemNode)
			if err != nil {
				return nil, err
			}
			result = append(result, item)
		}
		return result, nil

	case yaml.MappingNode:
		result := template.Dictionary{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, yamlNodeErr(keyNode, "Expected map key to be a scalar")
			}
			val, err := fromYAMLNode(valNode)
			if err != nil {
				return nil, err
			}
			result[keyNode.Value] = val
		}
		return result, nil

	case yaml.ScalarNode:
		switch node.ShortTag() {
		case HTMLTag:
			return template.RawHTML(node.Value), nil
		case yamlBoolTag:
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, yamlNodeErr(node, err.Error())
			}
			return template.Bool(b), nil
		case yamlNullTag:
			return nil, yamlNodeErr(node, "Expected value to be non-null (null has no template representation)")
		default:
			return template.String(node.Value), nil
		}

	default:
		return nil, yamlNodeErr(node, fmt.Sprintf("Unknown YAML node kind %d", node.Kind))
	}
}

func yamlNodeErr(node *yaml.Node, msg string) error {
	return fmt.Errorf("%s (at line %d, column %d)", msg, node.Line, node.Column)
}

// AsYAML encodes a dictionary as a YAML document with sorted keys,
// tagging raw HTML with !html so it decodes back to the same values.
func AsYAML(dict template.Dictionary) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err := enc.Encode(asYAMLNode(dict))
	if err != nil {
		return nil, err
	}
	err = enc.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func asYAMLNode(val template.Value) *yaml.Node {
	switch typedVal := val.(type) {
	case template.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStrTag, Value: string(typedVal)}
	case template.RawHTML:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: HTMLTag, Value: string(typedVal)}
	case template.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlBoolTag, Value: fmt.Sprintf("%t", bool(typedVal))}
	case template.Array:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range typedVal {
			node.Content = append(node.Content, asYAMLNode(item))
		}
		return node
	case template.Dictionary:
		node := &yaml.Node{Kind: yaml.MappingNode}
		orderedmap.FromUnorderedMap(map[string]template.Value(typedVal)).Iterate(func(k string, v template.Value) {
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, asYAMLNode(v))
		})
		return node
	default:
		panic(fmt.Sprintf("Unknown value type %T", typedVal))
	}
}
