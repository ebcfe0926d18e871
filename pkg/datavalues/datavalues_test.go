// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues_test

import (
	"testing"
	"time"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/datavalues"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAML(t *testing.T) {
	data := `
title: Hello & welcome
published: true
draft: "true"
count: 42
intro: !html <em>hi</em>
posts:
- title: first
  tags: [a, b]
- &second
  title: second
copy: *second
`
	dict, err := datavalues.FromYAML([]byte(data))
	require.NoError(t, err)

	second := template.Dictionary{"title": template.String("second")}
	expected := template.Dictionary{
		"title":     template.String("Hello & welcome"),
		"published": template.Bool(true),
		"draft":     template.String("true"),
		"count":     template.String("42"),
		"intro":     template.RawHTML("<em>hi</em>"),
		"posts": template.Array{
			template.Dictionary{
				"title": template.String("first"),
				"tags":  template.Array{template.String("a"), template.String("b")},
			},
			second,
		},
		"copy": second,
	}
	assert.Equal(t, expected, dict)
}

func TestFromYAMLEmpty(t *testing.T) {
	dict, err := datavalues.FromYAML([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, template.Dictionary{}, dict)
}

func TestFromYAMLErrors(t *testing.T) {
	_, err := datavalues.FromYAML([]byte("title: ~\n"))
	require.Error(t, err)
	assert.Equal(t, "Expected value to be non-null (null has no template representation) (at line 1, column 8)", err.Error())

	_, err = datavalues.FromYAML([]byte("- a\n- b\n"))
	require.Error(t, err)
	assert.Equal(t, "Expected data values to be a map, but was array", err.Error())

	_, err = datavalues.FromYAML([]byte("a: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unmarshaling YAML:")
}

func TestAsYAMLDecodesToSameValues(t *testing.T) {
	dict := template.Dictionary{
		"b":    template.String("true"),
		"a":    template.RawHTML("<b>x</b>"),
		"flag": template.Bool(false),
		"list": template.Array{template.String("1"), template.Dictionary{"k": template.String("v")}},
	}

	out, err := datavalues.AsYAML(dict)
	require.NoError(t, err)
	assert.Equal(t, `a: !html <b>x</b>
b: "true"
flag: false
list:
  - "1"
  - k: v
`, string(out))

	decoded, err := datavalues.FromYAML(out)
	require.NoError(t, err)
	assert.Equal(t, dict, decoded)
}

func TestFromTOML(t *testing.T) {
	data := `
title = "Hello"
published = true
count = 42
ratio = 1.5
date = 2021-05-06

[author]
name = "Chris"

[[posts]]
title = "first"

[[posts]]
title = "second"
tags = ["a", "b"]
`
	dict, err := datavalues.FromTOML([]byte(data))
	require.NoError(t, err)

	expected := template.Dictionary{
		"title":     template.String("Hello"),
		"published": template.Bool(true),
		"count":     template.String("42"),
		"ratio":     template.String("1.5"),
		"date":      template.String("2021-05-06"),
		"author":    template.Dictionary{"name": template.String("Chris")},
		"posts": template.Array{
			template.Dictionary{"title": template.String("first")},
			template.Dictionary{
				"title": template.String("second"),
				"tags":  template.Array{template.String("a"), template.String("b")},
			},
		},
	}
	assert.Equal(t, expected, dict)
}

func TestFromTOMLDateTimesKeepTheirTextualForm(t *testing.T) {
	data := `
date = 2021-05-06
clock = 07:08:09
local = 2021-05-06T07:08:09.5
offset = 2021-05-06T07:08:09Z
dates = [2021-05-06, 2021-05-07]

[[events]]
at = 1979-05-27
`
	dict, err := datavalues.FromTOML([]byte(data))
	require.NoError(t, err)

	expected := template.Dictionary{
		"date":   template.String("2021-05-06"),
		"clock":  template.String("07:08:09"),
		"local":  template.String("2021-05-06T07:08:09.5"),
		"offset": template.String("2021-05-06T07:08:09Z"),
		"dates":  template.Array{template.String("2021-05-06"), template.String("2021-05-07")},
		"events": template.Array{template.Dictionary{"at": template.String("1979-05-27")}},
	}
	assert.Equal(t, expected, dict)
}

func TestFromTOMLInvalid(t *testing.T) {
	_, err := datavalues.FromTOML([]byte("title = \n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unmarshaling TOML:")
}

func TestFromJSON(t *testing.T) {
	dict, err := datavalues.FromJSON([]byte(`{"a": "x", "n": 1.50, "list": [true, {"b": "y"}]}`))
	require.NoError(t, err)

	expected := template.Dictionary{
		"a":    template.String("x"),
		"n":    template.String("1.50"),
		"list": template.Array{template.Bool(true), template.Dictionary{"b": template.String("y")}},
	}
	assert.Equal(t, expected, dict)
}

func TestFromJSONErrors(t *testing.T) {
	_, err := datavalues.FromJSON([]byte(`{"a": null}`))
	require.Error(t, err)
	assert.Equal(t, "Converting key 'a': Expected value to be non-null (null has no template representation)", err.Error())

	_, err = datavalues.FromJSON([]byte(`{} {}`))
	require.Error(t, err)
	assert.Equal(t, "Unmarshaling JSON: expected a single value", err.Error())

	_, err = datavalues.FromJSON([]byte(`"str"`))
	require.Error(t, err)
	assert.Equal(t, "Expected data values to be a map, but was string", err.Error())
}

func TestFromGo(t *testing.T) {
	ts := time.Date(2021, 5, 6, 7, 8, 9, 0, time.UTC)

	val, err := datavalues.FromGo(map[string]interface{}{
		"int":  7,
		"time": ts,
		"raw":  template.RawHTML("<br>"),
	})
	require.NoError(t, err)
	assert.Equal(t, template.Dictionary{
		"int":  template.String("7"),
		"time": template.String("2021-05-06T07:08:09Z"),
		"raw":  template.RawHTML("<br>"),
	}, val)

	_, err = datavalues.FromGo(struct{}{})
	require.Error(t, err)
	assert.Equal(t, "Unsupported value type struct {}", err.Error())
}

func TestMerge(t *testing.T) {
	base := template.Dictionary{
		"site": template.Dictionary{
			"title":  template.String("Base"),
			"author": template.String("Chris"),
		},
		"tags": template.Array{template.String("a")},
	}
	overlay := template.Dictionary{
		"site": template.Dictionary{"title": template.String("Overlay")},
		"tags": template.Array{template.String("b")},
	}

	merged := datavalues.Merge(base, overlay)
	assert.Equal(t, template.Dictionary{
		"site": template.Dictionary{
			"title":  template.String("Overlay"),
			"author": template.String("Chris"),
		},
		"tags": template.Array{template.String("b")},
	}, merged)

	// inputs are untouched
	assert.Equal(t, template.String("Base"), base["site"].(template.Dictionary)["title"])

	merged["site"].(template.Dictionary)["title"] = template.String("changed")
	assert.Equal(t, template.String("Overlay"), overlay["site"].(template.Dictionary)["title"])
}

func TestMergeReplacesNonDictionaries(t *testing.T) {
	merged := datavalues.Merge(
		template.Dictionary{"a": template.String("x")},
		template.Dictionary{"a": template.Dictionary{"b": template.String("y")}},
		template.Dictionary{"a": template.Dictionary{"c": template.Bool(true)}},
	)
	assert.Equal(t, template.Dictionary{
		"a": template.Dictionary{"b": template.String("y"), "c": template.Bool(true)},
	}, merged)
}

func TestSetPath(t *testing.T) {
	dict := template.Dictionary{}
	require.NoError(t, datavalues.SetPath(dict, "site.author.name", template.String("Chris")))
	require.NoError(t, datavalues.SetPath(dict, "site.title", template.String("Blog")))
	require.NoError(t, datavalues.SetPath(dict, "flag", template.Bool(true)))

	assert.Equal(t, template.Dictionary{
		"site": template.Dictionary{
			"author": template.Dictionary{"name": template.String("Chris")},
			"title":  template.String("Blog"),
		},
		"flag": template.Bool(true),
	}, dict)

	err := datavalues.SetPath(dict, "site.title.sub", template.String("x"))
	require.Error(t, err)
	assert.Equal(t, "Expected key 'site.title.sub' to not conflict with other data values at piece 'title'", err.Error())

	err = datavalues.SetPath(dict, "site..x", template.String("x"))
	require.Error(t, err)
	assert.Equal(t, "Expected key 'site..x' to not contain empty pieces", err.Error())
}

func TestFromFile(t *testing.T) {
	dict, err := datavalues.FromFile("values.json", []byte(`{"a": "b"}`))
	require.NoError(t, err)
	assert.Equal(t, template.Dictionary{"a": template.String("b")}, dict)

	dict, err = datavalues.FromFile("VALUES.YML", []byte("a: b"))
	require.NoError(t, err)
	assert.Equal(t, template.Dictionary{"a": template.String("b")}, dict)

	_, err = datavalues.FromFile("values.txt", nil)
	require.Error(t, err)
	assert.Equal(t, "Expected data values file 'values.txt' to have .yml, .yaml, .toml or .json extension", err.Error())

	_, err = datavalues.FromFile("values.toml", []byte("a = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Loading data values file 'values.toml': Unmarshaling TOML:")
}
