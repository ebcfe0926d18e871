// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

import (
	"fmt"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/htmltemplate"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
)

const indexTemplate = `<html>
<head><title>{ title }</title><style>{ style }</style></head>
<body>
<header>{ title }</header>
<p>{ intro }</p>
<ul>
{ for example in examples }
<li><a href={ example.url } data={ example.id }>{ example.name }</a></li>
{ end }
</ul>
<textarea id={ ids.template }></textarea>
<textarea id={ ids.values }></textarea>
<button id={ ids.run }>{ labels.run }</button>
<pre id={ ids.error }></pre>
<div id={ ids.output }></div>
<script>{ script }</script>
</body>
</html>`

const indexStyle = `textarea { width: 48%; height: 12em; font-family: monospace; } pre { color: #b00; }`

const indexScript = `
const $ = (id) => document.getElementById(id);
function load(id) {
  fetch("/examples/" + id).then((r) => r.json()).then((ex) => {
    $("template").value = ex.template; $("values").value = ex.values; run();
  });
}
function run() {
  let values = {};
  try { values = JSON.parse($("values").value || "{}"); } catch (e) { $("error").textContent = e; return; }
  fetch("/template", {method: "POST", body: JSON.stringify({template: $("template").value, values: values})})
    .then((r) => r.json()).then((res) => {
      $("error").textContent = res.error ? res.error + "\n" + (res.excerpt || "") : "";
      $("output").innerHTML = res.html || "";
    });
}
document.querySelectorAll("a[data]").forEach((a) => a.addEventListener("click", (e) => {
  e.preventDefault(); load(a.getAttribute("data"));
}));
$("run").addEventListener("click", run);
`

var indexExprs = mustParseTemplate(indexTemplate)

func mustParseTemplate(src string) []htmltemplate.AnnotatedExpr {
	exprs, err := htmltemplate.ParseTemplate(src)
	if err != nil {
		panic(fmt.Sprintf("parsing built-in template: %s", err))
	}
	return exprs
}

func indexValues() template.Env {
	var exampleVals template.Array
	for _, example := range examples {
		exampleVals = append(exampleVals, template.Dictionary{
			"id":   template.String(example.ID),
			"name": template.String(example.DisplayName),
			"url":  template.String("/examples/" + example.ID),
		})
	}

	return template.NewEnv(map[string]template.Value{
		"title":    template.String("tmpl playground"),
		"intro":    template.String("Pick an example or write a template, then provide data values as JSON."),
		"examples": exampleVals,
		"ids": template.Dictionary{
			"template": template.String("template"),
			"values":   template.String("values"),
			"run":      template.String("run"),
			"error":    template.String("error"),
			"output":   template.String("output"),
		},
		"labels": template.Dictionary{"run": template.String("Render")},
		"style":  template.RawHTML(indexStyle),
		"script": template.RawHTML(indexScript),
	})
}

// RenderIndex renders the playground page.
func RenderIndex() ([]byte, error) {
	out, err := template.EvalTemplate(indexExprs, indexValues())
	if err != nil {
		return nil, err
	}
	return []byte("<!DOCTYPE html>\n" + string(out)), nil
}
