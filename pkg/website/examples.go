// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

type Example struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Template    string `json:"template,omitempty"`
	Values      string `json:"values,omitempty"`
}

var examples = []Example{
	{
		ID:          "variable",
		DisplayName: "Variables",
		Template:    `<header>{ title }</header>`,
		Values:      `{"title": "Hello & welcome"}`,
	},
	{
		ID:          "attributes",
		DisplayName: "Attributes",
		Template:    `<a href={ url } title={ title }>{ title }</a>`,
		Values:      `{"url": "https://example.com/?a=1&b=2", "title": "Say \"hi\""}`,
	},
	{
		ID:          "for-loop",
		DisplayName: "For loops",
		Template:    `<ul>{ for item in items }<li>{ item }</li>{ end }</ul>`,
		Values:      `{"items": ["one", "two", "three"]}`,
	},
	{
		ID:          "if",
		DisplayName: "Conditionals",
		Template:    `{ if published }<p>{ title }</p>{ end }`,
		Values:      `{"published": true, "title": "Visible"}`,
	},
	{
		ID:          "member",
		DisplayName: "Member expressions",
		Template: `<ul>
{ for post in posts }
{ if post.published }
<li><a href={post.url}>{ post.title }</a><span>{ post.author.name }</span></li>
{ end }
{ end }
</ul>`,
		Values: `{"posts": [
  {"published": true, "title": "Hello", "url": "post1.html", "author": {"name": "Chris"}},
  {"published": false, "title": "World", "url": "post2.html", "author": {"name": "Florian"}}
]}`,
	},
}

func findExample(id string) (Example, bool) {
	for _, example := range examples {
		if example.ID == id {
			return example, true
		}
	}
	return Example{}, false
}
