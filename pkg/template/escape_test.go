// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template_test

import (
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&amp;lt; &lt;p&gt; \"q\" 'a'", template.EscapeHTML("&lt; <p> \"q\" 'a'"))
	assert.Equal(t, "&amp;amp;", template.EscapeHTML("&amp;"))
	assert.Equal(t, "", template.EscapeHTML(""))
}

func TestEscapeAttribute(t *testing.T) {
	assert.Equal(t, "a &quot;b&quot; <c> &amp;", template.EscapeAttribute(`a "b" <c> &amp;`))
}

// markupAlphabet biases generated strings towards characters that matter to HTML.
const markupAlphabet = `ab &<>"'/=;#x`

func newMarkupFuzzer(seed int64) *fuzz.Fuzzer {
	return fuzz.NewWithSeed(seed).Funcs(func(s *string, c fuzz.Continue) {
		var sb strings.Builder
		n := c.Intn(20)
		for i := 0; i < n; i++ {
			sb.WriteByte(markupAlphabet[c.Intn(len(markupAlphabet))])
		}
		*s = sb.String()
	})
}

func TestEvalEscapedBodyTextRoundTripsThroughHTMLParser(t *testing.T) {
	exprs := mustParse(t, "<p>{ text }</p>")
	f := newMarkupFuzzer(11)

	for i := 0; i < 200; i++ {
		var text string
		f.Fuzz(&text)

		out, err := template.EvalTemplate(exprs, envOf("text", template.String(text)))
		require.NoError(t, err)

		p := findElement(t, string(out), "p")
		assert.Equal(t, text, textContent(p), "rendered %q", out)
		if p.FirstChild != nil {
			assert.Nil(t, p.FirstChild.NextSibling, "expected single text node in %q", out)
		}
	}
}

func TestEvalEscapedAttributeStaysInsideQuotes(t *testing.T) {
	exprs := mustParse(t, "<a href={ url }></a>")
	f := newMarkupFuzzer(12)

	for i := 0; i < 200; i++ {
		var url string
		f.Fuzz(&url)
		// Attribute values only get quotes escaped, so character references are not preserved.
		url = strings.ReplaceAll(url, "&", "")

		out, err := template.EvalTemplate(exprs, envOf("url", template.String(url)))
		require.NoError(t, err)

		a := findElement(t, string(out), "a")
		require.Len(t, a.Attr, 1, "rendered %q", out)
		assert.Equal(t, "href", a.Attr[0].Key)
		assert.Equal(t, url, a.Attr[0].Val, "rendered %q", out)
	}
}

func findElement(t *testing.T, doc, tagName string) *html.Node {
	t.Helper()

	root, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	var found *html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == tagName {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)

	require.NotNil(t, found, "expected <%s> in %q", tagName, doc)
	return found
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
