// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/website"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func newTestServer(t *testing.T) *httptest.Server {
	server := website.NewServer(website.ServerOpts{TemplateFunc: cmd.RenderTemplateRequest})
	ts := httptest.NewServer(server.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postTemplate(t *testing.T, url string, req website.TemplateRequest) website.TemplateResponse {
	reqBytes, err := json.Marshal(req)
	require.NoError(t, err)

	resp, err := http.Post(url+"/template", "application/json", strings.NewReader(string(reqBytes)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var tplResp website.TemplateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tplResp))
	return tplResp
}

func TestIndexListsExamples(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache, private, max-age=0", resp.Header.Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>\n<html>"))

	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	var links []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					links = append(links, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	assert.Equal(t, []string{
		"/examples/variable",
		"/examples/attributes",
		"/examples/for-loop",
		"/examples/if",
		"/examples/member",
	}, links)
}

func TestUnknownPathIsNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := get(t, ts.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExamplesList(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/examples")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var examples []website.Example
	require.NoError(t, json.Unmarshal([]byte(body), &examples))
	require.Len(t, examples, 5)

	for _, example := range examples {
		assert.NotEmpty(t, example.ID)
		assert.NotEmpty(t, example.DisplayName)
		assert.Empty(t, example.Template, "list omits templates")
	}
}

func TestExamplesRenderWithoutErrors(t *testing.T) {
	ts := newTestServer(t)

	for _, id := range []string{"variable", "attributes", "for-loop", "if", "member"} {
		t.Run(id, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/examples/"+id)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var example website.Example
			require.NoError(t, json.Unmarshal([]byte(body), &example))
			assert.Equal(t, id, example.ID)

			tplResp := postTemplate(t, ts.URL, website.TemplateRequest{
				Template: example.Template,
				Values:   json.RawMessage(example.Values),
			})
			assert.Empty(t, tplResp.Error)
			assert.NotEmpty(t, tplResp.HTML)
		})
	}
}

func TestMemberExampleRendersPublishedPostsWithAuthors(t *testing.T) {
	ts := newTestServer(t)

	_, body := get(t, ts.URL+"/examples/member")
	var example website.Example
	require.NoError(t, json.Unmarshal([]byte(body), &example))

	tplResp := postTemplate(t, ts.URL, website.TemplateRequest{
		Template: example.Template,
		Values:   json.RawMessage(example.Values),
	})
	require.Empty(t, tplResp.Error)
	assert.Contains(t, tplResp.HTML, `<a href="post1.html">Hello</a><span>Chris</span>`)
	assert.NotContains(t, tplResp.HTML, "Florian")
}

func TestMissingExample(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/examples/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Did not find example: nope")
}

func TestTemplateRenders(t *testing.T) {
	ts := newTestServer(t)

	tplResp := postTemplate(t, ts.URL, website.TemplateRequest{
		Template: `<ul>{ for post in posts }{ if post.published }<li><a href={post.url}>{ post.title }</a></li>{ end }{ end }</ul>`,
		Values: json.RawMessage(`{"posts": [
			{"published": true, "title": "<Hello>", "url": "a.html?x=\"1\""},
			{"published": false, "title": "Hidden", "url": "b.html"}
		]}`),
	})
	assert.Empty(t, tplResp.Error)
	assert.Equal(t, `<ul><li><a href="a.html?x=&quot;1&quot;">&lt;Hello&gt;</a></li></ul>`, tplResp.HTML)
}

func TestTemplateWithoutValues(t *testing.T) {
	ts := newTestServer(t)

	tplResp := postTemplate(t, ts.URL, website.TemplateRequest{Template: `<br></br>`})
	assert.Empty(t, tplResp.Error)
	assert.Equal(t, `<br></br>`, tplResp.HTML)
}

func TestTemplateEvalErrorHasExcerpt(t *testing.T) {
	ts := newTestServer(t)

	tplResp := postTemplate(t, ts.URL, website.TemplateRequest{Template: `<p>{ title }</p>`})
	assert.Empty(t, tplResp.HTML)
	assert.Equal(t, `Expected variable "title" to be defined`, tplResp.Error)
	assert.Equal(t, "template.html:1:6 | <p>{ title }</p>\n                  |      ^^^^^", tplResp.Excerpt)
}

func TestTemplateParseErrorHasExcerpt(t *testing.T) {
	ts := newTestServer(t)

	tplResp := postTemplate(t, ts.URL, website.TemplateRequest{Template: `<p>{ title }`})
	assert.Empty(t, tplResp.HTML)
	assert.Equal(t, "Expected closing tag '</p>' before end of input", tplResp.Error)
	assert.Equal(t, "template.html:1:13 | <p>{ title }\n                   |             ^", tplResp.Excerpt)
}

func TestTemplateRejectsNonObjectValues(t *testing.T) {
	ts := newTestServer(t)

	tplResp := postTemplate(t, ts.URL, website.TemplateRequest{
		Template: `<p></p>`,
		Values:   json.RawMessage(`[1, 2]`),
	})
	assert.Contains(t, tplResp.Error, "Expected data values to be a map")
}

func TestTemplateRequiresPost(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/template")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Contains(t, body, "expected POST request")
}

func TestTemplateMalformedRequest(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/template", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()

	var tplResp website.TemplateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tplResp))
	assert.Contains(t, tplResp.Error, "Unmarshaling template request")
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestRedirectToHTTPS(t *testing.T) {
	server := website.NewServer(website.ServerOpts{
		RedirectToHTTPS: true,
		TemplateFunc:    func([]byte) ([]byte, error) { return nil, fmt.Errorf("unused") },
	})

	req := httptest.NewRequest(http.MethodGet, "http://tmpl.example.com/examples?x=1", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	server.Mux().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://tmpl.example.com/examples?x=1", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodPost, "http://tmpl.example.com/template", strings.NewReader("{}"))
	req.RemoteAddr = "10.0.0.1:1234"
	rec = httptest.NewRecorder()
	server.Mux().ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "expected HTTPs connection")
}

func TestRenderIndexIsValidTemplate(t *testing.T) {
	page, err := website.RenderIndex()
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>tmpl playground</title>")
	assert.Contains(t, string(page), `<button id="run">Render</button>`)
}
