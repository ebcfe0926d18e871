// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	cmdtpl "github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/template"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/ui"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type siteServer struct {
	*httptest.Server

	lock sync.Mutex
	hits map[string]int
}

func newSiteServer(t *testing.T, pathsAndData ...string) *siteServer {
	pages := map[string]string{}
	for i := 0; i < len(pathsAndData); i += 2 {
		pages[pathsAndData[i]] = pathsAndData[i+1]
	}

	srv := &siteServer{hits: map[string]int{}}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.lock.Lock()
		srv.hits[r.URL.Path]++
		srv.lock.Unlock()

		page, found := pages[r.URL.Path]
		if !found {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (s *siteServer) hitsOf(path string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.hits[path]
}

func TestHTTPFilesAreTypedByExtension(t *testing.T) {
	srv := newSiteServer(t,
		"/site/page.html", `<p>{ title }</p>`,
		"/site/values.yml", `title: Remote`,
		"/site/layout", `<main></main>`,
	)

	fs, err := files.NewSortedFilesFromPaths([]string{
		srv.URL + "/site/page.html",
		srv.URL + "/site/values.yml",
		srv.URL + "/site/layout",
	}, false, files.SymlinkAllowOpts{})
	require.NoError(t, err)
	require.Len(t, fs, 3)

	assert.Equal(t, "page.html", fs[0].RelativePath())
	assert.Equal(t, files.TypeTemplate, fs[0].Type())
	assert.True(t, fs[0].IsTemplate())
	assert.Equal(t, fmt.Sprintf("HTTP URL '%s/site/page.html'", srv.URL), fs[0].Description())

	assert.Equal(t, "values.yml", fs[1].RelativePath())
	assert.Equal(t, files.TypeDataValues, fs[1].Type())
	assert.False(t, fs[1].IsTemplate())

	// named explicitly, so rendered even without a template extension
	assert.Equal(t, files.TypeUnknown, fs[2].Type())
	assert.True(t, fs[2].IsTemplate())
	assert.Equal(t, "layout.html", fs[2].OutputRelativePath())

	// nothing is fetched until contents are needed
	assert.Equal(t, 0, srv.hitsOf("/site/page.html"))
}

func TestHTTPFilesRenderThroughTemplateCmd(t *testing.T) {
	srv := newSiteServer(t,
		"/site/posts.html", `<ul>{ for post in posts }<li>{ post.title }</li>{ end }</ul>`,
		"/site/values.toml", "[[posts]]\ntitle = \"a & b\"\n",
	)

	fs, err := files.NewSortedFilesFromPaths([]string{
		srv.URL + "/site/posts.html",
		srv.URL + "/site/values.toml",
	}, false, files.SymlinkAllowOpts{})
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	out := cmdtpl.NewOptions().RunWithFiles(cmdtpl.TemplateInput{Files: fs}, ui.NewCustomWriterTTY(false, stdout, io.Discard))
	require.NoError(t, out.Err)
	require.Len(t, out.Files, 1)

	assert.Equal(t, "posts.html", out.Files[0].RelativePath())
	assert.Equal(t, `<ul><li>a &amp; b</li></ul>`, string(out.Files[0].Bytes()))
	assert.Equal(t, 1, srv.hitsOf("/site/posts.html"))
	assert.Equal(t, 1, srv.hitsOf("/site/values.toml"))
}

func TestHTTPFilesAreFetchedOnce(t *testing.T) {
	srv := newSiteServer(t, "/page.html", `<p></p>`)

	fs, err := files.NewSortedFilesFromPaths([]string{srv.URL + "/page.html"}, false, files.SymlinkAllowOpts{})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		data, err := fs[0].Bytes()
		require.NoError(t, err)
		assert.Equal(t, "<p></p>", string(data))
	}
	assert.Equal(t, 1, srv.hitsOf("/page.html"))
}

func TestHTTPSourceErrors(t *testing.T) {
	srv := newSiteServer(t)
	url := srv.URL + "/missing.html"

	src := files.NewCachedSource(files.NewHTTPSource(url))
	_, err := src.Bytes()
	require.EqualError(t, err, fmt.Sprintf("Requesting URL '%s': 404 Not Found", url))

	// the failure is cached along with the contents
	_, err = src.Bytes()
	require.Error(t, err)
	assert.Equal(t, 1, srv.hitsOf("/missing.html"))
}

func TestHTTPSourceAcceptsAny2xx(t *testing.T) {
	url := "http://example.com/page.html"

	fileSource := files.NewHTTPSource(url)
	fileSource.Client = &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		require.Equal(t, url, req.URL.String())
		return &http.Response{
			StatusCode: http.StatusIMUsed,
			Body:       io.NopCloser(bytes.NewBufferString(`<p></p>`)),
			Header:     make(http.Header),
		}
	})}

	body, err := fileSource.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("<p></p>"), body)
}

type roundTripFunc func(req *http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}
