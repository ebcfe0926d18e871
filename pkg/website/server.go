// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxRequestBytes bounds the size of a posted template request.
const maxRequestBytes = 1 << 20

type ServerOpts struct {
	ListenAddr      string
	RedirectToHTTPS bool
	// TemplateFunc receives a JSON encoded TemplateRequest and returns a JSON encoded TemplateResponse.
	TemplateFunc func([]byte) ([]byte, error)
	ErrorFunc    func(error) ([]byte, error)
}

// TemplateRequest is the body of POST /template.
type TemplateRequest struct {
	Template string          `json:"template"`
	Values   json.RawMessage `json:"values,omitempty"`
}

// TemplateResponse carries either rendered HTML or an error with its excerpt.
type TemplateResponse struct {
	HTML    string `json:"html,omitempty"`
	Error   string `json:"error,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
}

type Server struct {
	opts ServerOpts
}

func NewServer(opts ServerOpts) *Server {
	if opts.ErrorFunc == nil {
		opts.ErrorFunc = JSONError
	}
	return &Server{opts}
}

func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.redirectToHTTPS(s.noCacheHandler(s.mainHandler)))
	mux.HandleFunc("/examples", s.redirectToHTTPS(s.noCacheHandler(s.corsHandler(s.examplesListHandler))))
	mux.HandleFunc("/examples/", s.redirectToHTTPS(s.noCacheHandler(s.corsHandler(s.exampleHandler))))
	// no need for caching as it's a POST
	mux.HandleFunc("/template", s.redirectToHTTPS(s.corsHandler(s.templateHandler)))
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

func (s *Server) Run() error {
	server := &http.Server{
		Addr:              s.opts.ListenAddr,
		Handler:           s.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Printf("Listening on http://%s\n", server.Addr)
	return server.ListenAndServe()
}

func (s *Server) mainHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, err := RenderIndex()
	if err != nil {
		s.logError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.write(w, page)
}

func (s *Server) examplesListHandler(w http.ResponseWriter, r *http.Request) {
	slimExamples := []Example{}

	for _, example := range examples {
		slimExamples = append(slimExamples, Example{
			ID:          example.ID,
			DisplayName: example.DisplayName,
		})
	}

	s.writeJSON(w, slimExamples)
}

func (s *Server) exampleHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/examples/")

	example, found := findExample(id)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		s.logError(w, fmt.Errorf("Did not find example: %v", id))
		return
	}

	s.writeJSON(w, example)
}

func (s *Server) templateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		s.logError(w, fmt.Errorf("expected POST request"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes+1))
	if err != nil {
		s.logError(w, err)
		return
	}
	if len(data) > maxRequestBytes {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		s.logError(w, fmt.Errorf("expected request to be at most %d bytes", maxRequestBytes))
		return
	}

	resp, err := s.opts.TemplateFunc(data)
	if err != nil {
		s.logError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	s.write(w, resp)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.write(w, []byte("ok"))
}

func (s *Server) writeJSON(w http.ResponseWriter, val interface{}) {
	valBytes, err := json.Marshal(val)
	if err != nil {
		s.logError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	s.write(w, valBytes)
}

func (s *Server) logError(w http.ResponseWriter, err error) {
	log.Print(err.Error())

	resp, err := s.opts.ErrorFunc(err)
	if err != nil {
		fmt.Fprintf(w, "generation error: %s", err.Error())
		return
	}

	s.write(w, resp)
}

func (s *Server) write(w http.ResponseWriter, data []byte) {
	w.Write(data) // not fmt.Fprintf!
}

// JSONError is the default ErrorFunc.
func JSONError(err error) ([]byte, error) {
	return json.Marshal(TemplateResponse{Error: err.Error()})
}

func (s *Server) redirectToHTTPS(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	if !s.opts.RedirectToHTTPS {
		return wrappedFunc
	}
	return func(w http.ResponseWriter, r *http.Request) {
		checkHTTPS := true
		clientIP, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil {
			if clientIP == "127.0.0.1" {
				checkHTTPS = false
			}
		}

		if checkHTTPS && r.Header.Get(http.CanonicalHeaderKey("x-forwarded-proto")) != "https" {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				host := r.Host
				if len(host) == 0 {
					s.logError(w, fmt.Errorf("expected non-empty Host header"))
					return
				}

				http.Redirect(w, r, "https://"+host+r.URL.RequestURI(), http.StatusMovedPermanently)
				return
			}

			// Fail if it's not a GET or HEAD since req may have carried body insecurely
			s.logError(w, fmt.Errorf("expected HTTPs connection"))
			return
		}

		wrappedFunc(w, r)
	}
}

var (
	noCacheHeaders = map[string]string{
		"Expires":         time.Unix(0, 0).Format(time.RFC1123),
		"Cache-Control":   "no-cache, private, max-age=0",
		"Pragma":          "no-cache",
		"X-Accel-Expires": "0",
	}
)

func (s *Server) noCacheHandler(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range noCacheHeaders {
			w.Header().Set(k, v)
		}

		wrappedFunc(w, r)
	}
}

func (s *Server) corsHandler(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		wrappedFunc(w, r)
	}
}
