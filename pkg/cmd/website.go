// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	cmdtpl "github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/template"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/cmd/ui"
	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/website"
	"github.com/spf13/cobra"
)

const (
	websiteTemplateName = "template.html"
	websiteValuesName   = "values.json"
)

type WebsiteOptions struct {
	ListenAddr      string
	RedirectToHTTPS bool
}

func NewWebsiteOptions() *WebsiteOptions {
	return &WebsiteOptions{}
}

func NewWebsiteCmd(o *WebsiteOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "website",
		Short: "Starts website HTTP server",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.ListenAddr, "listen-addr", "localhost:8080", "Listen address")
	cmd.Flags().BoolVar(&o.RedirectToHTTPS, "redirect-to-https", true, "Redirect to HTTPs address")
	return cmd
}

func (o *WebsiteOptions) Server() *website.Server {
	opts := website.ServerOpts{
		ListenAddr:      o.ListenAddr,
		RedirectToHTTPS: o.RedirectToHTTPS,
		TemplateFunc:    RenderTemplateRequest,
		ErrorFunc:       website.JSONError,
	}
	return website.NewServer(opts)
}

func (o *WebsiteOptions) Run() error {
	return o.Server().Run()
}

// RenderTemplateRequest renders a JSON encoded website.TemplateRequest
// in process with default limits. Template errors are reported inside
// the response rather than returned.
func RenderTemplateRequest(data []byte) ([]byte, error) {
	var req website.TemplateRequest

	err := json.Unmarshal(data, &req)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling template request: %s", err)
	}

	bulkIn := cmdtpl.BulkFiles{
		Files: []cmdtpl.BulkFile{{Name: websiteTemplateName, Data: req.Template}},
	}
	if len(req.Values) > 0 && string(req.Values) != "null" {
		bulkIn.Files = append(bulkIn.Files, cmdtpl.BulkFile{Name: websiteValuesName, Data: string(req.Values)})
	}

	in, err := bulkIn.AsInput()
	if err != nil {
		return nil, err
	}

	out := cmdtpl.NewOptions().RunWithFiles(in, ui.NewCustomWriterTTY(false, io.Discard, io.Discard))
	bulkOut := cmdtpl.NewBulkFilesFromOutput(out)

	resp := website.TemplateResponse{Error: bulkOut.Errors, Excerpt: bulkOut.Excerpt}
	for _, file := range bulkOut.Files {
		resp.HTML += file.Data
	}

	return json.Marshal(resp)
}
