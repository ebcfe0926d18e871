// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"strings"
)

var (
	// strings.Replacer does a single pass, so "&" introduced by later
	// replacements is never escaped again.
	htmlEscaper      = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attributeEscaper = strings.NewReplacer(`"`, "&quot;")
)

// EscapeHTML escapes text for use between tags.
func EscapeHTML(s string) string { return htmlEscaper.Replace(s) }

// EscapeAttribute escapes text for use inside a double quoted attribute value.
func EscapeAttribute(s string) string { return attributeEscaper.Replace(s) }
