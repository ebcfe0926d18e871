// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package htmltemplate

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// String renders the structural tree on one line, e.g.
// tag(p, attrs: {id: variable(x)}, body: [member(variable(post), title)])
func (e SimpleExpr) String() string {
	switch typedExpr := e.Expression.(type) {
	case Variable[SimpleExpr]:
		return fmt.Sprintf("variable(%s)", typedExpr.Name)

	case Tag[SimpleExpr]:
		var attrs []string
		typedExpr.Attributes.Iterate(func(k string, v SimpleExpr) {
			attrs = append(attrs, k+": "+v.String())
		})
		return fmt.Sprintf("tag(%s, attrs: {%s}, body: %s)",
			typedExpr.Name, strings.Join(attrs, ", "), simpleList(typedExpr.Body))

	case For[SimpleExpr]:
		return fmt.Sprintf("for(%s in %s, body: %s)",
			typedExpr.VariableName, typedExpr.Collection, simpleList(typedExpr.Body))

	case If[SimpleExpr]:
		return fmt.Sprintf("if(%s, body: %s)", typedExpr.Condition, simpleList(typedExpr.Body))

	case Member[SimpleExpr]:
		return fmt.Sprintf("member(%s, %s)", typedExpr.LHS, typedExpr.RHS)

	default:
		panic(fmt.Sprintf("unknown expression type %T", typedExpr))
	}
}

func simpleList(exprs []SimpleExpr) string {
	var items []string
	for _, expr := range exprs {
		items = append(items, expr.String())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

type PrinterOpts struct {
	// Positions appends each node's source range.
	Positions bool
}

// Printer writes annotated trees one node per line, indented by depth.
type Printer struct {
	writer io.Writer
	opts   PrinterOpts
}

func NewPrinter(writer io.Writer) Printer {
	return Printer{writer, PrinterOpts{}}
}

func NewPrinterWithOpts(writer io.Writer, opts PrinterOpts) Printer {
	return Printer{writer, opts}
}

func (p Printer) Print(exprs []AnnotatedExpr) {
	for _, expr := range exprs {
		p.print(expr, "", "")
	}
}

func (p Printer) PrintStr(exprs []AnnotatedExpr) string {
	buf := new(bytes.Buffer)
	Printer{buf, p.opts}.Print(exprs)
	return buf.String()
}

func (p Printer) print(expr AnnotatedExpr, indent, label string) {
	const indentLvl = "  "

	line := func(desc string) {
		if p.opts.Positions {
			desc += fmt.Sprintf(" [%d..%d]", expr.Range.Start.Offset, expr.Range.End.Offset)
		}
		fmt.Fprintf(p.writer, "%s%s%s\n", indent, label, desc)
	}

	switch typedExpr := expr.Expression.(type) {
	case Variable[AnnotatedExpr]:
		line("variable " + typedExpr.Name)

	case Member[AnnotatedExpr]:
		line("member ." + typedExpr.RHS)
		p.print(typedExpr.LHS, indent+indentLvl, "of: ")

	case Tag[AnnotatedExpr]:
		line("tag " + typedExpr.Name)
		typedExpr.Attributes.Iterate(func(k string, v AnnotatedExpr) {
			p.print(v, indent+indentLvl, "@"+k+": ")
		})
		for _, item := range typedExpr.Body {
			p.print(item, indent+indentLvl, "")
		}

	case For[AnnotatedExpr]:
		line("for " + typedExpr.VariableName)
		p.print(typedExpr.Collection, indent+indentLvl, "in: ")
		for _, item := range typedExpr.Body {
			p.print(item, indent+indentLvl, "")
		}

	case If[AnnotatedExpr]:
		line("if")
		p.print(typedExpr.Condition, indent+indentLvl, "cond: ")
		for _, item := range typedExpr.Body {
			p.print(item, indent+indentLvl, "")
		}

	default:
		panic(fmt.Sprintf("unknown expression type %T", typedExpr))
	}
}
