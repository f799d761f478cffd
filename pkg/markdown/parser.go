// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var (
	// parser extension for GitHub Flavored Markdown & Frontmatter support
	extensions = []goldmark.Extender{
		extension.GFM,
		meta.Meta,
	}
	// goldmark.Markdown parser with GFM extensions
	gmParser = goldmark.New(goldmark.WithExtensions(extensions...))
)

// Document is a parsed markdown page
type Document struct {
	// Root is the document AST
	Root ast.Node
	// Source is the markdown the AST segments point into
	Source []byte
	// Frontmatter is the decoded YAML frontmatter, never nil
	Frontmatter map[string]interface{}
}

// Parse markdown content and returns the parsed document or error
func Parse(source []byte) (*Document, error) {
	reader := text.NewReader(source)
	context := parser.NewContext()
	doc := gmParser.Parser().Parse(reader, parser.WithContext(context))
	fm, err := meta.TryGet(context)
	if err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if fm == nil {
		fm = map[string]interface{}{}
	}
	if doc.Kind() == ast.KindDocument {
		doc.(*ast.Document).SetMeta(fm)
	}
	return &Document{Root: doc, Source: source, Frontmatter: fm}, nil
}

// Headings returns the document headings in document order
func (d *Document) Headings() []*ast.Heading {
	var headings []*ast.Heading
	_ = ast.Walk(d.Root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, h)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// Title returns the frontmatter title, or the text of the first
// level 1 heading. The second result is false when neither exists.
func (d *Document) Title() (string, bool) {
	if t, ok := d.Frontmatter["title"].(string); ok && t != "" {
		return t, true
	}
	for _, h := range d.Headings() {
		if h.Level == 1 {
			return Text(h, d.Source), true
		}
	}
	return "", false
}

// Text returns the plain text of an inline container such as a heading.
// Raw inline HTML is dropped, code spans keep their content.
func Text(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
