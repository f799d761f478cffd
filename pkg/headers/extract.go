// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package headers

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/sierrasoftworks/docsite/pkg/markdown"
)

// DefaultLevels are the heading levels collected when none are configured
var DefaultLevels = []int{2, 3}

// titleEscaper escapes heading text the way the host page parser
// does before it hands headers over
var titleEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Extract parses markdown source and returns its header trees
func Extract(source []byte, levels []int) ([]*PageHeader, error) {
	doc, err := markdown.Parse(source)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc, levels), nil
}

// FromDocument builds the header trees of a parsed page from the headings
// whose level is in levels. A heading is nested under the closest preceding
// heading of a lower level; headings without one become roots.
func FromDocument(doc *markdown.Document, levels []int) []*PageHeader {
	if len(levels) == 0 {
		levels = DefaultLevels
	}
	wanted := map[int]bool{}
	for _, l := range levels {
		wanted[l] = true
	}
	var (
		roots = []*PageHeader{}
		stack []*PageHeader
		slugs = newSlugger()
	)
	for _, h := range doc.Headings() {
		if !wanted[h.Level] {
			continue
		}
		plain := markdown.Text(h, doc.Source)
		header := &PageHeader{
			Title:    titleEscaper.Replace(plain),
			Slug:     slugs.next(plain),
			Level:    h.Level,
			Children: []*PageHeader{},
		}
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, header)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, header)
		}
		stack = append(stack, header)
	}
	return roots
}

// slugger hands out unique anchors within one page
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: map[string]int{}}
}

func (s *slugger) next(text string) string {
	base := slug.Make(text)
	if base == "" {
		base = "section"
	}
	n, ok := s.seen[base]
	s.seen[base] = n + 1
	if !ok {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
