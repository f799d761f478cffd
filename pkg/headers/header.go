// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package headers

// PageHeader is one heading of a documentation page together
// with the headings nested under it
type PageHeader struct {
	// Title is the heading text as produced by the page parser. It may
	// carry HTML entity escapes until the header is normalized.
	Title string `json:"title" yaml:"title"`
	// Slug is the anchor id of the heading
	Slug string `json:"slug" yaml:"slug"`
	// Level is the heading depth (2 for h2 and so on)
	Level int `json:"level" yaml:"level"`
	// Children are the nested headings in document order
	Children []*PageHeader `json:"children" yaml:"children"`
}

// Count returns the number of headers in the tree rooted at h
func (h *PageHeader) Count() int {
	if h == nil {
		return 0
	}
	n := 1
	for _, child := range h.Children {
		n += child.Count()
	}
	return n
}

// CountAll returns the number of headers in all trees
func CountAll(hs []*PageHeader) int {
	n := 0
	for _, h := range hs {
		n += h.Count()
	}
	return n
}

// Walk calls fn for every header of the tree in depth-first order
func Walk(hs []*PageHeader, fn func(h *PageHeader)) {
	for _, h := range hs {
		if h == nil {
			continue
		}
		fn(h)
		Walk(h.Children, fn)
	}
}
