// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package headers

import "strings"

// entities lists the escapes decoded in header titles, in the order
// in which they are replaced
var entities = [...]struct{ escaped, decoded string }{
	{"&#39;", "'"},
	{"&amp;", "&"},
	{"&quot;", `"`},
}

// DecodeEntities replaces the first occurrence of &#39;, then of &amp;
// and then of &quot; in s. Repeated occurrences of an entity stay encoded.
func DecodeEntities(s string) string {
	for _, e := range entities {
		s = strings.Replace(s, e.escaped, e.decoded, 1)
	}
	return s
}

// Normalize decodes the title of h and of every header nested under it.
// The tree is modified in place and h is returned. Levels, slugs and the
// shape of the tree are left untouched.
func Normalize(h *PageHeader) *PageHeader {
	if h == nil {
		return nil
	}
	h.Title = DecodeEntities(h.Title)
	for _, child := range h.Children {
		Normalize(child)
	}
	return h
}

// NormalizeAll normalizes every header tree of a page. A nil list is
// treated as an empty one, so the result is never nil.
func NormalizeAll(hs []*PageHeader) []*PageHeader {
	if hs == nil {
		return []*PageHeader{}
	}
	for _, h := range hs {
		Normalize(h)
	}
	return hs
}
