// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package nav

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// NavEntry is one element of a navigation menu. It is either a leaf
// pointing at a page or external URL, or a group of entries.
type NavEntry struct {
	// Text is the label of the entry
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	// Link is the page path or external URL of a leaf
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
	// Target is the anchor target of a leaf, e.g. _blank
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	// Rel is the anchor rel attribute of a leaf
	Rel string `json:"rel,omitempty" yaml:"rel,omitempty"`
	// IsGroup marks the entry as a group
	IsGroup bool `json:"isGroup,omitempty" yaml:"isGroup,omitempty"`
	// Children are the entries of a group in display order
	Children []NavEntry `json:"children,omitempty" yaml:"children,omitempty"`
}

// Leaf creates a leaf entry
func Leaf(text, link string) NavEntry {
	return NavEntry{Text: text, Link: link}
}

// Group creates a group entry
func Group(text string, children ...NavEntry) NavEntry {
	return NavEntry{Text: text, IsGroup: true, Children: children}
}

// IsLeaf reports whether the entry is a leaf
func (e NavEntry) IsLeaf() bool {
	return !e.IsGroup
}

// IsExternal reports whether the entry links outside of the site
func (e NavEntry) IsExternal() bool {
	return IsExternal(e.Link)
}

// IsExternal reports whether link points outside of the site
func IsExternal(link string) bool {
	l := strings.ToLower(link)
	return strings.HasPrefix(l, "http://") ||
		strings.HasPrefix(l, "https://") ||
		strings.HasPrefix(l, "mailto:") ||
		strings.HasPrefix(l, "//")
}

// UnmarshalYAML accepts both the mapping form and the bare string
// shorthand, which declares a leaf linking to the string
func (e *NavEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var link string
		if err := value.Decode(&link); err != nil {
			return err
		}
		*e = NavEntry{Link: link}
		return nil
	}
	type plain NavEntry
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = NavEntry(p)
	return nil
}

func (e NavEntry) String() string {
	if e.IsGroup {
		return fmt.Sprintf("group %q", e.Text)
	}
	if e.Link == "" {
		return fmt.Sprintf("entry %q", e.Text)
	}
	if e.Text == "" {
		return fmt.Sprintf("link %s", e.Link)
	}
	return fmt.Sprintf("link %q (%s)", e.Text, e.Link)
}

// validate checks the leaf/group invariant of e and its children
func (e NavEntry) validate(where string) error {
	var errs *multierror.Error
	if e.IsGroup {
		if e.Link != "" {
			errs = multierror.Append(errs, fmt.Errorf("%s: %s must not have a link", where, e))
		}
		if len(e.Children) == 0 {
			errs = multierror.Append(errs, fmt.Errorf("%s: %s has no children", where, e))
		}
		if e.Text == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s: group without text", where))
		}
		for i, child := range e.Children {
			if err := child.validate(fmt.Sprintf("%s/%s[%d]", where, e.Text, i)); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		return errs.ErrorOrNil()
	}
	if e.Link == "" {
		errs = multierror.Append(errs, fmt.Errorf("%s: %s has no link", where, e))
	}
	if len(e.Children) > 0 {
		errs = multierror.Append(errs, fmt.Errorf("%s: %s has children but is not a group", where, e))
	}
	return errs.ErrorOrNil()
}

// Validate checks that every entry is either a leaf or a group
func Validate(entries []NavEntry, where string) error {
	var errs *multierror.Error
	for i, e := range entries {
		if err := e.validate(fmt.Sprintf("%s[%d]", where, i)); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// Links returns the links of all leaves in display order
func Links(entries []NavEntry) []string {
	var links []string
	for _, e := range entries {
		if e.IsGroup {
			links = append(links, Links(e.Children)...)
			continue
		}
		if e.Link != "" {
			links = append(links, e.Link)
		}
	}
	return links
}

// FillTitles returns a copy of entries in which leaves without text get the
// title returned by titleOf for their link. External links are left as they are.
func FillTitles(entries []NavEntry, titleOf func(link string) (string, bool)) []NavEntry {
	if entries == nil {
		return nil
	}
	out := make([]NavEntry, len(entries))
	for i, e := range entries {
		if e.IsGroup {
			e.Children = FillTitles(e.Children, titleOf)
		} else if e.Text == "" && !e.IsExternal() {
			if title, ok := titleOf(e.Link); ok {
				e.Text = title
			}
		}
		out[i] = e
	}
	return out
}
