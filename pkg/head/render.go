// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package head

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node converts the tag into an HTML element node
func (t Tag) Node() (*html.Node, error) {
	name := strings.ToLower(strings.TrimSpace(t.Name))
	if name == "" {
		return nil, fmt.Errorf("head tag without name")
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
	for _, a := range t.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
	}
	if t.Content != "" {
		// script and style content is emitted raw by the renderer
		n.AppendChild(&html.Node{Type: html.TextNode, Data: t.Content})
	}
	return n, nil
}

// Render renders the tags as HTML, one element per line
func Render(tags []Tag) (string, error) {
	var buf bytes.Buffer
	for _, t := range tags {
		n, err := t.Node()
		if err != nil {
			return "", err
		}
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering <%s>: %w", t.Name, err)
		}
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}
