// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package head

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Attr is one attribute of a head tag
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list
type Attrs []Attr

// Get returns the value of the attribute with key
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Tag describes an element rendered into the <head> of every page
type Tag struct {
	// Name is the element name, e.g. meta or link
	Name string
	// Attrs are the element attributes in declaration order
	Attrs Attrs
	// Content is the inner HTML, used by script and style tags
	Content string
}

// New creates a tag from alternating attribute keys and values
func New(name string, keyValues ...string) Tag {
	t := Tag{Name: name}
	for i := 0; i+1 < len(keyValues); i += 2 {
		t.Attrs = append(t.Attrs, Attr{Key: keyValues[i], Value: keyValues[i+1]})
	}
	return t
}

// WithContent returns a copy of t with inner HTML set
func (t Tag) WithContent(content string) Tag {
	t.Content = content
	return t
}

// UnmarshalYAML accepts the tuple form [name, {attrs}, content?]
// as well as the mapping form {tag, attrs, content}
func (t *Tag) UnmarshalYAML(value *yaml.Node) error {
	var (
		nameNode, attrsNode, contentNode *yaml.Node
	)
	switch value.Kind {
	case yaml.SequenceNode:
		if len(value.Content) < 1 || len(value.Content) > 3 {
			return fmt.Errorf("line %d: head tag must be [tag, attrs, content?]", value.Line)
		}
		nameNode = value.Content[0]
		if len(value.Content) > 1 {
			attrsNode = value.Content[1]
		}
		if len(value.Content) > 2 {
			contentNode = value.Content[2]
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			switch value.Content[i].Value {
			case "tag":
				nameNode = value.Content[i+1]
			case "attrs":
				attrsNode = value.Content[i+1]
			case "content":
				contentNode = value.Content[i+1]
			default:
				return fmt.Errorf("line %d: unknown head tag field %q", value.Content[i].Line, value.Content[i].Value)
			}
		}
	default:
		return fmt.Errorf("line %d: head tag must be a sequence or mapping", value.Line)
	}
	if nameNode == nil {
		return fmt.Errorf("line %d: head tag without name", value.Line)
	}
	out := Tag{}
	if err := nameNode.Decode(&out.Name); err != nil {
		return err
	}
	if attrsNode != nil {
		if attrsNode.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: attributes of %s must be a mapping", attrsNode.Line, out.Name)
		}
		for i := 0; i+1 < len(attrsNode.Content); i += 2 {
			var key, val string
			if err := attrsNode.Content[i].Decode(&key); err != nil {
				return err
			}
			if err := attrsNode.Content[i+1].Decode(&val); err != nil {
				return err
			}
			out.Attrs = append(out.Attrs, Attr{Key: key, Value: val})
		}
	}
	if contentNode != nil {
		if err := contentNode.Decode(&out.Content); err != nil {
			return err
		}
	}
	*t = out
	return nil
}

// MarshalYAML encodes the tag in tuple form
func (t Tag) MarshalYAML() (interface{}, error) {
	attrs := &yaml.Node{Kind: yaml.MappingNode}
	for _, a := range t.Attrs {
		attrs.Content = append(attrs.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: a.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: a.Value})
	}
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: t.Name}, attrs)
	if t.Content != "" {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: t.Content})
	}
	return node, nil
}

// MarshalJSON encodes the tag in tuple form with ordered attributes
func (t Tag) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	name, err := json.Marshal(t.Name)
	if err != nil {
		return nil, err
	}
	buf.WriteByte('[')
	buf.Write(name)
	buf.WriteString(",{")
	for i, a := range t.Attrs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(a.Key)
		v, _ := json.Marshal(a.Value)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	if t.Content != "" {
		c, err := json.Marshal(t.Content)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(c)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
