// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package nav

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// SidebarMap maps route prefixes to the navigation groups shown in the
// side panel. Keys are unique and keep their insertion order.
type SidebarMap struct {
	keys   []string
	groups map[string][]NavEntry
}

// NewSidebarMap creates an empty sidebar map
func NewSidebarMap() *SidebarMap {
	return &SidebarMap{groups: map[string][]NavEntry{}}
}

// Set assigns groups to key. An existing key keeps its position.
func (s *SidebarMap) Set(key string, groups ...NavEntry) *SidebarMap {
	if s.groups == nil {
		s.groups = map[string][]NavEntry{}
	}
	if _, ok := s.groups[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.groups[key] = groups
	return s
}

// Get returns the groups of key in display order
func (s *SidebarMap) Get(key string) ([]NavEntry, bool) {
	if s == nil {
		return nil, false
	}
	groups, ok := s.groups[key]
	return groups, ok
}

// Keys returns the keys in declaration order
func (s *SidebarMap) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Len returns the number of keys
func (s *SidebarMap) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Resolve returns the groups of the longest key that prefixes route
func (s *SidebarMap) Resolve(route string) (string, []NavEntry, bool) {
	best := ""
	found := false
	for _, key := range s.Keys() {
		if strings.HasPrefix(route, key) && (!found || len(key) > len(best)) {
			best = key
			found = true
		}
	}
	if !found {
		return "", nil, false
	}
	return best, s.groups[best], true
}

// Map applies fn to the groups of every key and returns the result as a new map
func (s *SidebarMap) Map(fn func(groups []NavEntry) []NavEntry) *SidebarMap {
	out := NewSidebarMap()
	for _, key := range s.Keys() {
		out.Set(key, fn(s.groups[key])...)
	}
	return out
}

// Validate checks every group of every key
func (s *SidebarMap) Validate() error {
	var errs *multierror.Error
	for _, key := range s.Keys() {
		if !strings.HasPrefix(key, "/") {
			errs = multierror.Append(errs, fmt.Errorf("sidebar key %q must start with /", key))
		}
		if err := Validate(s.groups[key], fmt.Sprintf("sidebar[%s]", key)); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// UnmarshalYAML decodes a mapping, keeping the order of its keys. A
// repeated key keeps its first position and takes the last groups.
func (s *SidebarMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sidebar must be a mapping", value.Line)
	}
	out := NewSidebarMap()
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, groupsNode := value.Content[i], value.Content[i+1]
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		if _, ok := out.groups[key]; ok {
			klog.Warningf("line %d: duplicate sidebar key %q", keyNode.Line, key)
		}
		var groups []NavEntry
		if err := groupsNode.Decode(&groups); err != nil {
			return fmt.Errorf("sidebar %q: %w", key, err)
		}
		out.Set(key, groups...)
	}
	*s = *out
	return nil
}

// MarshalYAML encodes the map as an ordered mapping
func (s SidebarMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range s.keys {
		groups := &yaml.Node{}
		if err := groups.Encode(s.groups[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, groups)
	}
	return node, nil
}

// MarshalJSON encodes the map as a JSON object with ordered keys
func (s SidebarMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.groups[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
