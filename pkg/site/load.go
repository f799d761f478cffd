// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// Load reads the site configuration stored at path. An empty path selects
// the built-in configuration. Navigation and title problems are logged,
// Validate reports them as errors.
func Load(path string) (*Config, error) {
	if path == "" {
		klog.V(2).Info("no site configuration given, using the built-in one")
		return Default(), nil
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for site configuration %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("the site configuration path %s is a directory, instead of file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("site configuration %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML site configuration and validates it against the
// configuration schema. Navigation and title problems are only logged.
func Parse(data []byte) (*Config, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("can't parse site configuration: %w", err)
	}
	if err := validateInvariants(cfg); err != nil {
		return nil, err
	}
	warnNavigation(cfg)
	return cfg, nil
}

// Marshal encodes the configuration as yaml or json
func Marshal(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "", "yaml", "yml":
		return yaml.Marshal(cfg)
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format '%s'. Must be one of %v", format, []string{"yaml", "json"})
}
