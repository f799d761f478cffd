// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/sierrasoftworks/docsite/pkg/nav"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

const schemaURL = "https://sierrasoftworks.com/schemas/docsite/site.schema.json"

//go:embed schema/site.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func siteSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("invalid site schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("invalid site schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Validate checks the configuration against the configuration schema, the
// navigation invariants and the title. All violations are reported together.
func Validate(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	var errs *multierror.Error
	if err = validateDocument(data); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err = validateInvariants(cfg); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err = validateNavigation(cfg); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}

// validateDocument validates a YAML document against the site schema
func validateDocument(data []byte) error {
	sch, err := siteSchema()
	if err != nil {
		return err
	}
	var raw interface{}
	if err = yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("can't parse site configuration: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	// round trip through JSON so the schema sees JSON types only
	js, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("site configuration is not representable as JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(js))
	if err != nil {
		return err
	}
	if err = sch.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return schemaViolations(verr)
		}
		return err
	}
	return nil
}

// schemaViolations flattens a validation error tree into one error per
// violated location
func schemaViolations(verr *jsonschema.ValidationError) error {
	var errs *multierror.Error
	var walk func(v *jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			msg := strings.TrimSpace(v.Error())
			errs = multierror.Append(errs, fmt.Errorf("schema violation at /%s: %s", strings.Join(v.InstanceLocation, "/"), msg))
			return
		}
		for _, c := range v.Causes {
			walk(c)
		}
	}
	walk(verr)
	return errs.ErrorOrNil()
}

// validateNavigation checks the title and the navigation tables. The host
// framework accepts these as they are, so loading only warns about them.
func validateNavigation(cfg *Config) error {
	var errs *multierror.Error
	if strings.TrimSpace(cfg.Title) == "" {
		errs = multierror.Append(errs, errors.New("title must not be empty"))
	}
	if err := nav.Validate(cfg.ThemeConfig.Navbar, "navbar"); err != nil {
		errs = multierror.Append(errs, err)
	}
	if cfg.ThemeConfig.Sidebar != nil {
		if err := cfg.ThemeConfig.Sidebar.Validate(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// warnNavigation logs every navigation violation of cfg
func warnNavigation(cfg *Config) {
	err := validateNavigation(cfg)
	if err == nil {
		return
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range flatten(merr) {
			klog.Warningf("site configuration: %v", e)
		}
		return
	}
	klog.Warningf("site configuration: %v", err)
}

func flatten(merr *multierror.Error) []error {
	var out []error
	for _, e := range merr.Errors {
		var nested *multierror.Error
		if errors.As(e, &nested) {
			out = append(out, flatten(nested)...)
			continue
		}
		out = append(out, e)
	}
	return out
}

// validateInvariants checks the parts of the configuration docsite itself
// depends on
func validateInvariants(cfg *Config) error {
	var errs *multierror.Error
	seen := map[string]bool{}
	for i, p := range cfg.Plugins {
		if strings.TrimSpace(p.Name) == "" {
			errs = multierror.Append(errs, fmt.Errorf("plugins[%d]: missing name", i))
			continue
		}
		if seen[p.Name] {
			errs = multierror.Append(errs, fmt.Errorf("plugins[%d]: %s is declared more than once", i, p.Name))
		}
		seen[p.Name] = true
	}
	for _, l := range cfg.Markdown.ExtractHeaders.Level {
		if l < 1 || l > 6 {
			errs = multierror.Append(errs, fmt.Errorf("markdown.extractHeaders.level: %d is not a heading level", l))
		}
	}
	return errs.ErrorOrNil()
}
