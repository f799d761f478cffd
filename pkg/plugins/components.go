// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package plugins

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sierrasoftworks/docsite/pkg/pages"
	"github.com/sierrasoftworks/docsite/pkg/writers"
	"k8s.io/klog/v2"
)

// RegisterComponentsName identifies the component registration plugin
const RegisterComponentsName = "plugin-register-components"

// ComponentsFile lists the registered components in the output directory
const ComponentsFile = "components.json"

// Component is a globally registered Vue component
type Component struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// RegisterComponents registers every .vue file of a directory as a
// global component
type RegisterComponents struct {
	ComponentsDir string `mapstructure:"componentsDir"`
	dir           string
}

// NewRegisterComponents creates the plugin, the componentsDir option is
// required and resolved against the site source directory
func NewRegisterComponents(options map[string]interface{}, app *pages.App) (Plugin, error) {
	rc := &RegisterComponents{}
	if err := decode(options, rc); err != nil {
		return nil, err
	}
	if rc.ComponentsDir == "" {
		return nil, errors.New("missing required option componentsDir")
	}
	rc.dir = rc.ComponentsDir
	if !filepath.IsAbs(rc.dir) && app != nil {
		rc.dir = filepath.Join(app.SourceDir, filepath.FromSlash(rc.ComponentsDir))
	}
	return rc, nil
}

func (rc *RegisterComponents) Name() string {
	return RegisterComponentsName
}

// Components lists the components under the components directory sorted
// by name. A component is named after its relative path without extension,
// separators replaced by '-'.
func (rc *RegisterComponents) Components() ([]Component, error) {
	components := []Component{}
	err := filepath.WalkDir(rc.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".vue" {
			return nil
		}
		rel, err := filepath.Rel(rc.dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		components = append(components, Component{
			Name: strings.ReplaceAll(strings.TrimSuffix(rel, path.Ext(rel)), "/", "-"),
			Path: path.Join(rc.ComponentsDir, rel),
		})
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		klog.Warningf("components directory %s does not exist", rc.dir)
		return components, nil
	}
	if err != nil {
		return nil, err
	}
	sort.Slice(components, func(i, j int) bool { return components[i].Name < components[j].Name })
	return components, nil
}

// Finalize writes the component list
func (rc *RegisterComponents) Finalize(_ context.Context, w writers.Writer) error {
	components, err := rc.Components()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(components, "", "  ")
	if err != nil {
		return err
	}
	klog.V(2).Infof("registering %d components from %s", len(components), rc.dir)
	return w.Write(ComponentsFile, "", b)
}
