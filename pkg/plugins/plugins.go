// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package plugins

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/sierrasoftworks/docsite/pkg/head"
	"github.com/sierrasoftworks/docsite/pkg/pages"
	"github.com/sierrasoftworks/docsite/pkg/site"
	"github.com/sierrasoftworks/docsite/pkg/writers"
	"k8s.io/klog/v2"
)

const vuepressScope = "@vuepress/"

// Plugin is a configured site plugin. Plugins opt into build stages by
// implementing HeadExtender, pages.Extender or Finalizer. Plugins that are
// an io.Closer are closed when the build ends.
type Plugin interface {
	Name() string
}

// HeadExtender adds tags to the head of every page
type HeadExtender interface {
	ExtendHead(tags []head.Tag) []head.Tag
}

// Finalizer runs once all pages are processed
type Finalizer interface {
	Finalize(ctx context.Context, w writers.Writer) error
}

// Factory creates a plugin from its options
type Factory func(options map[string]interface{}, app *pages.App) (Plugin, error)

// Registry maps plugin identifiers to factories
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a registry holding the built-in plugins
func NewRegistry() *Registry {
	r := &Registry{factories: map[string]Factory{}}
	r.Register(GoogleAnalyticsName, NewGoogleAnalytics)
	r.Register(RegisterComponentsName, NewRegisterComponents)
	r.Register(SearchName, NewSearch)
	return r
}

// Register adds a factory under name. The @vuepress/ scope is optional.
func (r *Registry) Register(name string, f Factory) {
	r.factories[canonical(name)] = f
}

// Names returns the registered plugin identifiers
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, vuepressScope+n)
	}
	sort.Strings(names)
	return names
}

// Load creates the plugins declared in the site configuration, in order.
// Plugins without a factory belong to the host framework and are skipped.
func (r *Registry) Load(entries []site.PluginEntry, app *pages.App) ([]Plugin, error) {
	var (
		loaded []Plugin
		errs   *multierror.Error
	)
	for _, e := range entries {
		f, ok := r.factories[canonical(e.Name)]
		if !ok {
			klog.Warningf("plugin %s is not known to docsite and is left to the host framework", e.Name)
			continue
		}
		p, err := f(e.Options, app)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("plugin %s: %w", e.Name, err))
			continue
		}
		klog.V(4).Infof("loaded plugin %s", e.Name)
		loaded = append(loaded, p)
	}
	return loaded, errs.ErrorOrNil()
}

func canonical(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), vuepressScope)
}

// decode copies plugin options into out, rejecting unknown keys
func decode(options map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(options)
}
