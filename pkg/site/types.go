// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"fmt"
	"strings"

	"github.com/sierrasoftworks/docsite/pkg/head"
	"github.com/sierrasoftworks/docsite/pkg/internal/link"
	"github.com/sierrasoftworks/docsite/pkg/nav"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
)

// Config is the site configuration read by the host framework at startup
type Config struct {
	// Lang is the language of the site, e.g. en-GB
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`
	// Title is the site title
	Title string `json:"title" yaml:"title"`
	// Description is the default page description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Head lists the tags injected into the <head> of every page
	Head []head.Tag `json:"head,omitempty" yaml:"head,omitempty"`
	// ClientAppEnhanceFiles are client scripts bundled into the site app
	ClientAppEnhanceFiles []string `json:"clientAppEnhanceFiles,omitempty" yaml:"clientAppEnhanceFiles,omitempty"`
	// Markdown holds page parsing options
	Markdown Markdown `json:"markdown,omitempty" yaml:"markdown,omitempty"`
	// ThemeConfig holds the default theme options
	ThemeConfig ThemeConfig `json:"themeConfig" yaml:"themeConfig"`
	// Plugins lists the plugins with their options in load order
	Plugins []PluginEntry `json:"plugins,omitempty" yaml:"plugins,omitempty"`
}

// Markdown holds page parsing options
type Markdown struct {
	ExtractHeaders ExtractHeaders `json:"extractHeaders,omitempty" yaml:"extractHeaders,omitempty"`
}

// ExtractHeaders selects the heading levels collected as page headers
type ExtractHeaders struct {
	Level []int `json:"level,omitempty" yaml:"level,omitempty"`
}

// ThemeConfig holds the options of the default theme
type ThemeConfig struct {
	// Logo is the URL of the navbar logo
	Logo string `json:"logo,omitempty" yaml:"logo,omitempty"`
	// Repo is the source repository, either owner/name or a URL
	Repo string `json:"repo,omitempty" yaml:"repo,omitempty"`
	// DocsDir is the documentation directory inside the repository
	DocsDir string `json:"docsDir,omitempty" yaml:"docsDir,omitempty"`
	// DocsBranch is the branch edit links point at. When empty the
	// repository default branch is used.
	DocsBranch string `json:"docsBranch,omitempty" yaml:"docsBranch,omitempty"`
	// EditLink enables "edit this page" links, true when unset
	EditLink *bool `json:"editLink,omitempty" yaml:"editLink,omitempty"`
	// EditLinkText is the label of edit links
	EditLinkText string `json:"editLinkText,omitempty" yaml:"editLinkText,omitempty"`
	// LastUpdated enables the last updated timestamp, true when unset
	LastUpdated *bool `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	// Contributors enables the contributors list, true when unset
	Contributors *bool `json:"contributors,omitempty" yaml:"contributors,omitempty"`
	// Navbar is the top navigation
	Navbar []nav.NavEntry `json:"navbar,omitempty" yaml:"navbar,omitempty"`
	// Sidebar maps route prefixes to side navigation groups
	Sidebar *nav.SidebarMap `json:"sidebar,omitempty" yaml:"sidebar,omitempty"`
}

// EditLinkEnabled reports whether edit links are rendered
func (t ThemeConfig) EditLinkEnabled() bool {
	return ptr.Deref(t.EditLink, true)
}

// LastUpdatedEnabled reports whether last updated timestamps are collected
func (t ThemeConfig) LastUpdatedEnabled() bool {
	return ptr.Deref(t.LastUpdated, true)
}

// ContributorsEnabled reports whether contributors are collected
func (t ThemeConfig) ContributorsEnabled() bool {
	return ptr.Deref(t.Contributors, true)
}

// PluginEntry is a plugin identifier with its options
type PluginEntry struct {
	Name    string                 `json:"name" yaml:"name"`
	Options map[string]interface{} `json:"options,omitempty" yaml:"options,omitempty"`
}

// UnmarshalYAML accepts a bare identifier, the tuple form [name, {options}]
// and the mapping form {name, options}
func (p *PluginEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = PluginEntry{Name: value.Value}
		return nil
	case yaml.SequenceNode:
		if len(value.Content) < 1 || len(value.Content) > 2 {
			return fmt.Errorf("line %d: plugin must be [name, options?]", value.Line)
		}
		out := PluginEntry{}
		if err := value.Content[0].Decode(&out.Name); err != nil {
			return err
		}
		if len(value.Content) == 2 {
			if err := value.Content[1].Decode(&out.Options); err != nil {
				return fmt.Errorf("plugin %s options: %w", out.Name, err)
			}
		}
		*p = out
		return nil
	}
	type plain PluginEntry
	var out plain
	if err := value.Decode(&out); err != nil {
		return err
	}
	*p = PluginEntry(out)
	return nil
}

// HeaderLevels returns the heading levels collected as page headers
func (c *Config) HeaderLevels() []int {
	if len(c.Markdown.ExtractHeaders.Level) == 0 {
		return []int{2, 3}
	}
	return c.Markdown.ExtractHeaders.Level
}

// RepoURL returns the web URL of the source repository
func (c *Config) RepoURL() string {
	repo := strings.TrimSuffix(strings.TrimSpace(c.ThemeConfig.Repo), "/")
	if repo == "" {
		return ""
	}
	if strings.HasPrefix(repo, "http://") || strings.HasPrefix(repo, "https://") {
		return strings.TrimSuffix(repo, ".git")
	}
	return "https://github.com/" + repo
}

// EditLinkPattern returns the edit URL prefix for pages of branch. Page
// paths relative to the docs directory are appended to it.
func (c *Config) EditLinkPattern(branch string) string {
	repoURL := c.RepoURL()
	if repoURL == "" || !c.ThemeConfig.EditLinkEnabled() {
		return ""
	}
	if branch == "" {
		branch = "main"
	}
	pattern, err := link.Build(repoURL, "edit", branch, strings.Trim(c.ThemeConfig.DocsDir, "/"))
	if err != nil {
		klog.Warningf("invalid repository URL %s: %v", repoURL, err)
		return ""
	}
	return pattern
}
