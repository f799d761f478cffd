// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"github.com/sierrasoftworks/docsite/pkg/head"
	"github.com/sierrasoftworks/docsite/pkg/nav"
)

const (
	// GoogleAnalyticsPlugin is the identifier of the analytics plugin
	GoogleAnalyticsPlugin = "@vuepress/plugin-google-analytics"
	// RegisterComponentsPlugin is the identifier of the component registration plugin
	RegisterComponentsPlugin = "@vuepress/plugin-register-components"
)

// Default returns the built-in Road map site configuration
func Default() *Config {
	return &Config{
		Lang:        "en-GB",
		Title:       "Road map",
		Description: "Generate your team's road-maps from structured data.",
		Head: []head.Tag{
			head.New("meta", "name", "description", "content", "Road map is a tool which allows you to generate your team's road-maps from structured data."),
			head.New("link", "rel", "icon", "href", "/favicon.ico"),
		},
		ClientAppEnhanceFiles: []string{
			".vuepress/enhance/cloudflare.analytics.js",
		},
		ThemeConfig: ThemeConfig{
			Logo:    "https://cdn.sierrasoftworks.com/logos/icon.png",
			Repo:    "SierraSoftworks/roadmap",
			DocsDir: "docs",
			Navbar: []nav.NavEntry{
				nav.Leaf("Getting Started", "/guide/README.md"),
				nav.Leaf("Editor", "/editor/README.md"),
				nav.Leaf("Tools", "/tools/README.md"),
				{
					Text:   "Report an Issue",
					Link:   "https://github.com/SierraSoftworks/roadmap/issues/new",
					Target: "_blank",
				},
			},
			Sidebar: nav.NewSidebarMap().
				Set("/guide/",
					nav.Group("Getting Started",
						nav.Leaf("", "/guide/README.md"),
					),
					nav.Group("Advanced",
						nav.Leaf("", "/guide/advanced/schema.md"),
					),
				).
				Set("/tools/",
					nav.Group("Tools",
						nav.Leaf("", "/tools/README.md"),
					),
					nav.Group("Index",
						nav.Leaf("", "/tools/editors/web-editor/README.md"),
						nav.Leaf("", "/tools/documentation/web-viewer/README.md"),
						nav.Leaf("", "/tools/visualizations/graphviz/README.md"),
					),
				),
		},
		Plugins: []PluginEntry{
			{Name: GoogleAnalyticsPlugin, Options: map[string]interface{}{"id": "G-R57T3LCFD4"}},
			{Name: RegisterComponentsPlugin, Options: map[string]interface{}{"componentsDir": ".vuepress/components"}},
		},
	}
}
