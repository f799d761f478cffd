// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site_test

import (
	"encoding/json"

	"github.com/sierrasoftworks/docsite/pkg/head"
	"github.com/sierrasoftworks/docsite/pkg/nav"
	"github.com/sierrasoftworks/docsite/pkg/site"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"
)

var _ = Describe("Default", func() {
	var cfg *site.Config
	BeforeEach(func() {
		cfg = site.Default()
	})
	It("is valid", func() {
		Expect(site.Validate(cfg)).To(Succeed())
	})
	It("declares the site metadata", func() {
		Expect(cfg.Lang).To(Equal("en-GB"))
		Expect(cfg.Title).To(Equal("Road map"))
		Expect(cfg.Head).To(HaveLen(2))
		Expect(cfg.Head[1]).To(Equal(head.New("link", "rel", "icon", "href", "/favicon.ico")))
	})
	It("declares two guide groups in order", func() {
		groups, ok := cfg.ThemeConfig.Sidebar.Get("/guide/")
		Expect(ok).To(BeTrue())
		Expect(groups).To(HaveLen(2))
		Expect(groups[0].Text).To(Equal("Getting Started"))
		Expect(groups[0].Children).To(Equal([]nav.NavEntry{nav.Leaf("", "/guide/README.md")}))
		Expect(groups[1].Text).To(Equal("Advanced"))
		Expect(groups[1].Children).To(Equal([]nav.NavEntry{nav.Leaf("", "/guide/advanced/schema.md")}))
	})
	It("declares the tools index", func() {
		groups, ok := cfg.ThemeConfig.Sidebar.Get("/tools/")
		Expect(ok).To(BeTrue())
		Expect(groups).To(HaveLen(2))
		Expect(groups[1].Children).To(HaveLen(3))
	})
	It("opens the issue tracker in a new tab", func() {
		issue := cfg.ThemeConfig.Navbar[3]
		Expect(issue.IsExternal()).To(BeTrue())
		Expect(issue.Target).To(Equal("_blank"))
	})
	It("enables theme features by default", func() {
		Expect(cfg.ThemeConfig.EditLinkEnabled()).To(BeTrue())
		Expect(cfg.ThemeConfig.LastUpdatedEnabled()).To(BeTrue())
		Expect(cfg.ThemeConfig.ContributorsEnabled()).To(BeTrue())
		Expect(cfg.HeaderLevels()).To(Equal([]int{2, 3}))
	})
})

var _ = Describe("Load", func() {
	var (
		path string
		cfg  *site.Config
		err  error
	)
	JustBeforeEach(func() {
		cfg, err = site.Load(path)
	})
	When("no path is given", func() {
		BeforeEach(func() {
			path = ""
		})
		It("returns the built-in configuration", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(site.Default()))
		})
	})
	When("the file uses tuple and mapping forms", func() {
		BeforeEach(func() {
			path = "testdata/site.yaml"
		})
		It("decodes the configuration", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Head[0].Name).To(Equal("meta"))
			Expect(cfg.ThemeConfig.LastUpdated).To(Equal(ptr.To(false)))
			Expect(cfg.ThemeConfig.LastUpdatedEnabled()).To(BeFalse())
			Expect(cfg.ThemeConfig.Sidebar.Keys()).To(Equal([]string{"/guide/"}))
			Expect(cfg.Plugins).To(Equal([]site.PluginEntry{
				{Name: site.GoogleAnalyticsPlugin, Options: map[string]interface{}{"id": "G-R57T3LCFD4"}},
				{Name: site.RegisterComponentsPlugin, Options: map[string]interface{}{"componentsDir": ".vuepress/components"}},
				{Name: "@vuepress/plugin-search"},
			}))
		})
	})
	When("the file violates the schema", func() {
		BeforeEach(func() {
			path = "testdata/unknown_field.yaml"
		})
		It("reports every violation", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("schema violation"))
			Expect(err.Error()).To(ContainSubstring("theme"))
			Expect(err.Error()).To(ContainSubstring("guide/"))
		})
	})
	When("the navigation is inconsistent", func() {
		BeforeEach(func() {
			path = "testdata/broken_nav.yaml"
		})
		It("loads the configuration as written", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.ThemeConfig.Navbar).To(HaveLen(2))
			Expect(cfg.ThemeConfig.Navbar[1]).To(Equal(nav.NavEntry{Text: "Nowhere"}))
			groups, ok := cfg.ThemeConfig.Sidebar.Get("/guide/")
			Expect(ok).To(BeTrue())
			Expect(groups[0].Children).To(BeEmpty())
		})
		It("reports the violations on validation", func() {
			verr := site.Validate(cfg)
			Expect(verr).To(HaveOccurred())
			Expect(verr.Error()).To(ContainSubstring("must not have a link"))
			Expect(verr.Error()).To(ContainSubstring(`entry "Nowhere" has no link`))
			Expect(verr.Error()).To(ContainSubstring(`group "Empty" has no children`))
		})
	})
	When("a plugin is declared twice", func() {
		BeforeEach(func() {
			path = "testdata/duplicate_plugin.yaml"
		})
		It("errors", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("declared more than once"))
		})
	})
	When("the path is a directory", func() {
		BeforeEach(func() {
			path = "testdata"
		})
		It("errors", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("directory"))
		})
	})
	When("the file is missing", func() {
		BeforeEach(func() {
			path = "testdata/missing.yaml"
		})
		It("errors", func() {
			Expect(err).To(HaveOccurred())
			Expect(cfg).To(BeNil())
		})
	})
})

var _ = Describe("Parse", func() {
	It("accepts a navbar leaf without a link", func() {
		cfg, err := site.Parse([]byte("title: Road map\nthemeConfig:\n  navbar:\n    - text: Editor\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.ThemeConfig.Navbar).To(Equal([]nav.NavEntry{{Text: "Editor"}}))
	})
	It("accepts an empty title", func() {
		cfg, err := site.Parse([]byte("title: ''\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Title).To(BeEmpty())
		Expect(site.Validate(cfg)).To(MatchError(ContainSubstring("title must not be empty")))
	})
	It("accepts a missing title", func() {
		cfg, err := site.Parse([]byte("description: no title\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(site.Validate(cfg)).To(HaveOccurred())
	})
	It("accepts a sidebar group without children", func() {
		cfg, err := site.Parse([]byte("title: Road map\nthemeConfig:\n  sidebar:\n    /g/:\n      - isGroup: true\n        text: G\n        children: []\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.ThemeConfig.Sidebar.Keys()).To(Equal([]string{"/g/"}))
	})
	It("still rejects schema violations", func() {
		_, err := site.Parse([]byte("title: 3\nthemeConfig:\n  navbar: yes\n"))
		Expect(err).To(MatchError(ContainSubstring("schema violation")))
	})
})

var _ = Describe("Marshal", func() {
	It("round-trips the built-in configuration through YAML", func() {
		b, err := site.Marshal(site.Default(), "yaml")
		Expect(err).NotTo(HaveOccurred())
		cfg, err := site.Parse(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.ThemeConfig.Sidebar.Keys()).To(Equal([]string{"/guide/", "/tools/"}))
		Expect(cfg.Head).To(Equal(site.Default().Head))
		Expect(cfg.ThemeConfig.Navbar).To(Equal(site.Default().ThemeConfig.Navbar))
	})
	It("encodes JSON for the host framework", func() {
		b, err := site.Marshal(site.Default(), "json")
		Expect(err).NotTo(HaveOccurred())
		var raw map[string]interface{}
		Expect(json.Unmarshal(b, &raw)).To(Succeed())
		Expect(raw["lang"]).To(Equal("en-GB"))
		Expect(string(b)).To(ContainSubstring(`"/guide/": [`))
		Expect(string(b)).To(ContainSubstring("team's"))
	})
	It("rejects unknown formats", func() {
		_, err := site.Marshal(site.Default(), "toml")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Links", func() {
	It("derives the repository URL", func() {
		cfg := site.Default()
		Expect(cfg.RepoURL()).To(Equal("https://github.com/SierraSoftworks/roadmap"))
		cfg.ThemeConfig.Repo = "https://gitlab.com/group/project.git"
		Expect(cfg.RepoURL()).To(Equal("https://gitlab.com/group/project"))
	})
	It("builds the edit link pattern", func() {
		cfg := site.Default()
		Expect(cfg.EditLinkPattern("")).To(Equal("https://github.com/SierraSoftworks/roadmap/edit/main/docs"))
		Expect(cfg.EditLinkPattern("trunk")).To(Equal("https://github.com/SierraSoftworks/roadmap/edit/trunk/docs"))
		cfg.ThemeConfig.EditLink = ptr.To(false)
		Expect(cfg.EditLinkPattern("trunk")).To(BeEmpty())
	})
})
