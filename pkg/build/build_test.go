// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package build_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/sierrasoftworks/docsite/pkg/build"
	"github.com/sierrasoftworks/docsite/pkg/build/buildfakes"
	"github.com/sierrasoftworks/docsite/pkg/pages"
	"github.com/sierrasoftworks/docsite/pkg/plugins"
	"github.com/sierrasoftworks/docsite/pkg/site"
	"github.com/sierrasoftworks/docsite/pkg/util/tests"
	"github.com/sierrasoftworks/docsite/pkg/writers/writersfakes"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var sources = map[string]string{
	"README.md":                     "# Road map\n\n## Features\n",
	"guide/README.md":               "---\ntitle: Getting Started\n---\n\n## Install & run\n\n### It's \"easy\"\n",
	"guide/advanced/schema.md":      "# Schema\n\n## Objectives\n",
	"tools/README.md":               "# Tools\n",
	".vuepress/components/Todo.vue": "<template><div/></template>\n",
}

func written(w *writersfakes.FakeWriter) map[string][]byte {
	files := map[string][]byte{}
	for i := 0; i < w.WriteCallCount(); i++ {
		name, _, content := w.WriteArgsForCall(i)
		files[name] = content
	}
	return files
}

var _ = Describe("Builder", func() {
	var (
		dir         string
		cfg         *site.Config
		siteWriter  *writersfakes.FakeWriter
		pagesWriter *writersfakes.FakeWriter
		branches    *buildfakes.FakeBranchResolver
		builder     *build.Builder
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "build")
		Expect(err).NotTo(HaveOccurred())
		Expect(tests.WriteFiles(dir, sources)).To(Succeed())
		cfg = site.Default()
		siteWriter = &writersfakes.FakeWriter{}
		pagesWriter = &writersfakes.FakeWriter{}
		branches = &buildfakes.FakeBranchResolver{}
		branches.DefaultBranchReturns("trunk", nil)
		builder = &build.Builder{
			Site:        cfg,
			SourceDir:   dir,
			Destination: "dist",
			Workers:     4,
			Writer:      siteWriter,
			PagesWriter: pagesWriter,
			Branches:    branches,
			Registry:    plugins.NewRegistry(),
		}
	})
	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("writes the site, head and page data", func() {
		res, err := builder.Build(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.ID).NotTo(BeEmpty())
		Expect(res.Pages).To(HaveLen(4))

		files := written(siteWriter)
		Expect(files).To(HaveKey(build.SiteFile))
		Expect(files).To(HaveKey(build.HeadFile))
		Expect(files).To(HaveKey(plugins.ComponentsFile))
		Expect(string(files[build.HeadFile])).To(ContainSubstring(`<link rel="icon" href="/favicon.ico"/>`))
		Expect(string(files[build.HeadFile])).To(ContainSubstring(`gtag('config', "G-R57T3LCFD4");`))
		Expect(string(files[plugins.ComponentsFile])).To(ContainSubstring(`"name": "Todo"`))

		Expect(written(pagesWriter)).To(HaveLen(4))
		Expect(written(pagesWriter)).To(HaveKey("guide-readme"))
	})

	It("decodes headers and attaches page attributes", func() {
		_, err := builder.Build(context.Background())
		Expect(err).NotTo(HaveOccurred())
		var page map[string]interface{}
		Expect(json.Unmarshal(written(pagesWriter)["guide-readme"], &page)).To(Succeed())
		Expect(page["title"]).To(Equal("Getting Started"))
		Expect(page["path"]).To(Equal("/guide/"))
		Expect(page["sidebar"]).To(Equal("/guide/"))
		Expect(page["editLink"]).To(Equal("https://github.com/SierraSoftworks/roadmap/edit/trunk/docs/guide/README.md"))
		hs := page["headers"].([]interface{})
		Expect(hs).To(HaveLen(1))
		install := hs[0].(map[string]interface{})
		Expect(install["title"]).To(Equal("Install & run"))
		child := install["children"].([]interface{})[0].(map[string]interface{})
		Expect(child["title"]).To(Equal(`It's "easy&quot;`))
		Expect(branches.DefaultBranchCallCount()).To(Equal(1))
		_, repo := branches.DefaultBranchArgsForCall(0)
		Expect(repo).To(Equal("SierraSoftworks/roadmap"))
	})

	It("fills navigation texts without changing the configuration", func() {
		res, err := builder.Build(context.Background())
		Expect(err).NotTo(HaveOccurred())
		groups, ok := res.Site.ThemeConfig.Sidebar.Get("/guide/")
		Expect(ok).To(BeTrue())
		Expect(groups[0].Children[0].Text).To(Equal("Getting Started"))
		Expect(groups[1].Children[0].Text).To(Equal("Schema"))
		tools, _ := res.Site.ThemeConfig.Sidebar.Get("/tools/")
		Expect(tools[1].Children[0].Text).To(BeEmpty())

		original, _ := cfg.ThemeConfig.Sidebar.Get("/guide/")
		Expect(original[0].Children[0].Text).To(BeEmpty())
		Expect(cfg.Head).To(HaveLen(2))

		var data map[string]interface{}
		Expect(json.Unmarshal(written(siteWriter)[build.SiteFile], &data)).To(Succeed())
		Expect(data["buildId"]).To(Equal(res.ID))
		Expect(data["title"]).To(Equal("Road map"))
		Expect(data["head"]).To(HaveLen(4))
		Expect(data["pages"]).To(HaveLen(4))
	})

	It("uses the configured branch", func() {
		cfg.ThemeConfig.DocsBranch = "release"
		res, err := builder.Build(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(branches.DefaultBranchCallCount()).To(Equal(0))
		for _, p := range res.Pages {
			Expect(p.EditLink).To(HavePrefix("https://github.com/SierraSoftworks/roadmap/edit/release/docs/"))
		}
	})

	It("falls back to main when the branch cannot be resolved", func() {
		branches.DefaultBranchReturns("", errors.New("rate limited"))
		res, err := builder.Build(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Pages[0].EditLink).To(HavePrefix("https://github.com/SierraSoftworks/roadmap/edit/main/docs/"))
	})

	It("fails on broken pages", func() {
		Expect(tests.WriteFiles(dir, map[string]string{"broken.md": "---\ntitle: [\n---\n"})).To(Succeed())
		builder.FailFast = true
		_, err := builder.Build(context.Background())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("broken.md"))
		Expect(siteWriter.WriteCallCount()).To(Equal(0))
	})

	It("reports write failures", func() {
		siteWriter.WriteReturns(errors.New("disk full"))
		_, err := builder.Build(context.Background())
		Expect(err).To(MatchError(ContainSubstring("disk full")))
	})

	It("closes plugins when the build ends", func() {
		closer := &closingPlugin{}
		builder.Registry.Register("closing", func(map[string]interface{}, *pages.App) (plugins.Plugin, error) {
			return closer, nil
		})
		cfg.Plugins = append(cfg.Plugins, site.PluginEntry{Name: "closing"})
		siteWriter.WriteReturns(errors.New("disk full"))
		_, err := builder.Build(context.Background())
		Expect(err).To(HaveOccurred())
		Expect(closer.closed).To(BeTrue())
	})

	It("gives colliding pages distinct data files", func() {
		Expect(tests.WriteFiles(dir, map[string]string{"tools-README.md": "# Tools index\n"})).To(Succeed())
		res, err := builder.Build(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Pages).To(HaveLen(5))
		files := written(pagesWriter)
		Expect(files).To(HaveLen(5))
		Expect(files).To(HaveKey("tools-readme"))
		Expect(files).To(HaveKey("tools-readme-2"))
	})
})

type closingPlugin struct {
	closed bool
}

func (c *closingPlugin) Name() string { return "closing" }

func (c *closingPlugin) Close() error {
	c.closed = true
	return nil
}
