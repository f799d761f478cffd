// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package headers_test

import (
	"github.com/sierrasoftworks/docsite/pkg/headers"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Extract", func() {
	var (
		md     string
		levels []int
		got    []*headers.PageHeader
		err    error
	)
	BeforeEach(func() {
		levels = nil
		md = "---\ntitle: Guide\n---\n# Guide\n\n## Getting Started\n\ntext\n\n### Install & \"run\"\n\n#### Deep\n\n## It's done\n"
	})
	JustBeforeEach(func() {
		got, err = headers.Extract([]byte(md), levels)
	})
	It("builds the header tree from h2 and h3", func() {
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(2))
		Expect(got[0].Title).To(Equal("Getting Started"))
		Expect(got[0].Slug).To(Equal("getting-started"))
		Expect(got[0].Level).To(Equal(2))
		Expect(got[0].Children).To(HaveLen(1))
		Expect(got[0].Children[0].Level).To(Equal(3))
		Expect(got[0].Children[0].Children).To(BeEmpty())
		Expect(got[1].Children).NotTo(BeNil())
	})
	It("escapes titles like the page parser", func() {
		Expect(got[0].Children[0].Title).To(Equal("Install &amp; &quot;run&quot;"))
		Expect(got[1].Title).To(Equal("It&#39;s done"))
	})
	It("round-trips through the normalizer with single-occurrence decoding", func() {
		headers.NormalizeAll(got)
		Expect(got[0].Children[0].Title).To(Equal(`Install & "run&quot;`))
		Expect(got[1].Title).To(Equal("It's done"))
	})
	When("levels are configured", func() {
		BeforeEach(func() {
			levels = []int{2, 3, 4}
		})
		It("collects the deeper headings", func() {
			Expect(got[0].Children[0].Children).To(HaveLen(1))
			Expect(got[0].Children[0].Children[0].Title).To(Equal("Deep"))
		})
	})
	When("a heading has no shallower ancestor", func() {
		BeforeEach(func() {
			md = "### Orphan\n\n## Root\n"
		})
		It("becomes a root", func() {
			Expect(got).To(HaveLen(2))
			Expect(got[0].Title).To(Equal("Orphan"))
			Expect(got[0].Level).To(Equal(3))
			Expect(got[1].Title).To(Equal("Root"))
		})
	})
	When("headings repeat", func() {
		BeforeEach(func() {
			md = "## Usage\n\n## Usage\n\n## Usage\n"
		})
		It("de-duplicates slugs", func() {
			Expect(got).To(HaveLen(3))
			Expect(got[0].Slug).To(Equal("usage"))
			Expect(got[1].Slug).To(Equal("usage-1"))
			Expect(got[2].Slug).To(Equal("usage-2"))
		})
	})
	When("the page has no headings", func() {
		BeforeEach(func() {
			md = "just text\n"
		})
		It("returns an empty list", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(got).NotTo(BeNil())
			Expect(got).To(BeEmpty())
		})
	})
	When("headings contain inline markup", func() {
		BeforeEach(func() {
			md = "## The `roadmap` <Badge text=\"beta\"/> *tool*\n"
		})
		It("keeps the text and drops inline html", func() {
			Expect(got[0].Title).To(Equal("The roadmap  tool"))
		})
	})
	When("frontmatter is malformed", func() {
		BeforeEach(func() {
			md = "---\ntitle: [unclosed\n---\n## A\n"
		})
		It("fails", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})
