// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package head_test

import (
	"encoding/json"

	"github.com/sierrasoftworks/docsite/pkg/head"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("Tag", func() {
	Describe("YAML decoding", func() {
		It("decodes the tuple form", func() {
			var tags []head.Tag
			Expect(yaml.Unmarshal([]byte(`
- [meta, {name: description, content: "Road map"}]
- [link, {rel: icon, href: /favicon.ico}]
- [script, {}, "console.log(1)"]
`), &tags)).To(Succeed())
			Expect(tags).To(Equal([]head.Tag{
				head.New("meta", "name", "description", "content", "Road map"),
				head.New("link", "rel", "icon", "href", "/favicon.ico"),
				{Name: "script", Content: "console.log(1)"},
			}))
		})
		It("decodes the mapping form", func() {
			var tag head.Tag
			Expect(yaml.Unmarshal([]byte("tag: link\nattrs:\n  rel: icon\n  href: /favicon.ico\n"), &tag)).To(Succeed())
			Expect(tag).To(Equal(head.New("link", "rel", "icon", "href", "/favicon.ico")))
		})
		It("rejects unknown fields", func() {
			var tag head.Tag
			Expect(yaml.Unmarshal([]byte("tag: link\nattributes: {}\n"), &tag)).To(MatchError(ContainSubstring("attributes")))
		})
		It("rejects oversized tuples", func() {
			var tag head.Tag
			Expect(yaml.Unmarshal([]byte("[a, {}, b, c]"), &tag)).NotTo(Succeed())
		})
		It("rejects scalar attributes", func() {
			var tag head.Tag
			Expect(yaml.Unmarshal([]byte("[a, b]"), &tag)).To(MatchError(ContainSubstring("mapping")))
		})
		It("round-trips", func() {
			in := []head.Tag{head.New("meta", "name", "x", "content", "y"), head.New("script").WithContent("go()")}
			b, err := yaml.Marshal(in)
			Expect(err).NotTo(HaveOccurred())
			var out []head.Tag
			Expect(yaml.Unmarshal(b, &out)).To(Succeed())
			Expect(out).To(Equal(in))
		})
	})
	It("encodes JSON tuples with ordered attributes", func() {
		b, err := json.Marshal(head.New("link", "rel", "icon", "href", "/favicon.ico"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal(`["link",{"rel":"icon","href":"/favicon.ico"}]`))
	})
	It("looks up attributes", func() {
		v, ok := head.New("meta", "name", "x").Attrs.Get("name")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("x"))
		_, ok = head.New("meta").Attrs.Get("name")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Render", func() {
	It("renders void elements and escapes attributes", func() {
		out, err := head.Render([]head.Tag{
			head.New("meta", "name", "description", "content", "your team's road-maps"),
			head.New("link", "rel", "icon", "href", "/favicon.ico"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("<meta name=\"description\" content=\"your team&#39;s road-maps\"/>\n<link rel=\"icon\" href=\"/favicon.ico\"/>\n"))
	})
	It("emits script content raw", func() {
		out, err := head.Render([]head.Tag{head.New("script", "async", "").WithContent("if (a < b && c) {}")})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("<script async=\"\">if (a < b && c) {}</script>\n"))
	})
	It("fails on tags without name", func() {
		_, err := head.Render([]head.Tag{{}})
		Expect(err).To(HaveOccurred())
	})
})
