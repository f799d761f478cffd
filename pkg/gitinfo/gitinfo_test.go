// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package gitinfo_test

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sierrasoftworks/docsite/pkg/gitinfo"
	"github.com/sierrasoftworks/docsite/pkg/util/tests"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Repository", func() {
	var (
		dir  string
		repo *gogit.Repository
		t0   = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	)

	commit := func(file, content, name, email string, when time.Time) {
		Expect(tests.WriteFiles(dir, map[string]string{file: content})).To(Succeed())
		wt, err := repo.Worktree()
		Expect(err).NotTo(HaveOccurred())
		_, err = wt.Add(file)
		Expect(err).NotTo(HaveOccurred())
		_, err = wt.Commit("update "+file, &gogit.CommitOptions{
			Author: &object.Signature{Name: name, Email: email, When: when},
		})
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "gitinfo")
		Expect(err).NotTo(HaveOccurred())
		repo, err = gogit.PlainInit(dir, false)
		Expect(err).NotTo(HaveOccurred())
	})
	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("reports the latest update and contributors", func() {
		commit("docs/guide/README.md", "# Guide\n", "Alice", "alice@example.com", t0)
		commit("docs/other.md", "# Other\n", "Carol", "carol@example.com", t0.Add(time.Hour))
		commit("docs/guide/README.md", "# Guide\n\nMore\n", "Bob", "bob@example.com", t0.Add(2*time.Hour))
		commit("docs/guide/README.md", "# Guide\n\nEven more\n", "Alice", "alice@example.com", t0.Add(3*time.Hour))

		r, err := gitinfo.Open(filepath.Join(dir, "docs"))
		Expect(err).NotTo(HaveOccurred())
		info, err := r.FileInfo(filepath.Join(dir, "docs", "guide", "README.md"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.LastUpdated).NotTo(BeNil())
		Expect(info.LastUpdated.Equal(t0.Add(3 * time.Hour))).To(BeTrue())
		Expect(info.Contributors).To(Equal([]gitinfo.Contributor{
			{Name: "Alice", Email: "alice@example.com", Commits: 2},
			{Name: "Bob", Email: "bob@example.com", Commits: 1},
		}))
	})

	It("returns a zero info for untracked files", func() {
		commit("docs/README.md", "# Home\n", "Alice", "alice@example.com", t0)
		Expect(tests.WriteFiles(dir, map[string]string{"docs/new.md": "# New\n"})).To(Succeed())
		r, err := gitinfo.Open(dir)
		Expect(err).NotTo(HaveOccurred())
		info, err := r.FileInfo(filepath.Join(dir, "docs", "new.md"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info).To(Equal(gitinfo.Info{}))
	})

	It("returns a zero info for repositories without commits", func() {
		r, err := gitinfo.Open(dir)
		Expect(err).NotTo(HaveOccurred())
		info, err := r.FileInfo(filepath.Join(dir, "README.md"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info).To(Equal(gitinfo.Info{}))
	})

	It("rejects files outside of the repository", func() {
		r, err := gitinfo.Open(dir)
		Expect(err).NotTo(HaveOccurred())
		_, err = r.FileInfo(filepath.Join(filepath.Dir(dir), "elsewhere.md"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Open", func() {
	It("fails outside of a repository", func() {
		dir, err := os.MkdirTemp("", "plain")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dir)
		_, err = gitinfo.Open(dir)
		Expect(errors.Is(err, gitinfo.ErrNotRepository)).To(BeTrue())
	})
})
