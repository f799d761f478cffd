// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sierrasoftworks/docsite/cmd/app"
	"github.com/sierrasoftworks/docsite/pkg/util/tests"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("dev", func() {
	var (
		dir    string
		src    string
		dst    string
		cancel context.CancelFunc
		done   chan error
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "docsite-dev")
		Expect(err).NotTo(HaveOccurred())
		src = filepath.Join(dir, "docs")
		dst = filepath.Join(dir, "dist")
		Expect(tests.WriteFiles(src, map[string]string{
			"README.md": "# Road map\n",
		})).To(Succeed())

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		cmd := app.NewCommand(ctx)
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		cmd.SetArgs([]string{"dev", "--source", src, "--destination", dst, "--debounce", "50ms"})
		done = make(chan error, 1)
		go func() { done <- cmd.Execute() }()
	})
	AfterEach(func() {
		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("rebuilds on changes", func() {
		page := filepath.Join(dst, "pages", "readme.json")
		Eventually(page, 5*time.Second).Should(BeARegularFile())
		// let the watcher register the source tree
		time.Sleep(200 * time.Millisecond)

		Expect(os.WriteFile(filepath.Join(src, "README.md"), []byte("# Handbook\n"), 0644)).To(Succeed())
		Eventually(func() string {
			data, _ := os.ReadFile(page)
			return string(data)
		}, 5*time.Second, 20*time.Millisecond).Should(ContainSubstring(`"title": "Handbook"`))

		Expect(tests.WriteFiles(src, map[string]string{"tools/README.md": "# Tools\n"})).To(Succeed())
		Eventually(filepath.Join(dst, "pages", "tools-readme.json"), 5*time.Second).Should(BeARegularFile())
	})
})
