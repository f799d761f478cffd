// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sierrasoftworks/docsite/pkg/headers"
	"github.com/sierrasoftworks/docsite/pkg/internal/link"
	"github.com/sierrasoftworks/docsite/pkg/markdown"
	"k8s.io/klog/v2"
)

var indexFileNames = []string{"readme.md", "index.md"}

// Scan lists the markdown files under docsDir as sorted slash separated
// relative paths. Hidden directories such as .vuepress are skipped.
func Scan(docsDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(docsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != docsDir && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}
		rel, err := filepath.Rel(docsDir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", docsDir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Load reads the page at rel inside docsDir and extracts its frontmatter,
// title, route and headers
func Load(docsDir, rel string, levels []int) (*Page, error) {
	p := filepath.Join(docsDir, filepath.FromSlash(rel))
	source, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", rel, err)
	}
	doc, err := markdown.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", rel, err)
	}
	title, ok := doc.Title()
	if !ok {
		title = strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	}
	page := &Page{
		Key:          Key(rel),
		Path:         p,
		RelativePath: rel,
		Route:        Route(rel),
		Title:        title,
		Frontmatter:  doc.Frontmatter,
		Headers:      headers.FromDocument(doc, levels),
	}
	klog.V(6).Infof("loaded page %s with %d headers", rel, headers.CountAll(page.Headers))
	return page, nil
}

// Route returns the URL path of the page at rel. Index pages are served
// at their directory route, other pages at <name>.html.
func Route(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	dir, file := path.Split(rel)
	for _, index := range indexFileNames {
		if strings.EqualFold(file, index) {
			return "/" + dir
		}
	}
	return "/" + dir + strings.TrimSuffix(file, path.Ext(file)) + ".html"
}

// Key returns the identifier of the page at rel
func Key(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return strings.ToLower(strings.ReplaceAll(rel, "/", "-"))
}

// UniqueKeys renames pages whose key is already taken by an earlier page,
// appending -2, -3, ... so that no two pages share a data file
func UniqueKeys(pgs []*Page) {
	taken := make(map[string]bool, len(pgs))
	for _, p := range pgs {
		taken[p.Key] = true
	}
	seen := make(map[string]bool, len(pgs))
	for _, p := range pgs {
		if !seen[p.Key] {
			seen[p.Key] = true
			continue
		}
		key := p.Key
		for n := 2; ; n++ {
			key = fmt.Sprintf("%s-%d", p.Key, n)
			if !taken[key] {
				break
			}
		}
		klog.Warningf("page %s: key %s is already used, using %s", p.RelativePath, p.Key, key)
		p.Key = key
		taken[key] = true
		seen[key] = true
	}
}

// Matches reports whether a navigation link refers to the page. Links may
// name the source file (/guide/README.md) or the route (/guide/).
func (p *Page) Matches(target string) bool {
	l := link.StripFragment(target)
	if l == "" {
		return false
	}
	if !strings.HasPrefix(l, "/") {
		l = "/" + l
	}
	return l == "/"+p.RelativePath || l == p.Route
}
