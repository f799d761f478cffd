// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sierrasoftworks/docsite/pkg/gitinfo"
	"github.com/sierrasoftworks/docsite/pkg/head"
	"github.com/sierrasoftworks/docsite/pkg/headers"
	"github.com/sierrasoftworks/docsite/pkg/internal/link"
	"github.com/sierrasoftworks/docsite/pkg/jobs"
	"github.com/sierrasoftworks/docsite/pkg/metrics"
	"github.com/sierrasoftworks/docsite/pkg/nav"
	"github.com/sierrasoftworks/docsite/pkg/pages"
	"github.com/sierrasoftworks/docsite/pkg/plugins"
	"github.com/sierrasoftworks/docsite/pkg/site"
	"github.com/sierrasoftworks/docsite/pkg/writers"
	"k8s.io/klog/v2"
)

const (
	// SiteFile holds the resolved site data
	SiteFile = "site.json"
	// HeadFile holds the rendered head tags
	HeadFile = "head.html"
	// PagesDir holds one data file per page
	PagesDir = "pages"
	// DefaultBranch is used for edit links when no branch is known
	DefaultBranch = "main"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . BranchResolver

// BranchResolver looks up the default branch of a repository
type BranchResolver interface {
	DefaultBranch(ctx context.Context, repo string) (string, error)
}

// Builder runs the site data pass over a source directory
type Builder struct {
	// Site is the site configuration
	Site *site.Config
	// SourceDir is the directory holding the markdown pages
	SourceDir string
	// Destination is the output directory
	Destination string
	// Workers is the number of pages processed in parallel
	Workers int
	// FailFast stops the build on the first page error
	FailFast bool
	// DryRun is set when the writers only record output
	DryRun bool
	// Writer writes the site files
	Writer writers.Writer
	// PagesWriter writes the page data files
	PagesWriter writers.Writer
	// Branches resolves the edit link branch when the configuration
	// does not name one. Nil means DefaultBranch.
	Branches BranchResolver
	// Registry holds the available plugins
	Registry *plugins.Registry
}

// Result is the outcome of a build
type Result struct {
	ID       string
	Site     *site.Config
	Pages    []*pages.Page
	Head     string
	Duration time.Duration
}

// siteData is the content of the site file
type siteData struct {
	*site.Config
	BuildID  string        `json:"buildId"`
	HeadHTML string        `json:"headHtml"`
	Pages    []pageSummary `json:"pages"`
}

type pageSummary struct {
	Key   string `json:"key"`
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Build processes every page and writes the site, head and page data
func (b *Builder) Build(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.BuildDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()
	if b.Site == nil {
		return nil, errors.New("no site configuration")
	}
	registry := b.Registry
	if registry == nil {
		registry = plugins.NewRegistry()
	}
	app := &pages.App{
		Site:      b.Site,
		SourceDir: b.SourceDir,
		DocsDir:   b.SourceDir,
		Dest:      b.Destination,
		DryRun:    b.DryRun,
	}
	loaded, err := registry.Load(b.Site.Plugins, app)
	if err != nil {
		return nil, err
	}
	defer closePlugins(loaded)
	b.checkEnhanceFiles()

	branch := b.resolveBranch(ctx)
	processed, err := b.processPages(ctx, app, loaded, branch)
	if err != nil {
		return nil, err
	}

	resolved := b.resolveNavigation(processed)
	tags := append([]head.Tag{}, resolved.Head...)
	for _, p := range loaded {
		if he, ok := p.(plugins.HeadExtender); ok {
			tags = he.ExtendHead(tags)
		}
	}
	resolved.Head = tags
	headHTML, err := head.Render(tags)
	if err != nil {
		return nil, err
	}

	res = &Result{ID: uuid.New().String(), Site: resolved, Pages: processed, Head: headHTML}
	if err = b.write(res); err != nil {
		return nil, err
	}
	var errs *multierror.Error
	for _, p := range loaded {
		if f, ok := p.(plugins.Finalizer); ok {
			if ferr := f.Finalize(ctx, b.Writer); ferr != nil {
				errs = multierror.Append(errs, fmt.Errorf("plugin %s: %w", p.Name(), ferr))
			}
		}
	}
	if err = errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	klog.Infof("built %d pages in %s (build %s)", len(processed), res.Duration, res.ID)
	return res, nil
}

func closePlugins(loaded []plugins.Plugin) {
	for _, p := range loaded {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				klog.Warningf("failed to close plugin %s: %v", p.Name(), err)
			}
		}
	}
}

func (b *Builder) resolveBranch(ctx context.Context) string {
	if branch := b.Site.ThemeConfig.DocsBranch; branch != "" {
		return branch
	}
	if b.Branches == nil || b.Site.ThemeConfig.Repo == "" || b.Site.EditLinkPattern(DefaultBranch) == "" {
		return DefaultBranch
	}
	branch, err := b.Branches.DefaultBranch(ctx, b.Site.ThemeConfig.Repo)
	if err != nil {
		klog.Warningf("failed to resolve default branch of %s, using %s: %v", b.Site.ThemeConfig.Repo, DefaultBranch, err)
		return DefaultBranch
	}
	klog.V(2).Infof("edit links point at branch %s", branch)
	return branch
}

func (b *Builder) checkEnhanceFiles() {
	for _, f := range b.Site.ClientAppEnhanceFiles {
		p := f
		if !filepath.IsAbs(p) {
			p = filepath.Join(b.SourceDir, filepath.FromSlash(f))
		}
		if _, err := os.Stat(p); err != nil {
			klog.Warningf("client app enhance file %s not found", f)
		}
	}
}

func (b *Builder) processPages(ctx context.Context, app *pages.App, loaded []plugins.Plugin, branch string) ([]*pages.Page, error) {
	files, err := pages.Scan(b.SourceDir)
	if err != nil {
		return nil, err
	}
	extenders := []pages.Extender{pages.HeaderDecoder{}}
	for _, p := range loaded {
		if e, ok := p.(pages.Extender); ok {
			extenders = append(extenders, e)
		}
	}
	repo := b.openRepository()
	editPattern := b.Site.EditLinkPattern(branch)
	levels := b.Site.HeaderLevels()

	processed := make([]*pages.Page, len(files))
	tasks := make([]int, len(files))
	for i := range tasks {
		tasks[i] = i
	}
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	job := &jobs.Job[int]{
		ID:         "pages",
		MinWorkers: 1,
		MaxWorkers: workers,
		FailFast:   b.FailFast,
		Worker: jobs.WorkerFunc[int](func(ctx context.Context, i int) error {
			page, err := pages.Load(b.SourceDir, files[i], levels)
			if err != nil {
				return err
			}
			if err = pages.Extend(page, app, extenders...); err != nil {
				return err
			}
			if editPattern != "" {
				if page.EditLink, err = link.Build(editPattern, page.RelativePath); err != nil {
					return fmt.Errorf("edit link of %s: %w", page.RelativePath, err)
				}
			}
			if repo != nil {
				b.attachGitInfo(repo, page)
			}
			metrics.PagesProcessed.Inc()
			metrics.HeadersNormalized.Add(float64(headers.CountAll(page.Headers)))
			processed[i] = page
			return nil
		}),
	}
	if err = job.Dispatch(ctx, tasks); err != nil {
		return nil, err
	}
	result := make([]*pages.Page, 0, len(processed))
	for _, p := range processed {
		if p != nil {
			result = append(result, p)
		}
	}
	pages.UniqueKeys(result)
	return result, nil
}

func (b *Builder) openRepository() *gitinfo.Repository {
	tc := b.Site.ThemeConfig
	if !tc.LastUpdatedEnabled() && !tc.ContributorsEnabled() {
		return nil
	}
	repo, err := gitinfo.Open(b.SourceDir)
	if err != nil {
		if errors.Is(err, gitinfo.ErrNotRepository) {
			klog.Warningf("%s is not in a git repository, skipping last updated and contributors", b.SourceDir)
		} else {
			klog.Warning(err)
		}
		return nil
	}
	return repo
}

func (b *Builder) attachGitInfo(repo *gitinfo.Repository, page *pages.Page) {
	info, err := repo.FileInfo(page.Path)
	if err != nil {
		klog.Warningf("failed to read git history of %s: %v", page.RelativePath, err)
		return
	}
	if b.Site.ThemeConfig.LastUpdatedEnabled() {
		page.LastUpdated = info.LastUpdated
	}
	if b.Site.ThemeConfig.ContributorsEnabled() {
		page.Contributors = info.Contributors
	}
}

// resolveNavigation returns a copy of the site configuration with the
// navigation texts filled from page titles, and assigns pages to sidebars
func (b *Builder) resolveNavigation(ps []*pages.Page) *site.Config {
	titleOf := func(link string) (string, bool) {
		for _, p := range ps {
			if p.Matches(link) {
				return p.Title, true
			}
		}
		return "", false
	}
	resolved := *b.Site
	resolved.ThemeConfig.Navbar = nav.FillTitles(b.Site.ThemeConfig.Navbar, titleOf)
	links := nav.Links(resolved.ThemeConfig.Navbar)
	if sidebar := b.Site.ThemeConfig.Sidebar; sidebar != nil {
		resolved.ThemeConfig.Sidebar = sidebar.Map(func(groups []nav.NavEntry) []nav.NavEntry {
			filled := nav.FillTitles(groups, titleOf)
			links = append(links, nav.Links(filled)...)
			return filled
		})
		for _, p := range ps {
			if key, _, ok := sidebar.Resolve(p.Route); ok {
				p.Sidebar = key
			}
		}
	}
	for _, link := range links {
		if nav.IsExternal(link) {
			continue
		}
		if _, ok := titleOf(link); !ok {
			klog.Warningf("navigation link %s does not match any page", link)
		}
	}
	return &resolved
}

func (b *Builder) write(res *Result) error {
	data := siteData{Config: res.Site, BuildID: res.ID, HeadHTML: res.Head, Pages: []pageSummary{}}
	for _, p := range res.Pages {
		data.Pages = append(data.Pages, pageSummary{Key: p.Key, Path: p.Route, Title: p.Title})
		content, err := marshal(p)
		if err != nil {
			return err
		}
		if err = b.PagesWriter.Write(p.Key, "", content); err != nil {
			return err
		}
	}
	content, err := marshal(data)
	if err != nil {
		return err
	}
	if err = b.Writer.Write(SiteFile, "", content); err != nil {
		return err
	}
	return b.Writer.Write(HeadFile, "", []byte(res.Head))
}

func marshal(v interface{}) ([]byte, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}
