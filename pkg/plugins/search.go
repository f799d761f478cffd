// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/sierrasoftworks/docsite/pkg/headers"
	"github.com/sierrasoftworks/docsite/pkg/pages"
	"github.com/sierrasoftworks/docsite/pkg/writers"
	"k8s.io/klog/v2"
)

// SearchName identifies the search plugin
const SearchName = "plugin-search"

// DefaultIndexName is the search index directory inside the output directory
const DefaultIndexName = "search.bleve"

// document is an indexed page or page section
type document struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Page  string `json:"page"`
	Route string `json:"route"`
}

// Search indexes page titles and headers into a bleve index
type Search struct {
	IndexPath string `mapstructure:"indexPath"`
	dryRun    bool

	mu   sync.Mutex
	docs map[string]document
}

// NewSearch creates the plugin. The index is written to indexPath,
// by default search.bleve in the output directory.
func NewSearch(options map[string]interface{}, app *pages.App) (Plugin, error) {
	s := &Search{docs: map[string]document{}}
	if err := decode(options, s); err != nil {
		return nil, err
	}
	if app != nil {
		s.dryRun = app.DryRun
		if s.IndexPath == "" {
			s.IndexPath = filepath.Join(app.Dest, DefaultIndexName)
		} else if !filepath.IsAbs(s.IndexPath) {
			s.IndexPath = filepath.Join(app.Dest, s.IndexPath)
		}
	}
	if s.IndexPath == "" {
		s.IndexPath = DefaultIndexName
	}
	return s, nil
}

func (s *Search) Name() string {
	return SearchName
}

// ExtendPageData collects the page and its headers for indexing
func (s *Search) ExtendPageData(page *pages.Page, _ *pages.App) (pages.PageData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[page.Route] = document{Kind: "page", Title: page.Title, Page: page.Title, Route: page.Route}
	headers.Walk(page.Headers, func(h *headers.PageHeader) {
		route := page.Route + "#" + h.Slug
		s.docs[route] = document{Kind: "header", Title: h.Title, Page: page.Title, Route: route}
	})
	return nil, nil
}

// Finalize writes the collected documents into a fresh index
func (s *Search) Finalize(_ context.Context, _ writers.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dryRun {
		klog.Infof("dry run: skipping search index %s with %d documents", s.IndexPath, len(s.docs))
		return nil
	}
	if err := os.RemoveAll(s.IndexPath); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.IndexPath), os.ModePerm); err != nil {
		return err
	}
	index, err := bleve.New(s.IndexPath, bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to create search index %s: %w", s.IndexPath, err)
	}
	defer index.Close()
	batch := index.NewBatch()
	for id, doc := range s.docs {
		if err = batch.Index(id, doc); err != nil {
			return err
		}
	}
	if err = index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index %d documents: %w", len(s.docs), err)
	}
	klog.V(2).Infof("indexed %d documents into %s", len(s.docs), s.IndexPath)
	return nil
}

// Hit is a search result
type Hit struct {
	Route string  `json:"route"`
	Title string  `json:"title"`
	Page  string  `json:"page"`
	Kind  string  `json:"kind"`
	Score float64 `json:"score"`
}

// Query searches the index at indexPath and returns at most size hits,
// best first
func Query(indexPath, query string, size int) ([]Hit, error) {
	index, err := bleve.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open search index %s: %w", indexPath, err)
	}
	defer index.Close()
	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), size, 0, false)
	req.Fields = []string{"kind", "title", "page", "route"}
	res, err := index.Search(req)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{Route: h.ID, Score: h.Score}
		hit.Title, _ = h.Fields["title"].(string)
		hit.Page, _ = h.Fields["page"].(string)
		hit.Kind, _ = h.Fields["kind"].(string)
		hits = append(hits, hit)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits, nil
}
