// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package repohost

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v43/github"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/peterbourgon/diskv"
	"github.com/sierrasoftworks/docsite/pkg/metrics"
	"github.com/sierrasoftworks/docsite/pkg/util/units"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"k8s.io/klog/v2"
)

// Options configure the GitHub client
type Options struct {
	// Token is an optional OAuth token
	Token string
	// CacheDir enables a disk backed HTTP cache when set
	CacheDir string
	// APIURL overrides the GitHub API endpoint
	APIURL string
	// RequestsPerSecond throttles API requests, unlimited when zero
	RequestsPerSecond float64
}

// GitHub resolves repository attributes through the GitHub API
type GitHub struct {
	client *github.Client
}

// NewGitHub creates a GitHub client authenticated with the optional token.
// Responses are cached and requests are instrumented.
func NewGitHub(ctx context.Context, o Options) (*GitHub, error) {
	var base http.RoundTripper = metrics.InstrumentRoundTripper(http.DefaultTransport)
	if o.RequestsPerSecond > 0 {
		base = WithClientRateLimit(base, rate.NewLimiter(rate.Limit(o.RequestsPerSecond), 1))
	}
	base = WithClientHTTPLogging(base)
	if len(o.Token) > 0 {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.Token})
		base = &oauth2.Transport{Source: ts, Base: base}
	}

	var cache httpcache.Cache = httpcache.NewMemoryCache()
	if o.CacheDir != "" {
		flatTransform := func(s string) []string { return []string{} }
		d := diskv.New(diskv.Options{
			BasePath:     filepath.Join(o.CacheDir, "diskv", "github"),
			Transform:    flatTransform,
			CacheSizeMax: units.GB,
		})
		cache = diskcache.NewWithDiskv(d)
	}
	cacheTransport := &httpcache.Transport{
		Transport:           base,
		Cache:               cache,
		MarkCachedResponses: true,
	}
	client := github.NewClient(cacheTransport.Client())
	if o.APIURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %s: %w", o.APIURL, err)
		}
		client.BaseURL = u
	}
	return &GitHub{client: client}, nil
}

// DefaultBranch returns the default branch of repo
func (g *GitHub) DefaultBranch(ctx context.Context, repo string) (string, error) {
	owner, name, err := ParseRepo(repo)
	if err != nil {
		return "", err
	}
	r, resp, err := g.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", fmt.Errorf("failed to get repository %s/%s: %w", owner, name, err)
	}
	if resp != nil && resp.Header.Get(httpcache.XFromCache) != "" {
		klog.V(6).Infof("repository %s/%s served from cache", owner, name)
	}
	branch := r.GetDefaultBranch()
	if branch == "" {
		return "", fmt.Errorf("repository %s/%s has no default branch", owner, name)
	}
	return branch, nil
}

// ParseRepo splits owner/name or a github.com repository URL into its
// owner and name
func ParseRepo(repo string) (string, string, error) {
	s := strings.TrimSpace(repo)
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", "", fmt.Errorf("invalid repository %q: %w", repo, err)
		}
		if u.Host != "github.com" && u.Host != "www.github.com" {
			return "", "", fmt.Errorf("repository %q is not hosted on github.com", repo)
		}
		s = u.Path
	}
	s = strings.TrimSuffix(strings.Trim(s, "/"), ".git")
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}
	return parts[0], parts[1], nil
}
