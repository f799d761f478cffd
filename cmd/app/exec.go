// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sierrasoftworks/docsite/pkg/build"
	"github.com/sierrasoftworks/docsite/pkg/plugins"
	"github.com/sierrasoftworks/docsite/pkg/repohost"
	"github.com/sierrasoftworks/docsite/pkg/site"
	"github.com/sierrasoftworks/docsite/pkg/writers"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

// configDir is the directory of the source tree holding the site
// configuration and the default output
const configDir = ".vuepress"

var configFileNames = []string{"config.yaml", "config.yml"}

func getOptions(vip *viper.Viper) (*options, error) {
	o := &options{}
	if err := vip.Unmarshal(o); err != nil {
		return nil, err
	}
	if o.SourceDir == "" {
		return nil, errors.New("source directory must be set")
	}
	if o.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	}
	if o.DestinationPath == "" {
		o.DestinationPath = filepath.Join(o.SourceDir, configDir, "dist")
	}
	if o.ConfigPath == "" {
		o.ConfigPath = findConfig(o.SourceDir)
	}
	return o, nil
}

// findConfig returns the site configuration file of the source tree,
// or an empty path when there is none
func findConfig(sourceDir string) string {
	for _, name := range configFileNames {
		p := filepath.Join(sourceDir, configDir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// newBuilder wires the builder for o. The returned flush prints the
// dry run report and is a no-op otherwise.
func newBuilder(ctx context.Context, o *options, out io.Writer) (*build.Builder, func() error, error) {
	klog.Infof("Source: %s", o.SourceDir)
	if o.ConfigPath != "" {
		klog.Infof("Site configuration: %s", o.ConfigPath)
	}
	klog.Infof("Output dir: %s", o.DestinationPath)
	cfg, err := site.Load(o.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	b := &build.Builder{
		Site:        cfg,
		SourceDir:   o.SourceDir,
		Destination: o.DestinationPath,
		Workers:     o.Workers,
		FailFast:    o.FailFast,
		DryRun:      o.DryRun,
		Registry:    plugins.NewRegistry(),
	}
	flush := func() error { return nil }
	if o.DryRun {
		dryRunWriters := writers.NewDryRunWritersFactory(out)
		b.Writer = dryRunWriters.GetWriter(o.DestinationPath, "")
		b.PagesWriter = dryRunWriters.GetWriter(filepath.Join(o.DestinationPath, build.PagesDir), "json")
		flush = dryRunWriters.Flush
	} else {
		b.Writer = &writers.FSWriter{Root: o.DestinationPath}
		b.PagesWriter = &writers.FSWriter{Root: filepath.Join(o.DestinationPath, build.PagesDir), Ext: "json"}
	}
	if o.ResolveDocsBranch {
		gh, err := repohost.NewGitHub(ctx, repohost.Options{
			Token:             o.GitHubToken,
			CacheDir:          o.CacheDir,
			APIURL:            o.GitHubAPIURL,
			RequestsPerSecond: o.GitHubRateLimit,
		})
		if err != nil {
			return nil, nil, err
		}
		b.Branches = gh
	}
	return b, flush, nil
}

func runBuild(ctx context.Context, o *options, out io.Writer) (*build.Result, error) {
	b, flush, err := newBuilder(ctx, o, out)
	if err != nil {
		return nil, err
	}
	res, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err = flush(); err != nil {
		return nil, err
	}
	return res, nil
}
