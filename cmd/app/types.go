// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

// DocsiteHomeDir is the directory under the user home holding the cache
const DocsiteHomeDir = ".docsite"

// options are the build parameters gathered from flags, the environment
// and the env file
type options struct {
	ConfigPath        string  `mapstructure:"config"`
	SourceDir         string  `mapstructure:"source"`
	DestinationPath   string  `mapstructure:"destination"`
	Workers           int     `mapstructure:"workers"`
	FailFast          bool    `mapstructure:"fail-fast"`
	DryRun            bool    `mapstructure:"dry-run"`
	ResolveDocsBranch bool    `mapstructure:"resolve-docs-branch"`
	GitHubToken       string  `mapstructure:"github-oauth-token"`
	GitHubAPIURL      string  `mapstructure:"github-api-url"`
	GitHubRateLimit   float64 `mapstructure:"github-rate-limit"`
	CacheDir          string  `mapstructure:"cache-dir"`
}
