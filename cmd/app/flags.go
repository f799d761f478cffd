// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configureFlags registers the build flags on the root command so the
// build and dev subcommands share them
func configureFlags(command *cobra.Command, vip *viper.Viper) {
	flags := command.PersistentFlags()

	flags.String("env-file", ".env",
		"File with DOCSITE_ prefixed variables used as defaults for the flags. Ignored when missing.")
	_ = vip.BindPFlag("env-file", flags.Lookup("env-file"))

	flags.StringP("config", "c", "",
		"Site configuration file. Defaults to .vuepress/config.yaml in the source directory, or the built-in configuration.")
	_ = vip.BindPFlag("config", flags.Lookup("config"))

	flags.StringP("source", "s", "docs",
		"Directory holding the markdown pages.")
	_ = vip.BindPFlag("source", flags.Lookup("source"))

	flags.StringP("destination", "d", "",
		"Destination path. Defaults to .vuepress/dist in the source directory.")
	_ = vip.BindPFlag("destination", flags.Lookup("destination"))

	flags.Int("workers", 10,
		"Number of parallel workers for page processing.")
	_ = vip.BindPFlag("workers", flags.Lookup("workers"))

	flags.Bool("fail-fast", false,
		"Fail-fast vs fault tolerant operation.")
	_ = vip.BindPFlag("fail-fast", flags.Lookup("fail-fast"))

	flags.Bool("dry-run", false,
		"Runs the build end-to-end but instead of writing files, it outputs the projected file hierarchy to the standard output.")
	_ = vip.BindPFlag("dry-run", flags.Lookup("dry-run"))

	flags.Bool("resolve-docs-branch", false,
		"Look up the default branch of the repository on GitHub for edit links when the configuration does not name one.")
	_ = vip.BindPFlag("resolve-docs-branch", flags.Lookup("resolve-docs-branch"))

	flags.String("github-oauth-token", "",
		"GitHub personal token authorizing read access to the repository metadata.")
	_ = vip.BindPFlag("github-oauth-token", flags.Lookup("github-oauth-token"))

	flags.String("github-api-url", "",
		"GitHub API endpoint, for GitHub Enterprise instances.")
	_ = vip.BindPFlag("github-api-url", flags.Lookup("github-api-url"))

	flags.Float64("github-rate-limit", 0,
		"Maximum GitHub API requests per second, unlimited when 0.")
	_ = vip.BindPFlag("github-rate-limit", flags.Lookup("github-rate-limit"))

	cacheDir := ""
	if userHomeDir, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(userHomeDir, DocsiteHomeDir, "cache")
	}
	flags.String("cache-dir", cacheDir,
		"Cache directory, used for GitHub API responses.")
	_ = vip.BindPFlag("cache-dir", flags.Lookup("cache-dir"))
}
