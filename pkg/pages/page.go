// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"time"

	"github.com/sierrasoftworks/docsite/pkg/gitinfo"
	"github.com/sierrasoftworks/docsite/pkg/headers"
	"github.com/sierrasoftworks/docsite/pkg/site"
)

// Page is the data of one markdown page handed to the host framework
type Page struct {
	// Key identifies the page and names its data file
	Key string `json:"key"`
	// Path is the file system path of the page source
	Path string `json:"-"`
	// RelativePath is the slash separated source path inside the docs directory
	RelativePath string `json:"relativePath"`
	// Route is the URL path the page is served at
	Route string `json:"path"`
	// Title is the frontmatter title, the first H1 or the file name
	Title string `json:"title"`
	// Frontmatter is the decoded YAML frontmatter
	Frontmatter map[string]interface{} `json:"frontmatter"`
	// Headers are the extracted header trees
	Headers []*headers.PageHeader `json:"headers"`
	// Sidebar is the sidebar key the page belongs to, if any
	Sidebar string `json:"sidebar,omitempty"`
	// EditLink is the URL to edit the page in its repository
	EditLink string `json:"editLink,omitempty"`
	// LastUpdated is the time of the latest commit touching the page
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	// Contributors are the commit authors of the page
	Contributors []gitinfo.Contributor `json:"contributors,omitempty"`
	// Data holds the values contributed by extenders
	Data PageData `json:"data,omitempty"`
}

// PageData is the extra data an extender attaches to a page
type PageData map[string]interface{}

// App is the build wide context passed to extenders
type App struct {
	// Site is the resolved site configuration
	Site *site.Config
	// SourceDir is the site source directory
	SourceDir string
	// DocsDir is the directory the markdown pages are read from
	DocsDir string
	// Dest is the output directory
	Dest string
	// DryRun is set when nothing may be written to disk
	DryRun bool
}
