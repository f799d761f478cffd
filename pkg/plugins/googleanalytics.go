// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package plugins

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/sierrasoftworks/docsite/pkg/head"
	"github.com/sierrasoftworks/docsite/pkg/pages"
)

// GoogleAnalyticsName identifies the Google Analytics plugin
const GoogleAnalyticsName = "plugin-google-analytics"

const gtagURL = "https://www.googletagmanager.com/gtag/js"

// GoogleAnalytics injects the gtag.js tracking snippet
type GoogleAnalytics struct {
	ID string `mapstructure:"id"`
}

// NewGoogleAnalytics creates the plugin, the id option is required
func NewGoogleAnalytics(options map[string]interface{}, _ *pages.App) (Plugin, error) {
	ga := &GoogleAnalytics{}
	if err := decode(options, ga); err != nil {
		return nil, err
	}
	if ga.ID == "" {
		return nil, errors.New("missing required option id")
	}
	return ga, nil
}

func (ga *GoogleAnalytics) Name() string {
	return GoogleAnalyticsName
}

// ExtendHead appends the gtag.js loader and its configuration
func (ga *GoogleAnalytics) ExtendHead(tags []head.Tag) []head.Tag {
	src := gtagURL + "?id=" + url.QueryEscape(ga.ID)
	// JSON string literals are valid JS and have <, > and & escaped
	id, _ := json.Marshal(ga.ID)
	config := fmt.Sprintf("window.dataLayer = window.dataLayer || [];\n"+
		"function gtag(){dataLayer.push(arguments);}\n"+
		"gtag('js', new Date());\n"+
		"gtag('config', %s);", id)
	return append(tags,
		head.New("script", "async", "", "src", src),
		head.New("script").WithContent(config),
	)
}
