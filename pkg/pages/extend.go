// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"fmt"

	"github.com/sierrasoftworks/docsite/pkg/headers"
)

// HeadersKey is the page data key that replaces the page headers
const HeadersKey = "headers"

// Extender contributes additional data to every page
type Extender interface {
	// ExtendPageData returns the data merged into page
	ExtendPageData(page *Page, app *App) (PageData, error)
}

// The ExtenderFunc type is an adapter to allow the use of
// ordinary functions as Extenders.
type ExtenderFunc func(page *Page, app *App) (PageData, error)

// ExtendPageData calls f(page, app).
func (f ExtenderFunc) ExtendPageData(page *Page, app *App) (PageData, error) {
	return f(page, app)
}

// HeaderDecoder decodes the HTML entities the page parser leaves in
// header titles
type HeaderDecoder struct{}

// ExtendPageData returns the normalized headers of page
func (HeaderDecoder) ExtendPageData(page *Page, _ *App) (PageData, error) {
	return PageData{HeadersKey: headers.NormalizeAll(page.Headers)}, nil
}

// Extend runs the extenders on page in order and merges their data
func Extend(page *Page, app *App, extenders ...Extender) error {
	for _, e := range extenders {
		data, err := e.ExtendPageData(page, app)
		if err != nil {
			return fmt.Errorf("extending page %s: %w", page.RelativePath, err)
		}
		if err = page.Merge(data); err != nil {
			return err
		}
	}
	return nil
}

// Merge copies data into the page. The headers key replaces the page
// headers, every other key is stored in Data.
func (p *Page) Merge(data PageData) error {
	for k, v := range data {
		if k == HeadersKey {
			hs, ok := v.([]*headers.PageHeader)
			if !ok {
				return fmt.Errorf("page %s: %s must be []*headers.PageHeader, got %T", p.RelativePath, HeadersKey, v)
			}
			p.Headers = hs
			continue
		}
		if p.Data == nil {
			p.Data = PageData{}
		}
		p.Data[k] = v
	}
	return nil
}
