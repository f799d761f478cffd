// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package link

import (
	"fmt"
	"net/url"
	"strings"
)

// Build joins link elements, dropping empty ones and collapsing
// repeated slashes. Spaces are escaped, other characters are kept.
func Build(elem ...string) (string, error) {
	if len(elem) == 0 {
		return "", nil
	}
	joined, err := url.JoinPath(elem[0], elem[1:]...)
	if err != nil {
		return "", fmt.Errorf("failed to join paths: %w", err)
	}
	unescaped, err := url.PathUnescape(joined)
	if err != nil {
		return "", fmt.Errorf("failed to unescape joint path: %w", err)
	}
	return strings.ReplaceAll(unescaped, " ", "%20"), nil
}

// StripFragment returns link without its #fragment
func StripFragment(link string) string {
	if i := strings.IndexByte(link, '#'); i >= 0 {
		return link[:i]
	}
	return link
}
