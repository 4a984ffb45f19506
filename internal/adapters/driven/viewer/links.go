// Package viewer builds deep links into the hosted PDF viewer.
package viewer

import (
	"fmt"
	"net/url"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
)

// Ensure LinkBuilder implements the interface.
var _ driven.LinkBuilder = (*LinkBuilder)(nil)

// LinkBuilder renders manual page links for a viewer and manual URL pair.
type LinkBuilder struct {
	viewerURL string
	manualURL string
}

// NewLinkBuilder creates a link builder from viewer settings.
// Empty URLs fall back to the defaults.
func NewLinkBuilder(settings domain.ViewerSettings) *LinkBuilder {
	defaults := domain.DefaultAppSettings().Viewer
	if settings.URL == "" {
		settings.URL = defaults.URL
	}
	if settings.ManualURL == "" {
		settings.ManualURL = defaults.ManualURL
	}
	return &LinkBuilder{viewerURL: settings.URL, manualURL: settings.ManualURL}
}

// ManualLink returns <viewer>?file=<escaped manual>#page=N.
// Pages below 1 link to page 1.
func (b *LinkBuilder) ManualLink(page int) string {
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("%s?file=%s#page=%d", b.viewerURL, url.QueryEscape(b.manualURL), page)
}
