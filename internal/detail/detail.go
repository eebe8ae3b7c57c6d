// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detail extracts the canonical title and artifact links from a
// paper's detail page.
package detail

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/ndss-spider/internal/listing"
	"github.com/pdiddy/ndss-spider/pkg/types"
)

const (
	titleSelector       = "h1.entry-title"
	buttonsSelector     = "div.paper-buttons"
	buttonGroupSelector = "div.btn-group-vertical"
	buttonSelector      = "a.btn"

	paperLabel  = "Paper"
	slidesLabel = "Slides"
)

// ErrNoButtons reports a detail page without a download-buttons region.
// The paper simply has nothing to download.
var ErrNoButtons = errors.New("no download buttons found")

// Page is the parsed content of one detail page.
type Page struct {
	// Title is the canonical title, or the fallback when the page has none.
	Title string

	// Artifacts lists the paper and slide links in page order.
	Artifacts []types.Artifact
}

// Parse reads detail-page markup. The title comes from h1.entry-title, else
// fallbackTitle when the heading is missing or blank. When the page has no
// div.paper-buttons, Parse returns the page (with its title) together with
// ErrNoButtons.
//
// Inside the buttons region each div.btn-group-vertical contributes at most
// one artifact: its first a.btn is a paper link if the text contains "Paper",
// a slides link if it contains "Slides", and is ignored otherwise.
func Parse(r io.Reader, base *url.URL, fallbackTitle string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	page := Page{Title: fallbackTitle}
	if title := strings.TrimSpace(doc.Find(titleSelector).First().Text()); title != "" {
		page.Title = title
	}

	buttons := doc.Find(buttonsSelector).First()
	if buttons.Length() == 0 {
		return page, ErrNoButtons
	}

	buttons.Find(buttonGroupSelector).Each(func(_ int, group *goquery.Selection) {
		link := group.Find(buttonSelector).First()
		if link.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		kind, ok := classify(link.Text())
		if !ok {
			return
		}
		page.Artifacts = append(page.Artifacts, types.Artifact{
			Kind: kind,
			URL:  listing.ResolveURL(base, href),
		})
	})
	return page, nil
}

// classify maps a button label to an artifact kind. "Paper" is checked first.
func classify(label string) (types.ArtifactKind, bool) {
	switch {
	case strings.Contains(label, paperLabel):
		return types.ArtifactPaper, true
	case strings.Contains(label, slidesLabel):
		return types.ArtifactSlides, true
	default:
		return "", false
	}
}
