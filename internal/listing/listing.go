// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing extracts paper records from the accepted-papers page.
//
// The page groups papers under h2 section headings ("Summer Cycle",
// "Fall Cycle"); each paper is a div.tag-box holding a title heading, an
// author paragraph and a link to the paper's detail page. All selectors for
// the listing markup live in this file.
package listing

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/ndss-spider/pkg/types"
)

const (
	paperBoxSelector    = "div.tag-box"
	relPaperBoxSelector = "div.tag-box.rel-paper"
	sectionSelector     = "h2"
	titleSelector       = "h3.blog-post-title"
	authorsSelector     = "p"
	detailsLinkSelector = "a.paper-link-abs"
)

// Parse reads listing markup and returns one Paper per paper box, in
// document order. Records are accepted as-is: a box missing its title,
// authors or link still yields a Paper with that field empty. The cycle is
// taken from the nearest h2 preceding the box and is always set.
//
// Relative detail links are resolved against base when base is non-nil.
// A page without paper boxes yields an empty slice and no error.
func Parse(r io.Reader, base *url.URL) ([]types.Paper, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var papers []types.Paper
	heading := ""
	// A selector group matches in document order, so the last h2 seen is
	// the one preceding the current box.
	doc.Find(sectionSelector + ", " + paperBoxSelector).Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == sectionSelector {
			heading = s.Text()
			return
		}
		papers = append(papers, extractPaper(s, base, heading))
	})
	return papers, nil
}

// Titles returns the titles of related-paper boxes (div.tag-box.rel-paper).
// Boxes without a title heading are skipped.
func Titles(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var titles []string
	doc.Find(relPaperBoxSelector).Each(func(_ int, s *goquery.Selection) {
		title := s.Find(titleSelector).First()
		if title.Length() == 0 {
			return
		}
		titles = append(titles, strings.TrimSpace(title.Text()))
	})
	return titles, nil
}

// CountByCycle tallies papers per cycle.
func CountByCycle(papers []types.Paper) map[types.Cycle]int {
	counts := make(map[types.Cycle]int, 3)
	for _, p := range papers {
		counts[p.Cycle]++
	}
	return counts
}

func extractPaper(box *goquery.Selection, base *url.URL, heading string) types.Paper {
	p := types.Paper{Cycle: types.CycleFromHeading(heading)}

	if title := box.Find(titleSelector).First(); title.Length() > 0 {
		p.Title = strings.TrimSpace(title.Text())
	}
	if authors := box.Find(authorsSelector).First(); authors.Length() > 0 {
		p.Authors = strings.TrimSpace(authors.Text())
	}
	if href, ok := box.Find(detailsLinkSelector).First().Attr("href"); ok {
		p.DetailsURL = ResolveURL(base, href)
	}
	return p
}

// ResolveURL resolves href against base. The trimmed href is returned
// unchanged when base is nil or href does not parse.
func ResolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if base == nil || href == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
