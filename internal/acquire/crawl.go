// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire crawls a conference year's accepted papers and downloads
// their PDFs and slide decks.
//
// A crawl is strictly sequential: create the output directories, fetch and
// parse the listing, then for each paper fetch its detail page and download
// each artifact, and finally write the summary index. A failure on one paper
// is logged and the crawl moves on to the next.
package acquire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/ndss-spider/internal/detail"
	"github.com/pdiddy/ndss-spider/internal/httputil"
	"github.com/pdiddy/ndss-spider/internal/index"
	"github.com/pdiddy/ndss-spider/internal/listing"
	"github.com/pdiddy/ndss-spider/pkg/types"
)

// CrawlResult summarizes one crawl.
type CrawlResult struct {
	// Papers is every paper collected from the listing, with titles
	// updated from detail pages.
	Papers []types.Paper

	// Downloaded, Skipped and Failed count artifact downloads.
	Downloaded int
	Skipped    int
	Failed     int

	// IndexPath is where the summary index was written, empty if writing failed.
	IndexPath string
}

// Total returns the number of artifacts attempted.
func (r CrawlResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any artifact failed to download.
func (r CrawlResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *CrawlResult) record(o Outcome) {
	switch o {
	case OutcomeDownloaded:
		r.Downloaded++
	case OutcomeSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
}

// Crawler runs one crawl for the year in its configuration.
type Crawler struct {
	cfg        types.CrawlConfig
	client     *http.Client
	out        io.Writer
	log        *zap.Logger
	downloader *Downloader
}

// NewCrawler returns a Crawler. cfg must already be validated. Progress
// lines go to out and diagnostics to log; a nil log discards them.
func NewCrawler(cfg types.CrawlConfig, client *http.Client, out io.Writer, log *zap.Logger) *Crawler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Crawler{
		cfg:    cfg,
		client: client,
		out:    out,
		log:    log,
		downloader: &Downloader{
			Client:    client,
			UserAgent: cfg.UserAgent,
			Out:       out,
			Log:       log,
		},
	}
}

// Run performs the crawl. Only a failure to create the output directories
// or a cancelled context is returned as an error; in the latter case the
// index is still written for the papers collected so far.
func (c *Crawler) Run(ctx context.Context) (CrawlResult, error) {
	var result CrawlResult

	fmt.Fprintln(c.out, "Creating directories...")
	if err := c.createDirs(); err != nil {
		return result, err
	}

	fmt.Fprintln(c.out, "Getting paper list...")
	result.Papers = c.fetchListing(ctx)

	fmt.Fprintf(c.out, "Found %d papers\n", len(result.Papers))
	for i := range result.Papers {
		if ctx.Err() != nil {
			break
		}
		p := &result.Papers[i]
		fmt.Fprintf(c.out, "\nProcessing %d/%d: %s\n", i+1, len(result.Papers), p.Title)
		c.processPaper(ctx, p, &result)
	}

	runErr := ctx.Err()

	// Written after the loop so detail-page titles are included.
	result.IndexPath = c.writeIndex(result.Papers)

	fmt.Fprintf(c.out, "\nDownload summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	if runErr == nil {
		fmt.Fprintln(c.out, "\nSpider completed!")
	}
	return result, runErr
}

func (c *Crawler) createDirs() error {
	for _, dir := range []string{
		c.cfg.OutputDir,
		c.cfg.ArtifactDir(types.ArtifactPaper),
		c.cfg.ArtifactDir(types.ArtifactSlides),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// fetchListing returns the papers on the listing page. Fetch and parse
// problems are logged and produce an empty list.
func (c *Crawler) fetchListing(ctx context.Context) []types.Paper {
	pageURL := c.cfg.ListingPageURL()

	status, body, err := httputil.Get(ctx, c.client, pageURL, c.cfg.UserAgent)
	if err != nil {
		c.log.Error("fetching listing failed", zap.String("url", pageURL), zap.Error(err))
		return nil
	}
	fmt.Fprintf(c.out, "Response status code: %d\n", status)
	if status != http.StatusOK {
		c.log.Warn("listing returned non-200 status", zap.String("url", pageURL), zap.Int("status", status))
	}

	base, _ := url.Parse(pageURL)
	papers, err := listing.Parse(bytes.NewReader(body), base)
	if err != nil {
		c.log.Error("parsing listing failed", zap.String("url", pageURL), zap.Error(err))
		return nil
	}
	if len(papers) == 0 {
		c.log.Warn("could not find any papers", zap.String("url", pageURL))
		return nil
	}

	for _, p := range papers {
		fmt.Fprintf(c.out, "Found paper: %s (%s)\n", p.Title, p.Cycle)
	}
	counts := listing.CountByCycle(papers)
	fmt.Fprintf(c.out, "\nTotal papers collected: %d\n", len(papers))
	fmt.Fprintf(c.out, "Summer Cycle: %d\n", counts[types.CycleSummer])
	fmt.Fprintf(c.out, "Fall Cycle: %d\n", counts[types.CycleFall])
	return papers
}

// processPaper fetches p's detail page, updates its title and downloads
// its artifacts. Every failure is logged and leaves the crawl running.
func (c *Crawler) processPaper(ctx context.Context, p *types.Paper, result *CrawlResult) {
	log := c.log.With(zap.String("title", p.Title), zap.String("url", p.DetailsURL))
	if p.DetailsURL == "" {
		log.Warn("paper has no details link")
		return
	}

	status, body, err := httputil.Get(ctx, c.client, p.DetailsURL, c.cfg.UserAgent)
	if err != nil {
		log.Warn("fetching details failed", zap.Error(err))
		return
	}
	if status != http.StatusOK {
		log.Warn("details returned non-200 status", zap.Int("status", status))
		return
	}

	base, _ := url.Parse(p.DetailsURL)
	page, err := detail.Parse(bytes.NewReader(body), base, p.Title)
	if err != nil && !errors.Is(err, detail.ErrNoButtons) {
		log.Warn("parsing details failed", zap.Error(err))
		return
	}
	p.Title = page.Title
	if err != nil {
		log.Warn("no download buttons found")
		return
	}

	stem := SanitizeFilename(p.Title)
	if stem == "" {
		log.Warn("title sanitizes to an empty filename")
		return
	}

	downloaded := false
	for _, a := range page.Artifacts {
		dest := filepath.Join(c.cfg.ArtifactDir(a.Kind), stem+".pdf")
		outcome := c.downloader.Fetch(ctx, a.URL, dest)
		result.record(outcome)
		if outcome != OutcomeFailed {
			downloaded = true
			fmt.Fprintf(c.out, "%s processed: %s\n", a.Kind.Label(), p.Title)
		}
	}
	if !downloaded {
		fmt.Fprintf(c.out, "No new files downloaded for: %s\n", p.Title)
	}
}

// writeIndex writes the summary index and returns its path, or "" on failure.
func (c *Crawler) writeIndex(papers []types.Paper) string {
	path := c.cfg.ResolvedIndexPath()

	if _, dropped := index.Rows(papers); dropped > 0 {
		c.log.Warn("papers without a title left out of the index", zap.Int("count", dropped))
	}
	if err := index.Write(papers, path, c.cfg.IndexFormat); err != nil {
		c.log.Error("saving paper list failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	fmt.Fprintf(c.out, "\nPaper list saved to: %s\n", path)
	return path
}
