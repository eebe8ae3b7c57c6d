package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DefaultUserAgent is the browser identification sent with every request.
// The conference site serves its listing to browser agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultListingURL is the accepted-papers page; %s is replaced by the year.
const DefaultListingURL = "https://www.ndss-symposium.org/ndss%s/accepted-papers/"

// IndexFileName is the base name of the summary index, without extension.
const IndexFileName = "paper_list"

// ErrInvalidYear is returned by CrawlConfig.Validate for a year that is not
// four digits.
var ErrInvalidYear = errors.New("year must be four digits")

// IndexFormat selects the summary index encoding.
type IndexFormat string

const (
	IndexCSV  IndexFormat = "csv"
	IndexYAML IndexFormat = "yaml"
)

// HTTPConfig holds HTTP settings used by every request the crawler makes.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CrawlConfig holds settings for one crawl of a conference year.
type CrawlConfig struct {
	HTTPConfig `yaml:",inline"`

	// Year is the conference year, e.g. "2024".
	Year string `json:"year" yaml:"year"`

	// OutputDir is the root under which ndss<year>/ is created.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ListingURL is a format string for the accepted-papers page; %s is the year.
	ListingURL string `json:"listing_url" yaml:"listing_url"`

	// IndexFormat selects csv (default) or yaml for the summary index.
	IndexFormat IndexFormat `json:"index_format" yaml:"index_format"`

	// IndexPath overrides the summary index location.
	IndexPath string `json:"index_path,omitempty" yaml:"index_path,omitempty"`
}

// Validate checks the year and fills empty fields with defaults.
func (c *CrawlConfig) Validate() error {
	c.Year = strings.TrimSpace(c.Year)
	if len(c.Year) != 4 || strings.Trim(c.Year, "0123456789") != "" {
		return fmt.Errorf("%w: %q", ErrInvalidYear, c.Year)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.ListingURL == "" {
		c.ListingURL = DefaultListingURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	switch c.IndexFormat {
	case "":
		c.IndexFormat = IndexCSV
	case IndexCSV, IndexYAML:
	default:
		return fmt.Errorf("unknown index format %q", c.IndexFormat)
	}
	return nil
}

// YearDir returns <output>/ndss<year>.
func (c CrawlConfig) YearDir() string {
	return filepath.Join(c.OutputDir, "ndss"+c.Year)
}

// ArtifactDir returns the directory holding artifacts of the given kind.
func (c CrawlConfig) ArtifactDir(kind ArtifactKind) string {
	return filepath.Join(c.YearDir(), kind.Dir())
}

// ResolvedIndexPath returns IndexPath if set, else <year dir>/paper_list.<format>.
func (c CrawlConfig) ResolvedIndexPath() string {
	if c.IndexPath != "" {
		return c.IndexPath
	}
	return filepath.Join(c.YearDir(), IndexFileName+"."+string(c.IndexFormat))
}

// ListingPageURL returns the listing URL for the configured year.
func (c CrawlConfig) ListingPageURL() string {
	if !strings.Contains(c.ListingURL, "%s") {
		return c.ListingURL
	}
	return fmt.Sprintf(c.ListingURL, c.Year)
}
