package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ndss-spider/internal/acquire"
	"github.com/pdiddy/ndss-spider/internal/httputil"
	"github.com/pdiddy/ndss-spider/pkg/types"
)

const yearPrompt = "Please input the year you want to crawl: "

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Download a year's accepted papers, slides, and paper list",
	Long: `Crawl fetches the accepted-papers page for one NDSS year, visits every
paper's detail page, and saves paper PDFs under ndss<year>/papers/ and slide
decks under ndss<year>/slides/. A paper_list index is written when the crawl
finishes.

When no year is given by flag, config file, or NDSS_SPIDER_YEAR, the year is
read from standard input.`,
	Args: cobra.NoArgs,
	RunE: runCrawl,
}

func init() {
	f := crawlCmd.Flags()
	f.String("year", "", "conference year, e.g. 2024 (prompted for when empty)")
	f.String("output-dir", ".", "root directory under which ndss<year>/ is created")
	f.String("listing-url", types.DefaultListingURL, "accepted-papers URL; %s is replaced by the year")
	f.String("user-agent", types.DefaultUserAgent, "User-Agent header sent with every request")
	f.Duration("timeout", 0, "HTTP request timeout (default none)")
	f.String("index-format", string(types.IndexCSV), "paper list format: csv or yaml")
	f.String("index-path", "", "paper list path (default ndss<year>/paper_list.<format>)")

	for key, flag := range map[string]string{
		"year":         "year",
		"output_dir":   "output-dir",
		"listing_url":  "listing-url",
		"user_agent":   "user-agent",
		"timeout":      "timeout",
		"index_format": "index-format",
		"index_path":   "index-path",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg := crawlConfig(viper.GetViper())
	if cfg.Year == "" {
		year, err := promptYear(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		cfg.Year = year
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := httputil.NewClient(cfg.HTTPConfig)
	crawler := acquire.NewCrawler(cfg, client, cmd.OutOrStdout(), log)

	_, err := crawler.Run(cmd.Context())
	return err
}

// crawlConfig assembles a CrawlConfig from flags, config file and environment.
func crawlConfig(v *viper.Viper) types.CrawlConfig {
	return types.CrawlConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration("timeout"),
			UserAgent: v.GetString("user_agent"),
		},
		Year:        v.GetString("year"),
		OutputDir:   v.GetString("output_dir"),
		ListingURL:  v.GetString("listing_url"),
		IndexFormat: types.IndexFormat(strings.ToLower(v.GetString("index_format"))),
		IndexPath:   v.GetString("index_path"),
	}
}

// promptYear asks for the year on w and reads one line from r.
func promptYear(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, yearPrompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading year: %w", err)
	}
	year := strings.TrimSpace(line)
	if year == "" {
		return "", fmt.Errorf("no year given")
	}
	return year, nil
}
