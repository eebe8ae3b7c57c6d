package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ndss-spider/internal/httputil"
	"github.com/pdiddy/ndss-spider/internal/listing"
	"github.com/pdiddy/ndss-spider/pkg/types"
)

var titlesCmd = &cobra.Command{
	Use:   "titles <file-or-url>",
	Short: "List paper titles from a saved or live accepted-papers page",
	Long: `Titles prints the title of every paper box on an accepted-papers page, one
per line. The page may be a local HTML file or an http(s) URL. Nothing is
downloaded beyond the page itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runTitles,
}

func init() {
	rootCmd.AddCommand(titlesCmd)
}

func runTitles(cmd *cobra.Command, args []string) error {
	body, err := readPage(cmd, args[0])
	if err != nil {
		return err
	}

	titles, err := listing.Titles(bytes.NewReader(body))
	if err != nil {
		return err
	}
	if len(titles) == 0 {
		log.Warn("no paper titles found", zap.String("source", args[0]))
	}
	for _, t := range titles {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}

// readPage returns the contents of a local file or an http(s) URL. URLs are
// fetched with the configured timeout and User-Agent.
func readPage(cmd *cobra.Command, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	httpCfg := crawlConfig(viper.GetViper()).HTTPConfig
	if httpCfg.UserAgent == "" {
		httpCfg.UserAgent = types.DefaultUserAgent
	}
	client := httputil.NewClient(httpCfg)
	status, body, err := httputil.Get(cmd.Context(), client, src, httpCfg.UserAgent)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", status, src)
	}
	return body, nil
}
