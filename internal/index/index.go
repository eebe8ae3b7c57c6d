// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index writes the per-run summary of collected papers.
//
// Each row is a paper plus its 1-based position. Columns appear in the fixed
// order index, title, authors, cycle, details_url; a column that is empty in
// every row is left out. Papers without a title are not written.
package index

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ndss-spider/pkg/types"
)

// Columns is the fixed column order of the index.
var Columns = []string{"index", "title", "authors", "cycle", "details_url"}

// Row is one line of the index.
type Row struct {
	Index      int    `yaml:"index"`
	Title      string `yaml:"title"`
	Authors    string `yaml:"authors,omitempty"`
	Cycle      string `yaml:"cycle,omitempty"`
	DetailsURL string `yaml:"details_url,omitempty"`
}

func (r Row) field(col string) string {
	switch col {
	case "index":
		return strconv.Itoa(r.Index)
	case "title":
		return r.Title
	case "authors":
		return r.Authors
	case "cycle":
		return r.Cycle
	case "details_url":
		return r.DetailsURL
	}
	return ""
}

// Rows numbers papers in input order. Papers with an empty title are
// skipped and counted in dropped.
func Rows(papers []types.Paper) (rows []Row, dropped int) {
	for _, p := range papers {
		if p.Title == "" {
			dropped++
			continue
		}
		rows = append(rows, Row{
			Index:      len(rows) + 1,
			Title:      p.Title,
			Authors:    p.Authors,
			Cycle:      string(p.Cycle),
			DetailsURL: p.DetailsURL,
		})
	}
	return rows, dropped
}

// PresentColumns returns the columns to write for rows. With no rows every
// column is kept so the header is complete.
func PresentColumns(rows []Row) []string {
	if len(rows) == 0 {
		return Columns
	}
	cols := []string{"index"}
	for _, col := range Columns[1:] {
		for _, r := range rows {
			if r.field(col) != "" {
				cols = append(cols, col)
				break
			}
		}
	}
	return cols
}

// WriteCSV writes the index as CSV to path, replacing any existing file.
func WriteCSV(papers []types.Paper, path string) error {
	rows, _ := Rows(papers)

	f, err := create(path)
	if err != nil {
		return err
	}
	if err := writeCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// writeCSV stops at the first record the writer rejects.
func writeCSV(out io.Writer, rows []Row) error {
	cols := PresentColumns(rows)
	w := csv.NewWriter(out)
	if err := w.Write(cols); err != nil {
		return err
	}
	for _, r := range rows {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = r.field(col)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteYAML writes the index as a YAML list to path, replacing any existing file.
func WriteYAML(papers []types.Paper, path string) error {
	rows, _ := Rows(papers)
	if rows == nil {
		rows = []Row{}
	}
	data, err := yaml.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshaling index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Write dispatches to WriteCSV or WriteYAML.
func Write(papers []types.Paper, path string, format types.IndexFormat) error {
	switch format {
	case types.IndexYAML:
		return WriteYAML(papers, path)
	case types.IndexCSV, "":
		return WriteCSV(papers, path)
	default:
		return fmt.Errorf("unknown index format %q", format)
	}
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}
