// Package main contains Mage build targets for ndss-spider developer tooling.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "ndss-spider"
	cmdPkg  = "./cmd/ndss-spider"
)

// defaultYear is used by Init and Crawl when NDSS_YEAR is unset.
const defaultYear = "2024"

func year() string {
	if y := os.Getenv("NDSS_YEAR"); y != "" {
		return y
	}
	return defaultYear
}

// Init creates the ndss<year>/papers and ndss<year>/slides directories for NDSS_YEAR.
func Init() error {
	for _, kind := range []string{"papers", "slides"} {
		dir := filepath.Join("ndss"+year(), kind)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Output directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Crawl builds the CLI and crawls NDSS_YEAR into the current directory.
func Crawl() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "crawl", "--year", year())
}

// Stats prints Go line counts and how many papers and slides are mirrored
// for NDSS_YEAR.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)

	for _, kind := range []string{"papers", "slides"} {
		dir := filepath.Join("ndss"+year(), kind)
		n, err := countPDFs(dir)
		if err != nil {
			return err
		}
		fmt.Printf("%-31s %d\n", dir+":", n)
	}
	return nil
}

// countGoLines counts non-blank lines in the module's .go files, split into
// production and _test.go files. Directories starting with "." or "_" are
// skipped, as the go tool does.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countPDFs returns the number of .pdf files directly in dir. A missing
// directory counts as zero.
func countPDFs(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", dir, err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			n++
		}
	}
	return n, nil
}
