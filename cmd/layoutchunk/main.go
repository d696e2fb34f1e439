// Command layoutchunk parses a single document into chunks and prints them
// as JSON, one object per chunk. Useful for inspecting reconstruction output
// without running the service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/layoutchunk/internal/layout"
	"github.com/dgallion1/layoutchunk/internal/parser"
)

func main() {
	var (
		file        = flag.String("file", "", "document to parse (.txt, .md, .csv, .html, .pdf, .docx, or a saved analysis .json)")
		docID       = flag.String("doc-id", "", "document id for chunk metadata (default: file base name)")
		expandCells = flag.Bool("expand-merged-cells", false, "replicate merged cell text across its spanned grid positions")
		out         = flag.String("out", "", "write output to file instead of stdout")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: layoutchunk -file <document> [-doc-id id] [-expand-merged-cells] [-out file]")
		os.Exit(2)
	}

	id := *docID
	if id == "" {
		base := filepath.Base(*file)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	chunks, err := run(*file, id, layout.Options{ExpandMergedCells: *expandCells})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	dst := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer f.Close()
		dst = f
	}

	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")
	if err := enc.Encode(chunks); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(path, docID string, opts layout.Options) ([]layout.Chunk, error) {
	p, err := parser.ForFile(path, opts)
	if err != nil {
		return nil, err
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = true
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return p.Parse(f, filepath.Base(path), docID)
}
