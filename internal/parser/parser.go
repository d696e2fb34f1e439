package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/layoutchunk/internal/layout"
)

// Parser converts raw document bytes into provenance-tagged chunks.
type Parser interface {
	Parse(r io.Reader, filename, documentID string) ([]layout.Chunk, error)
}

// SupportedExtensions lists file extensions this service can handle. A .json
// file is a saved analysis response, run through the layout reconstructor.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".json":     true,
}

// ForFile returns the appropriate parser for a filename. Options apply to the
// parsers that reconstruct table grids.
func ForFile(filename string, opts layout.Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".json":
		return &AnalysisParser{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
