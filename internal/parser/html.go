package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/layoutchunk/internal/layout"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Headings become labeled chunks, tables are
// reconstructed into grids and rendered, and remaining content accumulates
// into text_block chunks.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename, documentID string) ([]layout.Chunk, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var chunks []layout.Chunk
	var currentText strings.Builder

	emit := func(t string, chunkType layout.ChunkType) {
		t = strings.TrimSpace(t)
		if t == "" {
			return
		}
		chunks = append(chunks, layout.Chunk{
			Text: t,
			Metadata: layout.Metadata{
				DocumentID: documentID,
				Type:       chunkType,
			},
		})
	}
	flushText := func() {
		emit(currentText.String(), layout.ChunkTextBlock)
		currentText.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				flushText()
				chunkType := layout.ChunkSectionHeader
				if level == 1 {
					chunkType = layout.ChunkTitle
				}
				emit(textContent(n), chunkType)
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "table":
				flushText()
				if grid := tableGrid(n); len(grid) > 0 {
					emit(grid.Markdown(), layout.ChunkTable)
				}
				return
			case "ul", "ol":
				flushText()
				emit(listText(n), layout.ChunkList)
				return
			case "p", "blockquote":
				t := textContent(n)
				if t != "" {
					if currentText.Len() > 0 {
						currentText.WriteString("\n\n")
					}
					currentText.WriteString(t)
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	body := findBody(doc)
	if body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	flushText()

	return chunks, nil
}

// tableGrid collects the rows of a <table> element into a grid. Rows may be
// ragged; the renderer pads them.
func tableGrid(table *html.Node) layout.Grid {
	var grid layout.Grid
	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, textContent(c))
				}
			}
			if len(row) > 0 {
				grid = append(grid, row)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(table)
	return grid
}

// listText joins the items of a <ul>/<ol> with newlines.
func listText(list *html.Node) string {
	var items []string
	var walkItems func(*html.Node)
	walkItems = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			if t := textContent(n); t != "" {
				items = append(items, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkItems(c)
		}
	}
	walkItems(list)
	return strings.Join(items, "\n")
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
