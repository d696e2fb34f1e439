package layout

import (
	"strings"
	"testing"
)

func TestGridMarkdown_Rectangular(t *testing.T) {
	g := Grid{
		{"Name", "Qty"},
		{"Bolt", "12"},
		{"Nut", "40"},
	}
	want := strings.Join([]string{
		"| Name | Qty |",
		"| --- | --- |",
		"| Bolt | 12 |",
		"| Nut | 40 |",
	}, "\n")
	if got := g.Markdown(); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestGridMarkdown_RaggedRowsPaddedToMaxWidth(t *testing.T) {
	g := Grid{
		{"A"},
		{"B", "C", "D"},
		{"E", "F"},
	}
	lines := strings.Split(g.Markdown(), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	// Every rendered row carries exactly max-width cells, short rows padded
	// with trailing empties.
	for i, line := range lines {
		cells := strings.Count(line, "|") - 1
		if cells != 3 {
			t.Errorf("line %d: expected 3 cells, got %d (%q)", i, cells, line)
		}
	}
	if lines[0] != "| A |  |  |" {
		t.Errorf("expected padded header %q, got %q", "| A |  |  |", lines[0])
	}
	if lines[1] != "| --- | --- | --- |" {
		t.Errorf("expected separator %q, got %q", "| --- | --- | --- |", lines[1])
	}
}

func TestGridMarkdown_Empty(t *testing.T) {
	if got := (Grid{}).Markdown(); got != "" {
		t.Errorf("expected empty string for empty grid, got %q", got)
	}
}

func TestGridMarkdown_SingleRow(t *testing.T) {
	g := Grid{{"only", "row"}}
	want := "| only | row |\n| --- | --- |"
	if got := g.Markdown(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestGridMarkdown_BlankCellsPreserved(t *testing.T) {
	// Blank cells are legitimate grid positions, not collapsed.
	g := Grid{
		{"x", "", "y"},
		{"", "z", ""},
	}
	want := "| x |  | y |\n| --- | --- | --- |\n|  | z |  |"
	if got := g.Markdown(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
