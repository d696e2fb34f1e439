package layout

import (
	"errors"
	"testing"
)

func TestBuildIndex_Lookup(t *testing.T) {
	blocks := []Block{
		wordBlock("a", "one"),
		wordBlock("b", "two"),
	}
	idx, err := buildIndex(blocks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := idx.resolve("b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text != "two" {
		t.Errorf("expected text %q, got %q", "two", b.Text)
	}
}

func TestBuildIndex_DuplicateIDFailsFast(t *testing.T) {
	blocks := []Block{
		wordBlock("a", "one"),
		wordBlock("a", "shadow"),
	}
	_, err := buildIndex(blocks)
	var graphErr *MalformedGraphError
	if !errors.As(err, &graphErr) {
		t.Fatalf("expected MalformedGraphError, got %v", err)
	}
	if graphErr.ID != "a" {
		t.Errorf("expected offending id %q, got %q", "a", graphErr.ID)
	}
}

func TestResolve_UnknownID(t *testing.T) {
	idx, err := buildIndex([]Block{wordBlock("a", "one")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = idx.resolve("nope")
	var graphErr *MalformedGraphError
	if !errors.As(err, &graphErr) {
		t.Fatalf("expected MalformedGraphError, got %v", err)
	}
}
