package deckgen

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deckgen/deckgen/deck"
	"github.com/deckgen/deckgen/pptx"
	"github.com/deckgen/deckgen/tabular"
)

func TestGenerateValidation(t *testing.T) {
	gen := New()

	err := gen.Generate(Job{Output: "out.pptx"})
	if !errors.Is(err, ErrNoPages) {
		t.Fatalf("no pages: %v", err)
	}

	err = gen.Generate(Job{Pages: []deck.PageConfig{{Number: 1}}})
	if !errors.Is(err, ErrNoOutput) {
		t.Fatalf("no output: %v", err)
	}

	err = gen.Generate(Job{
		Pages:    []deck.PageConfig{{Number: 1}},
		Template: filepath.Join(t.TempDir(), "absent.pptx"),
		Output:   "out.pptx",
	})
	if !errors.Is(err, ErrTemplateMissing) {
		t.Fatalf("missing template: %v", err)
	}
	var de *DeckError
	if !errors.As(err, &de) || de.Op != "Generate" {
		t.Fatalf("error type: %v", err)
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	sales := tabular.NewTable("Region", "Net_Sales")
	sales.AddRow("North", 1200.0)
	sales.AddRow("South", 800.0)
	store := tabular.NewDataStore()
	store.SetTable("sales_report", sales)

	out := filepath.Join(t.TempDir(), "deck.pptx")
	gen := New()
	err := gen.Generate(Job{
		Store: store,
		Pages: []deck.PageConfig{
			{Number: 1, Title: "Summary", TableMapping: &deck.TableMapping{Source: "sales_report"}},
		},
		Output: out,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	doc, err := pptx.Open(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if doc.SlideCount() != 1 {
		t.Fatalf("slides = %d", doc.SlideCount())
	}
	text := doc.Slides()[0].Text()
	for _, want := range []string{"Summary", "Region", "North"} {
		if !strings.Contains(text, want) {
			t.Fatalf("%q missing from %q", want, text)
		}
	}
}

func TestGenerateNilStore(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	gen := New()
	err := gen.Generate(Job{
		Pages:  []deck.PageConfig{{Number: 1, Title: "Empty", Type: "section"}},
		Output: out,
	})
	if err != nil {
		t.Fatalf("nil store must default to an empty one: %v", err)
	}
}
