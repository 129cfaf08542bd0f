package search

import (
	"strings"
	"testing"

	"github.com/rskel/rskel/internal/render"
)

func TestSelectionContainsAncestors(t *testing.T) {
	t.Parallel()

	crate, ids := fixtureCrate()
	ix := NewIndex(crate, false)

	results := ix.Search(Options{Query: "renders the widget", Domains: DomainDocs})
	if len(results) != 1 || results[0].Entry.Id != ids.render {
		t.Fatalf("query = %v, want exactly render", entryPaths(results))
	}

	sel := ix.Selection(results, false)
	if !sel.Matches(ids.render) {
		t.Error("render not in matches")
	}
	if sel.Matches(ids.widget) {
		t.Error("Widget in matches, want context only")
	}
	if !sel.InContext(ids.render) || !sel.InContext(ids.widget) || !sel.InContext(ids.root) {
		t.Error("ancestor chain render -> Widget -> root not fully in context")
	}
	if sel.InContext(ids.paintable) {
		t.Error("unrelated trait leaked into context")
	}
	if sel.Expands(ids.render) || sel.Expands(ids.widget) {
		t.Error("nothing should be expanded without expandContainers")
	}
}

func TestSelectionExpandsContainers(t *testing.T) {
	t.Parallel()

	crate, ids := fixtureCrate()
	ix := NewIndex(crate, false)

	results := ix.Search(Options{Query: "widget", Domains: DomainNames})
	sel := ix.Selection(results, true)

	if !sel.Expands(ids.widget) {
		t.Fatal("matched struct not expanded")
	}
	// Expansion pulls the struct's impls and their members into context so
	// the rendered skeleton shows the whole type.
	if !sel.InContext(ids.paintImpl) || !sel.InContext(ids.paintMethod) || !sel.InContext(ids.render) {
		t.Error("descendants of expanded container missing from context")
	}
	if sel.Matches(ids.render) {
		t.Error("descendant promoted to match")
	}
}

func TestSelectionNonContainerMatchNotExpanded(t *testing.T) {
	t.Parallel()

	crate, ids := fixtureCrate()
	ix := NewIndex(crate, false)

	results := ix.Search(Options{Query: "render", Domains: DomainNames})
	sel := ix.Selection(results, true)

	if sel.Expands(ids.render) {
		t.Error("function match expanded as a container")
	}
}

func TestSelectionDrivesRendering(t *testing.T) {
	t.Parallel()

	crate, _ := fixtureCrate()
	ix := NewIndex(crate, false)

	results := ix.Search(Options{Query: "widget", Domains: DomainNames})
	sel := ix.Selection(results, true)

	out, err := (render.Renderer{Selection: sel}).Render(crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	flat := strings.Join(strings.Fields(out), " ")
	if !strings.Contains(flat, "pub struct Widget;") {
		t.Errorf("output missing Widget declaration: %q", flat)
	}
	if !strings.Contains(flat, "fn render(&self) -> String") {
		t.Errorf("output missing inherent method: %q", flat)
	}
	if strings.Contains(flat, "trait Paintable {") {
		t.Errorf("unselected trait definition rendered: %q", flat)
	}
}
