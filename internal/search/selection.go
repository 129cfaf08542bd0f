package search

import (
	"github.com/rskel/rskel/internal/ir"
	"github.com/rskel/rskel/internal/render"
)

// containerKinds are item kinds whose match can expand to their children.
var containerKinds = map[string]bool{
	"module": true,
	"struct": true,
	"enum":   true,
	"trait":  true,
	"impl":   true,
}

// Selection converts query results into the three sets the renderer narrows
// by: matched ids, the context chain up to the root, and the containers to
// expand. Descendants of every expanded container are pulled into the
// context so their members survive the renderer's per-child gates.
func (ix *Index) Selection(results []Result, expandContainers bool) *render.Selection {
	matches := make(map[ir.Id]bool, len(results))
	context := make(map[ir.Id]bool, len(results))
	expanded := make(map[ir.Id]bool)

	for _, result := range results {
		id := result.Entry.Id
		matches[id] = true
		context[id] = true
		for parent, ok := ix.parents[id]; ok; parent, ok = ix.parents[parent] {
			context[parent] = true
		}
		if expandContainers && containerKinds[result.Entry.Kind] {
			expanded[id] = true
		}
	}

	for id := range expanded {
		ix.addDescendants(id, context)
	}

	return render.NewSelection(matches, context, expanded)
}

func (ix *Index) addDescendants(id ir.Id, context map[ir.Id]bool) {
	for _, child := range ix.children[id] {
		context[child] = true
		ix.addDescendants(child, context)
	}
}
