package render

import (
	"fmt"
	"strings"

	"github.com/rskel/rskel/internal/ir"
)

// filterMatch classifies how the configured filter relates to an item path.
type filterMatch int

const (
	// filterHit means the filter exactly matches the path.
	filterHit filterMatch = iota
	// filterPrefix means the item is a strict ancestor of the filter target.
	filterPrefix
	// filterSuffix means the item lies at or below the filter target.
	filterSuffix
	// filterMiss means the filter and path are unrelated.
	filterMiss
)

// renderState is the mutable context for a single render call.
type renderState struct {
	config *Renderer
	crate  *ir.Crate
	// filterMatched tracks whether any item satisfied the configured filter.
	filterMatched bool
}

func newRenderState(config *Renderer, crate *ir.Crate) *renderState {
	return &renderState{config: config, crate: crate}
}

func (s *renderState) render() (string, error) {
	// The root item is always a module.
	output := renderItem(s, "", mustGet(s.crate, s.crate.Root), false)

	if s.config.Filter != "" && !s.filterMatched {
		return "", &FilterNotMatchedError{Filter: s.config.Filter}
	}

	if s.config.Formatter == nil {
		return output, nil
	}
	return s.config.Formatter.Format(output)
}

func (s *renderState) selectionContextContains(id ir.Id) bool {
	if s.config.Selection == nil {
		return true
	}
	return s.config.Selection.InContext(id)
}

func (s *renderState) selectionMatches(id ir.Id) bool {
	if s.config.Selection == nil {
		return false
	}
	return s.config.Selection.Matches(id)
}

func (s *renderState) selectionExpands(id ir.Id) bool {
	if s.config.Selection == nil {
		return true
	}
	return s.config.Selection.Expands(id)
}

// selectionAllowsChild reports whether a child should render under its parent.
func (s *renderState) selectionAllowsChild(parentId, childId ir.Id) bool {
	if s.config.Selection == nil {
		return true
	}
	return s.selectionExpands(parentId) || s.selectionContextContains(childId)
}

// shouldFilter reports whether the path filter drops the item. A filter hit
// is recorded so the caller can detect filters that never matched.
func (s *renderState) shouldFilter(pathPrefix string, item *ir.Item) bool {
	// The root module is never filtered; filters operate below it.
	if item.Id == s.crate.Root {
		return false
	}
	if s.config.Filter == "" {
		return false
	}
	switch s.filterMatch(pathPrefix, item) {
	case filterHit:
		s.filterMatched = true
		return false
	case filterPrefix, filterSuffix:
		return false
	default:
		return true
	}
}

func (s *renderState) filterMatch(pathPrefix string, item *ir.Item) filterMatch {
	if item.Name == "" {
		return filterPrefix
	}
	itemPath := ppush(pathPrefix, item.Name)

	filterComponents := strings.Split(s.config.Filter, "::")
	// The leading component is the crate root, which the filter never names.
	itemComponents := strings.Split(itemPath, "::")[1:]

	switch {
	case componentsEqual(filterComponents, itemComponents):
		return filterHit
	case componentsStartWith(filterComponents, itemComponents):
		return filterPrefix
	case componentsStartWith(itemComponents, filterComponents):
		return filterSuffix
	default:
		return filterMiss
	}
}

// shouldModuleDoc reports whether a module emits its //! doc header. Modules
// merely passed through on the way to a filter target stay silent.
func (s *renderState) shouldModuleDoc(pathPrefix string, item *ir.Item) bool {
	if s.config.Filter == "" {
		return true
	}
	m := s.filterMatch(pathPrefix, item)
	return m == filterHit || m == filterSuffix
}

func componentsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func componentsStartWith(whole, prefix []string) bool {
	if len(prefix) > len(whole) {
		return false
	}
	return componentsEqual(whole[:len(prefix)], prefix)
}

// mustGet returns the indexed item, panicking on a broken graph reference.
func mustGet(crate *ir.Crate, id ir.Id) *ir.Item {
	item, ok := crate.Index[id]
	if !ok {
		panic(fmt.Sprintf("item %v missing from crate index", id))
	}
	return item
}

// ppush appends a name to a :: separated path prefix.
func ppush(pathPrefix, name string) string {
	if pathPrefix == "" {
		return name
	}
	return pathPrefix + "::" + name
}
