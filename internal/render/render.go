// Package render turns a decoded rustdoc item graph into skeleton Rust
// source: declarations with bodies elided, optionally narrowed by a path
// filter or a search selection.
package render

import (
	"github.com/rskel/rskel/internal/ir"
)

// Selection restricts a render to a subset of item identifiers.
type Selection struct {
	matches  map[ir.Id]bool
	context  map[ir.Id]bool
	expanded map[ir.Id]bool
}

// NewSelection builds a selection from explicit match, context and expansion
// sets. Every match is also part of the context.
func NewSelection(matches, context, expanded map[ir.Id]bool) *Selection {
	if context == nil {
		context = make(map[ir.Id]bool, len(matches))
	}
	for id := range matches {
		context[id] = true
	}
	if matches == nil {
		matches = map[ir.Id]bool{}
	}
	if expanded == nil {
		expanded = map[ir.Id]bool{}
	}
	return &Selection{matches: matches, context: context, expanded: expanded}
}

// Matches reports whether id directly satisfied the search query.
func (s *Selection) Matches(id ir.Id) bool { return s.matches[id] }

// InContext reports whether id is kept to preserve hierarchy in the output.
func (s *Selection) InContext(id ir.Id) bool { return s.context[id] }

// Expands reports whether a matched container should render all children.
func (s *Selection) Expands(id ir.Id) bool { return s.expanded[id] }

// Renderer holds the immutable configuration for one or more render calls.
type Renderer struct {
	// Formatter post-processes raw output. Nil leaves the text as produced.
	Formatter Formatter
	// AutoImpls includes compiler-synthesized trait impls like Send and Sync.
	AutoImpls bool
	// PrivateItems renders items that are not public.
	PrivateItems bool
	// Filter is a path below the crate root restricting output to a subtree.
	Filter string
	// Selection optionally restricts output to matched items plus context.
	Selection *Selection
}

// WithFilter restricts output to the subtree at the given path below the root.
func (r Renderer) WithFilter(filter string) Renderer {
	r.Filter = filter
	return r
}

// WithAutoImpls toggles rendering of auto trait implementations.
func (r Renderer) WithAutoImpls(autoImpls bool) Renderer {
	r.AutoImpls = autoImpls
	return r
}

// WithPrivateItems toggles rendering of non-public items.
func (r Renderer) WithPrivateItems(private bool) Renderer {
	r.PrivateItems = private
	return r
}

// WithSelection restricts rendering to the provided selection.
func (r Renderer) WithSelection(sel *Selection) Renderer {
	r.Selection = sel
	return r
}

// WithFormatter sets the post-processing formatter.
func (r Renderer) WithFormatter(f Formatter) Renderer {
	r.Formatter = f
	return r
}

// Render produces skeleton source for the crate, applying the configured
// filter, selection and visibility policy.
func (r Renderer) Render(crate *ir.Crate) (string, error) {
	state := newRenderState(&r, crate)
	return state.render()
}
