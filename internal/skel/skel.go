// Package skel ties acquisition, search and rendering together behind one
// API. A Skel resolves a target specification, obtains its rustdoc JSON,
// and produces skeletons, listings or search responses from it.
package skel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rskel/rskel/internal/fetch"
	"github.com/rskel/rskel/internal/ir"
	"github.com/rskel/rskel/internal/markdown"
	"github.com/rskel/rskel/internal/render"
	"github.com/rskel/rskel/internal/search"
)

// Skel renders Rust crate skeletons from a target specification.
type Skel struct {
	Client    *fetch.Client
	Formatter render.Formatter
	AutoImpls bool
	Toolchain string
	Quiet     bool
}

// Options are the build/visibility knobs shared by every operation.
type Options struct {
	PrivateItems      bool
	NoDefaultFeatures bool
	AllFeatures       bool
	Features          []string
}

// SearchOptions extend Options with the query parameters.
type SearchOptions struct {
	Options
	Query            string
	Domains          search.Domain
	CaseSensitive    bool
	ExpandContainers bool
}

// SearchResponse is the result set plus the narrowed skeleton.
type SearchResponse struct {
	Results  []search.Result
	Rendered string
}

// ListItem is one entry of a crate listing.
type ListItem struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// Render produces the full skeleton for a target. When the public surface
// turns out to be empty and private items were not requested, the render is
// retried with private items enabled; binary-only crates have nothing else
// to show.
func (s *Skel) Render(ctx context.Context, target string, opts Options) (string, error) {
	t, err := fetch.ParseTarget(target)
	if err != nil {
		return "", err
	}

	crate, err := s.loadCrate(ctx, t, opts, opts.PrivateItems)
	if err != nil {
		return "", err
	}

	renderer := render.Renderer{
		Formatter:    s.Formatter,
		AutoImpls:    s.AutoImpls,
		PrivateItems: opts.PrivateItems,
		Filter:       t.Filter,
	}
	rendered, err := renderer.Render(crate)
	if err != nil {
		return "", err
	}

	if !opts.PrivateItems && isEmptyOutput(rendered) {
		slog.Debug("public surface empty, retrying with private items", "target", target)
		crate, err = s.loadCrate(ctx, t, opts, true)
		if err != nil {
			return "", err
		}
		renderer.PrivateItems = true
		return renderer.Render(crate)
	}

	return rendered, nil
}

// RenderMarkdown renders the skeleton as a Markdown document with intra-doc
// links rewritten to full item paths.
func (s *Skel) RenderMarkdown(ctx context.Context, target string, opts Options) (string, error) {
	rendered, err := s.Render(ctx, target, opts)
	if err != nil {
		return "", err
	}

	t, err := fetch.ParseTarget(target)
	if err != nil {
		return "", err
	}
	crate, err := s.loadCrate(ctx, t, opts, opts.PrivateItems)
	if err != nil {
		return "", err
	}

	doc := markdown.Render(rendered)
	return markdown.RewriteLinks(doc, crateLinkMap(crate)), nil
}

// Search runs a query against the target's item index and renders the
// matched subset.
func (s *Skel) Search(ctx context.Context, target string, opts SearchOptions) (*SearchResponse, error) {
	t, err := fetch.ParseTarget(target)
	if err != nil {
		return nil, err
	}

	crate, err := s.loadCrate(ctx, t, opts.Options, opts.PrivateItems)
	if err != nil {
		return nil, err
	}

	index := search.NewIndex(crate, opts.PrivateItems)
	results := index.Search(search.Options{
		Query:         opts.Query,
		Domains:       opts.Domains,
		CaseSensitive: opts.CaseSensitive,
	})
	if len(results) == 0 {
		return &SearchResponse{}, nil
	}

	selection := index.Selection(results, opts.ExpandContainers)
	renderer := render.Renderer{
		Formatter:    s.Formatter,
		AutoImpls:    s.AutoImpls,
		PrivateItems: opts.PrivateItems,
		Filter:       t.Filter,
		Selection:    selection,
	}
	rendered, err := renderer.Render(crate)
	if err != nil {
		return nil, err
	}

	return &SearchResponse{Results: results, Rendered: rendered}, nil
}

// List produces a flat listing of the target's items, optionally narrowed by
// a query. Import entries are omitted; they shadow items listed elsewhere.
func (s *Skel) List(ctx context.Context, target string, opts Options, query *SearchOptions) ([]ListItem, error) {
	includePrivate := opts.PrivateItems
	if query != nil && query.PrivateItems {
		includePrivate = true
	}

	t, err := fetch.ParseTarget(target)
	if err != nil {
		return nil, err
	}
	crate, err := s.loadCrate(ctx, t, opts, includePrivate)
	if err != nil {
		return nil, err
	}

	index := search.NewIndex(crate, includePrivate)

	var items []ListItem
	if query != nil {
		for _, result := range index.Search(search.Options{
			Query:         query.Query,
			Domains:       query.Domains,
			CaseSensitive: query.CaseSensitive,
		}) {
			items = append(items, ListItem{Kind: result.Entry.Kind, Path: result.Entry.Path})
		}
	} else {
		for _, entry := range index.Entries() {
			items = append(items, ListItem{Kind: entry.Kind, Path: entry.Path})
		}
	}

	filtered := items[:0]
	for _, item := range items {
		if item.Kind != "use" {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Inspect returns the decoded item graph for a target.
func (s *Skel) Inspect(ctx context.Context, target string, opts Options) (*ir.Crate, error) {
	t, err := fetch.ParseTarget(target)
	if err != nil {
		return nil, err
	}
	return s.loadCrate(ctx, t, opts, opts.PrivateItems)
}

// RawJSON returns the target's rustdoc JSON document, pretty-printed.
func (s *Skel) RawJSON(ctx context.Context, target string, opts Options) (string, error) {
	t, err := fetch.ParseTarget(target)
	if err != nil {
		return "", err
	}
	data, err := s.loadJSON(ctx, t, opts, opts.PrivateItems)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", fmt.Errorf("formatting rustdoc JSON: %w", err)
	}
	return buf.String(), nil
}

func (s *Skel) loadCrate(ctx context.Context, t fetch.Target, opts Options, private bool) (*ir.Crate, error) {
	data, err := s.loadJSON(ctx, t, opts, private)
	if err != nil {
		return nil, err
	}
	crate, err := ir.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding rustdoc JSON for %s: %w", t.Name, err)
	}
	return crate, nil
}

func (s *Skel) loadJSON(ctx context.Context, t fetch.Target, opts Options, private bool) ([]byte, error) {
	if dir, ok := localPackageDir(t.Name); ok {
		return fetch.BuildLocal(ctx, dir, fetch.BuildOptions{
			Toolchain:         s.Toolchain,
			NoDefaultFeatures: opts.NoDefaultFeatures,
			AllFeatures:       opts.AllFeatures,
			Features:          opts.Features,
			PrivateItems:      private,
			Quiet:             s.Quiet,
		})
	}
	if s.Client == nil {
		return nil, fmt.Errorf("no fetch client configured for remote target %q", t.Name)
	}
	return s.Client.CrateJSON(ctx, t.Name, t.Version)
}

// localPackageDir reports whether the entrypoint names a package directory
// on disk rather than a crate on the registry.
func localPackageDir(entrypoint string) (string, bool) {
	if entrypoint != "." && entrypoint != ".." && !strings.ContainsAny(entrypoint, "/\\") {
		return "", false
	}
	if _, err := os.Stat(filepath.Join(entrypoint, "Cargo.toml")); err != nil {
		return "", false
	}
	return entrypoint, true
}

// isEmptyOutput reports whether the rendered skeleton is just an empty
// module declaration, the shape binary-only crates produce.
func isEmptyOutput(rendered string) bool {
	normalized := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, rendered)

	return strings.HasPrefix(normalized, "pubmod") &&
		strings.HasSuffix(normalized, "{}") &&
		strings.Count(normalized, "{") == 1
}

// crateLinkMap merges the intra-doc link maps of every item in the crate.
func crateLinkMap(crate *ir.Crate) map[string]string {
	merged := map[string]string{}
	for _, item := range crate.Index {
		for dest, path := range markdown.DocLinks(crate, item) {
			merged[dest] = path
		}
	}
	return merged
}
