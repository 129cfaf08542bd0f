// Package search builds a flat, in-memory index over an item graph and
// answers free-text queries against it. Matching is plain substring
// containment over a configurable set of domains; there is no persistent
// store and no ranking beyond declaration order.
package search

import (
	"fmt"
	"strings"

	"github.com/rskel/rskel/internal/ir"
	"github.com/rskel/rskel/internal/render"
)

// Domain selects which item attributes a query is matched against.
type Domain uint8

const (
	DomainNames Domain = 1 << iota
	DomainDocs
	DomainPaths
	DomainSignatures
)

// DefaultDomains is what a bare query searches. Paths are opt-in because
// every descendant of a matching module would otherwise match too.
const DefaultDomains = DomainNames | DomainDocs | DomainSignatures

// ParseDomains converts user-supplied domain names into a bitset. An empty
// list selects the defaults.
func ParseDomains(names []string) (Domain, error) {
	var d Domain
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "names", "name":
			d |= DomainNames
		case "docs", "doc":
			d |= DomainDocs
		case "paths", "path":
			d |= DomainPaths
		case "signatures", "signature":
			d |= DomainSignatures
		default:
			return 0, fmt.Errorf("unknown search domain %q", name)
		}
	}
	if d == 0 {
		d = DefaultDomains
	}
	return d, nil
}

// DescribeDomains names the active domains for user-facing messages.
func DescribeDomains(d Domain) string {
	var names []string
	if d&DomainNames != 0 {
		names = append(names, "names")
	}
	if d&DomainDocs != 0 {
		names = append(names, "docs")
	}
	if d&DomainPaths != 0 {
		names = append(names, "paths")
	}
	if d&DomainSignatures != 0 {
		names = append(names, "signatures")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// Entry is one indexed item.
type Entry struct {
	Id        ir.Id
	Kind      string
	Path      string
	Name      string
	Signature string
	Docs      string
}

// Options control a single query against an index.
type Options struct {
	Query         string
	Domains       Domain
	CaseSensitive bool
}

// Result pairs an entry with the domains the query matched in.
type Result struct {
	Entry   Entry
	Matched Domain
}

// Index is a flattened view of a crate's item graph, in declaration order.
type Index struct {
	crate    *ir.Crate
	entries  []Entry
	parents  map[ir.Id]ir.Id
	children map[ir.Id][]ir.Id
}

// NewIndex flattens the crate starting at its root. Private items are
// indexed only when includePrivate is set; enum variants, trait members and
// trait impl members follow their container rather than carrying their own
// visibility.
func NewIndex(crate *ir.Crate, includePrivate bool) *Index {
	ix := &Index{
		crate:    crate,
		parents:  make(map[ir.Id]ir.Id),
		children: make(map[ir.Id][]ir.Id),
	}
	if root, ok := crate.Index[crate.Root]; ok {
		ix.visit(root, "", crate.Root, true, includePrivate)
	}
	return ix
}

// Entries returns the indexed items in declaration order.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Crate returns the graph the index was built from.
func (ix *Index) Crate() *ir.Crate {
	return ix.crate
}

// Search returns every entry the query matches, in index order. An empty
// domain set matches nothing.
func (ix *Index) Search(opts Options) []Result {
	query := opts.Query
	if !opts.CaseSensitive {
		query = strings.ToLower(query)
	}
	fold := func(s string) string {
		if opts.CaseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	var results []Result
	for _, entry := range ix.entries {
		var matched Domain
		if opts.Domains&DomainNames != 0 && strings.Contains(fold(entry.Name), query) {
			matched |= DomainNames
		}
		if opts.Domains&DomainDocs != 0 && strings.Contains(fold(entry.Docs), query) {
			matched |= DomainDocs
		}
		if opts.Domains&DomainPaths != 0 && strings.Contains(fold(entry.Path), query) {
			matched |= DomainPaths
		}
		if opts.Domains&DomainSignatures != 0 && strings.Contains(fold(entry.Signature), query) {
			matched |= DomainSignatures
		}
		if matched != 0 {
			results = append(results, Result{Entry: entry, Matched: matched})
		}
	}
	return results
}

// visit records one item and descends into its container children. parentPath
// is the full path of the enclosing container; gate means the item's own
// visibility decides inclusion (variants, trait members and trait impl
// members are carried by their container instead).
func (ix *Index) visit(item *ir.Item, parentPath string, parent ir.Id, gate, includePrivate bool) {
	if gate && !item.IsPublic() && !includePrivate {
		return
	}

	path := parentPath
	if item.Name != "" {
		path = joinPath(parentPath, item.Name)
	}

	if item.Id != parent {
		ix.parents[item.Id] = parent
		ix.children[parent] = append(ix.children[parent], item.Id)
	}

	ix.entries = append(ix.entries, Entry{
		Id:        item.Id,
		Kind:      item.Kind(),
		Path:      path,
		Name:      item.Name,
		Signature: render.Signature(ix.crate, item),
		Docs:      item.Docs,
	})

	switch inner := item.Inner.(type) {
	case ir.Module:
		for _, childId := range inner.Items {
			if child, ok := ix.crate.Index[childId]; ok {
				ix.visit(child, path, item.Id, true, includePrivate)
			}
		}
	case ir.Struct:
		ix.visitImpls(inner.Impls, path, item.Id, includePrivate)
	case ir.Enum:
		for _, variantId := range inner.Variants {
			if variant, ok := ix.crate.Index[variantId]; ok {
				ix.visit(variant, path, item.Id, false, includePrivate)
			}
		}
		ix.visitImpls(inner.Impls, path, item.Id, includePrivate)
	case ir.Trait:
		for _, memberId := range inner.Items {
			if member, ok := ix.crate.Index[memberId]; ok {
				ix.visit(member, path, item.Id, false, includePrivate)
			}
		}
	}
}

// visitImpls indexes a type's impl blocks and their members. Derive, blanket
// and synthetic impls are skipped to match what actually renders.
func (ix *Index) visitImpls(implIds []ir.Id, ownerPath string, owner ir.Id, includePrivate bool) {
	for _, implId := range implIds {
		implItem, ok := ix.crate.Index[implId]
		if !ok {
			continue
		}
		impl, ok := implItem.Inner.(ir.Impl)
		if !ok || !render.VisibleImpl(impl) {
			continue
		}

		ix.parents[implId] = owner
		ix.children[owner] = append(ix.children[owner], implId)
		ix.entries = append(ix.entries, Entry{
			Id:        implId,
			Kind:      implItem.Kind(),
			Path:      ownerPath,
			Signature: render.Signature(ix.crate, implItem),
			Docs:      implItem.Docs,
		})

		isTraitImpl := impl.Trait != nil
		for _, memberId := range impl.Items {
			if member, ok := ix.crate.Index[memberId]; ok {
				ix.visit(member, ownerPath, implId, !isTraitImpl, includePrivate)
			}
		}
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "::" + name
}
