package markdown

import (
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"

	"github.com/rskel/rskel/internal/ir"
)

// DocLinks builds the rewrite map for one item's docs: every intra-doc link
// destination rustdoc resolved is mapped to the target's full item path.
func DocLinks(crate *ir.Crate, item *ir.Item) map[string]string {
	if len(item.Links) == 0 {
		return nil
	}
	linkMap := make(map[string]string, len(item.Links))
	for dest, id := range item.Links {
		summary, ok := crate.Paths[id]
		if !ok || len(summary.Path) == 0 {
			continue
		}
		linkMap[dest] = strings.Join(summary.Path, "::")
	}
	return linkMap
}

// RewriteLinks rewrites Markdown link destinations using the provided map.
// The source is parsed to an AST so only genuine link destinations are
// touched; the rewrites are then applied as targeted string replacements to
// keep the surrounding formatting intact.
func RewriteLinks(src string, linkMap map[string]string) string {
	if len(linkMap) == 0 {
		return src
	}

	doc := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))

	type replacement struct {
		oldDest string
		newDest string
	}
	seen := make(map[string]bool)
	var replacements []replacement

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if link, ok := node.(*ast.Link); ok {
			dest := string(link.Destination)
			if newDest, ok := linkMap[dest]; ok && !seen[dest] {
				seen[dest] = true
				replacements = append(replacements, replacement{dest, newDest})
			}
		}
		return ast.GoToNext
	})

	if len(replacements) == 0 {
		return src
	}

	result := src

	// Inline links: [text](destination).
	for _, r := range replacements {
		result = strings.ReplaceAll(result, "]("+r.oldDest+")", "]("+r.newDest+")")
	}

	// Reference-style definitions: [ref]: destination.
	refMap := make(map[string]string, len(replacements))
	for _, r := range replacements {
		refMap["]: "+r.oldDest] = "]: " + r.newDest
	}
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for oldSuffix, newSuffix := range refMap {
			if strings.HasSuffix(trimmed, oldSuffix) {
				lines[i] = strings.Replace(line, oldSuffix, newSuffix, 1)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}
