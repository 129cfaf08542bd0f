package render

import (
	"fmt"
	"strings"

	"github.com/rskel/rskel/internal/ir"
)

// deriveTraits are rendered as a #[derive(...)] annotation on the type rather
// than as explicit impl blocks. Serialize and Deserialize are not built in
// but are well known enough to treat the same way.
var deriveTraits = map[string]bool{
	"Clone":                true,
	"Copy":                 true,
	"Debug":                true,
	"Default":              true,
	"Display":              true,
	"Eq":                   true,
	"Error":                true,
	"FromStr":              true,
	"Hash":                 true,
	"Ord":                  true,
	"PartialEq":            true,
	"PartialOrd":           true,
	"Send":                 true,
	"StructuralPartialEq":  true,
	"Sync":                 true,
	"Serialize":            true,
	"Deserialize":          true,
}

// VisibleImpl reports whether an impl block is part of the rendered surface
// under the default auto-impl policy. Derive-synthesized, blanket and
// synthetic impls are folded away.
func VisibleImpl(impl ir.Impl) bool {
	return shouldRenderImpl(impl, false)
}

// shouldRenderImpl reports whether an impl block appears as an explicit block.
func shouldRenderImpl(impl ir.Impl, autoImpls bool) bool {
	if impl.IsSynthetic && !autoImpls {
		return false
	}
	if impl.Trait != nil && deriveTraits[impl.Trait.Path] {
		return false
	}
	if impl.BlanketImpl != nil {
		return false
	}
	return true
}

func renderImpl(state *renderState, pathPrefix string, item *ir.Item) string {
	output := docs(item)
	impl := expectKind[ir.Impl](item)

	if !state.selectionContextContains(item.Id) {
		return ""
	}

	selectionActive := state.config.Selection != nil
	parentExpanded := false
	if rp, ok := impl.For.(ir.ResolvedPath); ok {
		parentExpanded = state.selectionExpands(rp.Path.Id)
	}
	expandChildren := !selectionActive || state.selectionExpands(item.Id) || parentExpanded

	// A trait impl is only observable if the trait itself is visible.
	if impl.Trait != nil {
		if traitItem, ok := state.crate.Index[impl.Trait.Id]; ok && !isVisible(state, traitItem) {
			return ""
		}
	}

	whereClause := renderWhereClause(impl.Generics)

	traitPart := ""
	if impl.Trait != nil {
		if traitPath := renderPath(*impl.Trait); traitPath != "" {
			traitPart = traitPath + " for "
		}
	}

	unsafePrefix := ""
	if impl.IsUnsafe {
		unsafePrefix = "unsafe "
	}
	output += fmt.Sprintf("%simpl%s %s%s", unsafePrefix, renderGenerics(impl.Generics), traitPart, renderType(impl.For))
	if whereClause != "" {
		output += "\n" + whereClause
	}
	output += " {\n"

	pathPrefix = ppush(pathPrefix, renderType(impl.For))
	hasContent := false
	for _, memberId := range impl.Items {
		member, ok := state.crate.Index[memberId]
		if !ok {
			continue
		}
		isTraitImpl := impl.Trait != nil
		if !selectionActive || expandChildren || state.selectionContextContains(memberId) {
			// Trait impl members are part of the trait's contract and bypass
			// the member visibility gate.
			if isTraitImpl || isVisible(state, member) {
				rendered := renderImplItem(state, pathPrefix, member, expandChildren)
				if rendered != "" {
					output += rendered
					hasContent = true
				}
			}
		}
	}

	// Never emit an empty impl block.
	if !hasContent {
		return ""
	}
	return output + "}\n\n"
}

func renderImplItem(state *renderState, pathPrefix string, item *ir.Item, includeAll bool) string {
	if !includeAll && !state.selectionContextContains(item.Id) {
		return ""
	}
	if state.shouldFilter(pathPrefix, item) {
		return ""
	}

	switch item.Inner.(type) {
	case ir.Function:
		return renderFunctionItem(item, false)
	case ir.Constant:
		return renderConstantItem(item)
	case ir.AssocConst:
		return renderAssocConstItem(item)
	case ir.AssocType:
		return renderAssocTypeItem(item)
	case ir.TypeAlias:
		return renderTypeAliasItem(item)
	default:
		return ""
	}
}

func renderTraitDef(state *renderState, item *ir.Item) string {
	output := docs(item)
	trait := expectKind[ir.Trait](item)

	if !state.selectionContextContains(item.Id) {
		return ""
	}

	selection := newSelectionView(state, item.Id, true)

	bounds := ""
	if len(trait.Bounds) > 0 {
		if b := renderGenericBounds(trait.Bounds); b != "" {
			bounds = ": " + b
		}
	}

	unsafePrefix := ""
	if trait.IsUnsafe {
		unsafePrefix = "unsafe "
	}

	output += fmt.Sprintf("%s%strait %s%s%s%s {\n",
		renderVis(item), unsafePrefix, renderName(item),
		renderGenerics(trait.Generics), bounds, renderWhereClause(trait.Generics))

	for _, memberId := range trait.Items {
		if selection.includesChild(state, memberId) {
			output += renderTraitItem(mustGet(state.crate, memberId))
		}
	}

	return output + "}\n\n"
}

func renderTraitItem(item *ir.Item) string {
	switch item.Inner.(type) {
	case ir.Function:
		return renderFunctionItem(item, true)
	case ir.AssocConst:
		return renderAssocConstItem(item)
	case ir.AssocType:
		return renderAssocTypeItem(item)
	default:
		return ""
	}
}

func renderAssocConstItem(item *ir.Item) string {
	ac := expectKind[ir.AssocConst](item)
	def := ""
	if ac.Value != nil {
		def = " = " + *ac.Value
	}
	return fmt.Sprintf("const %s: %s%s;\n", renderName(item), renderType(ac.Type), def)
}

func renderAssocTypeItem(item *ir.Item) string {
	at := expectKind[ir.AssocType](item)
	bounds := ""
	if len(at.Bounds) > 0 {
		if b := renderGenericBounds(at.Bounds); b != "" {
			bounds = ": " + b
		}
	}
	def := ""
	if at.Type != nil {
		def = " = " + renderType(at.Type)
	}
	return fmt.Sprintf("type %s%s%s%s;\n", renderName(item), renderGenerics(at.Generics), bounds, def)
}

func lastPathSegment(path string) string {
	segments := strings.Split(path, "::")
	return segments[len(segments)-1]
}
