package render

import (
	"fmt"
	"strings"

	"github.com/rskel/rskel/internal/ir"
)

// selectionView captures how the active selection affects an item's children.
type selectionView struct {
	active      bool
	expandsSelf bool
}

func newSelectionView(state *renderState, id ir.Id, expandsWhenInactive bool) selectionView {
	active := state.config.Selection != nil
	expandsSelf := expandsWhenInactive
	if active {
		expandsSelf = state.selectionExpands(id)
	}
	return selectionView{active: active, expandsSelf: expandsSelf}
}

func (v selectionView) includesChild(state *renderState, childId ir.Id) bool {
	if !v.active {
		return true
	}
	return v.expandsSelf || state.selectionContextContains(childId)
}

func (v selectionView) forceChildren() bool {
	return v.active && v.expandsSelf
}

// renderItem renders any item, applying the selection, filter and visibility
// gates in that order. forcePrivate lifts the visibility gate for items made
// reachable through a re-export.
func renderItem(state *renderState, pathPrefix string, item *ir.Item, forcePrivate bool) string {
	if !state.selectionContextContains(item.Id) {
		return ""
	}
	if state.shouldFilter(pathPrefix, item) {
		return ""
	}

	var output string
	switch item.Inner.(type) {
	case ir.Module:
		output = renderModule(state, pathPrefix, item)
	case ir.Struct:
		output = renderStruct(state, pathPrefix, item)
	case ir.Enum:
		output = renderEnum(state, pathPrefix, item)
	case ir.Trait:
		output = renderTraitDef(state, item)
	case ir.TraitAlias:
		output = renderTraitAliasItem(item)
	case ir.Use:
		output = renderUse(state, pathPrefix, item)
	case ir.Function:
		output = renderFunctionItem(item, false)
	case ir.Constant:
		output = renderConstantItem(item)
	case ir.Static:
		output = renderStaticItem(item)
	case ir.TypeAlias:
		output = renderTypeAliasItem(item)
	case ir.Macro:
		output = renderMacro(item)
	case ir.ProcMacro:
		output = renderProcMacro(item)
	default:
		return ""
	}

	if !forcePrivate && !isVisible(state, item) {
		return ""
	}
	return output
}

func isVisible(state *renderState, item *ir.Item) bool {
	return state.config.PrivateItems || item.Visibility == ir.VisibilityPublic
}

func renderModule(state *renderState, pathPrefix string, item *ir.Item) string {
	pathPrefix = ppush(pathPrefix, renderName(item))
	var b strings.Builder
	fmt.Fprintf(&b, "%smod %s {\n", renderVis(item), renderName(item))

	if state.shouldModuleDoc(pathPrefix, item) && item.Docs != "" {
		for _, line := range strings.Split(item.Docs, "\n") {
			fmt.Fprintf(&b, "    //! %s\n", line)
		}
		b.WriteString("\n")
	}

	module := expectKind[ir.Module](item)
	for _, childId := range module.Items {
		child := mustGet(state.crate, childId)
		b.WriteString(renderItem(state, pathPrefix, child, false))
	}

	b.WriteString("}\n\n")
	return b.String()
}

// expectKind asserts an item's payload kind, panicking on graph corruption.
func expectKind[T ir.Inner](item *ir.Item) T {
	inner, ok := item.Inner.(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("expected item kind %s, found %s", want.ItemKind(), item.Kind()))
	}
	return inner
}

// collectInlineTraits gathers trait names for impls rewritten as #[derive].
func collectInlineTraits(state *renderState, impls []ir.Id) []string {
	var inline []string
	for _, implId := range impls {
		implItem := mustGet(state.crate, implId)
		impl := expectKind[ir.Impl](implItem)
		if impl.IsSynthetic {
			continue
		}
		if impl.Trait == nil {
			continue
		}
		name := lastPathSegment(impl.Trait.Path)
		if deriveTraits[name] {
			inline = append(inline, name)
		}
	}
	return inline
}

func renderStruct(state *renderState, pathPrefix string, item *ir.Item) string {
	st := expectKind[ir.Struct](item)

	generics := renderGenerics(st.Generics)
	whereClause := renderWhereClause(st.Generics)
	selection := newSelectionView(state, item.Id, false)

	var decl string
	switch st.Kind.Tag {
	case ir.StructUnit:
		decl = fmt.Sprintf("%sstruct %s%s%s;\n\n", renderVis(item), renderName(item), generics, whereClause)
	case ir.StructTuple:
		decl, _ = renderStructTuple(state, item, selection, generics, whereClause, st.Kind.TupleFields)
	case ir.StructPlain:
		decl = renderStructPlain(state, item, selection, generics, whereClause, st.Kind.PlainFields)
	}

	var output string
	if decl != "" {
		// Docs and derive lines only make sense attached to a declaration.
		output = docs(item)
		if inline := collectInlineTraits(state, st.Impls); len(inline) > 0 {
			output += fmt.Sprintf("#[derive(%s)]\n", strings.Join(inline, ", "))
		}
		output += decl
	}

	for _, implId := range st.Impls {
		implItem := mustGet(state.crate, implId)
		impl := expectKind[ir.Impl](implItem)
		if shouldRenderImpl(impl, state.config.AutoImpls) && state.selectionAllowsChild(item.Id, implId) {
			output += renderImpl(state, pathPrefix, implItem)
		}
	}

	return output
}

// renderStructTuple renders a positional struct. Hidden fields occupy their
// position as an underscore so arity survives; when nothing at all survives
// the struct is suppressed unless the selection expands it.
func renderStructTuple(state *renderState, item *ir.Item, selection selectionView, generics, whereClause string, fields []*ir.Id) (string, bool) {
	var parts []string
	for _, field := range fields {
		if field == nil {
			continue
		}
		if !selection.includesChild(state, *field) {
			continue
		}
		fieldItem := mustGet(state.crate, *field)
		ty := expectKind[ir.StructField](fieldItem)
		if !isVisible(state, fieldItem) {
			parts = append(parts, "_")
		} else {
			parts = append(parts, renderVis(fieldItem)+renderType(ty.Type))
		}
	}

	fieldsStr := strings.Join(parts, ", ")
	if !selection.expandsSelf && fieldsStr == "" {
		return "", false
	}
	return fmt.Sprintf("%sstruct %s%s(%s)%s;\n\n",
		renderVis(item), renderName(item), generics, fieldsStr, whereClause), true
}

func renderStructPlain(state *renderState, item *ir.Item, selection selectionView, generics, whereClause string, fields []ir.Id) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sstruct %s%s%s {\n", renderVis(item), renderName(item), generics, whereClause)
	for _, field := range fields {
		b.WriteString(renderStructField(state, field, selection.forceChildren()))
	}
	b.WriteString("}\n\n")
	return b.String()
}

// renderStructField renders a named field; force lifts both the selection and
// visibility gates.
func renderStructField(state *renderState, fieldId ir.Id, force bool) string {
	fieldItem := mustGet(state.crate, fieldId)

	if state.config.Selection != nil && !force && !state.selectionContextContains(fieldId) {
		return ""
	}
	if !force && !isVisible(state, fieldItem) {
		return ""
	}

	ty := expectKind[ir.StructField](fieldItem)
	return docs(fieldItem) + fmt.Sprintf("%s%s: %s,\n", renderVis(fieldItem), renderName(fieldItem), renderType(ty.Type))
}

func renderEnum(state *renderState, pathPrefix string, item *ir.Item) string {
	output := docs(item)
	en := expectKind[ir.Enum](item)

	selection := newSelectionView(state, item.Id, true)
	generics := renderGenerics(en.Generics)
	whereClause := renderWhereClause(en.Generics)

	if inline := collectInlineTraits(state, en.Impls); len(inline) > 0 {
		output += fmt.Sprintf("#[derive(%s)]\n", strings.Join(inline, ", "))
	}

	output += fmt.Sprintf("%senum %s%s%s {\n", renderVis(item), renderName(item), generics, whereClause)

	for _, variantId := range en.Variants {
		if selection.active && !selection.expandsSelf && !selection.includesChild(state, variantId) {
			continue
		}
		variantItem := mustGet(state.crate, variantId)
		includeFields := selection.expandsSelf || !selection.active || state.selectionMatches(variantId)
		output += renderEnumVariant(state, selection, variantItem, includeFields)
	}

	output += "}\n\n"

	for _, implId := range en.Impls {
		implItem := mustGet(state.crate, implId)
		impl := expectKind[ir.Impl](implItem)
		if shouldRenderImpl(impl, state.config.AutoImpls) && state.selectionAllowsChild(item.Id, implId) {
			output += renderImpl(state, pathPrefix, implItem)
		}
	}

	return output
}

func renderEnumVariant(state *renderState, selection selectionView, item *ir.Item, includeAllFields bool) string {
	output := docs(item)
	variant := expectKind[ir.Variant](item)

	output += "    " + renderName(item)

	switch variant.Kind.Tag {
	case ir.VariantPlain:
	case ir.VariantTuple:
		var parts []string
		for _, field := range variant.Kind.TupleFields {
			if field == nil {
				continue
			}
			if selection.active && !includeAllFields && !state.selectionContextContains(*field) {
				continue
			}
			fieldItem := mustGet(state.crate, *field)
			ty := expectKind[ir.StructField](fieldItem)
			parts = append(parts, renderType(ty.Type))
		}
		output += "(" + strings.Join(parts, ", ") + ")"
	case ir.VariantStruct:
		output += " {\n"
		for _, field := range variant.Kind.StructFields {
			if !selection.active || includeAllFields || state.selectionContextContains(field) {
				output += renderStructField(state, field, includeAllFields || !selection.active)
			}
		}
		output += "    }"
	}

	if variant.Discriminant != nil {
		output += " = " + variant.Discriminant.Expr
	}
	return output + ",\n"
}

// useResolution is the shape a use item resolves to.
type useResolution struct {
	items  []ir.Id
	source string
	alias  string
}

func renderUse(state *renderState, pathPrefix string, item *ir.Item) string {
	imp := expectKind[ir.Use](item)
	resolution := resolveUse(state, imp)

	if resolution.items != nil {
		var b strings.Builder
		for _, itemId := range resolution.items {
			if target, ok := state.crate.Index[itemId]; ok {
				// Re-exported items become externally reachable regardless of
				// their declared visibility.
				b.WriteString(renderItem(state, pathPrefix, target, true))
			}
		}
		return b.String()
	}

	output := docs(item)
	if resolution.alias != "" {
		return output + fmt.Sprintf("pub use %s as %s;\n", resolution.source, resolution.alias)
	}
	return output + fmt.Sprintf("pub use %s;\n", resolution.source)
}

func resolveUse(state *renderState, imp ir.Use) useResolution {
	if imp.IsGlob {
		return resolveGlobUse(state, imp)
	}

	if imp.Id != nil {
		if target, ok := state.crate.Index[*imp.Id]; ok {
			return useResolution{items: []ir.Id{target.Id}}
		}
	}

	return resolveAliasUse(imp)
}

func resolveGlobUse(state *renderState, imp ir.Use) useResolution {
	simple := useResolution{source: escapePath(imp.Source) + "::*"}
	if imp.Id == nil {
		return simple
	}
	sourceItem, ok := state.crate.Index[*imp.Id]
	if !ok {
		return simple
	}

	switch inner := sourceItem.Inner.(type) {
	case ir.Module:
		items := make([]ir.Id, 0, len(inner.Items))
		for _, childId := range inner.Items {
			if child, ok := state.crate.Index[childId]; ok && isVisible(state, child) {
				items = append(items, childId)
			}
		}
		return useResolution{items: items}
	case ir.Enum:
		items := make([]ir.Id, 0, len(inner.Variants))
		for _, variantId := range inner.Variants {
			if variant, ok := state.crate.Index[variantId]; ok && isVisible(state, variant) {
				items = append(items, variantId)
			}
		}
		return useResolution{items: items}
	default:
		return simple
	}
}

func resolveAliasUse(imp ir.Use) useResolution {
	source := escapePath(imp.Source)
	segments := strings.Split(imp.Source, "::")
	lastSegment := segments[len(segments)-1]
	if imp.Name != lastSegment {
		return useResolution{source: source, alias: escapeName(imp.Name)}
	}
	return useResolution{source: source}
}

// renderFunctionItem renders a function declaration. Trait methods without a
// default body end in a bare semicolon; everything else gets an empty body.
func renderFunctionItem(item *ir.Item, isTraitMethod bool) string {
	output := docs(item)
	fn := expectKind[ir.Function](item)

	qualifiers := renderFunctionQualifiers(fn.Header)
	if qualifiers != "" {
		qualifiers += " "
	}

	output += fmt.Sprintf("%s%sfn %s%s(%s)%s%s",
		renderVis(item),
		qualifiers,
		renderName(item),
		renderGenerics(fn.Generics),
		renderFunctionArgs(fn.Sig),
		renderReturnType(fn.Sig),
		renderWhereClause(fn.Generics),
	)

	if isTraitMethod && !fn.HasBody {
		return output + ";\n\n"
	}
	return output + " {}\n\n"
}

func renderConstantItem(item *ir.Item) string {
	c := expectKind[ir.Constant](item)
	return docs(item) + fmt.Sprintf("%sconst %s: %s = %s;\n\n",
		renderVis(item), renderName(item), renderType(c.Type), c.Const.Expr)
}

func renderStaticItem(item *ir.Item) string {
	st := expectKind[ir.Static](item)
	mutability := ""
	if st.IsMutable {
		mutability = "mut "
	}
	expr := st.Expr
	if expr == "" || expr == "_" {
		expr = "/* value elided */"
	}
	return docs(item) + fmt.Sprintf("%sstatic %s%s: %s = %s;\n\n",
		renderVis(item), mutability, renderName(item), renderType(st.Type), expr)
}

func renderTypeAliasItem(item *ir.Item) string {
	alias := expectKind[ir.TypeAlias](item)
	return docs(item) + fmt.Sprintf("%stype %s%s%s = %s;\n\n",
		renderVis(item), renderName(item),
		renderGenerics(alias.Generics), renderWhereClause(alias.Generics),
		renderType(alias.Type))
}

func renderTraitAliasItem(item *ir.Item) string {
	alias := expectKind[ir.TraitAlias](item)
	bounds := renderGenericBounds(alias.Params)
	equals := ""
	if bounds != "" {
		equals = " = " + bounds
	}
	return docs(item) + fmt.Sprintf("%strait %s%s%s%s;\n\n",
		renderVis(item), renderName(item),
		renderGenerics(alias.Generics), equals,
		renderWhereClause(alias.Generics))
}
