package render

import (
	"fmt"
	"strings"

	"github.com/rskel/rskel/internal/ir"
)

// Signature renders a compact, declaration-only one-liner for an item. These
// feed search results and listings; they carry no body and no docs.
func Signature(crate *ir.Crate, item *ir.Item) string {
	switch inner := item.Inner.(type) {
	case ir.Module:
		return strings.TrimSpace(renderVis(item) + "mod " + renderName(item))

	case ir.Struct:
		return strings.TrimSpace(fmt.Sprintf("%sstruct %s%s%s",
			renderVis(item), renderName(item),
			renderGenerics(inner.Generics), renderWhereClause(inner.Generics)))

	case ir.Enum:
		return strings.TrimSpace(fmt.Sprintf("%senum %s%s%s",
			renderVis(item), renderName(item),
			renderGenerics(inner.Generics), renderWhereClause(inner.Generics)))

	case ir.Variant:
		return variantSignature(crate, item, inner)

	case ir.StructField:
		return fieldSignature(item, inner)

	case ir.Trait:
		var b strings.Builder
		b.WriteString(renderVis(item))
		if inner.IsUnsafe {
			b.WriteString("unsafe ")
		}
		b.WriteString("trait ")
		b.WriteString(renderName(item))
		b.WriteString(renderGenerics(inner.Generics))
		if len(inner.Bounds) > 0 {
			if bounds := renderGenericBounds(inner.Bounds); bounds != "" {
				b.WriteString(": ")
				b.WriteString(bounds)
			}
		}
		b.WriteString(renderWhereClause(inner.Generics))
		return strings.TrimSpace(b.String())

	case ir.TraitAlias:
		var b strings.Builder
		b.WriteString(renderVis(item))
		b.WriteString("trait ")
		b.WriteString(renderName(item))
		b.WriteString(renderGenerics(inner.Generics))
		if bounds := renderGenericBounds(inner.Params); bounds != "" {
			b.WriteString(" = ")
			b.WriteString(bounds)
		}
		b.WriteString(renderWhereClause(inner.Generics))
		return strings.TrimSpace(b.String())

	case ir.Impl:
		traitPart := ""
		if inner.Trait != nil {
			traitPart = renderPath(*inner.Trait) + " for "
		}
		return strings.TrimSpace(fmt.Sprintf("impl%s %s%s",
			renderGenerics(inner.Generics), traitPart, renderType(inner.For)))

	case ir.Function:
		return functionSignature(item, inner)

	case ir.Constant:
		return strings.TrimSpace(fmt.Sprintf("%sconst %s: %s",
			renderVis(item), renderName(item), renderType(inner.Type)))

	case ir.Static:
		return strings.TrimSpace(fmt.Sprintf("%sstatic %s: %s",
			renderVis(item), renderName(item), renderType(inner.Type)))

	case ir.TypeAlias:
		return strings.TrimSpace(fmt.Sprintf("%stype %s%s%s = %s",
			renderVis(item), renderName(item),
			renderGenerics(inner.Generics), renderWhereClause(inner.Generics),
			renderType(inner.Type)))

	case ir.AssocConst:
		return fmt.Sprintf("const %s: %s", renderName(item), renderType(inner.Type))

	case ir.AssocType:
		if inner.Type != nil {
			return fmt.Sprintf("type %s = %s", renderName(item), renderType(inner.Type))
		}
		if len(inner.Bounds) > 0 {
			if bounds := renderGenericBounds(inner.Bounds); bounds != "" {
				return fmt.Sprintf("type %s: %s", renderName(item), bounds)
			}
		}
		return "type " + renderName(item)

	case ir.Macro:
		return "macro " + renderName(item)

	case ir.ProcMacro:
		var prefix string
		switch inner.Kind {
		case ir.MacroDerive:
			prefix = "#[proc_macro_derive]"
		case ir.MacroAttr:
			prefix = "#[proc_macro_attribute]"
		default:
			prefix = "#[proc_macro]"
		}
		return prefix + " " + renderName(item)

	case ir.Use:
		var b strings.Builder
		b.WriteString(renderVis(item))
		b.WriteString("use ")
		b.WriteString(inner.Source)
		segments := strings.Split(inner.Source, "::")
		if inner.Name != segments[len(segments)-1] {
			b.WriteString(" as ")
			b.WriteString(inner.Name)
		}
		if inner.IsGlob {
			b.WriteString("::*")
		}
		return strings.TrimSpace(b.String())

	case ir.Primitive:
		return "primitive " + renderName(item)

	default:
		return renderName(item)
	}
}

func functionSignature(item *ir.Item, fn ir.Function) string {
	var parts []string
	if vis := strings.TrimSpace(renderVis(item)); vis != "" {
		parts = append(parts, vis)
	}
	if qualifiers := renderFunctionQualifiers(fn.Header); qualifiers != "" {
		parts = append(parts, qualifiers)
	}
	parts = append(parts, "fn")

	var b strings.Builder
	b.WriteString(strings.Join(parts, " "))
	b.WriteString(" ")
	b.WriteString(renderName(item))
	b.WriteString(renderGenerics(fn.Generics))
	b.WriteString("(")
	b.WriteString(renderFunctionArgs(fn.Sig))
	b.WriteString(")")
	b.WriteString(renderReturnType(fn.Sig))
	b.WriteString(renderWhereClause(fn.Generics))
	return b.String()
}

func fieldSignature(item *ir.Item, field ir.StructField) string {
	var b strings.Builder
	if vis := strings.TrimSpace(renderVis(item)); vis != "" {
		b.WriteString(vis)
		b.WriteString(" ")
	}
	if item.Name != "" {
		b.WriteString(item.Name)
		b.WriteString(": ")
	}
	b.WriteString(renderType(field.Type))
	return b.String()
}

func variantSignature(crate *ir.Crate, item *ir.Item, variant ir.Variant) string {
	var b strings.Builder
	b.WriteString(renderName(item))

	fieldType := func(id ir.Id) (string, bool) {
		fieldItem, ok := crate.Index[id]
		if !ok {
			return "", false
		}
		field, ok := fieldItem.Inner.(ir.StructField)
		if !ok {
			return "", false
		}
		return renderType(field.Type), true
	}

	switch variant.Kind.Tag {
	case ir.VariantTuple:
		var parts []string
		for _, field := range variant.Kind.TupleFields {
			if field == nil {
				continue
			}
			if ty, ok := fieldType(*field); ok {
				parts = append(parts, ty)
			}
		}
		b.WriteString("(")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	case ir.VariantStruct:
		var parts []string
		for _, field := range variant.Kind.StructFields {
			if fieldItem, ok := crate.Index[field]; ok {
				if sf, ok := fieldItem.Inner.(ir.StructField); ok {
					parts = append(parts, fieldItem.Name+": "+renderType(sf.Type))
				}
			}
		}
		b.WriteString(" { ")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(" }")
	}
	return b.String()
}
