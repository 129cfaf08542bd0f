package render

import (
	"fmt"
	"strings"

	"github.com/rskel/rskel/internal/ir"
)

// renderType renders a type at the top level of an expression position.
func renderType(ty ir.Type) string {
	return renderTypeInner(ty, false)
}

// renderTypeInner renders a type, tracking nesting so forms that would be
// ambiguous inside a reference or pointer get parenthesized.
func renderTypeInner(ty ir.Type, nested bool) string {
	switch t := ty.(type) {
	case ir.ResolvedPath:
		return renderPath(t.Path)

	case ir.DynTrait:
		traits := make([]string, 0, len(t.Traits))
		for _, pt := range t.Traits {
			traits = append(traits, renderPolyTrait(pt))
		}
		joined := strings.Join(traits, " + ")
		lifetime := ""
		if t.Lifetime != "" {
			lifetime = " + " + t.Lifetime
		}
		inner := "dyn " + joined + lifetime
		if nested && (t.Lifetime != "" || len(t.Traits) > 1 || strings.Contains(joined, " + ")) {
			return "(" + inner + ")"
		}
		return inner

	case ir.Generic:
		return t.Name

	case ir.PrimitiveType:
		return t.Name

	case ir.FunctionPointer:
		return "fn(" + renderFunctionArgs(t.Sig) + ")" + renderReturnType(t.Sig)

	case ir.Tuple:
		parts := make([]string, 0, len(t.Types))
		for _, elem := range t.Types {
			parts = append(parts, renderTypeInner(elem, true))
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case ir.Slice:
		return "[" + renderTypeInner(t.Type, true) + "]"

	case ir.Array:
		return fmt.Sprintf("[%s; %s]", renderTypeInner(t.Type, true), t.Len)

	case ir.ImplTrait:
		bounds := renderGenericBounds(t.Bounds)
		// Multiple bounds inside a reference or parameter need parentheses.
		if nested && strings.Contains(bounds, " + ") {
			return "(impl " + bounds + ")"
		}
		return "impl " + bounds

	case ir.Infer:
		return "_"

	case ir.RawPointer:
		mutability := "const"
		if t.IsMutable {
			mutability = "mut"
		}
		return fmt.Sprintf("*%s %s", mutability, renderTypeInner(t.Type, true))

	case ir.BorrowedRef:
		lifetime := ""
		if t.Lifetime != "" {
			lifetime = t.Lifetime + " "
		}
		mutability := ""
		if t.IsMutable {
			mutability = "mut "
		}
		return "&" + lifetime + mutability + renderTypeInner(t.Type, true)

	case ir.QualifiedPath:
		selfType := renderTypeInner(t.SelfType, true)
		args := ""
		if t.Args != nil {
			args = renderGenericArgs(t.Args)
		}
		if t.Trait != nil {
			if traitPath := renderPath(*t.Trait); traitPath != "" {
				return fmt.Sprintf("<%s as %s>::%s%s", selfType, traitPath, t.Name, args)
			}
		}
		return fmt.Sprintf("%s::%s%s", selfType, t.Name, args)

	case ir.Pat:
		return "/* pattern */"

	default:
		panic(fmt.Sprintf("unhandled type kind %T", ty))
	}
}

// renderPath renders a type or module path, including any generic arguments.
// Unexpanded $crate:: prefixes from macro output are stripped.
func renderPath(path ir.Path) string {
	args := ""
	if path.Args != nil {
		args = renderGenericArgs(path.Args)
	}
	return strings.ReplaceAll(path.Path, "$crate::", "") + args
}

// docs renders an item's documentation as /// comment lines.
func docs(item *ir.Item) string {
	if item.Docs == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(item.Docs, "\n") {
		b.WriteString("/// ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderVis renders the visibility modifier, which only appears for public.
func renderVis(item *ir.Item) string {
	if item.Visibility == ir.VisibilityPublic {
		return "pub "
	}
	return ""
}

// renderName renders the item name, escaped when it collides with a keyword.
func renderName(item *ir.Item) string {
	if item.Name == "" {
		return "?"
	}
	return escapeName(item.Name)
}
