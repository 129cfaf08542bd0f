package render

import (
	"strings"

	"github.com/rskel/rskel/internal/ir"
)

// renderFunctionArgs renders a parameter list, collapsing self receivers to
// their shorthand forms where possible.
func renderFunctionArgs(sig ir.FunctionSignature) string {
	parts := make([]string, 0, len(sig.Inputs))
	for _, input := range sig.Inputs {
		if input.Name == "self" {
			parts = append(parts, renderSelfParam(input.Type))
			continue
		}
		parts = append(parts, input.Name+": "+renderType(input.Type))
	}
	return strings.Join(parts, ", ")
}

func renderSelfParam(ty ir.Type) string {
	switch t := ty.(type) {
	case ir.BorrowedRef:
		if t.IsMutable {
			return "&mut self"
		}
		return "&self"
	case ir.ResolvedPath:
		if t.Path.Path == "Self" && t.Path.Args == nil {
			return "self"
		}
	case ir.Generic:
		if t.Name == "Self" {
			return "self"
		}
	}
	return "self: " + renderType(ty)
}

// renderReturnType renders the -> clause, or nothing for unit returns.
func renderReturnType(sig ir.FunctionSignature) string {
	if sig.Output == nil {
		return ""
	}
	return " -> " + renderType(sig.Output)
}

// renderFunctionQualifiers renders const/async/unsafe in declaration order.
func renderFunctionQualifiers(header ir.FunctionHeader) string {
	var prefixes []string
	if header.IsConst {
		prefixes = append(prefixes, "const")
	}
	if header.IsAsync {
		prefixes = append(prefixes, "async")
	}
	if header.IsUnsafe {
		prefixes = append(prefixes, "unsafe")
	}
	return strings.Join(prefixes, " ")
}
