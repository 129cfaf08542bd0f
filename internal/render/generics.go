package render

import (
	"fmt"
	"strings"

	"github.com/rskel/rskel/internal/ir"
)

// renderGenerics renders the parameter list of an item, e.g. <'a, T: Clone>.
// Compiler-synthesized parameters are never user-writable and are dropped.
func renderGenerics(generics ir.Generics) string {
	params := make([]string, 0, len(generics.Params))
	for _, param := range generics.Params {
		if rendered, ok := renderGenericParamDef(param); ok {
			params = append(params, rendered)
		}
	}
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func renderGenericParamDef(param ir.GenericParamDef) (string, bool) {
	switch kind := param.Kind.(type) {
	case ir.LifetimeParam:
		outlives := ""
		if len(kind.Outlives) > 0 {
			outlives = ": " + strings.Join(kind.Outlives, " + ")
		}
		return param.Name + outlives, true

	case ir.TypeParam:
		if kind.IsSynthetic {
			return "", false
		}
		bounds := ""
		if len(kind.Bounds) > 0 {
			if b := renderGenericBounds(kind.Bounds); b != "" {
				bounds = ": " + b
			}
		}
		def := ""
		if kind.Default != nil {
			def = " = " + renderType(kind.Default)
		}
		return param.Name + bounds + def, true

	case ir.ConstParam:
		def := ""
		if kind.Default != nil {
			def = " = " + *kind.Default
		}
		return fmt.Sprintf("const %s: %s%s", param.Name, renderType(kind.Type), def), true

	default:
		panic(fmt.Sprintf("unhandled generic param kind %T", param.Kind))
	}
}

// renderGenericArgs renders concrete arguments applied to a path.
func renderGenericArgs(args *ir.GenericArgs) string {
	if args.ReturnTypeNotation {
		return ""
	}
	if args.Parenthesized {
		inputs := make([]string, 0, len(args.Inputs))
		for _, in := range args.Inputs {
			inputs = append(inputs, renderType(in))
		}
		output := ""
		if args.Output != nil {
			output = " -> " + renderType(args.Output)
		}
		return "(" + strings.Join(inputs, ", ") + ")" + output
	}

	if len(args.Args) == 0 && len(args.Constraints) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args.Args)+len(args.Constraints))
	for _, arg := range args.Args {
		parts = append(parts, renderGenericArg(arg))
	}
	for _, constraint := range args.Constraints {
		parts = append(parts, renderAssocConstraint(constraint))
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func renderGenericArg(arg ir.GenericArg) string {
	switch a := arg.(type) {
	case ir.LifetimeArg:
		return a.Lifetime
	case ir.TypeArg:
		return renderType(a.Type)
	case ir.ConstArg:
		// Unexpanded macro variables would produce invalid syntax.
		if strings.Contains(a.Const.Expr, "$") {
			return "/* macro expression */"
		}
		return a.Const.Expr
	case ir.InferArg:
		return "_"
	default:
		panic(fmt.Sprintf("unhandled generic arg kind %T", arg))
	}
}

func renderAssocConstraint(constraint ir.AssocItemConstraint) string {
	binding := ""
	if constraint.Term != nil {
		binding = " = " + renderTerm(constraint.Term)
	} else if len(constraint.Bounds) > 0 {
		if b := renderGenericBounds(constraint.Bounds); b != "" {
			binding = ": " + b
		}
	}
	return constraint.Name + binding
}

func renderTerm(term ir.Term) string {
	switch t := term.(type) {
	case ir.TypeTerm:
		return renderType(t.Type)
	case ir.ConstTerm:
		return t.Const.Expr
	default:
		panic(fmt.Sprintf("unhandled term kind %T", term))
	}
}

// renderGenericBound renders one bound; precise-capturing use<..> bounds have
// no stable surface syntax and render as nothing.
func renderGenericBound(bound ir.GenericBound) string {
	switch b := bound.(type) {
	case ir.UseBound:
		return ""
	case ir.TraitBound:
		poly := renderPolyTrait(ir.PolyTrait{Trait: b.Trait, GenericParams: b.GenericParams})
		switch b.Modifier {
		case ir.ModifierMaybe:
			return "?" + poly
		case ir.ModifierMaybeConst:
			return "~const " + poly
		default:
			return poly
		}
	case ir.OutlivesBound:
		return b.Lifetime
	default:
		panic(fmt.Sprintf("unhandled generic bound kind %T", bound))
	}
}

// renderGenericBounds joins bounds with +, dropping empty renderings.
func renderGenericBounds(bounds []ir.GenericBound) string {
	parts := make([]string, 0, len(bounds))
	for _, bound := range bounds {
		if rendered := renderGenericBound(bound); strings.TrimSpace(rendered) != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, " + ")
}

// renderPolyTrait renders a trait reference with its for<..> binder if any.
func renderPolyTrait(poly ir.PolyTrait) string {
	binder := ""
	if len(poly.GenericParams) > 0 {
		params := make([]string, 0, len(poly.GenericParams))
		for _, p := range poly.GenericParams {
			if rendered, ok := renderGenericParamDef(p); ok {
				params = append(params, rendered)
			}
		}
		if len(params) > 0 {
			binder = "for<" + strings.Join(params, ", ") + "> "
		}
	}
	return binder + renderPath(poly.Trait)
}

// renderWhereClause renders the where clause of a generics block, or nothing
// when every predicate collapses.
func renderWhereClause(generics ir.Generics) string {
	predicates := make([]string, 0, len(generics.WherePredicates))
	for _, pred := range generics.WherePredicates {
		if rendered, ok := renderWherePredicate(pred); ok {
			predicates = append(predicates, rendered)
		}
	}
	if len(predicates) == 0 {
		return ""
	}
	return " where " + strings.Join(predicates, ", ")
}

func renderWherePredicate(pred ir.WherePredicate) (string, bool) {
	switch p := pred.(type) {
	case ir.BoundPredicate:
		// Predicates over synthetic parameters are not user-writable.
		if _, isGeneric := p.Type.(ir.Generic); isGeneric {
			for _, param := range p.GenericParams {
				if tp, ok := param.Kind.(ir.TypeParam); ok && tp.IsSynthetic {
					return "", false
				}
			}
		}

		binder := ""
		if len(p.GenericParams) > 0 {
			params := make([]string, 0, len(p.GenericParams))
			for _, param := range p.GenericParams {
				if rendered, ok := renderGenericParamDef(param); ok {
					params = append(params, rendered)
				}
			}
			if len(params) > 0 {
				binder = "for<" + strings.Join(params, ", ") + "> "
			}
		}

		bounds := renderGenericBounds(p.Bounds)
		if bounds == "" {
			return "", false
		}
		return fmt.Sprintf("%s%s: %s", binder, renderType(p.Type), bounds), true

	case ir.LifetimePredicate:
		if len(p.Outlives) == 0 {
			return p.Lifetime, true
		}
		return p.Lifetime + ": " + strings.Join(p.Outlives, " + "), true

	case ir.EqPredicate:
		return renderType(p.Lhs) + " = " + renderTerm(p.Rhs), true

	default:
		panic(fmt.Sprintf("unhandled where predicate kind %T", pred))
	}
}
