package render

import (
	"testing"

	"github.com/rskel/rskel/internal/ir"
)

func TestRenderTypeForms(t *testing.T) {
	t.Parallel()

	dynDraw := ir.DynTrait{Traits: []ir.PolyTrait{{Trait: ir.Path{Path: "Draw"}}}}
	dynMulti := ir.DynTrait{
		Traits: []ir.PolyTrait{
			{Trait: ir.Path{Path: "Draw"}},
			{Trait: ir.Path{Path: "Send"}},
		},
	}
	dynLifetime := ir.DynTrait{
		Traits:   []ir.PolyTrait{{Trait: ir.Path{Path: "Draw"}}},
		Lifetime: "'static",
	}

	tests := []struct {
		name string
		ty   ir.Type
		want string
	}{
		{"primitive", ir.PrimitiveType{Name: "u32"}, "u32"},
		{"generic", ir.Generic{Name: "T"}, "T"},
		{"infer", ir.Infer{}, "_"},
		{"tuple", ir.Tuple{Types: []ir.Type{ir.PrimitiveType{Name: "u8"}, ir.Generic{Name: "T"}}}, "(u8, T)"},
		{"slice", ir.Slice{Type: ir.PrimitiveType{Name: "u8"}}, "[u8]"},
		{"array", ir.Array{Type: ir.PrimitiveType{Name: "u8"}, Len: "4"}, "[u8; 4]"},
		{"const raw pointer", ir.RawPointer{Type: ir.PrimitiveType{Name: "u8"}}, "*const u8"},
		{"mut raw pointer", ir.RawPointer{IsMutable: true, Type: ir.PrimitiveType{Name: "u8"}}, "*mut u8"},
		{"shared ref", ir.BorrowedRef{Type: ir.PrimitiveType{Name: "str"}}, "&str"},
		{
			"mut ref with lifetime",
			ir.BorrowedRef{Lifetime: "'a", IsMutable: true, Type: ir.PrimitiveType{Name: "str"}},
			"&'a mut str",
		},
		{"bare dyn trait", dynDraw, "dyn Draw"},
		{
			"nested dyn single trait stays bare",
			ir.BorrowedRef{Type: dynDraw},
			"&dyn Draw",
		},
		{
			"nested dyn with two traits parenthesized",
			ir.BorrowedRef{Type: dynMulti},
			"&(dyn Draw + Send)",
		},
		{
			"nested dyn with lifetime parenthesized",
			ir.BorrowedRef{Type: dynLifetime},
			"&(dyn Draw + 'static)",
		},
		{
			"impl trait single bound",
			ir.ImplTrait{Bounds: []ir.GenericBound{ir.TraitBound{Trait: ir.Path{Path: "Read"}}}},
			"impl Read",
		},
		{
			"nested impl trait multi bound parenthesized",
			ir.BorrowedRef{Type: ir.ImplTrait{Bounds: []ir.GenericBound{
				ir.TraitBound{Trait: ir.Path{Path: "Read"}},
				ir.TraitBound{Trait: ir.Path{Path: "Send"}},
			}}},
			"&(impl Read + Send)",
		},
		{
			"qualified path with trait",
			ir.QualifiedPath{
				Name:     "Item",
				SelfType: ir.Generic{Name: "I"},
				Trait:    &ir.Path{Path: "Iterator"},
			},
			"<I as Iterator>::Item",
		},
		{
			"qualified path without trait",
			ir.QualifiedPath{Name: "Output", SelfType: ir.Generic{Name: "T"}},
			"T::Output",
		},
		{
			"function pointer",
			ir.FunctionPointer{Sig: ir.FunctionSignature{
				Inputs: []ir.Param{{Name: "x", Type: ir.PrimitiveType{Name: "u8"}}},
				Output: ir.PrimitiveType{Name: "bool"},
			}},
			"fn(x: u8) -> bool",
		},
		{
			"macro crate prefix stripped",
			ir.ResolvedPath{Path: ir.Path{Path: "$crate::Widget"}},
			"Widget",
		},
		{"pattern", ir.Pat{Type: ir.PrimitiveType{Name: "u32"}}, "/* pattern */"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := renderType(tt.ty); got != tt.want {
				t.Errorf("renderType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderGenericBoundModifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		bound ir.GenericBound
		want  string
	}{
		{
			"no modifier",
			ir.TraitBound{Trait: ir.Path{Path: "Debug"}},
			"Debug",
		},
		{
			"maybe modifier",
			ir.TraitBound{Trait: ir.Path{Path: "Sized"}, Modifier: ir.ModifierMaybe},
			"?Sized",
		},
		{
			"maybe const modifier",
			ir.TraitBound{Trait: ir.Path{Path: "MyTrait"}, Modifier: ir.ModifierMaybeConst},
			"~const MyTrait",
		},
		{
			"maybe const with path",
			ir.TraitBound{Trait: ir.Path{Path: "fallback::DisjointBitOr"}, Modifier: ir.ModifierMaybeConst},
			"~const fallback::DisjointBitOr",
		},
		{
			"outlives",
			ir.OutlivesBound{Lifetime: "'a"},
			"'a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := renderGenericBound(tt.bound); got != tt.want {
				t.Errorf("renderGenericBound = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreciseCapturingBoundsDropped(t *testing.T) {
	t.Parallel()

	sized := ir.TraitBound{Trait: ir.Path{Path: "Sized"}}
	capture := ir.UseBound{Args: []string{"'a", "T"}}

	if got := renderGenericBounds([]ir.GenericBound{sized, capture}); got != "Sized" {
		t.Errorf("bounds = %q, want Sized", got)
	}
	if got := renderGenericBounds([]ir.GenericBound{capture}); got != "" {
		t.Errorf("use-only bounds = %q, want empty", got)
	}
}

func TestSyntheticParamsDropped(t *testing.T) {
	t.Parallel()

	generics := ir.Generics{
		Params: []ir.GenericParamDef{
			{Name: "T", Kind: ir.TypeParam{}},
			{Name: "impl Trait", Kind: ir.TypeParam{IsSynthetic: true}},
		},
	}
	if got := renderGenerics(generics); got != "<T>" {
		t.Errorf("generics = %q, want <T>", got)
	}
}

func TestWherePredicateOnSyntheticParamOmitted(t *testing.T) {
	t.Parallel()

	generics := ir.Generics{
		WherePredicates: []ir.WherePredicate{
			ir.BoundPredicate{
				Type:   ir.Generic{Name: "impl Trait"},
				Bounds: []ir.GenericBound{ir.TraitBound{Trait: ir.Path{Path: "Send"}}},
				GenericParams: []ir.GenericParamDef{
					{Name: "impl Trait", Kind: ir.TypeParam{IsSynthetic: true}},
				},
			},
		},
	}
	if got := renderWhereClause(generics); got != "" {
		t.Errorf("where clause = %q, want empty", got)
	}
}

func TestHigherRankedTraitBounds(t *testing.T) {
	t.Parallel()

	generics := ir.Generics{
		WherePredicates: []ir.WherePredicate{
			ir.BoundPredicate{
				Type: ir.Generic{Name: "F"},
				Bounds: []ir.GenericBound{
					ir.TraitBound{Trait: ir.Path{Path: "Fn", Args: &ir.GenericArgs{
						Parenthesized: true,
						Inputs:        []ir.Type{ir.BorrowedRef{Lifetime: "'a", Type: ir.PrimitiveType{Name: "str"}}},
					}}},
				},
				GenericParams: []ir.GenericParamDef{
					{Name: "'a", Kind: ir.LifetimeParam{}},
				},
			},
		},
	}
	want := " where for<'a> F: Fn(&'a str)"
	if got := renderWhereClause(generics); got != want {
		t.Errorf("where clause = %q, want %q", got, want)
	}
}

func TestGenericArgsRendering(t *testing.T) {
	t.Parallel()

	args := &ir.GenericArgs{
		Args: []ir.GenericArg{
			ir.LifetimeArg{Lifetime: "'a"},
			ir.TypeArg{Type: ir.PrimitiveType{Name: "u8"}},
		},
		Constraints: []ir.AssocItemConstraint{
			{Name: "Item", Term: ir.TypeTerm{Type: ir.PrimitiveType{Name: "u8"}}},
		},
	}
	if got := renderGenericArgs(args); got != "<'a, u8, Item = u8>" {
		t.Errorf("args = %q", got)
	}

	macroArg := &ir.GenericArgs{
		Args: []ir.GenericArg{ir.ConstArg{Const: ir.ConstantExpr{Expr: "$N"}}},
	}
	if got := renderGenericArgs(macroArg); got != "</* macro expression */>" {
		t.Errorf("macro const arg = %q", got)
	}
}

func TestEscapePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"crate::r#try", "crate::r#try"},
		{"crate::try", "crate::r#try"},
		{"self::module::match", "self::module::r#match"},
		{"plain::path", "plain::path"},
		{"Self", "Self"},
	}
	for _, tt := range tests {
		if got := escapePath(tt.in); got != tt.want {
			t.Errorf("escapePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
