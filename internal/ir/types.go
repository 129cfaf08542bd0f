package ir

// Type is the closed set of rustdoc type shapes. Rendering dispatches
// exhaustively over the implementations.
type Type interface {
	// TypeKind returns the rustdoc kind tag for the type.
	TypeKind() string
}

// Path references a named item, optionally with generic arguments.
type Path struct {
	Path string
	Id   Id
	Args *GenericArgs
}

// ResolvedPath is a type referring to a path in the graph.
type ResolvedPath struct {
	Path Path
}

// DynTrait is a trait object: one or more trait bounds plus an optional
// lifetime bound.
type DynTrait struct {
	Traits   []PolyTrait
	Lifetime string
}

// PolyTrait is a trait reference with optional universally-quantified
// binders (for<'a> ...).
type PolyTrait struct {
	Trait         Path
	GenericParams []GenericParamDef
}

// Generic is a bare generic parameter such as T or Self.
type Generic struct {
	Name string
}

// PrimitiveType is a built-in such as u32 or str.
type PrimitiveType struct {
	Name string
}

// FunctionPointer is a fn(...) -> ... type.
type FunctionPointer struct {
	Sig           FunctionSignature
	GenericParams []GenericParamDef
	Header        FunctionHeader
}

type Tuple struct {
	Types []Type
}

type Slice struct {
	Type Type
}

type Array struct {
	Type Type
	Len  string
}

// ImplTrait is an opaque existential type (impl Bound + Bound).
type ImplTrait struct {
	Bounds []GenericBound
}

// Infer is the `_` placeholder type.
type Infer struct{}

type RawPointer struct {
	IsMutable bool
	Type      Type
}

type BorrowedRef struct {
	Lifetime  string
	IsMutable bool
	Type      Type
}

// QualifiedPath is a possibly trait-disambiguated associated path such as
// <T as Iterator>::Item.
type QualifiedPath struct {
	Name     string
	Args     *GenericArgs
	SelfType Type
	Trait    *Path
}

// Pat is an unstable pattern type; it has no surface rendering.
type Pat struct {
	Type Type
}

func (ResolvedPath) TypeKind() string    { return "resolved_path" }
func (DynTrait) TypeKind() string        { return "dyn_trait" }
func (Generic) TypeKind() string         { return "generic" }
func (PrimitiveType) TypeKind() string   { return "primitive" }
func (FunctionPointer) TypeKind() string { return "function_pointer" }
func (Tuple) TypeKind() string           { return "tuple" }
func (Slice) TypeKind() string           { return "slice" }
func (Array) TypeKind() string           { return "array" }
func (ImplTrait) TypeKind() string       { return "impl_trait" }
func (Infer) TypeKind() string           { return "infer" }
func (RawPointer) TypeKind() string      { return "raw_pointer" }
func (BorrowedRef) TypeKind() string     { return "borrowed_ref" }
func (QualifiedPath) TypeKind() string   { return "qualified_path" }
func (Pat) TypeKind() string             { return "pat" }

// Generics carries an item's generic parameters and where predicates.
type Generics struct {
	Params          []GenericParamDef
	WherePredicates []WherePredicate
}

// GenericParamDef is one declared generic parameter.
type GenericParamDef struct {
	Name string
	Kind GenericParamDefKind
}

// GenericParamDefKind is the closed set of parameter kinds.
type GenericParamDefKind interface {
	paramKind() string
}

type LifetimeParam struct {
	Outlives []string
}

// TypeParam is a type parameter; synthetic ones come from impl-trait
// desugaring and are never rendered.
type TypeParam struct {
	Bounds      []GenericBound
	Default     Type
	IsSynthetic bool
}

type ConstParam struct {
	Type    Type
	Default *string
}

func (LifetimeParam) paramKind() string { return "lifetime" }
func (TypeParam) paramKind() string     { return "type" }
func (ConstParam) paramKind() string    { return "const" }

// TraitBoundModifier adjusts how a trait bound applies.
type TraitBoundModifier string

const (
	ModifierNone       TraitBoundModifier = "none"
	ModifierMaybe      TraitBoundModifier = "maybe"
	ModifierMaybeConst TraitBoundModifier = "maybe_const"
)

// GenericBound is the closed set of bound shapes.
type GenericBound interface {
	boundKind() string
}

type TraitBound struct {
	Trait         Path
	GenericParams []GenericParamDef
	Modifier      TraitBoundModifier
}

type OutlivesBound struct {
	Lifetime string
}

// UseBound is the unstable precise-capturing use<'a, T> bound. It has no
// valid surface rendering and is dropped from bound lists.
type UseBound struct {
	Args []string
}

func (TraitBound) boundKind() string    { return "trait_bound" }
func (OutlivesBound) boundKind() string { return "outlives" }
func (UseBound) boundKind() string      { return "use" }

// WherePredicate is the closed set of where-clause predicate shapes.
type WherePredicate interface {
	predicateKind() string
}

type BoundPredicate struct {
	Type          Type
	Bounds        []GenericBound
	GenericParams []GenericParamDef
}

type LifetimePredicate struct {
	Lifetime string
	Outlives []string
}

type EqPredicate struct {
	Lhs Type
	Rhs Term
}

func (BoundPredicate) predicateKind() string    { return "bound_predicate" }
func (LifetimePredicate) predicateKind() string { return "lifetime_predicate" }
func (EqPredicate) predicateKind() string       { return "eq_predicate" }

// Term is the right-hand side of an equality constraint.
type Term interface {
	termKind() string
}

type TypeTerm struct {
	Type Type
}

type ConstTerm struct {
	Const ConstantExpr
}

func (TypeTerm) termKind() string  { return "type" }
func (ConstTerm) termKind() string { return "constant" }

// GenericArgs is a concrete argument list attached to a path.
type GenericArgs struct {
	// AngleBracketed form: <T, 'a, N = ...>
	Args        []GenericArg
	Constraints []AssocItemConstraint
	// Parenthesized form: Fn(A, B) -> C
	Parenthesized bool
	Inputs        []Type
	Output        Type
	// ReturnTypeNotation renders to nothing.
	ReturnTypeNotation bool
}

// GenericArg is the closed set of argument shapes.
type GenericArg interface {
	argKind() string
}

type LifetimeArg struct {
	Lifetime string
}

type TypeArg struct {
	Type Type
}

type ConstArg struct {
	Const ConstantExpr
}

type InferArg struct{}

func (LifetimeArg) argKind() string { return "lifetime" }
func (TypeArg) argKind() string     { return "type" }
func (ConstArg) argKind() string    { return "const" }
func (InferArg) argKind() string    { return "infer" }

// AssocItemConstraint constrains an associated item in a path's argument
// list, either by equality (Item = T) or by bounds (Item: Bound).
type AssocItemConstraint struct {
	Name   string
	Args   *GenericArgs
	Term   Term           // equality form; nil when Bounds is set
	Bounds []GenericBound // constraint form
}
