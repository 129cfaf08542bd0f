// Package ir models the rustdoc JSON item graph as a closed set of Go types.
//
// The graph is decoded once and treated as immutable afterwards: render and
// search calls only ever read it, so independent calls may share one Crate.
package ir

import "strconv"

// Id identifies an item within a single crate's index.
type Id int

func (id Id) String() string {
	return strconv.Itoa(int(id))
}

// Crate is the top-level structure of rustdoc JSON output.
type Crate struct {
	Root            Id
	CrateVersion    string
	IncludesPrivate bool
	Index           map[Id]*Item
	Paths           map[Id]ItemSummary
	ExternalCrates  map[int]ExternalCrate
	FormatVersion   int
}

// ItemSummary provides the canonical path and kind for an item, including
// items defined in other crates.
type ItemSummary struct {
	CrateId int
	Path    []string
	Kind    string
}

// ExternalCrate identifies a dependency crate by name.
type ExternalCrate struct {
	Name        string
	HTMLRootURL string
}

// Item is a single node in the item graph. Name is empty for items that have
// none (impl blocks), Docs is empty when undocumented.
type Item struct {
	Id         Id
	CrateId    int
	Name       string
	Docs       string
	Links      map[string]Id
	Visibility Visibility
	Inner      Inner
}

// Visibility of an item. Restricted covers pub(crate), pub(super) and
// pub(in path) forms, which the renderer treats uniformly as non-public.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityDefault    Visibility = "default"
	VisibilityCrate      Visibility = "crate"
	VisibilityRestricted Visibility = "restricted"
)

// Inner is the kind-specific payload of an item. The set of implementations
// is closed: every rendering concern dispatches exhaustively over it and
// panics on an unexpected kind.
type Inner interface {
	// ItemKind returns the rustdoc kind tag for the payload.
	ItemKind() string
}

// Module groups child items.
type Module struct {
	IsCrate    bool
	Items      []Id
	IsStripped bool
}

// StructKindTag distinguishes the three struct shapes.
type StructKindTag int

const (
	StructUnit StructKindTag = iota
	StructTuple
	StructPlain
)

// StructKind describes a struct's field layout. TupleFields entries are nil
// for fields stripped out of the rustdoc output; their positions still count
// toward the tuple arity.
type StructKind struct {
	Tag               StructKindTag
	TupleFields       []*Id
	PlainFields       []Id
	HasStrippedFields bool
}

type Struct struct {
	Kind     StructKind
	Generics Generics
	Impls    []Id
}

type Enum struct {
	Generics Generics
	Variants []Id
	Impls    []Id
}

// VariantKindTag distinguishes the three enum variant shapes.
type VariantKindTag int

const (
	VariantPlain VariantKindTag = iota
	VariantTuple
	VariantStruct
)

type VariantKind struct {
	Tag               VariantKindTag
	TupleFields       []*Id
	StructFields      []Id
	HasStrippedFields bool
}

type Discriminant struct {
	Expr  string
	Value string
}

type Variant struct {
	Kind         VariantKind
	Discriminant *Discriminant
}

// StructField carries the field's type; name and visibility live on Item.
type StructField struct {
	Type Type
}

type Trait struct {
	IsAuto          bool
	IsUnsafe        bool
	IsDynCompatible bool
	Items           []Id
	Generics        Generics
	Bounds          []GenericBound
	Implementations []Id
}

type TraitAlias struct {
	Generics Generics
	Params   []GenericBound
}

type Impl struct {
	IsUnsafe    bool
	Generics    Generics
	Trait       *Path
	For         Type
	Items       []Id
	IsNegative  bool
	IsSynthetic bool
	BlanketImpl Type
}

type FunctionHeader struct {
	IsConst  bool
	IsUnsafe bool
	IsAsync  bool
}

// Param is one function input. Self parameters use the name "self".
type Param struct {
	Name string
	Type Type
}

type FunctionSignature struct {
	Inputs      []Param
	Output      Type
	IsCVariadic bool
}

type Function struct {
	Sig      FunctionSignature
	Generics Generics
	Header   FunctionHeader
	HasBody  bool
}

type ConstantExpr struct {
	Expr      string
	Value     string
	IsLiteral bool
}

type Constant struct {
	Type  Type
	Const ConstantExpr
}

type Static struct {
	Type      Type
	IsMutable bool
	Expr      string
	IsUnsafe  bool
}

type TypeAlias struct {
	Type     Type
	Generics Generics
}

// Macro holds the source text of a macro_rules! or new-style macro definition.
type Macro struct {
	Source string
}

// MacroKind is the role of a procedural macro.
type MacroKind string

const (
	MacroDerive MacroKind = "derive"
	MacroAttr   MacroKind = "attr"
	MacroBang   MacroKind = "bang"
)

type ProcMacro struct {
	Kind    MacroKind
	Helpers []string
}

// Use is an import. Id is nil when the target does not resolve to an item in
// this crate's index or paths table.
type Use struct {
	Source string
	Name   string
	Id     *Id
	IsGlob bool
}

type AssocConst struct {
	Type  Type
	Value *string
}

type AssocType struct {
	Generics Generics
	Bounds   []GenericBound
	Type     Type
}

// ExternCrate and Primitive occur in rustdoc output but render to nothing.
type ExternCrate struct {
	Name   string
	Rename *string
}

type Primitive struct {
	Name  string
	Impls []Id
}

func (Module) ItemKind() string      { return "module" }
func (Struct) ItemKind() string      { return "struct" }
func (StructField) ItemKind() string { return "struct_field" }
func (Enum) ItemKind() string        { return "enum" }
func (Variant) ItemKind() string     { return "variant" }
func (Trait) ItemKind() string       { return "trait" }
func (TraitAlias) ItemKind() string  { return "trait_alias" }
func (Impl) ItemKind() string        { return "impl" }
func (Function) ItemKind() string    { return "function" }
func (Constant) ItemKind() string    { return "constant" }
func (Static) ItemKind() string      { return "static" }
func (TypeAlias) ItemKind() string   { return "type_alias" }
func (Macro) ItemKind() string       { return "macro" }
func (ProcMacro) ItemKind() string   { return "proc_macro" }
func (Use) ItemKind() string         { return "use" }
func (AssocConst) ItemKind() string  { return "assoc_const" }
func (AssocType) ItemKind() string   { return "assoc_type" }
func (ExternCrate) ItemKind() string { return "extern_crate" }
func (Primitive) ItemKind() string   { return "primitive" }

// Kind returns the kind tag for an item, or "unknown" when the payload is
// absent.
func (it *Item) Kind() string {
	if it.Inner == nil {
		return "unknown"
	}
	return it.Inner.ItemKind()
}

// IsPublic reports whether the item is declared pub.
func (it *Item) IsPublic() bool {
	return it.Visibility == VisibilityPublic
}
