package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/rskel/rskel/internal/ir"
)

// normalize collapses whitespace so assertions are stable regardless of the
// formatter in use.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type crateBuilder struct {
	crate *ir.Crate
	next  ir.Id
}

func newCrateBuilder() *crateBuilder {
	b := &crateBuilder{
		crate: &ir.Crate{
			Root:  0,
			Index: map[ir.Id]*ir.Item{},
			Paths: map[ir.Id]ir.ItemSummary{},
		},
		next: 1,
	}
	b.crate.Index[0] = &ir.Item{
		Id:         0,
		Name:       "demo",
		Visibility: ir.VisibilityPublic,
		Inner:      ir.Module{IsCrate: true},
	}
	return b
}

func (b *crateBuilder) add(name string, vis ir.Visibility, inner ir.Inner) ir.Id {
	id := b.next
	b.next++
	b.crate.Index[id] = &ir.Item{Id: id, Name: name, Visibility: vis, Inner: inner}
	return id
}

func (b *crateBuilder) addToModule(moduleId ir.Id, itemId ir.Id) {
	item := b.crate.Index[moduleId]
	mod := item.Inner.(ir.Module)
	mod.Items = append(mod.Items, itemId)
	item.Inner = mod
}

func (b *crateBuilder) addToRoot(itemId ir.Id) {
	b.addToModule(b.crate.Root, itemId)
}

func primitive(name string) ir.Type { return ir.PrimitiveType{Name: name} }

func idPtr(id ir.Id) *ir.Id { return &id }

func simpleFn(output ir.Type, hasBody bool, inputs ...ir.Param) ir.Function {
	return ir.Function{
		Sig:     ir.FunctionSignature{Inputs: inputs, Output: output},
		HasBody: hasBody,
	}
}

func selfRef() ir.Param {
	return ir.Param{Name: "self", Type: ir.BorrowedRef{Type: ir.Generic{Name: "Self"}}}
}

func TestTupleStructPrivateFieldsBecomePlaceholders(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	f1 := b.add("0", ir.VisibilityPublic, ir.StructField{Type: primitive("i32")})
	f2 := b.add("1", ir.VisibilityDefault, ir.StructField{Type: primitive("String")})
	f3 := b.add("2", ir.VisibilityPublic, ir.StructField{Type: primitive("bool")})
	st := b.add("PrivateFieldsTuple", ir.VisibilityPublic, ir.Struct{
		Kind: ir.StructKind{Tag: ir.StructTuple, TupleFields: []*ir.Id{idPtr(f1), idPtr(f2), idPtr(f3)}},
	})
	b.addToRoot(st)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "pub mod demo { pub struct PrivateFieldsTuple(pub i32, _, pub bool); }"
	if got := normalize(out); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTupleStructAllPrivateFields(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	f1 := b.add("0", ir.VisibilityDefault, ir.StructField{Type: primitive("String")})
	f2 := b.add("1", ir.VisibilityDefault, ir.StructField{Type: primitive("i32")})
	st := b.add("OnlyPrivateTuple", ir.VisibilityPublic, ir.Struct{
		Kind: ir.StructKind{Tag: ir.StructTuple, TupleFields: []*ir.Id{idPtr(f1), idPtr(f2)}},
	})
	b.addToRoot(st)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// A public all-hidden tuple struct keeps its arity, every field masked.
	want := "pub mod demo { pub struct OnlyPrivateTuple(_, _); }"
	if got := normalize(out); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrivateStructSuppressed(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	f1 := b.add("0", ir.VisibilityDefault, ir.StructField{Type: primitive("i32")})
	st := b.add("PrivateTuple", ir.VisibilityDefault, ir.Struct{
		Kind: ir.StructKind{Tag: ir.StructTuple, TupleFields: []*ir.Id{idPtr(f1)}},
	})
	b.addToRoot(st)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := normalize(out); got != "pub mod demo { }" {
		t.Errorf("output = %q, want empty module", got)
	}

	// With private rendering enabled the struct appears verbatim.
	out, err = (Renderer{}).WithPrivateItems(true).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(normalize(out), "struct PrivateTuple(i32);") {
		t.Errorf("private output missing struct: %q", normalize(out))
	}
}

func TestPlainStructOmitsPrivateFields(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	f1 := b.add("field1", ir.VisibilityPublic, ir.StructField{Type: primitive("i32")})
	f2 := b.add("field2", ir.VisibilityDefault, ir.StructField{Type: primitive("String")})
	st := b.add("PrivateFieldStruct", ir.VisibilityPublic, ir.Struct{
		Kind: ir.StructKind{Tag: ir.StructPlain, PlainFields: []ir.Id{f1, f2}},
	})
	b.addToRoot(st)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "pub struct PrivateFieldStruct { pub field1: i32, }") {
		t.Errorf("output = %q, want only public field", got)
	}
	if strings.Contains(got, "field2") {
		t.Errorf("private field leaked into output: %q", got)
	}
}

func TestVisibilityRoundTrip(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	visible := b.add("visible", ir.VisibilityPublic, simpleFn(nil, true))
	hidden := b.add("hidden", ir.VisibilityDefault, simpleFn(nil, true))
	b.addToRoot(visible)
	b.addToRoot(hidden)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "pub fn visible() {}") {
		t.Errorf("missing visible fn: %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("hidden fn leaked: %q", got)
	}

	out, err = (Renderer{}).WithPrivateItems(true).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got = normalize(out)
	if !strings.Contains(got, "fn hidden() {}") {
		t.Errorf("private-enabled output missing hidden fn: %q", got)
	}
}

func TestDeriveAnnotationSynthesis(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	st := b.add("Widget", ir.VisibilityPublic, nil)
	cloneFn := b.add("clone", ir.VisibilityDefault, simpleFn(ir.Generic{Name: "Self"}, true, selfRef()))
	cloneImpl := b.add("", ir.VisibilityDefault, ir.Impl{
		Trait: &ir.Path{Path: "Clone"},
		For:   ir.ResolvedPath{Path: ir.Path{Path: "Widget", Id: st}},
		Items: []ir.Id{cloneFn},
	})
	area := b.add("area", ir.VisibilityPublic, simpleFn(primitive("u32"), true, selfRef()))
	inherentImpl := b.add("", ir.VisibilityDefault, ir.Impl{
		For:   ir.ResolvedPath{Path: ir.Path{Path: "Widget", Id: st}},
		Items: []ir.Id{area},
	})
	b.crate.Index[st].Inner = ir.Struct{
		Kind:  ir.StructKind{Tag: ir.StructUnit},
		Impls: []ir.Id{cloneImpl, inherentImpl},
	}
	b.addToRoot(st)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "#[derive(Clone)] pub struct Widget;") {
		t.Errorf("missing derive annotation: %q", got)
	}
	if strings.Contains(got, "impl Clone for Widget") {
		t.Errorf("derive trait also rendered as impl block: %q", got)
	}
	if !strings.Contains(got, "impl Widget { pub fn area(&self) -> u32 {} }") {
		t.Errorf("inherent impl missing: %q", got)
	}
}

func TestSyntheticImplSuppressedByDefault(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	st := b.add("Widget", ir.VisibilityPublic, nil)
	autoImpl := b.add("", ir.VisibilityDefault, ir.Impl{
		IsSynthetic: true,
		Trait:       &ir.Path{Path: "Unpin"},
		For:         ir.ResolvedPath{Path: ir.Path{Path: "Widget", Id: st}},
	})
	b.crate.Index[st].Inner = ir.Struct{
		Kind:  ir.StructKind{Tag: ir.StructUnit},
		Impls: []ir.Id{autoImpl},
	}
	b.addToRoot(st)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "Unpin") {
		t.Errorf("synthetic impl rendered without auto-impls: %q", normalize(out))
	}
}

func TestEmptyImplBlockSuppressed(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	st := b.add("Widget", ir.VisibilityPublic, nil)
	private := b.add("internal", ir.VisibilityDefault, simpleFn(nil, true, selfRef()))
	impl := b.add("", ir.VisibilityDefault, ir.Impl{
		For:   ir.ResolvedPath{Path: ir.Path{Path: "Widget", Id: st}},
		Items: []ir.Id{private},
	})
	b.crate.Index[st].Inner = ir.Struct{
		Kind:  ir.StructKind{Tag: ir.StructUnit},
		Impls: []ir.Id{impl},
	}
	b.addToRoot(st)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "impl Widget") {
		t.Errorf("empty impl block rendered: %q", normalize(out))
	}
}

func TestTraitRendering(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	getItem := b.add("get_item", ir.VisibilityDefault, ir.Function{
		Sig: ir.FunctionSignature{
			Inputs: []ir.Param{selfRef()},
			Output: ir.QualifiedPath{Name: "Item", SelfType: ir.Generic{Name: "Self"}},
		},
	})
	assocType := b.add("Item", ir.VisibilityDefault, ir.AssocType{
		Bounds: []ir.GenericBound{
			ir.TraitBound{Trait: ir.Path{Path: "Clone"}},
			ir.OutlivesBound{Lifetime: "'static"},
		},
	})
	trait := b.add("BoundedAssocType", ir.VisibilityPublic, ir.Trait{
		Items: []ir.Id{assocType, getItem},
	})
	b.addToRoot(trait)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "pub trait BoundedAssocType { type Item: Clone + 'static; fn get_item(&self) -> Self::Item; }") {
		t.Errorf("trait output = %q", got)
	}
}

func TestUnsafeTraitWithAbstractMethod(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	method := b.add("unsafe_method", ir.VisibilityDefault, ir.Function{
		Sig:    ir.FunctionSignature{Inputs: []ir.Param{selfRef()}},
		Header: ir.FunctionHeader{IsUnsafe: true},
	})
	trait := b.add("UnsafeTrait", ir.VisibilityPublic, ir.Trait{
		IsUnsafe: true,
		Items:    []ir.Id{method},
	})
	b.addToRoot(trait)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "pub unsafe trait UnsafeTrait { unsafe fn unsafe_method(&self); }") {
		t.Errorf("trait output = %q", got)
	}
}

func TestPrivateTraitImplSuppressed(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	st := b.add("Widget", ir.VisibilityPublic, nil)
	method := b.add("secret", ir.VisibilityDefault, simpleFn(nil, true, selfRef()))
	privateTrait := b.add("Internal", ir.VisibilityDefault, ir.Trait{Items: []ir.Id{method}})
	impl := b.add("", ir.VisibilityDefault, ir.Impl{
		Trait: &ir.Path{Path: "Internal", Id: privateTrait},
		For:   ir.ResolvedPath{Path: ir.Path{Path: "Widget", Id: st}},
		Items: []ir.Id{method},
	})
	b.crate.Index[st].Inner = ir.Struct{
		Kind:  ir.StructKind{Tag: ir.StructUnit},
		Impls: []ir.Id{impl},
	}
	b.addToRoot(st)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "Internal") {
		t.Errorf("impl of invisible trait rendered: %q", normalize(out))
	}
}

func TestFilterRendersExactSubtree(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	inner := b.add("render", ir.VisibilityPublic, simpleFn(nil, true))
	sub := b.add("colors", ir.VisibilityPublic, ir.Module{Items: []ir.Id{inner}})
	other := b.add("unrelated", ir.VisibilityPublic, simpleFn(nil, true))
	b.addToRoot(sub)
	b.addToRoot(other)

	out, err := (Renderer{}).WithFilter("colors").Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "pub mod colors") || !strings.Contains(got, "pub fn render() {}") {
		t.Errorf("filtered output missing subtree: %q", got)
	}
	if strings.Contains(got, "unrelated") {
		t.Errorf("filter leaked sibling: %q", got)
	}
}

func TestFilterNotMatched(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	b.addToRoot(b.add("thing", ir.VisibilityPublic, simpleFn(nil, true)))

	_, err := (Renderer{}).WithFilter("missing::path").Render(b.crate)
	var notMatched *FilterNotMatchedError
	if !errors.As(err, &notMatched) {
		t.Fatalf("err = %v, want FilterNotMatchedError", err)
	}
	if notMatched.Filter != "missing::path" {
		t.Errorf("error filter = %q", notMatched.Filter)
	}
}

func TestSelectionRendersMinimalContext(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	st := b.add("Widget", ir.VisibilityPublic, nil)
	renderFn := b.add("render", ir.VisibilityPublic, simpleFn(primitive("u32"), true, selfRef()))
	otherFn := b.add("resize", ir.VisibilityPublic, simpleFn(nil, true, selfRef()))
	impl := b.add("", ir.VisibilityDefault, ir.Impl{
		For:   ir.ResolvedPath{Path: ir.Path{Path: "Widget", Id: st}},
		Items: []ir.Id{renderFn, otherFn},
	})
	field := b.add("id", ir.VisibilityPublic, ir.StructField{Type: primitive("u32")})
	b.crate.Index[st].Inner = ir.Struct{
		Kind:  ir.StructKind{Tag: ir.StructPlain, PlainFields: []ir.Id{field}},
		Impls: []ir.Id{impl},
	}
	b.addToRoot(st)

	sel := NewSelection(
		map[ir.Id]bool{renderFn: true},
		map[ir.Id]bool{b.crate.Root: true, st: true, impl: true},
		nil,
	)
	out, err := (Renderer{}).WithSelection(sel).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "fn render(&self) -> u32 {}") {
		t.Errorf("selection output missing match: %q", got)
	}
	if strings.Contains(got, "resize") {
		t.Errorf("unselected sibling method leaked: %q", got)
	}
	if strings.Contains(got, "id: u32") {
		t.Errorf("unselected field leaked: %q", got)
	}
}

func TestSelectionExpansionIncludesMembers(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	st := b.add("Widget", ir.VisibilityPublic, nil)
	renderFn := b.add("render", ir.VisibilityPublic, simpleFn(primitive("u32"), true, selfRef()))
	impl := b.add("", ir.VisibilityDefault, ir.Impl{
		For:   ir.ResolvedPath{Path: ir.Path{Path: "Widget", Id: st}},
		Items: []ir.Id{renderFn},
	})
	field := b.add("id", ir.VisibilityPublic, ir.StructField{Type: primitive("u32")})
	b.crate.Index[st].Inner = ir.Struct{
		Kind:  ir.StructKind{Tag: ir.StructPlain, PlainFields: []ir.Id{field}},
		Impls: []ir.Id{impl},
	}
	b.addToRoot(st)

	// The selection builder places descendants of expanded containers into
	// the context set; mirror that here for the impl block.
	sel := NewSelection(
		map[ir.Id]bool{st: true},
		map[ir.Id]bool{b.crate.Root: true, impl: true},
		map[ir.Id]bool{st: true},
	)
	out, err := (Renderer{}).WithSelection(sel).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "pub id: u32,") {
		t.Errorf("expanded struct missing field: %q", got)
	}
	if !strings.Contains(got, "fn render(&self) -> u32 {}") {
		t.Errorf("expanded struct missing impl member: %q", got)
	}
}

func TestUseReexportForcesVisibility(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	hidden := b.add("hidden_helper", ir.VisibilityDefault, simpleFn(nil, true))
	use := b.add("hidden_helper", ir.VisibilityPublic, ir.Use{
		Source: "internal::hidden_helper",
		Name:   "hidden_helper",
		Id:     idPtr(hidden),
	})
	b.addToRoot(use)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(normalize(out), "fn hidden_helper() {}") {
		t.Errorf("re-exported private item not rendered: %q", normalize(out))
	}
}

func TestUseAliasEscapesReservedName(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	use := b.add("r#try", ir.VisibilityPublic, ir.Use{
		Source: "external::attempt",
		Name:   "try",
	})
	b.addToRoot(use)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "pub use external::attempt as r#try;") {
		t.Errorf("alias not escaped: %q", normalize(out))
	}
}

func TestGlobUseExpandsModule(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	pubFn := b.add("exported", ir.VisibilityPublic, simpleFn(nil, true))
	privFn := b.add("kept_private", ir.VisibilityDefault, simpleFn(nil, true))
	mod := b.add("prelude", ir.VisibilityDefault, ir.Module{Items: []ir.Id{pubFn, privFn}})
	use := b.add("", ir.VisibilityPublic, ir.Use{
		Source: "prelude",
		Name:   "prelude",
		Id:     idPtr(mod),
		IsGlob: true,
	})
	b.addToRoot(use)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "pub fn exported() {}") {
		t.Errorf("glob re-export missing public item: %q", got)
	}
	if strings.Contains(got, "kept_private") {
		t.Errorf("glob re-export leaked private item: %q", got)
	}
}

func TestEnumVariantsAndDiscriminants(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	red := b.add("Red", ir.VisibilityDefault, ir.Variant{
		Kind:         ir.VariantKind{Tag: ir.VariantPlain},
		Discriminant: &ir.Discriminant{Expr: "1", Value: "1"},
	})
	field := b.add("0", ir.VisibilityDefault, ir.StructField{Type: primitive("u8")})
	rgb := b.add("Level", ir.VisibilityDefault, ir.Variant{
		Kind: ir.VariantKind{Tag: ir.VariantTuple, TupleFields: []*ir.Id{idPtr(field)}},
	})
	en := b.add("Color", ir.VisibilityPublic, ir.Enum{Variants: []ir.Id{red, rgb}})
	b.addToRoot(en)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if !strings.Contains(got, "pub enum Color { Red = 1, Level(u8), }") {
		t.Errorf("enum output = %q", got)
	}
}

func TestFunctionQualifierOrder(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	fn := b.add("dangerous", ir.VisibilityPublic, ir.Function{
		Header:  ir.FunctionHeader{IsConst: true, IsAsync: true, IsUnsafe: true},
		HasBody: true,
	})
	b.addToRoot(fn)

	out, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(normalize(out), "pub const async unsafe fn dangerous() {}") {
		t.Errorf("qualifier order wrong: %q", normalize(out))
	}
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	f1 := b.add("field1", ir.VisibilityPublic, ir.StructField{Type: ir.BorrowedRef{Lifetime: "'a", Type: primitive("str")}})
	st := b.add("ComplexTuple", ir.VisibilityPublic, ir.Struct{
		Kind: ir.StructKind{Tag: ir.StructPlain, PlainFields: []ir.Id{f1}},
		Generics: ir.Generics{
			Params: []ir.GenericParamDef{
				{Name: "'a", Kind: ir.LifetimeParam{}},
				{Name: "T", Kind: ir.TypeParam{}},
			},
			WherePredicates: []ir.WherePredicate{
				ir.BoundPredicate{
					Type:   ir.Generic{Name: "T"},
					Bounds: []ir.GenericBound{ir.TraitBound{Trait: ir.Path{Path: "Clone"}}},
				},
			},
		},
	})
	b.addToRoot(st)

	first, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := (Renderer{}).Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if first != second {
		t.Errorf("render not deterministic:\n%s\n---\n%s", first, second)
	}
	if !strings.Contains(normalize(first), "pub struct ComplexTuple<'a, T> where T: Clone {") {
		t.Errorf("generics rendering = %q", normalize(first))
	}
}

func TestModuleDocOnlyAtFilterTarget(t *testing.T) {
	t.Parallel()

	b := newCrateBuilder()
	inner := b.add("render", ir.VisibilityPublic, simpleFn(nil, true))
	sub := b.add("colors", ir.VisibilityPublic, ir.Module{Items: []ir.Id{inner}})
	b.crate.Index[sub].Docs = "Color helpers."
	b.crate.Index[b.crate.Root].Docs = "Root docs."
	b.addToRoot(sub)

	out, err := (Renderer{}).WithFilter("colors").Render(b.crate)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := normalize(out)
	if strings.Contains(got, "Root docs.") {
		t.Errorf("pass-through ancestor emitted docs: %q", got)
	}
	if !strings.Contains(got, "//! Color helpers.") {
		t.Errorf("filter target missing docs: %q", got)
	}
}
