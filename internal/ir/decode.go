package ir

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Decode parses rustdoc JSON bytes into an immutable item graph.
func Decode(data []byte) (*Crate, error) {
	var crate Crate
	if err := json.Unmarshal(data, &crate); err != nil {
		return nil, fmt.Errorf("unmarshaling rustdoc JSON: %w", err)
	}
	return &crate, nil
}

// UnmarshalText lets Id act as a JSON object key ("12" in the index map).
func (id *Id) UnmarshalText(text []byte) error {
	n, err := strconv.Atoi(string(text))
	if err != nil {
		return fmt.Errorf("invalid item id %q: %w", text, err)
	}
	*id = Id(n)
	return nil
}

// UnmarshalJSON accepts ids as bare numbers, their form everywhere outside
// map keys ("root", "id", "items", links). Implementing only UnmarshalText
// would make encoding/json reject numbers wholesale.
func (id *Id) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return id.UnmarshalText([]byte(s))
	}
	return id.UnmarshalText(data)
}

func (c *Crate) UnmarshalJSON(data []byte) error {
	var aux struct {
		Root            Id                    `json:"root"`
		CrateVersion    *string               `json:"crate_version"`
		IncludesPrivate bool                  `json:"includes_private"`
		Index           map[Id]*Item          `json:"index"`
		Paths           map[Id]itemSummaryDTO `json:"paths"`
		ExternalCrates  map[int]struct {
			Name        string `json:"name"`
			HTMLRootURL string `json:"html_root_url"`
		} `json:"external_crates"`
		FormatVersion int `json:"format_version"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Root = aux.Root
	if aux.CrateVersion != nil {
		c.CrateVersion = *aux.CrateVersion
	}
	c.IncludesPrivate = aux.IncludesPrivate
	c.Index = aux.Index
	c.FormatVersion = aux.FormatVersion
	c.Paths = make(map[Id]ItemSummary, len(aux.Paths))
	for id, s := range aux.Paths {
		c.Paths[id] = ItemSummary{CrateId: s.CrateId, Path: s.Path, Kind: s.Kind}
	}
	c.ExternalCrates = make(map[int]ExternalCrate, len(aux.ExternalCrates))
	for id, e := range aux.ExternalCrates {
		c.ExternalCrates[id] = ExternalCrate{Name: e.Name, HTMLRootURL: e.HTMLRootURL}
	}
	return nil
}

type itemSummaryDTO struct {
	CrateId int      `json:"crate_id"`
	Path    []string `json:"path"`
	Kind    string   `json:"kind"`
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var aux struct {
		Id         Id              `json:"id"`
		CrateId    int             `json:"crate_id"`
		Name       *string         `json:"name"`
		Docs       *string         `json:"docs"`
		Links      map[string]Id   `json:"links"`
		Visibility json.RawMessage `json:"visibility"`
		Inner      json.RawMessage `json:"inner"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	it.Id = aux.Id
	it.CrateId = aux.CrateId
	if aux.Name != nil {
		it.Name = *aux.Name
	}
	if aux.Docs != nil {
		it.Docs = *aux.Docs
	}
	it.Links = aux.Links

	vis, err := decodeVisibility(aux.Visibility)
	if err != nil {
		return err
	}
	it.Visibility = vis

	inner, err := decodeItemInner(aux.Inner)
	if err != nil {
		return fmt.Errorf("item %d: %w", aux.Id, err)
	}
	it.Inner = inner
	return nil
}

func decodeVisibility(raw json.RawMessage) (Visibility, error) {
	if len(raw) == 0 {
		return VisibilityDefault, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch s {
		case "public":
			return VisibilityPublic, nil
		case "default":
			return VisibilityDefault, nil
		case "crate":
			return VisibilityCrate, nil
		default:
			return "", fmt.Errorf("unknown visibility %q", s)
		}
	}
	// The object form is pub(in path).
	return VisibilityRestricted, nil
}

// singleKey splits an externally-tagged JSON object into its tag and payload.
func singleKey(raw json.RawMessage) (string, json.RawMessage, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(raw, &outer); err != nil {
		return "", nil, err
	}
	if len(outer) != 1 {
		return "", nil, fmt.Errorf("expected single-key object, got %d keys", len(outer))
	}
	for k, v := range outer {
		return k, v, nil
	}
	return "", nil, nil // unreachable
}

func decodeItemInner(raw json.RawMessage) (Inner, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	kind, payload, err := singleKey(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding item payload: %w", err)
	}

	switch kind {
	case "module":
		var m struct {
			IsCrate    bool `json:"is_crate"`
			Items      []Id `json:"items"`
			IsStripped bool `json:"is_stripped"`
		}
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, err
		}
		return Module{IsCrate: m.IsCrate, Items: m.Items, IsStripped: m.IsStripped}, nil

	case "struct":
		var s struct {
			Kind     json.RawMessage `json:"kind"`
			Generics json.RawMessage `json:"generics"`
			Impls    []Id            `json:"impls"`
		}
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		sk, err := decodeStructKind(s.Kind)
		if err != nil {
			return nil, err
		}
		gen, err := decodeGenerics(s.Generics)
		if err != nil {
			return nil, err
		}
		return Struct{Kind: sk, Generics: gen, Impls: s.Impls}, nil

	case "struct_field":
		ty, err := decodeType(payload)
		if err != nil {
			return nil, err
		}
		return StructField{Type: ty}, nil

	case "enum":
		var e struct {
			Generics json.RawMessage `json:"generics"`
			Variants []Id            `json:"variants"`
			Impls    []Id            `json:"impls"`
		}
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, err
		}
		gen, err := decodeGenerics(e.Generics)
		if err != nil {
			return nil, err
		}
		return Enum{Generics: gen, Variants: e.Variants, Impls: e.Impls}, nil

	case "variant":
		var v struct {
			Kind         json.RawMessage `json:"kind"`
			Discriminant *Discriminant   `json:"discriminant"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		vk, err := decodeVariantKind(v.Kind)
		if err != nil {
			return nil, err
		}
		return Variant{Kind: vk, Discriminant: v.Discriminant}, nil

	case "trait":
		var t struct {
			IsAuto          bool              `json:"is_auto"`
			IsUnsafe        bool              `json:"is_unsafe"`
			IsDynCompatible bool              `json:"is_dyn_compatible"`
			Items           []Id              `json:"items"`
			Generics        json.RawMessage   `json:"generics"`
			Bounds          []json.RawMessage `json:"bounds"`
			Implementations []Id              `json:"implementations"`
		}
		if err := json.Unmarshal(payload, &t); err != nil {
			return nil, err
		}
		gen, err := decodeGenerics(t.Generics)
		if err != nil {
			return nil, err
		}
		bounds, err := decodeBounds(t.Bounds)
		if err != nil {
			return nil, err
		}
		return Trait{
			IsAuto: t.IsAuto, IsUnsafe: t.IsUnsafe, IsDynCompatible: t.IsDynCompatible,
			Items: t.Items, Generics: gen, Bounds: bounds, Implementations: t.Implementations,
		}, nil

	case "trait_alias":
		var t struct {
			Generics json.RawMessage   `json:"generics"`
			Params   []json.RawMessage `json:"params"`
		}
		if err := json.Unmarshal(payload, &t); err != nil {
			return nil, err
		}
		gen, err := decodeGenerics(t.Generics)
		if err != nil {
			return nil, err
		}
		params, err := decodeBounds(t.Params)
		if err != nil {
			return nil, err
		}
		return TraitAlias{Generics: gen, Params: params}, nil

	case "impl":
		var im struct {
			IsUnsafe    bool            `json:"is_unsafe"`
			Generics    json.RawMessage `json:"generics"`
			Trait       json.RawMessage `json:"trait"`
			For         json.RawMessage `json:"for"`
			Items       []Id            `json:"items"`
			IsNegative  bool            `json:"is_negative"`
			IsSynthetic bool            `json:"is_synthetic"`
			BlanketImpl json.RawMessage `json:"blanket_impl"`
		}
		if err := json.Unmarshal(payload, &im); err != nil {
			return nil, err
		}
		gen, err := decodeGenerics(im.Generics)
		if err != nil {
			return nil, err
		}
		forType, err := decodeType(im.For)
		if err != nil {
			return nil, err
		}
		var trait *Path
		if !isJSONNull(im.Trait) {
			p, err := decodePath(im.Trait)
			if err != nil {
				return nil, err
			}
			trait = &p
		}
		var blanket Type
		if !isJSONNull(im.BlanketImpl) {
			blanket, err = decodeType(im.BlanketImpl)
			if err != nil {
				return nil, err
			}
		}
		return Impl{
			IsUnsafe: im.IsUnsafe, Generics: gen, Trait: trait, For: forType,
			Items: im.Items, IsNegative: im.IsNegative, IsSynthetic: im.IsSynthetic,
			BlanketImpl: blanket,
		}, nil

	case "function":
		var f struct {
			Sig      json.RawMessage `json:"sig"`
			Generics json.RawMessage `json:"generics"`
			Header   struct {
				IsConst  bool `json:"is_const"`
				IsUnsafe bool `json:"is_unsafe"`
				IsAsync  bool `json:"is_async"`
			} `json:"header"`
			HasBody bool `json:"has_body"`
		}
		if err := json.Unmarshal(payload, &f); err != nil {
			return nil, err
		}
		sig, err := decodeFunctionSignature(f.Sig)
		if err != nil {
			return nil, err
		}
		gen, err := decodeGenerics(f.Generics)
		if err != nil {
			return nil, err
		}
		return Function{
			Sig: sig, Generics: gen,
			Header:  FunctionHeader{IsConst: f.Header.IsConst, IsUnsafe: f.Header.IsUnsafe, IsAsync: f.Header.IsAsync},
			HasBody: f.HasBody,
		}, nil

	case "constant":
		var c struct {
			Type  json.RawMessage `json:"type"`
			Const ConstantExpr    `json:"const"`
		}
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		ty, err := decodeType(c.Type)
		if err != nil {
			return nil, err
		}
		return Constant{Type: ty, Const: c.Const}, nil

	case "static":
		var s struct {
			Type      json.RawMessage `json:"type"`
			IsMutable bool            `json:"is_mutable"`
			Expr      string          `json:"expr"`
			IsUnsafe  bool            `json:"is_unsafe"`
		}
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		ty, err := decodeType(s.Type)
		if err != nil {
			return nil, err
		}
		return Static{Type: ty, IsMutable: s.IsMutable, Expr: s.Expr, IsUnsafe: s.IsUnsafe}, nil

	case "type_alias":
		var t struct {
			Type     json.RawMessage `json:"type"`
			Generics json.RawMessage `json:"generics"`
		}
		if err := json.Unmarshal(payload, &t); err != nil {
			return nil, err
		}
		ty, err := decodeType(t.Type)
		if err != nil {
			return nil, err
		}
		gen, err := decodeGenerics(t.Generics)
		if err != nil {
			return nil, err
		}
		return TypeAlias{Type: ty, Generics: gen}, nil

	case "macro":
		var src string
		if err := json.Unmarshal(payload, &src); err != nil {
			return nil, err
		}
		return Macro{Source: src}, nil

	case "proc_macro":
		var p struct {
			Kind    MacroKind `json:"kind"`
			Helpers []string  `json:"helpers"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, err
		}
		return ProcMacro{Kind: p.Kind, Helpers: p.Helpers}, nil

	case "use":
		var u struct {
			Source string `json:"source"`
			Name   string `json:"name"`
			Id     *Id    `json:"id"`
			IsGlob bool   `json:"is_glob"`
		}
		if err := json.Unmarshal(payload, &u); err != nil {
			return nil, err
		}
		return Use{Source: u.Source, Name: u.Name, Id: u.Id, IsGlob: u.IsGlob}, nil

	case "assoc_const":
		var a struct {
			Type  json.RawMessage `json:"type"`
			Value *string         `json:"value"`
		}
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, err
		}
		ty, err := decodeType(a.Type)
		if err != nil {
			return nil, err
		}
		return AssocConst{Type: ty, Value: a.Value}, nil

	case "assoc_type":
		var a struct {
			Generics json.RawMessage   `json:"generics"`
			Bounds   []json.RawMessage `json:"bounds"`
			Type     json.RawMessage   `json:"type"`
		}
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, err
		}
		gen, err := decodeGenerics(a.Generics)
		if err != nil {
			return nil, err
		}
		bounds, err := decodeBounds(a.Bounds)
		if err != nil {
			return nil, err
		}
		var ty Type
		if !isJSONNull(a.Type) {
			ty, err = decodeType(a.Type)
			if err != nil {
				return nil, err
			}
		}
		return AssocType{Generics: gen, Bounds: bounds, Type: ty}, nil

	case "extern_crate":
		var e struct {
			Name   string  `json:"name"`
			Rename *string `json:"rename"`
		}
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, err
		}
		return ExternCrate{Name: e.Name, Rename: e.Rename}, nil

	case "primitive":
		var p struct {
			Name  string `json:"name"`
			Impls []Id   `json:"impls"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, err
		}
		return Primitive{Name: p.Name, Impls: p.Impls}, nil

	default:
		return nil, fmt.Errorf("unsupported item kind %q", kind)
	}
}

func decodeStructKind(raw json.RawMessage) (StructKind, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s != "unit" {
			return StructKind{}, fmt.Errorf("unknown struct kind %q", s)
		}
		return StructKind{Tag: StructUnit}, nil
	}
	kind, payload, err := singleKey(raw)
	if err != nil {
		return StructKind{}, err
	}
	switch kind {
	case "tuple":
		var fields []*Id
		if err := json.Unmarshal(payload, &fields); err != nil {
			return StructKind{}, err
		}
		return StructKind{Tag: StructTuple, TupleFields: fields}, nil
	case "plain":
		var p struct {
			Fields            []Id `json:"fields"`
			HasStrippedFields bool `json:"has_stripped_fields"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return StructKind{}, err
		}
		return StructKind{Tag: StructPlain, PlainFields: p.Fields, HasStrippedFields: p.HasStrippedFields}, nil
	default:
		return StructKind{}, fmt.Errorf("unknown struct kind %q", kind)
	}
}

func decodeVariantKind(raw json.RawMessage) (VariantKind, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s != "plain" {
			return VariantKind{}, fmt.Errorf("unknown variant kind %q", s)
		}
		return VariantKind{Tag: VariantPlain}, nil
	}
	kind, payload, err := singleKey(raw)
	if err != nil {
		return VariantKind{}, err
	}
	switch kind {
	case "tuple":
		var fields []*Id
		if err := json.Unmarshal(payload, &fields); err != nil {
			return VariantKind{}, err
		}
		return VariantKind{Tag: VariantTuple, TupleFields: fields}, nil
	case "struct":
		var p struct {
			Fields            []Id `json:"fields"`
			HasStrippedFields bool `json:"has_stripped_fields"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return VariantKind{}, err
		}
		return VariantKind{Tag: VariantStruct, StructFields: p.Fields, HasStrippedFields: p.HasStrippedFields}, nil
	default:
		return VariantKind{}, fmt.Errorf("unknown variant kind %q", kind)
	}
}

func decodeType(raw json.RawMessage) (Type, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "infer" {
			return Infer{}, nil
		}
		return nil, fmt.Errorf("unknown type kind %q", s)
	}

	kind, payload, err := singleKey(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding type: %w", err)
	}

	switch kind {
	case "resolved_path":
		p, err := decodePath(payload)
		if err != nil {
			return nil, err
		}
		return ResolvedPath{Path: p}, nil

	case "dyn_trait":
		var d struct {
			Traits   []json.RawMessage `json:"traits"`
			Lifetime *string           `json:"lifetime"`
		}
		if err := json.Unmarshal(payload, &d); err != nil {
			return nil, err
		}
		traits := make([]PolyTrait, 0, len(d.Traits))
		for _, t := range d.Traits {
			pt, err := decodePolyTrait(t)
			if err != nil {
				return nil, err
			}
			traits = append(traits, pt)
		}
		dt := DynTrait{Traits: traits}
		if d.Lifetime != nil {
			dt.Lifetime = *d.Lifetime
		}
		return dt, nil

	case "generic":
		var name string
		if err := json.Unmarshal(payload, &name); err != nil {
			return nil, err
		}
		return Generic{Name: name}, nil

	case "primitive":
		var name string
		if err := json.Unmarshal(payload, &name); err != nil {
			return nil, err
		}
		return PrimitiveType{Name: name}, nil

	case "function_pointer":
		var f struct {
			Sig           json.RawMessage   `json:"sig"`
			GenericParams []json.RawMessage `json:"generic_params"`
			Header        struct {
				IsConst  bool `json:"is_const"`
				IsUnsafe bool `json:"is_unsafe"`
				IsAsync  bool `json:"is_async"`
			} `json:"header"`
		}
		if err := json.Unmarshal(payload, &f); err != nil {
			return nil, err
		}
		sig, err := decodeFunctionSignature(f.Sig)
		if err != nil {
			return nil, err
		}
		params, err := decodeParamDefs(f.GenericParams)
		if err != nil {
			return nil, err
		}
		return FunctionPointer{
			Sig: sig, GenericParams: params,
			Header: FunctionHeader{IsConst: f.Header.IsConst, IsUnsafe: f.Header.IsUnsafe, IsAsync: f.Header.IsAsync},
		}, nil

	case "tuple":
		var parts []json.RawMessage
		if err := json.Unmarshal(payload, &parts); err != nil {
			return nil, err
		}
		types := make([]Type, 0, len(parts))
		for _, p := range parts {
			ty, err := decodeType(p)
			if err != nil {
				return nil, err
			}
			types = append(types, ty)
		}
		return Tuple{Types: types}, nil

	case "slice":
		ty, err := decodeType(payload)
		if err != nil {
			return nil, err
		}
		return Slice{Type: ty}, nil

	case "array":
		var a struct {
			Type json.RawMessage `json:"type"`
			Len  string          `json:"len"`
		}
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, err
		}
		ty, err := decodeType(a.Type)
		if err != nil {
			return nil, err
		}
		return Array{Type: ty, Len: a.Len}, nil

	case "impl_trait":
		var raws []json.RawMessage
		if err := json.Unmarshal(payload, &raws); err != nil {
			return nil, err
		}
		bounds, err := decodeBounds(raws)
		if err != nil {
			return nil, err
		}
		return ImplTrait{Bounds: bounds}, nil

	case "raw_pointer":
		var p struct {
			IsMutable bool            `json:"is_mutable"`
			Type      json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, err
		}
		ty, err := decodeType(p.Type)
		if err != nil {
			return nil, err
		}
		return RawPointer{IsMutable: p.IsMutable, Type: ty}, nil

	case "borrowed_ref":
		var b struct {
			Lifetime  *string         `json:"lifetime"`
			IsMutable bool            `json:"is_mutable"`
			Type      json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, err
		}
		ty, err := decodeType(b.Type)
		if err != nil {
			return nil, err
		}
		ref := BorrowedRef{IsMutable: b.IsMutable, Type: ty}
		if b.Lifetime != nil {
			ref.Lifetime = *b.Lifetime
		}
		return ref, nil

	case "qualified_path":
		var q struct {
			Name     string          `json:"name"`
			Args     json.RawMessage `json:"args"`
			SelfType json.RawMessage `json:"self_type"`
			Trait    json.RawMessage `json:"trait"`
		}
		if err := json.Unmarshal(payload, &q); err != nil {
			return nil, err
		}
		selfType, err := decodeType(q.SelfType)
		if err != nil {
			return nil, err
		}
		qp := QualifiedPath{Name: q.Name, SelfType: selfType}
		if !isJSONNull(q.Args) {
			args, err := decodeGenericArgs(q.Args)
			if err != nil {
				return nil, err
			}
			qp.Args = args
		}
		if !isJSONNull(q.Trait) {
			p, err := decodePath(q.Trait)
			if err != nil {
				return nil, err
			}
			qp.Trait = &p
		}
		return qp, nil

	case "pat":
		var p struct {
			Type json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, err
		}
		ty, err := decodeType(p.Type)
		if err != nil {
			return nil, err
		}
		return Pat{Type: ty}, nil

	default:
		return nil, fmt.Errorf("unknown type kind %q", kind)
	}
}

func decodePath(raw json.RawMessage) (Path, error) {
	var p struct {
		Path string          `json:"path"`
		Id   Id              `json:"id"`
		Args json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return Path{}, err
	}
	path := Path{Path: p.Path, Id: p.Id}
	if !isJSONNull(p.Args) {
		args, err := decodeGenericArgs(p.Args)
		if err != nil {
			return Path{}, err
		}
		path.Args = args
	}
	return path, nil
}

func decodePolyTrait(raw json.RawMessage) (PolyTrait, error) {
	var p struct {
		Trait         json.RawMessage   `json:"trait"`
		GenericParams []json.RawMessage `json:"generic_params"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return PolyTrait{}, err
	}
	trait, err := decodePath(p.Trait)
	if err != nil {
		return PolyTrait{}, err
	}
	params, err := decodeParamDefs(p.GenericParams)
	if err != nil {
		return PolyTrait{}, err
	}
	return PolyTrait{Trait: trait, GenericParams: params}, nil
}

func decodeGenerics(raw json.RawMessage) (Generics, error) {
	if isJSONNull(raw) {
		return Generics{}, nil
	}
	var g struct {
		Params          []json.RawMessage `json:"params"`
		WherePredicates []json.RawMessage `json:"where_predicates"`
	}
	if err := json.Unmarshal(raw, &g); err != nil {
		return Generics{}, err
	}
	params, err := decodeParamDefs(g.Params)
	if err != nil {
		return Generics{}, err
	}
	preds := make([]WherePredicate, 0, len(g.WherePredicates))
	for _, p := range g.WherePredicates {
		pred, err := decodeWherePredicate(p)
		if err != nil {
			return Generics{}, err
		}
		preds = append(preds, pred)
	}
	return Generics{Params: params, WherePredicates: preds}, nil
}

func decodeParamDefs(raws []json.RawMessage) ([]GenericParamDef, error) {
	params := make([]GenericParamDef, 0, len(raws))
	for _, raw := range raws {
		var p struct {
			Name string          `json:"name"`
			Kind json.RawMessage `json:"kind"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		kind, payload, err := singleKey(p.Kind)
		if err != nil {
			return nil, err
		}
		def := GenericParamDef{Name: p.Name}
		switch kind {
		case "lifetime":
			var l struct {
				Outlives []string `json:"outlives"`
			}
			if err := json.Unmarshal(payload, &l); err != nil {
				return nil, err
			}
			def.Kind = LifetimeParam{Outlives: l.Outlives}
		case "type":
			var t struct {
				Bounds      []json.RawMessage `json:"bounds"`
				Default     json.RawMessage   `json:"default"`
				IsSynthetic bool              `json:"is_synthetic"`
			}
			if err := json.Unmarshal(payload, &t); err != nil {
				return nil, err
			}
			bounds, err := decodeBounds(t.Bounds)
			if err != nil {
				return nil, err
			}
			tp := TypeParam{Bounds: bounds, IsSynthetic: t.IsSynthetic}
			if !isJSONNull(t.Default) {
				tp.Default, err = decodeType(t.Default)
				if err != nil {
					return nil, err
				}
			}
			def.Kind = tp
		case "const":
			var c struct {
				Type    json.RawMessage `json:"type"`
				Default *string         `json:"default"`
			}
			if err := json.Unmarshal(payload, &c); err != nil {
				return nil, err
			}
			ty, err := decodeType(c.Type)
			if err != nil {
				return nil, err
			}
			def.Kind = ConstParam{Type: ty, Default: c.Default}
		default:
			return nil, fmt.Errorf("unknown generic param kind %q", kind)
		}
		params = append(params, def)
	}
	return params, nil
}

func decodeBounds(raws []json.RawMessage) ([]GenericBound, error) {
	bounds := make([]GenericBound, 0, len(raws))
	for _, raw := range raws {
		b, err := decodeGenericBound(raw)
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, b)
	}
	return bounds, nil
}

func decodeGenericBound(raw json.RawMessage) (GenericBound, error) {
	kind, payload, err := singleKey(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "trait_bound":
		var t struct {
			Trait         json.RawMessage   `json:"trait"`
			GenericParams []json.RawMessage `json:"generic_params"`
			Modifier      string            `json:"modifier"`
		}
		if err := json.Unmarshal(payload, &t); err != nil {
			return nil, err
		}
		trait, err := decodePath(t.Trait)
		if err != nil {
			return nil, err
		}
		params, err := decodeParamDefs(t.GenericParams)
		if err != nil {
			return nil, err
		}
		return TraitBound{Trait: trait, GenericParams: params, Modifier: TraitBoundModifier(t.Modifier)}, nil
	case "outlives":
		var lt string
		if err := json.Unmarshal(payload, &lt); err != nil {
			return nil, err
		}
		return OutlivesBound{Lifetime: lt}, nil
	case "use":
		var raws []json.RawMessage
		if err := json.Unmarshal(payload, &raws); err != nil {
			return nil, err
		}
		args := make([]string, 0, len(raws))
		for _, r := range raws {
			_, v, err := singleKey(r)
			if err != nil {
				return nil, err
			}
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, err
			}
			args = append(args, s)
		}
		return UseBound{Args: args}, nil
	default:
		return nil, fmt.Errorf("unknown generic bound kind %q", kind)
	}
}

func decodeWherePredicate(raw json.RawMessage) (WherePredicate, error) {
	kind, payload, err := singleKey(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "bound_predicate":
		var b struct {
			Type          json.RawMessage   `json:"type"`
			Bounds        []json.RawMessage `json:"bounds"`
			GenericParams []json.RawMessage `json:"generic_params"`
		}
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, err
		}
		ty, err := decodeType(b.Type)
		if err != nil {
			return nil, err
		}
		bounds, err := decodeBounds(b.Bounds)
		if err != nil {
			return nil, err
		}
		params, err := decodeParamDefs(b.GenericParams)
		if err != nil {
			return nil, err
		}
		return BoundPredicate{Type: ty, Bounds: bounds, GenericParams: params}, nil
	case "lifetime_predicate":
		var l struct {
			Lifetime string   `json:"lifetime"`
			Outlives []string `json:"outlives"`
		}
		if err := json.Unmarshal(payload, &l); err != nil {
			return nil, err
		}
		return LifetimePredicate{Lifetime: l.Lifetime, Outlives: l.Outlives}, nil
	case "eq_predicate":
		var e struct {
			Lhs json.RawMessage `json:"lhs"`
			Rhs json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, err
		}
		lhs, err := decodeType(e.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeTerm(e.Rhs)
		if err != nil {
			return nil, err
		}
		return EqPredicate{Lhs: lhs, Rhs: rhs}, nil
	default:
		return nil, fmt.Errorf("unknown where predicate kind %q", kind)
	}
}

func decodeTerm(raw json.RawMessage) (Term, error) {
	kind, payload, err := singleKey(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "type":
		ty, err := decodeType(payload)
		if err != nil {
			return nil, err
		}
		return TypeTerm{Type: ty}, nil
	case "constant":
		var c ConstantExpr
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		return ConstTerm{Const: c}, nil
	default:
		return nil, fmt.Errorf("unknown term kind %q", kind)
	}
}

func decodeGenericArgs(raw json.RawMessage) (*GenericArgs, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s != "return_type_notation" {
			return nil, fmt.Errorf("unknown generic args kind %q", s)
		}
		return &GenericArgs{ReturnTypeNotation: true}, nil
	}
	kind, payload, err := singleKey(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "angle_bracketed":
		var a struct {
			Args        []json.RawMessage `json:"args"`
			Constraints []json.RawMessage `json:"constraints"`
		}
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, err
		}
		out := &GenericArgs{}
		for _, arg := range a.Args {
			ga, err := decodeGenericArg(arg)
			if err != nil {
				return nil, err
			}
			out.Args = append(out.Args, ga)
		}
		for _, c := range a.Constraints {
			constraint, err := decodeAssocConstraint(c)
			if err != nil {
				return nil, err
			}
			out.Constraints = append(out.Constraints, constraint)
		}
		return out, nil
	case "parenthesized":
		var p struct {
			Inputs []json.RawMessage `json:"inputs"`
			Output json.RawMessage   `json:"output"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, err
		}
		out := &GenericArgs{Parenthesized: true}
		for _, in := range p.Inputs {
			ty, err := decodeType(in)
			if err != nil {
				return nil, err
			}
			out.Inputs = append(out.Inputs, ty)
		}
		if !isJSONNull(p.Output) {
			out.Output, err = decodeType(p.Output)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown generic args kind %q", kind)
	}
}

func decodeGenericArg(raw json.RawMessage) (GenericArg, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s != "infer" {
			return nil, fmt.Errorf("unknown generic arg %q", s)
		}
		return InferArg{}, nil
	}
	kind, payload, err := singleKey(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "lifetime":
		var lt string
		if err := json.Unmarshal(payload, &lt); err != nil {
			return nil, err
		}
		return LifetimeArg{Lifetime: lt}, nil
	case "type":
		ty, err := decodeType(payload)
		if err != nil {
			return nil, err
		}
		return TypeArg{Type: ty}, nil
	case "const":
		var c ConstantExpr
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		return ConstArg{Const: c}, nil
	default:
		return nil, fmt.Errorf("unknown generic arg kind %q", kind)
	}
}

func decodeAssocConstraint(raw json.RawMessage) (AssocItemConstraint, error) {
	var c struct {
		Name    string          `json:"name"`
		Args    json.RawMessage `json:"args"`
		Binding json.RawMessage `json:"binding"`
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return AssocItemConstraint{}, err
	}
	out := AssocItemConstraint{Name: c.Name}
	if !isJSONNull(c.Args) {
		args, err := decodeGenericArgs(c.Args)
		if err != nil {
			return AssocItemConstraint{}, err
		}
		out.Args = args
	}
	kind, payload, err := singleKey(c.Binding)
	if err != nil {
		return AssocItemConstraint{}, err
	}
	switch kind {
	case "equality":
		term, err := decodeTerm(payload)
		if err != nil {
			return AssocItemConstraint{}, err
		}
		out.Term = term
	case "constraint":
		var raws []json.RawMessage
		if err := json.Unmarshal(payload, &raws); err != nil {
			return AssocItemConstraint{}, err
		}
		out.Bounds, err = decodeBounds(raws)
		if err != nil {
			return AssocItemConstraint{}, err
		}
	default:
		return AssocItemConstraint{}, fmt.Errorf("unknown constraint binding %q", kind)
	}
	return out, nil
}

func decodeFunctionSignature(raw json.RawMessage) (FunctionSignature, error) {
	var s struct {
		Inputs      []json.RawMessage `json:"inputs"`
		Output      json.RawMessage   `json:"output"`
		IsCVariadic bool              `json:"is_c_variadic"`
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return FunctionSignature{}, err
	}
	sig := FunctionSignature{IsCVariadic: s.IsCVariadic}
	for _, input := range s.Inputs {
		var pair []json.RawMessage
		if err := json.Unmarshal(input, &pair); err != nil || len(pair) != 2 {
			return FunctionSignature{}, fmt.Errorf("malformed function input")
		}
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return FunctionSignature{}, err
		}
		ty, err := decodeType(pair[1])
		if err != nil {
			return FunctionSignature{}, err
		}
		sig.Inputs = append(sig.Inputs, Param{Name: name, Type: ty})
	}
	if !isJSONNull(s.Output) {
		ty, err := decodeType(s.Output)
		if err != nil {
			return FunctionSignature{}, err
		}
		sig.Output = ty
	}
	return sig, nil
}

func isJSONNull(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b == 'n'
	}
	return true
}

func (c *ConstantExpr) UnmarshalJSON(data []byte) error {
	var aux struct {
		Expr      string  `json:"expr"`
		Value     *string `json:"value"`
		IsLiteral bool    `json:"is_literal"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Expr = aux.Expr
	if aux.Value != nil {
		c.Value = *aux.Value
	}
	c.IsLiteral = aux.IsLiteral
	return nil
}

func (d *Discriminant) UnmarshalJSON(data []byte) error {
	var aux struct {
		Expr  string `json:"expr"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Expr = aux.Expr
	d.Value = aux.Value
	return nil
}
