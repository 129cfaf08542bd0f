package markdown

import "testing"

func TestDocCommentsLiftedOutsideCode(t *testing.T) {
	t.Parallel()

	source := `/// example docs
pub struct Foo {
    /// field docs
    pub field: i32,
}
`
	want := `example docs

` + "```rust" + `
pub struct Foo {
    // field docs
    pub field: i32,
}
` + "```"

	if got := toMarkdown(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPreservesBlankDocLines(t *testing.T) {
	t.Parallel()

	source := `///
/// multiple paragraphs
pub struct Foo;
`
	want := `multiple paragraphs

` + "```rust" + `
pub struct Foo;
` + "```"

	if got := toMarkdown(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestClosesUnbalancedDocFences(t *testing.T) {
	t.Parallel()

	source := "/// # Example\n///\n/// ```\n/// let markdown = \"**very** _important\".into();\npub fn set_input(&mut self) {}\n"
	want := "# Example\n\n```rust\nlet markdown = \"**very** _important\".into();\n```\n\n```rust\npub fn set_input(&mut self) {}\n```"

	if got := toMarkdown(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRemovesUniformLeadingIndentation(t *testing.T) {
	t.Parallel()

	source := "\tpub fn alpha() {}\n\tpub fn beta() {}\n"
	want := "```rust\npub fn alpha() {}\npub fn beta() {}\n```"

	if got := toMarkdown(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestStripsOuterModuleWrapper(t *testing.T) {
	t.Parallel()

	source := "pub mod example {\n    pub struct Inner;\n}\n"
	got := stripOuterModule(source)
	if want := "    pub struct Inner;\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// A file without the wrapper is untouched.
	plain := "pub struct Standalone;"
	if got := stripOuterModule(plain); got != plain {
		t.Errorf("got %q, want %q", got, plain)
	}
}

func TestHidesDoctestSetupLines(t *testing.T) {
	t.Parallel()

	source := "/// ```\n/// # fn helper() {}\n/// let value = helper();\n/// # assert_eq!(value, ());\n/// ```\npub fn demo() {}\n"
	want := "```rust\nlet value = helper();\n```\n\n```rust\npub fn demo() {}\n```"

	if got := toMarkdown(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestNormalizesCompileFailBlocks(t *testing.T) {
	t.Parallel()

	source := "/// ```compile_fail\n/// fn main() {\n///     panic!(\"oops\");\n/// }\n/// ```\npub fn demo() {}\n"
	want := "```rust\nfn main() {\n    panic!(\"oops\");\n}\n```\n\n```rust\npub fn demo() {}\n```"

	if got := toMarkdown(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTextFencesBecomeUnfenced(t *testing.T) {
	t.Parallel()

	source := "/// ```text\n/// plain output\n/// ```\npub fn demo() {}\n"
	want := "```\nplain output\n```\n\n```rust\npub fn demo() {}\n```"

	if got := toMarkdown(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnknownFenceLanguagePassesThrough(t *testing.T) {
	t.Parallel()

	source := "/// ```toml\n/// [dependencies]\n/// ```\npub fn demo() {}\n"
	want := "```toml\n[dependencies]\n```\n\n```rust\npub fn demo() {}\n```"

	if got := toMarkdown(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPreservesListStructure(t *testing.T) {
	t.Parallel()

	source := `/// Shopping list
/// - Apples
/// - Bananas
///
/// Notes follow.
pub struct Cart;
`
	want := `Shopping list

- Apples
- Bananas

Notes follow.

` + "```rust" + `
pub struct Cart;
` + "```"

	if got := toMarkdown(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderStripsWrapperAndConverts(t *testing.T) {
	t.Parallel()

	source := `pub mod demo {
    /// A drawable widget.
    pub struct Widget;
}
`
	want := `A drawable widget.

` + "```rust" + `
pub struct Widget;
` + "```"

	if got := Render(source); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
