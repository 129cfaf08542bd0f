package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rskel/rskel/internal/ir"
)

// rustdoc renders new-style declarative macros with a stray trailing
// "{ ... }" block that is not valid syntax. The pattern below strips it.
var macroPlaceholderRe = regexp.MustCompile(`\}\s*\{\s*\.\.\.\s*\}\s*$`)

// renderMacro re-emits a declarative macro from its embedded source text.
func renderMacro(item *ir.Item) string {
	output := docs(item)
	macro := expectKind[ir.Macro](item)

	// Exported macros are the only ones surfaced by rustdoc.
	output += "#[macro_export]\n"

	source := macro.Source
	if strings.HasPrefix(source, "macro ") && !strings.HasPrefix(source, "macro_rules!") {
		if macroPlaceholderRe.MatchString(source) {
			source = macroPlaceholderRe.ReplaceAllString(source, "}")
		}
	}

	return output + escapeMacroName(source) + "\n"
}

// escapeMacroName raw-escapes a macro_rules! name that collides with a
// reserved word, leaving the body untouched.
func escapeMacroName(source string) string {
	start := strings.Index(source, "macro_rules!")
	if start < 0 {
		return source
	}
	prefix := source[:start+len("macro_rules!")]
	rest := source[start+len("macro_rules!"):]

	trimmed := strings.TrimLeft(rest, " \t\n")
	nameEnd := strings.IndexFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '{'
	})
	if nameEnd < 0 {
		return source
	}
	name := trimmed[:nameEnd]
	if !isReservedWord(name) {
		return source
	}
	return fmt.Sprintf("%s r#%s%s", prefix, name, trimmed[nameEnd:])
}

// renderProcMacro renders a procedural macro as an annotated stub function.
func renderProcMacro(item *ir.Item) string {
	output := docs(item)
	fnName := renderName(item)
	pm := expectKind[ir.ProcMacro](item)

	switch pm.Kind {
	case ir.MacroDerive:
		if len(pm.Helpers) > 0 {
			output += fmt.Sprintf("#[proc_macro_derive(%s, attributes(%s))]\n", fnName, strings.Join(pm.Helpers, ", "))
		} else {
			output += fmt.Sprintf("#[proc_macro_derive(%s)]\n", fnName)
		}
	case ir.MacroAttr:
		output += "#[proc_macro_attribute]\n"
	case ir.MacroBang:
		output += "#[proc_macro]\n"
	}

	args := "input: proc_macro::TokenStream"
	if pm.Kind == ir.MacroAttr {
		args = "attr: proc_macro::TokenStream, item: proc_macro::TokenStream"
	}
	return output + fmt.Sprintf("pub fn %s(%s) -> proc_macro::TokenStream {}\n", fnName, args)
}
