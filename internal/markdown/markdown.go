// Package markdown turns rendered Rust skeleton text into a Markdown
// document: doc comments become prose, code becomes fenced blocks, and
// intra-doc links are rewritten to stable item paths.
package markdown

import (
	"strings"
)

// Render converts skeleton source into Markdown. A single outer
// `pub mod name { ... }` wrapper, if present, is removed first.
func Render(source string) string {
	return toMarkdown(stripOuterModule(source))
}

// docLine is one collected doc-comment line, split into its leading
// whitespace and the comment text.
type docLine struct {
	indent string
	text   string
}

func toMarkdown(source string) string {
	var markdown strings.Builder
	var codeBuffer []string
	inCodeBlock := false
	needGapBeforeCode := false

	lines := strings.Split(source, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimLeft(line, " \t")

		if isDocComment(trimmed) {
			block, consumed := collectDocBlock(lines[i:])
			i += consumed - 1

			// A lone /// line inside a code run is a field or member doc;
			// keep it in place as a regular comment.
			inlineDoc := inCodeBlock &&
				strings.HasPrefix(trimmed, "///") &&
				len(block) == 1 &&
				strings.TrimSpace(block[0].text) != ""

			if inlineDoc {
				codeBuffer = append(codeBuffer, block[0].indent+"// "+strings.TrimSpace(block[0].text))
				continue
			}

			flushCodeBlock(&markdown, &codeBuffer, &needGapBeforeCode)
			inCodeBlock = false
			if renderDocBlock(block, &markdown) {
				needGapBeforeCode = true
			}
			continue
		}

		if strings.TrimSpace(trimmed) == "" {
			if inCodeBlock {
				codeBuffer = append(codeBuffer, "")
			} else if markdown.Len() > 0 && !strings.HasSuffix(markdown.String(), "\n") {
				markdown.WriteByte('\n')
			}
			continue
		}

		inCodeBlock = true
		codeBuffer = append(codeBuffer, line)
	}

	flushCodeBlock(&markdown, &codeBuffer, &needGapBeforeCode)

	return strings.TrimSpace(normalizeSpacing(markdown.String()))
}

// stripOuterModule removes the top-level module wrapper the renderer adds
// around every crate.
func stripOuterModule(source string) string {
	trimmed := strings.TrimSpace(source)
	lines := strings.Split(trimmed, "\n")
	if len(lines) >= 2 {
		first := strings.TrimSpace(lines[0])
		last := strings.TrimSpace(lines[len(lines)-1])
		if strings.HasPrefix(first, "pub mod ") && strings.HasSuffix(first, "{") && last == "}" {
			return strings.Join(lines[1:len(lines)-1], "\n") + "\n"
		}
	}
	return trimmed
}

// collectDocBlock gathers the run of doc-comment lines starting at lines[0]
// and reports how many lines it consumed.
func collectDocBlock(lines []string) ([]docLine, int) {
	var block []docLine
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if i > 0 && !isDocComment(trimmed) {
			return block, i
		}
		indent := line[:len(line)-len(trimmed)]
		block = append(block, docLine{
			indent: indent,
			text:   strings.TrimRight(stripDocComment(trimmed), " \t"),
		})
	}
	return block, len(lines)
}

func isDocComment(line string) bool {
	return strings.HasPrefix(line, "///") || strings.HasPrefix(line, "//!")
}

func stripDocComment(line string) string {
	for _, prefix := range []string{"///", "//!"} {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimPrefix(rest, " ")
		}
	}
	return line
}

func isListItem(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits+1 >= len(trimmed) {
		return false
	}
	if trimmed[digits] != '.' && trimmed[digits] != ')' {
		return false
	}
	return trimmed[digits+1] == ' ' || trimmed[digits+1] == '\t'
}

func ensureBlockGap(markdown *strings.Builder) {
	s := markdown.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	if !strings.HasSuffix(s, "\n") {
		markdown.WriteByte('\n')
	}
	markdown.WriteByte('\n')
}

// renderDocBlock emits one doc-comment run as Markdown and reports whether
// it produced any prose (fenced doctest content alone does not count).
func renderDocBlock(block []docLine, markdown *strings.Builder) bool {
	fenceOpen := false
	containsText := false
	inListBlock := false
	var paragraph strings.Builder

	for _, line := range block {
		text := strings.TrimRight(line.text, " \t")
		lead := strings.TrimLeft(text, " \t")

		switch {
		case strings.HasPrefix(lead, "```"):
			flushParagraph(markdown, &paragraph, &containsText)
			lang := strings.TrimSpace(lead[3:])
			if mapped, ok := normalizeDocLang(lang); ok {
				if fenceOpen {
					markdown.WriteString("```\n\n")
				} else {
					markdown.WriteString("```" + mapped + "\n")
				}
			} else {
				markdown.WriteString(lead + "\n")
			}
			fenceOpen = !fenceOpen
			inListBlock = false

		case fenceOpen:
			// Doctest setup lines starting with # are hidden from readers.
			if !strings.HasPrefix(lead, "#") {
				markdown.WriteString(text + "\n")
			}

		case lead == "":
			flushParagraph(markdown, &paragraph, &containsText)
			if inListBlock {
				ensureBlockGap(markdown)
				inListBlock = false
			}

		case isListItem(lead):
			flushParagraph(markdown, &paragraph, &containsText)
			if !inListBlock {
				ensureBlockGap(markdown)
			}
			markdown.WriteString(text + "\n")
			inListBlock = true
			containsText = true

		default:
			if inListBlock {
				ensureBlockGap(markdown)
				inListBlock = false
			}
			if paragraph.Len() > 0 {
				paragraph.WriteByte(' ')
			}
			paragraph.WriteString(lead)
		}
	}

	flushParagraph(markdown, &paragraph, &containsText)
	if inListBlock {
		ensureBlockGap(markdown)
	}
	if fenceOpen {
		markdown.WriteString("```\n\n")
	}
	return containsText
}

func flushCodeBlock(markdown *strings.Builder, codeBuffer *[]string, needGap *bool) {
	allBlank := true
	for _, line := range *codeBuffer {
		if strings.TrimSpace(line) != "" {
			allBlank = false
			break
		}
	}
	if allBlank {
		*codeBuffer = nil
		return
	}

	if *needGap && markdown.Len() > 0 {
		if !strings.HasSuffix(markdown.String(), "\n") {
			markdown.WriteByte('\n')
		}
		markdown.WriteByte('\n')
	}

	markdown.WriteString("```rust\n")
	markdown.WriteString(dedentLines(*codeBuffer))
	markdown.WriteString("```\n\n")
	*codeBuffer = nil
	*needGap = false
}

func dedentLines(lines []string) string {
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := 0
		for indent < len(line) && (line[indent] == ' ' || line[indent] == '\t') {
			indent++
		}
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}

	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			b.WriteByte('\n')
			continue
		}
		trimAt := minIndent
		if trimAt > len(line) {
			trimAt = len(line)
		}
		b.WriteString(line[trimAt:])
		b.WriteByte('\n')
	}
	return b.String()
}

func flushParagraph(markdown *strings.Builder, paragraph *strings.Builder, containsText *bool) {
	text := strings.TrimSpace(paragraph.String())
	paragraph.Reset()
	if text == "" {
		return
	}
	if markdown.Len() > 0 {
		if !strings.HasSuffix(markdown.String(), "\n") {
			markdown.WriteByte('\n')
		}
		markdown.WriteByte('\n')
	}
	markdown.WriteString(text + "\n\n")
	*containsText = true
}

// normalizeSpacing collapses runs of blank lines and drops blanks that abut
// a closing fence.
func normalizeSpacing(input string) string {
	lines := strings.Split(input, "\n")
	var result []string
	inFence := false

	for idx, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence && len(result) > 0 && strings.TrimSpace(result[len(result)-1]) == "" {
				result = result[:len(result)-1]
			}
			result = append(result, line)
			inFence = !inFence
			continue
		}

		if trimmed == "" {
			if len(result) > 0 && strings.TrimSpace(result[len(result)-1]) == "" {
				continue
			}
			if inFence && idx+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[idx+1]), "```") {
				continue
			}
			result = append(result, "")
		} else {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// normalizeDocLang maps rustdoc fence annotations onto Markdown languages.
// The second return is false for languages that should pass through as-is.
func normalizeDocLang(lang string) (string, bool) {
	primary := strings.TrimSpace(strings.Split(lang, ",")[0])
	switch primary {
	case "", "rust", "no_run", "compile_fail", "should_panic", "ignore":
		return "rust", true
	case "text":
		return "", true
	default:
		return "", false
	}
}
