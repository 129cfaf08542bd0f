package fetch

import (
	"os/exec"
	"strings"
	"unicode"
)

// maxStderrChars bounds how much captured stderr ends up in failure reports.
const maxStderrChars = 8192

// BuildError reports a failed rustdoc JSON build with the leading compiler
// diagnostic pulled out of the noise.
type BuildError struct {
	Summary string
	Stderr  string
}

func (e *BuildError) Error() string {
	msg := "failed to build rustdoc JSON: " + e.Summary
	if e.Stderr != "" {
		diagnostics, truncated := truncateDiagnostics(e.Stderr)
		msg += "\n\nrustdoc stderr:\n" + diagnostics
		if truncated {
			msg += "\n… output truncated …"
		}
	}
	return msg
}

// mapBuildFailure turns a failed cargo invocation into a BuildError with a
// usable summary. When quiet is set the compiler output was not streamed to
// the user, so the captured stderr is attached to the error instead.
func mapBuildFailure(runErr error, stderr string, quiet bool) error {
	stderr = strings.TrimSpace(stderr)
	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
	}

	if strings.Contains(errMsg, "toolchain") && strings.Contains(errMsg, "is not installed") {
		install := "ensure nightly Rust is installed and available in PATH"
		if rustupAvailable() {
			install = "run 'rustup toolchain install nightly'"
		}
		return &BuildError{Summary: "the nightly toolchain is required - " + install}
	}

	if strings.Contains(stderr, "unknown feature") || strings.Contains(stderr, "E0635") {
		return &BuildError{Summary: "this crate or its dependencies use unstable features that are not compatible with the current nightly toolchain"}
	}

	summary, ok := extractPrimaryDiagnostic(stderr)
	if !ok {
		if stderr == "" {
			return &BuildError{Summary: "rustdoc exited with an error but emitted no diagnostics; rerun with --verbose or `cargo rustdoc` to inspect the failure"}
		}
		summary = "rustdoc exited with an error; rerun with --verbose for full diagnostics."
	}

	be := &BuildError{Summary: strings.TrimSpace(summary)}
	if quiet {
		be.Stderr = stderr
	}
	return be
}

// extractPrimaryDiagnostic returns the first meaningful error diagnostic in
// the captured stderr, with its context lines attached.
func extractPrimaryDiagnostic(stderr string) (string, bool) {
	lines := strings.Split(stderr, "\n")
	for i := 0; i < len(lines); i++ {
		if !isPrimaryErrorLine(lines[i]) {
			continue
		}

		snippet := []string{strings.TrimRight(lines[i], " \t")}
		for j := i + 1; j < len(lines); j++ {
			trimmed := strings.TrimRight(lines[j], " \t")
			if strings.TrimSpace(trimmed) == "" {
				break
			}
			if !isContextLine(lines[j], trimmed) {
				break
			}
			snippet = append(snippet, trimmed)
		}
		return strings.Join(snippet, "\n"), true
	}
	return "", false
}

// isPrimaryErrorLine reports whether a line opens a new error diagnostic,
// excluding the generic wrappers cargo appends after the real error.
func isPrimaryErrorLine(line string) bool {
	trimmed := strings.TrimSpace(line)

	if body, ok := strings.CutPrefix(trimmed, "error["); ok {
		return strings.Contains(body, "]")
	}

	if body, ok := strings.CutPrefix(trimmed, "error:"); ok {
		body = strings.TrimLeft(body, " \t")
		return !(strings.HasPrefix(body, "Compilation failed") ||
			strings.HasPrefix(body, "could not compile") ||
			strings.HasPrefix(body, "could not document"))
	}

	return false
}

func isContextLine(raw, trimmed string) bool {
	trimmedStart := strings.TrimLeft(trimmed, " ")

	isLineNumberBlock := false
	if before, _, ok := strings.Cut(trimmed, "|"); ok && strings.Contains(trimmed, "|") {
		prefix := strings.TrimSpace(before)
		isLineNumberBlock = true
		for _, r := range prefix {
			if !unicode.IsDigit(r) {
				isLineNumberBlock = false
				break
			}
		}
	}

	return strings.HasPrefix(raw, " ") ||
		strings.HasPrefix(raw, "\t") ||
		strings.HasPrefix(raw, "|") ||
		strings.HasPrefix(trimmedStart, "-->") ||
		strings.HasPrefix(trimmedStart, "note:") ||
		strings.HasPrefix(trimmedStart, "help:") ||
		strings.HasPrefix(trimmedStart, "warning:") ||
		strings.HasPrefix(trimmedStart, "= note:") ||
		strings.HasPrefix(trimmedStart, "= help:") ||
		strings.HasPrefix(trimmedStart, "= warning:") ||
		isLineNumberBlock
}

// truncateDiagnostics caps diagnostics at maxStderrChars, reporting whether
// anything was cut.
func truncateDiagnostics(stderr string) (string, bool) {
	runes := []rune(stderr)
	if len(runes) <= maxStderrChars {
		return stderr, false
	}
	return string(runes[:maxStderrChars]), true
}

func rustupAvailable() bool {
	err := exec.Command("rustup", "--version").Run()
	return err == nil
}
