package render

import (
	"bytes"
	"os/exec"
	"strings"
)

// Formatter post-processes raw skeleton text into its final form.
type Formatter interface {
	Format(source string) (string, error)
}

// Rustfmt formats output by piping it through the rustfmt binary.
type Rustfmt struct {
	// Path to the rustfmt binary. Empty means "rustfmt" on PATH.
	Path string
	// Edition passed to rustfmt. Empty means 2021.
	Edition string
	// ExtraArgs are appended to the rustfmt invocation.
	ExtraArgs []string
}

func (f Rustfmt) Format(source string) (string, error) {
	bin := f.Path
	if bin == "" {
		bin = "rustfmt"
	}
	edition := f.Edition
	if edition == "" {
		edition = "2021"
	}

	args := []string{"--edition", edition, "--emit", "stdout", "--config", "brace_style=PreferSameLine"}
	args = append(args, f.ExtraArgs...)

	cmd := exec.Command(bin, args...)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Rejected output means the renderer produced invalid syntax.
		return "", &FormatError{Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return stdout.String(), nil
}
