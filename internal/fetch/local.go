package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// BuildOptions configure a local rustdoc JSON build.
type BuildOptions struct {
	// Toolchain names the rustup toolchain to build with; defaults to
	// "nightly", which rustdoc JSON output requires.
	Toolchain         string
	Package           string
	NoDefaultFeatures bool
	AllFeatures       bool
	Features          []string
	PrivateItems      bool
	// Quiet suppresses streaming of compiler output; diagnostics are then
	// attached to the returned error instead.
	Quiet bool
}

// BuildLocal runs cargo rustdoc in dir and returns the generated JSON
// document. The crate must be a package directory with a Cargo.toml.
func BuildLocal(ctx context.Context, dir string, opts BuildOptions) ([]byte, error) {
	toolchain := opts.Toolchain
	if toolchain == "" {
		toolchain = "nightly"
	}

	args := []string{"+" + toolchain, "rustdoc", "--lib"}
	if opts.Package != "" {
		args = append(args, "--package", opts.Package)
	}
	if opts.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	if opts.AllFeatures {
		args = append(args, "--all-features")
	}
	if len(opts.Features) > 0 {
		args = append(args, "--features", strings.Join(opts.Features, ","))
	}
	args = append(args, "--", "-Z", "unstable-options", "--output-format", "json")
	if opts.PrivateItems {
		args = append(args, "--document-private-items")
	}

	slog.Info("building rustdoc json", "dir", dir, "toolchain", toolchain)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "cargo", args...)
	cmd.Dir = dir
	cmd.Stdout = io.Discard
	if opts.Quiet {
		cmd.Stderr = &stderr
	} else {
		cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("rustdoc build canceled: %w", ctx.Err())
		}
		return nil, mapBuildFailure(err, stderr.String(), opts.Quiet)
	}

	path, err := generatedJSONPath(dir, opts.Package)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generated rustdoc JSON: %w", err)
	}
	return data, nil
}

// generatedJSONPath locates the JSON document cargo rustdoc wrote under
// target/doc. With a known package name the file name is deterministic;
// otherwise the most recently modified document wins.
func generatedJSONPath(dir, pkg string) (string, error) {
	docDir := filepath.Join(dir, "target", "doc")
	if pkg != "" {
		path := filepath.Join(docDir, ImportName(pkg)+".json")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	entries, err := os.ReadDir(docDir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", docDir, err)
	}

	var newest string
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(docDir, entry.Name())
			newestMod = mod
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no rustdoc JSON generated under %s", docDir)
	}
	return newest, nil
}
