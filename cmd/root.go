package cmd

import (
	"log"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/rskel/rskel/internal/config"
	"github.com/rskel/rskel/internal/fetch"
	"github.com/rskel/rskel/internal/render"
	"github.com/rskel/rskel/internal/skel"
)

var (
	flagNoCache   bool
	flagCacheDir  string
	flagAutoImpls bool
	flagQuiet     bool
	flagNoFormat  bool
)

var rootCmd = &cobra.Command{
	Use:   "rskel",
	Short: "Generate compact Rust API skeletons from rustdoc JSON",
	Long: `rskel renders a crate's public API as a single page of syntactically
valid Rust: all signatures, types, traits and docs, with function bodies
omitted. Crates are fetched prebuilt from docs.rs or built locally with the
nightly toolchain.

A target is an entrypoint followed by an optional item path:

  rskel render serde
  rskel render serde@1.0.219
  rskel render tokio::sync::mpsc
  rskel search serde deserialize`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "bypass the on-disk rustdoc JSON cache")
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "override the rustdoc JSON cache directory")
	rootCmd.PersistentFlags().BoolVar(&flagAutoImpls, "auto-impls", false, "include auto-implemented traits")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress compiler output from local builds")
	rootCmd.PersistentFlags().BoolVar(&flagNoFormat, "no-format", false, "skip rustfmt on the rendered output")
}

// newSkel assembles the API entry point from config and flags.
func newSkel() (*skel.Skel, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	cacheDir := cfg.Fetch.CacheDir
	if flagCacheDir != "" {
		cacheDir = flagCacheDir
	}
	if flagNoCache || cfg.Fetch.NoCache {
		cacheDir = ""
	}

	var formatter render.Formatter
	if !flagNoFormat && !cfg.Render.NoFormat {
		rustfmt := cfg.Render.RustfmtPath
		if rustfmt == "" {
			rustfmt, _ = exec.LookPath("rustfmt")
		}
		if rustfmt != "" {
			formatter = &render.Rustfmt{Path: rustfmt, Edition: cfg.Render.Edition}
		}
	}

	return &skel.Skel{
		Client:    fetch.NewClient(cacheDir),
		Formatter: formatter,
		AutoImpls: flagAutoImpls || cfg.Render.AutoImpls,
		Toolchain: cfg.Fetch.Toolchain,
		Quiet:     flagQuiet,
	}, nil
}
