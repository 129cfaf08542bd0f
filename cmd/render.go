package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rskel/rskel/internal/skel"
)

var (
	renderPrivate           bool
	renderMarkdown          bool
	renderRaw               bool
	renderNoDefaultFeatures bool
	renderAllFeatures       bool
	renderFeatures          []string
)

var renderCmd = &cobra.Command{
	Use:   "render <target>",
	Short: "Render the API skeleton of a crate or item",
	Example: `  rskel render serde
  rskel render serde@1.0.219
  rskel render tokio::sync::mpsc
  rskel render ./path/to/crate --private`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderPrivate, "private", false, "include private items")
	renderCmd.Flags().BoolVar(&renderMarkdown, "markdown", false, "emit a Markdown document")
	renderCmd.Flags().BoolVar(&renderRaw, "raw", false, "emit the raw rustdoc JSON, pretty-printed")
	renderCmd.Flags().BoolVar(&renderNoDefaultFeatures, "no-default-features", false, "build without default features (local targets)")
	renderCmd.Flags().BoolVar(&renderAllFeatures, "all-features", false, "build with all features (local targets)")
	renderCmd.Flags().StringSliceVar(&renderFeatures, "features", nil, "features to enable (local targets)")

	rootCmd.AddCommand(renderCmd)
}

func renderOptions() skel.Options {
	return skel.Options{
		PrivateItems:      renderPrivate,
		NoDefaultFeatures: renderNoDefaultFeatures,
		AllFeatures:       renderAllFeatures,
		Features:          renderFeatures,
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := newSkel()
	if err != nil {
		return err
	}

	opts := renderOptions()

	var out string
	switch {
	case renderRaw:
		out, err = s.RawJSON(context.Background(), args[0], opts)
	case renderMarkdown:
		out, err = s.RenderMarkdown(context.Background(), args[0], opts)
	default:
		out, err = s.Render(context.Background(), args[0], opts)
	}
	if err != nil {
		return err
	}

	fmt.Print(out)
	if out != "" && out[len(out)-1] != '\n' {
		fmt.Println()
	}
	return nil
}
