package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rskel/rskel/internal/search"
	"github.com/rskel/rskel/internal/skel"
)

var (
	searchPrivate           bool
	searchCaseSensitive     bool
	searchExpandContainers  bool
	searchDomains           []string
	searchNoDefaultFeatures bool
	searchAllFeatures       bool
	searchFeatures          []string
)

var searchCmd = &cobra.Command{
	Use:   "search <target> <query>",
	Short: "Search a crate's items and render the matching subset",
	Long: `Search matches the query against item names, doc comments, paths and
signatures, then renders a skeleton narrowed to the matches and their
enclosing scopes.`,
	Example: `  rskel search serde deserialize
  rskel search tokio spawn --domains names
  rskel search mycrate config --expand-containers`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchPrivate, "private", false, "include private items")
	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "match case exactly")
	searchCmd.Flags().BoolVar(&searchExpandContainers, "expand-containers", false, "render the full contents of matched containers")
	searchCmd.Flags().StringSliceVar(&searchDomains, "domains", nil, "domains to search: names, docs, paths, signatures")
	searchCmd.Flags().BoolVar(&searchNoDefaultFeatures, "no-default-features", false, "build without default features (local targets)")
	searchCmd.Flags().BoolVar(&searchAllFeatures, "all-features", false, "build with all features (local targets)")
	searchCmd.Flags().StringSliceVar(&searchFeatures, "features", nil, "features to enable (local targets)")

	rootCmd.AddCommand(searchCmd)
}

// formatSearchResult is one line of the match listing: kind, path, and the
// domains the query landed in.
func formatSearchResult(r search.Result) string {
	return fmt.Sprintf("%-12s %-40s %s", r.Entry.Kind, r.Entry.Path, search.DescribeDomains(r.Matched))
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := newSkel()
	if err != nil {
		return err
	}

	domains, err := search.ParseDomains(searchDomains)
	if err != nil {
		return err
	}

	resp, err := s.Search(context.Background(), args[0], skel.SearchOptions{
		Options: skel.Options{
			PrivateItems:      searchPrivate,
			NoDefaultFeatures: searchNoDefaultFeatures,
			AllFeatures:       searchAllFeatures,
			Features:          searchFeatures,
		},
		Query:            args[1],
		Domains:          domains,
		CaseSensitive:    searchCaseSensitive,
		ExpandContainers: searchExpandContainers,
	})
	if err != nil {
		return err
	}

	if len(resp.Results) == 0 {
		fmt.Printf("no matches for %q in %s\n", args[1], args[0])
		return nil
	}

	for _, r := range resp.Results {
		fmt.Println(formatSearchResult(r))
	}
	fmt.Println()
	fmt.Print(resp.Rendered)
	if resp.Rendered != "" && resp.Rendered[len(resp.Rendered)-1] != '\n' {
		fmt.Println()
	}
	return nil
}
