package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rskel/rskel/internal/search"
	"github.com/rskel/rskel/internal/skel"
)

var (
	listPrivate bool
	listQuery   string
)

var listCmd = &cobra.Command{
	Use:   "list <target>",
	Short: "List a crate's items as kind and path pairs",
	Example: `  rskel list serde
  rskel list tokio --query spawn`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listPrivate, "private", false, "include private items")
	listCmd.Flags().StringVar(&listQuery, "query", "", "narrow the listing to matching items")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSkel()
	if err != nil {
		return err
	}

	opts := skel.Options{PrivateItems: listPrivate}
	var query *skel.SearchOptions
	if listQuery != "" {
		query = &skel.SearchOptions{
			Options: opts,
			Query:   listQuery,
			Domains: search.DefaultDomains,
		}
	}

	items, err := s.List(context.Background(), args[0], opts, query)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%-12s %s\n", item.Kind, item.Path)
	}
	return nil
}
