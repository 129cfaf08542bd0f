package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rskel/rskel/internal/config"
	"github.com/rskel/rskel/internal/fetch"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk rustdoc JSON cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory path",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveCacheDir()
		if err != nil {
			return err
		}
		fmt.Println(dir)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached rustdoc JSON documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveCacheDir()
		if err != nil {
			return err
		}
		if err := fetch.ClearCache(dir); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheDirCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func resolveCacheDir() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if flagCacheDir != "" {
		return flagCacheDir, nil
	}
	return cfg.Fetch.CacheDir, nil
}
