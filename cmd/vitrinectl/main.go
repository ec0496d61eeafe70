package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "vitrinectl",
		Short: "CLI client for the vitrine listing REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Listing service base URL")

	// sources subcommand
	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "Show enabled sources and media server instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSources(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(sourcesCmd)

	// list subcommand
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of media items from a source",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			instance, _ := cmd.Flags().GetString("instance")
			container, _ := cmd.Flags().GetString("container")
			path, _ := cmd.Flags().GetString("path")
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")
			sortField, _ := cmd.Flags().GetString("sort")
			sortDir, _ := cmd.Flags().GetString("order")
			return runList(apiFlag, listArgs{
				Source:        source,
				InstanceKey:   instance,
				ContainerID:   container,
				Path:          path,
				Page:          page,
				PageSize:      size,
				SortField:     sortField,
				SortDirection: sortDir,
			}, os.Stdout)
		},
	}
	listCmd.Flags().StringP("source", "s", "media-server", "Source kind (media-server, archive-index, flat-files)")
	listCmd.Flags().StringP("instance", "i", "", "Media server instance key")
	listCmd.Flags().StringP("container", "c", "", "Container (library view) ID")
	listCmd.Flags().String("path", "", "Flat-files path")
	listCmd.Flags().IntP("page", "p", 1, "Page number")
	listCmd.Flags().IntP("size", "n", 20, "Page size")
	listCmd.Flags().String("sort", "", "Sort field (media-server only)")
	listCmd.Flags().String("order", "", "Sort direction: asc or desc")
	rootCmd.AddCommand(listCmd)

	// browse subcommand
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a flat-file archive path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			return runBrowse(apiFlag, path, os.Stdout)
		},
	}
	browseCmd.Flags().String("path", "/", "Archive path to browse")
	rootCmd.AddCommand(browseCmd)

	// search subcommand
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search the flat-file archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword, _ := cmd.Flags().GetString("keyword")
			if keyword == "" {
				return fmt.Errorf("--keyword required")
			}
			return runSearch(apiFlag, keyword, os.Stdout)
		},
	}
	searchCmd.Flags().StringP("keyword", "k", "", "Search keyword (required)")
	_ = searchCmd.MarkFlagRequired("keyword")
	rootCmd.AddCommand(searchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
