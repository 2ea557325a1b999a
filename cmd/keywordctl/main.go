package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag     string
	keyFlag     string
	projectFlag string
	rootCmd     = &cobra.Command{
		Use:   "keywordctl",
		Short: "CLI client for the keyword service REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Keyword service base URL")
	rootCmd.PersistentFlags().StringVarP(&keyFlag, "key", "k", os.Getenv("KEYWORDCTL_API_KEY"), "API key (or KEYWORDCTL_API_KEY)")
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "default", "Project ID")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
