package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	// search
	searchCmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search across target names and keyword texts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkResponse(newClient().R().SetQueryParam("q", args[0]).
				Get(projectPath("/search")))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(searchCmd)

	// export
	var outFile string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full keyword document",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkResponse(newClient().R().Get(projectPath("/export")))
			if err != nil {
				return err
			}
			if outFile == "" {
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			return os.WriteFile(outFile, data, 0o644)
		},
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the document to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)

	// import
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the keyword document from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			_, err = checkResponse(newClient().R().SetBody(body).Put(projectPath("/import")))
			return err
		},
	}
	rootCmd.AddCommand(importCmd)
}
