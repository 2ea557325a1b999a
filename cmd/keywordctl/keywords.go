package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	keywordsCmd := &cobra.Command{Use: "keywords", Short: "Relevant keyword operations"}

	// add (bulk)
	addCmd := &cobra.Command{
		Use:   "add TARGET_ID KEYWORD...",
		Short: "Bulk-add keywords to a target, reporting added/duplicates/skipped",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string][]string{"keywords": args[1:]}
			data, err := checkResponse(newClient().R().SetBody(payload).
				Post(projectPath("/targets/" + args[0] + "/keywords")))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	keywordsCmd.AddCommand(addCmd)

	// remove
	removeCmd := &cobra.Command{
		Use:   "remove TARGET_ID TEXT",
		Short: "Remove a keyword by exact text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkResponse(newClient().R().SetQueryParam("text", args[1]).
				Delete(projectPath("/targets/" + args[0] + "/keywords")))
			return err
		},
	}
	keywordsCmd.AddCommand(removeCmd)

	// toggle
	toggleCmd := &cobra.Command{
		Use:   "toggle TARGET_ID TEXT",
		Short: "Toggle a keyword's done flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"text": args[1]}
			_, err := checkResponse(newClient().R().SetBody(payload).
				Post(projectPath("/targets/" + args[0] + "/keywords/toggle")))
			return err
		},
	}
	keywordsCmd.AddCommand(toggleCmd)

	rootCmd.AddCommand(keywordsCmd)
}
