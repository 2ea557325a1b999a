package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	targetsCmd := &cobra.Command{Use: "targets", Short: "Main target operations"}

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List main targets in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkResponse(newClient().R().Get(projectPath("/targets")))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	targetsCmd.AddCommand(listCmd)

	// add
	var folderID string
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a main target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"name": args[0]}
			if folderID != "" {
				payload["folderId"] = folderID
			}
			data, err := checkResponse(newClient().R().SetBody(payload).Post(projectPath("/targets")))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&folderID, "folder", "f", "", "Folder ID to file the target under")
	targetsCmd.AddCommand(addCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete TARGET_ID",
		Short: "Delete a main target and its keywords",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkResponse(newClient().R().Delete(projectPath("/targets/" + args[0])))
			return err
		},
	}
	targetsCmd.AddCommand(deleteCmd)

	// toggle
	toggleCmd := &cobra.Command{
		Use:   "toggle TARGET_ID",
		Short: "Toggle a target's done flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkResponse(newClient().R().Post(projectPath("/targets/" + args[0] + "/toggle")))
			return err
		},
	}
	targetsCmd.AddCommand(toggleCmd)

	// reorder
	var oldIndex, newIndex int
	reorderCmd := &cobra.Command{
		Use:   "reorder",
		Short: "Move a target to a new display position",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]int{"oldIndex": oldIndex, "newIndex": newIndex}
			_, err := checkResponse(newClient().R().SetBody(payload).Post(projectPath("/targets/reorder")))
			return err
		},
	}
	reorderCmd.Flags().IntVar(&oldIndex, "from", 0, "Current index")
	reorderCmd.Flags().IntVar(&newIndex, "to", 0, "Destination index")
	_ = reorderCmd.MarkFlagRequired("from")
	_ = reorderCmd.MarkFlagRequired("to")
	targetsCmd.AddCommand(reorderCmd)

	rootCmd.AddCommand(targetsCmd)
}
