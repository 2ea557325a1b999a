package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	foldersCmd := &cobra.Command{Use: "folders", Short: "Folder operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := checkResponse(newClient().R().Get(projectPath("/folders")))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	foldersCmd.AddCommand(listCmd)

	var icon, color string
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"name": args[0], "icon": icon, "color": color}
			data, err := checkResponse(newClient().R().SetBody(payload).Post(projectPath("/folders")))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	addCmd.Flags().StringVar(&icon, "icon", "", "Folder icon name")
	addCmd.Flags().StringVar(&color, "color", "", "Folder display color")
	foldersCmd.AddCommand(addCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete FOLDER_ID",
		Short: "Delete a folder; its targets become uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkResponse(newClient().R().Delete(projectPath("/folders/" + args[0])))
			return err
		},
	}
	foldersCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(foldersCmd)
}
