package cmd

import (
	"fmt"

	"github.com/quiclick/qc/internal/engine"
	"github.com/quiclick/qc/internal/output"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Aliases: []string{"edit"},
	Short:   "Update a bookmark",
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		id, err := parseID(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		var updates engine.BookmarkUpdates
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			updates.Title = &v
		}
		if cmd.Flags().Changed("url") {
			v, _ := cmd.Flags().GetString("url")
			updates.URL = &v
		}
		if cmd.Flags().Changed("favicon") {
			v, _ := cmd.Flags().GetString("favicon")
			updates.Favicon = &v
		}
		if cmd.Flags().Changed("folder") {
			arg, _ := cmd.Flags().GetString("folder")
			folderID, err := resolveFolder(s, arg)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			updates.FolderID = &folderID
		}
		if updates.Title == nil && updates.URL == nil && updates.Favicon == nil && updates.FolderID == nil {
			output.Error("nothing to update (use --title, --url, --favicon, or --folder)")
			return fmt.Errorf("nothing to update")
		}

		eng := newEngine(s)
		b, err := eng.EditBookmark(id, updates)
		if err != nil {
			output.Error("update bookmark: %v", err)
			return err
		}

		fmt.Printf("UPDATED %s\n", output.FormatID(b.ID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().String("url", "", "New URL")
	updateCmd.Flags().String("favicon", "", "New favicon URL")
	updateCmd.Flags().StringP("folder", "f", "", "Move to folder (name or id, empty for root)")
}
