package cmd

import (
	"fmt"

	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [folder]",
	Aliases: []string{"ls"},
	Short:   "List bookmarks and folders",
	GroupID: "core",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		bookmarks, err := store.Bookmarks(s)
		if err != nil {
			output.Error("load bookmarks: %v", err)
			return err
		}
		folders, err := store.Folders(s)
		if err != nil {
			output.Error("load folders: %v", err)
			return err
		}

		var folderID int64
		inFolder := len(args) > 0
		if inFolder {
			folderID, err = resolveFolder(s, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if inFolder {
				scoped := bookmarks[:0:0]
				for _, b := range bookmarks {
					if b.FolderID == folderID {
						scoped = append(scoped, b)
					}
				}
				return output.JSON(scoped)
			}
			return output.JSON(map[string]any{"bookmarks": bookmarks, "folders": folders})
		}

		width := output.TerminalWidth(0)

		if !inFolder {
			counts := make(map[int64]int)
			for _, b := range bookmarks {
				counts[b.FolderID]++
			}
			for _, f := range folders {
				fmt.Println(output.FormatFolder(f, counts[f.ID]))
			}
		}

		shown := 0
		for _, b := range bookmarks {
			if inFolder && b.FolderID != folderID {
				continue
			}
			if !inFolder && b.FolderID != 0 {
				continue
			}
			fmt.Println(output.FormatBookmark(b, width))
			shown++
		}
		if shown == 0 && len(folders) == 0 {
			fmt.Println("No bookmarks. Add one with 'qc add <url>'.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Output as JSON")
}
