package cmd

import (
	"fmt"
	"strings"

	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <url> [title]",
	Aliases: []string{"new"},
	Short:   "Add a bookmark",
	Long:    `Add a bookmark to the local store and queue it for sync.`,
	GroupID: "core",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		url := args[0]
		if !strings.Contains(url, "://") {
			url = "https://" + url
		}

		title, _ := cmd.Flags().GetString("title")
		if len(args) > 1 {
			title = args[1]
		}
		if title == "" {
			title = url
		}

		if force, _ := cmd.Flags().GetBool("force"); !force {
			bookmarks, err := store.Bookmarks(s)
			if err != nil {
				output.Error("read bookmarks: %v", err)
				return err
			}
			for _, b := range bookmarks {
				if b.URL == url {
					output.Warning("already bookmarked as %s (use --force to add anyway)", output.FormatID(b.ID))
					return nil
				}
			}
		}

		favicon, _ := cmd.Flags().GetString("favicon")
		folderArg, _ := cmd.Flags().GetString("folder")
		folderID, err := resolveFolder(s, folderArg)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		eng := newEngine(s)
		b, err := eng.AddBookmark(title, url, favicon, folderID)
		if err != nil {
			output.Error("add bookmark: %v", err)
			return err
		}

		fmt.Printf("ADDED %s\n", output.FormatID(b.ID))
		return nil
	},
}

var dupCmd = &cobra.Command{
	Use:     "dup <id>",
	Short:   "Duplicate a bookmark",
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

		src, err := findBookmark(s, id)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		eng := newEngine(s)
		b, err := eng.AddBookmark(src.Title, src.URL, src.Favicon, src.FolderID)
		if err != nil {
			output.Error("duplicate bookmark: %v", err)
			return err
		}

		fmt.Printf("ADDED %s\n", output.FormatID(b.ID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(dupCmd)

	addCmd.Flags().String("title", "", "Bookmark title (defaults to the URL)")
	addCmd.Flags().String("favicon", "", "Favicon URL")
	addCmd.Flags().StringP("folder", "f", "", "Folder name or id")
	addCmd.Flags().Bool("force", false, "Add even if the URL is already bookmarked")
}
