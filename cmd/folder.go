package cmd

import (
	"fmt"

	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/store"
	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:     "folder",
	Short:   "Manage folders",
	GroupID: "core",
}

var folderAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		eng := newEngine(s)
		f, err := eng.AddFolder(args[0])
		if err != nil {
			output.Error("create folder: %v", err)
			return err
		}

		fmt.Printf("ADDED %s\n", output.FormatID(f.ID))
		return nil
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename <folder> <name>",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		id, err := resolveFolder(s, args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		eng := newEngine(s)
		if err := eng.RenameFolder(id, args[1]); err != nil {
			output.Error("rename folder: %v", err)
			return err
		}

		fmt.Printf("RENAMED %d\n", id)
		return nil
	},
}

var folderRmCmd = &cobra.Command{
	Use:     "rm <folder>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a folder (its bookmarks move to root)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		id, err := resolveFolder(s, args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		eng := newEngine(s)
		if err := eng.RemoveFolder(id); err != nil {
			output.Error("delete folder: %v", err)
			return err
		}

		fmt.Printf("DELETED %d\n", id)
		return nil
	},
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		folders, err := store.Folders(s)
		if err != nil {
			output.Error("load folders: %v", err)
			return err
		}
		bookmarks, err := store.Bookmarks(s)
		if err != nil {
			output.Error("load bookmarks: %v", err)
			return err
		}
		counts := make(map[int64]int)
		for _, b := range bookmarks {
			counts[b.FolderID]++
		}
		if len(folders) == 0 {
			fmt.Println("No folders.")
			return nil
		}
		for _, f := range folders {
			fmt.Println(output.FormatFolder(f, counts[f.ID]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderRenameCmd)
	folderCmd.AddCommand(folderRmCmd)
	folderCmd.AddCommand(folderListCmd)
}
