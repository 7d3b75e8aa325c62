package cmd

import (
	"fmt"

	"github.com/quiclick/qc/internal/output"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a bookmark",
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

		eng := newEngine(s)
		if err := eng.RemoveBookmark(id); err != nil {
			output.Error("delete bookmark: %v", err)
			return err
		}

		fmt.Printf("DELETED %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
