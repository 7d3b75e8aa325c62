package cmd

import (
	"fmt"
	"strconv"

	"github.com/quiclick/qc/internal/output"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:     "move <id> <position>",
	Short:   "Move a bookmark to a new position",
	GroupID: "core",
	Args:    cobra.ExactArgs(2),
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
		pos, err := strconv.Atoi(args[1])
		if err != nil {
			output.Error("invalid position: %s", args[1])
			return err
		}

		eng := newEngine(s)
		if err := eng.MoveBookmark(id, pos); err != nil {
			output.Error("move bookmark: %v", err)
			return err
		}

		fmt.Printf("MOVED %d -> %d\n", id, pos)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
