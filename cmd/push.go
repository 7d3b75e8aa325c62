package cmd

import (
	"github.com/quiclick/qc/internal/engine"
	"github.com/quiclick/qc/internal/output"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:     "push",
	Short:   "Push pending operations to the server",
	GroupID: "sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		eng := newEngine(s)
		if full, _ := cmd.Flags().GetBool("full"); full {
			if err := eng.PushAll(); err != nil {
				output.Error("push: %v", err)
				return err
			}
		}
		eng.ProcessQueue()

		pending, err := engine.QueueLen(s)
		if err != nil {
			output.Error("read queue: %v", err)
			return err
		}
		if pending > 0 {
			output.Warning("%d operations still pending", pending)
			return nil
		}
		output.Success("Pushed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)

	pushCmd.Flags().Bool("full", false, "Push the entire local store, not just pending operations")
}
