package cmd

import (
	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize a local bookmark store in the current directory",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Initialize(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		output.Success("Initialized bookmark store in %s", s.BaseDir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
