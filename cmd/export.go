package cmd

import (
	"os"

	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/remote"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export [file]",
	Short:   "Export the local store as JSON",
	GroupID: "sync",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		var data *remote.ExportData
		if fromServer, _ := cmd.Flags().GetBool("remote"); fromServer {
			data, err = newClient().Export(cmd.Context())
		} else {
			data, err = newEngine(s).BuildExport()
		}
		if err != nil {
			output.Error("export: %v", err)
			return err
		}

		if len(args) == 0 {
			return output.JSON(data)
		}

		f, err := os.Create(args[0])
		if err != nil {
			output.Error("create file: %v", err)
			return err
		}
		defer f.Close()
		if err := writeJSON(f, data); err != nil {
			output.Error("write export: %v", err)
			return err
		}
		output.Success("Exported %d bookmarks, %d folders to %s", len(data.Bookmarks), len(data.Folders), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().Bool("remote", false, "Export the server's data instead of the local store")
}
