package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/remote"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:     "import <file>",
	Short:   "Import bookmarks from a JSON export",
	Long:    `Import bookmarks from a JSON export file. The server merges the data and a pull brings back the authoritative result.`,
	GroupID: "sync",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			output.Error("read file: %v", err)
			return err
		}
		var data remote.ExportData
		if err := json.Unmarshal(raw, &data); err != nil {
			output.Error("parse export: %v", err)
			return err
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			var confirmed bool
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Import %d bookmarks and %d folders?", len(data.Bookmarks), len(data.Folders))).
					Description("The server merges imported data into your account.").
					Value(&confirmed),
			))
			if err := form.Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		eng := newEngine(s)
		ctx := context.Background()
		client := newClient()
		if err := client.Import(ctx, data); err != nil {
			output.Error("import: %v", err)
			return err
		}
		if err := eng.Pull(ctx, true); err != nil {
			output.Warning("post-import pull failed: %v", err)
		}

		output.Success("Imported %d bookmarks, %d folders", len(data.Bookmarks), len(data.Folders))
		return nil
	},
}

// writeJSON writes indented JSON to w.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}
