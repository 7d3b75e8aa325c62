package cmd

import (
	"fmt"

	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/store"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Short:   "Show or change display settings",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		settings, err := store.Settings(s)
		if err != nil {
			output.Error("load settings: %v", err)
			return err
		}

		changed := false
		if cmd.Flags().Changed("show-titles") {
			settings.ShowTitles, _ = cmd.Flags().GetBool("show-titles")
			changed = true
		}
		if cmd.Flags().Changed("tiles-per-row") {
			settings.TilesPerRow, _ = cmd.Flags().GetInt("tiles-per-row")
			changed = true
		}
		if cmd.Flags().Changed("tile-gap") {
			settings.TileGap, _ = cmd.Flags().GetInt("tile-gap")
			changed = true
		}
		if cmd.Flags().Changed("show-add-button") {
			settings.ShowAddButton, _ = cmd.Flags().GetBool("show-add-button")
			changed = true
		}

		if changed {
			eng := newEngine(s)
			if err := eng.SaveSettings(settings); err != nil {
				output.Error("save settings: %v", err)
				return err
			}
			output.Success("Settings updated")
			return nil
		}

		fmt.Printf("show-titles:      %v\n", settings.ShowTitles)
		fmt.Printf("tiles-per-row:    %d\n", settings.TilesPerRow)
		fmt.Printf("tile-gap:         %d\n", settings.TileGap)
		fmt.Printf("show-add-button:  %v\n", settings.ShowAddButton)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().Bool("show-titles", true, "Show bookmark titles")
	settingsCmd.Flags().Int("tiles-per-row", 8, "Tiles per row")
	settingsCmd.Flags().Int("tile-gap", 1, "Gap between tiles")
	settingsCmd.Flags().Bool("show-add-button", true, "Show the add button")
}
