package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quiclick/qc/internal/engine"
	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/store"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Short:   "Pull remote changes and push pending operations",
	GroupID: "sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		eng := newEngine(s)
		ctx := context.Background()

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			interval, _ := cmd.Flags().GetDuration("interval")
			return runWatch(ctx, eng, interval)
		}

		if err := eng.Sync(ctx); err != nil {
			output.Error("sync: %v", err)
			return err
		}
		printSyncStatus(s)
		return nil
	},
}

// runWatch runs the engine until interrupted, pulling on an interval.
// Queue drains happen on enqueue notifications and backoff wakes.
func runWatch(ctx context.Context, eng *engine.Engine, interval time.Duration) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eng.Start(ctx)
	defer eng.Stop()

	fmt.Printf("Watching (pull every %s, Ctrl-C to stop)\n", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped.")
			return nil
		case <-ticker.C:
			if err := eng.Sync(ctx); err != nil {
				output.Warning("sync: %v", err)
			}
		}
	}
}

// printSyncStatus prints a one-line summary after a sync.
func printSyncStatus(s store.Store) {
	auth, err := store.AuthState(s)
	if err != nil {
		return
	}
	pending, _ := engine.QueueLen(s)
	if !auth.Authenticated {
		output.Warning("Not authenticated (%d pending). Run 'qc login'.", pending)
		return
	}
	if pending > 0 {
		output.Warning("Synced, %d operations still pending", pending)
		return
	}
	output.Success("Synced")
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Bool("watch", false, "Keep running and sync periodically")
	syncCmd.Flags().Duration("interval", 5*time.Minute, "Pull interval for --watch")
}
