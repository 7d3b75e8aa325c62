package cmd

import (
	"fmt"
	"time"

	"github.com/quiclick/qc/internal/engine"
	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/store"
	"github.com/quiclick/qc/internal/syncconfig"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show sync status",
	GroupID: "sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		if remoteCheck, _ := cmd.Flags().GetBool("remote"); remoteCheck {
			user, err := newClient().Me(cmd.Context())
			if err != nil {
				output.Error("server check: %v", err)
				return err
			}
			output.Success("Session valid for %s", user.Email)
		}

		auth, err := store.AuthState(s)
		if err != nil {
			output.Error("read auth state: %v", err)
			return err
		}
		state, err := store.SyncState(s)
		if err != nil {
			output.Error("read sync state: %v", err)
			return err
		}
		pending, err := engine.QueueLen(s)
		if err != nil {
			output.Error("read queue: %v", err)
			return err
		}
		bookmarks, _ := store.Bookmarks(s)
		folders, _ := store.Folders(s)

		fmt.Printf("Server:    %s\n", syncconfig.GetServerURL())
		if auth.Authenticated && auth.User != nil {
			fmt.Printf("Account:   %s\n", auth.User.Email)
		} else {
			fmt.Printf("Account:   not logged in\n")
		}
		fmt.Printf("Bookmarks: %d (%d folders)\n", len(bookmarks), len(folders))
		fmt.Printf("Pending:   %d\n", pending)
		if state.LastPullCursor != "" {
			fmt.Printf("Cursor:    %s\n", state.LastPullCursor)
		}
		if state.Backoff.RetryCount > 0 && state.Backoff.NextRetryAt != nil {
			fmt.Printf("Backoff:   retry %d, next attempt %s\n",
				state.Backoff.RetryCount,
				state.Backoff.NextRetryAt.Local().Format(time.RFC1123))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().Bool("remote", false, "Also verify the session against the server")
}
