package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/quiclick/qc/internal/output"
	"github.com/quiclick/qc/internal/remote"
	"github.com/quiclick/qc/internal/syncconfig"
	"github.com/spf13/cobra"
)

const (
	loginPollAttempts = 60
	loginPollInterval = time.Second
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in to the bookmark server",
	GroupID: "sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		serverURL := syncconfig.GetServerURL()
		client := remote.New(serverURL, "")

		fmt.Printf("Open %s in your browser and complete the login.\n", client.LoginURL())
		fmt.Print("Paste the session cookie value: ")
		reader := bufio.NewReader(os.Stdin)
		session, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read session: %w", err)
		}
		session = strings.TrimSpace(session)
		if session == "" {
			return fmt.Errorf("session required")
		}

		if err := syncconfig.SaveAuth(&syncconfig.AuthCredentials{
			Session:   session,
			ServerURL: serverURL,
		}); err != nil {
			output.Error("save credentials: %v", err)
			return err
		}

		// Poll until the server accepts the session; the first successful
		// pull also lands the remote dataset and drains any pending queue.
		eng := newEngine(s)
		user, err := eng.WaitForLogin(context.Background(), loginPollAttempts, loginPollInterval)
		if err != nil {
			output.Error("login: %v", err)
			return err
		}

		creds, _ := syncconfig.LoadAuth()
		if creds != nil && user != nil {
			creds.Email = user.Email
			syncconfig.SaveAuth(creds)
		}

		if user != nil {
			output.Success("Logged in as %s", user.Email)
		} else {
			output.Success("Logged in")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Log out from the bookmark server",
	GroupID: "sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		eng := newEngine(s)
		if err := eng.Logout(context.Background()); err != nil {
			output.Error("logout: %v", err)
			return err
		}
		if err := syncconfig.ClearAuth(); err != nil {
			output.Error("clear credentials: %v", err)
			return err
		}

		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
