package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"skillswap/internal/client"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "skillsync",
	Short: "Offline-tolerant client for the skill exchange server",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("SKILLSWAP_SERVER", "http://localhost:3000"), "server base URL")

	requestCmd.Flags().Int64("to", 0, "target profile id")
	requestCmd.Flags().Int64("offer", 0, "skill id offered")
	requestCmd.Flags().Int64("want", 0, "skill id requested")
	requestCmd.MarkFlagRequired("to")
	requestCmd.MarkFlagRequired("offer")
	requestCmd.MarkFlagRequired("want")

	pendingCmd.Flags().Bool("clear", false, "discard every queued entry")

	syncCmd.Flags().Duration("watch", 0, "keep running and drain on every reconnect, polling at this interval")

	rootCmd.AddCommand(loginCmd, requestCmd, pendingCmd, syncCmd)
}

// stateDir holds the queue database and the saved session.
func stateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	dir := filepath.Join(base, "skillsync")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating state dir: %w", err)
	}
	return dir, nil
}

func newAPIClient() (*client.APIClient, error) {
	api, err := client.NewAPIClient(serverURL)
	if err != nil {
		return nil, err
	}

	dir, err := stateDir()
	if err != nil {
		return nil, err
	}
	if raw, err := os.ReadFile(filepath.Join(dir, "session")); err == nil {
		if err := api.SetSessionCookie(string(raw)); err != nil {
			return nil, err
		}
	}
	return api, nil
}

func openQueue() (*client.PendingQueue, error) {
	dir, err := stateDir()
	if err != nil {
		return nil, err
	}
	return client.OpenQueue(filepath.Join(dir, "pending.db"))
}

func newCoordinator() (*client.Coordinator, *client.PendingQueue, error) {
	api, err := newAPIClient()
	if err != nil {
		return nil, nil, err
	}
	queue, err := openQueue()
	if err != nil {
		return nil, nil, err
	}
	coord := client.NewCoordinator(api, queue, api.Online, terminalNotifier{})
	return coord, queue, nil
}

// terminalNotifier prints the transient synced notice. Clear is a no-op on a
// terminal; the message has already scrolled.
type terminalNotifier struct{}

func (terminalNotifier) Show(message string) { fmt.Println(message) }
func (terminalNotifier) Clear()              {}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Authenticate and store the session locally",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := client.NewAPIClient(serverURL)
		if err != nil {
			return err
		}

		token, err := api.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		dir, err := stateDir()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, "session"), []byte(token), 0o600); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Println("Login successful")
		return nil
	},
}

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Submit an exchange request, queueing it locally when offline",
	RunE: func(cmd *cobra.Command, args []string) error {
		coord, queue, err := newCoordinator()
		if err != nil {
			return err
		}
		defer queue.Close()

		to, _ := cmd.Flags().GetInt64("to")
		offer, _ := cmd.Flags().GetInt64("offer")
		want, _ := cmd.Flags().GetInt64("want")

		entry := client.PendingEntry{ToProfileID: to, SkillID1: offer, SkillID2: want}
		result, err := coord.Submit(cmd.Context(), entry)
		if err != nil {
			return err
		}

		switch result {
		case client.SubmitSent:
			fmt.Println("Exchange request sent!")
		case client.SubmitSavedOffline:
			fmt.Println("Saved offline")
		}
		return nil
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List (or clear) the locally queued exchange requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		queue, err := openQueue()
		if err != nil {
			return err
		}
		defer queue.Close()

		if clear, _ := cmd.Flags().GetBool("clear"); clear {
			if err := queue.Clear(); err != nil {
				return err
			}
			fmt.Println("Pending queue cleared")
			return nil
		}

		entries, err := queue.DrainAll()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No pending entries")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%d: to_profile_id=%d skill_id_1=%d skill_id_2=%d\n", e.Key, e.ToProfileID, e.SkillID1, e.SkillID2)
		}
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay the pending queue against the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		coord, queue, err := newCoordinator()
		if err != nil {
			return err
		}
		defer queue.Close()

		if interval, _ := cmd.Flags().GetDuration("watch"); interval > 0 {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			coord.Watch(ctx, interval)
			return nil
		}

		report, err := coord.Drain(cmd.Context())
		if err != nil {
			return err
		}
		for _, outcome := range report.Outcomes {
			if !outcome.Ok() {
				fmt.Printf("entry %d still queued: %v\n", outcome.Entry.Key, outcome.Err)
			}
		}
		fmt.Printf("Synced %d of %d pending entries\n", report.Synced, len(report.Outcomes))
		return nil
	},
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
