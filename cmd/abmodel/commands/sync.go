// ABOUTME: Sync commands for the Charm-backed run ledger
// ABOUTME: Shows connection status and forces an immediate sync
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/abmodel/internal/charm"
	"github.com/harper/abmodel/internal/config"
	"github.com/harper/abmodel/internal/storage"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud synchronization of run history",
		Long: `Manage Charm cloud synchronization of run history.

Only applies when LEDGER=charm. Runs then sync across every machine
linked to the same Charm account via SSH keys.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncNowCmd())

	return cmd
}

// openCharm connects to the charm ledger named in the environment
func openCharm() (*charm.Client, error) {
	loadEnv()
	cfg := config.FromEnv()
	if cfg.Ledger != storage.BackendCharm {
		return nil, fmt.Errorf("sync requires LEDGER=charm (current: %s)", cfg.Ledger)
	}
	client, err := charm.NewClient(charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.CharmAutoSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Charm: %w", err)
	}
	return client, nil
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			out := cmd.OutOrStdout()
			id, err := client.ID()
			if err != nil {
				fmt.Fprintln(out, "Status: Not connected")
				fmt.Fprintf(out, "Host: %s\n", client.Host())
				return nil
			}

			fmt.Fprintln(out, "Status: Connected")
			fmt.Fprintf(out, "User ID: %s\n", id)
			fmt.Fprintf(out, "Host: %s\n", client.Host())
			fmt.Fprintf(out, "Auto sync: %t\n", client.AutoSync())
			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Syncing...")
			}
			if err := client.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			}
			return nil
		},
	}
}
