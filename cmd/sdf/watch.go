package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/apraga/scidataflow/internal/manifest"
	"github.com/apraga/scidataflow/internal/remote"
	"github.com/apraga/scidataflow/internal/utils"
	"github.com/apraga/scidataflow/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newWatchCmd())
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the project and refresh the data status on changes",
		Long: "Keep a live status report on screen, rescanning whenever files in the\n" +
			"project change. Only one watcher may hold a project at a time.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			dir, _ := cmd.Flags().GetString("dir")
			ws, err := workspace.Find(dir)
			if err != nil {
				return err
			}

			mf, err := manifest.Load(ws.ManifestPath)
			if err != nil {
				return err
			}

			var listing remote.Listing
			if listingPath, _ := cmd.Flags().GetString("remote-listing"); listingPath != "" {
				if listing, err = remote.LoadListing(listingPath); err != nil {
					return err
				}
			}

			if err := ws.Lock(); err != nil {
				return err
			}
			defer ws.Unlock()

			// the TUI owns the terminal, so logs go to a file
			if err := setupWatchLogger(ws); err != nil {
				return err
			}

			return runWatchTUI(cmd.Context(), ws, mf, listing, cliConfig)
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringP("dir", "d", ".", "directory to discover the project from")
	cmd.Flags().StringP("remote-listing", "r", "", "YAML snapshot of remote contents (path: md5)")
	return cmd
}

func setupWatchLogger(ws *workspace.Workspace) error {
	if err := utils.EnsureDir(ws.LogsDir); err != nil {
		return err
	}
	file, err := os.OpenFile(filepath.Join(ws.LogsDir, "watch.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	return nil
}
