package main

import (
	"fmt"
	"os"

	"github.com/apraga/scidataflow/internal/config"
	"github.com/apraga/scidataflow/internal/manifest"
	"github.com/apraga/scidataflow/internal/remote"
	"github.com/apraga/scidataflow/internal/scan"
	"github.com/apraga/scidataflow/internal/status"
	"github.com/apraga/scidataflow/internal/workspace"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatusCmd())
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [pattern]",
		Short: "Show the state of the project's data files",
		Long: "Walk the project tree, fingerprint every data file and report each one\n" +
			"against the manifest, grouped by directory. An optional doublestar\n" +
			"pattern restricts the report to matching paths.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			pattern := ""
			if len(args) > 0 {
				pattern = args[0]
			}

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

			workers := cliConfig.Workers
			if cmd.Flags().Changed("workers") {
				workers, _ = cmd.Flags().GetInt("workers")
			}

			scanner := scan.NewScanner(ws, mf, nil, nil)
			res, err := scanner.Scan(cmd.Context(), scan.Options{
				Workers: workers,
				Pattern: pattern,
				Listing: listing,
			})
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSONReport(cmd.OutOrStdout(), ws, mf, res)
			}

			spacing := cliConfig.Spacing
			if cmd.Flags().Changed("spacing") {
				spacing, _ = cmd.Flags().GetInt("spacing")
				if spacing < 1 || spacing > 64 {
					return fmt.Errorf("spacing must be between 1 and 64, got %d", spacing)
				}
			}

			status.PrintStatus(cmd.OutOrStdout(), res.Entries, mf.Remotes, status.RenderOptions{
				Spacing: spacing,
				Styled:  styledOutput(cmd),
			})

			for _, p := range res.Problems {
				fmt.Fprintln(cmd.ErrOrStderr(), yellow.Render(fmt.Sprintf("could not read file %s: %v", p.Path, p.Err)))
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringP("dir", "d", ".", "directory to discover the project from")
	cmd.Flags().StringP("remote-listing", "r", "", "YAML snapshot of remote contents (path: md5)")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers, "concurrent fingerprint workers")
	cmd.Flags().Int("spacing", config.DefaultSpacing, "blanks between report columns")
	cmd.Flags().Bool("json", false, "print a machine-readable report")
	return cmd
}

// styledOutput decides whether the report carries color. Anything that is
// not a terminal, a --no-color flag or a NO_COLOR-style config all force
// plain output.
func styledOutput(cmd *cobra.Command) bool {
	if cliConfig.NoColor {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
