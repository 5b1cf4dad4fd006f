package main

import (
	"fmt"

	"github.com/apraga/scidataflow/internal/fingerprint"
	"github.com/apraga/scidataflow/internal/utils"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDigestCmd())
}

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest file [file...]",
		Short: "Print the MD5 fingerprint of data files",
		Long: "Print one line per file in md5sum format. Missing and empty files\n" +
			"have no fingerprint and print a dash.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			for _, arg := range args {
				path, err := utils.ResolvePath(arg)
				if err != nil {
					return err
				}
				digest, ok, err := fingerprint.File(path)
				if err != nil {
					return fmt.Errorf("digest %s: %w", arg, err)
				}
				if !ok {
					digest = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", digest, arg)
			}
			return nil
		},
	}
}
