package cli

import (
	"github.com/spf13/cobra"
)

func newFormatCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "format [playlist...]",
		Short: "Format playlists into <name>_formated.<ext>",
		Long: `Format the given playlists, or every playlist of the directory when none
are given. Playlists that already have a formatted counterpart are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, opts, args)
		},
	}
}

func runFormat(cmd *cobra.Command, opts *options, files []string) error {
	processor, _, err := newProcessor(cmd, opts)
	if err != nil {
		return err
	}

	summary, err := formatWith(cmd, processor, files)
	if err != nil {
		return err
	}
	return printSummary(cmd.OutOrStdout(), summary, opts.jsonOutput)
}
