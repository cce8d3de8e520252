package cli

import (
	"github.com/spf13/cobra"
)

func newMergeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merge all playlists into all_in_one_formated.m3u",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			processor, _, err := newProcessor(cmd, opts)
			if err != nil {
				return err
			}

			result, err := processor.MergeAll(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, opts.jsonOutput)
		},
	}
}
