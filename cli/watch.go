package cli

import (
	"github.com/spf13/cobra"

	"m3u-helper/updater"
)

func newWatchCommand(opts *options) *cobra.Command {
	uopts := updater.Options{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Format (and optionally merge) playlists on a cron schedule",
		Long: `Run the format operation on a cron schedule until interrupted. Playlists
that were already formatted are skipped, so only new playlists are processed.
With --merge the merged playlist is rebuilt on every run.

The schedule defaults to $SYNC_CRON, or hourly when that is not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			processor, log, err := newProcessor(cmd, opts)
			if err != nil {
				return err
			}

			u, err := updater.New(processor, log, uopts)
			if err != nil {
				return err
			}
			return u.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&uopts.Schedule, "cron", "", "cron schedule (5 fields)")
	cmd.Flags().BoolVar(&uopts.Merge, "merge", false, "also rebuild all_in_one_formated.m3u on every run")
	cmd.Flags().BoolVar(&uopts.OnStart, "on-start", true, "run once immediately")

	return cmd
}
