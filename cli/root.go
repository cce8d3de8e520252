package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"m3u-helper/checker"
	"m3u-helper/config"
	"m3u-helper/logger"
	"m3u-helper/sourceproc"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type options struct {
	configPath   string
	dir          string
	check        bool
	sort         bool
	quiet        bool
	checkTimeout time.Duration
	checkWorkers int
	jsonOutput   bool
}

// NewRootCommand creates the m3u-helper command tree. Running it without a
// subcommand formats every playlist of the working directory.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "m3u-helper",
		Short: "Organize IPTV playlists into channel categories",
		Long: `m3u-helper reads the .m3u and .m3u8 playlists of a directory, sorts every
channel into one of six groups (央视频道, 卫视频道, 省级频道, 港澳台频道,
市级频道, 其它频道) and writes a reformatted playlist.

"format" writes <name>_formated.<ext> next to each playlist that has not been
formatted yet. "merge" combines all playlists into all_in_one_formated.m3u.
Stream reachability can be checked before writing with --check.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, opts, nil)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVarP(&opts.dir, "dir", "d", "", "directory to scan (default: current directory)")
	flags.BoolVar(&opts.check, "check", false, "drop channels whose stream is unreachable")
	flags.BoolVar(&opts.sort, "sort", false, "sort channels by name within each group")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only log warnings and errors")
	flags.DurationVar(&opts.checkTimeout, "check-timeout", 0, "overall time limit for the connectivity check")
	flags.IntVar(&opts.checkWorkers, "check-workers", 0, "number of concurrent connectivity probes")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")

	cmd.AddCommand(newFormatCommand(opts))
	cmd.AddCommand(newMergeCommand(opts))
	cmd.AddCommand(newWatchCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// loadConfig builds the effective configuration: defaults, config file,
// environment, then explicitly set flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.WorkDir = opts.dir
	}
	if flags.Changed("check") {
		cfg.CheckConnectivity = opts.check
	}
	if flags.Changed("sort") {
		cfg.SortWithinCategory = opts.sort
	}
	if flags.Changed("quiet") {
		cfg.VerboseConsoleOutput = !opts.quiet
	}
	if flags.Changed("check-timeout") {
		cfg.CheckTimeout = opts.checkTimeout
	}
	if flags.Changed("check-workers") {
		cfg.CheckWorkers = opts.checkWorkers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newProcessor(cmd *cobra.Command, opts *options) (*sourceproc.Processor, logger.Logger, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(cmd.ErrOrStderr(), cfg.VerboseConsoleOutput)

	var reach sourceproc.ReachabilityChecker
	if cfg.CheckConnectivity {
		reach = checker.New(checker.Options{
			Workers:        cfg.CheckWorkers,
			RequestTimeout: cfg.RequestTimeout,
			UserAgent:      cfg.UserAgent,
			CacheTTL:       cfg.CacheTTL,
			Logger:         log,
		})
	}

	return sourceproc.NewProcessor(cfg, reach, log), log, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
