package updater

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"m3u-helper/logger"
	"m3u-helper/sourceproc"
)

const defaultSchedule = "0 * * * *"

// Processor is the part of sourceproc.Processor the updater drives.
type Processor interface {
	FormatAll(ctx context.Context) (*sourceproc.Summary, error)
	MergeAll(ctx context.Context) (*sourceproc.Result, error)
}

type Options struct {
	// Schedule is a 5-field cron spec. Empty falls back to SYNC_CRON, then
	// to hourly.
	Schedule string
	// Merge rebuilds the merged playlist after every format pass.
	Merge bool
	// OnStart runs one pass as soon as the updater starts.
	OnStart bool
}

// Updater formats (and optionally merges) playlists on a cron schedule.
// Passes triggered while another one is running are skipped.
type Updater struct {
	sync.Mutex
	processor Processor
	log       logger.Logger
	merge     bool
	onStart   bool
	schedule  string
	Cron      *cron.Cron
	initial   sync.WaitGroup
}

func New(processor Processor, log logger.Logger, opts Options) (*Updater, error) {
	if log == nil {
		log = logger.Default
	}

	schedule := strings.TrimSpace(opts.Schedule)
	if schedule == "" {
		schedule = strings.TrimSpace(os.Getenv("SYNC_CRON"))
	}
	if schedule == "" {
		log.Logf("SYNC_CRON not initialized. Defaulting to %s (hourly).", defaultSchedule)
		schedule = defaultSchedule
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	return &Updater{
		processor: processor,
		log:       log,
		merge:     opts.Merge,
		onStart:   opts.OnStart,
		schedule:  schedule,
		Cron:      cron.New(),
	}, nil
}

func (u *Updater) Schedule() string {
	return u.schedule
}

// Run blocks until ctx is done, then waits for a pass in progress to finish.
func (u *Updater) Run(ctx context.Context) error {
	if _, err := u.Cron.AddFunc(u.schedule, func() { u.Update(ctx) }); err != nil {
		return fmt.Errorf("error scheduling updates: %w", err)
	}
	u.Cron.Start()
	u.log.Logf("Watching with schedule %q", u.schedule)

	if u.onStart {
		u.initial.Add(1)
		go func() {
			defer u.initial.Done()
			u.Update(ctx)
		}()
	}

	<-ctx.Done()
	u.log.Log("Stopping watcher")
	<-u.Cron.Stop().Done()
	u.initial.Wait()
	return nil
}

// Update runs one format pass, followed by a merge when enabled.
func (u *Updater) Update(ctx context.Context) {
	// Ensure only one pass is running at a time
	if !u.TryLock() {
		u.log.Warn("Previous update still in progress, skipping")
		return
	}
	defer u.Unlock()

	select {
	case <-ctx.Done():
		return
	default:
	}

	summary, err := u.processor.FormatAll(ctx)
	if err != nil {
		u.log.Errorf("Background process: format failed: %v", err)
	} else {
		u.log.Logf("Background process: formatted %d playlists", summary.Formatted())
	}

	if !u.merge {
		return
	}

	result, err := u.processor.MergeAll(ctx)
	if err != nil {
		u.log.Errorf("Background process: merge failed: %v", err)
		return
	}
	if !result.Skipped {
		u.log.Logf("Background process: merged %d channels into %s", result.Written, result.Output)
	}
}
