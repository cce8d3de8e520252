package sourceproc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"m3u-helper/config"
	"m3u-helper/logger"
	"m3u-helper/m3u"
	"m3u-helper/utils"
)

// Processor formats and merges the playlists of one working directory.
type Processor struct {
	cfg     *config.Config
	checker ReachabilityChecker
	log     logger.Logger
}

// NewProcessor creates a Processor. checker may be nil when connectivity
// checks are disabled in cfg.
func NewProcessor(cfg *config.Config, checker ReachabilityChecker, log logger.Logger) *Processor {
	if log == nil {
		log = logger.Default
	}
	return &Processor{
		cfg:     cfg,
		checker: checker,
		log:     log,
	}
}

// FormatAll formats every eligible playlist of the working directory that
// has no formatted counterpart yet. Unreadable sources are skipped and
// reported in the summary.
func (p *Processor) FormatAll(ctx context.Context) (*Summary, error) {
	return withLock(p, func() (*Summary, error) {
		names, err := p.listEligible()
		if err != nil {
			return nil, err
		}
		return p.formatEach(ctx, names)
	})
}

// FormatFiles formats the given playlists. Relative names are resolved in
// the working directory.
func (p *Processor) FormatFiles(ctx context.Context, names []string) (*Summary, error) {
	return withLock(p, func() (*Summary, error) {
		return p.formatEach(ctx, names)
	})
}

func (p *Processor) formatEach(ctx context.Context, names []string) (*Summary, error) {
	summary := &Summary{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := p.FormatOne(ctx, name)
		if err != nil {
			var srcErr *SourceError
			if errors.As(err, &srcErr) || errors.Is(err, ErrNotEligible) {
				p.log.Warnf("Skipping %s: %v", name, err)
				summary.Failed = append(summary.Failed, FileFailure{File: name, Error: err.Error()})
				continue
			}
			return summary, err
		}
		summary.Results = append(summary.Results, result)
	}
	return summary, nil
}

// FormatOne formats a single playlist into <base>_formated.<ext> next to it.
// It does nothing when that output already exists.
func (p *Processor) FormatOne(ctx context.Context, name string) (*Result, error) {
	source := p.resolve(name)
	if !IsEligible(source) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotEligible)
	}

	output := filepath.Join(filepath.Dir(source), FormattedName(source))
	result := &Result{Sources: []string{source}, Output: output}

	if _, err := os.Stat(output); err == nil {
		p.log.Debugf("Skipping %s, %s already exists", source, output)
		result.Skipped = true
		result.Reason = "output already exists"
		return result, nil
	}

	p.log.Logf("Formatting %s", source)
	records, err := m3u.ParseFile(source)
	if err != nil {
		return nil, &SourceError{File: source, Err: err}
	}
	result.Parsed = len(records)

	buckets := NewBuckets()
	buckets.AddAll(records)

	if err := p.finish(ctx, buckets, result); err != nil {
		return nil, err
	}
	return result, nil
}

// MergeAll parses every eligible playlist of the working directory in
// listing order and writes all channels into one merged playlist.
// Unreadable sources are skipped. Without any readable source nothing is
// written.
func (p *Processor) MergeAll(ctx context.Context) (*Result, error) {
	return withLock(p, func() (*Result, error) {
		return p.mergeAll(ctx)
	})
}

func (p *Processor) mergeAll(ctx context.Context) (*Result, error) {
	names, err := p.listEligible()
	if err != nil {
		return nil, err
	}

	result := &Result{Output: p.cfg.MergedPath()}
	buckets := NewBuckets()

	p.log.Logf("Reading playlists in %s", p.cfg.WorkDir)
	for _, name := range names {
		source := p.resolve(name)
		records, err := m3u.ParseFile(source)
		if err != nil {
			p.log.Warnf("Skipping %s: %v", source, err)
			result.Failed = append(result.Failed, FileFailure{File: source, Error: err.Error()})
			continue
		}
		p.log.Debugf("Read %d channels from %s", len(records), source)
		result.Sources = append(result.Sources, source)
		result.Parsed += len(records)
		buckets.AddAll(records)
	}

	if len(result.Sources) == 0 {
		p.log.Logf("No playlists to merge in %s", p.cfg.WorkDir)
		result.Skipped = true
		result.Reason = "no eligible playlists"
		return result, nil
	}

	p.log.Logf("Merging %d playlists", len(result.Sources))
	if err := p.finish(ctx, buckets, result); err != nil {
		return nil, err
	}
	return result, nil
}

// finish applies the optional connectivity filter and sort, then writes the
// buckets to result.Output.
func (p *Processor) finish(ctx context.Context, buckets *Buckets, result *Result) error {
	if p.cfg.CheckConnectivity {
		p.log.Log("Checking stream connectivity")
		filtered, err := filterReachable(ctx, p.checker, p.cfg.CheckTimeout, buckets)
		if err != nil {
			return err
		}
		result.Dropped = buckets.Len() - filtered.Len()
		buckets = filtered
	}

	if p.cfg.SortWithinCategory {
		p.log.Log("Sorting channels")
		buckets.Sort()
	}

	p.log.Logf("Writing %s", result.Output)
	if err := m3u.WriteFile(result.Output, buckets.Entries()); err != nil {
		return fmt.Errorf("error writing %s: %w", result.Output, err)
	}

	result.Written = buckets.Len()
	result.Counts = buckets.Counts()
	p.log.Logf("Wrote %d channels to %s", result.Written, result.Output)
	return nil
}

// listEligible returns the eligible playlists directly inside the working
// directory in listing order.
func (p *Processor) listEligible() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", p.cfg.WorkDir, err)
	}

	var names []string
	for _, entry := range entries {
		if !IsEligible(entry.Name()) {
			continue
		}
		if !p.isRegularFile(entry) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (p *Processor) isRegularFile(entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p.cfg.PathFor(entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

func (p *Processor) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return p.cfg.PathFor(name)
}

// withLock runs fn while holding the working directory lock.
func withLock[T any](p *Processor, fn func() (T, error)) (T, error) {
	lock := utils.NewFileLock(p.cfg.LockPath())
	if err := lock.TryLock(); err != nil {
		var zero T
		return zero, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			p.log.Warnf("%v", err)
		}
	}()

	return fn()
}
