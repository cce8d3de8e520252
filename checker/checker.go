package checker

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"m3u-helper/logger"
	"m3u-helper/utils"
	"m3u-helper/utils/safemap"
)

type Options struct {
	// Workers bounds the number of concurrent probes.
	Workers int
	// RequestTimeout bounds a single probe.
	RequestTimeout time.Duration
	UserAgent      string
	// CacheTTL keeps results in memory for repeated checks within one
	// process. Zero disables caching.
	CacheTTL time.Duration
	Client   *http.Client
	Logger   logger.Logger
}

// Checker probes stream URIs. HTTP(S) streams are requested with GET and
// count as reachable below status 400; RTSP, RTMP and MMS streams count as
// reachable when a TCP connection can be opened. Any other scheme is
// reported unreachable.
type Checker struct {
	opts   Options
	client *http.Client
	dialer *net.Dialer
	cache  *cache.Cache
	log    logger.Logger
}

func New(opts Options) *Checker {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU() * 2
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}

	c := &Checker{
		opts:   opts,
		client: client,
		dialer: &net.Dialer{},
		log:    opts.Logger,
	}
	if opts.CacheTTL > 0 {
		c.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return c
}

// Check probes every URI and returns a reachability result for each one.
// It returns either the complete mapping or an error; when ctx ends before
// all URIs were probed no partial result is returned.
func (c *Checker) Check(ctx context.Context, uris []string) (map[string]bool, error) {
	unique := dedupe(uris)
	results := safemap.New[string, bool]()
	if len(unique) == 0 {
		return results.Snapshot(), nil
	}

	c.log.Logf("Checking %d streams with %d workers", len(unique), min(c.opts.Workers, len(unique)))

	jobs := make(chan string)
	var processed atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < min(c.opts.Workers, len(unique)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for uri := range jobs {
				reachable := c.probeCached(ctx, uri)
				results.Set(uri, reachable)

				count := processed.Add(1)
				if count%progressBatch(count) == 0 {
					c.log.Logf("Checked %d/%d streams", count, len(unique))
				}
			}
		}()
	}

feed:
	for _, uri := range unique {
		select {
		case jobs <- uri:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("connectivity check stopped after %d of %d streams: %w", processed.Load(), len(unique), err)
	}

	out := results.Snapshot()
	reachable := 0
	for _, ok := range out {
		if ok {
			reachable++
		}
	}
	c.log.Logf("Connectivity check finished: %d of %d streams reachable", reachable, len(out))

	return out, nil
}

func (c *Checker) probeCached(ctx context.Context, uri string) bool {
	if c.cache != nil {
		if cached, found := c.cache.Get(uri); found {
			return cached.(bool)
		}
	}

	reachable := c.probe(ctx, uri)

	// A probe cut short by cancellation says nothing about the stream.
	if c.cache != nil && ctx.Err() == nil {
		c.cache.Set(uri, reachable, cache.DefaultExpiration)
	}
	return reachable
}

func (c *Checker) probe(ctx context.Context, uri string) bool {
	scheme, err := utils.GetStreamScheme(uri)
	if err != nil {
		c.log.Debugf("Unparsable stream URI %s: %v", uri, err)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	switch scheme {
	case "http", "https":
		return c.probeHTTP(ctx, uri)
	case "rtsp", "rtmp", "rtmps", "mms", "mmsh":
		return c.probeTCP(ctx, uri)
	default:
		c.log.Debugf("Cannot check %s streams, treating %s as unreachable", scheme, uri)
		return false
	}
}

func (c *Checker) probeHTTP(ctx context.Context, uri string) bool {
	resp, err := utils.CustomHttpRequest(ctx, c.client, http.MethodGet, uri, c.opts.UserAgent, "")
	if err != nil {
		c.log.Debugf("Stream %s unreachable: %v", uri, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Debugf("Stream %s returned status %d", uri, resp.StatusCode)
		return false
	}
	return true
}

func (c *Checker) probeTCP(ctx context.Context, uri string) bool {
	hostPort, err := utils.GetStreamHostPort(uri)
	if err != nil {
		c.log.Debugf("Stream %s has no address: %v", uri, err)
		return false
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", hostPort)
	if err != nil {
		c.log.Debugf("Stream %s unreachable: %v", uri, err)
		return false
	}
	_ = conn.Close()
	return true
}

func dedupe(uris []string) []string {
	seen := make(map[string]struct{}, len(uris))
	out := make([]string, 0, len(uris))
	for _, uri := range uris {
		if _, ok := seen[uri]; ok {
			continue
		}
		seen[uri] = struct{}{}
		out = append(out, uri)
	}
	return out
}

func progressBatch(count int64) int64 {
	batch := int64(math.Pow(10, math.Floor(math.Log10(float64(count)))))
	if batch < 100 {
		batch = 100
	}
	return batch
}
