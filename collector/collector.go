// Package collector fetches raw login/logout events from the configured
// fleet over WinRM. Collection from each server is independent: a server
// that cannot be reached or returns garbage is logged and contributes zero
// events, and collection fails only when every server does.
package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rdpstats/rdp-session-stats/config"
	"github.com/rdpstats/rdp-session-stats/types"
)

// Transport executes a PowerShell script on one remote server and returns
// its stdout.
type Transport interface {
	RunPS(ctx context.Context, script string) (string, error)
}

// TransportFactory opens a transport for one server.
type TransportFactory func(server string) (Transport, error)

// CollectionStats tracks collector activity across report requests.
type CollectionStats struct {
	LastCollection time.Time `json:"last_collection"`
	TotalRuns      int64     `json:"total_runs"`
	TotalEvents    int64     `json:"total_events"`
	FailedFetches  int64     `json:"failed_fetches"`
	StartTime      time.Time `json:"start_time"`
}

type Collector struct {
	servers   []string
	transport TransportFactory
	log       *zap.Logger

	mu    sync.Mutex
	stats CollectionStats
}

// New builds a collector over the WinRM transport described by cfg.
func New(cfg *config.Config, log *zap.Logger) *Collector {
	return NewWithTransport(cfg.Servers, winrmFactory(cfg), log)
}

// NewWithTransport builds a collector over a caller-supplied transport
// factory.
func NewWithTransport(servers []string, factory TransportFactory, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		servers:   servers,
		transport: factory,
		log:       log,
		stats:     CollectionStats{StartTime: time.Now()},
	}
}

// Collect fetches login/logout events for the inclusive [start, end] date
// window from every configured server.
func (c *Collector) Collect(ctx context.Context, start, end time.Time) ([]types.RawEvent, error) {
	events, failed := c.runAll(ctx, sessionEventsScript(start, end))

	c.mu.Lock()
	c.stats.LastCollection = time.Now()
	c.stats.TotalRuns++
	c.stats.TotalEvents += int64(len(events))
	c.stats.FailedFetches += int64(failed)
	c.mu.Unlock()

	if len(c.servers) > 0 && failed == len(c.servers) {
		return nil, fmt.Errorf("all %d servers failed to deliver events", len(c.servers))
	}

	c.log.Info("collection complete",
		zap.Int("events", len(events)),
		zap.Int("servers", len(c.servers)),
		zap.Int("failed", failed))
	return events, nil
}

// Stats returns a snapshot of the collector's activity counters.
func (c *Collector) Stats() CollectionStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// ServerLogRange describes the span of events present in one server's
// TerminalServices log.
type ServerLogRange struct {
	Server      string `json:"server"`
	FirstEvent  string `json:"first_event,omitempty"`
	LastEvent   string `json:"last_event,omitempty"`
	TotalEvents int    `json:"total_events"`
	Error       string `json:"error,omitempty"`
}

// AvailableDates scans every server's full event log and reports the date
// range each one can serve. Unreachable servers carry an error marker
// instead of a range.
func (c *Collector) AvailableDates(ctx context.Context) []ServerLogRange {
	script := allEventsScript()
	results := make([]ServerLogRange, len(c.servers))

	var wg sync.WaitGroup
	for i, server := range c.servers {
		wg.Add(1)
		go func(i int, server string) {
			defer wg.Done()
			r := ServerLogRange{Server: server}
			events, err := c.fetchServer(ctx, server, script)
			if err != nil {
				c.log.Error("available-dates scan failed", zap.String("server", server), zap.Error(err))
				r.Error = err.Error()
				results[i] = r
				return
			}
			r.TotalEvents = len(events)
			if len(events) > 0 {
				first, last := events[0].Timestamp, events[0].Timestamp
				for _, ev := range events[1:] {
					if ev.Timestamp.Before(first) {
						first = ev.Timestamp
					}
					if ev.Timestamp.After(last) {
						last = ev.Timestamp
					}
				}
				r.FirstEvent = first.Format("2006-01-02 15:04:05")
				r.LastEvent = last.Format("2006-01-02 15:04:05")
			}
			results[i] = r
		}(i, server)
	}
	wg.Wait()
	return results
}

// runAll fans out one fetch goroutine per server and merges the results.
func (c *Collector) runAll(ctx context.Context, script string) ([]types.RawEvent, int) {
	var (
		mu     sync.Mutex
		events []types.RawEvent
		failed int
	)
	var wg sync.WaitGroup
	for _, server := range c.servers {
		wg.Add(1)
		go func(server string) {
			defer wg.Done()
			fetched, err := c.fetchServer(ctx, server, script)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.log.Error("server fetch failed", zap.String("server", server), zap.Error(err))
				failed++
				return
			}
			events = append(events, fetched...)
		}(server)
	}
	wg.Wait()
	return events, failed
}

func (c *Collector) fetchServer(ctx context.Context, server, script string) ([]types.RawEvent, error) {
	transport, err := c.transport(server)
	if err != nil {
		return nil, fmt.Errorf("opening transport: %w", err)
	}
	out, err := transport.RunPS(ctx, script)
	if err != nil {
		return nil, err
	}
	events, err := parseEvents(out, server)
	if err != nil {
		return nil, fmt.Errorf("parsing remote output: %w", err)
	}
	c.log.Info("events received", zap.String("server", server), zap.Int("count", len(events)))
	return events, nil
}
