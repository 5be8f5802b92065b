package debug

// Periodic runtime logger enabled with the debug flag. Logs goroutine count,
// heap and stack usage, process RSS and whatever pipeline counters the caller
// supplies, to correlate native memory growth with frame throughput.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"sync"
	"time"
)

// StatsFunc returns extra attributes appended to every runtime log line.
type StatsFunc func() []slog.Attr

// StartRuntimeLogger launches a goroutine logging runtime stats every
// interval. statsFn may be nil. The returned stop function is idempotent.
func StartRuntimeLogger(interval time.Duration, logger *slog.Logger, statsFn StatsFunc) (stop func()) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	done := make(chan struct{})
	var once sync.Once
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		var rssErrLogged bool
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-done:
				return
			case <-t.C:
			}
			attrs := sample(samples, logger, &rssErrLogged)
			if statsFn != nil {
				attrs = append(attrs, statsFn()...)
			}
			logger.LogAttrs(context.Background(), slog.LevelInfo, "runtime", attrs...)
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}

func sample(samples []metrics.Sample, logger *slog.Logger, rssErrLogged *bool) []slog.Attr {
	metrics.Read(samples)
	var goroutines uint64
	if samples[0].Value.Kind() == metrics.KindUint64 {
		goroutines = samples[0].Value.Uint64()
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	rss, err := processRSS()
	if err != nil && !*rssErrLogged {
		logger.Warn("runtime: rss query failed", slog.String("err", err.Error()))
		*rssErrLogged = true
	}
	return []slog.Attr{
		slog.Uint64("goroutines", goroutines),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("heap_idle", ms.HeapIdle),
		slog.Uint64("stack_inuse", ms.StackInuse),
		slog.Uint64("next_gc", ms.NextGC),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
		slog.Uint64("rss", rss),
	}
}
