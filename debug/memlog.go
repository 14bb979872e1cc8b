package debug

// Memory periodic logger enabled when config.Debug is true.
// Logs process RSS along with Go heap stats to correlate decoded image
// buffers with native (Tk photo) growth.

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
)

func startMemLogger(interval time.Duration, logger *slog.Logger, stop <-chan struct{}, rssFn func() (uint64, error)) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
			logMemStats(logger, rssFn, &rssErrLogged)
		}
	}()
}

func logMemStats(logger *slog.Logger, rssFn func() (uint64, error), rssErrLogged *bool) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	rss, err := rssFn()
	if err != nil && !*rssErrLogged {
		logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
		*rssErrLogged = true
	}
	logger.Info("memstats",
		slog.Int("goroutines", runtime.NumGoroutine()),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.String("heap_alloc_h", humanize.Bytes(ms.HeapAlloc)),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("heap_sys", ms.HeapSys),
		slog.Uint64("next_gc", ms.NextGC),
		slog.Uint64("rss", rss),
		slog.String("rss_h", humanize.Bytes(rss)),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	)
}
