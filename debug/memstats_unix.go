//go:build unix

package debug

import (
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// residentBytes returns the peak resident set size reported by getrusage.
// Linux reports kilobytes, darwin and the BSDs bytes.
func residentBytes() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := uint64(ru.Maxrss)
	if runtime.GOOS == "linux" {
		rss *= 1024
	}
	return rss, nil
}

// StartMemLogger logs peak RSS and Go heap stats every interval until stop
// is closed.
func StartMemLogger(interval time.Duration, logger *slog.Logger, stop <-chan struct{}) {
	startMemLogger(interval, logger, stop, residentBytes)
}
