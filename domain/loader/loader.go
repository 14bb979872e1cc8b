// Package loader runs image decoding off the UI thread with last-load-wins
// semantics: every Load bumps a generation, cancels the previous decode and
// only the newest generation's result is ever handed back by Poll.
package loader

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-crop-go/domain/imageio"
)

// Result is the outcome of one load.
type Result struct {
	Generation uint64
	Decoded    *imageio.Decoded
	Err        error
	Elapsed    time.Duration
}

// Loader is safe for concurrent use. Results are published through an
// atomic pointer and consumed by Poll, usually from the UI tick.
type Loader struct {
	name   string
	logger *slog.Logger

	gen    atomic.Uint64
	latest atomic.Pointer[Result]

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a loader. name tags log lines, e.g. "crop" or "rotate".
func New(name string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{name: name, logger: logger.With("loader", name)}
}

// Load starts decoding src and returns the generation assigned to it. Any
// in-flight load is cancelled and its result will never surface.
func (l *Loader) Load(parent context.Context, src imageio.Source) uint64 {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	gen := l.gen.Add(1)
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()
		start := time.Now()
		dec, err := src.Open(ctx)
		res := &Result{Generation: gen, Decoded: dec, Err: err, Elapsed: time.Since(start)}
		if gen != l.gen.Load() {
			l.logger.Debug("dropping stale load", "generation", gen, "current", l.gen.Load())
			return
		}
		l.publish(res)
		if err != nil {
			l.logger.Warn("load failed", "generation", gen, "error", err)
			return
		}
		l.logger.Info("image loaded",
			"generation", gen,
			"name", dec.Name,
			"media_type", dec.MediaType,
			"width", dec.Image.Bounds().Dx(),
			"height", dec.Image.Bounds().Dy(),
			"elapsed", res.Elapsed)
	}()
	return gen
}

// publish stores res unless a newer generation already landed.
func (l *Loader) publish(res *Result) {
	for {
		cur := l.latest.Load()
		if cur != nil && cur.Generation > res.Generation {
			return
		}
		if l.latest.CompareAndSwap(cur, res) {
			return
		}
	}
}

// Invalidate discards any pending result, as a reset does, and cancels the
// in-flight load.
func (l *Loader) Invalidate() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.latest.Store(nil)
	return l.gen.Add(1)
}

// Poll returns the pending result for the current generation, at most once.
// Results from superseded generations are discarded.
func (l *Loader) Poll() (Result, bool) {
	res := l.latest.Swap(nil)
	if res == nil {
		return Result{}, false
	}
	if res.Generation != l.gen.Load() {
		return Result{}, false
	}
	return *res, true
}

// Close cancels outstanding work and waits for the worker goroutines.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
	l.wg.Wait()
}
