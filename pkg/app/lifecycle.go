package app

import (
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Lifecycle owns signal handling and the cleanups that must run before a
// signal-driven exit (terminal-state restoration, log flushing). Normal
// control flow relies on ordinary defers; Lifecycle covers the paths where
// defers never fire.
type Lifecycle struct {
	logger *zap.Logger

	mu       sync.Mutex
	nextID   int
	cleanups map[int]func()

	// exit is swappable for tests.
	exit func(int)
}

// NewLifecycle returns a lifecycle manager logging through logger.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:   logger,
		cleanups: map[int]func(){},
		exit:     os.Exit,
	}
}

// Defer registers a cleanup to run on signal exit. The returned release
// unregisters it; call release once the guarded section finished normally.
func (l *Lifecycle) Defer(cleanup func()) (release func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.cleanups[id] = cleanup
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.cleanups, id)
		l.mu.Unlock()
	}
}

// Watch installs the interrupt/termination handler. On a fatal signal every
// registered cleanup runs (newest first), logs are flushed, and the process
// exits with 128 plus the signal number.
func (l *Lifecycle) Watch() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		l.runCleanups()
		if l.logger != nil {
			l.logger.Warn("terminated by signal", zap.String("signal", sig.String()))
			_ = l.logger.Sync()
		}
		l.exit(exitCodeFor(sig))
	}()
}

// runCleanups executes registered cleanups newest-first.
func (l *Lifecycle) runCleanups() {
	l.mu.Lock()
	ids := make([]int, 0, len(l.cleanups))
	for id := range l.cleanups {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		fns = append(fns, l.cleanups[ids[i]])
	}
	l.cleanups = map[int]func(){}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// exitCodeFor maps a fatal signal to the shell convention 128+N.
func exitCodeFor(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
