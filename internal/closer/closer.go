// Package closer collects shutdown hooks during startup and runs them in
// reverse order on exit.
package closer

import (
	"context"
	"errors"
	"sync"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
)

type closeFn func(ctx context.Context) error

type namedCloser struct {
	name string
	fn   closeFn
}

var (
	mu      sync.Mutex
	closers []namedCloser
	log     = logger.L()
)

// SetLogger replaces the logger used while closing.
func SetLogger(l *logger.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// Add registers an anonymous shutdown hook.
func Add(fn closeFn) {
	AddNamed("", fn)
}

// AddNamed registers a shutdown hook under a name used in shutdown logs.
func AddNamed(name string, fn closeFn) {
	mu.Lock()
	defer mu.Unlock()
	closers = append(closers, namedCloser{name: name, fn: fn})
}

// CloseAll runs every registered hook LIFO. All hooks run even when earlier
// ones fail; the errors are joined.
func CloseAll(ctx context.Context) error {
	mu.Lock()
	toClose := make([]namedCloser, len(closers))
	copy(toClose, closers)
	closers = nil
	mu.Unlock()

	var errs []error
	for i := len(toClose) - 1; i >= 0; i-- {
		c := toClose[i]
		if c.name != "" {
			log.Info(ctx, "closing", logger.String("name", c.name))
		}
		if err := c.fn(ctx); err != nil {
			log.Error(ctx, "close failed",
				logger.String("name", c.name),
				logger.ErrorF(err),
			)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
