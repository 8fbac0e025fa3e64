package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/orbitviz/pkg/scene"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs longer than the engine's limit.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned to a caller whose evaluation finished after a
	// newer one was started.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

type evalResult struct {
	config *scene.PlacementConfig
	errors []EvalError
	err    error
}

// await blocks until the evaluation numbered gen reports on ch or the
// engine's timeout expires. A timed out script keeps running in its
// goroutine; ch is buffered so it never blocks on send.
func (e *Engine) await(ch <-chan evalResult, gen uint64) (*scene.PlacementConfig, []EvalError, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	select {
	case res := <-ch:
		if gen != e.currentGeneration() {
			return nil, nil, ErrSuperseded
		}
		return res.config, res.errors, res.err
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}
}

// nextGeneration starts a new evaluation and returns its number.
func (e *Engine) nextGeneration() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

func (e *Engine) currentGeneration() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}
