// Package job runs tasks on a fixed set of worker goroutines. A task may
// depend on the handles of earlier tasks; it starts only after all of them
// have finished, whatever their outcome. A panicking task fails its handle
// with an error carrying the call trace, readable through bark.GetTrace.
package job

import (
	"errors"
	"runtime"

	"github.com/TheBitDrifter/bark"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrPoolClosed is returned when scheduling on a closed pool.
var ErrPoolClosed = errors.New("job: pool is closed")

type Task func() error

type unit struct {
	task   Task
	deps   []*Handle
	handle *Handle
}

type Option func(*Pool)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

type Pool struct {
	logger  zerolog.Logger
	queue   *queue
	workers int
	group   errgroup.Group
}

// NewPool starts workers goroutines. A non-positive count uses GOMAXPROCS.
func NewPool(workers int, opts ...Option) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		logger:  zerolog.Nop(),
		queue:   newQueue(),
		workers: workers,
	}
	for _, opt := range opts {
		opt(p)
	}
	for i := 0; i < workers; i++ {
		worker := i
		p.group.Go(func() error {
			p.work(worker)
			return nil
		})
	}
	p.logger.Debug().Int("workers", workers).Msg("job pool started")
	return p
}

// Schedule queues task to run once every handle in deps has completed.
// Nil dependencies are ignored.
func (p *Pool) Schedule(task Task, deps ...*Handle) (*Handle, error) {
	u := &unit{task: task, handle: newHandle()}
	for _, dep := range deps {
		if dep != nil {
			u.deps = append(u.deps, dep)
		}
	}
	if !p.queue.push(u) {
		return nil, ErrPoolClosed
	}
	return u.handle, nil
}

func (p *Pool) Workers() int {
	return p.workers
}

// Pending is the number of tasks queued but not yet picked up by a worker.
func (p *Pool) Pending() int {
	return p.queue.len()
}

// Close stops accepting tasks, lets the workers drain the queue and waits for
// them to exit.
func (p *Pool) Close() error {
	p.queue.close()
	if err := p.group.Wait(); err != nil {
		return eris.Wrap(err, "job pool shutdown")
	}
	p.logger.Debug().Msg("job pool closed")
	return nil
}

func (p *Pool) work(worker int) {
	for {
		u, ok := p.queue.pop()
		if !ok {
			return
		}
		for _, dep := range u.deps {
			_ = dep.Wait()
		}
		u.handle.finish(p.run(worker, u.task))
	}
}

func (p *Pool) run(worker int, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = bark.AddTrace(eris.Errorf("job panicked: %v", r))
			trace, _ := bark.GetTrace(err)
			frames := make([]string, len(trace.Frames))
			for i, frame := range trace.Frames {
				frames[i] = frame.String()
			}
			p.logger.Error().Err(err).Int("worker", worker).Strs("trace", frames).Msg("recovered panic in job")
		}
	}()
	return task()
}
