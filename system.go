package stockroom

import (
	"slices"
	"time"

	"github.com/TheBitDrifter/stockroom/job"
	"github.com/rotisserie/eris"
)

// AddSystem registers s to run on every Update, after the systems registered
// before it.
func (r *registry) AddSystem(name string, s System) error {
	if _, found := r.systems.GetIndex(name); found {
		return DuplicateSystemError{Name: name}
	}
	if _, err := r.systems.Register(name, s); err != nil {
		return eris.Wrapf(err, "failed to register system %q", name)
	}
	r.systemNames = append(r.systemNames, name)
	r.logger.Debug().Str("system", name).Msg("system registered")
	return nil
}

func (r *registry) Systems() []string {
	return slices.Clone(r.systemNames)
}

// Update runs every system in registration order and stops at the first error.
// A ScheduledSystem is only queued here and is timed when its body runs.
func (r *registry) Update() error {
	for _, name := range r.systemNames {
		index, _ := r.systems.GetIndex(name)
		system := *r.systems.GetItem(index)
		var err error
		if scheduled, ok := system.(*ScheduledSystem); ok {
			err = scheduled.then(func() error {
				return r.timeSystem(name, scheduled.body)
			})
		} else {
			err = r.timeSystem(name, system.Update)
		}
		if err != nil {
			return eris.Wrapf(err, "system %q failed", name)
		}
	}
	return nil
}

func (r *registry) timeSystem(name string, update func(Registry) error) error {
	start := time.Now()
	err := update(r)
	r.metrics.recordSystemUpdate(name, time.Since(start))
	return err
}

// ScheduledSystem runs its body on a job pool. Each Update is chained after
// the previous one, so bodies never overlap each other; they may overlap the
// caller, which must not mutate the registry structurally until Wait returns.
type ScheduledSystem struct {
	chain *job.Chain
	body  func(Registry) error
}

func NewScheduledSystem(pool *job.Pool, body func(Registry) error) *ScheduledSystem {
	return &ScheduledSystem{
		chain: job.NewChain(pool),
		body:  body,
	}
}

func (s *ScheduledSystem) Update(r Registry) error {
	return s.then(func() error {
		return s.body(r)
	})
}

func (s *ScheduledSystem) then(task job.Task) error {
	_, err := s.chain.Then(task)
	return err
}

// Wait blocks until the most recently scheduled body has finished.
func (s *ScheduledSystem) Wait() error {
	return s.chain.Wait()
}
