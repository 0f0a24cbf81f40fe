package scheduler

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type task struct {
	timer      *time.Timer
	generation uint64
}

// Scheduler runs delayed tasks keyed by purpose. At most one task per
// purpose is pending: scheduling a purpose again replaces the pending task.
// A cancelled or replaced task never runs.
type Scheduler struct {
	mutex      sync.Mutex
	tasks      map[string]task
	generation uint64
	stopped    bool
	running    sync.WaitGroup
}

func New() *Scheduler {
	return &Scheduler{
		tasks: make(map[string]task),
	}
}

func (s *Scheduler) Schedule(purpose string, delay time.Duration, fn func()) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.stopped {
		log.Warnf("scheduler stopped, ignoring task [%s]", purpose)
		return
	}

	s.cancelLocked(purpose)

	s.generation++
	generation := s.generation
	s.running.Add(1)
	timer := time.AfterFunc(delay, func() {
		defer s.running.Done()
		if !s.claim(purpose, generation) {
			return
		}
		fn()
	})
	s.tasks[purpose] = task{timer: timer, generation: generation}
}

// claim removes the task if it is still the current one for purpose.
func (s *Scheduler) claim(purpose string, generation uint64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	current, ok := s.tasks[purpose]
	if !ok || current.generation != generation {
		return false
	}
	delete(s.tasks, purpose)
	return true
}

// Cancel drops the pending task for purpose, if any.
func (s *Scheduler) Cancel(purpose string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cancelLocked(purpose)
}

func (s *Scheduler) cancelLocked(purpose string) {
	pending, ok := s.tasks[purpose]
	if !ok {
		return
	}
	if pending.timer.Stop() {
		s.running.Done()
	}
	delete(s.tasks, purpose)
}

func (s *Scheduler) Pending(purpose string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, ok := s.tasks[purpose]
	return ok
}

// Stop cancels every pending task and waits for running ones to return.
// Tasks scheduled after Stop are ignored.
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	s.stopped = true
	for purpose := range s.tasks {
		s.cancelLocked(purpose)
	}
	s.mutex.Unlock()

	s.running.Wait()
}
