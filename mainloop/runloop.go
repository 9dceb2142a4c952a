package mainloop

import (
	"context"
	"sync"
)

var _ Dispatcher = (*RunLoop)(nil)

// RunLoop is a FIFO task queue drained by whichever goroutine calls Run.
//
// Scheduling a task does not by itself rouse an idle loop: the loop sleeps until
// WakeUp is called. Perform does both, which is what dispatching code should use.
type RunLoop struct {
	lock  sync.Mutex
	tasks []func()
	wake  chan struct{}
}

// NewRunLoop returns an idle run loop.
func NewRunLoop() *RunLoop {
	return &RunLoop{wake: make(chan struct{}, 1)}
}

// Schedule appends task to the queue without waking the loop.
func (l *RunLoop) Schedule(task func()) {
	l.lock.Lock()
	l.tasks = append(l.tasks, task)
	l.lock.Unlock()
}

// WakeUp rouses the loop if it is sleeping. Wake-ups coalesce.
func (l *RunLoop) WakeUp() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Perform schedules task and wakes the loop.
func (l *RunLoop) Perform(task func()) {
	l.Schedule(task)
	l.WakeUp()
}

// Pending returns the number of queued tasks.
func (l *RunLoop) Pending() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return len(l.tasks)
}

// RunPending executes every task queued so far, plus any they enqueue, and
// returns how many ran. It never blocks waiting for new work.
func (l *RunLoop) RunPending() int {
	ran := 0
	for {
		l.lock.Lock()
		batch := l.tasks
		l.tasks = nil
		l.lock.Unlock()

		if len(batch) == 0 {
			return ran
		}
		for _, task := range batch {
			task()
			ran++
		}
	}
}

// Run executes tasks on the calling goroutine until ctx is done. Tasks still
// queued at that point are drained before Run returns.
func (l *RunLoop) Run(ctx context.Context) error {
	for {
		l.RunPending()
		select {
		case <-l.wake:
		case <-ctx.Done():
			l.RunPending()
			return ctx.Err()
		}
	}
}
