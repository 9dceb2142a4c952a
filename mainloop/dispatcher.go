// Package mainloop schedules work onto a primary execution context.
//
// Vendor SDKs report completion on whatever goroutine they like. Code that must
// observe results on one designated context (typically the OS main thread) hands
// the continuation to a Dispatcher. Every Dispatcher must guarantee that a
// performed task eventually runs; a task that is queued but never executed leaves
// the caller's promise pending forever.
package mainloop

// Dispatcher runs tasks on its execution context.
type Dispatcher interface {
	Perform(task func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(task func())

func (f DispatcherFunc) Perform(task func()) {
	f(task)
}

// Immediate runs each task inline on the calling goroutine. It suits platforms
// whose vendor SDK already completes on a usable context.
type Immediate struct{}

var _ Dispatcher = Immediate{}

func (Immediate) Perform(task func()) {
	task()
}
