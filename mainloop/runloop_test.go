package mainloop_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-cognito-bridge/mainloop"
	"github.com/stretchr/testify/require"
)

func TestRunLoop_RunPendingIsFIFO(t *testing.T) {
	loop := mainloop.NewRunLoop()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		loop.Perform(func() { order = append(order, i) })
	}
	require.Equal(t, 5, loop.Pending())

	require.Equal(t, 5, loop.RunPending())
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
	require.Zero(t, loop.Pending())
}

func TestRunLoop_RunPendingRunsNestedTasks(t *testing.T) {
	loop := mainloop.NewRunLoop()
	var order []string
	loop.Perform(func() {
		order = append(order, "outer")
		loop.Perform(func() { order = append(order, "inner") })
	})

	require.Equal(t, 2, loop.RunPending())
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestRunLoop_ScheduleWaitsForWakeUp(t *testing.T) {
	loop := mainloop.NewRunLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	stopped := make(chan error, 1)
	loop.Schedule(func() { close(started) })
	go func() { stopped <- loop.Run(ctx) }()
	<-started
	// let the loop go idle
	time.Sleep(20 * time.Millisecond)

	var lock sync.Mutex
	ran := false
	loop.Schedule(func() {
		lock.Lock()
		ran = true
		lock.Unlock()
	})
	hasRun := func() bool {
		lock.Lock()
		defer lock.Unlock()
		return ran
	}

	require.Never(t, hasRun, 50*time.Millisecond, 5*time.Millisecond)

	loop.WakeUp()
	require.Eventually(t, hasRun, time.Second, 5*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-stopped, context.Canceled)
}

func TestRunLoop_RunDrainsOnCancel(t *testing.T) {
	loop := mainloop.NewRunLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := 0
	loop.Schedule(func() { ran++ })
	loop.Schedule(func() { ran++ })

	require.ErrorIs(t, loop.Run(ctx), context.Canceled)
	require.Equal(t, 2, ran)
}

func TestRunLoop_PerformFromOtherGoroutines(t *testing.T) {
	loop := mainloop.NewRunLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	var wg sync.WaitGroup
	results := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			loop.Perform(func() { results <- i })
		}(i)
	}
	wg.Wait()

	seen := map[int]bool{}
	for len(seen) < 20 {
		select {
		case i := <-results:
			seen[i] = true
		case <-time.After(time.Second):
			t.Fatalf("only %d tasks ran", len(seen))
		}
	}
}

func TestImmediate(t *testing.T) {
	ran := false
	mainloop.Immediate{}.Perform(func() { ran = true })
	require.True(t, ran)

	calls := 0
	var d mainloop.Dispatcher = mainloop.DispatcherFunc(func(task func()) {
		calls++
		task()
	})
	d.Perform(func() {})
	require.Equal(t, 1, calls)
}
