package watcher_test

import (
	"sort"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/respec/internal/adapters/watcher"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var callCount int
		var received []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			callCount++
			received = paths
		})

		// A burst of events for the same descriptor plus one sibling.
		d.Add("/ws/repos/demo_pkg/template.spec")
		d.Add("/ws/repos/demo_pkg/template.spec")
		d.Add("/ws/repos/other_pkg/template.spec")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, callCount, "burst should fire once")
		sort.Strings(received)
		assert.Equal(t, []string{
			"/ws/repos/demo_pkg/template.spec",
			"/ws/repos/other_pkg/template.spec",
		}, received)
	})
}

func TestDebouncer_WindowRestartsOnAdd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var callCount int

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			mu.Lock()
			defer mu.Unlock()
			callCount++
		})

		d.Add("/ws/a.spec")
		time.Sleep(60 * time.Millisecond)
		d.Add("/ws/b.spec")
		time.Sleep(60 * time.Millisecond)

		mu.Lock()
		count := callCount
		mu.Unlock()
		assert.Zero(t, count, "window should restart while events keep arriving")

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	var received []string
	d := watcher.NewDebouncer(time.Hour, func(paths []string) {
		received = paths
	})

	d.Add("/ws/a.spec")
	d.Flush()

	require.Equal(t, []string{"/ws/a.spec"}, received)

	// Nothing pending: flush must not fire again.
	received = nil
	d.Flush()
	assert.Nil(t, received)
}
