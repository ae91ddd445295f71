package tabular

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerTrailingSingleRun(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var runs atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { runs.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load(), "burst of triggers must collapse to one trailing run")
}

func TestDebouncerCancelAndReplace(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var got atomic.Int32
	d.Trigger(func() { got.Store(1) })
	d.Trigger(func() { got.Store(2) })

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(2), got.Load(), "only the most recent pending call survives")
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var runs atomic.Int32
	d.Trigger(func() { runs.Add(1) })
	d.Stop()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, runs.Load())
}

func TestReloadGuardDiscardsStaleGenerations(t *testing.T) {
	var g ReloadGuard

	first := g.Next()
	second := g.Next()

	// The slow first reload finishes after the second was issued.
	assert.False(t, g.Accept(first))
	assert.True(t, g.Accept(second))

	third := g.Next()
	assert.False(t, g.Accept(second))
	assert.True(t, g.Accept(third))
}
