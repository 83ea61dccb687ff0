package minimax

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimits(t *testing.T) {
	limits := DefaultLimits()
	if !limits.Infinite || limits.cutoff() != -1 {
		t.Error("Default limits should search until terminal positions, cutoff=", limits.cutoff())
	}

	limits.SetDepth(4)
	assert.False(t, limits.Infinite)
	assert.Equal(t, 4, limits.cutoff())

	limits.SetDepth(-3)
	assert.Equal(t, 0, limits.cutoff())

	limits.SetInfinite(true)
	assert.Equal(t, -1, limits.cutoff())
	assert.Equal(t, DefaultDepthLimit, limits.Depth)

	limits.SetThreads(3)
	assert.Equal(t, 3, limits.NThreads)
	limits.SetThreads(0)
	assert.Equal(t, defaultThreads(), limits.NThreads)

	clone := limits.Clone().SetDepth(1)
	assert.True(t, limits.Infinite)
	assert.Equal(t, 1, clone.cutoff())

	assert.True(t, strings.Contains(limits.String(), `"NThreads"`))
}

func TestEngineCopiesLimits(t *testing.T) {
	limits := DefaultLimits().SetDepth(2)
	engine := New(WithLimits(limits))

	limits.SetDepth(7)
	assert.Equal(t, 2, engine.Limits().Depth)

	engine.Limits().SetDepth(5)
	assert.Equal(t, 2, engine.Limits().Depth)

	engine.SetLimits(limits)
	assert.Equal(t, 7, engine.Limits().Depth)
	assert.Contains(t, engine.String(), "depth=7")
}

func TestWithWorkers(t *testing.T) {
	engine := New(WithParallel(true), WithWorkers(3))
	assert.Equal(t, 3, engine.Limits().NThreads)
	assert.Contains(t, engine.String(), "threads=3")

	engine = New(WithWorkers(0))
	assert.Equal(t, runtime.GOMAXPROCS(0), engine.Limits().NThreads)
}
