package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

func TestChunksCoverRange(t *testing.T) {
	tests := []struct {
		items, workers int
		want           [][2]int
	}{
		{0, 4, nil},
		{3, 8, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{10, 3, [][2]int{{0, 4}, {4, 8}, {8, 10}}},
		{8, 2, [][2]int{{0, 4}, {4, 8}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Chunks(tt.items, tt.workers), "items=%d workers=%d", tt.items, tt.workers)
	}
}

func TestRunVisitsEveryIndexOnce(t *testing.T) {
	const n = 10007
	var visits [n]int32

	Run(n, 16, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&visits[i], 1)
		}
	})

	for i, v := range visits {
		if v != 1 {
			t.Fatalf("index %d visited %d times", i, v)
		}
	}
}

func TestRunBelowThresholdIsSequential(t *testing.T) {
	var calls [][2]int
	Run(5, 100, func(start, end int) {
		calls = append(calls, [2]int{start, end})
	})
	assert.Equal(t, [][2]int{{0, 5}}, calls)
}

func TestRunNoItems(t *testing.T) {
	Run(0, 0, func(start, end int) {
		t.Fatal("fn must not be called")
	})
}

func TestRunRaisesWorkerPanicOnCaller(t *testing.T) {
	assert.PanicsWithValue(t, "bad column", func() {
		Run(1000, 0, func(start, end int) {
			if start <= 500 && 500 < end {
				panic("bad column")
			}
		})
	})
}

func TestRunWorkerPanicIsRecoverable(t *testing.T) {
	var visited int32
	err := errors.SafeExecute("fill", func() error {
		Run(1000, 0, func(start, end int) {
			atomic.AddInt32(&visited, int32(end-start))
			if start == 0 {
				panic("index out of range")
			}
		})
		return nil
	})

	var panicErr *errors.PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "fill", panicErr.Operation)
	assert.Equal(t, "index out of range", panicErr.PanicValue)
	assert.Equal(t, int32(1000), visited, "other chunks still run to completion")
}
