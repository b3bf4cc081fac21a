package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	t.Parallel()

	avgs, valid := SMA([]float64{1, 2, 3, 4, 5}, 3)

	assert.False(t, valid[0])
	assert.False(t, valid[1])
	assert.True(t, valid[2])
	assert.InDelta(t, 2.0, avgs[2], 1e-9)
	assert.InDelta(t, 3.0, avgs[3], 1e-9)
	assert.InDelta(t, 4.0, avgs[4], 1e-9)
}

func TestSMA_WindowLargerThanSeries(t *testing.T) {
	t.Parallel()

	_, valid := SMA([]float64{1, 2}, 5)
	for _, v := range valid {
		assert.False(t, v)
	}
}

func TestNewGenerator_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(10, 10)
	assert.Error(t, err)

	_, err = NewGenerator(0, 10)
	assert.Error(t, err)

	g, err := NewGenerator(2, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, g.DefinedFrom())
}

func TestSignalsAndPositionChanges(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(2, 3)
	require.NoError(t, err)

	// Rising then falling: the short average crosses the long average up,
	// then back down.
	closes := []float64{10, 10, 10, 14, 18, 16, 2, 2}

	signals := g.Signals(closes)
	assert.Equal(t, 0, signals[0])
	assert.Equal(t, 0, signals[1])
	assert.Equal(t, 0, signals[2]) // flat: short == long, not strictly above
	assert.Equal(t, 1, signals[3])
	assert.Equal(t, 1, signals[4])
	assert.Equal(t, 0, signals[6])

	changes := g.PositionChanges(closes)
	assert.Equal(t, 0, changes[0])
	assert.Equal(t, 1, changes[3])  // entry trigger
	assert.Equal(t, -1, changes[6]) // exit trigger

	var entries, exits int
	for _, c := range changes {
		switch c {
		case 1:
			entries++
		case -1:
			exits++
		}
	}
	assert.Equal(t, 1, entries)
	assert.Equal(t, 1, exits)
}
