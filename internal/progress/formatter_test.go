package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCounter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0/120", formatCounter(0, 120))
	assert.Equal(t, "120/120", formatCounter(120, 120))
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		processed int64
		total     int64
		want      string
	}{
		"zero of many":     {processed: 0, total: 200, want: "  0%"},
		"halfway":          {processed: 100, total: 200, want: " 50%"},
		"complete":         {processed: 200, total: 200, want: "100%"},
		"empty collection": {processed: 0, total: 0, want: "100%"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatPercent(tt.processed, tt.total))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		d    time.Duration
		want string
	}{
		"zero":       {d: 0, want: "0:00:00"},
		"seconds":    {d: 42 * time.Second, want: "0:00:42"},
		"minutes":    {d: 3*time.Minute + 5*time.Second, want: "0:03:05"},
		"hours":      {d: 2*time.Hour + 30*time.Minute, want: "2:30:00"},
		"sub-second": {d: 400 * time.Millisecond, want: "0:00:00"},
		"negative":   {d: -time.Minute, want: "0:00:00"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatDuration(tt.d))
		})
	}
}

func TestEstimateRemaining(t *testing.T) {
	t.Parallel()

	remaining, ok := estimateRemaining(10*time.Second, 10, 100)
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, remaining)

	_, ok = estimateRemaining(10*time.Second, 0, 100)
	assert.False(t, ok)

	_, ok = estimateRemaining(10*time.Second, 5, 0)
	assert.False(t, ok)

	_, ok = estimateRemaining(10*time.Second, 101, 100)
	assert.False(t, ok)
}

func TestRenderBar(t *testing.T) {
	t.Parallel()

	symbols := Symbols{BarFilled: "#", BarEmpty: "-"}

	tests := map[string]struct {
		processed int64
		total     int64
		width     int
		want      string
	}{
		"empty":            {processed: 0, total: 10, width: 4, want: "----"},
		"half":             {processed: 5, total: 10, width: 4, want: "##--"},
		"full":             {processed: 10, total: 10, width: 4, want: "####"},
		"zero total":       {processed: 0, total: 0, width: 4, want: "####"},
		"zero width":       {processed: 5, total: 10, width: 0, want: ""},
		"overshoot clamps": {processed: 20, total: 10, width: 4, want: "####"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, renderBar(symbols, tt.processed, tt.total, tt.width))
		})
	}
}
