package progress

import (
	"fmt"
	"strings"
	"time"
)

// formatCounter returns the "M/N" document counter string.
func formatCounter(processed, total int64) string {
	return fmt.Sprintf("%d/%d", processed, total)
}

// formatPercent returns the whole-number completion percentage. An empty
// collection counts as complete.
func formatPercent(processed, total int64) string {
	if total <= 0 {
		return "100%"
	}
	return fmt.Sprintf("%3.0f%%", float64(processed)/float64(total)*100)
}

// formatDuration renders a duration as H:MM:SS.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// estimateRemaining extrapolates the remaining time from the elapsed time
// and completed fraction. Returns false until there is enough signal.
func estimateRemaining(elapsed time.Duration, processed, total int64) (time.Duration, bool) {
	if processed <= 0 || total <= 0 || processed > total {
		return 0, false
	}
	perDocument := elapsed / time.Duration(processed)
	return perDocument * time.Duration(total-processed), true
}

// renderBar draws a fixed-width progress bar.
func renderBar(symbols Symbols, processed, total int64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := width
	if total > 0 {
		filled = int(float64(processed) / float64(total) * float64(width))
		if filled > width {
			filled = width
		}
	}
	return strings.Repeat(symbols.BarFilled, filled) + strings.Repeat(symbols.BarEmpty, width-filled)
}
