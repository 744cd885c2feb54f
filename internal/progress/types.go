// Package progress renders scan progress to the console: a per-collection
// progress line with document counts, running violation totals, and time
// estimates, plus spinners for indeterminate phases. Rendering degrades to
// plain line output when stdout is not a terminal.
package progress

// TerminalCapabilities encapsulates detected terminal features.
type TerminalCapabilities struct {
	// IsTTY indicates whether stdout is a terminal (vs pipe/redirect).
	IsTTY bool
	// SupportsColor indicates whether the terminal supports ANSI colors.
	SupportsColor bool
	// SupportsUnicode indicates whether the terminal supports Unicode.
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe).
	Width int
}

// Symbols defines the character set for visual indicators.
type Symbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]").
	Checkmark string
	// Warning is the warning indicator ("⚠" or "[WARN]").
	Warning string
	// BarFilled and BarEmpty draw the progress bar.
	BarFilled string
	BarEmpty  string
	// SpinnerSet is the index into spinner.CharSets.
	SpinnerSet int
}
