package progress

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// PhaseSpinner shows an animated spinner for an indeterminate phase, such as
// loading the schema or connecting to the database. On a non-TTY it prints
// the message once instead.
type PhaseSpinner struct {
	capabilities TerminalCapabilities
	spinner      *spinner.Spinner
}

// StartPhase begins a spinner with the message.
func StartPhase(caps TerminalCapabilities, message string) *PhaseSpinner {
	p := &PhaseSpinner{capabilities: caps}
	if caps.IsTTY {
		p.spinner = spinner.New(spinner.CharSets[SelectSymbols(caps).SpinnerSet], 100*time.Millisecond)
		p.spinner.Writer = os.Stderr
		p.spinner.Suffix = " " + message
		p.spinner.Start()
	} else {
		fmt.Println(message)
	}
	return p
}

// Stop ends the spinner.
func (p *PhaseSpinner) Stop() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}

// PrintSectionHeader prints a vertically padded, labeled horizontal rule,
// separating the console output of one execution stage from the next.
func PrintSectionHeader(caps TerminalCapabilities, text string) {
	width := caps.Width
	if width <= 0 || width > 100 {
		width = 80
	}
	rule := SelectSymbols(caps).BarFilled
	label := " " + text + " "
	pad := width - len([]rune(label))
	if pad < 2 {
		pad = 2
	}
	left := pad / 2
	right := pad - left
	fmt.Println()
	fmt.Println(color.New(color.Bold).Sprint(
		strings.Repeat(rule, left) + label + strings.Repeat(rule, right)))
	fmt.Println()
}
