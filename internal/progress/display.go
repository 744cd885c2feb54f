package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

const (
	barWidth = 24
	// renderInterval throttles in-place line rewrites so large collections
	// do not spend their time repainting the terminal.
	renderInterval = 100 * time.Millisecond
)

// ScanDisplay renders scan progress. It satisfies the scanner's Observer
// interface: one progress line per collection, rewritten in place on a TTY,
// plain begin/end lines otherwise.
type ScanDisplay struct {
	capabilities TerminalCapabilities
	symbols      Symbols
	out          io.Writer
	now          func() time.Time

	collection string
	total      int64
	startedAt  time.Time
	lastRender time.Time
}

// NewScanDisplay creates a display for the given terminal capabilities,
// writing to stdout.
func NewScanDisplay(caps TerminalCapabilities) *ScanDisplay {
	return &ScanDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          os.Stdout,
		now:          time.Now,
	}
}

// CollectionMissing reports a schema-declared collection the database lacks.
func (d *ScanDisplay) CollectionMissing(collectionName string) {
	fmt.Fprintf(d.out, "%s Database lacks collection: %s\n",
		color.YellowString(d.symbols.Warning), collectionName)
}

// CollectionSkipped reports a collection excluded by the caller.
func (d *ScanDisplay) CollectionSkipped(collectionName string) {
	fmt.Fprintf(d.out, "%s Skipping source collection: %s\n",
		color.YellowString(d.symbols.Warning), collectionName)
}

// CollectionStarted begins the progress line for a collection.
func (d *ScanDisplay) CollectionStarted(collectionName string, totalDocuments int64) {
	d.collection = collectionName
	d.total = totalDocuments
	d.startedAt = d.now()
	d.lastRender = time.Time{}

	if !d.capabilities.IsTTY {
		fmt.Fprintf(d.out, "Scanning %s (%d documents)\n", collectionName, totalDocuments)
		return
	}
	d.renderLine(0, 0, "remaining")
}

// DocumentProcessed updates the progress line. Rewrites are throttled except
// for the final document, which always renders.
func (d *ScanDisplay) DocumentProcessed(collectionName string, documentsProcessed int64, violationsSoFar int) {
	if !d.capabilities.IsTTY {
		return
	}
	now := d.now()
	if documentsProcessed < d.total && now.Sub(d.lastRender) < renderInterval {
		return
	}
	d.lastRender = now
	d.renderLine(documentsProcessed, violationsSoFar, "remaining")
}

// CollectionFinished completes the collection's progress line.
func (d *ScanDisplay) CollectionFinished(collectionName string, violations int) {
	if !d.capabilities.IsTTY {
		fmt.Fprintf(d.out, "%s %s: %d violations\n", d.symbols.Checkmark, collectionName, violations)
		return
	}
	d.renderLine(d.total, violations, "done")
	fmt.Fprintln(d.out)
}

func (d *ScanDisplay) renderLine(processed int64, violations int, remainingLabel string) {
	elapsed := d.now().Sub(d.startedAt)
	remaining := "-:--:--"
	if estimate, ok := estimateRemaining(elapsed, processed, d.total); ok {
		remaining = formatDuration(estimate)
	}
	if remainingLabel == "done" {
		remaining = formatDuration(elapsed)
	}

	violationsLabel := fmt.Sprintf("%d", violations)
	if violations > 0 {
		violationsLabel = color.RedString(violationsLabel)
	}

	fmt.Fprintf(d.out, "\r\033[K%s %s violations in %s source documents %s %s %s elapsed %s %s",
		d.collection,
		violationsLabel,
		formatCounter(processed, d.total),
		formatPercent(processed, d.total),
		renderBar(d.symbols, processed, d.total, barWidth),
		formatDuration(elapsed),
		remaining,
		remainingLabel,
	)
}
