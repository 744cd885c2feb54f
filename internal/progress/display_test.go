package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestDisplay(buf *bytes.Buffer, isTTY bool) *ScanDisplay {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := &ScanDisplay{
		capabilities: TerminalCapabilities{IsTTY: isTTY},
		symbols:      SelectSymbols(TerminalCapabilities{}),
		out:          buf,
		now:          func() time.Time { return clock },
	}
	return d
}

func TestScanDisplay_NonTTY(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	d := newTestDisplay(&buf, false)

	d.CollectionStarted("company_set", 3)
	d.DocumentProcessed("company_set", 1, 0)
	d.DocumentProcessed("company_set", 2, 1)
	d.CollectionFinished("company_set", 1)

	out := buf.String()
	assert.Contains(t, out, "Scanning company_set (3 documents)\n")
	assert.Contains(t, out, "[OK] company_set: 1 violations\n")
	// Per-document updates are suppressed off-TTY.
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.NotContains(t, out, "\r")
}

func TestScanDisplay_TTYRewritesLine(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	d := newTestDisplay(&buf, true)

	d.CollectionStarted("company_set", 2)
	d.CollectionFinished("company_set", 0)

	out := buf.String()
	assert.Contains(t, out, "\r\033[K")
	assert.Contains(t, out, "company_set 0 violations in")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "done")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestScanDisplay_TTYThrottlesRewrites(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := &ScanDisplay{
		capabilities: TerminalCapabilities{IsTTY: true},
		symbols:      SelectSymbols(TerminalCapabilities{}),
		out:          &buf,
		now:          func() time.Time { return clock },
	}

	d.CollectionStarted("company_set", 100)
	d.DocumentProcessed("company_set", 1, 0)
	renders := strings.Count(buf.String(), "\r")

	// Within the throttle window nothing repaints.
	d.DocumentProcessed("company_set", 2, 0)
	assert.Equal(t, renders, strings.Count(buf.String(), "\r"))

	// After the interval elapses the line repaints.
	clock = clock.Add(renderInterval)
	d.DocumentProcessed("company_set", 3, 0)
	assert.Equal(t, renders+1, strings.Count(buf.String(), "\r"))

	// The final document always repaints, throttle or not.
	d.DocumentProcessed("company_set", 100, 0)
	assert.Equal(t, renders+2, strings.Count(buf.String(), "\r"))
}

func TestScanDisplay_Warnings(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	d := newTestDisplay(&buf, false)

	d.CollectionMissing("ghost_set")
	d.CollectionSkipped("noisy_set")

	out := buf.String()
	assert.Contains(t, out, "[WARN] Database lacks collection: ghost_set")
	assert.Contains(t, out, "[WARN] Skipping source collection: noisy_set")
}
