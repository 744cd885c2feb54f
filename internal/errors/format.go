package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// PrintError writes a categorized error report to stderr.
func PrintError(err error) {
	FprintError(os.Stderr, err)
}

// FprintError writes a categorized error report to w: the category heading,
// the message, the underlying cause when present, and remediation steps.
func FprintError(w io.Writer, err error) {
	var cliErr *CLIError
	if !stderrors.As(err, &cliErr) {
		fmt.Fprintf(w, "%s: %v\n", color.RedString("Error"), err)
		return
	}

	fmt.Fprintf(w, "%s: %s\n", color.RedString(cliErr.Category.String()), cliErr.Message)
	if cliErr.Err != nil {
		fmt.Fprintf(w, "  cause: %v\n", cliErr.Err)
	}
	if len(cliErr.Remediation) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "To fix this:")
		for _, step := range cliErr.Remediation {
			fmt.Fprintf(w, "  - %s\n", step)
		}
	}
}
