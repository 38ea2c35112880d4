package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// useColor reports whether error messages written to w are coloured.
// In auto mode only terminals get colour, and NO_COLOR turns it off.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printError(w io.Writer, err error, color bool) {
	if color {
		fmt.Fprintf(w, "%serror:%s %v\n", ansiRed, ansiReset, err)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
