package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version, overridden at build time via
// -ldflags "-X github.com/agbru/mpcalc/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args request the version banner.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "mpcalc %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
