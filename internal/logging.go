package internal

import (
	"io"
	"log"
	"os"
)

// InitLogging configures the standard logger. Logs go to stdout unless out
// is set, e.g. when the terminal preview owns stdout.
func InitLogging(out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetPrefix("telltale ")
}
