// internal/writers/answer.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	"almanac/internal/solver"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// StartAnswerWriter spins up a writer goroutine for solver answers. Close the
// returned channel when done, then read the single error value.
func StartAnswerWriter(out io.Writer, format string, header bool, bufSize int) (chan<- solver.Answer, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan solver.Answer, bufSize)
	errCh := make(chan error, 1)

	go func() {
		fn, ok := answerFormats[format]
		if !ok {
			// Drain so senders never block on a writer that will not write.
			for range in {
			}
			errCh <- fmt.Errorf("unknown answer format %q (no writer registered)", format)
			return
		}
		err := fn(out, header, in)
		for range in {
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
