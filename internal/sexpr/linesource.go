package sexpr

import (
	"bufio"
	"io"
	"strings"
)

// NewStringLineSource splits s on newlines and returns a LineSource over the
// resulting lines, useful for tests and for replaying a fixed transcript.
func NewStringLineSource(s string) LineSource {
	lines := strings.Split(s, "\n")
	i := 0
	return LineSourceFunc(func() (string, error) {
		if i >= len(lines) {
			return "", io.EOF
		}
		line := lines[i]
		i++
		return line, nil
	})
}

// NewScannerLineSource adapts a bufio.Scanner-backed io.Reader (e.g. the
// solver's stdout pipe) into a LineSource.
func NewScannerLineSource(r io.Reader) LineSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return LineSourceFunc(func() (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	})
}
