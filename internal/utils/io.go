package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadPasswordLine reads one line from r and strips the line ending.
// It is used with --password-stdin so scripts can pipe a password in.
// Only the line terminator is removed; other whitespace is part of the
// password. Pass a *bufio.Reader to keep reading r afterwards; any other
// reader may lose data buffered past the first line.
func ReadPasswordLine(r io.Reader) (string, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
