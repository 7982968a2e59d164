// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ReadPassword reads a password from path, or a single line from stdin
// when path is "-". Trailing CR and LF are stripped; other whitespace is
// kept since it may be part of the password. The returned Buffer must be
// closed by the caller.
func ReadPassword(path string) (*Buffer, error) {
	return ReadPasswordFrom(path, os.Stdin)
}

// ReadPasswordFrom is ReadPassword with an explicit reader standing in
// for stdin.
func ReadPasswordFrom(path string, stdin io.Reader) (*Buffer, error) {
	if path == "-" {
		return readPasswordLine(stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return passwordBuffer(data, path)
}

func readPasswordLine(reader io.Reader) (*Buffer, error) {
	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return nil, fmt.Errorf("stdin is empty")
	}
	return passwordBuffer(scanner.Bytes(), "stdin")
}

// passwordBuffer moves data (minus trailing newlines) into a Buffer and
// zeros data.
func passwordBuffer(data []byte, source string) (*Buffer, error) {
	trimmed := data
	for len(trimmed) > 0 && (trimmed[len(trimmed)-1] == '\n' || trimmed[len(trimmed)-1] == '\r') {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("password from %s is empty", source)
	}

	buffer, err := NewFromBytes(trimmed)
	Zero(data)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
