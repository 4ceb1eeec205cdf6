// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package linetee

import (
	"bytes"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// Writer calls a function with each complete line written to it, without the
// trailing newline or carriage return. It is safe for concurrent use.
type Writer struct {
	onLine  func(line string)
	partial bytes.Buffer
	mu      sync.Mutex
}

// New creates a Writer calling onLine. onLine may be nil.
func New(onLine func(line string)) *Writer {
	return &Writer{onLine: onLine}
}

// Write implements io.Writer.
// The callback runs while the writer is locked and must not write back to it.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.partial.Write(p)

	for {
		data := w.partial.Bytes()

		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}

		line := string(data[:i])
		w.partial.Next(i + 1)
		w.emit(line)
	}

	return len(p), nil
}

// Flush emits any trailing partial line as a complete line.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.partial.Len() == 0 {
		return
	}

	line := w.partial.String()
	w.partial.Reset()
	w.emit(line)
}

func (w *Writer) emit(line string) {
	if w.onLine != nil {
		w.onLine(strings.TrimSuffix(line, "\r"))
	}
}

// Truncate shortens s to at most maxWidth terminal cells, ending with "...",
// when maxWidth > 3. Escape sequences are kept and multi-byte characters are
// never split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= len(ellipsis) {
		return s
	}

	return ansi.Truncate(s, maxWidth, ellipsis)
}
