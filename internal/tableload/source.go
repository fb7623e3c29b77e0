package tableload

// source.go wraps a file for line-oriented reading.
//
// The wrappers are applied in order:
//
//   - countingReader: tracks bytes read for debug logging
//   - BOM skip: drops a leading UTF-8 BOM (0xEF 0xBB 0xBF) left by Windows tools
//   - line scanner: yields lines with "\n" and a trailing "\r" stripped
//
// Invalid UTF-8 in a line is replaced with '?' before splitting.

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const (
	// initialLineBuffer is the scanner's starting buffer size.
	initialLineBuffer = 64 * 1024

	// maxLineLength bounds a single line. FIFA exports run to a few KB per row.
	maxLineLength = 16 * 1024 * 1024
)

// countingReader counts bytes passing through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// source is an open file positioned at its first line.
type source struct {
	file    *os.File
	counter *countingReader
	scanner *bufio.Scanner
}

// openSource opens path for one full pass.
func openSource(path string, skipBOM bool) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	counter := &countingReader{r: f}
	br := bufio.NewReaderSize(counter, initialLineBuffer)

	if skipBOM {
		if err := discardBOM(br); err != nil {
			f.Close()
			return nil, err
		}
	}

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, initialLineBuffer), maxLineLength)

	return &source{file: f, counter: counter, scanner: sc}, nil
}

// discardBOM drops a leading BOM from br if present.
func discardBOM(br *bufio.Reader) error {
	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		_, err = br.Discard(len(utf8BOM))
		return err
	}
	return nil
}

// next returns the following line, or false at end of input or on error.
func (s *source) next() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.ToValidUTF8(s.scanner.Text(), "?"), true
}

// err returns the first non-EOF error met while scanning.
func (s *source) err() error {
	return s.scanner.Err()
}

// bytesRead returns how many bytes have been pulled from the file.
func (s *source) bytesRead() int64 {
	return s.counter.n
}

func (s *source) Close() error {
	return s.file.Close()
}
