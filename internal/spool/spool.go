// Package spool writes encoded jobs to files, optionally compressed by
// file extension.
package spool

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format is the on-disk encoding of a spool file.
type Format int

const (
	FormatRaw Format = iota
	FormatGzip
	FormatZstd
)

func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	}
	return "raw"
}

// FormatFor picks the format from the file name extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return FormatGzip
	case ".zst", ".zstd":
		return FormatZstd
	}
	return FormatRaw
}

type file struct {
	io.Writer
	enc  io.WriteCloser // nil for raw output
	f    *os.File
	path string
	done bool
}

func (s *file) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	var err error
	if s.enc != nil {
		err = s.enc.Close()
	}
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("close spool %s: %w", s.path, err)
	}
	return nil
}

// Create opens path for writing. The caller must Close the writer to
// flush the compressor.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return wrap(f, path, FormatFor(path))
}

// NewWriter wraps w with the encoder for format. Closing the result closes
// the encoder but not w.
func NewWriter(w io.Writer, format Format) (io.WriteCloser, error) {
	switch format {
	case FormatGzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case FormatZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	}
	return nopCloser{w}, nil
}

// NewReader undoes NewWriter.
func NewReader(r io.Reader, format Format) (io.ReadCloser, error) {
	switch format {
	case FormatGzip:
		return gzip.NewReader(r)
	case FormatZstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	}
	return io.NopCloser(r), nil
}

// Open opens a spool file for reading, decompressing by extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, FormatFor(path))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open spool %s: %w", path, err)
	}
	return readCloser{r, f}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type readCloser struct {
	io.ReadCloser
	f *os.File
}

func (r readCloser) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func wrap(f *os.File, path string, format Format) (io.WriteCloser, error) {
	if format == FormatRaw {
		return &file{Writer: f, f: f, path: path}, nil
	}
	enc, err := NewWriter(f, format)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create spool %s: %w", path, err)
	}
	return &file{Writer: enc, enc: enc, f: f, path: path}, nil
}
