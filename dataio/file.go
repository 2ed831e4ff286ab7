// SPDX-License-Identifier: MIT

package dataio

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// gzipSuffix marks compressed files.
const gzipSuffix = ".gz"

// IsGzip reports whether path names a gzip-compressed file.
func IsGzip(path string) bool { return strings.HasSuffix(path, gzipSuffix) }

// Open opens path for reading, decompressing it when it ends in ".gz".
// Closing the returned reader closes the file.
func Open(path string) (io.ReadCloser, error) {
	fid, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open file")
	}
	if !IsGzip(path) {
		return fid, nil
	}
	gid, err := gzip.NewReader(fid)
	if err != nil {
		fid.Close()
		return nil, errors.Wrapf(err, "Can't read gzip header of %s", path)
	}

	return &stackedCloser{Reader: gid, closers: []io.Closer{gid, fid}}, nil
}

// Create creates path for writing, compressing it when it ends in ".gz".
// Close must be called to flush the compressed stream.
func Create(path string) (io.WriteCloser, error) {
	fid, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "Can't create file")
	}
	if !IsGzip(path) {
		return fid, nil
	}
	gid := gzip.NewWriter(fid)

	return &stackedCloser{Writer: gid, closers: []io.Closer{gid, fid}}, nil
}

// stackedCloser closes its layers in order and reports the first error.
type stackedCloser struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
