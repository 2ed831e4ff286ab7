// SPDX-License-Identifier: MIT

package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// newReader returns a csv.Reader that enforces a constant field count and
// reuses its record buffer.
func newReader(r io.Reader, comma rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = 0
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true

	return cr
}

// readRecord returns the next record, io.EOF at the end, an ErrBadValue for
// malformed CSV, and a wrapped error for I/O failures.
func readRecord(cr *csv.Reader) ([]string, error) {
	rec, err := cr.Read()
	if err == nil || err == io.EOF {
		return rec, err
	}
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return nil, fmt.Errorf("%w: %w", ErrBadValue, err)
	}

	return nil, errors.Wrap(err, "Can't read record")
}

// readHeader reads the first record and rejects repeated names.
func readHeader(cr *csv.Reader) ([]string, error) {
	rec, err := readRecord(cr)
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, err
	}
	header := append([]string(nil), rec...)
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, dup := seen[name]; dup {
			return nil, errors.Wrapf(ErrDuplicateColumn, "header column %q", name)
		}
		seen[name] = struct{}{}
	}

	return header, nil
}

// columnIndex finds name in header.
func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}

	return 0, errors.Wrapf(ErrMissingColumn, "column %q", name)
}

// parseFloat parses one cell, naming its position on failure.
func parseFloat(cr *csv.Reader, rec []string, col int, name string) (float64, error) {
	v, err := strconv.ParseFloat(rec[col], 64)
	if err != nil {
		line, _ := cr.FieldPos(col)
		return 0, errors.Wrapf(ErrBadValue, "line %d column %q: %q", line, name, rec[col])
	}

	return v, nil
}

// parseInt parses one integer cell, naming its position on failure.
func parseInt(cr *csv.Reader, rec []string, col int, name string) (int64, error) {
	v, err := strconv.ParseInt(rec[col], 10, 64)
	if err != nil {
		line, _ := cr.FieldPos(col)
		return 0, errors.Wrapf(ErrBadValue, "line %d column %q: %q", line, name, rec[col])
	}

	return v, nil
}

// formatFloat renders v in its shortest exact decimal form, or rep for NaN.
func formatFloat(v float64, rep string) string {
	if v != v {
		return rep
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
