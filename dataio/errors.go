// SPDX-License-Identifier: MIT

package dataio

import "github.com/KerryPearn/routino-gm-scenarios/errkind"

// Sentinel errors. All of them are of kind errkind.ErrData.
var (
	// ErrEmptyInput indicates a file without a header line.
	ErrEmptyInput = errkind.Data("dataio: empty input")

	// ErrMissingColumn indicates a required column is absent from the header.
	ErrMissingColumn = errkind.Data("dataio: missing column")

	// ErrDuplicateColumn indicates a repeated column name in the header.
	ErrDuplicateColumn = errkind.Data("dataio: duplicate column")

	// ErrBadValue indicates a cell that cannot be parsed.
	ErrBadValue = errkind.Data("dataio: malformed value")
)
