// SPDX-License-Identifier: MIT

package travel

import "github.com/KerryPearn/routino-gm-scenarios/errkind"

// Sentinel errors.
var (
	// ErrNoLocations indicates an empty location universe.
	ErrNoLocations = errkind.Configuration("travel: empty location universe")

	// ErrNoPoints indicates a matrix without demand points.
	ErrNoPoints = errkind.Data("travel: no demand points")

	// ErrDuplicateID indicates a repeated demand point or location identifier.
	ErrDuplicateID = errkind.Data("travel: duplicate identifier")

	// ErrShape indicates identifiers, costs and activity disagree in size.
	ErrShape = errkind.Data("travel: shape mismatch between identifiers, costs and activity")

	// ErrBadCost indicates a negative or −Inf travel cost.
	ErrBadCost = errkind.Data("travel: travel cost must be >= 0, NaN or +Inf")

	// ErrBadActivity indicates a negative or non-finite activity weight.
	ErrBadActivity = errkind.Data("travel: activity must be finite and >= 0")

	// ErrEmptyJoin indicates the cost table and the weights share no demand point.
	ErrEmptyJoin = errkind.Data("travel: cost table and activity weights share no identifiers")
)
