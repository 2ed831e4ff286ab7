// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/prysmaticlabs/go-bitfield"
)

// Sentinel errors.
var (
	// ErrBadScenario indicates an empty member set or members that are not
	// strictly increasing indices within the universe.
	ErrBadScenario = errkind.Configuration("scenario: members must be a non-empty, strictly increasing set of location indices")

	// ErrBadThreshold indicates a non-finite or non-positive coverage threshold.
	ErrBadThreshold = errkind.Configuration("scenario: threshold must be finite and > 0")

	// ErrUniverseMismatch indicates a scenario built for a different universe size.
	ErrUniverseMismatch = errkind.Configuration("scenario: universe size mismatch")
)

// Scenario is one subset of the location universe.
//
// Members lists the open location indices in increasing (universe) order;
// Open is the same set as a bitlist of length M.
type Scenario struct {
	ID      int
	Members []int
	Open    bitfield.Bitlist
}

// New builds a Scenario over a universe of m locations, copying members.
//
// Errors: ErrBadScenario.
func New(id int, members []int, m int) (*Scenario, error) {
	s := Empty(m)
	if err := s.Load(id, members); err != nil {
		return nil, err
	}

	return s, nil
}

// Empty returns a Scenario over m locations with nothing open, ready to be
// filled by Load. Workers keep one and reload it per scenario.
func Empty(m int) *Scenario {
	return &Scenario{Open: bitfield.NewBitlist(uint64(m))}
}

// Load reuses s for another scenario of the same universe, avoiding
// allocation in the hot loop.
//
// Errors: ErrBadScenario; s is left unchanged on error.
// Complexity: O(|old members| + |members|).
func (s *Scenario) Load(id int, members []int) error {
	m := int(s.Open.Len())
	if len(members) == 0 {
		return fmt.Errorf("scenario %d: %w", id, ErrBadScenario)
	}
	prev := -1
	for _, c := range members {
		if c <= prev || c >= m {
			return fmt.Errorf("scenario %d: members %v with M=%d: %w", id, members, m, ErrBadScenario)
		}
		prev = c
	}

	for _, c := range s.Members {
		s.Open.SetBitAt(uint64(c), false)
	}
	s.ID = id
	s.Members = append(s.Members[:0], members...)
	for _, c := range s.Members {
		s.Open.SetBitAt(uint64(c), true)
	}

	return nil
}

// Universe returns M.
func (s *Scenario) Universe() int { return int(s.Open.Len()) }

// IsOpen reports whether location j is open.
func (s *Scenario) IsOpen(j int) bool { return s.Open.BitAt(uint64(j)) }

// Size returns the number of open locations.
func (s *Scenario) Size() int { return int(s.Open.Count()) }
