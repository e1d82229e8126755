package exported

import (
	"strconv"
)

// NestedVotingConfigID uniquely identifies a nested voting config
type NestedVotingConfigID uint64

// String returns the decimal representation of the id
func (id NestedVotingConfigID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// NestedVotingID uniquely identifies a nested voting
type NestedVotingID uint64

// String returns the decimal representation of the id
func (id NestedVotingID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// VoteCalculation selects the denominator of a group's vote fraction
type VoteCalculation int

// vote calculations
const (
	// Total divides by the group's total voting power
	Total VoteCalculation = iota
	// Turnout divides by the shares the group's members actually voted with
	Turnout
)

// String returns the name of the vote calculation
func (c VoteCalculation) String() string {
	switch c {
	case Total:
		return "total"
	case Turnout:
		return "turnout"
	default:
		return "unknown"
	}
}
