package exported

import (
	"fmt"
	"strconv"
)

// VotingConfigID uniquely identifies a voting config
type VotingConfigID uint64

// String returns the decimal representation of the id
func (id VotingConfigID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// VotingID uniquely identifies a voting
type VotingID uint64

// String returns the decimal representation of the id
func (id VotingID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ChoiceID uniquely identifies a choice
type ChoiceID uint64

// String returns the decimal representation of the id
func (id ChoiceID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// StatusKind enumerates the phases of a voting
type StatusKind int

// status kinds
const (
	Created StatusKind = iota
	Rejected
	PreRound
	Round
	Success
	Fail
)

var statusKindNames = map[StatusKind]string{
	Created:  "created",
	Rejected: "rejected",
	PreRound: "pre_round",
	Round:    "round",
	Success:  "success",
	Fail:     "fail",
}

// String returns the name of the status kind
func (k StatusKind) String() string {
	if name, ok := statusKindNames[k]; ok {
		return name
	}

	return "unknown"
}

// Status is the phase a voting is in. Round is set for PreRound and Round, Reason for Fail.
type Status struct {
	Kind   StatusKind `json:"kind"`
	Round  uint32     `json:"round,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

// StatusCreated returns the initial status
func StatusCreated() Status { return Status{Kind: Created} }

// StatusRejected returns the rejected status
func StatusRejected() Status { return Status{Kind: Rejected} }

// StatusPreRound returns the status before the given round starts
func StatusPreRound(round uint32) Status { return Status{Kind: PreRound, Round: round} }

// StatusRound returns the status of the given running round
func StatusRound(round uint32) Status { return Status{Kind: Round, Round: round} }

// StatusSuccess returns the success status
func StatusSuccess() Status { return Status{Kind: Success} }

// StatusFail returns the failed status with the given reason
func StatusFail(reason string) Status { return Status{Kind: Fail, Reason: reason} }

// Is returns true if the status is of the given kind
func (s Status) Is(kind StatusKind) bool {
	return s.Kind == kind
}

// IsRound returns true if the given round is running
func (s Status) IsRound(round uint32) bool {
	return s.Kind == Round && s.Round == round
}

// IsPreRound returns true if the voting waits for the given round to start
func (s Status) IsPreRound(round uint32) bool {
	return s.Kind == PreRound && s.Round == round
}

// IsTerminal returns true if the voting cannot change anymore
func (s Status) IsTerminal() bool {
	return s.Kind == Rejected || s.Kind == Success || s.Kind == Fail
}

// String returns a human readable status
func (s Status) String() string {
	switch s.Kind {
	case PreRound, Round:
		return fmt.Sprintf("%s(%d)", s.Kind, s.Round)
	case Fail:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Reason)
	default:
		return s.Kind.String()
	}
}

// VotingKind distinguishes common votings from nested votings
type VotingKind int

// voting kinds
const (
	Common VotingKind = iota
	Nested
)

// String returns the name of the voting kind
func (k VotingKind) String() string {
	switch k {
	case Common:
		return "common"
	case Nested:
		return "nested"
	default:
		return "unknown"
	}
}

// VotingRef references a common or a nested voting of a union
type VotingRef struct {
	Kind VotingKind `json:"kind"`
	ID   uint64     `json:"id"`
}

// CommonVoting references a common voting
func CommonVoting(id VotingID) VotingRef {
	return VotingRef{Kind: Common, ID: uint64(id)}
}

// NestedVoting references a nested voting
func NestedVoting(id uint64) VotingRef {
	return VotingRef{Kind: Nested, ID: id}
}

// String returns the reference as <kind>/<id>
func (r VotingRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// VotingConfigRef references a common or a nested voting config of a union
type VotingConfigRef struct {
	Kind VotingKind `json:"kind"`
	ID   uint64     `json:"id"`
}

// CommonVotingConfig references a common voting config
func CommonVotingConfig(id VotingConfigID) VotingConfigRef {
	return VotingConfigRef{Kind: Common, ID: uint64(id)}
}

// NestedVotingConfig references a nested voting config
func NestedVotingConfig(id uint64) VotingConfigRef {
	return VotingConfigRef{Kind: Nested, ID: id}
}

// String returns the reference as <kind>/<id>
func (r VotingConfigRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}
