package types

import (
	"fmt"
	"slices"
	"time"

	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	tokenexported "github.com/uniongov/union-core/x/token/exported"
	"github.com/uniongov/union-core/x/voting/exported"
)

// Voting is a multi-round, multi-choice decision
type Voting struct {
	ID                exported.VotingID                             `json:"id"`
	VotingConfigID    exported.VotingConfigID                       `json:"voting_config_id"`
	Name              string                                        `json:"name"`
	Description       string                                        `json:"description"`
	Proposer          union.Principal                               `json:"proposer"`
	CreatedAt         time.Time                                     `json:"created_at"`
	Status            exported.Status                               `json:"status"`
	WinnersNeed       uint32                                        `json:"winners_need"`
	Groups            []groupexported.GroupID                       `json:"groups"`
	TotalVotingPower  map[groupexported.GroupOrProfile]sdkmath.Uint `json:"total_voting_power"`
	Choices           []exported.ChoiceID                           `json:"choices"`
	Winners           []exported.ChoiceID                           `json:"winners"`
	Losers            []exported.ChoiceID                           `json:"losers"`
	RejectionChoiceID exported.ChoiceID                             `json:"rejection_choice_id"`
	ApprovalChoiceID  exported.ChoiceID                             `json:"approval_choice_id"`
	ScheduledTask     *ScheduledTask                                `json:"scheduled_task,omitempty"`
	ExecutionResults  []ExecutionResult                             `json:"execution_results,omitempty"`
}

// ValidateBasic returns an error if the voting is malformed
func (m Voting) ValidateBasic() error {
	if err := utils.ValidateName(m.Name); err != nil {
		return err
	}

	if err := utils.ValidateDescription(m.Description); err != nil {
		return err
	}

	if m.WinnersNeed == 0 {
		return fmt.Errorf("at least one winner must be needed")
	}

	return nil
}

// IsActive returns true if the choice still competes
func (m Voting) IsActive(id exported.ChoiceID) bool {
	return slices.Contains(m.Choices, id)
}

// HasGroup returns true if members of the group can vote
func (m Voting) HasGroup(id groupexported.GroupID) bool {
	return slices.Contains(m.Groups, id)
}

// AllChoices returns the ids of every choice owned by the voting, including approval and rejection
func (m Voting) AllChoices() []exported.ChoiceID {
	all := []exported.ChoiceID{m.ApprovalChoiceID, m.RejectionChoiceID}
	all = append(all, m.Choices...)
	all = append(all, m.Winners...)

	return append(all, m.Losers...)
}

// Choice is one selectable outcome of a voting
type Choice struct {
	ID                 exported.ChoiceID                               `json:"id"`
	VotingID           exported.VotingID                               `json:"voting_id"`
	Name               string                                          `json:"name"`
	Description        string                                          `json:"description"`
	Program            permissionexported.Program                      `json:"program"`
	VotingPowerByGroup map[groupexported.GroupID]tokenexported.TokenID `json:"voting_power_by_group"`
}

// ValidateBasic returns an error if the choice is malformed
func (m Choice) ValidateBasic() error {
	if err := utils.ValidateName(m.Name); err != nil {
		return err
	}

	if err := utils.ValidateDescription(m.Description); err != nil {
		return err
	}

	return m.Program.ValidateBasic()
}

// TaskKind enumerates the timer driven transitions
type TaskKind int

// task kinds
const (
	RoundStart TaskKind = iota
	RoundEnd
)

// String returns the name of the task kind
func (k TaskKind) String() string {
	switch k {
	case RoundStart:
		return "round_start"
	case RoundEnd:
		return "round_end"
	default:
		return "unknown"
	}
}

// Task is a timer driven transition of a voting round
type Task struct {
	Kind     TaskKind          `json:"kind"`
	VotingID exported.VotingID `json:"voting_id"`
	Round    uint32            `json:"round"`
}

// String returns a human readable task
func (t Task) String() string {
	return fmt.Sprintf("%s(voting %s, round %d)", t.Kind, t.VotingID, t.Round)
}

// ScheduledTask is a task handed to the scheduler
type ScheduledTask struct {
	Handle uint64 `json:"handle"`
	Task   Task   `json:"task"`
}

// ExecutionResult records the outcome of executing a winning choice's program
type ExecutionResult struct {
	ChoiceID exported.ChoiceID `json:"choice_id"`
	Outputs  [][]byte          `json:"outputs"`
	Error    string            `json:"error,omitempty"`
}
