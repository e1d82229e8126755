package types

import (
	"fmt"
	"slices"
	"time"

	"github.com/uniongov/union-core/utils"
	accessexported "github.com/uniongov/union-core/x/access/exported"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	thresholdexported "github.com/uniongov/union-core/x/threshold/exported"
	"github.com/uniongov/union-core/x/voting/exported"
)

// Bounds is an inclusive range of counts
type Bounds struct {
	Min uint32 `json:"min"`
	Max uint32 `json:"max"`
}

// ValidateBasic returns an error if the bounds are empty
func (b Bounds) ValidateBasic() error {
	if b.Min > b.Max {
		return fmt.Errorf("lower bound %d exceeds upper bound %d", b.Min, b.Max)
	}

	return nil
}

// Contains returns true if n is within the bounds
func (b Bounds) Contains(n uint32) bool {
	return n >= b.Min && n <= b.Max
}

// RoundSettings define the timing of voting rounds. MaxRounds of zero means unlimited.
type RoundSettings struct {
	Delay     time.Duration `json:"delay"`
	Duration  time.Duration `json:"duration"`
	MaxRounds uint32        `json:"max_rounds"`
}

// ValidateBasic returns an error if the round settings are malformed
func (m RoundSettings) ValidateBasic() error {
	if m.Delay < 0 {
		return fmt.Errorf("round delay must not be negative")
	}

	if m.Duration <= 0 {
		return fmt.Errorf("round duration must be positive")
	}

	return nil
}

// VotingConfig is the template every voting is created from
type VotingConfig struct {
	ID                  exported.VotingConfigID           `json:"id"`
	Name                string                            `json:"name"`
	Description         string                            `json:"description"`
	ChoicesCountBounds  *Bounds                           `json:"choices_count_bounds,omitempty"`
	WinnersCountBounds  *Bounds                           `json:"winners_count_bounds,omitempty"`
	Permissions         []permissionexported.PermissionID `json:"permissions"`
	ProposerConstraints []accessexported.Allowee          `json:"proposer_constraints"`
	EditorConstraints   []accessexported.Allowee          `json:"editor_constraints"`
	RoundSettings       RoundSettings                     `json:"round_settings"`
	Approval            thresholdexported.Value           `json:"approval"`
	Quorum              thresholdexported.Value           `json:"quorum"`
	Rejection           thresholdexported.Value           `json:"rejection"`
	Win                 thresholdexported.Value           `json:"win"`
	NextRound           thresholdexported.Value           `json:"next_round"`
}

// ValidateBasic returns an error if the voting config is malformed
func (m VotingConfig) ValidateBasic() error {
	if err := utils.ValidateName(m.Name); err != nil {
		return err
	}

	if err := utils.ValidateDescription(m.Description); err != nil {
		return err
	}

	if m.ChoicesCountBounds != nil {
		if err := m.ChoicesCountBounds.ValidateBasic(); err != nil {
			return fmt.Errorf("invalid choices count bounds: %w", err)
		}
	}

	if m.WinnersCountBounds != nil {
		if err := m.WinnersCountBounds.ValidateBasic(); err != nil {
			return fmt.Errorf("invalid winners count bounds: %w", err)
		}
	}

	if m.WinnersCountBounds != nil && m.WinnersCountBounds.Min == 0 {
		return fmt.Errorf("at least one winner must be needed")
	}

	if len(m.ProposerConstraints) == 0 {
		return fmt.Errorf("proposer constraints must not be empty")
	}

	for _, allowee := range slices.Concat(m.ProposerConstraints, m.EditorConstraints) {
		if err := allowee.ValidateBasic(); err != nil {
			return fmt.Errorf("invalid allowee: %w", err)
		}
	}

	if err := m.RoundSettings.ValidateBasic(); err != nil {
		return err
	}

	names := []string{"approval", "quorum", "rejection", "win", "next round"}
	for i, threshold := range m.thresholds() {
		if err := threshold.ValidateBasic(); err != nil {
			return fmt.Errorf("invalid %s threshold: %w", names[i], err)
		}
	}

	return nil
}

// ListGroupsAndProfiles returns every group and profile any of the thresholds refers to, without duplicates
func (m VotingConfig) ListGroupsAndProfiles() []groupexported.GroupOrProfile {
	var result []groupexported.GroupOrProfile
	for _, threshold := range m.thresholds() {
		for _, gop := range threshold.ListGroupsAndProfiles() {
			if !slices.Contains(result, gop) {
				result = append(result, gop)
			}
		}
	}

	return result
}

// ListGroups returns the groups whose members can vote. Profiles vote with their has-profile share.
func (m VotingConfig) ListGroups() []groupexported.GroupID {
	var groups []groupexported.GroupID
	for _, gop := range m.ListGroupsAndProfiles() {
		id := groupexported.HasProfileGroupID
		if gop.IsGroup() {
			id = gop.GroupID
		}

		if !slices.Contains(groups, id) {
			groups = append(groups, id)
		}
	}

	slices.Sort(groups)

	return groups
}

// HasPermission returns true if the config references the permission
func (m VotingConfig) HasPermission(id permissionexported.PermissionID) bool {
	return slices.Contains(m.Permissions, id)
}

func (m VotingConfig) thresholds() []thresholdexported.Value {
	return []thresholdexported.Value{m.Approval, m.Quorum, m.Rejection, m.Win, m.NextRound}
}
