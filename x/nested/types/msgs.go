package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/x/nested/exported"
	sharesexported "github.com/uniongov/union-core/x/shares/exported"
	votingexported "github.com/uniongov/union-core/x/voting/exported"
)

// CreateNestedVotingConfigRequest creates a nested voting config. The id of the given config is ignored.
type CreateNestedVotingConfigRequest struct {
	Config NestedVotingConfig `json:"config"`
}

// CreateNestedVotingConfigResponse returns the id of the created nested voting config
type CreateNestedVotingConfigResponse struct {
	ID exported.NestedVotingConfigID `json:"id"`
}

// Route returns the endpoint method name
func (m CreateNestedVotingConfigRequest) Route() string { return "create_nested_voting_config" }

// ValidateBasic executes a stateless message validation
func (m CreateNestedVotingConfigRequest) ValidateBasic() error {
	return m.Config.ValidateBasic()
}

// UpdateNestedVotingConfigRequest replaces the nested voting config with the same id
type UpdateNestedVotingConfigRequest struct {
	Config NestedVotingConfig `json:"config"`
}

// Route returns the endpoint method name
func (m UpdateNestedVotingConfigRequest) Route() string { return "update_nested_voting_config" }

// ValidateBasic executes a stateless message validation
func (m UpdateNestedVotingConfigRequest) ValidateBasic() error {
	return m.Config.ValidateBasic()
}

// DeleteNestedVotingConfigRequest deletes a nested voting config
type DeleteNestedVotingConfigRequest struct {
	ID exported.NestedVotingConfigID `json:"id"`
}

// Route returns the endpoint method name
func (m DeleteNestedVotingConfigRequest) Route() string { return "delete_nested_voting_config" }

// ValidateBasic executes a stateless message validation
func (m DeleteNestedVotingConfigRequest) ValidateBasic() error {
	return nil
}

// CreateNestedVotingRequest starts proxying a voting of the remote union named by the config
type CreateNestedVotingRequest struct {
	VotingConfigID exported.NestedVotingConfigID `json:"voting_config_id"`
	RemoteVotingID votingexported.VotingRef      `json:"remote_voting_id"`
}

// CreateNestedVotingResponse returns the id of the created nested voting
type CreateNestedVotingResponse struct {
	ID exported.NestedVotingID `json:"id"`
}

// Route returns the endpoint method name
func (m CreateNestedVotingRequest) Route() string { return "create_nested_voting" }

// ValidateBasic executes a stateless message validation
func (m CreateNestedVotingRequest) ValidateBasic() error {
	switch m.RemoteVotingID.Kind {
	case votingexported.Common, votingexported.Nested:
		return nil
	default:
		return fmt.Errorf("unknown voting kind %d", m.RemoteVotingID.Kind)
	}
}

// CastVoteRequest replaces the caller's allocation in a nested voting
type CastVoteRequest struct {
	NestedVotingID exported.NestedVotingID                       `json:"nested_voting_id"`
	SharesInfo     sharesexported.SharesInfo                     `json:"shares_info"`
	Votes          map[votingexported.ChoiceID]sdkmath.LegacyDec `json:"votes"`
}

// Route returns the endpoint method name
func (m CastVoteRequest) Route() string { return "cast_my_nested_vote" }

// ValidateBasic executes a stateless message validation
func (m CastVoteRequest) ValidateBasic() error {
	if err := m.SharesInfo.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid shares info: %w", err)
	}

	for id, fraction := range m.Votes {
		if err := utils.ValidateFraction(fraction); err != nil {
			return fmt.Errorf("invalid vote for choice %s: %w", id, err)
		}
	}

	return nil
}
