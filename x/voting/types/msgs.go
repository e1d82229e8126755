package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/uniongov/union-core/utils"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	sharesexported "github.com/uniongov/union-core/x/shares/exported"
	"github.com/uniongov/union-core/x/voting/exported"
)

// CreateVotingConfigRequest creates a voting config. The id of the given config is ignored.
type CreateVotingConfigRequest struct {
	Config VotingConfig `json:"config"`
}

// CreateVotingConfigResponse returns the id of the created voting config
type CreateVotingConfigResponse struct {
	ID exported.VotingConfigID `json:"id"`
}

// Route returns the endpoint method name
func (m CreateVotingConfigRequest) Route() string { return "create_voting_config" }

// ValidateBasic executes a stateless message validation
func (m CreateVotingConfigRequest) ValidateBasic() error {
	return m.Config.ValidateBasic()
}

// UpdateVotingConfigRequest replaces the voting config with the same id
type UpdateVotingConfigRequest struct {
	Config VotingConfig `json:"config"`
}

// Route returns the endpoint method name
func (m UpdateVotingConfigRequest) Route() string { return "update_voting_config" }

// ValidateBasic executes a stateless message validation
func (m UpdateVotingConfigRequest) ValidateBasic() error {
	return m.Config.ValidateBasic()
}

// DeleteVotingConfigRequest deletes a voting config
type DeleteVotingConfigRequest struct {
	ID exported.VotingConfigID `json:"id"`
}

// Route returns the endpoint method name
func (m DeleteVotingConfigRequest) Route() string { return "delete_voting_config" }

// ValidateBasic executes a stateless message validation
func (m DeleteVotingConfigRequest) ValidateBasic() error {
	return nil
}

// CreateVotingRequest proposes a new voting
type CreateVotingRequest struct {
	VotingConfigID exported.VotingConfigID `json:"voting_config_id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description"`
	WinnersNeed    uint32                  `json:"winners_need"`
}

// CreateVotingResponse returns the id of the created voting
type CreateVotingResponse struct {
	ID exported.VotingID `json:"id"`
}

// Route returns the endpoint method name
func (m CreateVotingRequest) Route() string { return "create_voting" }

// ValidateBasic executes a stateless message validation
func (m CreateVotingRequest) ValidateBasic() error {
	if m.WinnersNeed == 0 {
		return fmt.Errorf("at least one winner must be needed")
	}

	return validateNameAndDescription(m.Name, m.Description)
}

// CreateChoiceRequest adds a choice to a voting that has not been approved yet
type CreateChoiceRequest struct {
	VotingID    exported.VotingID          `json:"voting_id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Program     permissionexported.Program `json:"program"`
}

// CreateChoiceResponse returns the id of the created choice
type CreateChoiceResponse struct {
	ID exported.ChoiceID `json:"id"`
}

// Route returns the endpoint method name
func (m CreateChoiceRequest) Route() string { return "create_voting_choice" }

// ValidateBasic executes a stateless message validation
func (m CreateChoiceRequest) ValidateBasic() error {
	if err := m.Program.ValidateBasic(); err != nil {
		return err
	}

	return validateNameAndDescription(m.Name, m.Description)
}

// UpdateChoiceRequest changes a choice of a voting that has not been approved yet
type UpdateChoiceRequest struct {
	ID          exported.ChoiceID          `json:"id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Program     permissionexported.Program `json:"program"`
}

// Route returns the endpoint method name
func (m UpdateChoiceRequest) Route() string { return "update_voting_choice" }

// ValidateBasic executes a stateless message validation
func (m UpdateChoiceRequest) ValidateBasic() error {
	if err := m.Program.ValidateBasic(); err != nil {
		return err
	}

	return validateNameAndDescription(m.Name, m.Description)
}

// DeleteChoiceRequest removes a choice from a voting that has not been approved yet
type DeleteChoiceRequest struct {
	ID exported.ChoiceID `json:"id"`
}

// Route returns the endpoint method name
func (m DeleteChoiceRequest) Route() string { return "delete_voting_choice" }

// ValidateBasic executes a stateless message validation
func (m DeleteChoiceRequest) ValidateBasic() error {
	return nil
}

// CastVoteRequest replaces the caller's allocation in a voting
type CastVoteRequest struct {
	VotingID   exported.VotingID                       `json:"voting_id"`
	SharesInfo sharesexported.SharesInfo               `json:"shares_info"`
	Votes      map[exported.ChoiceID]sdkmath.LegacyDec `json:"votes"`
}

// Route returns the endpoint method name
func (m CastVoteRequest) Route() string { return "cast_my_vote" }

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

// ApproveRequest re-evaluates the approval threshold of a created voting
type ApproveRequest struct {
	VotingID exported.VotingID `json:"voting_id"`
}

// Route returns the endpoint method name
func (m ApproveRequest) Route() string { return "approve_voting" }

// ValidateBasic executes a stateless message validation
func (m ApproveRequest) ValidateBasic() error {
	return nil
}

// RejectRequest re-evaluates the rejection threshold of a voting
type RejectRequest struct {
	VotingID exported.VotingID `json:"voting_id"`
}

// Route returns the endpoint method name
func (m RejectRequest) Route() string { return "reject_voting" }

// ValidateBasic executes a stateless message validation
func (m RejectRequest) ValidateBasic() error {
	return nil
}

func validateNameAndDescription(name, description string) error {
	if err := utils.ValidateName(utils.NormalizeString(name)); err != nil {
		return err
	}

	return utils.ValidateDescription(utils.NormalizeString(description))
}
