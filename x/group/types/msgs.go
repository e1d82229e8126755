package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/x/group/exported"
)

// CreateGroupRequest creates a new group
type CreateGroupRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Acceptable   bool   `json:"acceptable"`
	Transferable bool   `json:"transferable"`
}

// CreateGroupResponse returns the id of the created group
type CreateGroupResponse struct {
	ID exported.GroupID `json:"id"`
}

// Route returns the endpoint method name
func (m CreateGroupRequest) Route() string { return "create_group" }

// ValidateBasic executes a stateless message validation
func (m CreateGroupRequest) ValidateBasic() error {
	return validateNameAndDescription(m.Name, m.Description)
}

// UpdateGroupRequest changes name and description of a group
type UpdateGroupRequest struct {
	ID          exported.GroupID `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
}

// Route returns the endpoint method name
func (m UpdateGroupRequest) Route() string { return "update_group" }

// ValidateBasic executes a stateless message validation
func (m UpdateGroupRequest) ValidateBasic() error {
	return validateNameAndDescription(m.Name, m.Description)
}

// DeleteGroupRequest deletes a group
type DeleteGroupRequest struct {
	ID exported.GroupID `json:"id"`
}

// Route returns the endpoint method name
func (m DeleteGroupRequest) Route() string { return "delete_group" }

// ValidateBasic executes a stateless message validation
func (m DeleteGroupRequest) ValidateBasic() error {
	if m.ID == exported.HasProfileGroupID {
		return fmt.Errorf("the has-profile group cannot be deleted")
	}

	return nil
}

// MintSharesRequest issues shares of a group to the owner
type MintSharesRequest struct {
	GroupID exported.GroupID `json:"group_id"`
	Owner   union.Principal  `json:"owner"`
	Qty     sdkmath.Uint     `json:"qty"`
}

// Route returns the endpoint method name
func (m MintSharesRequest) Route() string { return "mint_shares" }

// ValidateBasic executes a stateless message validation
func (m MintSharesRequest) ValidateBasic() error {
	if m.GroupID == exported.HasProfileGroupID {
		return fmt.Errorf("shares of the has-profile group are issued by profile registration")
	}

	return validateOwnerAndQty(m.Owner, m.Qty)
}

// BurnSharesRequest destroys shares of a group held by the owner
type BurnSharesRequest struct {
	GroupID exported.GroupID `json:"group_id"`
	Owner   union.Principal  `json:"owner"`
	Qty     sdkmath.Uint     `json:"qty"`
}

// Route returns the endpoint method name
func (m BurnSharesRequest) Route() string { return "burn_shares" }

// ValidateBasic executes a stateless message validation
func (m BurnSharesRequest) ValidateBasic() error {
	if m.GroupID == exported.HasProfileGroupID {
		return fmt.Errorf("shares of the has-profile group are burned by profile deletion")
	}

	return validateOwnerAndQty(m.Owner, m.Qty)
}

// BurnUnacceptedSharesRequest destroys shares that the owner has not accepted yet
type BurnUnacceptedSharesRequest struct {
	GroupID exported.GroupID `json:"group_id"`
	Owner   union.Principal  `json:"owner"`
	Qty     sdkmath.Uint     `json:"qty"`
}

// Route returns the endpoint method name
func (m BurnUnacceptedSharesRequest) Route() string { return "burn_unaccepted_shares" }

// ValidateBasic executes a stateless message validation
func (m BurnUnacceptedSharesRequest) ValidateBasic() error {
	return validateOwnerAndQty(m.Owner, m.Qty)
}

// TransferSharesRequest moves shares from the caller to the recipient
type TransferSharesRequest struct {
	GroupID exported.GroupID `json:"group_id"`
	To      union.Principal  `json:"to"`
	Qty     sdkmath.Uint     `json:"qty"`
}

// Route returns the endpoint method name
func (m TransferSharesRequest) Route() string { return "transfer_shares" }

// ValidateBasic executes a stateless message validation
func (m TransferSharesRequest) ValidateBasic() error {
	return validateOwnerAndQty(m.To, m.Qty)
}

// AcceptSharesRequest accepts shares minted to the caller
type AcceptSharesRequest struct {
	GroupID exported.GroupID `json:"group_id"`
	Qty     sdkmath.Uint     `json:"qty"`
}

// Route returns the endpoint method name
func (m AcceptSharesRequest) Route() string { return "accept_shares" }

// ValidateBasic executes a stateless message validation
func (m AcceptSharesRequest) ValidateBasic() error {
	return validateQty(m.Qty)
}

// DeclineSharesRequest declines shares minted to the caller
type DeclineSharesRequest struct {
	GroupID exported.GroupID `json:"group_id"`
	Qty     sdkmath.Uint     `json:"qty"`
}

// Route returns the endpoint method name
func (m DeclineSharesRequest) Route() string { return "decline_shares" }

// ValidateBasic executes a stateless message validation
func (m DeclineSharesRequest) ValidateBasic() error {
	return validateQty(m.Qty)
}

// SetAcceptableRequest switches whether shares of a group have to be accepted
type SetAcceptableRequest struct {
	GroupID    exported.GroupID `json:"group_id"`
	Acceptable bool             `json:"acceptable"`
}

// Route returns the endpoint method name
func (m SetAcceptableRequest) Route() string { return "set_group_acceptable" }

// ValidateBasic executes a stateless message validation
func (m SetAcceptableRequest) ValidateBasic() error {
	if m.GroupID == exported.HasProfileGroupID {
		return fmt.Errorf("the has-profile group cannot become acceptable")
	}

	return nil
}

// RegisterProfileRequest registers a profile for the caller
type RegisterProfileRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Route returns the endpoint method name
func (m RegisterProfileRequest) Route() string { return "register_profile" }

// ValidateBasic executes a stateless message validation
func (m RegisterProfileRequest) ValidateBasic() error {
	return validateNameAndDescription(m.Name, m.Description)
}

// UpdateProfileRequest updates the profile of the caller
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Route returns the endpoint method name
func (m UpdateProfileRequest) Route() string { return "update_profile" }

// ValidateBasic executes a stateless message validation
func (m UpdateProfileRequest) ValidateBasic() error {
	return validateNameAndDescription(m.Name, m.Description)
}

// DeleteProfileRequest deletes the profile of the given principal
type DeleteProfileRequest struct {
	ID union.Principal `json:"id"`
}

// Route returns the endpoint method name
func (m DeleteProfileRequest) Route() string { return "delete_profile" }

// ValidateBasic executes a stateless message validation
func (m DeleteProfileRequest) ValidateBasic() error {
	return m.ID.ValidateBasic()
}

func validateNameAndDescription(name, description string) error {
	if err := utils.ValidateName(utils.NormalizeString(name)); err != nil {
		return err
	}

	return utils.ValidateDescription(utils.NormalizeString(description))
}

func validateOwnerAndQty(owner union.Principal, qty sdkmath.Uint) error {
	if err := owner.ValidateBasic(); err != nil {
		return err
	}

	return validateQty(qty)
}

func validateQty(qty sdkmath.Uint) error {
	if qty.IsNil() || qty.IsZero() {
		return fmt.Errorf("quantity must be positive")
	}

	return nil
}
