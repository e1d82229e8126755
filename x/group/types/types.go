package types

import (
	"fmt"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/x/group/exported"
	tokenexported "github.com/uniongov/union-core/x/token/exported"
)

// HasProfileGroupName is the name of the has-profile group
const HasProfileGroupName = "Has profile"

// Group is a named membership collection backed by one token
type Group struct {
	ID          exported.GroupID      `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	TokenID     tokenexported.TokenID `json:"token_id"`
}

// ValidateBasic returns an error if the group is malformed
func (m Group) ValidateBasic() error {
	if err := utils.ValidateName(m.Name); err != nil {
		return err
	}

	return utils.ValidateDescription(m.Description)
}

// Profile is the public identity of a principal within the union
type Profile struct {
	ID          union.Principal `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
}

// ValidateBasic returns an error if the profile is malformed
func (m Profile) ValidateBasic() error {
	if err := m.ID.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid profile id: %w", err)
	}

	if err := utils.ValidateName(m.Name); err != nil {
		return err
	}

	return utils.ValidateDescription(m.Description)
}
