package types

import (
	"fmt"

	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/x/access/exported"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
)

// AccessConfig grants the programs of its permissions to its allowees
type AccessConfig struct {
	ID          exported.AccessConfigID           `json:"id"`
	Name        string                            `json:"name"`
	Description string                            `json:"description"`
	Permissions []permissionexported.PermissionID `json:"permissions"`
	Allowees    []exported.Allowee                `json:"allowees"`
}

// ValidateBasic returns an error if the access config is malformed
func (m AccessConfig) ValidateBasic() error {
	if err := utils.ValidateName(m.Name); err != nil {
		return err
	}

	if err := utils.ValidateDescription(m.Description); err != nil {
		return err
	}

	seen := make(map[permissionexported.PermissionID]bool, len(m.Permissions))
	for _, id := range m.Permissions {
		if seen[id] {
			return fmt.Errorf("duplicate permission %s", id)
		}
		seen[id] = true
	}

	for _, allowee := range m.Allowees {
		if err := allowee.ValidateBasic(); err != nil {
			return fmt.Errorf("invalid allowee: %w", err)
		}
	}

	return nil
}

// HasPermission returns true if the config references the permission
func (m AccessConfig) HasPermission(id permissionexported.PermissionID) bool {
	for _, p := range m.Permissions {
		if p == id {
			return true
		}
	}

	return false
}
