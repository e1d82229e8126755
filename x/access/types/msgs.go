package types

import (
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/x/access/exported"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
)

// CreateAccessConfigRequest creates an access config
type CreateAccessConfigRequest struct {
	Name        string                            `json:"name"`
	Description string                            `json:"description"`
	Permissions []permissionexported.PermissionID `json:"permissions"`
	Allowees    []exported.Allowee                `json:"allowees"`
}

// CreateAccessConfigResponse returns the id of the created access config
type CreateAccessConfigResponse struct {
	ID exported.AccessConfigID `json:"id"`
}

// Route returns the endpoint method name
func (m CreateAccessConfigRequest) Route() string { return "create_access_config" }

// ValidateBasic executes a stateless message validation
func (m CreateAccessConfigRequest) ValidateBasic() error {
	return AccessConfig{
		Name:        utils.NormalizeString(m.Name),
		Description: utils.NormalizeString(m.Description),
		Permissions: m.Permissions,
		Allowees:    m.Allowees,
	}.ValidateBasic()
}

// UpdateAccessConfigRequest replaces an access config
type UpdateAccessConfigRequest struct {
	ID          exported.AccessConfigID           `json:"id"`
	Name        string                            `json:"name"`
	Description string                            `json:"description"`
	Permissions []permissionexported.PermissionID `json:"permissions"`
	Allowees    []exported.Allowee                `json:"allowees"`
}

// Route returns the endpoint method name
func (m UpdateAccessConfigRequest) Route() string { return "update_access_config" }

// ValidateBasic executes a stateless message validation
func (m UpdateAccessConfigRequest) ValidateBasic() error {
	return AccessConfig{
		ID:          m.ID,
		Name:        utils.NormalizeString(m.Name),
		Description: utils.NormalizeString(m.Description),
		Permissions: m.Permissions,
		Allowees:    m.Allowees,
	}.ValidateBasic()
}

// DeleteAccessConfigRequest deletes an access config
type DeleteAccessConfigRequest struct {
	ID exported.AccessConfigID `json:"id"`
}

// Route returns the endpoint method name
func (m DeleteAccessConfigRequest) Route() string { return "delete_access_config" }

// ValidateBasic executes a stateless message validation
func (m DeleteAccessConfigRequest) ValidateBasic() error {
	return nil
}
