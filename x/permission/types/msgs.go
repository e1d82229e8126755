package types

import (
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/x/permission/exported"
)

// CreatePermissionRequest creates a permission
type CreatePermissionRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Targets     []exported.Target `json:"targets"`
	Scope       Scope             `json:"scope"`
}

// CreatePermissionResponse returns the id of the created permission
type CreatePermissionResponse struct {
	ID exported.PermissionID `json:"id"`
}

// Route returns the endpoint method name
func (m CreatePermissionRequest) Route() string { return "create_permission" }

// ValidateBasic executes a stateless message validation
func (m CreatePermissionRequest) ValidateBasic() error {
	return Permission{
		Name:        utils.NormalizeString(m.Name),
		Description: utils.NormalizeString(m.Description),
		Targets:     m.Targets,
		Scope:       m.Scope,
	}.ValidateBasic()
}

// UpdatePermissionRequest replaces name, description, targets and scope of a permission
type UpdatePermissionRequest struct {
	ID          exported.PermissionID `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Targets     []exported.Target     `json:"targets"`
	Scope       Scope                 `json:"scope"`
}

// Route returns the endpoint method name
func (m UpdatePermissionRequest) Route() string { return "update_permission" }

// ValidateBasic executes a stateless message validation
func (m UpdatePermissionRequest) ValidateBasic() error {
	return Permission{
		ID:          m.ID,
		Name:        utils.NormalizeString(m.Name),
		Description: utils.NormalizeString(m.Description),
		Targets:     m.Targets,
		Scope:       m.Scope,
	}.ValidateBasic()
}

// DeletePermissionRequest deletes an unused permission
type DeletePermissionRequest struct {
	ID exported.PermissionID `json:"id"`
}

// Route returns the endpoint method name
func (m DeletePermissionRequest) Route() string { return "delete_permission" }

// ValidateBasic executes a stateless message validation
func (m DeletePermissionRequest) ValidateBasic() error {
	return nil
}
