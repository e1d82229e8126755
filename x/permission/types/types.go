package types

import (
	"fmt"

	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/x/permission/exported"
)

// Scope decides whether the targets of a permission are allowed or excluded
type Scope int

// valid scopes
const (
	Whitelist Scope = iota
	Blacklist
)

// String returns the name of the scope
func (s Scope) String() string {
	switch s {
	case Whitelist:
		return "whitelist"
	case Blacklist:
		return "blacklist"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ValidateBasic returns an error if the scope is unknown
func (s Scope) ValidateBasic() error {
	if s != Whitelist && s != Blacklist {
		return fmt.Errorf("unknown scope %d", int(s))
	}

	return nil
}

// Permission is a named set of call targets
type Permission struct {
	ID          exported.PermissionID `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Targets     []exported.Target     `json:"targets"`
	Scope       Scope                 `json:"scope"`
}

// ValidateBasic returns an error if the permission is malformed
func (m Permission) ValidateBasic() error {
	if err := utils.ValidateName(m.Name); err != nil {
		return err
	}

	if err := utils.ValidateDescription(m.Description); err != nil {
		return err
	}

	if err := m.Scope.ValidateBasic(); err != nil {
		return err
	}

	seen := make(map[exported.Target]bool, len(m.Targets))
	for _, target := range m.Targets {
		if err := target.ValidateBasic(); err != nil {
			return fmt.Errorf("invalid target %s: %w", target, err)
		}

		if seen[target] {
			return fmt.Errorf("duplicate target %s", target)
		}
		seen[target] = true
	}

	return nil
}

// HasTarget returns true if the target is part of the permission, regardless of its scope
func (m Permission) HasTarget(target exported.Target) bool {
	for _, t := range m.Targets {
		if t == target {
			return true
		}
	}

	return false
}

// IsTarget decides whether the permission grants calling the given endpoint.
// A nil endpoint stands for the empty program. Blacklist permissions grant everything they do not list.
func (m Permission) IsTarget(endpoint *exported.Endpoint) bool {
	var listed bool
	if endpoint == nil {
		listed = m.HasTarget(exported.SelfEmptyProgram())
	} else {
		listed = m.HasTarget(exported.EndpointTarget(*endpoint)) || m.HasTarget(exported.Canister(endpoint.CanisterID))
	}

	return listed != (m.Scope == Blacklist)
}

// IsProgramAllowed returns true if the permission grants every call of the program
func (m Permission) IsProgramAllowed(program exported.Program) bool {
	if program.IsEmpty() {
		return m.IsTarget(nil)
	}

	for _, call := range program.Calls {
		endpoint := call.Endpoint
		if !m.IsTarget(&endpoint) {
			return false
		}
	}

	return true
}
