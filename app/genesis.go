package app

import (
	"context"
	"fmt"
	"slices"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"golang.org/x/exp/maps"

	union "github.com/uniongov/union-core/types"
	accessExported "github.com/uniongov/union-core/x/access/exported"
	accessTypes "github.com/uniongov/union-core/x/access/types"
	groupExported "github.com/uniongov/union-core/x/group/exported"
	groupTypes "github.com/uniongov/union-core/x/group/types"
	nestedTypes "github.com/uniongov/union-core/x/nested/types"
	permissionExported "github.com/uniongov/union-core/x/permission/exported"
	permissionTypes "github.com/uniongov/union-core/x/permission/types"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

// GenesisGroup is a group created at genesis together with its initial members
type GenesisGroup struct {
	ID           groupExported.GroupID            `json:"id"`
	Name         string                           `json:"name"`
	Description  string                           `json:"description"`
	Acceptable   bool                             `json:"acceptable"`
	Transferable bool                             `json:"transferable"`
	Members      map[union.Principal]sdkmath.Uint `json:"members"`
}

// GenesisState is the initial state of a union. Ids must be sequential in creation order,
// group ids start at 1 because the has-profile group is always created first.
type GenesisState struct {
	Profiles            []groupTypes.Profile             `json:"profiles"`
	Groups              []GenesisGroup                   `json:"groups"`
	Permissions         []permissionTypes.Permission     `json:"permissions"`
	AccessConfigs       []accessTypes.AccessConfig       `json:"access_configs"`
	VotingConfigs       []votingTypes.VotingConfig       `json:"voting_configs"`
	NestedVotingConfigs []nestedTypes.NestedVotingConfig `json:"nested_voting_configs"`
}

// DefaultGenesisState returns a genesis that lets everyone call every endpoint of the union
func DefaultGenesisState(self union.Principal) GenesisState {
	return GenesisState{
		Permissions: []permissionTypes.Permission{{
			ID:          0,
			Name:        "unrestricted",
			Description: "every endpoint of this union",
			Targets:     []permissionExported.Target{permissionExported.Canister(self.String()), permissionExported.SelfEmptyProgram()},
			Scope:       permissionTypes.Whitelist,
		}},
		AccessConfigs: []accessTypes.AccessConfig{{
			ID:          0,
			Name:        "everyone",
			Description: "grants the unrestricted permission to every caller",
			Permissions: []permissionExported.PermissionID{0},
			Allowees:    []accessExported.Allowee{accessExported.Everyone()},
		}},
	}
}

// IsInitialized returns true if the genesis state has been imported
func (a *App) IsInitialized(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.group.HasGroup(ctx, groupExported.HasProfileGroupID)
}

// InitGenesis creates the has-profile group and everything the genesis state lists. It must run on an empty database.
func (a *App) InitGenesis(ctx context.Context, genesis GenesisState) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.group.HasGroup(ctx, groupExported.HasProfileGroupID) {
		return errorsmod.Wrap(ErrGenesis, "union is initialized already")
	}

	a.group.InitHasProfileGroup(ctx)

	for _, profile := range genesis.Profiles {
		if err := a.group.RegisterProfile(ctx, profile.ID, profile.Name, profile.Description); err != nil {
			return errorsmod.Wrapf(ErrGenesis, "profile %s: %s", profile.ID, err)
		}
	}

	for _, group := range genesis.Groups {
		if err := a.initGroup(ctx, group); err != nil {
			return errorsmod.Wrapf(ErrGenesis, "group %s: %s", group.ID, err)
		}
	}

	for _, permission := range genesis.Permissions {
		id, err := a.permission.CreatePermission(ctx, permission.Name, permission.Description, permission.Targets, permission.Scope)
		if err := expectID(permission.ID, id, err); err != nil {
			return errorsmod.Wrapf(ErrGenesis, "permission %s: %s", permission.ID, err)
		}
	}

	for _, config := range genesis.AccessConfigs {
		id, err := a.access.CreateAccessConfig(ctx, config.Name, config.Description, config.Permissions, config.Allowees)
		if err := expectID(config.ID, id, err); err != nil {
			return errorsmod.Wrapf(ErrGenesis, "access config %s: %s", config.ID, err)
		}
	}

	for _, config := range genesis.VotingConfigs {
		id, err := a.voting.CreateVotingConfig(ctx, config)
		if err := expectID(config.ID, id, err); err != nil {
			return errorsmod.Wrapf(ErrGenesis, "voting config %s: %s", config.ID, err)
		}
	}

	for _, config := range genesis.NestedVotingConfigs {
		id, err := a.nested.CreateNestedVotingConfig(ctx, config)
		if err := expectID(config.ID, id, err); err != nil {
			return errorsmod.Wrapf(ErrGenesis, "nested voting config %s: %s", config.ID, err)
		}
	}

	a.logger.Info("initialized genesis",
		"groups", len(genesis.Groups),
		"permissions", len(genesis.Permissions),
		"access_configs", len(genesis.AccessConfigs),
		"voting_configs", len(genesis.VotingConfigs),
		"nested_voting_configs", len(genesis.NestedVotingConfigs),
	)

	return nil
}

func (a *App) initGroup(ctx context.Context, group GenesisGroup) error {
	id, err := a.group.CreateGroup(ctx, group.Name, group.Description, group.Acceptable, group.Transferable)
	if err := expectID(group.ID, id, err); err != nil {
		return err
	}

	members := maps.Keys(group.Members)
	slices.Sort(members)

	for _, member := range members {
		if err := a.group.Mint(ctx, id, member, group.Members[member]); err != nil {
			return err
		}

		if group.Acceptable {
			if err := a.group.Accept(ctx, id, member, group.Members[member]); err != nil {
				return err
			}
		}
	}

	return nil
}

func expectID[T comparable](expected, actual T, err error) error {
	if err != nil {
		return err
	}

	if expected != actual {
		return fmt.Errorf("expected id %v, got %v", expected, actual)
	}

	return nil
}
