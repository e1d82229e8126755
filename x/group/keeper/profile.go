package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
	"github.com/uniongov/union-core/x/group/exported"
	"github.com/uniongov/union-core/x/group/types"
)

// RegisterProfile registers a profile for the principal and mints it one share of the has-profile group
func (k Keeper) RegisterProfile(ctx context.Context, id union.Principal, name, description string) error {
	if _, ok := k.GetProfile(ctx, id); ok {
		return errorsmod.Wrapf(types.ErrProfileExists, "principal %s", id)
	}

	profile := types.Profile{
		ID:          id,
		Name:        utils.NormalizeString(name),
		Description: utils.NormalizeString(description),
	}
	if err := profile.ValidateBasic(); err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	if err := k.Mint(ctx, exported.HasProfileGroupID, id, sdkmath.OneUint()); err != nil {
		return err
	}

	k.setProfile(profile)
	k.Logger().Info("registered profile", "profile", id, "name", profile.Name)

	return nil
}

// UpdateProfile changes the name and description of a profile
func (k Keeper) UpdateProfile(ctx context.Context, id union.Principal, name, description string) error {
	profile, ok := k.GetProfile(ctx, id)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "profile %s", id)
	}

	profile.Name = utils.NormalizeString(name)
	profile.Description = utils.NormalizeString(description)
	if err := profile.ValidateBasic(); err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	k.setProfile(profile)

	return nil
}

// DeleteProfile removes a profile and burns its has-profile share
func (k Keeper) DeleteProfile(ctx context.Context, id union.Principal) error {
	if _, ok := k.GetProfile(ctx, id); !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "profile %s", id)
	}

	if err := k.Burn(ctx, exported.HasProfileGroupID, id, sdkmath.OneUint()); err != nil {
		return err
	}

	k.store.Delete(profilePrefix.Append(key.FromBz([]byte(id))))
	k.Logger().Info("deleted profile", "profile", id)

	return nil
}

// GetProfile returns the profile of the given principal
func (k Keeper) GetProfile(_ context.Context, id union.Principal) (profile types.Profile, ok bool) {
	return profile, k.store.Get(profilePrefix.Append(key.FromBz([]byte(id))), &profile)
}

// HasProfile returns true if the principal registered a profile
func (k Keeper) HasProfile(_ context.Context, id union.Principal) bool {
	return k.store.Has(profilePrefix.Append(key.FromBz([]byte(id))))
}

// GetProfiles returns all registered profiles
func (k Keeper) GetProfiles(_ context.Context) []types.Profile {
	return utils.GetAll[types.Profile](k.store, profilePrefix)
}

func (k Keeper) setProfile(profile types.Profile) {
	k.store.Set(profilePrefix.Append(key.FromBz([]byte(profile.ID))), profile)
}
