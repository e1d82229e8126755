package keeper

import (
	"context"
	"fmt"
	"slices"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"

	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	tokenexported "github.com/uniongov/union-core/x/token/exported"
	"github.com/uniongov/union-core/x/voting/exported"
	"github.com/uniongov/union-core/x/voting/types"
)

var (
	configPrefix = key.FromStr("config")
	votingPrefix = key.FromStr("voting")
	choicePrefix = key.FromStr("choice")

	counterPrefix    = key.FromStr("counter")
	configCounterKey = counterPrefix.Append(key.FromStr("config"))
	votingCounterKey = counterPrefix.Append(key.FromStr("voting"))
	choiceCounterKey = counterPrefix.Append(key.FromStr("choice"))
)

// Keeper runs the voting state machine
type Keeper struct {
	store       utils.KVStore
	tokens      types.TokenKeeper
	groups      types.GroupKeeper
	permissions types.PermissionKeeper
	scheduler   types.Scheduler
	executor    types.Executor
	publisher   types.Publisher
	clock       utils.Clock
	logger      log.Logger
}

// NewKeeper returns a new voting keeper
func NewKeeper(
	db dbm.DB,
	tokens types.TokenKeeper,
	groups types.GroupKeeper,
	permissions types.PermissionKeeper,
	scheduler types.Scheduler,
	executor types.Executor,
	publisher types.Publisher,
	clock utils.Clock,
	logger log.Logger,
) Keeper {
	return Keeper{
		store:       utils.NewKVStore(db, key.FromStr(types.StoreKey)),
		tokens:      tokens,
		groups:      groups,
		permissions: permissions,
		scheduler:   scheduler,
		executor:    executor,
		publisher:   publisher,
		clock:       clock,
		logger:      logger,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// CreateVotingConfig stores a new voting config. The id of the given config is ignored.
func (k Keeper) CreateVotingConfig(ctx context.Context, config types.VotingConfig) (exported.VotingConfigID, error) {
	counter := utils.NewCounter[exported.VotingConfigID](configCounterKey, k.store)

	config.ID = counter.Curr()
	config.Name = utils.NormalizeString(config.Name)
	config.Description = utils.NormalizeString(config.Description)
	if err := k.validateConfig(ctx, config); err != nil {
		return 0, err
	}

	counter.Incr()
	k.setVotingConfig(config)

	k.Logger().Info("created voting config", "voting_config", config.ID, "name", config.Name)

	return config.ID, nil
}

// UpdateVotingConfig replaces a voting config that no running voting uses
func (k Keeper) UpdateVotingConfig(ctx context.Context, config types.VotingConfig) error {
	if _, ok := k.GetVotingConfig(ctx, config.ID); !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "voting config %s", config.ID)
	}

	if k.isConfigInUse(ctx, config.ID) {
		return errorsmod.Wrapf(types.ErrInUse, "voting config %s is used by a running voting", config.ID)
	}

	config.Name = utils.NormalizeString(config.Name)
	config.Description = utils.NormalizeString(config.Description)
	if err := k.validateConfig(ctx, config); err != nil {
		return err
	}

	k.setVotingConfig(config)

	k.Logger().Info("updated voting config", "voting_config", config.ID)

	return nil
}

// DeleteVotingConfig removes a voting config that no running voting uses
func (k Keeper) DeleteVotingConfig(ctx context.Context, id exported.VotingConfigID) error {
	if _, ok := k.GetVotingConfig(ctx, id); !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "voting config %s", id)
	}

	if k.isConfigInUse(ctx, id) {
		return errorsmod.Wrapf(types.ErrInUse, "voting config %s is used by a running voting", id)
	}

	k.store.Delete(configPrefix.Append(key.FromUInt(id)))

	k.Logger().Info("deleted voting config", "voting_config", id)

	return nil
}

// GetVotingConfig returns the voting config with the given id
func (k Keeper) GetVotingConfig(_ context.Context, id exported.VotingConfigID) (config types.VotingConfig, ok bool) {
	return config, k.store.Get(configPrefix.Append(key.FromUInt(id)), &config)
}

// GetVotingConfigs returns all voting configs ordered by id
func (k Keeper) GetVotingConfigs(_ context.Context) []types.VotingConfig {
	return utils.GetAll[types.VotingConfig](k.store, configPrefix)
}

// GetVoting returns the voting with the given id
func (k Keeper) GetVoting(_ context.Context, id exported.VotingID) (voting types.Voting, ok bool) {
	return voting, k.store.Get(votingPrefix.Append(key.FromUInt(id)), &voting)
}

// GetVotings returns all votings ordered by id
func (k Keeper) GetVotings(_ context.Context) []types.Voting {
	return utils.GetAll[types.Voting](k.store, votingPrefix)
}

// GetChoice returns the choice with the given id
func (k Keeper) GetChoice(_ context.Context, id exported.ChoiceID) (choice types.Choice, ok bool) {
	return choice, k.store.Get(choicePrefix.Append(key.FromUInt(id)), &choice)
}

// GetChoices returns every choice of the voting, including approval and rejection
func (k Keeper) GetChoices(ctx context.Context, votingID exported.VotingID) []types.Choice {
	voting, ok := k.GetVoting(ctx, votingID)
	if !ok {
		return nil
	}

	var choices []types.Choice
	for _, id := range voting.AllChoices() {
		choices = append(choices, k.mustGetChoice(ctx, id))
	}

	return choices
}

// IsPermissionInUse returns true if any voting config grants the permission
func (k Keeper) IsPermissionInUse(ctx context.Context, id permissionexported.PermissionID) bool {
	for _, config := range k.GetVotingConfigs(ctx) {
		if config.HasPermission(id) {
			return true
		}
	}

	return false
}

func (k Keeper) validateConfig(ctx context.Context, config types.VotingConfig) error {
	if err := config.ValidateBasic(); err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	for _, id := range config.Permissions {
		if !k.permissions.HasPermission(ctx, id) {
			return errorsmod.Wrapf(types.ErrNotFound, "permission %s", id)
		}
	}

	for _, gop := range config.ListGroupsAndProfiles() {
		switch {
		case gop.IsGroup() && !k.groups.HasGroup(ctx, gop.GroupID):
			return errorsmod.Wrapf(types.ErrNotFound, "group %s", gop.GroupID)
		case gop.IsProfile() && !k.groups.HasProfile(ctx, gop.ProfileID):
			return errorsmod.Wrapf(types.ErrNotFound, "profile %s", gop.ProfileID)
		}
	}

	for _, allowee := range slices.Concat(config.ProposerConstraints, config.EditorConstraints) {
		switch {
		case allowee.Group != nil && !k.groups.HasGroup(ctx, allowee.Group.GroupID):
			return errorsmod.Wrapf(types.ErrNotFound, "group %s", allowee.Group.GroupID)
		case allowee.Profile != nil && !k.groups.HasProfile(ctx, *allowee.Profile):
			return errorsmod.Wrapf(types.ErrNotFound, "profile %s", *allowee.Profile)
		}
	}

	return nil
}

func (k Keeper) isConfigInUse(ctx context.Context, id exported.VotingConfigID) bool {
	for _, voting := range k.GetVotings(ctx) {
		if voting.VotingConfigID == id && !voting.Status.IsTerminal() {
			return true
		}
	}

	return false
}

func (k Keeper) mustGetChoice(ctx context.Context, id exported.ChoiceID) types.Choice {
	choice, ok := k.GetChoice(ctx, id)
	if !ok {
		panic(fmt.Errorf("choice %s not found", id))
	}

	return choice
}

func (k Keeper) mustGetVotingConfig(ctx context.Context, id exported.VotingConfigID) types.VotingConfig {
	config, ok := k.GetVotingConfig(ctx, id)
	if !ok {
		panic(fmt.Errorf("voting config %s not found", id))
	}

	return config
}

func (k Keeper) setVotingConfig(config types.VotingConfig) {
	k.store.Set(configPrefix.Append(key.FromUInt(config.ID)), config)
}

func (k Keeper) setVoting(voting types.Voting) {
	k.store.Set(votingPrefix.Append(key.FromUInt(voting.ID)), voting)
}

func (k Keeper) setChoice(choice types.Choice) {
	k.store.Set(choicePrefix.Append(key.FromUInt(choice.ID)), choice)
}

func (k Keeper) deleteChoice(ctx context.Context, choice types.Choice) {
	for _, token := range choice.VotingPowerByGroup {
		k.tokens.DeleteToken(ctx, token)
	}

	k.store.Delete(choicePrefix.Append(key.FromUInt(choice.ID)))
}

// createChoice stores the choice with a fresh id and one empty ledger per voting group
func (k Keeper) createChoice(ctx context.Context, groups []groupexported.GroupID, choice types.Choice) types.Choice {
	choice.ID = utils.NewCounter[exported.ChoiceID](choiceCounterKey, k.store).Incr()
	choice.VotingPowerByGroup = make(map[groupexported.GroupID]tokenexported.TokenID, len(groups))
	for _, group := range groups {
		choice.VotingPowerByGroup[group] = k.tokens.CreateToken(ctx, false, false)
	}

	k.setChoice(choice)

	return choice
}
