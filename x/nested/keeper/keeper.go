package keeper

import (
	"context"
	"encoding/hex"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	"github.com/uniongov/union-core/x/nested/exported"
	"github.com/uniongov/union-core/x/nested/types"
	tokenexported "github.com/uniongov/union-core/x/token/exported"
	votingexported "github.com/uniongov/union-core/x/voting/exported"
)

var (
	configPrefix = key.FromStr("config")
	votingPrefix = key.FromStr("voting")
	choicePrefix = key.FromStr("choice")
	remotePrefix = key.FromStr("remote")

	counterPrefix    = key.FromStr("counter")
	configCounterKey = counterPrefix.Append(key.FromStr("config"))
	votingCounterKey = counterPrefix.Append(key.FromStr("voting"))
	choiceCounterKey = counterPrefix.Append(key.FromStr("choice"))
)

// Keeper proxies votings of remote unions
type Keeper struct {
	store     utils.KVStore
	tokens    types.TokenKeeper
	groups    types.GroupKeeper
	resolver  types.PeerResolver
	publisher types.Publisher
	clock     utils.Clock
	logger    log.Logger
}

// NewKeeper returns a new nested voting keeper
func NewKeeper(
	db dbm.DB,
	tokens types.TokenKeeper,
	groups types.GroupKeeper,
	resolver types.PeerResolver,
	publisher types.Publisher,
	clock utils.Clock,
	logger log.Logger,
) Keeper {
	return Keeper{
		store:     utils.NewKVStore(db, key.FromStr(types.StoreKey)),
		tokens:    tokens,
		groups:    groups,
		resolver:  resolver,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// CreateNestedVotingConfig stores a new nested voting config. The id of the given config is ignored.
func (k Keeper) CreateNestedVotingConfig(ctx context.Context, config types.NestedVotingConfig) (exported.NestedVotingConfigID, error) {
	counter := utils.NewCounter[exported.NestedVotingConfigID](configCounterKey, k.store)

	config.ID = counter.Curr()
	config.Name = utils.NormalizeString(config.Name)
	config.Description = utils.NormalizeString(config.Description)
	if err := k.validateConfig(ctx, config); err != nil {
		return 0, err
	}

	counter.Incr()
	k.setConfig(config)

	k.Logger().Info("created nested voting config", "nested_voting_config", config.ID.String(), "remote_union", config.RemoteUnionID)

	return config.ID, nil
}

// UpdateNestedVotingConfig replaces a nested voting config that no nested voting uses
func (k Keeper) UpdateNestedVotingConfig(ctx context.Context, config types.NestedVotingConfig) error {
	if _, ok := k.GetNestedVotingConfig(ctx, config.ID); !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "nested voting config %s", config.ID)
	}

	if k.isConfigInUse(ctx, config.ID) {
		return errorsmod.Wrapf(types.ErrInUse, "nested voting config %s is used by a nested voting", config.ID)
	}

	config.Name = utils.NormalizeString(config.Name)
	config.Description = utils.NormalizeString(config.Description)
	if err := k.validateConfig(ctx, config); err != nil {
		return err
	}

	k.setConfig(config)

	k.Logger().Info("updated nested voting config", "nested_voting_config", config.ID.String())

	return nil
}

// DeleteNestedVotingConfig removes a nested voting config that no nested voting uses
func (k Keeper) DeleteNestedVotingConfig(ctx context.Context, id exported.NestedVotingConfigID) error {
	if _, ok := k.GetNestedVotingConfig(ctx, id); !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "nested voting config %s", id)
	}

	if k.isConfigInUse(ctx, id) {
		return errorsmod.Wrapf(types.ErrInUse, "nested voting config %s is used by a nested voting", id)
	}

	k.store.Delete(configPrefix.Append(key.FromUInt(id)))

	k.Logger().Info("deleted nested voting config", "nested_voting_config", id.String())

	return nil
}

// GetNestedVotingConfig returns the nested voting config with the given id
func (k Keeper) GetNestedVotingConfig(_ context.Context, id exported.NestedVotingConfigID) (config types.NestedVotingConfig, ok bool) {
	return config, k.store.Get(configPrefix.Append(key.FromUInt(id)), &config)
}

// GetNestedVotingConfigs returns all nested voting configs ordered by id
func (k Keeper) GetNestedVotingConfigs(_ context.Context) []types.NestedVotingConfig {
	return utils.GetAll[types.NestedVotingConfig](k.store, configPrefix)
}

// GetNestedVoting returns the nested voting with the given id
func (k Keeper) GetNestedVoting(_ context.Context, id exported.NestedVotingID) (voting types.NestedVoting, ok bool) {
	return voting, k.store.Get(votingPrefix.Append(key.FromUInt(id)), &voting)
}

// GetNestedVotings returns all nested votings ordered by id
func (k Keeper) GetNestedVotings(_ context.Context) []types.NestedVoting {
	return utils.GetAll[types.NestedVoting](k.store, votingPrefix)
}

// GetNestedVotingByRemote returns the nested voting proxying the given voting of the remote union
func (k Keeper) GetNestedVotingByRemote(ctx context.Context, remoteUnion union.Principal, remoteVoting votingexported.VotingRef) (types.NestedVoting, bool) {
	var id exported.NestedVotingID
	if !k.store.Get(remoteKey(remoteUnion, remoteVoting), &id) {
		return types.NestedVoting{}, false
	}

	return k.GetNestedVoting(ctx, id)
}

// GetChoice returns the local choice with the given id
func (k Keeper) GetChoice(_ context.Context, id votingexported.ChoiceID) (choice types.Choice, ok bool) {
	return choice, k.store.Get(choicePrefix.Append(key.FromUInt(id)), &choice)
}

// GetChoices returns every local choice of the nested voting
func (k Keeper) GetChoices(ctx context.Context, id exported.NestedVotingID) []types.Choice {
	voting, ok := k.GetNestedVoting(ctx, id)
	if !ok {
		return nil
	}

	choices := make([]types.Choice, 0, len(voting.ChoicesMap))
	for _, choiceID := range voting.AllChoices() {
		choices = append(choices, k.mustGetChoice(ctx, choiceID))
	}

	return choices
}

func (k Keeper) validateConfig(ctx context.Context, config types.NestedVotingConfig) error {
	if err := config.ValidateBasic(); err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	for _, group := range config.ListGroups() {
		if !k.groups.HasGroup(ctx, group) {
			return errorsmod.Wrapf(types.ErrNotFound, "group %s", group)
		}
	}

	return nil
}

func (k Keeper) isConfigInUse(ctx context.Context, id exported.NestedVotingConfigID) bool {
	for _, voting := range k.GetNestedVotings(ctx) {
		if voting.VotingConfigID == id {
			return true
		}
	}

	return false
}

func (k Keeper) mustGetConfig(ctx context.Context, id exported.NestedVotingConfigID) types.NestedVotingConfig {
	config, ok := k.GetNestedVotingConfig(ctx, id)
	if !ok {
		panic(fmt.Sprintf("nested voting config %s not found", id))
	}

	return config
}

func (k Keeper) mustGetChoice(ctx context.Context, id votingexported.ChoiceID) types.Choice {
	choice, ok := k.GetChoice(ctx, id)
	if !ok {
		panic(fmt.Sprintf("choice %s not found", id))
	}

	return choice
}

func (k Keeper) setConfig(config types.NestedVotingConfig) {
	k.store.Set(configPrefix.Append(key.FromUInt(config.ID)), config)
}

func (k Keeper) setNestedVoting(voting types.NestedVoting) {
	k.store.Set(votingPrefix.Append(key.FromUInt(voting.ID)), voting)
}

func (k Keeper) createChoice(ctx context.Context, groups []groupexported.GroupID, choice types.Choice) types.Choice {
	choice.ID = utils.NewCounter[votingexported.ChoiceID](choiceCounterKey, k.store).Incr()
	choice.VotingPowerByGroup = make(map[groupexported.GroupID]tokenexported.TokenID, len(groups))
	for _, group := range groups {
		choice.VotingPowerByGroup[group] = k.tokens.CreateToken(ctx, false, false)
	}

	k.store.Set(choicePrefix.Append(key.FromUInt(choice.ID)), choice)

	return choice
}

func (k Keeper) deleteChoice(ctx context.Context, choice types.Choice) {
	for _, token := range choice.VotingPowerByGroup {
		k.tokens.DeleteToken(ctx, token)
	}

	k.store.Delete(choicePrefix.Append(key.FromUInt(choice.ID)))
}

// principals are hex encoded because key.FromStr lowercases
func remoteKey(remoteUnion union.Principal, remoteVoting votingexported.VotingRef) key.Key {
	return remotePrefix.
		Append(key.FromStr(hex.EncodeToString([]byte(remoteUnion)))).
		Append(key.FromStr(remoteVoting.Kind.String())).
		Append(key.FromUInt(remoteVoting.ID))
}
