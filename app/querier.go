package app

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cast"

	union "github.com/uniongov/union-core/types"
	accessExported "github.com/uniongov/union-core/x/access/exported"
	accessKeeper "github.com/uniongov/union-core/x/access/keeper"
	accessTypes "github.com/uniongov/union-core/x/access/types"
	groupExported "github.com/uniongov/union-core/x/group/exported"
	groupKeeper "github.com/uniongov/union-core/x/group/keeper"
	groupTypes "github.com/uniongov/union-core/x/group/types"
	nestedExported "github.com/uniongov/union-core/x/nested/exported"
	nestedKeeper "github.com/uniongov/union-core/x/nested/keeper"
	nestedTypes "github.com/uniongov/union-core/x/nested/types"
	permissionExported "github.com/uniongov/union-core/x/permission/exported"
	permissionKeeper "github.com/uniongov/union-core/x/permission/keeper"
	permissionTypes "github.com/uniongov/union-core/x/permission/types"
	votingExported "github.com/uniongov/union-core/x/voting/exported"
	votingKeeper "github.com/uniongov/union-core/x/voting/keeper"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

// Query labels
const (
	QueryGroups              = "groups"
	QueryGroup               = "group"
	QueryGroupsOf            = "groups_of"
	QueryProfiles            = "profiles"
	QueryProfile             = "profile"
	QueryBalance             = "balance"
	QueryPermissions         = "permissions"
	QueryPermission          = "permission"
	QueryAccessConfigs       = "access_configs"
	QueryAccessConfig        = "access_config"
	QueryHasAccess           = "has_access"
	QueryVotingConfigs       = "voting_configs"
	QueryVotingConfig        = "voting_config"
	QueryVotings             = "votings"
	QueryVoting              = "voting"
	QueryVotes               = "votes"
	QueryNestedVotingConfigs = "nested_voting_configs"
	QueryNestedVotingConfig  = "nested_voting_config"
	QueryNestedVotings       = "nested_votings"
	QueryNestedVoting        = "nested_voting"
	QueryOutboundVote        = "outbound_vote"
)

// BalanceResponse holds the accepted and unaccepted shares of a principal in a group
type BalanceResponse struct {
	Balance     sdkmath.Uint `json:"balance"`
	Unaccepted  sdkmath.Uint `json:"unaccepted"`
	TotalSupply sdkmath.Uint `json:"total_supply"`
}

// RunQuery answers the query at the given path with its JSON encoded result
func (a *App) RunQuery(ctx context.Context, path ...string) ([]byte, error) {
	var (
		res interface{}
		err error
	)
	a.Query(func(keepers *KeeperCache) {
		res, err = NewQuerier(a.self, keepers)(ctx, path)
	})
	if err != nil {
		return nil, err
	}

	return json.Marshal(res)
}

// NewQuerier returns the query table of a union
func NewQuerier(self union.Principal, keepers *KeeperCache) func(ctx context.Context, path []string) (interface{}, error) {
	q := querier{self: self, keepers: keepers}

	return func(ctx context.Context, path []string) (interface{}, error) {
		if len(path) == 0 {
			return nil, errorsmod.Wrap(ErrUnknownRoute, "empty query")
		}

		args := path[1:]
		switch path[0] {
		case QueryGroups:
			return q.group().GetGroups(ctx), nil
		case QueryGroup:
			return withArgs(args, 1, func() (interface{}, error) { return q.queryGroup(ctx, args[0]) })
		case QueryGroupsOf:
			return withArgs(args, 1, func() (interface{}, error) {
				return q.group().GetGroupsOf(ctx, union.Principal(args[0])), nil
			})
		case QueryProfiles:
			return q.group().GetProfiles(ctx), nil
		case QueryProfile:
			return withArgs(args, 1, func() (interface{}, error) { return q.queryProfile(ctx, args[0]) })
		case QueryBalance:
			return withArgs(args, 2, func() (interface{}, error) { return q.queryBalance(ctx, args[0], args[1]) })
		case QueryPermissions:
			return q.permission().GetPermissions(ctx), nil
		case QueryPermission:
			return withArgs(args, 1, func() (interface{}, error) { return q.queryPermission(ctx, args[0]) })
		case QueryAccessConfigs:
			return q.access().GetAccessConfigs(ctx), nil
		case QueryAccessConfig:
			return withArgs(args, 1, func() (interface{}, error) { return q.queryAccessConfig(ctx, args[0]) })
		case QueryHasAccess:
			return withArgs(args, 2, func() (interface{}, error) {
				return q.access().CallerHasAccess(ctx, permissionExported.NewEndpoint(q.self.String(), args[0]), union.Principal(args[1])), nil
			})
		case QueryVotingConfigs:
			return q.voting().GetVotingConfigs(ctx), nil
		case QueryVotingConfig:
			return withArgs(args, 1, func() (interface{}, error) { return q.queryVotingConfig(ctx, args[0]) })
		case QueryVotings:
			return q.voting().GetVotings(ctx), nil
		case QueryVoting:
			return withArgs(args, 1, func() (interface{}, error) { return q.queryVoting(ctx, args[0]) })
		case QueryVotes:
			return withArgs(args, 3, func() (interface{}, error) { return q.queryVotes(ctx, args[0], args[1], args[2]) })
		case QueryNestedVotingConfigs:
			return q.nested().GetNestedVotingConfigs(ctx), nil
		case QueryNestedVotingConfig:
			return withArgs(args, 1, func() (interface{}, error) { return q.queryNestedVotingConfig(ctx, args[0]) })
		case QueryNestedVotings:
			return q.nested().GetNestedVotings(ctx), nil
		case QueryNestedVoting:
			return withArgs(args, 1, func() (interface{}, error) { return q.queryNestedVoting(ctx, args[0]) })
		case QueryOutboundVote:
			return withArgs(args, 1, func() (interface{}, error) { return q.queryOutboundVote(ctx, args[0]) })
		default:
			return nil, errorsmod.Wrapf(ErrUnknownRoute, "unknown query endpoint: %s", path[0])
		}
	}
}

func withArgs(args []string, n int, query func() (interface{}, error)) (interface{}, error) {
	if len(args) != n {
		return nil, errorsmod.Wrapf(ErrValidation, "expected %d query arguments, got %d", n, len(args))
	}

	return query()
}

func parseID[T ~uint64](arg string) (T, error) {
	id, err := cast.ToUint64E(arg)
	if err != nil {
		return 0, errorsmod.Wrapf(ErrValidation, "invalid id %q: %s", arg, err)
	}

	return T(id), nil
}

type querier struct {
	self    union.Principal
	keepers *KeeperCache
}

func (q querier) group() *groupKeeper.Keeper { return GetKeeper[groupKeeper.Keeper](q.keepers) }

func (q querier) permission() *permissionKeeper.Keeper {
	return GetKeeper[permissionKeeper.Keeper](q.keepers)
}

func (q querier) access() *accessKeeper.Keeper { return GetKeeper[accessKeeper.Keeper](q.keepers) }

func (q querier) voting() *votingKeeper.Keeper { return GetKeeper[votingKeeper.Keeper](q.keepers) }

func (q querier) nested() *nestedKeeper.Keeper { return GetKeeper[nestedKeeper.Keeper](q.keepers) }

func (q querier) queryGroup(ctx context.Context, arg string) (groupTypes.Group, error) {
	id, err := parseID[groupExported.GroupID](arg)
	if err != nil {
		return groupTypes.Group{}, err
	}

	group, ok := q.group().GetGroup(ctx, id)
	if !ok {
		return groupTypes.Group{}, errorsmod.Wrapf(groupTypes.ErrNotFound, "group %s", id)
	}

	return group, nil
}

func (q querier) queryProfile(ctx context.Context, arg string) (groupTypes.Profile, error) {
	profile, ok := q.group().GetProfile(ctx, union.Principal(arg))
	if !ok {
		return groupTypes.Profile{}, errorsmod.Wrapf(groupTypes.ErrNotFound, "profile %s", arg)
	}

	return profile, nil
}

func (q querier) queryBalance(ctx context.Context, groupArg, principal string) (BalanceResponse, error) {
	group, err := q.queryGroup(ctx, groupArg)
	if err != nil {
		return BalanceResponse{}, err
	}

	return BalanceResponse{
		Balance:     q.group().BalanceOf(ctx, group.ID, union.Principal(principal)),
		Unaccepted:  q.group().UnacceptedBalanceOf(ctx, group.ID, union.Principal(principal)),
		TotalSupply: q.group().TotalSupply(ctx, group.ID),
	}, nil
}

func (q querier) queryPermission(ctx context.Context, arg string) (permissionTypes.Permission, error) {
	id, err := parseID[permissionExported.PermissionID](arg)
	if err != nil {
		return permissionTypes.Permission{}, err
	}

	permission, ok := q.permission().GetPermission(ctx, id)
	if !ok {
		return permissionTypes.Permission{}, errorsmod.Wrapf(permissionTypes.ErrNotFound, "permission %s", id)
	}

	return permission, nil
}

func (q querier) queryAccessConfig(ctx context.Context, arg string) (accessTypes.AccessConfig, error) {
	id, err := parseID[accessExported.AccessConfigID](arg)
	if err != nil {
		return accessTypes.AccessConfig{}, err
	}

	config, ok := q.access().GetAccessConfig(ctx, id)
	if !ok {
		return accessTypes.AccessConfig{}, errorsmod.Wrapf(accessTypes.ErrNotFound, "access config %s", id)
	}

	return config, nil
}

func (q querier) queryVotingConfig(ctx context.Context, arg string) (votingTypes.VotingConfig, error) {
	id, err := parseID[votingExported.VotingConfigID](arg)
	if err != nil {
		return votingTypes.VotingConfig{}, err
	}

	config, ok := q.voting().GetVotingConfig(ctx, id)
	if !ok {
		return votingTypes.VotingConfig{}, errorsmod.Wrapf(votingTypes.ErrNotFound, "voting config %s", id)
	}

	return config, nil
}

func (q querier) queryVoting(ctx context.Context, arg string) (nestedTypes.VotingResponse, error) {
	id, err := parseID[votingExported.VotingID](arg)
	if err != nil {
		return nestedTypes.VotingResponse{}, err
	}

	voting, ok := q.voting().GetVoting(ctx, id)
	if !ok {
		return nestedTypes.VotingResponse{}, errorsmod.Wrapf(votingTypes.ErrNotFound, "voting %s", id)
	}

	return nestedTypes.VotingResponse{Voting: voting, Choices: q.voting().GetChoices(ctx, id)}, nil
}

func (q querier) queryVotes(ctx context.Context, votingArg, groupArg, principal string) (map[votingExported.ChoiceID]sdkmath.Uint, error) {
	votingID, err := parseID[votingExported.VotingID](votingArg)
	if err != nil {
		return nil, err
	}

	groupID, err := parseID[groupExported.GroupID](groupArg)
	if err != nil {
		return nil, err
	}

	if _, ok := q.voting().GetVoting(ctx, votingID); !ok {
		return nil, errorsmod.Wrapf(votingTypes.ErrNotFound, "voting %s", votingID)
	}

	return q.voting().GetVotesOf(ctx, votingID, groupID, union.Principal(principal)), nil
}

func (q querier) queryNestedVotingConfig(ctx context.Context, arg string) (nestedTypes.NestedVotingConfig, error) {
	id, err := parseID[nestedExported.NestedVotingConfigID](arg)
	if err != nil {
		return nestedTypes.NestedVotingConfig{}, err
	}

	config, ok := q.nested().GetNestedVotingConfig(ctx, id)
	if !ok {
		return nestedTypes.NestedVotingConfig{}, errorsmod.Wrapf(nestedTypes.ErrNotFound, "nested voting config %s", id)
	}

	return config, nil
}

func (q querier) queryNestedVoting(ctx context.Context, arg string) (nestedTypes.NestedVotingResponse, error) {
	id, err := parseID[nestedExported.NestedVotingID](arg)
	if err != nil {
		return nestedTypes.NestedVotingResponse{}, err
	}

	nested, ok := q.nested().GetNestedVoting(ctx, id)
	if !ok {
		return nestedTypes.NestedVotingResponse{}, errorsmod.Wrapf(nestedTypes.ErrNotFound, "nested voting %s", id)
	}

	return nestedTypes.NestedVotingResponse{NestedVoting: nested, Choices: q.nested().GetChoices(ctx, id)}, nil
}

func (q querier) queryOutboundVote(ctx context.Context, arg string) (map[votingExported.ChoiceID]sdkmath.LegacyDec, error) {
	id, err := parseID[nestedExported.NestedVotingID](arg)
	if err != nil {
		return nil, err
	}

	if _, ok := q.nested().GetNestedVoting(ctx, id); !ok {
		return nil, errorsmod.Wrapf(nestedTypes.ErrNotFound, "nested voting %s", id)
	}

	votes, ok := q.nested().GetOutboundVote(ctx, id)
	if !ok {
		return nil, errorsmod.Wrapf(nestedTypes.ErrNotFound, "nested voting %s has not voted yet", id)
	}

	return votes, nil
}
