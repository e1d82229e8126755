package keeper

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"golang.org/x/exp/maps"

	"github.com/axelarnetwork/utils/funcs"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/events"
	"github.com/uniongov/union-core/utils/key"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	"github.com/uniongov/union-core/x/nested/exported"
	"github.com/uniongov/union-core/x/nested/types"
	sharesexported "github.com/uniongov/union-core/x/shares/exported"
	votingexported "github.com/uniongov/union-core/x/voting/exported"
)

type remoteChoice struct {
	id   votingexported.ChoiceID
	name string
}

// remoteVoting is the part of a remote common or nested voting a nested voting mirrors
type remoteVoting struct {
	config    votingexported.VotingConfigRef
	createdAt time.Time
	status    votingexported.Status
	choices   []remoteChoice
}

func (v remoteVoting) frozen() bool {
	return v.status.Is(votingexported.PreRound)
}

// CreateNestedVoting starts proxying a running voting of the remote union named by the config.
// Nothing is stored until every remote check has passed.
func (k Keeper) CreateNestedVoting(ctx context.Context, configID exported.NestedVotingConfigID, remoteVotingID votingexported.VotingRef) (exported.NestedVotingID, error) {
	config, ok := k.GetNestedVotingConfig(ctx, configID)
	if !ok {
		return 0, errorsmod.Wrapf(types.ErrNotFound, "nested voting config %s", configID)
	}

	if _, ok := k.GetNestedVotingByRemote(ctx, config.RemoteUnionID, remoteVotingID); ok {
		return 0, errorsmod.Wrapf(types.ErrInvalidState, "voting %s of union %s is already proxied", remoteVotingID, config.RemoteUnionID)
	}

	remote, err := k.resolver.Resolve(config.RemoteUnionID)
	if err != nil {
		return 0, remoteErr(config.RemoteUnionID, "resolve", err)
	}

	groups, err := remote.GetMyGroups(ctx)
	if err != nil {
		return 0, remoteErr(config.RemoteUnionID, "get_my_groups", err)
	}

	if !slices.Contains(groups, config.RemoteGroupID) {
		return 0, errorsmod.Wrapf(types.ErrValidation, "not a member of group %s of union %s", config.RemoteGroupID, config.RemoteUnionID)
	}

	view, err := k.getRemoteVoting(ctx, config.RemoteUnionID, remote, remoteVotingID)
	if err != nil {
		return 0, err
	}

	if !view.status.Is(votingexported.PreRound) && !view.status.Is(votingexported.Round) {
		return 0, errorsmod.Wrapf(types.ErrInvalidState, "remote voting %s is in status %s", remoteVotingID, view.status)
	}

	if view.config != config.RemoteVotingConfigID {
		return 0, errorsmod.Wrapf(types.ErrRemoteVotingConfigMismatch, "remote voting %s uses config %s, expected %s",
			remoteVotingID, view.config, config.RemoteVotingConfigID)
	}

	hasGroup, err := k.remoteConfigHasGroup(ctx, config.RemoteUnionID, remote, config.RemoteVotingConfigID, config.RemoteGroupID)
	if err != nil {
		return 0, err
	}

	if !hasGroup {
		return 0, errorsmod.Wrapf(types.ErrValidation, "remote voting config %s does not let group %s vote", config.RemoteVotingConfigID, config.RemoteGroupID)
	}

	info, err := remote.GetMySharesInfoAt(ctx, config.RemoteGroupID, view.createdAt)
	if err != nil {
		return 0, remoteErr(config.RemoteUnionID, "get_my_shares_info_at", err)
	}

	if err := remote.Subscribe(ctx, remoteVotingID); err != nil {
		return 0, remoteErr(config.RemoteUnionID, "subscribe", err)
	}

	// another request may have proxied the same voting while the remote calls were in flight
	if _, ok := k.GetNestedVotingByRemote(ctx, config.RemoteUnionID, remoteVotingID); ok {
		return 0, errorsmod.Wrapf(types.ErrInvalidState, "voting %s of union %s is already proxied", remoteVotingID, config.RemoteUnionID)
	}

	groupIDs := config.ListGroups()
	nested := types.NestedVoting{
		ID:                      utils.NewCounter[exported.NestedVotingID](votingCounterKey, k.store).Incr(),
		VotingConfigID:          configID,
		RemoteUnionID:           config.RemoteUnionID,
		RemoteVotingID:          remoteVotingID,
		CreatedAt:               k.clock.Now(),
		SharesInfo:              info,
		TotalVotingPowerByGroup: make(map[groupexported.GroupID]sdkmath.Uint, len(groupIDs)),
		Frozen:                  view.frozen(),
		Round:                   view.status.Round,
		ChoicesMap:              make(map[votingexported.ChoiceID]votingexported.ChoiceID, len(view.choices)),
	}
	for _, group := range groupIDs {
		nested.TotalVotingPowerByGroup[group] = k.groups.TotalSupply(ctx, group)
	}

	for _, c := range view.choices {
		choice := k.createChoice(ctx, groupIDs, types.Choice{
			NestedVotingID: nested.ID,
			RemoteChoiceID: c.id,
			Name:           c.name,
		})
		nested.Choices = append(nested.Choices, choice.ID)
		nested.ChoicesMap[choice.ID] = c.id
	}

	k.setNestedVoting(nested)
	k.store.Set(remoteKey(nested.RemoteUnionID, nested.RemoteVotingID), nested.ID)

	k.publisher.Publish(votingexported.VotingCreated{Voting: votingexported.NestedVoting(uint64(nested.ID))})
	k.Logger().Info("created nested voting",
		"nested_voting", nested.ID.String(),
		"remote_union", nested.RemoteUnionID,
		"remote_voting", nested.RemoteVotingID.String(),
		"frozen", nested.Frozen)

	return nested.ID, nil
}

// CastVote replaces the caller's allocation in the nested voting and forwards the union's
// resulting vote to the remote union. The local allocation is kept if forwarding fails.
func (k Keeper) CastVote(ctx context.Context, caller union.Principal, id exported.NestedVotingID, info sharesexported.SharesInfo, votes map[votingexported.ChoiceID]sdkmath.LegacyDec) error {
	nested, ok := k.GetNestedVoting(ctx, id)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "nested voting %s", id)
	}

	if nested.Frozen {
		return errorsmod.Wrapf(types.ErrFrozen, "nested voting %s waits for round %d of the remote voting", id, nested.Round)
	}

	if err := validateSharesInfo(nested, caller, info); err != nil {
		return err
	}

	ids := maps.Keys(votes)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, choiceID := range ids {
		if err := utils.ValidateFraction(votes[choiceID]); err != nil {
			return errorsmod.Wrapf(types.ErrValidation, "invalid vote for choice %s: %s", choiceID, err)
		}

		if !nested.IsActive(choiceID) {
			return errorsmod.Wrapf(types.ErrInvalidState, "choice %s of nested voting %s is not active", choiceID, id)
		}
	}

	if sum := utils.SumFractions(votes); sum.GT(utils.OneFraction) {
		return errorsmod.Wrapf(types.ErrFractionOverflow, "votes sum up to %s", sum)
	}

	amounts := make(map[votingexported.ChoiceID]sdkmath.Uint, len(votes))
	for _, choiceID := range ids {
		amounts[choiceID] = utils.MulFloor(votes[choiceID], info.Balance)
	}

	available := utils.SaturatingSub(info.Balance, k.lockedInWinners(ctx, nested, info.GroupID, caller))
	if allocated := utils.SumShares(amounts); allocated.GT(available) {
		return errorsmod.Wrapf(types.ErrInsufficientShares, "cannot allocate %s shares, only %s are not locked in winners", allocated, available)
	}

	for _, choiceID := range nested.Choices {
		token := k.mustGetChoice(ctx, choiceID).VotingPowerByGroup[info.GroupID]
		if balance := k.tokens.BalanceOf(ctx, token, caller); !balance.IsZero() {
			funcs.Must(k.tokens.Burn(ctx, token, caller, balance))
		}
	}

	for _, choiceID := range ids {
		if amounts[choiceID].IsZero() {
			continue
		}

		token := k.mustGetChoice(ctx, choiceID).VotingPowerByGroup[info.GroupID]
		funcs.Must(k.tokens.Mint(ctx, token, caller, amounts[choiceID]))
	}

	k.Logger().Debug("nested vote cast", "nested_voting", id.String(), "voter", caller, "group", info.GroupID.String())

	return k.forwardVote(ctx, id)
}

// GetOutboundVote returns the fractions of its remote shares this union currently allocates to each remote choice
func (k Keeper) GetOutboundVote(ctx context.Context, id exported.NestedVotingID) (map[votingexported.ChoiceID]sdkmath.LegacyDec, bool) {
	nested, ok := k.GetNestedVoting(ctx, id)
	if !ok {
		return nil, false
	}

	return k.outboundVote(ctx, nested, k.mustGetConfig(ctx, nested.VotingConfigID)), true
}

// GetVotesOf returns the shares the principal allocated to each local choice with the group's shares
func (k Keeper) GetVotesOf(ctx context.Context, id exported.NestedVotingID, groupID groupexported.GroupID, principal union.Principal) map[votingexported.ChoiceID]sdkmath.Uint {
	votes := make(map[votingexported.ChoiceID]sdkmath.Uint)
	for _, choice := range k.GetChoices(ctx, id) {
		token, ok := choice.VotingPowerByGroup[groupID]
		if !ok {
			continue
		}

		if balance := k.tokens.BalanceOf(ctx, token, principal); !balance.IsZero() {
			votes[choice.ID] = balance
		}
	}

	return votes
}

// HandleRemoteEvent follows the round transitions of proxied remote votings.
// Events are applied idempotently and events for votings that are not proxied are ignored.
func (k Keeper) HandleRemoteEvent(ctx context.Context, from union.Principal, event events.Event) {
	switch event := event.(type) {
	case votingexported.RoundStarted:
		nested, ok := k.GetNestedVotingByRemote(ctx, from, event.Voting)
		if !ok || (!nested.Frozen && nested.Round == event.Round) {
			return
		}

		nested.Frozen = false
		nested.Round = event.Round
		k.setNestedVoting(nested)

		k.Logger().Info("remote round started", "nested_voting", nested.ID.String(), "round", event.Round)
		k.publisher.Publish(votingexported.RoundStarted{Voting: votingexported.NestedVoting(uint64(nested.ID)), Round: event.Round})
	case votingexported.RoundEnded:
		nested, ok := k.GetNestedVotingByRemote(ctx, from, event.Voting)
		if !ok {
			return
		}

		changed := retire(&nested, event.Winners, event.Losers) || !nested.Frozen
		nested.Frozen = true
		nested.Round = event.Round
		k.setNestedVoting(nested)

		if changed {
			k.Logger().Info("remote round ended", "nested_voting", nested.ID.String(), "round", event.Round, "status", event.Status.String())
			k.publisher.Publish(votingexported.RoundEnded{
				Voting:  votingexported.NestedVoting(uint64(nested.ID)),
				Round:   event.Round,
				Winners: nested.Winners,
				Losers:  nested.Losers,
				Status:  event.Status,
			})
		}

		if event.Status.IsTerminal() {
			k.finish(ctx, nested, event.Status)
		}
	case votingexported.VotingFinished:
		nested, ok := k.GetNestedVotingByRemote(ctx, from, event.Voting)
		if !ok {
			return
		}

		k.finish(ctx, nested, event.Status)
	}
}

func (k Keeper) finish(ctx context.Context, nested types.NestedVoting, status votingexported.Status) {
	for _, id := range nested.AllChoices() {
		k.deleteChoice(ctx, k.mustGetChoice(ctx, id))
	}

	k.store.Delete(votingPrefix.Append(key.FromUInt(nested.ID)))
	k.store.Delete(remoteKey(nested.RemoteUnionID, nested.RemoteVotingID))

	if remote, err := k.resolver.Resolve(nested.RemoteUnionID); err != nil {
		k.Logger().Error("cannot resolve remote union", "remote_union", nested.RemoteUnionID, "error", err)
	} else if err := remote.Unsubscribe(ctx, nested.RemoteVotingID); err != nil {
		k.Logger().Error("cannot unsubscribe from remote voting", "remote_voting", nested.RemoteVotingID.String(), "error", err)
	}

	k.Logger().Info("nested voting finished", "nested_voting", nested.ID.String(), "status", status.String())
	k.publisher.Publish(votingexported.VotingFinished{Voting: votingexported.NestedVoting(uint64(nested.ID)), Status: status})
}

// forwardVote sends the union's outbound vote to the remote union. Other votes may be cast while the
// remote call is in flight, so the outbound vote is recomputed afterwards and sent again until it is unchanged.
func (k Keeper) forwardVote(ctx context.Context, id exported.NestedVotingID) error {
	nested, ok := k.GetNestedVoting(ctx, id)
	for ok && !nested.Frozen {
		config := k.mustGetConfig(ctx, nested.VotingConfigID)
		votes := k.outboundVote(ctx, nested, config)
		if err := k.castRemoteVote(ctx, nested, votes); err != nil {
			return err
		}

		if nested, ok = k.GetNestedVoting(ctx, id); !ok {
			return nil
		}

		nested.Forwarded = votes
		k.setNestedVoting(nested)

		if equalFractions(votes, k.outboundVote(ctx, nested, config)) {
			return nil
		}

		k.Logger().Debug("outbound vote changed while it was forwarded", "nested_voting", id.String())
	}

	return nil
}

func (k Keeper) castRemoteVote(ctx context.Context, nested types.NestedVoting, votes map[votingexported.ChoiceID]sdkmath.LegacyDec) error {
	remote, err := k.resolver.Resolve(nested.RemoteUnionID)
	if err != nil {
		return remoteErr(nested.RemoteUnionID, "resolve", err)
	}

	switch nested.RemoteVotingID.Kind {
	case votingexported.Common:
		if err := remote.CastMyVote(ctx, votingexported.VotingID(nested.RemoteVotingID.ID), nested.SharesInfo, votes); err != nil {
			return remoteErr(nested.RemoteUnionID, "cast_my_vote", err)
		}
	case votingexported.Nested:
		if err := remote.CastMyNestedVote(ctx, exported.NestedVotingID(nested.RemoteVotingID.ID), nested.SharesInfo, votes); err != nil {
			return remoteErr(nested.RemoteUnionID, "cast_my_nested_vote", err)
		}
	default:
		panic(fmt.Sprintf("unknown voting kind %d", nested.RemoteVotingID.Kind))
	}

	return nil
}

// lockedInWinners returns the principal's shares of the group that are allocated to retired winners
func (k Keeper) lockedInWinners(ctx context.Context, nested types.NestedVoting, groupID groupexported.GroupID, principal union.Principal) sdkmath.Uint {
	locked := sdkmath.ZeroUint()
	for _, id := range nested.Winners {
		token := k.mustGetChoice(ctx, id).VotingPowerByGroup[groupID]
		locked = locked.Add(k.tokens.BalanceOf(ctx, token, principal))
	}

	return locked
}

// outboundVote weighs each group's vote fractions by the group's allowee fraction.
// Fractions are truncated so the sum never exceeds the allowee fractions' sum.
// Under Turnout the fractions are shares of what is not locked in remote winners; under Total
// members cannot reallocate their shares locked in winners, so the bound holds already.
func (k Keeper) outboundVote(ctx context.Context, nested types.NestedVoting, config types.NestedVotingConfig) map[votingexported.ChoiceID]sdkmath.LegacyDec {
	choices := make([]types.Choice, 0, len(nested.Choices))
	for _, id := range nested.Choices {
		choices = append(choices, k.mustGetChoice(ctx, id))
	}

	votes := make(map[votingexported.ChoiceID]sdkmath.LegacyDec, len(choices))
	for _, group := range config.ListGroups() {
		voted := make(map[votingexported.ChoiceID]sdkmath.Uint, len(choices))
		for _, choice := range choices {
			voted[choice.ID] = k.tokens.TotalSupply(ctx, choice.VotingPowerByGroup[group])
		}

		denominator := utils.GetOrZero(nested.TotalVotingPowerByGroup, group)
		if config.VoteCalculation == exported.Turnout {
			denominator = utils.SumShares(voted)
		}

		for _, choice := range choices {
			fraction := utils.QuoTruncate(voted[choice.ID], denominator).MulTruncate(config.AlloweeGroups[group])
			if fraction.IsZero() {
				continue
			}

			remoteID := nested.ChoicesMap[choice.ID]
			if current, ok := votes[remoteID]; ok {
				fraction = fraction.Add(current)
			}
			votes[remoteID] = fraction
		}
	}

	if config.VoteCalculation == exported.Turnout {
		unlocked := nested.UnlockedFraction()
		for id, fraction := range votes {
			if votes[id] = fraction.MulTruncate(unlocked); votes[id].IsZero() {
				delete(votes, id)
			}
		}
	}

	return votes
}

func (k Keeper) getRemoteVoting(ctx context.Context, remoteUnion union.Principal, remote types.RemoteUnion, ref votingexported.VotingRef) (remoteVoting, error) {
	switch ref.Kind {
	case votingexported.Common:
		res, err := remote.GetVoting(ctx, votingexported.VotingID(ref.ID))
		if err != nil {
			return remoteVoting{}, remoteErr(remoteUnion, "get_voting", err)
		}

		view := remoteVoting{
			config:    votingexported.CommonVotingConfig(res.Voting.VotingConfigID),
			createdAt: res.Voting.CreatedAt,
			status:    res.Voting.Status,
		}
		for _, choice := range res.Choices {
			if res.Voting.IsActive(choice.ID) || choice.ID == res.Voting.RejectionChoiceID {
				view.choices = append(view.choices, remoteChoice{id: choice.ID, name: choice.Name})
			}
		}

		return view, nil
	case votingexported.Nested:
		res, err := remote.GetNestedVoting(ctx, exported.NestedVotingID(ref.ID))
		if err != nil {
			return remoteVoting{}, remoteErr(remoteUnion, "get_nested_voting", err)
		}

		view := remoteVoting{
			config:    votingexported.NestedVotingConfig(uint64(res.NestedVoting.VotingConfigID)),
			createdAt: res.NestedVoting.CreatedAt,
			status:    votingexported.StatusRound(res.NestedVoting.Round),
		}
		if res.NestedVoting.Frozen {
			view.status = votingexported.StatusPreRound(res.NestedVoting.Round)
		}

		for _, choice := range res.Choices {
			if res.NestedVoting.IsActive(choice.ID) {
				view.choices = append(view.choices, remoteChoice{id: choice.ID, name: choice.Name})
			}
		}

		return view, nil
	default:
		return remoteVoting{}, errorsmod.Wrapf(types.ErrValidation, "unknown voting kind %d", ref.Kind)
	}
}

func (k Keeper) remoteConfigHasGroup(ctx context.Context, remoteUnion union.Principal, remote types.RemoteUnion, ref votingexported.VotingConfigRef, group groupexported.GroupID) (bool, error) {
	switch ref.Kind {
	case votingexported.Common:
		config, err := remote.GetVotingConfig(ctx, votingexported.VotingConfigID(ref.ID))
		if err != nil {
			return false, remoteErr(remoteUnion, "get_voting_config", err)
		}

		return slices.Contains(config.ListGroups(), group), nil
	case votingexported.Nested:
		config, err := remote.GetNestedVotingConfig(ctx, exported.NestedVotingConfigID(ref.ID))
		if err != nil {
			return false, remoteErr(remoteUnion, "get_nested_voting_config", err)
		}

		_, ok := config.AlloweeGroups[group]
		return ok, nil
	default:
		return false, errorsmod.Wrapf(types.ErrValidation, "unknown voting config kind %d", ref.Kind)
	}
}

// retire moves the local mirrors of remote winners and losers out of the active choices.
// The forwarded fractions of new winners become locked.
func retire(nested *types.NestedVoting, winners, losers []votingexported.ChoiceID) bool {
	local := make(map[votingexported.ChoiceID]votingexported.ChoiceID, len(nested.ChoicesMap))
	for l, r := range nested.ChoicesMap {
		local[r] = l
	}

	changed := false
	move := func(remoteIDs []votingexported.ChoiceID, to *[]votingexported.ChoiceID, lock bool) {
		for _, remoteID := range remoteIDs {
			id, ok := local[remoteID]
			if !ok || !nested.IsActive(id) {
				continue
			}

			nested.Choices = slices.DeleteFunc(nested.Choices, func(c votingexported.ChoiceID) bool { return c == id })
			*to = append(*to, id)
			changed = true

			if fraction, ok := nested.Forwarded[remoteID]; ok && lock {
				if nested.Locked == nil {
					nested.Locked = make(map[votingexported.ChoiceID]sdkmath.LegacyDec)
				}
				nested.Locked[remoteID] = fraction
			}
		}
	}
	move(winners, &nested.Winners, true)
	move(losers, &nested.Losers, false)

	return changed
}

func equalFractions(a, b map[votingexported.ChoiceID]sdkmath.LegacyDec) bool {
	if len(a) != len(b) {
		return false
	}

	for id, fraction := range a {
		if other, ok := b[id]; !ok || !fraction.Equal(other) {
			return false
		}
	}

	return true
}

func validateSharesInfo(nested types.NestedVoting, caller union.Principal, info sharesexported.SharesInfo) error {
	if err := info.ValidateBasic(); err != nil {
		return errorsmod.Wrapf(types.ErrValidation, "invalid shares info: %s", err)
	}

	if info.Owner != caller {
		return errorsmod.Wrapf(types.ErrValidation, "shares info of %s cannot be used by %s", info.Owner, caller)
	}

	if !info.Timestamp.Equal(nested.CreatedAt) {
		return errorsmod.Wrapf(types.ErrValidation, "shares info must be taken at %s, got %s", nested.CreatedAt, info.Timestamp)
	}

	if !nested.HasGroup(info.GroupID) {
		return errorsmod.Wrapf(types.ErrValidation, "members of group %s cannot vote in nested voting %s", info.GroupID, nested.ID)
	}

	return nil
}

func remoteErr(remoteUnion union.Principal, method string, err error) error {
	return errorsmod.Wrapf(types.ErrRemote, "%s.%s: %s", remoteUnion, method, err)
}
