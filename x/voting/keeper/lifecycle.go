package keeper

import (
	"context"
	"sort"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"golang.org/x/exp/maps"

	"github.com/axelarnetwork/utils/funcs"
	"github.com/axelarnetwork/utils/slices"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	accessexported "github.com/uniongov/union-core/x/access/exported"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	sharesexported "github.com/uniongov/union-core/x/shares/exported"
	"github.com/uniongov/union-core/x/voting/exported"
	"github.com/uniongov/union-core/x/voting/types"
)

const (
	approvalChoiceName  = "Approval"
	rejectionChoiceName = "Rejection"
)

// CreateVoting proposes a new voting. The total voting power is fixed at creation time.
func (k Keeper) CreateVoting(ctx context.Context, proposer union.Principal, configID exported.VotingConfigID, name, description string, winnersNeed uint32) (exported.VotingID, error) {
	config, ok := k.GetVotingConfig(ctx, configID)
	if !ok {
		return 0, errorsmod.Wrapf(types.ErrNotFound, "voting config %s", configID)
	}

	if !accessexported.IsCallerAllowed(ctx, k.groups, proposer, config.ProposerConstraints) {
		return 0, errorsmod.Wrapf(types.ErrAccessDenied, "%s cannot propose votings of config %s", proposer, configID)
	}

	if config.WinnersCountBounds != nil && !config.WinnersCountBounds.Contains(winnersNeed) {
		return 0, errorsmod.Wrapf(types.ErrValidation, "winners need %d is out of bounds [%d, %d]",
			winnersNeed, config.WinnersCountBounds.Min, config.WinnersCountBounds.Max)
	}

	counter := utils.NewCounter[exported.VotingID](votingCounterKey, k.store)
	metadata := types.Voting{
		ID:               counter.Curr(),
		VotingConfigID:   configID,
		Name:             utils.NormalizeString(name),
		Description:      utils.NormalizeString(description),
		Proposer:         proposer,
		CreatedAt:        k.clock.Now(),
		Status:           exported.StatusCreated(),
		WinnersNeed:      winnersNeed,
		Groups:           config.ListGroups(),
		TotalVotingPower: k.totalVotingPower(ctx, config),
	}
	if err := metadata.ValidateBasic(); err != nil {
		return 0, errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	counter.Incr()
	metadata.ApprovalChoiceID = k.createChoice(ctx, metadata.Groups, types.Choice{
		VotingID: metadata.ID,
		Name:     approvalChoiceName,
		Program:  permissionexported.EmptyProgram(),
	}).ID
	metadata.RejectionChoiceID = k.createChoice(ctx, metadata.Groups, types.Choice{
		VotingID: metadata.ID,
		Name:     rejectionChoiceName,
		Program:  permissionexported.EmptyProgram(),
	}).ID
	k.setVoting(metadata)

	k.publisher.Publish(exported.VotingCreated{Voting: exported.CommonVoting(metadata.ID)})
	k.Logger().Info("created voting", "voting", metadata.ID, "voting_config", configID, "proposer", proposer)

	return metadata.ID, nil
}

// CreateChoice adds a choice to a voting that has not been approved yet
func (k Keeper) CreateChoice(ctx context.Context, caller union.Principal, votingID exported.VotingID, name, description string, program permissionexported.Program) (exported.ChoiceID, error) {
	v, err := k.getEditableVoting(ctx, caller, votingID)
	if err != nil {
		return 0, err
	}

	if bounds := v.config.ChoicesCountBounds; bounds != nil && uint32(len(v.Choices)) >= bounds.Max {
		return 0, errorsmod.Wrapf(types.ErrValidation, "voting %s cannot have more than %d choices", votingID, bounds.Max)
	}

	choice := types.Choice{
		VotingID:    votingID,
		Name:        utils.NormalizeString(name),
		Description: utils.NormalizeString(description),
		Program:     program,
	}
	if err := k.validateChoice(ctx, v.config, choice); err != nil {
		return 0, err
	}

	choice = k.createChoice(ctx, v.Groups, choice)
	v.Choices = append(v.Choices, choice.ID)
	v.save()

	v.Logger().Info("created choice", "choice", choice.ID.String(), "name", choice.Name)

	return choice.ID, nil
}

// UpdateChoice changes a choice of a voting that has not been approved yet
func (k Keeper) UpdateChoice(ctx context.Context, caller union.Principal, id exported.ChoiceID, name, description string, program permissionexported.Program) error {
	choice, v, err := k.getEditableChoice(ctx, caller, id)
	if err != nil {
		return err
	}

	choice.Name = utils.NormalizeString(name)
	choice.Description = utils.NormalizeString(description)
	choice.Program = program
	if err := k.validateChoice(ctx, v.config, choice); err != nil {
		return err
	}

	k.setChoice(choice)

	v.Logger().Info("updated choice", "choice", id.String())

	return nil
}

// DeleteChoice removes a choice from a voting that has not been approved yet
func (k Keeper) DeleteChoice(ctx context.Context, caller union.Principal, id exported.ChoiceID) error {
	choice, v, err := k.getEditableChoice(ctx, caller, id)
	if err != nil {
		return err
	}

	v.Choices = slices.Filter(v.Choices, func(c exported.ChoiceID) bool { return c != id })
	v.save()
	k.deleteChoice(ctx, choice)

	v.Logger().Info("deleted choice", "choice", id.String())

	return nil
}

// CastVote replaces the caller's allocation of the shares attested by the snapshot.
// Everything is validated before any ledger is touched.
func (k Keeper) CastVote(ctx context.Context, caller union.Principal, votingID exported.VotingID, info sharesexported.SharesInfo, votes map[exported.ChoiceID]sdkmath.LegacyDec) error {
	metadata, ok := k.GetVoting(ctx, votingID)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "voting %s", votingID)
	}

	v := newVoting(ctx, k, metadata)
	if !v.Status.Is(exported.Created) && !v.Status.Is(exported.Round) {
		return errorsmod.Wrapf(types.ErrInvalidState, "voting %s does not accept votes in status %s", votingID, v.Status)
	}

	if err := validateSharesInfo(v.Voting, caller, info); err != nil {
		return err
	}

	ids := maps.Keys(votes)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if err := utils.ValidateFraction(votes[id]); err != nil {
			return errorsmod.Wrapf(types.ErrValidation, "invalid vote for choice %s: %s", id, err)
		}

		if !v.canVoteFor(id) {
			return errorsmod.Wrapf(types.ErrInvalidState, "choice %s cannot be voted for in status %s", id, v.Status)
		}
	}

	if sum := utils.SumFractions(votes); sum.GT(utils.OneFraction) {
		return errorsmod.Wrapf(types.ErrFractionOverflow, "votes sum up to %s", sum)
	}

	amounts := make(map[exported.ChoiceID]sdkmath.Uint, len(votes))
	for _, id := range ids {
		amounts[id] = utils.MulFloor(votes[id], info.Balance)
	}

	available := utils.SaturatingSub(info.Balance, v.lockedInWinners(info.GroupID, caller))
	if allocated := utils.SumShares(amounts); allocated.GT(available) {
		return errorsmod.Wrapf(types.ErrInsufficientShares, "cannot allocate %s shares, only %s are not locked in winners", allocated, available)
	}

	v.clearVotes(info.GroupID, caller)
	for _, id := range ids {
		if amounts[id].IsZero() {
			continue
		}

		token := k.mustGetChoice(ctx, id).VotingPowerByGroup[info.GroupID]
		funcs.Must(k.tokens.Mint(ctx, token, caller, amounts[id]))
	}

	v.Logger().Debug("vote cast", "voter", caller, "group", info.GroupID.String(), "choices", len(ids))

	v.afterVote()
	v.save()

	return nil
}

// Approve moves a created voting into its first round if the approval threshold is reached
func (k Keeper) Approve(ctx context.Context, votingID exported.VotingID) error {
	metadata, ok := k.GetVoting(ctx, votingID)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "voting %s", votingID)
	}

	v := newVoting(ctx, k, metadata)
	switch {
	case !v.Status.Is(exported.Created):
		return errorsmod.Wrapf(types.ErrInvalidState, "voting %s cannot be approved in status %s", votingID, v.Status)
	case v.isRejected():
		v.finish(exported.StatusRejected())
	case v.isApproved():
		v.approve()
	default:
		return errorsmod.Wrapf(types.ErrInvalidState, "approval threshold of voting %s is not reached", votingID)
	}

	v.save()

	return nil
}

// Reject ends a created or running voting if the rejection threshold is reached
func (k Keeper) Reject(ctx context.Context, votingID exported.VotingID) error {
	metadata, ok := k.GetVoting(ctx, votingID)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "voting %s", votingID)
	}

	v := newVoting(ctx, k, metadata)
	switch {
	case !v.Status.Is(exported.Created) && !v.Status.Is(exported.Round):
		return errorsmod.Wrapf(types.ErrInvalidState, "voting %s cannot be rejected in status %s", votingID, v.Status)
	case !v.isRejected():
		return errorsmod.Wrapf(types.ErrInvalidState, "rejection threshold of voting %s is not reached", votingID)
	}

	v.finish(exported.StatusRejected())
	v.save()

	return nil
}

// HandleTask applies a scheduled round transition. Fires for a round the voting is not waiting for are discarded.
func (k Keeper) HandleTask(ctx context.Context, task types.Task) error {
	metadata, ok := k.GetVoting(ctx, task.VotingID)
	if !ok {
		return errorsmod.Wrapf(types.ErrNotFound, "voting %s", task.VotingID)
	}

	v := newVoting(ctx, k, metadata)
	if v.ScheduledTask != nil && v.ScheduledTask.Task == task {
		v.ScheduledTask = nil
	}

	switch {
	case task.Kind == types.RoundStart && v.Status.IsPreRound(task.Round):
		v.startRound(task.Round)
	case task.Kind == types.RoundEnd && v.Status.IsRound(task.Round):
		v.endRound(task.Round)
	default:
		v.Logger().Debug("discarding stale task", "task", task.String())
		return nil
	}

	v.save()

	return nil
}

// GetVotesOf returns the shares the principal allocated to each choice of the voting with the group's shares
func (k Keeper) GetVotesOf(ctx context.Context, votingID exported.VotingID, groupID groupexported.GroupID, principal union.Principal) map[exported.ChoiceID]sdkmath.Uint {
	votes := make(map[exported.ChoiceID]sdkmath.Uint)
	for _, choice := range k.GetChoices(ctx, votingID) {
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

// GetVotedShares returns the shares allocated to the choice, per group
func (k Keeper) GetVotedShares(ctx context.Context, id exported.ChoiceID) map[groupexported.GroupID]sdkmath.Uint {
	choice, ok := k.GetChoice(ctx, id)
	if !ok {
		return nil
	}

	voted := make(map[groupexported.GroupID]sdkmath.Uint, len(choice.VotingPowerByGroup))
	for group, token := range choice.VotingPowerByGroup {
		voted[group] = k.tokens.TotalSupply(ctx, token)
	}

	return voted
}

func (k Keeper) totalVotingPower(ctx context.Context, config types.VotingConfig) map[groupexported.GroupOrProfile]sdkmath.Uint {
	total := make(map[groupexported.GroupOrProfile]sdkmath.Uint)
	for _, gop := range config.ListGroupsAndProfiles() {
		if gop.IsGroup() {
			total[gop] = k.groups.TotalSupply(ctx, gop.GroupID)
			continue
		}

		total[gop] = k.groups.BalanceOf(ctx, groupexported.HasProfileGroupID, gop.ProfileID)
	}

	return total
}

func (k Keeper) getEditableVoting(ctx context.Context, caller union.Principal, votingID exported.VotingID) (*voting, error) {
	metadata, ok := k.GetVoting(ctx, votingID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrNotFound, "voting %s", votingID)
	}

	v := newVoting(ctx, k, metadata)
	if !v.Status.Is(exported.Created) {
		return nil, errorsmod.Wrapf(types.ErrInvalidState, "choices of voting %s cannot be edited in status %s", votingID, v.Status)
	}

	if caller != v.Proposer && !accessexported.IsCallerAllowed(ctx, k.groups, caller, v.config.EditorConstraints) {
		return nil, errorsmod.Wrapf(types.ErrAccessDenied, "%s cannot edit voting %s", caller, votingID)
	}

	return v, nil
}

func (k Keeper) getEditableChoice(ctx context.Context, caller union.Principal, id exported.ChoiceID) (types.Choice, *voting, error) {
	choice, ok := k.GetChoice(ctx, id)
	if !ok {
		return types.Choice{}, nil, errorsmod.Wrapf(types.ErrNotFound, "choice %s", id)
	}

	v, err := k.getEditableVoting(ctx, caller, choice.VotingID)
	if err != nil {
		return types.Choice{}, nil, err
	}

	if !v.IsActive(id) {
		return types.Choice{}, nil, errorsmod.Wrapf(types.ErrValidation, "choice %s cannot be edited", id)
	}

	return choice, v, nil
}

func (k Keeper) validateChoice(ctx context.Context, config types.VotingConfig, choice types.Choice) error {
	if err := choice.ValidateBasic(); err != nil {
		return errorsmod.Wrap(types.ErrValidation, err.Error())
	}

	for _, id := range config.Permissions {
		permission, ok := k.permissions.GetPermission(ctx, id)
		if ok && permission.IsProgramAllowed(choice.Program) {
			return nil
		}
	}

	return errorsmod.Wrapf(types.ErrAccessDenied, "program of choice %s is not allowed by voting config %s", choice.Name, config.ID)
}

func validateSharesInfo(voting types.Voting, caller union.Principal, info sharesexported.SharesInfo) error {
	if err := info.ValidateBasic(); err != nil {
		return errorsmod.Wrapf(types.ErrValidation, "invalid shares info: %s", err)
	}

	if info.Owner != caller {
		return errorsmod.Wrapf(types.ErrValidation, "shares info of %s cannot be used by %s", info.Owner, caller)
	}

	if !info.Timestamp.Equal(voting.CreatedAt) {
		return errorsmod.Wrapf(types.ErrValidation, "shares info must be taken at %s, got %s", voting.CreatedAt, info.Timestamp)
	}

	if !voting.HasGroup(info.GroupID) {
		return errorsmod.Wrapf(types.ErrValidation, "members of group %s cannot vote in voting %s", info.GroupID, voting.ID)
	}

	return nil
}
