package keeper

import (
	"context"
	"sort"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/cometbft/cometbft/libs/log"

	"github.com/axelarnetwork/utils/funcs"
	"github.com/axelarnetwork/utils/monads/cached"
	"github.com/axelarnetwork/utils/slices"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	"github.com/uniongov/union-core/x/voting/exported"
	"github.com/uniongov/union-core/x/voting/types"
)

const (
	reasonQuorumNotReached = "quorum not reached"
	reasonNotEnoughChoices = "not enough choices left"
	reasonRoundLimit       = "round limit reached"
)

type voting struct {
	types.Voting
	ctx    context.Context
	k      Keeper
	config types.VotingConfig

	groupsAndProfiles cached.Cached[[]groupexported.GroupOrProfile]
}

func newVoting(ctx context.Context, k Keeper, metadata types.Voting) *voting {
	config := k.mustGetVotingConfig(ctx, metadata.VotingConfigID)

	return &voting{
		Voting: metadata,
		ctx:    ctx,
		k:      k,
		config: config,
		groupsAndProfiles: cached.New(func() []groupexported.GroupOrProfile {
			return config.ListGroupsAndProfiles()
		}),
	}
}

func (v voting) Logger() log.Logger {
	return v.k.Logger().With(
		"voting", v.ID.String(),
		"status", v.Status.String(),
		"winners_need", v.WinnersNeed,
	)
}

// voted returns the shares recorded for the choice, per group and profile the thresholds refer to
func (v voting) voted(id exported.ChoiceID) map[groupexported.GroupOrProfile]sdkmath.Uint {
	choice := v.k.mustGetChoice(v.ctx, id)

	voted := make(map[groupexported.GroupOrProfile]sdkmath.Uint)
	for _, gop := range v.groupsAndProfiles.Value() {
		if gop.IsGroup() {
			voted[gop] = v.k.tokens.TotalSupply(v.ctx, choice.VotingPowerByGroup[gop.GroupID])
			continue
		}

		voted[gop] = v.k.tokens.BalanceOf(v.ctx, choice.VotingPowerByGroup[groupexported.HasProfileGroupID], gop.ProfileID)
	}

	return voted
}

func (v voting) votedAll(ids []exported.ChoiceID) map[groupexported.GroupOrProfile]sdkmath.Uint {
	sum := make(map[groupexported.GroupOrProfile]sdkmath.Uint)
	for _, id := range ids {
		for gop, amount := range v.voted(id) {
			sum[gop] = utils.GetOrZero(sum, gop).Add(amount)
		}
	}

	return sum
}

// remainingTotal is the voting power that has neither rejected nor been spent on winners
func (v voting) remainingTotal() map[groupexported.GroupOrProfile]sdkmath.Uint {
	spent := v.votedAll(append([]exported.ChoiceID{v.RejectionChoiceID}, v.Winners...))

	total := make(map[groupexported.GroupOrProfile]sdkmath.Uint, len(v.TotalVotingPower))
	for gop, amount := range v.TotalVotingPower {
		total[gop] = utils.SaturatingSub(amount, utils.GetOrZero(spent, gop))
	}

	return total
}

func (v voting) isRejected() bool {
	return v.config.Rejection.IsReached(v.TotalVotingPower, v.voted(v.RejectionChoiceID))
}

func (v voting) isApproved() bool {
	return v.config.Approval.IsReached(v.TotalVotingPower, v.voted(v.ApprovalChoiceID))
}

func (v voting) isQuorate() bool {
	participating := append([]exported.ChoiceID{v.RejectionChoiceID}, v.Choices...)
	participating = append(participating, v.Winners...)

	return v.config.Quorum.IsReached(v.TotalVotingPower, v.votedAll(participating))
}

func (v voting) hasEnoughWinners() bool {
	return uint32(len(v.Winners)) >= v.WinnersNeed
}

func (v voting) canVoteFor(id exported.ChoiceID) bool {
	switch {
	case id == v.RejectionChoiceID:
		return true
	case v.Status.Is(exported.Created):
		return id == v.ApprovalChoiceID
	case v.Status.Is(exported.Round):
		return v.IsActive(id)
	default:
		return false
	}
}

// electWinners moves choices reaching the win threshold into the winners until enough winners are found.
// The total is recomputed after every winner, so each evaluation only reflects the still active choices.
func (v *voting) electWinners() {
	for !v.hasEnoughWinners() {
		winner, ok := v.nextWinner(v.remainingTotal())
		if !ok {
			return
		}

		v.Choices = slices.Filter(v.Choices, func(id exported.ChoiceID) bool { return id != winner })
		v.Winners = append(v.Winners, winner)

		v.Logger().Info("choice won", "choice", winner.String(), "round", v.Status.Round)
	}
}

// nextWinner returns the active choice with the most votes among those reaching the win threshold, ties go to the lower id
func (v voting) nextWinner(total map[groupexported.GroupOrProfile]sdkmath.Uint) (exported.ChoiceID, bool) {
	type candidate struct {
		id     exported.ChoiceID
		voted  map[groupexported.GroupOrProfile]sdkmath.Uint
		weight sdkmath.Uint
	}

	candidates := slices.Map(v.Choices, func(id exported.ChoiceID) candidate {
		voted := v.voted(id)
		return candidate{id: id, voted: voted, weight: utils.SumShares(voted)}
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].weight.Equal(candidates[j].weight) {
			return candidates[i].weight.GT(candidates[j].weight)
		}

		return candidates[i].id < candidates[j].id
	})

	for _, c := range candidates {
		if v.config.Win.IsReached(total, c.voted) {
			return c.id, true
		}
	}

	return 0, false
}

// filterNextRound turns every active choice that does not reach the next round threshold into a loser
func (v *voting) filterNextRound() {
	total := v.remainingTotal()

	var survivors []exported.ChoiceID
	for _, id := range v.Choices {
		if v.config.NextRound.IsReached(total, v.voted(id)) {
			survivors = append(survivors, id)
			continue
		}

		v.Losers = append(v.Losers, id)
	}

	v.Choices = survivors
}

// afterVote applies the transitions a vote can trigger. Rejection is evaluated first and always wins.
func (v *voting) afterVote() {
	if v.isRejected() {
		v.finish(exported.StatusRejected())
		return
	}

	switch v.Status.Kind {
	case exported.Created:
		if v.isApproved() {
			v.approve()
		}
	case exported.Round:
		if !v.isQuorate() {
			return
		}

		v.electWinners()
		if v.hasEnoughWinners() {
			v.finish(exported.StatusSuccess())
		}
	}
}

func (v *voting) approve() {
	if uint32(len(v.Choices)) < v.minChoices() {
		v.Logger().Info("approved voting has too few choices", "choices", len(v.Choices))
		v.finish(exported.StatusFail(reasonNotEnoughChoices))

		return
	}

	v.Status = exported.StatusPreRound(1)
	v.schedule(types.Task{Kind: types.RoundStart, VotingID: v.ID, Round: 1}, v.config.RoundSettings.Delay)

	v.Logger().Info("voting approved")
}

func (v voting) minChoices() uint32 {
	if v.config.ChoicesCountBounds != nil && v.config.ChoicesCountBounds.Min > v.WinnersNeed {
		return v.config.ChoicesCountBounds.Min
	}

	return v.WinnersNeed
}

func (v *voting) startRound(round uint32) {
	v.Status = exported.StatusRound(round)
	v.schedule(types.Task{Kind: types.RoundEnd, VotingID: v.ID, Round: round}, v.config.RoundSettings.Duration)

	v.k.publisher.Publish(exported.RoundStarted{Voting: exported.CommonVoting(v.ID), Round: round})
	v.Logger().Info("round started")
}

func (v *voting) endRound(round uint32) {
	switch {
	case v.isRejected():
		v.finish(exported.StatusRejected())
		return
	case !v.isQuorate():
		v.finish(exported.StatusFail(reasonQuorumNotReached))
		return
	}

	v.electWinners()
	if v.hasEnoughWinners() {
		v.finish(exported.StatusSuccess())
		return
	}

	v.filterNextRound()

	switch {
	case uint32(len(v.Winners)+len(v.Choices)) < v.WinnersNeed:
		v.finish(exported.StatusFail(reasonNotEnoughChoices))
	case v.config.RoundSettings.MaxRounds > 0 && round >= v.config.RoundSettings.MaxRounds:
		v.finish(exported.StatusFail(reasonRoundLimit))
	default:
		v.Status = exported.StatusPreRound(round + 1)
		v.schedule(types.Task{Kind: types.RoundStart, VotingID: v.ID, Round: round + 1}, v.config.RoundSettings.Delay)
		v.publishRoundEnded(round)

		v.Logger().Info("round ended", "round", round)
	}
}

// finish moves the voting into a terminal status. Remaining active choices lose.
func (v *voting) finish(status exported.Status) {
	round, wasRound := v.Status.Round, v.Status.Is(exported.Round)

	v.Status = status
	v.Losers = append(v.Losers, v.Choices...)
	v.Choices = nil

	if v.ScheduledTask != nil {
		v.k.scheduler.Cancel(v.ScheduledTask.Handle)
		v.ScheduledTask = nil
	}

	if status.Is(exported.Success) {
		v.execute()
	}

	if wasRound {
		v.publishRoundEnded(round)
	}
	v.k.publisher.Publish(exported.VotingFinished{Voting: exported.CommonVoting(v.ID), Status: status})

	v.Logger().Info("voting finished", "winners", slices.Map(v.Winners, exported.ChoiceID.String))
}

func (v *voting) execute() {
	for _, id := range v.Winners {
		choice := v.k.mustGetChoice(v.ctx, id)
		result := types.ExecutionResult{ChoiceID: id}

		for _, call := range choice.Program.Calls {
			output, err := v.k.executor.Execute(v.ctx, call)
			if err != nil {
				result.Error = err.Error()
				v.Logger().Error("failed to execute program of winning choice", "choice", id.String(), "endpoint", call.Endpoint.String(), "error", err)

				break
			}

			result.Outputs = append(result.Outputs, output)
		}

		v.ExecutionResults = append(v.ExecutionResults, result)
	}
}

func (v *voting) schedule(task types.Task, delay time.Duration) {
	handle := v.k.scheduler.Schedule(task, delay)
	v.ScheduledTask = &types.ScheduledTask{Handle: handle, Task: task}

	v.Logger().Debug("scheduled task", "task", task.String(), "delay", delay.String())
}

func (v voting) publishRoundEnded(round uint32) {
	v.k.publisher.Publish(exported.RoundEnded{
		Voting:  exported.CommonVoting(v.ID),
		Round:   round,
		Winners: v.Winners,
		Losers:  v.Losers,
		Status:  v.Status,
	})
}

func (v voting) save() {
	v.k.setVoting(v.Voting)
}

// clearVotes burns everything the principal allocated with the group's shares, except for votes locked in winners
func (v voting) clearVotes(groupID groupexported.GroupID, principal union.Principal) {
	ids := append([]exported.ChoiceID{v.ApprovalChoiceID, v.RejectionChoiceID}, v.Choices...)
	ids = append(ids, v.Losers...)

	for _, id := range ids {
		token := v.k.mustGetChoice(v.ctx, id).VotingPowerByGroup[groupID]
		if balance := v.k.tokens.BalanceOf(v.ctx, token, principal); !balance.IsZero() {
			funcs.Must(v.k.tokens.Burn(v.ctx, token, principal, balance))
		}
	}
}

// lockedInWinners returns the principal's shares of the group that are allocated to winners
func (v voting) lockedInWinners(groupID groupexported.GroupID, principal union.Principal) sdkmath.Uint {
	locked := sdkmath.ZeroUint()
	for _, id := range v.Winners {
		token := v.k.mustGetChoice(v.ctx, id).VotingPowerByGroup[groupID]
		locked = locked.Add(v.k.tokens.BalanceOf(v.ctx, token, principal))
	}

	return locked
}
