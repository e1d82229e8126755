package keeper_test

import (
	"context"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/btcsuite/btcd/btcec/v2"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/assert"

	"github.com/axelarnetwork/utils/funcs"
	. "github.com/axelarnetwork/utils/test"

	"github.com/uniongov/union-core/testutils/rand"
	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils/events"
	accessexported "github.com/uniongov/union-core/x/access/exported"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	groupkeeper "github.com/uniongov/union-core/x/group/keeper"
	permissionexported "github.com/uniongov/union-core/x/permission/exported"
	permissionkeeper "github.com/uniongov/union-core/x/permission/keeper"
	permissiontypes "github.com/uniongov/union-core/x/permission/types"
	sharesexported "github.com/uniongov/union-core/x/shares/exported"
	shareskeeper "github.com/uniongov/union-core/x/shares/keeper"
	threshold "github.com/uniongov/union-core/x/threshold/exported"
	tokenkeeper "github.com/uniongov/union-core/x/token/keeper"
	"github.com/uniongov/union-core/x/voting/exported"
	"github.com/uniongov/union-core/x/voting/keeper"
	"github.com/uniongov/union-core/x/voting/types"
	"github.com/uniongov/union-core/x/voting/types/mock"
)

const canister = "union-a"

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type recorder struct{ events []events.Event }

func (r *recorder) Publish(event events.Event) { r.events = append(r.events, event) }

type fixture struct {
	ctx         context.Context
	k           keeper.Keeper
	groups      *groupkeeper.Keeper
	shares      shareskeeper.Keeper
	permissions *permissionkeeper.Keeper
	scheduler   *mock.SchedulerMock
	executor    *mock.ExecutorMock
	published   *recorder
	clock       *testClock

	pending    map[uint64]types.Task
	permission permissionexported.PermissionID
	group      groupexported.GroupID
}

func setup() *fixture {
	db := dbm.NewMemDB()
	f := &fixture{
		ctx:       context.Background(),
		clock:     &testClock{now: rand.Time()},
		published: &recorder{},
		pending:   make(map[uint64]types.Task),
	}

	var next uint64
	f.scheduler = &mock.SchedulerMock{
		ScheduleFunc: func(task types.Task, _ time.Duration) uint64 {
			next++
			f.pending[next] = task
			return next
		},
		CancelFunc: func(handle uint64) { delete(f.pending, handle) },
	}
	f.executor = &mock.ExecutorMock{
		ExecuteFunc: func(_ context.Context, call permissionexported.RemoteCall) ([]byte, error) {
			return call.Args, nil
		},
	}

	tokens := tokenkeeper.NewKeeper(db, log.TestingLogger())
	f.groups = groupkeeper.NewKeeper(db, tokens, log.TestingLogger())
	f.shares = shareskeeper.NewKeeper(db, f.groups, funcs.Must(btcec.NewPrivateKey()), f.clock, log.TestingLogger())
	f.groups.SetHooks(f.shares.Hooks())
	f.groups.InitHasProfileGroup(f.ctx)

	f.permissions = permissionkeeper.NewKeeper(db, log.TestingLogger())
	f.k = keeper.NewKeeper(db, tokens, f.groups, f.permissions, f.scheduler, f.executor, f.published, f.clock, log.TestingLogger())
	f.permissions.SetHooks(f.k.Hooks())

	f.permission = funcs.Must(f.permissions.CreatePermission(f.ctx, "council", "",
		[]permissionexported.Target{permissionexported.SelfEmptyProgram(), permissionexported.Canister(canister)}, permissiontypes.Whitelist))
	f.group = funcs.Must(f.groups.CreateGroup(f.ctx, "Council", "", false, true))

	return f
}

func (f *fixture) mint(principal union.Principal, amount uint64) {
	funcs.MustNoErr(f.groups.Mint(f.ctx, f.group, principal, sdkmath.NewUint(amount)))
}

func fractionOf(fraction string, target threshold.Target) threshold.Value {
	return threshold.NewFractionOf(sdkmath.LegacyMustNewDecFromStr(fraction), target)
}

func (f *fixture) config() types.VotingConfig {
	return types.VotingConfig{
		Name:                "Council decisions",
		Permissions:         []permissionexported.PermissionID{f.permission},
		ProposerConstraints: []accessexported.Allowee{accessexported.Group(f.group, sdkmath.OneUint())},
		RoundSettings:       types.RoundSettings{Delay: time.Hour, Duration: 24 * time.Hour},
		Approval:            fractionOf("0.5", threshold.Group(f.group)),
		Quorum:              fractionOf("0.5", threshold.Group(f.group)),
		Rejection:           fractionOf("0.5", threshold.Group(f.group)),
		Win:                 fractionOf("0.5", threshold.Group(f.group)),
		NextRound:           fractionOf("0.1", threshold.Group(f.group)),
	}
}

func (f *fixture) sharesInfo(votingID exported.VotingID, groupID groupexported.GroupID, principal union.Principal) sharesexported.SharesInfo {
	voting, _ := f.k.GetVoting(f.ctx, votingID)
	return funcs.Must(f.shares.GetSharesInfoAt(f.ctx, groupID, principal, voting.CreatedAt))
}

func (f *fixture) vote(votingID exported.VotingID, principal union.Principal, votes map[exported.ChoiceID]string) error {
	fractions := make(map[exported.ChoiceID]sdkmath.LegacyDec, len(votes))
	for id, fraction := range votes {
		fractions[id] = sdkmath.LegacyMustNewDecFromStr(fraction)
	}

	return f.k.CastVote(f.ctx, principal, votingID, f.sharesInfo(votingID, f.group, principal), fractions)
}

// fire delivers the pending task of the given kind
func (f *fixture) fire(kind types.TaskKind) types.Task {
	for handle, task := range f.pending {
		if task.Kind == kind {
			delete(f.pending, handle)
			funcs.MustNoErr(f.k.HandleTask(f.ctx, task))

			return task
		}
	}

	panic("no pending task")
}

func (f *fixture) status(votingID exported.VotingID) exported.Status {
	voting, _ := f.k.GetVoting(f.ctx, votingID)
	return voting.Status
}

func remoteProgram(method string) permissionexported.Program {
	return permissionexported.RemoteProgram(permissionexported.RemoteCall{
		Endpoint: permissionexported.NewEndpoint(canister, method),
		Args:     []byte(method),
	})
}

func TestKeeper_Lifecycle(t *testing.T) {
	var (
		f          *fixture
		alice, bob union.Principal
		votingID   exported.VotingID
		a, b       exported.ChoiceID
		voting     types.Voting
	)

	givenVoting := Given("a council with two members and a voting with two choices", func() {
		f = setup()
		members := rand.Principals(2)
		alice, bob = members[0], members[1]
		f.mint(alice, 60)
		f.mint(bob, 40)

		configID := funcs.Must(f.k.CreateVotingConfig(f.ctx, f.config()))
		votingID = funcs.Must(f.k.CreateVoting(f.ctx, alice, configID, "Treasury", "", 1))
		a = funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "Transfer", "", remoteProgram("transfer")))
		b = funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "Keep", "", permissionexported.EmptyProgram()))
		voting, _ = f.k.GetVoting(f.ctx, votingID)
	})

	whenApproved := When("the voting is approved", func() {
		assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{voting.ApprovalChoiceID: "1"}))
	})

	givenVoting.
		When2(whenApproved).
		Branch(
			Then("it waits for the first round", func(t *testing.T) {
				assert.Equal(t, exported.StatusPreRound(1), f.status(votingID))
				assert.Len(t, f.scheduler.ScheduleCalls(), 1)
				assert.Equal(t, time.Hour, f.scheduler.ScheduleCalls()[0].Delay)
			}),

			When("the round starts and all shares are voted for one choice", func() {
				f.fire(types.RoundStart)
				assert.NoError(t, f.vote(votingID, bob, map[exported.ChoiceID]string{a: "1"}))
				assert.Equal(t, exported.StatusRound(1), f.status(votingID))
				assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{a: "1"}))
			}).
				Then("the choice wins and its program is executed", func(t *testing.T) {
					voting, _ := f.k.GetVoting(f.ctx, votingID)
					assert.Equal(t, exported.StatusSuccess(), voting.Status)
					assert.Equal(t, []exported.ChoiceID{a}, voting.Winners)
					assert.Equal(t, []exported.ChoiceID{b}, voting.Losers)
					assert.Empty(t, voting.Choices)

					assert.Len(t, f.executor.ExecuteCalls(), 1)
					assert.Equal(t, []types.ExecutionResult{{ChoiceID: a, Outputs: [][]byte{[]byte("transfer")}}}, voting.ExecutionResults)

					assert.Empty(t, f.pending)
					assert.Contains(t, f.published.events, exported.VotingFinished{Voting: exported.CommonVoting(votingID), Status: exported.StatusSuccess()})
				}),

			When("the round starts and a duplicate start fires", func() {
				task := f.fire(types.RoundStart)
				assert.NoError(t, f.k.HandleTask(f.ctx, task))
				assert.NoError(t, f.k.HandleTask(f.ctx, types.Task{Kind: types.RoundEnd, VotingID: votingID, Round: 2}))
			}).
				Then("the stale fires are discarded", func(t *testing.T) {
					assert.Equal(t, exported.StatusRound(1), f.status(votingID))
					assert.Len(t, f.pending, 1)
					assert.Len(t, f.scheduler.ScheduleCalls(), 2)
				}),

			When("the round ends without quorum", func() {
				f.fire(types.RoundStart)
				assert.NoError(t, f.vote(votingID, bob, map[exported.ChoiceID]string{b: "1"}))
				f.fire(types.RoundEnd)
			}).
				Then("the voting fails", func(t *testing.T) {
					voting, _ := f.k.GetVoting(f.ctx, votingID)
					assert.Equal(t, exported.StatusFail("quorum not reached"), voting.Status)
					assert.ElementsMatch(t, []exported.ChoiceID{a, b}, voting.Losers)
					assert.Empty(t, f.executor.ExecuteCalls())
				}),

			When("the vote is replaced", func() {
				f.fire(types.RoundStart)
				assert.NoError(t, f.vote(votingID, bob, map[exported.ChoiceID]string{a: "0.5", b: "0.5"}))
				assert.NoError(t, f.vote(votingID, bob, map[exported.ChoiceID]string{b: "0.25"}))
			}).
				Then("only the latest allocation counts", func(t *testing.T) {
					votes := f.k.GetVotesOf(f.ctx, votingID, f.group, bob)
					assert.Len(t, votes, 1)
					assert.True(t, votes[b].Equal(sdkmath.NewUint(10)))
					assert.True(t, f.k.GetVotedShares(f.ctx, a)[f.group].IsZero())
				}),
		).Run(t)
}

func TestKeeper_MultipleRounds(t *testing.T) {
	f := setup()
	members := rand.Principals(2)
	alice, bob := members[0], members[1]
	f.mint(alice, 60)
	f.mint(bob, 40)

	config := f.config()
	config.Win = fractionOf("0.7", threshold.Group(f.group))
	config.NextRound = fractionOf("0.35", threshold.Group(f.group))
	config.RoundSettings.MaxRounds = 2
	configID := funcs.Must(f.k.CreateVotingConfig(f.ctx, config))

	votingID := funcs.Must(f.k.CreateVoting(f.ctx, alice, configID, "Board", "", 1))
	a := funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "A", "", permissionexported.EmptyProgram()))
	b := funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "B", "", permissionexported.EmptyProgram()))
	c := funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "C", "", permissionexported.EmptyProgram()))
	voting, _ := f.k.GetVoting(f.ctx, votingID)

	assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{voting.ApprovalChoiceID: "1"}))
	f.fire(types.RoundStart)

	assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{a: "0.5", b: "0.5"}))
	assert.NoError(t, f.vote(votingID, bob, map[exported.ChoiceID]string{a: "0.25", c: "0.75"}))
	f.fire(types.RoundEnd)

	voting, _ = f.k.GetVoting(f.ctx, votingID)
	assert.Equal(t, exported.StatusPreRound(2), voting.Status)
	assert.Equal(t, []exported.ChoiceID{a}, voting.Choices)
	assert.Equal(t, []exported.ChoiceID{b, c}, voting.Losers)
	assert.Contains(t, f.published.events, exported.RoundEnded{
		Voting:  exported.CommonVoting(votingID),
		Round:   1,
		Losers:  []exported.ChoiceID{b, c},
		Status:  exported.StatusPreRound(2),
		Winners: nil,
	})

	err := f.vote(votingID, bob, map[exported.ChoiceID]string{a: "1"})
	assert.ErrorIs(t, err, types.ErrInvalidState)

	f.fire(types.RoundStart)
	assert.ErrorIs(t, f.vote(votingID, bob, map[exported.ChoiceID]string{b: "1"}), types.ErrInvalidState)
	assert.NoError(t, f.vote(votingID, bob, map[exported.ChoiceID]string{a: "1"}))

	voting, _ = f.k.GetVoting(f.ctx, votingID)
	assert.Equal(t, exported.StatusSuccess(), voting.Status)
	assert.Equal(t, []exported.ChoiceID{a}, voting.Winners)
	assert.Equal(t, []exported.ChoiceID{b, c}, voting.Losers)
}

func TestKeeper_RoundLimit(t *testing.T) {
	f := setup()
	alice := rand.Principal()
	f.mint(alice, 10)

	config := f.config()
	config.Win = fractionOf("1", threshold.Group(f.group))
	config.RoundSettings.MaxRounds = 1
	configID := funcs.Must(f.k.CreateVotingConfig(f.ctx, config))

	votingID := funcs.Must(f.k.CreateVoting(f.ctx, alice, configID, "Limited", "", 1))
	a := funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "A", "", permissionexported.EmptyProgram()))
	voting, _ := f.k.GetVoting(f.ctx, votingID)

	assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{voting.ApprovalChoiceID: "1"}))
	f.fire(types.RoundStart)
	assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{a: "0.9"}))
	f.fire(types.RoundEnd)

	assert.Equal(t, exported.StatusFail("round limit reached"), f.status(votingID))
}

func TestKeeper_RejectionAlwaysWins(t *testing.T) {
	f := setup()
	alice := rand.Principal()
	f.mint(alice, 100)

	config := f.config()
	config.Approval = fractionOf("0.3", threshold.Group(f.group))
	config.Rejection = fractionOf("0.3", threshold.Group(f.group))
	configID := funcs.Must(f.k.CreateVotingConfig(f.ctx, config))

	votingID := funcs.Must(f.k.CreateVoting(f.ctx, alice, configID, "Contested", "", 1))
	funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "A", "", permissionexported.EmptyProgram()))
	voting, _ := f.k.GetVoting(f.ctx, votingID)

	assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{
		voting.ApprovalChoiceID:  "0.5",
		voting.RejectionChoiceID: "0.5",
	}))

	assert.Equal(t, exported.StatusRejected(), f.status(votingID))
	assert.Empty(t, f.pending)
	assert.ErrorIs(t, f.k.Approve(f.ctx, votingID), types.ErrInvalidState)
}

func TestKeeper_ProfileVeto(t *testing.T) {
	f := setup()
	alice, carol := rand.Principal(), rand.Principal()+"c"
	f.mint(alice, 100)
	funcs.MustNoErr(f.groups.RegisterProfile(f.ctx, carol, "Carol", ""))

	config := f.config()
	config.Rejection = threshold.NewQuantityOf(sdkmath.OneUint(), threshold.GroupOrProfile(groupexported.Profile(carol)))
	configID := funcs.Must(f.k.CreateVotingConfig(f.ctx, config))

	votingID := funcs.Must(f.k.CreateVoting(f.ctx, alice, configID, "Vetoed", "", 1))
	voting, _ := f.k.GetVoting(f.ctx, votingID)
	assert.True(t, voting.HasGroup(groupexported.HasProfileGroupID))

	err := f.k.Reject(f.ctx, votingID)
	assert.ErrorIs(t, err, types.ErrInvalidState)

	info := f.sharesInfo(votingID, groupexported.HasProfileGroupID, carol)
	assert.NoError(t, f.k.CastVote(f.ctx, carol, votingID, info, map[exported.ChoiceID]sdkmath.LegacyDec{
		voting.RejectionChoiceID: sdkmath.LegacyOneDec(),
	}))

	assert.Equal(t, exported.StatusRejected(), f.status(votingID))
}

func TestKeeper_CastVote_Validation(t *testing.T) {
	f := setup()
	members := rand.Principals(2)
	alice, bob := members[0], members[1]
	f.mint(alice, 60)
	f.mint(bob, 40)

	config := f.config()
	config.Win = fractionOf("0.6", threshold.Group(f.group))
	configID := funcs.Must(f.k.CreateVotingConfig(f.ctx, config))
	votingID := funcs.Must(f.k.CreateVoting(f.ctx, alice, configID, "Two winners", "", 2))
	a := funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "A", "", permissionexported.EmptyProgram()))
	b := funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "B", "", permissionexported.EmptyProgram()))
	voting, _ := f.k.GetVoting(f.ctx, votingID)

	t.Run("choices cannot be voted for before approval", func(t *testing.T) {
		assert.ErrorIs(t, f.vote(votingID, alice, map[exported.ChoiceID]string{a: "1"}), types.ErrInvalidState)
	})

	t.Run("fractions must not exceed one", func(t *testing.T) {
		err := f.vote(votingID, alice, map[exported.ChoiceID]string{voting.ApprovalChoiceID: "0.6", voting.RejectionChoiceID: "0.41"})
		assert.ErrorIs(t, err, types.ErrFractionOverflow)
		assert.Empty(t, f.k.GetVotesOf(f.ctx, votingID, f.group, alice))
	})

	t.Run("shares info must belong to the caller", func(t *testing.T) {
		err := f.k.CastVote(f.ctx, bob, votingID, f.sharesInfo(votingID, f.group, alice), nil)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("shares info must be taken at creation time", func(t *testing.T) {
		info := funcs.Must(f.shares.GetSharesInfoAt(f.ctx, f.group, alice, voting.CreatedAt.Add(time.Second)))
		assert.ErrorIs(t, f.k.CastVote(f.ctx, alice, votingID, info, nil), types.ErrValidation)
	})

	t.Run("missing votings are not found", func(t *testing.T) {
		err := f.k.CastVote(f.ctx, alice, votingID+1, f.sharesInfo(votingID, f.group, alice), nil)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("shares locked in winners cannot be reallocated", func(t *testing.T) {
		assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{voting.ApprovalChoiceID: "1"}))
		f.fire(types.RoundStart)

		assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{a: "1"}))
		voting, _ := f.k.GetVoting(f.ctx, votingID)
		assert.Equal(t, []exported.ChoiceID{a}, voting.Winners)
		assert.Equal(t, exported.StatusRound(1), voting.Status)

		assert.ErrorIs(t, f.vote(votingID, alice, map[exported.ChoiceID]string{b: "0.5"}), types.ErrInsufficientShares)
		assert.NoError(t, f.vote(votingID, bob, map[exported.ChoiceID]string{b: "1"}))
	})
}

func TestKeeper_Choices(t *testing.T) {
	f := setup()
	members := rand.Principals(2)
	alice, bob := members[0], members[1]
	f.mint(alice, 60)

	configID := funcs.Must(f.k.CreateVotingConfig(f.ctx, f.config()))

	_, err := f.k.CreateVoting(f.ctx, bob, configID, "Not a member", "", 1)
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	votingID := funcs.Must(f.k.CreateVoting(f.ctx, alice, configID, "Choices", "", 1))

	_, err = f.k.CreateChoice(f.ctx, bob, votingID, "A", "", permissionexported.EmptyProgram())
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	forbidden := permissionexported.RemoteProgram(permissionexported.RemoteCall{Endpoint: permissionexported.NewEndpoint("union-b", "transfer")})
	_, err = f.k.CreateChoice(f.ctx, alice, votingID, "A", "", forbidden)
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	a := funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "A", "", remoteProgram("mint")))
	assert.NoError(t, f.k.UpdateChoice(f.ctx, alice, a, "A'", "renamed", remoteProgram("burn")))
	choice, _ := f.k.GetChoice(f.ctx, a)
	assert.Equal(t, "A'", choice.Name)
	assert.Len(t, choice.VotingPowerByGroup, 1)

	voting, _ := f.k.GetVoting(f.ctx, votingID)
	assert.ErrorIs(t, f.k.UpdateChoice(f.ctx, alice, voting.ApprovalChoiceID, "B", "", permissionexported.EmptyProgram()), types.ErrValidation)

	assert.NoError(t, f.k.DeleteChoice(f.ctx, alice, a))
	_, ok := f.k.GetChoice(f.ctx, a)
	assert.False(t, ok)
	assert.Len(t, f.k.GetChoices(f.ctx, votingID), 2)

	t.Run("approving a voting without enough choices fails it", func(t *testing.T) {
		assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{voting.ApprovalChoiceID: "1"}))
		assert.Equal(t, exported.StatusFail("not enough choices left"), f.status(votingID))

		_, err := f.k.CreateChoice(f.ctx, alice, votingID, "late", "", permissionexported.EmptyProgram())
		assert.ErrorIs(t, err, types.ErrInvalidState)
	})
}

func TestKeeper_VotingConfigs(t *testing.T) {
	f := setup()
	alice := rand.Principal()
	f.mint(alice, 1)

	config := f.config()
	config.Quorum = fractionOf("0.5", threshold.Group(f.group+1))
	_, err := f.k.CreateVotingConfig(f.ctx, config)
	assert.ErrorIs(t, err, types.ErrNotFound)

	config.Quorum = fractionOf("1.5", threshold.Group(f.group))
	_, err = f.k.CreateVotingConfig(f.ctx, config)
	assert.ErrorIs(t, err, types.ErrValidation)

	configID := funcs.Must(f.k.CreateVotingConfig(f.ctx, f.config()))
	assert.Error(t, f.permissions.DeletePermission(f.ctx, f.permission))

	votingID := funcs.Must(f.k.CreateVoting(f.ctx, alice, configID, "Running", "", 1))
	updated := f.config()
	updated.ID = configID
	updated.Name = "Renamed"
	assert.ErrorIs(t, f.k.UpdateVotingConfig(f.ctx, updated), types.ErrInUse)
	assert.ErrorIs(t, f.k.DeleteVotingConfig(f.ctx, configID), types.ErrInUse)

	voting, _ := f.k.GetVoting(f.ctx, votingID)
	assert.NoError(t, f.vote(votingID, alice, map[exported.ChoiceID]string{voting.RejectionChoiceID: "1"}))
	assert.Equal(t, exported.StatusRejected(), f.status(votingID))

	assert.NoError(t, f.k.UpdateVotingConfig(f.ctx, updated))
	assert.NoError(t, f.k.DeleteVotingConfig(f.ctx, configID))
	assert.NoError(t, f.permissions.DeletePermission(f.ctx, f.permission))
}

func TestKeeper_ListsStoredEntities(t *testing.T) {
	f := setup()
	alice := rand.Principal()
	f.mint(alice, 1)

	first := funcs.Must(f.k.CreateVotingConfig(f.ctx, f.config()))
	second := funcs.Must(f.k.CreateVotingConfig(f.ctx, f.config()))
	votingID := funcs.Must(f.k.CreateVoting(f.ctx, alice, first, "First", "", 1))
	funcs.Must(f.k.CreateVoting(f.ctx, alice, second, "Second", "", 1))
	funcs.Must(f.k.CreateChoice(f.ctx, alice, votingID, "Keep", "", permissionexported.EmptyProgram()))

	configs := f.k.GetVotingConfigs(f.ctx)
	assert.Len(t, configs, 2)
	assert.Equal(t, first, configs[0].ID)
	assert.Equal(t, second, configs[1].ID)

	votings := f.k.GetVotings(f.ctx)
	assert.Len(t, votings, 2)
	assert.Equal(t, votingID, votings[0].ID)

	// approval, rejection and the created choice
	assert.Len(t, f.k.GetChoices(f.ctx, votingID), 3)
	assert.True(t, f.k.IsPermissionInUse(f.ctx, f.permission))
}
