package app

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
	accessExported "github.com/uniongov/union-core/x/access/exported"
	accessTypes "github.com/uniongov/union-core/x/access/types"
	groupExported "github.com/uniongov/union-core/x/group/exported"
	groupTypes "github.com/uniongov/union-core/x/group/types"
	nestedExported "github.com/uniongov/union-core/x/nested/exported"
	nestedTypes "github.com/uniongov/union-core/x/nested/types"
	permissionExported "github.com/uniongov/union-core/x/permission/exported"
	sharesExported "github.com/uniongov/union-core/x/shares/exported"
	threshold "github.com/uniongov/union-core/x/threshold/exported"
	votingExported "github.com/uniongov/union-core/x/voting/exported"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

const (
	unionA union.Principal = "union-a"
	unionB union.Principal = "union-b"

	council    groupExported.GroupID = 1
	federation groupExported.GroupID = 1
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestApp(id union.Principal, network *Network, clock *testClock) *App {
	app := NewApp(id, dbm.NewMemDB(), funcs.Must(btcec.NewPrivateKey()), network, clock, log.TestingLogger())
	network.Join(app)

	return app
}

func fractionOf(fraction string, group groupExported.GroupID) threshold.Value {
	return threshold.NewFractionOf(sdkmath.LegacyMustNewDecFromStr(fraction), threshold.Group(group))
}

func federationGenesis(members map[union.Principal]sdkmath.Uint) GenesisState {
	genesis := DefaultGenesisState(unionB)
	genesis.Groups = []GenesisGroup{{ID: federation, Name: "Federation", Members: members}}
	genesis.VotingConfigs = []votingTypes.VotingConfig{{
		ID:                  0,
		Name:                "Federation decisions",
		Permissions:         []permissionExported.PermissionID{0},
		ProposerConstraints: []accessExported.Allowee{accessExported.Group(federation, sdkmath.OneUint())},
		RoundSettings:       votingTypes.RoundSettings{Delay: time.Hour, Duration: 24 * time.Hour},
		Approval:            fractionOf("0.5", federation),
		Quorum:              fractionOf("0.5", federation),
		Rejection:           fractionOf("0.5", federation),
		Win:                 fractionOf("0.5", federation),
		NextRound:           fractionOf("0.1", federation),
	}}

	return genesis
}

func councilGenesis(members map[union.Principal]sdkmath.Uint, calculation nestedExported.VoteCalculation) GenesisState {
	genesis := DefaultGenesisState(unionA)
	genesis.Groups = []GenesisGroup{{ID: council, Name: "Council", Members: members}}
	genesis.NestedVotingConfigs = []nestedTypes.NestedVotingConfig{{
		ID:                   0,
		Name:                 "Federation delegate",
		RemoteUnionID:        unionB,
		RemoteGroupID:        federation,
		RemoteVotingConfigID: votingExported.CommonVotingConfig(0),
		VoteCalculation:      calculation,
		AlloweeGroups:        map[groupExported.GroupID]sdkmath.LegacyDec{council: sdkmath.LegacyOneDec()},
	}}

	return genesis
}

func sharesInfo(app *App, group groupExported.GroupID, principal union.Principal, at time.Time) sharesExported.SharesInfo {
	return funcs.Must(app.shares.GetSharesInfoAt(context.Background(), group, principal, at))
}

func localChoice(app *App, id nestedExported.NestedVotingID, remote votingExported.ChoiceID) votingExported.ChoiceID {
	for _, choice := range app.nested.GetChoices(context.Background(), id) {
		if choice.RemoteChoiceID == remote {
			return choice.ID
		}
	}

	panic("choice is not mirrored")
}

func TestApp_Federation(t *testing.T) {
	var (
		ctx              context.Context
		clock            *testClock
		a, b             *App
		alice, bob, dave union.Principal
		votingID         votingExported.VotingID
		bridge, tunnel   votingExported.ChoiceID
		nestedID         nestedExported.NestedVotingID
	)

	castNested := func(principal union.Principal, votes map[votingExported.ChoiceID]string) error {
		nested, _ := a.nested.GetNestedVoting(ctx, nestedID)

		fractions := make(map[votingExported.ChoiceID]sdkmath.LegacyDec)
		for remote, fraction := range votes {
			fractions[localChoice(a, nestedID, remote)] = sdkmath.LegacyMustNewDecFromStr(fraction)
		}

		_, err := a.Handle(ctx, principal, &nestedTypes.CastVoteRequest{
			NestedVotingID: nestedID,
			SharesInfo:     sharesInfo(a, council, principal, nested.CreatedAt),
			Votes:          fractions,
		})
		return err
	}

	castRemote := func(principal union.Principal, votes map[votingExported.ChoiceID]string) error {
		voting, _ := b.voting.GetVoting(ctx, votingID)

		fractions := make(map[votingExported.ChoiceID]sdkmath.LegacyDec)
		for id, fraction := range votes {
			fractions[id] = sdkmath.LegacyMustNewDecFromStr(fraction)
		}

		_, err := b.Handle(ctx, principal, &votingTypes.CastVoteRequest{
			VotingID:   votingID,
			SharesInfo: sharesInfo(b, federation, principal, voting.CreatedAt),
			Votes:      fractions,
		})
		return err
	}

	Given("two federated unions where union-a holds half of union-b's federation group", func() {
		ctx = context.Background()
		clock = &testClock{now: rand.Time()}
		network := NewNetwork()
		a = newTestApp(unionA, network, clock)
		b = newTestApp(unionB, network, clock)

		alice, bob, dave = "alice", "bob", "dave"
		assert.NoError(t, b.InitGenesis(ctx, federationGenesis(map[union.Principal]sdkmath.Uint{
			dave:   sdkmath.NewUint(50),
			unionA: sdkmath.NewUint(50),
		})))
		assert.NoError(t, a.InitGenesis(ctx, councilGenesis(map[union.Principal]sdkmath.Uint{
			alice: sdkmath.NewUint(60),
			bob:   sdkmath.NewUint(40),
		}, nestedExported.Total)))
		clock.advance(time.Minute)
	}).
		When("union-b approves a voting with two choices", func() {
			res := funcs.Must(b.Handle(ctx, dave, &votingTypes.CreateVotingRequest{VotingConfigID: 0, Name: "Crossing", WinnersNeed: 1}))
			votingID = res.(*votingTypes.CreateVotingResponse).ID

			res = funcs.Must(b.Handle(ctx, dave, &votingTypes.CreateChoiceRequest{VotingID: votingID, Name: "Bridge", Program: permissionExported.EmptyProgram()}))
			bridge = res.(*votingTypes.CreateChoiceResponse).ID
			res = funcs.Must(b.Handle(ctx, dave, &votingTypes.CreateChoiceRequest{VotingID: votingID, Name: "Tunnel", Program: permissionExported.EmptyProgram()}))
			tunnel = res.(*votingTypes.CreateChoiceResponse).ID

			voting, _ := b.voting.GetVoting(ctx, votingID)
			assert.NoError(t, castRemote(dave, map[votingExported.ChoiceID]string{voting.ApprovalChoiceID: "1"}))
		}).
		When2(When("union-a proxies the voting", func() {
			res := funcs.Must(a.Handle(ctx, alice, &nestedTypes.CreateNestedVotingRequest{
				VotingConfigID: 0,
				RemoteVotingID: votingExported.CommonVoting(votingID),
			}))
			nestedID = res.(*nestedTypes.CreateNestedVotingResponse).ID
		})).
		Branch(
			Then("the proxy is frozen until the remote round starts", func(t *testing.T) {
				nested, ok := a.nested.GetNestedVoting(ctx, nestedID)
				assert.True(t, ok)
				assert.True(t, nested.Frozen)
				assert.Len(t, a.nested.GetChoices(ctx, nestedID), 3)
				assert.Equal(t, []union.Principal{unionA}, b.subscriptions.subscribers(votingExported.CommonVoting(votingID)))

				assert.ErrorIs(t, castNested(alice, map[votingExported.ChoiceID]string{bridge: "1"}), nestedTypes.ErrFrozen)
			}),

			When("the remote round starts and the council votes", func() {
				clock.advance(time.Hour)
				assert.Equal(t, 1, b.Tick(ctx))

				assert.NoError(t, castNested(alice, map[votingExported.ChoiceID]string{bridge: "1"}))
				assert.NoError(t, castNested(bob, map[votingExported.ChoiceID]string{tunnel: "1"}))
			}).
				Then("union-a's shares are split by the council's allocation", func(t *testing.T) {
					nested, _ := a.nested.GetNestedVoting(ctx, nestedID)
					assert.False(t, nested.Frozen)

					votes := b.voting.GetVotesOf(ctx, votingID, federation, unionA)
					assert.True(t, votes[bridge].Equal(sdkmath.NewUint(30)))
					assert.True(t, votes[tunnel].Equal(sdkmath.NewUint(20)))

					voting, _ := b.voting.GetVoting(ctx, votingID)
					assert.Equal(t, votingExported.StatusRound(1), voting.Status)
				}),

			When("the remote voting is decided", func() {
				clock.advance(time.Hour)
				b.Tick(ctx)

				assert.NoError(t, castNested(alice, map[votingExported.ChoiceID]string{bridge: "1"}))
				assert.NoError(t, castRemote(dave, map[votingExported.ChoiceID]string{bridge: "1"}))
			}).
				Then("the proxy is torn down", func(t *testing.T) {
					voting, _ := b.voting.GetVoting(ctx, votingID)
					assert.Equal(t, votingExported.StatusSuccess(), voting.Status)
					assert.Equal(t, []votingExported.ChoiceID{bridge}, voting.Winners)

					_, ok := a.nested.GetNestedVoting(ctx, nestedID)
					assert.False(t, ok)
					assert.Empty(t, a.nested.GetChoices(ctx, nestedID))
					assert.Empty(t, b.subscriptions.subscribers(votingExported.CommonVoting(votingID)))

					_, ok = b.NextDue()
					assert.False(t, ok)
				}),
		).Run(t)
}

func TestApp_Handle(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{now: rand.Time()}

	t.Run("callers need access to the endpoint", func(t *testing.T) {
		app := newTestApp(unionA, NewNetwork(), clock)
		assert.NoError(t, app.InitGenesis(ctx, GenesisState{}))

		_, err := app.Handle(ctx, "alice", &groupTypes.CreateGroupRequest{Name: "Council"})
		assert.ErrorIs(t, err, accessTypes.ErrAccessDenied)
	})

	t.Run("messages are validated before access is checked", func(t *testing.T) {
		app := newTestApp(unionA, NewNetwork(), clock)
		assert.NoError(t, app.InitGenesis(ctx, GenesisState{}))

		_, err := app.Handle(ctx, "alice", &groupTypes.CreateGroupRequest{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("calls are decoded by method", func(t *testing.T) {
		app := newTestApp(unionA, NewNetwork(), clock)
		assert.NoError(t, app.InitGenesis(ctx, DefaultGenesisState(unionA)))

		res, err := app.Call(ctx, "alice", "create_group", []byte(`{"name":"Council","transferable":true}`))
		assert.NoError(t, err)
		assert.JSONEq(t, `{"id":1}`, string(res))

		_, err = app.Call(ctx, "alice", "launch_rocket", nil)
		assert.ErrorIs(t, err, ErrUnknownRoute)

		_, err = app.Call(ctx, "alice", "create_group", []byte(`{"name":`))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("genesis ids must be sequential", func(t *testing.T) {
		app := newTestApp(unionA, NewNetwork(), clock)
		genesis := DefaultGenesisState(unionA)
		genesis.Groups = []GenesisGroup{{ID: 2, Name: "Council"}}

		assert.ErrorIs(t, app.InitGenesis(ctx, genesis), ErrGenesis)
	})

	t.Run("genesis can only be imported once", func(t *testing.T) {
		app := newTestApp(unionA, NewNetwork(), clock)
		assert.False(t, app.IsInitialized(ctx))

		assert.NoError(t, app.InitGenesis(ctx, DefaultGenesisState(unionA)))
		assert.True(t, app.IsInitialized(ctx))
		assert.ErrorIs(t, app.InitGenesis(ctx, DefaultGenesisState(unionA)), ErrGenesis)
	})

	t.Run("unknown peers cannot be resolved", func(t *testing.T) {
		_, err := NewNetwork().Peer(unionA, unionB)
		assert.ErrorIs(t, err, ErrUnknownPeer)
	})
}

func TestRouter_AddRoute(t *testing.T) {
	handler := func(context.Context, union.Principal, union.Msg) (interface{}, error) { return nil, nil }
	router := NewRouter().AddRoute(groupTypes.ModuleName, handler, &groupTypes.CreateGroupRequest{})

	msg, ok := router.NewMsg("create_group")
	assert.True(t, ok)
	assert.IsType(t, &groupTypes.CreateGroupRequest{}, msg)
	assert.True(t, router.HasRoute("create_group"))

	assert.Panics(t, func() { router.AddRoute("other", handler, &groupTypes.CreateGroupRequest{}) })
	assert.Panics(t, func() { router.AddRoute("other", handler, groupTypes.UpdateGroupRequest{}) })
}
