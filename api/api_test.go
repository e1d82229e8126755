package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/btcsuite/btcd/btcec/v2"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/assert"

	"github.com/axelarnetwork/utils/funcs"
	. "github.com/axelarnetwork/utils/test"

	"github.com/uniongov/union-core/api"
	"github.com/uniongov/union-core/app"
	"github.com/uniongov/union-core/testutils/rand"
	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	accessExported "github.com/uniongov/union-core/x/access/exported"
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

	group groupExported.GroupID = 1
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type server struct {
	app *app.App
	srv *httptest.Server
}

func (s server) do(method, path string, caller union.Principal, body interface{}, out interface{}) error {
	var bz []byte
	if body != nil {
		bz = funcs.Must(json.Marshal(body))
	}

	req := funcs.Must(http.NewRequest(method, s.srv.URL+path, bytes.NewReader(bz)))
	if caller != "" {
		req.Header.Set(api.CallerHeader, caller.String())
	}

	res := funcs.Must(s.srv.Client().Do(req))
	defer func() { _ = res.Body.Close() }()

	return utils.ReadResponse(res, out)
}

func (s server) call(caller union.Principal, method string, args interface{}, out interface{}) error {
	return s.do(http.MethodPost, "/call/"+method, caller, args, out)
}

func (s server) query(out interface{}, path ...interface{}) error {
	q := ""
	for _, p := range path {
		q += fmt.Sprintf("/%v", p)
	}

	return s.do(http.MethodGet, "/query"+q, "", nil, out)
}

func (s server) sharesInfo(caller union.Principal, at time.Time) sharesExported.SharesInfo {
	var info sharesExported.SharesInfo
	path := fmt.Sprintf("/peer/shares/%s?at=%s", group, url.QueryEscape(at.Format(time.RFC3339Nano)))
	funcs.MustNoErr(s.do(http.MethodGet, path, caller, nil, &info))

	return info
}

func newServers(clock *testClock, ids ...union.Principal) map[union.Principal]*server {
	servers := make(map[union.Principal]*server)
	addresses := make(map[union.Principal]string)

	for _, id := range ids {
		s := &server{}
		s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			api.NewRouter(s.app, nil, log.NewNopLogger()).ServeHTTP(w, r)
		}))
		servers[id] = s
		addresses[id] = s.srv.URL
	}

	for _, id := range ids {
		peers := api.NewPeers(addresses, 5*time.Second, log.TestingLogger())
		servers[id].app = app.NewApp(id, dbm.NewMemDB(), funcs.Must(btcec.NewPrivateKey()), peers, clock, log.TestingLogger())
	}

	return servers
}

func fractionOf(fraction string) threshold.Value {
	return threshold.NewFractionOf(sdkmath.LegacyMustNewDecFromStr(fraction), threshold.Group(group))
}

func TestFederationOverHTTP(t *testing.T) {
	var (
		ctx       context.Context
		clock     *testClock
		a, b      *server
		votingID  votingExported.VotingID
		bridge    votingExported.ChoiceID
		nestedID  nestedExported.NestedVotingID
		castLocal func(principal union.Principal, remote votingExported.ChoiceID) error
	)

	Given("two unions federating over http", func() {
		ctx = context.Background()
		clock = &testClock{now: rand.Time().UTC()}
		servers := newServers(clock, unionA, unionB)
		a, b = servers[unionA], servers[unionB]
		t.Cleanup(a.srv.Close)
		t.Cleanup(b.srv.Close)

		genesisB := app.DefaultGenesisState(unionB)
		genesisB.Groups = []app.GenesisGroup{{ID: group, Name: "Federation", Members: map[union.Principal]sdkmath.Uint{
			"dave": sdkmath.NewUint(50),
			unionA: sdkmath.NewUint(50),
		}}}
		genesisB.VotingConfigs = []votingTypes.VotingConfig{{
			Name:                "Federation decisions",
			Permissions:         []permissionExported.PermissionID{0},
			ProposerConstraints: []accessExported.Allowee{accessExported.Group(group, sdkmath.OneUint())},
			RoundSettings:       votingTypes.RoundSettings{Delay: time.Hour, Duration: 24 * time.Hour},
			Approval:            fractionOf("0.5"),
			Quorum:              fractionOf("0.5"),
			Rejection:           fractionOf("0.5"),
			Win:                 fractionOf("0.5"),
			NextRound:           fractionOf("0.1"),
		}}
		assert.NoError(t, b.app.InitGenesis(ctx, genesisB))

		genesisA := app.DefaultGenesisState(unionA)
		genesisA.Groups = []app.GenesisGroup{{ID: group, Name: "Council", Members: map[union.Principal]sdkmath.Uint{
			"alice": sdkmath.NewUint(60),
			"bob":   sdkmath.NewUint(40),
		}}}
		genesisA.NestedVotingConfigs = []nestedTypes.NestedVotingConfig{{
			Name:                 "Federation delegate",
			RemoteUnionID:        unionB,
			RemoteGroupID:        group,
			RemoteVotingConfigID: votingExported.CommonVotingConfig(0),
			VoteCalculation:      nestedExported.Total,
			AlloweeGroups:        map[groupExported.GroupID]sdkmath.LegacyDec{group: sdkmath.LegacyOneDec()},
		}}
		assert.NoError(t, a.app.InitGenesis(ctx, genesisA))
		clock.now = clock.now.Add(time.Minute)

		castLocal = func(principal union.Principal, remote votingExported.ChoiceID) error {
			var res nestedTypes.NestedVotingResponse
			funcs.MustNoErr(a.query(&res, app.QueryNestedVoting, nestedID))

			votes := make(map[votingExported.ChoiceID]sdkmath.LegacyDec)
			for _, choice := range res.Choices {
				if choice.RemoteChoiceID == remote {
					votes[choice.ID] = sdkmath.LegacyOneDec()
				}
			}

			return a.call(principal, "cast_my_nested_vote", nestedTypes.CastVoteRequest{
				NestedVotingID: nestedID,
				SharesInfo:     a.sharesInfo(principal, res.NestedVoting.CreatedAt),
				Votes:          votes,
			}, nil)
		}
	}).
		When("dave proposes and approves a voting on union-b", func() {
			var created votingTypes.CreateVotingResponse
			assert.NoError(t, b.call("dave", "create_voting", votingTypes.CreateVotingRequest{Name: "Crossing", WinnersNeed: 1}, &created))
			votingID = created.ID

			var choice votingTypes.CreateChoiceResponse
			assert.NoError(t, b.call("dave", "create_voting_choice", votingTypes.CreateChoiceRequest{VotingID: votingID, Name: "Bridge", Program: permissionExported.EmptyProgram()}, &choice))
			bridge = choice.ID
			assert.NoError(t, b.call("dave", "create_voting_choice", votingTypes.CreateChoiceRequest{VotingID: votingID, Name: "Tunnel", Program: permissionExported.EmptyProgram()}, &choice))

			var res nestedTypes.VotingResponse
			assert.NoError(t, b.query(&res, app.QueryVoting, votingID))
			assert.NoError(t, b.call("dave", "cast_my_vote", votingTypes.CastVoteRequest{
				VotingID:   votingID,
				SharesInfo: b.sharesInfo("dave", res.Voting.CreatedAt),
				Votes:      map[votingExported.ChoiceID]sdkmath.LegacyDec{res.Voting.ApprovalChoiceID: sdkmath.LegacyOneDec()},
			}, nil))
		}).
		When2(When("alice proxies the voting on union-a", func() {
			var created nestedTypes.CreateNestedVotingResponse
			assert.NoError(t, a.call("alice", "create_nested_voting", nestedTypes.CreateNestedVotingRequest{
				RemoteVotingID: votingExported.CommonVoting(votingID),
			}, &created))
			nestedID = created.ID
		})).
		Branch(
			Then("the proxy stays frozen and rejects votes until the remote round starts", func(t *testing.T) {
				var res nestedTypes.NestedVotingResponse
				assert.NoError(t, a.query(&res, app.QueryNestedVoting, nestedID))
				assert.True(t, res.NestedVoting.Frozen)
				assert.Len(t, res.Choices, 3)

				assert.ErrorIs(t, castLocal("alice", bridge), nestedTypes.ErrFrozen)
			}),

			When("the remote round starts", func() {
				clock.now = clock.now.Add(time.Hour)
				assert.Equal(t, 1, b.app.Tick(ctx))
			}).
				When("alice votes for the bridge", func() {
					assert.NoError(t, castLocal("alice", bridge))
				}).
				Branch(
					Then("union-b records the share of union-a", func(t *testing.T) {
						var votes map[votingExported.ChoiceID]sdkmath.Uint
						assert.NoError(t, b.query(&votes, app.QueryVotes, votingID, group, unionA))
						assert.True(t, votes[bridge].Equal(sdkmath.NewUint(30)))

						var outbound map[votingExported.ChoiceID]sdkmath.LegacyDec
						assert.NoError(t, a.query(&outbound, app.QueryOutboundVote, nestedID))
						assert.True(t, outbound[bridge].Equal(sdkmath.LegacyMustNewDecFromStr("0.6")))
					}),

					When("dave votes for the bridge too", func() {
						var res nestedTypes.VotingResponse
						assert.NoError(t, b.query(&res, app.QueryVoting, votingID))
						assert.NoError(t, b.call("dave", "cast_my_vote", votingTypes.CastVoteRequest{
							VotingID:   votingID,
							SharesInfo: b.sharesInfo("dave", res.Voting.CreatedAt),
							Votes:      map[votingExported.ChoiceID]sdkmath.LegacyDec{bridge: sdkmath.LegacyOneDec()},
						}, nil))
					}).
						Then("the voting succeeds and union-a drops its proxy", func(t *testing.T) {
							var res nestedTypes.VotingResponse
							assert.NoError(t, b.query(&res, app.QueryVoting, votingID))
							assert.True(t, res.Voting.Status.Is(votingExported.Success))
							assert.Equal(t, []votingExported.ChoiceID{bridge}, res.Voting.Winners)

							assert.ErrorIs(t, a.query(nil, app.QueryNestedVoting, nestedID), nestedTypes.ErrNotFound)
						}),
				),
		).
		Run(t)
}

func TestRouter(t *testing.T) {
	clock := &testClock{now: rand.Time().UTC()}
	s := newServers(clock, unionA)[unionA]
	defer s.srv.Close()

	assert.NoError(t, s.app.InitGenesis(context.Background(), app.DefaultGenesisState(unionA)))

	t.Run("unknown query", func(t *testing.T) {
		assert.ErrorIs(t, s.query(nil, "unknown"), app.ErrUnknownRoute)
	})

	t.Run("missing caller", func(t *testing.T) {
		assert.ErrorIs(t, s.call("", "create_group", groupTypes.CreateGroupRequest{Name: "Council"}, nil), app.ErrValidation)
	})

	t.Run("invalid timestamp", func(t *testing.T) {
		err := s.do(http.MethodGet, fmt.Sprintf("/peer/shares/%s?at=yesterday", group), "alice", nil, nil)
		assert.ErrorIs(t, err, app.ErrValidation)
	})

	t.Run("call and query", func(t *testing.T) {
		var created groupTypes.CreateGroupResponse
		assert.NoError(t, s.call("alice", "create_group", groupTypes.CreateGroupRequest{Name: "Council", Acceptable: true}, &created))

		var g groupTypes.Group
		assert.NoError(t, s.query(&g, app.QueryGroup, created.ID))
		assert.Equal(t, "Council", g.Name)

		assert.ErrorIs(t, s.query(nil, app.QueryGroup, 42), groupTypes.ErrNotFound)
	})

	t.Run("unknown peer", func(t *testing.T) {
		peers := api.NewPeers(nil, time.Second, log.TestingLogger())
		_, err := peers.Peer(unionA, unionB)
		assert.ErrorIs(t, err, app.ErrUnknownPeer)
	})

	t.Run("deliveries to unreachable peers fail after retries", func(t *testing.T) {
		closed := httptest.NewServer(http.NotFoundHandler())
		closed.Close()

		peers := api.NewPeers(map[union.Principal]string{unionB: closed.URL}, time.Second, log.TestingLogger())
		err := peers.Deliver(context.Background(), unionA, unionB, votingExported.RoundStarted{Round: 1})
		assert.ErrorIs(t, err, app.ErrUnreachable)
	})

	t.Run("events of unknown topics are refused", func(t *testing.T) {
		envelope := api.EventEnvelope{Topic: "unknown", Event: json.RawMessage(`{}`)}
		assert.ErrorIs(t, s.do(http.MethodPost, api.EventsPattern, unionB, envelope, nil), app.ErrValidation)
	})
}
