package app

import (
	"context"
	"slices"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"golang.org/x/exp/maps"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils/events"
	groupExported "github.com/uniongov/union-core/x/group/exported"
	nestedExported "github.com/uniongov/union-core/x/nested/exported"
	nestedTypes "github.com/uniongov/union-core/x/nested/types"
	permissionExported "github.com/uniongov/union-core/x/permission/exported"
	sharesExported "github.com/uniongov/union-core/x/shares/exported"
	votingExported "github.com/uniongov/union-core/x/voting/exported"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

// Peers connects a union to the other unions it federates with
type Peers interface {
	// Peer returns the view the caller has on the union with the given id
	Peer(caller, id union.Principal) (nestedTypes.RemoteUnion, error)
	// Call invokes an endpoint of another union
	Call(ctx context.Context, caller union.Principal, call permissionExported.RemoteCall) ([]byte, error)
	// Deliver hands an event published by one union to a subscribed union
	Deliver(ctx context.Context, from, to union.Principal, event events.Event) error
}

var _ Peers = &Network{}

// Network is an in-process registry of unions
type Network struct {
	mu   sync.RWMutex
	apps map[union.Principal]*App
}

// NewNetwork returns an empty network
func NewNetwork() *Network {
	return &Network{apps: make(map[union.Principal]*App)}
}

// Join adds the app to the network. Panics if a union with the same id joined already.
func (n *Network) Join(app *App) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.apps[app.self]; ok {
		panic("union " + app.self.String() + " already joined the network")
	}

	n.apps[app.self] = app
}

func (n *Network) get(id union.Principal) (*App, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	app, ok := n.apps[id]
	if !ok {
		return nil, errorsmod.Wrapf(ErrUnknownPeer, "union %s", id)
	}

	return app, nil
}

// Peer implements Peers
func (n *Network) Peer(caller, id union.Principal) (nestedTypes.RemoteUnion, error) {
	app, err := n.get(id)
	if err != nil {
		return nil, err
	}

	return NewPeer(app, caller), nil
}

// Call implements Peers
func (n *Network) Call(ctx context.Context, caller union.Principal, call permissionExported.RemoteCall) ([]byte, error) {
	app, err := n.get(union.Principal(call.Endpoint.CanisterID))
	if err != nil {
		return nil, err
	}

	return app.Call(ctx, caller, call.Endpoint.Method, call.Args)
}

// Deliver implements Peers
func (n *Network) Deliver(ctx context.Context, from, to union.Principal, event events.Event) error {
	app, err := n.get(to)
	if err != nil {
		return err
	}

	app.HandleRemoteEvent(ctx, from, event)

	return nil
}

var _ nestedTypes.RemoteUnion = Peer{}

// Peer exposes a union to one of its member unions
type Peer struct {
	app    *App
	caller union.Principal
}

// NewPeer returns the view the caller has on the app
func NewPeer(app *App, caller union.Principal) Peer {
	return Peer{app: app, caller: caller}
}

// GetMyGroups returns the groups the caller holds shares of
func (p Peer) GetMyGroups(ctx context.Context) ([]groupExported.GroupID, error) {
	p.app.mu.Lock()
	defer p.app.mu.Unlock()

	return p.app.group.GetGroupsOf(ctx, p.caller), nil
}

// GetVoting returns a common voting with all its choices
func (p Peer) GetVoting(ctx context.Context, id votingExported.VotingID) (nestedTypes.VotingResponse, error) {
	p.app.mu.Lock()
	defer p.app.mu.Unlock()

	voting, ok := p.app.voting.GetVoting(ctx, id)
	if !ok {
		return nestedTypes.VotingResponse{}, errorsmod.Wrapf(votingTypes.ErrNotFound, "voting %s", id)
	}

	return nestedTypes.VotingResponse{Voting: voting, Choices: p.app.voting.GetChoices(ctx, id)}, nil
}

// GetVotingConfig returns a voting config
func (p Peer) GetVotingConfig(ctx context.Context, id votingExported.VotingConfigID) (votingTypes.VotingConfig, error) {
	p.app.mu.Lock()
	defer p.app.mu.Unlock()

	config, ok := p.app.voting.GetVotingConfig(ctx, id)
	if !ok {
		return votingTypes.VotingConfig{}, errorsmod.Wrapf(votingTypes.ErrNotFound, "voting config %s", id)
	}

	return config, nil
}

// GetNestedVoting returns a nested voting with its active and retired choices
func (p Peer) GetNestedVoting(ctx context.Context, id nestedExported.NestedVotingID) (nestedTypes.NestedVotingResponse, error) {
	p.app.mu.Lock()
	defer p.app.mu.Unlock()

	nested, ok := p.app.nested.GetNestedVoting(ctx, id)
	if !ok {
		return nestedTypes.NestedVotingResponse{}, errorsmod.Wrapf(nestedTypes.ErrNotFound, "nested voting %s", id)
	}

	return nestedTypes.NestedVotingResponse{NestedVoting: nested, Choices: p.app.nested.GetChoices(ctx, id)}, nil
}

// GetNestedVotingConfig returns a nested voting config
func (p Peer) GetNestedVotingConfig(ctx context.Context, id nestedExported.NestedVotingConfigID) (nestedTypes.NestedVotingConfig, error) {
	p.app.mu.Lock()
	defer p.app.mu.Unlock()

	config, ok := p.app.nested.GetNestedVotingConfig(ctx, id)
	if !ok {
		return nestedTypes.NestedVotingConfig{}, errorsmod.Wrapf(nestedTypes.ErrNotFound, "nested voting config %s", id)
	}

	return config, nil
}

// GetMySharesInfoAt returns the caller's signed balance snapshot
func (p Peer) GetMySharesInfoAt(ctx context.Context, groupID groupExported.GroupID, at time.Time) (sharesExported.SharesInfo, error) {
	p.app.mu.Lock()
	defer p.app.mu.Unlock()

	return p.app.shares.GetSharesInfoAt(ctx, groupID, p.caller, at)
}

// CastMyVote casts the caller's vote in a common voting
func (p Peer) CastMyVote(ctx context.Context, id votingExported.VotingID, info sharesExported.SharesInfo, votes map[votingExported.ChoiceID]sdkmath.LegacyDec) error {
	_, err := p.app.Handle(ctx, p.caller, &votingTypes.CastVoteRequest{VotingID: id, SharesInfo: info, Votes: votes})
	return err
}

// CastMyNestedVote casts the caller's vote in a nested voting
func (p Peer) CastMyNestedVote(ctx context.Context, id nestedExported.NestedVotingID, info sharesExported.SharesInfo, votes map[votingExported.ChoiceID]sdkmath.LegacyDec) error {
	_, err := p.app.Handle(ctx, p.caller, &nestedTypes.CastVoteRequest{NestedVotingID: id, SharesInfo: info, Votes: votes})
	return err
}

// Subscribe registers the caller for the round transitions of a voting
func (p Peer) Subscribe(_ context.Context, voting votingExported.VotingRef) error {
	p.app.subscriptions.add(voting, p.caller)
	return nil
}

// Unsubscribe removes the caller's subscription
func (p Peer) Unsubscribe(_ context.Context, voting votingExported.VotingRef) error {
	p.app.subscriptions.remove(voting, p.caller)
	return nil
}

// subscriptions tracks which unions follow which votings. It has its own lock so that peers can
// unsubscribe while the app is busy delivering events to them.
type subscriptions struct {
	mu   sync.Mutex
	subs map[votingExported.VotingRef]map[union.Principal]struct{}
}

func newSubscriptions() *subscriptions {
	return &subscriptions{subs: make(map[votingExported.VotingRef]map[union.Principal]struct{})}
}

func (s *subscriptions) add(voting votingExported.VotingRef, subscriber union.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[voting]; !ok {
		s.subs[voting] = make(map[union.Principal]struct{})
	}

	s.subs[voting][subscriber] = struct{}{}
}

func (s *subscriptions) remove(voting votingExported.VotingRef, subscriber union.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subs[voting], subscriber)
	if len(s.subs[voting]) == 0 {
		delete(s.subs, voting)
	}
}

func (s *subscriptions) drop(voting votingExported.VotingRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subs, voting)
}

// subscribers returns the subscribers of the voting in a stable order
func (s *subscriptions) subscribers(voting votingExported.VotingRef) []union.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers := maps.Keys(s.subs[voting])
	slices.Sort(subscribers)

	return subscribers
}

// resolver hands out peers whose calls release the app lock while they are in flight
type resolver struct {
	app *App
}

// Resolve implements nestedTypes.PeerResolver
func (r resolver) Resolve(id union.Principal) (nestedTypes.RemoteUnion, error) {
	remote, err := r.app.peers.Peer(r.app.self, id)
	if err != nil {
		return nil, err
	}

	return unlockedRemote{remote: remote, mu: &r.app.mu}, nil
}

// unlockedRemote releases the held lock for the duration of every call.
// State read before a call must be re-checked after it returns.
type unlockedRemote struct {
	remote nestedTypes.RemoteUnion
	mu     *sync.Mutex
}

func (u unlockedRemote) unlock() func() {
	u.mu.Unlock()
	return u.mu.Lock
}

func (u unlockedRemote) GetMyGroups(ctx context.Context) ([]groupExported.GroupID, error) {
	defer u.unlock()()
	return u.remote.GetMyGroups(ctx)
}

func (u unlockedRemote) GetVoting(ctx context.Context, id votingExported.VotingID) (nestedTypes.VotingResponse, error) {
	defer u.unlock()()
	return u.remote.GetVoting(ctx, id)
}

func (u unlockedRemote) GetVotingConfig(ctx context.Context, id votingExported.VotingConfigID) (votingTypes.VotingConfig, error) {
	defer u.unlock()()
	return u.remote.GetVotingConfig(ctx, id)
}

func (u unlockedRemote) GetNestedVoting(ctx context.Context, id nestedExported.NestedVotingID) (nestedTypes.NestedVotingResponse, error) {
	defer u.unlock()()
	return u.remote.GetNestedVoting(ctx, id)
}

func (u unlockedRemote) GetNestedVotingConfig(ctx context.Context, id nestedExported.NestedVotingConfigID) (nestedTypes.NestedVotingConfig, error) {
	defer u.unlock()()
	return u.remote.GetNestedVotingConfig(ctx, id)
}

func (u unlockedRemote) GetMySharesInfoAt(ctx context.Context, groupID groupExported.GroupID, at time.Time) (sharesExported.SharesInfo, error) {
	defer u.unlock()()
	return u.remote.GetMySharesInfoAt(ctx, groupID, at)
}

func (u unlockedRemote) CastMyVote(ctx context.Context, id votingExported.VotingID, info sharesExported.SharesInfo, votes map[votingExported.ChoiceID]sdkmath.LegacyDec) error {
	defer u.unlock()()
	return u.remote.CastMyVote(ctx, id, info, votes)
}

func (u unlockedRemote) CastMyNestedVote(ctx context.Context, id nestedExported.NestedVotingID, info sharesExported.SharesInfo, votes map[votingExported.ChoiceID]sdkmath.LegacyDec) error {
	defer u.unlock()()
	return u.remote.CastMyNestedVote(ctx, id, info, votes)
}

func (u unlockedRemote) Subscribe(ctx context.Context, voting votingExported.VotingRef) error {
	defer u.unlock()()
	return u.remote.Subscribe(ctx, voting)
}

func (u unlockedRemote) Unsubscribe(ctx context.Context, voting votingExported.VotingRef) error {
	defer u.unlock()()
	return u.remote.Unsubscribe(ctx, voting)
}
