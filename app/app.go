// Package app wires the modules of a union into a single request handler.
package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/armon/go-metrics"
	"github.com/btcsuite/btcd/btcec/v2"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/events"
	"github.com/uniongov/union-core/x/access"
	accessKeeper "github.com/uniongov/union-core/x/access/keeper"
	accessTypes "github.com/uniongov/union-core/x/access/types"
	"github.com/uniongov/union-core/x/group"
	groupKeeper "github.com/uniongov/union-core/x/group/keeper"
	groupTypes "github.com/uniongov/union-core/x/group/types"
	"github.com/uniongov/union-core/x/nested"
	nestedKeeper "github.com/uniongov/union-core/x/nested/keeper"
	nestedTypes "github.com/uniongov/union-core/x/nested/types"
	"github.com/uniongov/union-core/x/permission"
	permissionExported "github.com/uniongov/union-core/x/permission/exported"
	permissionKeeper "github.com/uniongov/union-core/x/permission/keeper"
	permissionTypes "github.com/uniongov/union-core/x/permission/types"
	sharesKeeper "github.com/uniongov/union-core/x/shares/keeper"
	tokenKeeper "github.com/uniongov/union-core/x/token/keeper"
	"github.com/uniongov/union-core/x/voting"
	votingExported "github.com/uniongov/union-core/x/voting/exported"
	votingKeeper "github.com/uniongov/union-core/x/voting/keeper"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

// App is a single union. All requests are serialized; the lock is released while the union waits on a peer.
type App struct {
	self   union.Principal
	mu     sync.Mutex
	logger log.Logger
	clock  utils.Clock

	keepers   *KeeperCache
	router    *Router
	bus       *events.Bus
	scheduler *Scheduler
	peers     Peers

	subscriptions *subscriptions

	token      *tokenKeeper.Keeper
	group      *groupKeeper.Keeper
	shares     *sharesKeeper.Keeper
	permission *permissionKeeper.Keeper
	access     *accessKeeper.Keeper
	voting     *votingKeeper.Keeper
	nested     *nestedKeeper.Keeper
}

// NewApp returns the union with the given id backed by the given database.
// The signer attests the shares snapshots the union hands out to its members.
func NewApp(self union.Principal, db dbm.DB, signer *btcec.PrivateKey, peers Peers, clock utils.Clock, logger log.Logger) *App {
	logger = logger.With("union", self.String())

	a := &App{
		self:          self,
		logger:        logger,
		clock:         clock,
		keepers:       NewKeeperCache(),
		bus:           events.NewBus(),
		scheduler:     NewScheduler(db, clock, logger),
		peers:         peers,
		subscriptions: newSubscriptions(),
	}

	SetKeeper(a.keepers, initTokenKeeper(db, logger))
	SetKeeper(a.keepers, initGroupKeeper(db, a.keepers, logger))
	SetKeeper(a.keepers, initSharesKeeper(db, a.keepers, signer, clock, logger))
	SetKeeper(a.keepers, permissionKeeper.NewKeeper(db, logger))
	SetKeeper(a.keepers, initAccessKeeper(db, a.keepers, logger))
	SetKeeper(a.keepers, initVotingKeeper(db, a.keepers, a.scheduler, executor{app: a}, a.bus, clock, logger))
	SetKeeper(a.keepers, initNestedKeeper(db, a.keepers, resolver{app: a}, a.bus, clock, logger))
	setHooks(a.keepers)

	a.token = GetKeeper[tokenKeeper.Keeper](a.keepers)
	a.group = GetKeeper[groupKeeper.Keeper](a.keepers)
	a.shares = GetKeeper[sharesKeeper.Keeper](a.keepers)
	a.permission = GetKeeper[permissionKeeper.Keeper](a.keepers)
	a.access = GetKeeper[accessKeeper.Keeper](a.keepers)
	a.voting = GetKeeper[votingKeeper.Keeper](a.keepers)
	a.nested = GetKeeper[nestedKeeper.Keeper](a.keepers)

	a.router = initMessageRouter(a.keepers)

	for _, topic := range []string{votingExported.TopicRoundStarted, votingExported.TopicRoundEnded, votingExported.TopicVotingFinished} {
		a.bus.Subscribe(topic, a.forward)
	}

	return a
}

func initMessageRouter(keepers *KeeperCache) *Router {
	return NewRouter().
		AddRoute(groupTypes.ModuleName, group.NewHandler(GetKeeper[groupKeeper.Keeper](keepers)),
			&groupTypes.CreateGroupRequest{},
			&groupTypes.UpdateGroupRequest{},
			&groupTypes.DeleteGroupRequest{},
			&groupTypes.MintSharesRequest{},
			&groupTypes.BurnSharesRequest{},
			&groupTypes.BurnUnacceptedSharesRequest{},
			&groupTypes.TransferSharesRequest{},
			&groupTypes.AcceptSharesRequest{},
			&groupTypes.DeclineSharesRequest{},
			&groupTypes.SetAcceptableRequest{},
			&groupTypes.RegisterProfileRequest{},
			&groupTypes.UpdateProfileRequest{},
			&groupTypes.DeleteProfileRequest{},
		).
		AddRoute(permissionTypes.ModuleName, permission.NewHandler(GetKeeper[permissionKeeper.Keeper](keepers)),
			&permissionTypes.CreatePermissionRequest{},
			&permissionTypes.UpdatePermissionRequest{},
			&permissionTypes.DeletePermissionRequest{},
		).
		AddRoute(accessTypes.ModuleName, access.NewHandler(*GetKeeper[accessKeeper.Keeper](keepers)),
			&accessTypes.CreateAccessConfigRequest{},
			&accessTypes.UpdateAccessConfigRequest{},
			&accessTypes.DeleteAccessConfigRequest{},
		).
		AddRoute(votingTypes.ModuleName, voting.NewHandler(*GetKeeper[votingKeeper.Keeper](keepers)),
			&votingTypes.CreateVotingConfigRequest{},
			&votingTypes.UpdateVotingConfigRequest{},
			&votingTypes.DeleteVotingConfigRequest{},
			&votingTypes.CreateVotingRequest{},
			&votingTypes.CreateChoiceRequest{},
			&votingTypes.UpdateChoiceRequest{},
			&votingTypes.DeleteChoiceRequest{},
			&votingTypes.CastVoteRequest{},
			&votingTypes.ApproveRequest{},
			&votingTypes.RejectRequest{},
		).
		AddRoute(nestedTypes.ModuleName, nested.NewHandler(*GetKeeper[nestedKeeper.Keeper](keepers)),
			&nestedTypes.CreateNestedVotingConfigRequest{},
			&nestedTypes.UpdateNestedVotingConfigRequest{},
			&nestedTypes.DeleteNestedVotingConfigRequest{},
			&nestedTypes.CreateNestedVotingRequest{},
			&nestedTypes.CastVoteRequest{},
		)
}

// ID returns the principal of the union
func (a *App) ID() union.Principal {
	return a.self
}

// Logger returns the app logger
func (a *App) Logger() log.Logger {
	return a.logger
}

// Handle validates the message, checks the caller may call its endpoint and routes it to its module
func (a *App) Handle(ctx context.Context, caller union.Principal, msg union.Msg) (interface{}, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.handle(ctx, caller, msg)
}

// Call decodes the JSON arguments into the message of the method, handles it and returns the JSON encoded response
func (a *App) Call(ctx context.Context, caller union.Principal, method string, args []byte) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.call(ctx, caller, method, args)
}

// Query runs fn with exclusive access to the keepers
func (a *App) Query(fn func(keepers *KeeperCache)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fn(a.keepers)
}

// Tick delivers all scheduled tasks that are due and returns how many there were
func (a *App) Tick(ctx context.Context) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	tasks := a.scheduler.Due(a.clock.Now())
	for _, task := range tasks {
		if err := a.voting.HandleTask(ctx, task); err != nil {
			a.logger.Error("failed to handle scheduled task", "task", task.String(), "error", err)
		}
	}

	return len(tasks)
}

// NextDue returns when the next scheduled task is due
func (a *App) NextDue() (time.Time, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.scheduler.NextDue()
}

// HandleRemoteEvent processes a round transition of a voting of another union
func (a *App) HandleRemoteEvent(ctx context.Context, from union.Principal, event events.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nested.HandleRemoteEvent(ctx, from, event)
}

func (a *App) call(ctx context.Context, caller union.Principal, method string, args []byte) ([]byte, error) {
	msg, ok := a.router.NewMsg(method)
	if !ok {
		return nil, errorsmod.Wrapf(ErrUnknownRoute, "method %s", method)
	}

	if len(args) > 0 {
		if err := json.Unmarshal(args, msg); err != nil {
			return nil, errorsmod.Wrapf(ErrValidation, "cannot decode arguments of %s: %s", method, err)
		}
	}

	res, err := a.handle(ctx, caller, msg)
	if err != nil {
		return nil, err
	}

	return json.Marshal(res)
}

func (a *App) handle(ctx context.Context, caller union.Principal, msg union.Msg) (interface{}, error) {
	defer metrics.MeasureSinceWithLabels([]string{"app", "handle"}, time.Now(), []metrics.Label{{Name: "route", Value: msg.Route()}})

	if err := caller.ValidateBasic(); err != nil {
		return nil, errorsmod.Wrapf(ErrValidation, "invalid caller: %s", err)
	}

	if err := msg.ValidateBasic(); err != nil {
		return nil, errorsmod.Wrap(ErrValidation, err.Error())
	}

	if err := a.verifySharesInfo(msg); err != nil {
		return nil, err
	}

	if err := a.access.AssertCallerHasAccess(ctx, permissionExported.NewEndpoint(a.self.String(), msg.Route()), caller); err != nil {
		return nil, err
	}

	handler, ok := a.router.Handler(msg.Route())
	if !ok {
		return nil, errorsmod.Wrapf(ErrUnknownRoute, "method %s", msg.Route())
	}

	return handler(ctx, caller, msg)
}

// verifySharesInfo checks that votes carry a snapshot signed by this union
func (a *App) verifySharesInfo(msg union.Msg) error {
	switch msg := msg.(type) {
	case *votingTypes.CastVoteRequest:
		return a.shares.VerifySharesInfo(msg.SharesInfo)
	case *nestedTypes.CastVoteRequest:
		return a.shares.VerifySharesInfo(msg.SharesInfo)
	default:
		return nil
	}
}

// forward delivers round transitions to the unions subscribed to the voting
func (a *App) forward(event events.Event) {
	ref, finished := subjectOf(event)

	ctx := context.Background()
	for _, subscriber := range a.subscriptions.subscribers(ref) {
		if err := a.peers.Deliver(ctx, a.self, subscriber, event); err != nil {
			a.logger.Error("failed to deliver event", "topic", event.Topic(), "voting", ref.String(), "subscriber", subscriber, "error", err)
		}
	}

	if finished {
		a.subscriptions.drop(ref)
	}
}

func subjectOf(event events.Event) (votingExported.VotingRef, bool) {
	switch event := event.(type) {
	case votingExported.RoundStarted:
		return event.Voting, false
	case votingExported.RoundEnded:
		return event.Voting, false
	case votingExported.VotingFinished:
		return event.Voting, true
	default:
		panic(errorsmod.Wrapf(ErrValidation, "unexpected event %T", event))
	}
}
