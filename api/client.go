package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/armon/go-metrics"
	"github.com/cometbft/cometbft/libs/log"

	"github.com/uniongov/union-core/app"
	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/events"
	groupExported "github.com/uniongov/union-core/x/group/exported"
	nestedExported "github.com/uniongov/union-core/x/nested/exported"
	nestedTypes "github.com/uniongov/union-core/x/nested/types"
	permissionExported "github.com/uniongov/union-core/x/permission/exported"
	sharesExported "github.com/uniongov/union-core/x/shares/exported"
	votingExported "github.com/uniongov/union-core/x/voting/exported"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

var _ app.Peers = &Peers{}

// event deliveries are retried while the subscriber is unreachable
const (
	deliveryAttempts = 3
	deliveryBackOff  = 50 * time.Millisecond
)

// Peers connects a union to the unions listening at the configured addresses
type Peers struct {
	addresses map[union.Principal]string
	client    *http.Client
	logger    log.Logger
}

// NewPeers returns a client for the given union addresses. Every request fails after the timeout.
func NewPeers(addresses map[union.Principal]string, timeout time.Duration, logger log.Logger) *Peers {
	trimmed := make(map[union.Principal]string, len(addresses))
	for id, address := range addresses {
		trimmed[id] = strings.TrimSuffix(address, "/")
	}

	return &Peers{
		addresses: trimmed,
		client:    &http.Client{Timeout: timeout},
		logger:    logger.With("module", "peers"),
	}
}

// Peer implements app.Peers
func (p *Peers) Peer(caller, id union.Principal) (nestedTypes.RemoteUnion, error) {
	c, err := p.connect(caller, id)
	if err != nil {
		return nil, err
	}

	return remote{conn: c}, nil
}

// Call implements app.Peers
func (p *Peers) Call(ctx context.Context, caller union.Principal, call permissionExported.RemoteCall) ([]byte, error) {
	c, err := p.connect(caller, union.Principal(call.Endpoint.CanisterID))
	if err != nil {
		return nil, err
	}

	var res json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/call/"+url.PathEscape(call.Endpoint.Method), nil, bytes.NewReader(call.Args), &res); err != nil {
		return nil, err
	}

	return res, nil
}

// Deliver implements app.Peers
func (p *Peers) Deliver(ctx context.Context, from, to union.Principal, event events.Event) error {
	c, err := p.connect(from, to)
	if err != nil {
		return err
	}

	envelope, err := NewEventEnvelope(event)
	if err != nil {
		return err
	}

	return utils.Retry(ctx, deliveryAttempts, utils.ExponentialBackOff(deliveryBackOff), isUnreachable, func() error {
		return c.doJSON(ctx, http.MethodPost, EventsPattern, nil, envelope, nil)
	})
}

func isUnreachable(err error) bool {
	return errors.Is(err, app.ErrUnreachable)
}

func (p *Peers) connect(caller, id union.Principal) (conn, error) {
	address, ok := p.addresses[id]
	if !ok {
		return conn{}, errorsmod.Wrapf(app.ErrUnknownPeer, "union %s", id)
	}

	return conn{client: p.client, address: address, id: id, caller: caller, logger: p.logger}, nil
}

type conn struct {
	client  *http.Client
	address string
	id      union.Principal
	caller  union.Principal
	logger  log.Logger
}

func (c conn) doJSON(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	bz, err := json.Marshal(in)
	if err != nil {
		return err
	}

	return c.do(ctx, method, path, query, bytes.NewReader(bz), out)
}

func (c conn) do(ctx context.Context, method, path string, query url.Values, body io.Reader, out interface{}) error {
	target := c.address + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set(CallerHeader, c.caller.String())
	req.Header.Set("Content-Type", "application/json")

	metrics.IncrCounterWithLabels([]string{"api", "peer", "requests"}, 1, []metrics.Label{{Name: "peer", Value: c.id.String()}})

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request to peer failed", "peer", c.id, "path", path, "error", err)
		return errorsmod.Wrapf(app.ErrUnreachable, "request to union %s failed: %s", c.id, err)
	}
	defer func() { _ = res.Body.Close() }()

	return utils.ReadResponse(res, out)
}

var _ nestedTypes.RemoteUnion = remote{}

// remote is the view the caller has on a union reachable over HTTP
type remote struct {
	conn conn
}

func (r remote) GetMyGroups(ctx context.Context) ([]groupExported.GroupID, error) {
	var groups []groupExported.GroupID
	err := r.conn.do(ctx, http.MethodGet, PeerGroupsPattern, nil, nil, &groups)
	return groups, err
}

func (r remote) GetVoting(ctx context.Context, id votingExported.VotingID) (nestedTypes.VotingResponse, error) {
	var res nestedTypes.VotingResponse
	err := r.conn.do(ctx, http.MethodGet, fmt.Sprintf("/peer/votings/%s", id), nil, nil, &res)
	return res, err
}

func (r remote) GetVotingConfig(ctx context.Context, id votingExported.VotingConfigID) (votingTypes.VotingConfig, error) {
	var res votingTypes.VotingConfig
	err := r.conn.do(ctx, http.MethodGet, fmt.Sprintf("/peer/voting_configs/%s", id), nil, nil, &res)
	return res, err
}

func (r remote) GetNestedVoting(ctx context.Context, id nestedExported.NestedVotingID) (nestedTypes.NestedVotingResponse, error) {
	var res nestedTypes.NestedVotingResponse
	err := r.conn.do(ctx, http.MethodGet, fmt.Sprintf("/peer/nested_votings/%s", id), nil, nil, &res)
	return res, err
}

func (r remote) GetNestedVotingConfig(ctx context.Context, id nestedExported.NestedVotingConfigID) (nestedTypes.NestedVotingConfig, error) {
	var res nestedTypes.NestedVotingConfig
	err := r.conn.do(ctx, http.MethodGet, fmt.Sprintf("/peer/nested_voting_configs/%s", id), nil, nil, &res)
	return res, err
}

func (r remote) GetMySharesInfoAt(ctx context.Context, groupID groupExported.GroupID, at time.Time) (sharesExported.SharesInfo, error) {
	var res sharesExported.SharesInfo
	query := url.Values{"at": []string{at.UTC().Format(time.RFC3339Nano)}}
	err := r.conn.do(ctx, http.MethodGet, fmt.Sprintf("/peer/shares/%s", groupID), query, nil, &res)
	return res, err
}

func (r remote) CastMyVote(ctx context.Context, id votingExported.VotingID, info sharesExported.SharesInfo, votes map[votingExported.ChoiceID]sdkmath.LegacyDec) error {
	req := VoteRequest{SharesInfo: info, Votes: votes}
	return r.conn.doJSON(ctx, http.MethodPost, fmt.Sprintf("/peer/votings/%s/votes", id), nil, req, nil)
}

func (r remote) CastMyNestedVote(ctx context.Context, id nestedExported.NestedVotingID, info sharesExported.SharesInfo, votes map[votingExported.ChoiceID]sdkmath.LegacyDec) error {
	req := VoteRequest{SharesInfo: info, Votes: votes}
	return r.conn.doJSON(ctx, http.MethodPost, fmt.Sprintf("/peer/nested_votings/%s/votes", id), nil, req, nil)
}

func (r remote) Subscribe(ctx context.Context, voting votingExported.VotingRef) error {
	return r.conn.doJSON(ctx, http.MethodPost, PeerSubscriptionsPattern, nil, voting, nil)
}

func (r remote) Unsubscribe(ctx context.Context, voting votingExported.VotingRef) error {
	return r.conn.doJSON(ctx, http.MethodDelete, PeerSubscriptionsPattern, nil, voting, nil)
}
