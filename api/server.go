// Package api exposes a union over HTTP and connects it to the unions it federates with.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/armon/go-metrics"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/gorilla/mux"
	"github.com/spf13/cast"

	"github.com/uniongov/union-core/app"
	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/events"
	groupExported "github.com/uniongov/union-core/x/group/exported"
	nestedExported "github.com/uniongov/union-core/x/nested/exported"
	sharesExported "github.com/uniongov/union-core/x/shares/exported"
	votingExported "github.com/uniongov/union-core/x/voting/exported"
)

// CallerHeader carries the principal a request is made on behalf of
const CallerHeader = "X-Union-Caller"

// route patterns
const (
	QueryPattern                  = "/query/{query}"
	QueryArgsPattern              = "/query/{query}/{args:.+}"
	CallPattern                   = "/call/{method}"
	PeerGroupsPattern             = "/peer/groups"
	PeerVotingPattern             = "/peer/votings/{id:[0-9]+}"
	PeerVotesPattern              = "/peer/votings/{id:[0-9]+}/votes"
	PeerVotingConfigPattern       = "/peer/voting_configs/{id:[0-9]+}"
	PeerNestedVotingPattern       = "/peer/nested_votings/{id:[0-9]+}"
	PeerNestedVotesPattern        = "/peer/nested_votings/{id:[0-9]+}/votes"
	PeerNestedVotingConfigPattern = "/peer/nested_voting_configs/{id:[0-9]+}"
	PeerSharesPattern             = "/peer/shares/{group:[0-9]+}"
	PeerSubscriptionsPattern      = "/peer/subscriptions"
	EventsPattern                 = "/events"
	MetricsPattern                = "/metrics"
)

// VoteRequest is the body of a vote cast by a member union
type VoteRequest struct {
	SharesInfo sharesExported.SharesInfo                     `json:"shares_info"`
	Votes      map[votingExported.ChoiceID]sdkmath.LegacyDec `json:"votes"`
}

// EventEnvelope carries an event published by one union to a subscribed union
type EventEnvelope struct {
	Topic string          `json:"topic"`
	Event json.RawMessage `json:"event"`
}

// NewEventEnvelope wraps the event for delivery
func NewEventEnvelope(event events.Event) (EventEnvelope, error) {
	bz, err := json.Marshal(event)
	if err != nil {
		return EventEnvelope{}, err
	}

	return EventEnvelope{Topic: event.Topic(), Event: bz}, nil
}

// Unwrap decodes the event according to its topic
func (e EventEnvelope) Unwrap() (events.Event, error) {
	switch e.Topic {
	case votingExported.TopicRoundStarted:
		return decodeEvent[votingExported.RoundStarted](e.Event)
	case votingExported.TopicRoundEnded:
		return decodeEvent[votingExported.RoundEnded](e.Event)
	case votingExported.TopicVotingFinished:
		return decodeEvent[votingExported.VotingFinished](e.Event)
	default:
		return nil, errorsmod.Wrapf(app.ErrValidation, "unknown event topic %s", e.Topic)
	}
}

func decodeEvent[T events.Event](bz json.RawMessage) (events.Event, error) {
	var event T
	if err := json.Unmarshal(bz, &event); err != nil {
		return nil, errorsmod.Wrapf(app.ErrValidation, "cannot decode event: %s", err)
	}

	return event, nil
}

// Handler serves the HTTP interface of a union
type Handler struct {
	app    *app.App
	logger log.Logger
}

// NewRouter registers all endpoints of the union. The metrics handler is only served if it is not nil.
func NewRouter(a *app.App, metricsHandler http.Handler, logger log.Logger) *mux.Router {
	h := Handler{app: a, logger: logger.With("module", "api")}

	router := mux.NewRouter()
	router.Use(h.measure)

	router.HandleFunc(QueryPattern, h.QueryHandler).Methods(http.MethodGet)
	router.HandleFunc(QueryArgsPattern, h.QueryHandler).Methods(http.MethodGet)
	router.HandleFunc(CallPattern, h.CallHandler).Methods(http.MethodPost)

	router.HandleFunc(PeerGroupsPattern, h.GetMyGroupsHandler).Methods(http.MethodGet)
	router.HandleFunc(PeerVotingPattern, h.GetVotingHandler).Methods(http.MethodGet)
	router.HandleFunc(PeerVotesPattern, h.CastMyVoteHandler).Methods(http.MethodPost)
	router.HandleFunc(PeerVotingConfigPattern, h.GetVotingConfigHandler).Methods(http.MethodGet)
	router.HandleFunc(PeerNestedVotingPattern, h.GetNestedVotingHandler).Methods(http.MethodGet)
	router.HandleFunc(PeerNestedVotesPattern, h.CastMyNestedVoteHandler).Methods(http.MethodPost)
	router.HandleFunc(PeerNestedVotingConfigPattern, h.GetNestedVotingConfigHandler).Methods(http.MethodGet)
	router.HandleFunc(PeerSharesPattern, h.GetMySharesInfoAtHandler).Methods(http.MethodGet)
	router.HandleFunc(PeerSubscriptionsPattern, h.SubscribeHandler).Methods(http.MethodPost)
	router.HandleFunc(PeerSubscriptionsPattern, h.UnsubscribeHandler).Methods(http.MethodDelete)

	router.HandleFunc(EventsPattern, h.EventHandler).Methods(http.MethodPost)

	if metricsHandler != nil {
		router.Handle(MetricsPattern, metricsHandler).Methods(http.MethodGet)
	}

	return router
}

func (h Handler) measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		defer metrics.MeasureSinceWithLabels([]string{"api", "request"}, time.Now(), []metrics.Label{{Name: "route", Value: route}})
		next.ServeHTTP(w, r)
	})
}

// QueryHandler answers read-only queries
func (h Handler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	path := []string{vars["query"]}
	if args, ok := vars["args"]; ok {
		path = append(path, strings.Split(args, "/")...)
	}

	bz, err := h.app.RunQuery(r.Context(), path...)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteRawJSON(w, http.StatusOK, bz)
}

// CallHandler invokes an endpoint of the union with the JSON encoded arguments in the body
func (h Handler) CallHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	args, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteError(w, errorsmod.Wrap(app.ErrValidation, err.Error()))
		return
	}

	bz, err := h.app.Call(r.Context(), caller, mux.Vars(r)["method"], args)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteRawJSON(w, http.StatusOK, bz)
}

// GetMyGroupsHandler returns the groups the calling union holds shares of
func (h Handler) GetMyGroupsHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	respond(w)(peer.GetMyGroups(r.Context()))
}

// GetVotingHandler returns a common voting with its choices
func (h Handler) GetVotingHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	id, ok := pathID[votingExported.VotingID](w, r, "id")
	if !ok {
		return
	}

	respond(w)(peer.GetVoting(r.Context(), id))
}

// GetVotingConfigHandler returns a voting config
func (h Handler) GetVotingConfigHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	id, ok := pathID[votingExported.VotingConfigID](w, r, "id")
	if !ok {
		return
	}

	respond(w)(peer.GetVotingConfig(r.Context(), id))
}

// GetNestedVotingHandler returns a nested voting with its choices
func (h Handler) GetNestedVotingHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	id, ok := pathID[nestedExported.NestedVotingID](w, r, "id")
	if !ok {
		return
	}

	respond(w)(peer.GetNestedVoting(r.Context(), id))
}

// GetNestedVotingConfigHandler returns a nested voting config
func (h Handler) GetNestedVotingConfigHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	id, ok := pathID[nestedExported.NestedVotingConfigID](w, r, "id")
	if !ok {
		return
	}

	respond(w)(peer.GetNestedVotingConfig(r.Context(), id))
}

// GetMySharesInfoAtHandler returns the calling union's signed balance snapshot at the time given by the at parameter
func (h Handler) GetMySharesInfoAtHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	groupID, ok := pathID[groupExported.GroupID](w, r, "group")
	if !ok {
		return
	}

	at, err := time.Parse(time.RFC3339Nano, r.URL.Query().Get("at"))
	if err != nil {
		utils.WriteError(w, errorsmod.Wrapf(app.ErrValidation, "invalid timestamp: %s", err))
		return
	}

	respond(w)(peer.GetMySharesInfoAt(r.Context(), groupID, at))
}

// CastMyVoteHandler casts the calling union's vote in a common voting
func (h Handler) CastMyVoteHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	id, ok := pathID[votingExported.VotingID](w, r, "id")
	if !ok {
		return
	}

	var req VoteRequest
	if !readBody(w, r, &req) {
		return
	}

	respond(w)(struct{}{}, peer.CastMyVote(r.Context(), id, req.SharesInfo, req.Votes))
}

// CastMyNestedVoteHandler casts the calling union's vote in a nested voting
func (h Handler) CastMyNestedVoteHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	id, ok := pathID[nestedExported.NestedVotingID](w, r, "id")
	if !ok {
		return
	}

	var req VoteRequest
	if !readBody(w, r, &req) {
		return
	}

	respond(w)(struct{}{}, peer.CastMyNestedVote(r.Context(), id, req.SharesInfo, req.Votes))
}

// SubscribeHandler registers the calling union for the round transitions of a voting
func (h Handler) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	var ref votingExported.VotingRef
	if !readBody(w, r, &ref) {
		return
	}

	respond(w)(struct{}{}, peer.Subscribe(r.Context(), ref))
}

// UnsubscribeHandler removes the calling union's subscription
func (h Handler) UnsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	peer, ok := h.peer(w, r)
	if !ok {
		return
	}

	var ref votingExported.VotingRef
	if !readBody(w, r, &ref) {
		return
	}

	respond(w)(struct{}{}, peer.Unsubscribe(r.Context(), ref))
}

// EventHandler processes an event published by the calling union
func (h Handler) EventHandler(w http.ResponseWriter, r *http.Request) {
	from, ok := h.caller(w, r)
	if !ok {
		return
	}

	var envelope EventEnvelope
	if !readBody(w, r, &envelope) {
		return
	}

	event, err := envelope.Unwrap()
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.logger.Debug("received event", "from", from, "topic", event.Topic())
	h.app.HandleRemoteEvent(r.Context(), from, event)
	utils.WriteJSON(w, http.StatusOK, struct{}{})
}

// caller reads the principal the request is made on behalf of. The API must only be reachable by trusted unions.
func (h Handler) caller(w http.ResponseWriter, r *http.Request) (union.Principal, bool) {
	caller := union.Principal(r.Header.Get(CallerHeader))
	if err := caller.ValidateBasic(); err != nil {
		utils.WriteError(w, errorsmod.Wrapf(app.ErrValidation, "invalid %s header: %s", CallerHeader, err))
		return "", false
	}

	return caller, true
}

func (h Handler) peer(w http.ResponseWriter, r *http.Request) (app.Peer, bool) {
	caller, ok := h.caller(w, r)
	if !ok {
		return app.Peer{}, false
	}

	return app.NewPeer(h.app, caller), true
}

func pathID[T ~uint64](w http.ResponseWriter, r *http.Request, name string) (T, bool) {
	id, err := cast.ToUint64E(mux.Vars(r)[name])
	if err != nil {
		utils.WriteError(w, errorsmod.Wrapf(app.ErrValidation, "invalid %s: %s", name, err))
		return 0, false
	}

	return T(id), true
}

func readBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := utils.ReadJSON(r.Body, v); err != nil {
		utils.WriteError(w, errorsmod.Wrap(app.ErrValidation, err.Error()))
		return false
	}

	return true
}

func respond(w http.ResponseWriter) func(payload interface{}, err error) {
	return func(payload interface{}, err error) {
		if err != nil {
			utils.WriteError(w, err)
			return
		}

		utils.WriteJSON(w, http.StatusOK, payload)
	}
}
