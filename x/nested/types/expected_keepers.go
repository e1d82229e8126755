package types

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils/events"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	"github.com/uniongov/union-core/x/nested/exported"
	sharesexported "github.com/uniongov/union-core/x/shares/exported"
	tokenexported "github.com/uniongov/union-core/x/token/exported"
	votingexported "github.com/uniongov/union-core/x/voting/exported"
	votingtypes "github.com/uniongov/union-core/x/voting/types"
)

//go:generate moq -out ./mock/expected_keepers.go -pkg mock . RemoteUnion PeerResolver

// TokenKeeper provides the ledgers recording the votes for each local choice
type TokenKeeper interface {
	CreateToken(ctx context.Context, acceptable bool, transferable bool) tokenexported.TokenID
	DeleteToken(ctx context.Context, id tokenexported.TokenID)
	TotalSupply(ctx context.Context, id tokenexported.TokenID) sdkmath.Uint
	BalanceOf(ctx context.Context, id tokenexported.TokenID, owner union.Principal) sdkmath.Uint
	Mint(ctx context.Context, id tokenexported.TokenID, to union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error)
	Burn(ctx context.Context, id tokenexported.TokenID, from union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error)
}

// GroupKeeper provides the local groups
type GroupKeeper interface {
	HasGroup(ctx context.Context, id groupexported.GroupID) bool
	TotalSupply(ctx context.Context, id groupexported.GroupID) sdkmath.Uint
}

// RemoteUnion is the view of another union this union is a member of. Every call may fail or time out.
type RemoteUnion interface {
	GetMyGroups(ctx context.Context) ([]groupexported.GroupID, error)
	GetVoting(ctx context.Context, id votingexported.VotingID) (VotingResponse, error)
	GetVotingConfig(ctx context.Context, id votingexported.VotingConfigID) (votingtypes.VotingConfig, error)
	GetNestedVoting(ctx context.Context, id exported.NestedVotingID) (NestedVotingResponse, error)
	GetNestedVotingConfig(ctx context.Context, id exported.NestedVotingConfigID) (NestedVotingConfig, error)
	GetMySharesInfoAt(ctx context.Context, groupID groupexported.GroupID, at time.Time) (sharesexported.SharesInfo, error)
	CastMyVote(ctx context.Context, id votingexported.VotingID, info sharesexported.SharesInfo, votes map[votingexported.ChoiceID]sdkmath.LegacyDec) error
	CastMyNestedVote(ctx context.Context, id exported.NestedVotingID, info sharesexported.SharesInfo, votes map[votingexported.ChoiceID]sdkmath.LegacyDec) error
	Subscribe(ctx context.Context, voting votingexported.VotingRef) error
	Unsubscribe(ctx context.Context, voting votingexported.VotingRef) error
}

// PeerResolver returns a handle on the union with the given id
type PeerResolver interface {
	Resolve(id union.Principal) (RemoteUnion, error)
}

// Publisher publishes the round transitions of nested votings
type Publisher = events.Publisher
