package exported

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	groupexported "github.com/uniongov/union-core/x/group/exported"
)

// AccessConfigID uniquely identifies an access config
type AccessConfigID uint64

// String returns the decimal representation of the id
func (id AccessConfigID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// GroupAllowee matches every principal holding at least MinShares accepted shares of the group
type GroupAllowee struct {
	GroupID   groupexported.GroupID `json:"group_id"`
	MinShares sdkmath.Uint          `json:"min_shares"`
}

// UnmarshalJSON implements json.Unmarshaler. A missing minimum defaults to zero.
func (m *GroupAllowee) UnmarshalJSON(bz []byte) error {
	type groupAllowee GroupAllowee
	decoded := groupAllowee{MinShares: sdkmath.ZeroUint()}
	if err := json.Unmarshal(bz, &decoded); err != nil {
		return err
	}

	*m = GroupAllowee(decoded)

	return nil
}

// Allowee is a constraint on callers. Exactly one variant is set.
type Allowee struct {
	Everyone bool             `json:"everyone,omitempty"`
	Group    *GroupAllowee    `json:"group,omitempty"`
	Profile  *union.Principal `json:"profile,omitempty"`
}

// Everyone returns the allowee matching every caller
func Everyone() Allowee {
	return Allowee{Everyone: true}
}

// Group returns the allowee matching holders of at least minShares of the group
func Group(id groupexported.GroupID, minShares sdkmath.Uint) Allowee {
	return Allowee{Group: &GroupAllowee{GroupID: id, MinShares: minShares}}
}

// Profile returns the allowee matching exactly the given principal
func Profile(id union.Principal) Allowee {
	return Allowee{Profile: &id}
}

// ValidateBasic returns an error if not exactly one variant is set
func (m Allowee) ValidateBasic() error {
	set := 0
	if m.Everyone {
		set++
	}

	if m.Group != nil {
		set++

		if m.Group.MinShares.IsNil() {
			return fmt.Errorf("group allowee must set min shares")
		}
	}

	if m.Profile != nil {
		set++

		if err := m.Profile.ValidateBasic(); err != nil {
			return err
		}
	}

	if set != 1 {
		return fmt.Errorf("allowee must set exactly one of everyone, group or profile")
	}

	return nil
}

// String returns a human readable representation of the allowee
func (m Allowee) String() string {
	switch {
	case m.Everyone:
		return "everyone"
	case m.Group != nil:
		return fmt.Sprintf("group/%s(>=%s)", m.Group.GroupID, m.Group.MinShares)
	case m.Profile != nil:
		return "profile/" + m.Profile.String()
	default:
		return "none"
	}
}

// BalanceProvider returns accepted group balances
type BalanceProvider interface {
	BalanceOf(ctx context.Context, id groupexported.GroupID, principal union.Principal) sdkmath.Uint
}

// IsAllowed returns true if the caller matches the allowee
func (m Allowee) IsAllowed(ctx context.Context, balances BalanceProvider, caller union.Principal) bool {
	switch {
	case m.Everyone:
		return true
	case m.Profile != nil:
		return *m.Profile == caller
	case m.Group != nil:
		return balances.BalanceOf(ctx, m.Group.GroupID, caller).GTE(m.Group.MinShares)
	default:
		return false
	}
}

// IsCallerAllowed returns true if the caller matches any of the allowees
func IsCallerAllowed(ctx context.Context, balances BalanceProvider, caller union.Principal, allowees []Allowee) bool {
	for _, allowee := range allowees {
		if allowee.Everyone {
			return true
		}
	}

	for _, allowee := range allowees {
		if allowee.IsAllowed(ctx, balances, caller) {
			return true
		}
	}

	return false
}
