package exported

import (
	"fmt"
	"strconv"
	"strings"

	union "github.com/uniongov/union-core/types"
)

// GroupID uniquely identifies a group
type GroupID uint64

// HasProfileGroupID is the id of the group every registered profile holds exactly one share of. It cannot be deleted.
const HasProfileGroupID GroupID = 0

// String returns the decimal representation of the id
func (id GroupID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// GroupOrProfileKind distinguishes group and profile references
type GroupOrProfileKind int

// valid GroupOrProfile kinds
const (
	KindGroup GroupOrProfileKind = iota
	KindProfile
)

const (
	groupPrefix   = "group/"
	profilePrefix = "profile/"
)

// GroupOrProfile references either a group or a single profile.
// It is comparable, so it can be used as a map key, and text encoded as group/<id> or profile/<principal>.
type GroupOrProfile struct {
	Kind      GroupOrProfileKind
	GroupID   GroupID
	ProfileID union.Principal
}

// Group returns a reference to the given group
func Group(id GroupID) GroupOrProfile {
	return GroupOrProfile{Kind: KindGroup, GroupID: id}
}

// Profile returns a reference to the given profile
func Profile(id union.Principal) GroupOrProfile {
	return GroupOrProfile{Kind: KindProfile, ProfileID: id}
}

// IsGroup returns true if the reference points to a group
func (gop GroupOrProfile) IsGroup() bool {
	return gop.Kind == KindGroup
}

// IsProfile returns true if the reference points to a profile
func (gop GroupOrProfile) IsProfile() bool {
	return gop.Kind == KindProfile
}

// String returns the text encoding of the reference
func (gop GroupOrProfile) String() string {
	switch gop.Kind {
	case KindGroup:
		return groupPrefix + gop.GroupID.String()
	case KindProfile:
		return profilePrefix + gop.ProfileID.String()
	default:
		return fmt.Sprintf("unknown(%d)", gop.Kind)
	}
}

// ValidateBasic returns an error if the reference is malformed
func (gop GroupOrProfile) ValidateBasic() error {
	switch gop.Kind {
	case KindGroup:
		if gop.ProfileID != "" {
			return fmt.Errorf("group reference must not set a profile")
		}

		return nil
	case KindProfile:
		if gop.GroupID != 0 {
			return fmt.Errorf("profile reference must not set a group")
		}

		return gop.ProfileID.ValidateBasic()
	default:
		return fmt.Errorf("unknown group or profile kind %d", gop.Kind)
	}
}

// MarshalText implements encoding.TextMarshaler
func (gop GroupOrProfile) MarshalText() ([]byte, error) {
	if err := gop.ValidateBasic(); err != nil {
		return nil, err
	}

	return []byte(gop.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (gop *GroupOrProfile) UnmarshalText(text []byte) error {
	str := string(text)

	switch {
	case strings.HasPrefix(str, groupPrefix):
		id, err := strconv.ParseUint(strings.TrimPrefix(str, groupPrefix), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid group reference %s: %w", str, err)
		}

		*gop = Group(GroupID(id))
	case strings.HasPrefix(str, profilePrefix):
		*gop = Profile(union.Principal(strings.TrimPrefix(str, profilePrefix)))
	default:
		return fmt.Errorf("invalid group or profile reference %s", str)
	}

	return gop.ValidateBasic()
}
