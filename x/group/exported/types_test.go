package exported_test

import (
	"encoding/json"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/testutils/rand"
	"github.com/uniongov/union-core/x/group/exported"
)

func TestGroupOrProfile_Text(t *testing.T) {
	profile := rand.Principal()

	assert.Equal(t, "group/7", exported.Group(7).String())
	assert.Equal(t, "profile/"+profile.String(), exported.Profile(profile).String())

	var gop exported.GroupOrProfile
	assert.NoError(t, gop.UnmarshalText([]byte("group/42")))
	assert.Equal(t, exported.Group(42), gop)

	assert.NoError(t, gop.UnmarshalText([]byte("profile/"+profile)))
	assert.Equal(t, exported.Profile(profile), gop)

	assert.Error(t, gop.UnmarshalText([]byte("group/x")))
	assert.Error(t, gop.UnmarshalText([]byte("profile/")))
	assert.Error(t, gop.UnmarshalText([]byte("canister/1")))
}

func TestGroupOrProfile_MapKey(t *testing.T) {
	totals := map[exported.GroupOrProfile]sdkmath.Uint{
		exported.Group(1):         sdkmath.NewUint(10),
		exported.Profile("alice"): sdkmath.OneUint(),
	}

	bz, err := json.Marshal(totals)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"group/1":"10","profile/alice":"1"}`, string(bz))

	var decoded map[exported.GroupOrProfile]sdkmath.Uint
	assert.NoError(t, json.Unmarshal(bz, &decoded))
	assert.Len(t, decoded, 2)
	assert.True(t, decoded[exported.Group(1)].Equal(sdkmath.NewUint(10)))
	assert.True(t, decoded[exported.Profile("alice")].Equal(sdkmath.OneUint()))
}
