package exported_test

import (
	"encoding/json"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/testutils/rand"
	groupexported "github.com/uniongov/union-core/x/group/exported"
	"github.com/uniongov/union-core/x/threshold/exported"
)

type amounts = map[groupexported.GroupOrProfile]sdkmath.Uint

func TestValue_IsReached(t *testing.T) {
	g1, g2 := groupexported.Group(1), groupexported.Group(2)
	alice := groupexported.Profile("alice")

	total := amounts{g1: sdkmath.NewUint(100), g2: sdkmath.NewUint(3), alice: sdkmath.OneUint()}

	testCases := []struct {
		name      string
		threshold exported.Value
		voted     amounts
		reached   bool
	}{
		{"quantity reached", exported.NewQuantityOf(sdkmath.NewUint(10), exported.Group(1)), amounts{g1: sdkmath.NewUint(10)}, true},
		{"quantity missed", exported.NewQuantityOf(sdkmath.NewUint(10), exported.Group(1)), amounts{g1: sdkmath.NewUint(9)}, false},
		{"missing entry counts as zero", exported.NewQuantityOf(sdkmath.OneUint(), exported.Group(2)), amounts{}, false},
		{"half reached exactly", exported.NewFractionOf(sdkmath.LegacyMustNewDecFromStr("0.5"), exported.Group(1)), amounts{g1: sdkmath.NewUint(50)}, true},
		{"half missed by one", exported.NewFractionOf(sdkmath.LegacyMustNewDecFromStr("0.5"), exported.Group(1)), amounts{g1: sdkmath.NewUint(49)}, false},
		{"two thirds of three", exported.NewFractionOf(sdkmath.LegacyNewDecWithPrec(666666666666666667, 18), exported.Group(2)), amounts{g2: sdkmath.NewUint(2)}, false},
		{"two thirds of three reached", exported.NewFractionOf(sdkmath.LegacyNewDecWithPrec(666666666666666666, 18), exported.Group(2)), amounts{g2: sdkmath.NewUint(2)}, true},
		{"profile", exported.NewFractionOf(sdkmath.LegacyOneDec(), exported.GroupOrProfile(alice)), amounts{alice: sdkmath.OneUint()}, true},
		{"zero total needs zero fraction", exported.NewFractionOf(sdkmath.LegacyMustNewDecFromStr("0.1"), exported.Group(5)), amounts{}, false},
		{"zero fraction of zero total", exported.NewFractionOf(sdkmath.LegacyZeroDec(), exported.Group(5)), amounts{}, true},
		{
			"one of two sub-thresholds",
			exported.NewQuantityOf(sdkmath.OneUint(), exported.Thresholds(
				exported.NewQuantityOf(sdkmath.NewUint(10), exported.Group(1)),
				exported.NewQuantityOf(sdkmath.NewUint(1), exported.Group(2)),
			)),
			amounts{g2: sdkmath.OneUint()},
			true,
		},
		{
			"all sub-thresholds as a fraction",
			exported.NewFractionOf(sdkmath.LegacyOneDec(), exported.Thresholds(
				exported.NewQuantityOf(sdkmath.NewUint(10), exported.Group(1)),
				exported.NewQuantityOf(sdkmath.NewUint(1), exported.Group(2)),
			)),
			amounts{g2: sdkmath.OneUint()},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, tc.threshold.ValidateBasic())
			assert.Equal(t, tc.reached, tc.threshold.IsReached(total, tc.voted))
		})
	}
}

func randThreshold(depth int, targets []groupexported.GroupOrProfile) exported.Value {
	var target exported.Target
	if depth == 0 || rand.Bool(0.5) {
		target = exported.GroupOrProfile(rand.Of(targets...))
	} else {
		var values []exported.Value
		for i := 0; i < int(rand.I64Between(1, 4)); i++ {
			values = append(values, randThreshold(depth-1, targets))
		}
		target = exported.Thresholds(values...)
	}

	if rand.Bool(0.5) {
		return exported.NewQuantityOf(rand.UintBetween(0, 20), target)
	}

	return exported.NewFractionOf(sdkmath.LegacyNewDecWithPrec(rand.I64Between(0, 101), 2), target)
}

func TestValue_IsReached_Monotonic(t *testing.T) {
	targets := []groupexported.GroupOrProfile{groupexported.Group(1), groupexported.Group(2), groupexported.Profile("alice")}

	for i := 0; i < 200; i++ {
		threshold := randThreshold(3, targets)
		assert.NoError(t, threshold.ValidateBasic())

		total := amounts{}
		voted := amounts{}
		for _, target := range targets {
			total[target] = rand.UintBetween(0, 30)
			voted[target] = rand.UintBetween(0, 30)
		}

		before := threshold.IsReached(total, voted)

		increased := rand.Of(targets...)
		voted[increased] = voted[increased].Add(rand.UintBetween(1, 10))

		if before {
			assert.True(t, threshold.IsReached(total, voted), "threshold %s", threshold)
		}
	}
}

func TestValue_ListGroupsAndProfiles(t *testing.T) {
	threshold := exported.NewQuantityOf(sdkmath.OneUint(), exported.Thresholds(
		exported.NewQuantityOf(sdkmath.NewUint(10), exported.Group(1)),
		exported.NewFractionOf(sdkmath.LegacyOneDec(), exported.Thresholds(
			exported.NewQuantityOf(sdkmath.NewUint(1), exported.GroupOrProfile(groupexported.Profile("alice"))),
			exported.NewQuantityOf(sdkmath.NewUint(1), exported.Group(1)),
		)),
		exported.NewQuantityOf(sdkmath.NewUint(1), exported.Group(2)),
	))

	assert.Equal(t, []groupexported.GroupOrProfile{
		groupexported.Group(1),
		groupexported.Profile("alice"),
		groupexported.Group(2),
	}, threshold.ListGroupsAndProfiles())
}

func TestValue_ValidateBasic(t *testing.T) {
	assert.Error(t, exported.Value{}.ValidateBasic())
	assert.Error(t, exported.NewFractionOf(sdkmath.LegacyMustNewDecFromStr("1.1"), exported.Group(1)).ValidateBasic())
	assert.Error(t, exported.NewFractionOf(sdkmath.LegacyMustNewDecFromStr("-0.1"), exported.Group(1)).ValidateBasic())
	assert.Error(t, exported.NewQuantityOf(sdkmath.OneUint(), exported.Thresholds()).ValidateBasic())
	assert.Error(t, exported.NewQuantityOf(sdkmath.OneUint(), exported.Thresholds(exported.Value{})).ValidateBasic())
}

func TestValue_JSON(t *testing.T) {
	threshold := exported.NewFractionOf(sdkmath.LegacyMustNewDecFromStr("0.5"), exported.Thresholds(
		exported.NewQuantityOf(sdkmath.NewUint(3), exported.Group(1)),
	))

	bz, err := json.Marshal(threshold)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"fraction_of":{"fraction":"0.500000000000000000","target":{"thresholds":[{"quantity_of":{"quantity":"3","target":{"group_or_profile":"group/1"}}}]}}}`, string(bz))

	var decoded exported.Value
	assert.NoError(t, json.Unmarshal(bz, &decoded))
	assert.Equal(t, threshold.String(), decoded.String())
	assert.True(t, decoded.IsReached(nil, amounts{groupexported.Group(1): sdkmath.NewUint(3)}))
}
