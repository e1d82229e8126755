package utils_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/utils"
)

func TestValidateFraction(t *testing.T) {
	assert.NoError(t, utils.ValidateFraction(sdkmath.LegacyZeroDec()))
	assert.NoError(t, utils.ValidateFraction(sdkmath.LegacyOneDec()))
	assert.NoError(t, utils.ValidateFraction(sdkmath.LegacyNewDecWithPrec(5, 1)))

	assert.Error(t, utils.ValidateFraction(sdkmath.LegacyDec{}))
	assert.Error(t, utils.ValidateFraction(sdkmath.LegacyNewDec(-1)))
	assert.Error(t, utils.ValidateFraction(sdkmath.LegacyNewDecWithPrec(1000001, 6)))
}

func TestMulFloor(t *testing.T) {
	assert.True(t, sdkmath.NewUint(33).Equal(utils.MulFloor(sdkmath.LegacyNewDecWithPrec(333, 3), sdkmath.NewUint(100))))
	assert.True(t, sdkmath.NewUint(0).Equal(utils.MulFloor(sdkmath.LegacyNewDecWithPrec(5, 1), sdkmath.NewUint(1))))
	assert.True(t, sdkmath.NewUint(7).Equal(utils.MulFloor(sdkmath.LegacyOneDec(), sdkmath.NewUint(7))))
}

func TestQuoTruncate(t *testing.T) {
	assert.True(t, sdkmath.LegacyZeroDec().Equal(utils.QuoTruncate(sdkmath.NewUint(1), sdkmath.ZeroUint())))
	assert.True(t, sdkmath.LegacyMustNewDecFromStr("0.333333333333333333").Equal(utils.QuoTruncate(sdkmath.NewUint(1), sdkmath.NewUint(3))))
	assert.True(t, sdkmath.LegacyMustNewDecFromStr("0.666666666666666666").Equal(utils.QuoTruncate(sdkmath.NewUint(2), sdkmath.NewUint(3))))
}

func TestSumFractions(t *testing.T) {
	sum := utils.SumFractions(map[int]sdkmath.LegacyDec{
		1: sdkmath.LegacyNewDecWithPrec(3, 1),
		2: sdkmath.LegacyNewDecWithPrec(3, 1),
	})

	assert.True(t, sum.Equal(sdkmath.LegacyNewDecWithPrec(6, 1)))
}

func TestSaturatingSub(t *testing.T) {
	assert.True(t, sdkmath.NewUint(2).Equal(utils.SaturatingSub(sdkmath.NewUint(5), sdkmath.NewUint(3))))
	assert.True(t, sdkmath.ZeroUint().Equal(utils.SaturatingSub(sdkmath.NewUint(3), sdkmath.NewUint(5))))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, utils.ValidateName("treasury"))
	assert.Error(t, utils.ValidateName(""))
	assert.Error(t, utils.ValidateName(string(make([]byte, utils.MaxNameLength+1))))
	assert.NoError(t, utils.ValidateDescription(""))
}
