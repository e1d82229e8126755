package utils

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// OneFraction is the fraction representing the whole
var OneFraction = sdkmath.LegacyOneDec()

// ValidateFraction returns an error if the fraction is not within [0, 1]
func ValidateFraction(f sdkmath.LegacyDec) error {
	if f.IsNil() {
		return fmt.Errorf("fraction must be set")
	}

	if f.IsNegative() {
		return fmt.Errorf("fraction %s must not be negative", f)
	}

	if f.GT(OneFraction) {
		return fmt.Errorf("fraction %s must not exceed 1", f)
	}

	return nil
}

// SumFractions returns the exact sum of the given fractions
func SumFractions[K comparable](fractions map[K]sdkmath.LegacyDec) sdkmath.LegacyDec {
	sum := sdkmath.LegacyZeroDec()
	for _, f := range fractions {
		sum = sum.Add(f)
	}

	return sum
}

// UintToDec converts shares to a decimal without loss of precision
func UintToDec(u sdkmath.Uint) sdkmath.LegacyDec {
	return sdkmath.LegacyNewDecFromBigInt(u.BigInt())
}

// MulFloor returns floor(fraction * shares)
func MulFloor(fraction sdkmath.LegacyDec, shares sdkmath.Uint) sdkmath.Uint {
	return sdkmath.NewUintFromBigInt(fraction.MulInt(sdkmath.NewIntFromBigInt(shares.BigInt())).TruncateInt().BigInt())
}

// QuoTruncate returns numerator / denominator rounded down, zero if the denominator is zero
func QuoTruncate(numerator, denominator sdkmath.Uint) sdkmath.LegacyDec {
	if denominator.IsZero() {
		return sdkmath.LegacyZeroDec()
	}

	return UintToDec(numerator).QuoTruncate(UintToDec(denominator))
}

// GetOrZero returns the shares stored under the given key, or zero if the key is missing
func GetOrZero[K comparable](m map[K]sdkmath.Uint, k K) sdkmath.Uint {
	if v, ok := m[k]; ok {
		return v
	}

	return sdkmath.ZeroUint()
}

// SumShares returns the sum of all shares in the map
func SumShares[K comparable](m map[K]sdkmath.Uint) sdkmath.Uint {
	sum := sdkmath.ZeroUint()
	for _, v := range m {
		sum = sum.Add(v)
	}

	return sum
}

// SaturatingSub returns a - b, or zero if b > a
func SaturatingSub(a, b sdkmath.Uint) sdkmath.Uint {
	if b.GT(a) {
		return sdkmath.ZeroUint()
	}

	return a.Sub(b)
}
