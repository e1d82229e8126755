// Package rand provides random value generators for unit and integration tests.
package rand

import (
	"math/rand"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PosI64 returns a positive int64
func PosI64() int64 {
	return rand.Int63n(1<<62) + 1
}

// I64Between returns a random int64 between lower (inclusive) and upper (exclusive)
func I64Between(lower int64, upper int64) int64 {
	return rand.Int63n(upper-lower) + lower
}

// UintBetween returns a random share amount between lower (inclusive) and upper (exclusive)
func UintBetween(lower uint64, upper uint64) sdkmath.Uint {
	return sdkmath.NewUint(uint64(I64Between(int64(lower), int64(upper))))
}

// Bool returns true with the given probability
func Bool(ratio float64) bool {
	return rand.Float64() < ratio
}

// Str returns a random alphanumeric string of the given length
func Str(length int) string {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		sb.WriteByte(letters[rand.Intn(len(letters))])
	}

	return sb.String()
}

// StrBetween returns a random alphanumeric string with a length between lower (inclusive) and upper (exclusive)
func StrBetween(lower int, upper int) string {
	return Str(int(I64Between(int64(lower), int64(upper))))
}

// NormalizedStr returns a random lower case alphanumeric string of the given length
func NormalizedStr(length int) string {
	return strings.ToLower(Str(length))
}

// Principal returns a random valid principal
func Principal() union.Principal {
	return union.Principal(NormalizedStr(int(I64Between(5, 30))))
}

// Principals returns count distinct random principals
func Principals(count int) []union.Principal {
	seen := make(map[union.Principal]bool, count)
	principals := make([]union.Principal, 0, count)
	for len(principals) < count {
		p := Principal()
		if seen[p] {
			continue
		}

		seen[p] = true
		principals = append(principals, p)
	}

	return principals
}

// Duration returns a random positive duration up to a day
func Duration() time.Duration {
	return time.Duration(I64Between(int64(time.Second), int64(24*time.Hour)))
}

// Time returns a random time within the current century
func Time() time.Time {
	return time.Unix(I64Between(946684800, 4102444800), 0).UTC()
}

// Of returns a random element of the given slice
func Of[T any](items ...T) T {
	return items[rand.Intn(len(items))]
}
