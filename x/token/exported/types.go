package exported

import "strconv"

// TokenID uniquely identifies a token ledger
type TokenID uint64

// String returns the decimal representation of the id
func (id TokenID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
