package utils_test

import (
	"testing"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/utils/key"
)

func TestCounter_Encoding(t *testing.T) {
	store := utils.NewKVStore(dbm.NewMemDB(), key.FromStr("test"))
	counter := utils.NewCounter[uint32](key.FromStr("counter"), store)

	assert.Equal(t, uint32(0), counter.Curr())
	assert.Equal(t, uint32(0), counter.Incr())
	assert.Equal(t, uint32(1), counter.Incr())
	assert.Equal(t, uint32(2), counter.Curr())

	counter.Set(258)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, store.GetRaw(key.FromStr("counter")))
	assert.Equal(t, uint32(258), utils.NewCounter[uint32](key.FromStr("counter"), store).Curr())
}
