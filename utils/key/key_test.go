package key_test

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/uniongov/union-core/utils/key"
)

func TestFromBz(t *testing.T) {
	expectedBz := []byte("testkey")
	k := key.FromBz(expectedBz)

	assert.Equal(t, expectedBz, k.Bytes())
}

func TestFromInt(t *testing.T) {
	k1 := key.FromUInt[uint64](0)
	k2 := key.FromUInt[uint64](17)
	k3 := key.FromUInt[uint64](17)
	k4 := key.FromUInt[uint64](math.MaxUint64)

	assert.True(t, bytes.Compare(k1.Bytes(), k2.Bytes()) < 0)
	assert.True(t, bytes.Compare(k2.Bytes(), k3.Bytes()) == 0)
	assert.True(t, bytes.Compare(k3.Bytes(), k4.Bytes()) < 0)

	assert.Equal(t, len(k1.Bytes()), len(k2.Bytes()))
	assert.Equal(t, len(k3.Bytes()), len(k4.Bytes()))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 17}, k2.Bytes())
	assert.Equal(t, key.FromUInt[uint64](17).Bytes(), key.FromUInt[uint8](17).Bytes())
}

func TestFromTime(t *testing.T) {
	now := time.Unix(1700000000, 0)

	assert.True(t, bytes.Compare(key.FromTime(now).Bytes(), key.FromTime(now.Add(time.Nanosecond)).Bytes()) < 0)
}

func TestFromStr(t *testing.T) {
	expected := "testkey"
	k := key.FromStr("TestKey")

	assert.Equal(t, expected, string(k.Bytes()))
}

func TestAppend(t *testing.T) {
	prefix := key.FromStr("prefix")
	k1 := prefix.Append(key.FromStr("a"))
	k2 := prefix.Append(key.FromStr("b"))

	assert.Equal(t, "prefix_a", string(k1.Bytes()))
	assert.Equal(t, "prefix_b", string(k2.Bytes()))
	assert.Equal(t, "prefix", string(prefix.Bytes()))
	assert.Equal(t, "prefix/a", string(k1.Bytes("/")))
}
