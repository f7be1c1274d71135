package curves

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519Order(t *testing.T) {
	curve := NewEd25519()
	l, ok := new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	require.True(t, ok)
	assert.Equal(t, 0, l.Cmp(curve.Order()), "order = %s", curve.Order())

	_, err := curve.ScalarFromBigInt(l)
	assert.ErrorIs(t, err, ErrInvalidScalar)
	lMinusOne, err := curve.ScalarFromBigInt(new(big.Int).Sub(l, big.NewInt(1)))
	require.NoError(t, err)

	// (l-1) + 1 wraps to zero, and l*G is the identity.
	one, err := curve.ScalarFromBigInt(big.NewInt(1))
	require.NoError(t, err)
	assert.True(t, lMinusOne.Add(one).IsZero())
	assert.True(t, curve.Generator().ScalarMult(lMinusOne).Add(curve.Generator()).IsIdentity())
}

func TestEd25519Scalar(t *testing.T) {
	curve := NewEd25519()

	// Test NewScalar
	s1, err := curve.NewScalar(rand.Reader)
	assert.NoError(t, err)
	assert.False(t, s1.IsZero())

	// Test ScalarFromBigInt
	val := big.NewInt(12345)
	s2, err := curve.ScalarFromBigInt(val)
	require.NoError(t, err)
	assert.Equal(t, val, s2.BigInt())

	// Test Add
	s3 := s2.Add(s2)
	assert.Equal(t, big.NewInt(24690), s3.BigInt())

	// Round trip through the little-endian encoding
	s4, err := curve.ScalarFromBytes(s2.Bytes())
	require.NoError(t, err)
	assert.True(t, s4.Equal(s2))

	_, err = curve.ScalarFromBigInt(curve.Order())
	assert.ErrorIs(t, err, ErrInvalidScalar)

	_, err = curve.NewScalar(failingReader{})
	assert.ErrorIs(t, err, ErrEntropy)
	_, err = curve.NewScalar(zeroReader{})
	assert.ErrorIs(t, err, ErrEntropy)
}

func TestEd25519Point(t *testing.T) {
	curve := NewEd25519()

	// Test Generator
	g := curve.Generator()
	enc, err := curve.EncodePoint(g)
	require.NoError(t, err)
	assert.Equal(t, "5866666666666666666666666666666666666666666666666666666666666666", hex.EncodeToString(enc))

	// Test ScalarMult
	s, _ := curve.ScalarFromBigInt(big.NewInt(2))
	p2 := g.ScalarMult(s)

	// Test Add
	p3 := g.Add(g)
	assert.True(t, p2.Equal(p3))
	assert.Equal(t, p2.Bytes(), p3.Bytes())

	// Test DecodePoint
	p4, err := curve.DecodePoint(p2.Bytes())
	assert.NoError(t, err)
	assert.True(t, p4.Equal(p2))
}

func TestEd25519DecodeRejects(t *testing.T) {
	curve := NewEd25519()

	identity, _ := hex.DecodeString("0100000000000000000000000000000000000000000000000000000000000000")
	orderTwo, _ := hex.DecodeString("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")

	_, err := curve.DecodePoint(identity)
	assert.ErrorIs(t, err, ErrInvalidPoint)
	assert.ErrorIs(t, err, ErrIdentityPoint)

	_, err = curve.DecodePoint(orderTwo)
	assert.ErrorIs(t, err, ErrInvalidPoint)

	// A valid point shifted by a torsion element leaves the subgroup.
	tp, err := edwards25519.NewIdentityPoint().SetBytes(orderTwo)
	require.NoError(t, err)
	mixed := curve.Generator().Add(&Ed25519Point{p: tp})
	_, err = curve.DecodePoint(mixed.Bytes())
	assert.ErrorIs(t, err, ErrInvalidPoint)

	_, err = curve.DecodePoint(bytes.Repeat([]byte{0x01}, 31))
	assert.ErrorIs(t, err, ErrInvalidPoint)

	_, err = curve.EncodePoint(curve.Identity())
	assert.ErrorIs(t, err, ErrIdentityPoint)

	_, err = curve.EncodePoint(NewSecp256k1().Generator())
	assert.ErrorIs(t, err, ErrInvalidPoint)
}
