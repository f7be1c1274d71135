package curves

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secpGHex  = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	secp2GHex = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device unavailable") }

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestSecp256k1Order(t *testing.T) {
	curve := NewSecp256k1()
	n, ok := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	require.True(t, ok)
	assert.Equal(t, 0, n.Cmp(curve.Order()), "order = %x", curve.Order())

	_, err := curve.ScalarFromBigInt(n)
	assert.ErrorIs(t, err, ErrInvalidScalar)
	_, err = curve.ScalarFromBigInt(new(big.Int).Sub(n, big.NewInt(1)))
	assert.NoError(t, err)
}

func TestSecp256k1Generator(t *testing.T) {
	curve := NewSecp256k1()

	g, err := curve.EncodePoint(curve.Generator())
	require.NoError(t, err)
	assert.Equal(t, secpGHex, hex.EncodeToString(g))

	two, err := curve.ScalarFromBigInt(big.NewInt(2))
	require.NoError(t, err)
	p2, err := curve.EncodePoint(curve.Generator().ScalarMult(two))
	require.NoError(t, err)
	assert.Equal(t, secp2GHex, hex.EncodeToString(p2))

	// G + G == 2G
	assert.True(t, curve.Generator().Add(curve.Generator()).Equal(curve.Generator().ScalarMult(two)))
}

func TestSecp256k1Codec(t *testing.T) {
	curve := NewSecp256k1()

	for i := 0; i < 16; i++ {
		k, err := curve.NewScalar(rand.Reader)
		require.NoError(t, err)
		p := curve.Generator().ScalarMult(k)

		enc, err := curve.EncodePoint(p)
		require.NoError(t, err)
		assert.Len(t, enc, curve.PointLen())

		dec, err := curve.DecodePoint(enc)
		require.NoError(t, err)
		assert.True(t, dec.Equal(p))
	}
}

func TestSecp256k1DecodeErrors(t *testing.T) {
	curve := NewSecp256k1()
	g, _ := hex.DecodeString(secpGHex)

	badPrefix := bytes.Clone(g)
	badPrefix[0] = 0x05

	xTooBig := make([]byte, 33)
	xTooBig[0] = 0x02
	for i := 1; i < len(xTooBig); i++ {
		xTooBig[i] = 0xff
	}

	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"short", g[:32]},
		{"long", append(bytes.Clone(g), 0x00)},
		{"bad prefix", badPrefix},
		{"uncompressed prefix", append([]byte{0x04}, g[1:]...)},
		{"x not in field", xTooBig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := curve.DecodePoint(tt.in)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrInvalidPoint)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "secp256k1", de.Curve)
		})
	}
}

func TestSecp256k1Identity(t *testing.T) {
	curve := NewSecp256k1()
	id := curve.Identity()

	assert.True(t, id.IsIdentity())
	assert.False(t, curve.Generator().IsIdentity())
	assert.Nil(t, id.Bytes())

	_, err := curve.EncodePoint(id)
	assert.ErrorIs(t, err, ErrIdentityPoint)

	zero, err := curve.ScalarFromBigInt(big.NewInt(0))
	require.NoError(t, err)
	assert.True(t, curve.Generator().ScalarMult(zero).IsIdentity())
	assert.True(t, curve.Generator().ScalarMult(zero).Equal(id))

	// n-1 times G plus G wraps to the identity.
	nMinusOne, err := curve.ScalarFromBigInt(new(big.Int).Sub(curve.Order(), big.NewInt(1)))
	require.NoError(t, err)
	assert.True(t, curve.Generator().ScalarMult(nMinusOne).Add(curve.Generator()).IsIdentity())
}

func TestSecp256k1Scalars(t *testing.T) {
	curve := NewSecp256k1()
	n := curve.Order()

	_, err := curve.ScalarFromBigInt(n)
	assert.ErrorIs(t, err, ErrInvalidScalar)
	_, err = curve.ScalarFromBigInt(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrInvalidScalar)
	_, err = curve.ScalarFromBytes(n.Bytes())
	assert.ErrorIs(t, err, ErrInvalidScalar)
	_, err = curve.ScalarFromBytes(make([]byte, 33))
	assert.ErrorIs(t, err, ErrInvalidScalar)

	s, err := curve.ScalarFromBytes([]byte{0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(256), s.BigInt())
	assert.Len(t, s.Bytes(), 32)

	one, _ := curve.ScalarFromBigInt(big.NewInt(1))
	assert.True(t, s.Add(one).Equal(mustScalar(t, curve, 257)))

	// Order() hands out copies.
	curve.Order().SetInt64(0)
	assert.Equal(t, n, curve.Order())
}

func TestSecp256k1NewScalar(t *testing.T) {
	curve := NewSecp256k1()

	a, err := curve.NewScalar(rand.Reader)
	require.NoError(t, err)
	b, err := curve.NewScalar(rand.Reader)
	require.NoError(t, err)
	assert.False(t, a.IsZero())
	assert.False(t, a.Equal(b))

	_, err = curve.NewScalar(failingReader{})
	assert.ErrorIs(t, err, ErrEntropy)

	_, err = curve.NewScalar(zeroReader{})
	assert.ErrorIs(t, err, ErrEntropy)
}

func TestSecp256k1NewScalarResamplesZero(t *testing.T) {
	curve := NewSecp256k1()

	// First draw is zero, second is 7.
	src := make([]byte, 64)
	src[63] = 7
	s, err := curve.NewScalar(bytes.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), s.BigInt())
}

func TestByName(t *testing.T) {
	c, err := ByName("secp256k1")
	require.NoError(t, err)
	assert.Equal(t, "secp256k1", c.Name())

	c, err = ByName("ed25519")
	require.NoError(t, err)
	assert.Equal(t, "ed25519", c.Name())

	_, err = ByName("p256")
	assert.ErrorIs(t, err, ErrUnsupportedCurve)
}

func mustScalar(t *testing.T, c Curve, v int64) Scalar {
	t.Helper()
	s, err := c.ScalarFromBigInt(big.NewInt(v))
	require.NoError(t, err)
	return s
}
