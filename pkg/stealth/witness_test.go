package stealth

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndFixedScalars(t *testing.T) {
	c := Secp256k1()
	xInt, _ := new(big.Int).SetString("2b7e151628aed2a6abf7158809cf4f3c762e7160f38b4da56a784d9045190cfe", 16)
	x, err := c.ScalarFromBigInt(xInt)
	require.NoError(t, err)
	kp, err := NewKeyPair(c, x)
	require.NoError(t, err)

	p, err := NewGenerator(c, quietOpts()...).GenerateWithScalars(kp.Public(), mustScalar(t, c, 5), mustScalar(t, c, 9))
	require.NoError(t, err)

	det := NewDetector(c, quietOpts()...)
	assert.True(t, det.IsSpendable(x, p))
	assert.False(t, det.IsSpendable(x.Add(mustScalar(t, c, 1)), p))

	w := BuildWitness(x, p)
	assert.True(t, w.Scalar.Equal(x))
	assert.True(t, w.BaseA.Equal(p.Gr))
	assert.True(t, w.TargetA.Equal(p.Ur))
	assert.True(t, w.BaseB.Equal(p.Gy))
	assert.True(t, w.TargetB.Equal(p.Uy))
	assert.True(t, w.Payload().Equal(p))
}

func TestWitnessRedactsSecret(t *testing.T) {
	c := Secp256k1()
	kp := mustKeyPair(t, c)
	p, err := NewGenerator(c, quietOpts()...).Generate(kp.Public())
	require.NoError(t, err)

	w := BuildWitness(kp.Secret(), p)
	secretHex := fmt.Sprintf("%x", kp.Secret().Bytes())

	for _, s := range []string{w.String(), fmt.Sprint(w), fmt.Sprintf("%v", w), w.LogValue().String()} {
		assert.NotContains(t, s, secretHex)
	}
	assert.Contains(t, w.String(), "<redacted>")
	assert.Contains(t, w.String(), fmt.Sprintf("%x", p.Gr.Bytes()))
}
