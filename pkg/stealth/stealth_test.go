package stealth

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-dht-stealth/internal/logging"
)

func testCurves() []Curve {
	return []Curve{Secp256k1(), Ed25519()}
}

func mustScalar(t testing.TB, c Curve, v int64) Scalar {
	t.Helper()
	s, err := c.ScalarFromBigInt(big.NewInt(v))
	require.NoError(t, err)
	return s
}

func mustKeyPair(t testing.TB, c Curve) *KeyPair {
	t.Helper()
	kp, err := GenerateKeyPair(c, rand.Reader)
	require.NoError(t, err)
	return kp
}

func quietOpts() []Option {
	return []Option{WithLogger(logging.Discard())}
}
