package stealth

import (
	"fmt"

	"github.com/smallyu/go-dht-stealth/internal/crypto/curves"
)

type (
	Curve  = curves.Curve
	Point  = curves.Point
	Scalar = curves.Scalar
)

// Secp256k1 returns the curve used on-chain.
func Secp256k1() Curve { return curves.NewSecp256k1() }

// Ed25519 returns the prime-order subgroup of edwards25519.
func Ed25519() Curve { return curves.NewEd25519() }

// CurveByName resolves "secp256k1" or "ed25519".
func CurveByName(name string) (Curve, error) { return curves.ByName(name) }

// ParseScalarHex decodes a hex scalar in the curve's canonical byte order.
func ParseScalarHex(c Curve, s string) (Scalar, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return c.ScalarFromBytes(b)
}

// ParsePointHex decodes a hex compressed point without a register tag.
func ParsePointHex(c Curve, s string) (Point, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, &DecodeError{Curve: c.Name(), Reason: "invalid hex", Err: err}
	}
	return c.DecodePoint(b)
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
