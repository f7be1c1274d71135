package curves

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Point represents an element of a prime-order elliptic curve group,
// including the identity.
type Point interface {
	// Bytes returns the compressed serialization of the point, or nil for
	// the identity.
	Bytes() []byte

	// Add adds this point to another point.
	Add(p Point) Point

	// ScalarMult multiplies this point by a scalar.
	ScalarMult(s Scalar) Point

	// Equal reports whether both points have the same affine coordinates.
	Equal(p Point) bool

	// IsIdentity reports whether the point is the group identity.
	IsIdentity() bool
}

// Scalar represents a value in the curve's scalar field [0, n).
type Scalar interface {
	// Bytes returns the canonical 32-byte encoding of the scalar.
	Bytes() []byte

	// BigInt returns the scalar as a big integer.
	BigInt() *big.Int

	// Add adds this scalar to another scalar modulo n.
	Add(s Scalar) Scalar

	// Equal reports whether both scalars hold the same value.
	Equal(s Scalar) bool

	IsZero() bool
}

// Curve is an immutable context for one prime-order group. Every stealth
// operation receives it explicitly; there is no package-level default.
type Curve interface {
	// Name returns the name of the curve.
	Name() string

	// Order returns a copy of the group order n.
	Order() *big.Int

	// PointLen is the length in bytes of an encoded point.
	PointLen() int

	// Generator returns the base point G.
	Generator() Point

	Identity() Point

	// NewScalar samples a scalar uniformly from [1, n-1] using rand.
	NewScalar(rand io.Reader) (Scalar, error)

	// ScalarFromBytes parses a canonical scalar encoding. Zero is accepted.
	ScalarFromBytes(b []byte) (Scalar, error)

	// ScalarFromBigInt converts an integer in [0, n) to a scalar.
	ScalarFromBigInt(n *big.Int) (Scalar, error)

	// DecodePoint parses a compressed point. It never returns the identity.
	DecodePoint(b []byte) (Point, error)

	// EncodePoint returns the compressed form of p. The identity and points
	// belonging to another curve are rejected.
	EncodePoint(p Point) ([]byte, error)
}

// maxSampleAttempts bounds rejection sampling so that a source stuck on an
// out-of-range value is reported instead of looping forever.
const maxSampleAttempts = 128

var (
	ErrInvalidPoint     = errors.New("curves: invalid point encoding")
	ErrIdentityPoint    = errors.New("curves: identity point")
	ErrInvalidScalar    = errors.New("curves: invalid scalar")
	ErrEntropy          = errors.New("curves: entropy source failure")
	ErrUnsupportedCurve = errors.New("curves: unsupported curve")
)

// DecodeError reports bytes that do not encode a usable point on a curve.
// It matches ErrInvalidPoint with errors.Is.
type DecodeError struct {
	Curve  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("curves: decode %s point: %s: %v", e.Curve, e.Reason, e.Err)
	}
	return fmt.Sprintf("curves: decode %s point: %s", e.Curve, e.Reason)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidPoint
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func entropyError(err error) error {
	return fmt.Errorf("%w: %w", ErrEntropy, err)
}

// ByName returns the curve registered under name.
func ByName(name string) (Curve, error) {
	switch name {
	case "secp256k1", "":
		return NewSecp256k1(), nil
	case "ed25519":
		return NewEd25519(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurve, name)
	}
}
