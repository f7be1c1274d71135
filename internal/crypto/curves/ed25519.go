package curves

import (
	"fmt"
	"io"
	"math/big"
	"sync"

	"filippo.io/edwards25519"
)

// Ed25519Curve is the prime-order subgroup of edwards25519. It serves as an
// alternate group for the stealth construction; points with a torsion
// component are rejected at decode time.
type Ed25519Curve struct{}

// NewEd25519 returns the edwards25519 prime-order subgroup.
func NewEd25519() Curve {
	return &Ed25519Curve{}
}

var (
	ed25519OrderOnce sync.Once
	ed25519Order     *big.Int
	ed25519InvEight  *edwards25519.Scalar
)

func initEd25519() {
	// l = 2^252 + 27742317777372353535851937790883648493
	delta, _ := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
	ed25519Order = new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 252), delta)

	var eight [32]byte
	eight[0] = 8
	s, _ := edwards25519.NewScalar().SetCanonicalBytes(eight[:])
	ed25519InvEight = edwards25519.NewScalar().Invert(s)
}

func (c *Ed25519Curve) Name() string {
	return "ed25519"
}

func (c *Ed25519Curve) Order() *big.Int {
	ed25519OrderOnce.Do(initEd25519)
	return new(big.Int).Set(ed25519Order)
}

func (c *Ed25519Curve) PointLen() int {
	return 32
}

func (c *Ed25519Curve) Generator() Point {
	return &Ed25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519Curve) Identity() Point {
	return &Ed25519Point{p: edwards25519.NewIdentityPoint()}
}

func (c *Ed25519Curve) NewScalar(rand io.Reader) (Scalar, error) {
	var b [64]byte
	defer func() { b = [64]byte{} }()

	for i := 0; i < maxSampleAttempts; i++ {
		if _, err := io.ReadFull(rand, b[:]); err != nil {
			return nil, entropyError(err)
		}
		s, err := edwards25519.NewScalar().SetUniformBytes(b[:])
		if err != nil {
			return nil, entropyError(err)
		}
		if s.Equal(edwards25519.NewScalar()) == 1 {
			continue
		}
		return &Ed25519Scalar{s: s}, nil
	}
	return nil, fmt.Errorf("%w: no non-zero scalar after %d draws", ErrEntropy, maxSampleAttempts)
}

// ScalarFromBytes expects the 32-byte little-endian canonical encoding.
func (c *Ed25519Curve) ScalarFromBytes(b []byte) (Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return &Ed25519Scalar{s: s}, nil
}

func (c *Ed25519Curve) ScalarFromBigInt(n *big.Int) (Scalar, error) {
	if n == nil || n.Sign() < 0 || n.Cmp(c.Order()) >= 0 {
		return nil, fmt.Errorf("%w: out of range", ErrInvalidScalar)
	}
	// big.Int is big-endian, edwards25519 is little-endian.
	var buf [32]byte
	n.FillBytes(buf[:])
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return c.ScalarFromBytes(buf[:])
}

func (c *Ed25519Curve) DecodePoint(b []byte) (Point, error) {
	if len(b) != 32 {
		return nil, &DecodeError{Curve: c.Name(), Reason: fmt.Sprintf("expected 32 bytes, got %d", len(b))}
	}
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, &DecodeError{Curve: c.Name(), Reason: "malformed compressed point", Err: err}
	}
	if p.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, &DecodeError{Curve: c.Name(), Reason: "identity", Err: ErrIdentityPoint}
	}

	// P is in the prime-order subgroup iff 8^-1 * (8 * P) == P.
	ed25519OrderOnce.Do(initEd25519)
	cleared := edwards25519.NewIdentityPoint().MultByCofactor(p)
	if edwards25519.NewIdentityPoint().ScalarMult(ed25519InvEight, cleared).Equal(p) != 1 {
		return nil, &DecodeError{Curve: c.Name(), Reason: "point has a torsion component"}
	}
	return &Ed25519Point{p: p}, nil
}

func (c *Ed25519Curve) EncodePoint(p Point) ([]byte, error) {
	ep, ok := p.(*Ed25519Point)
	if !ok || ep == nil {
		return nil, fmt.Errorf("%w: not an %s point", ErrInvalidPoint, c.Name())
	}
	if ep.IsIdentity() {
		return nil, ErrIdentityPoint
	}
	return ep.Bytes(), nil
}

// Ed25519Scalar implements Scalar
type Ed25519Scalar struct {
	s *edwards25519.Scalar
}

func (s *Ed25519Scalar) Bytes() []byte {
	return s.s.Bytes()
}

func (s *Ed25519Scalar) BigInt() *big.Int {
	b := s.s.Bytes()
	// Convert little-endian bytes to big.Int (big-endian)
	buf := make([]byte, len(b))
	for i := range b {
		buf[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(buf)
}

func (s *Ed25519Scalar) Add(other Scalar) Scalar {
	o, ok := other.(*Ed25519Scalar)
	if !ok {
		panic("type mismatch")
	}
	return &Ed25519Scalar{s: edwards25519.NewScalar().Add(s.s, o.s)}
}

func (s *Ed25519Scalar) Equal(other Scalar) bool {
	o, ok := other.(*Ed25519Scalar)
	if !ok || o == nil {
		return false
	}
	return s.s.Equal(o.s) == 1
}

func (s *Ed25519Scalar) IsZero() bool {
	return s.s.Equal(edwards25519.NewScalar()) == 1
}

// Ed25519Point implements Point
type Ed25519Point struct {
	p *edwards25519.Point
}

func (p *Ed25519Point) Bytes() []byte {
	if p.IsIdentity() {
		return nil
	}
	return p.p.Bytes()
}

func (p *Ed25519Point) Add(other Point) Point {
	o, ok := other.(*Ed25519Point)
	if !ok {
		panic("type mismatch")
	}
	return &Ed25519Point{p: edwards25519.NewIdentityPoint().Add(p.p, o.p)}
}

func (p *Ed25519Point) ScalarMult(scalar Scalar) Point {
	s, ok := scalar.(*Ed25519Scalar)
	if !ok {
		panic("type mismatch")
	}
	return &Ed25519Point{p: edwards25519.NewIdentityPoint().ScalarMult(s.s, p.p)}
}

func (p *Ed25519Point) Equal(other Point) bool {
	o, ok := other.(*Ed25519Point)
	if !ok || o == nil {
		return false
	}
	return p.p.Equal(o.p) == 1
}

func (p *Ed25519Point) IsIdentity() bool {
	return p.p.Equal(edwards25519.NewIdentityPoint()) == 1
}
