package curves

import (
	"fmt"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1 is the curve used for on-chain stealth payloads.
type Secp256k1 struct{}

// NewSecp256k1 returns a new instance of the Secp256k1 curve wrapper
func NewSecp256k1() Curve {
	return &Secp256k1{}
}

func (c *Secp256k1) Name() string {
	return "secp256k1"
}

func (c *Secp256k1) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().N)
}

func (c *Secp256k1) PointLen() int {
	return secp256k1.PubKeyBytesLenCompressed
}

func (c *Secp256k1) Generator() Point {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	var g secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &g)
	return newSecpPoint(&g)
}

func (c *Secp256k1) Identity() Point {
	return &secpPoint{}
}

func (c *Secp256k1) NewScalar(rand io.Reader) (Scalar, error) {
	var buf [32]byte
	defer func() { buf = [32]byte{} }()

	for i := 0; i < maxSampleAttempts; i++ {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return nil, entropyError(err)
		}
		s := &secpScalar{}
		// Reject instead of reducing so the result stays uniform.
		if overflow := s.s.SetBytes(&buf); overflow != 0 || s.s.IsZero() {
			continue
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: no scalar in range after %d draws", ErrEntropy, maxSampleAttempts)
}

func (c *Secp256k1) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) > 32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidScalar, len(b))
	}
	s := &secpScalar{}
	if overflow := s.s.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("%w: not below group order", ErrInvalidScalar)
	}
	return s, nil
}

func (c *Secp256k1) ScalarFromBigInt(n *big.Int) (Scalar, error) {
	if n == nil || n.Sign() < 0 || n.Cmp(secp256k1.S256().N) >= 0 {
		return nil, fmt.Errorf("%w: out of range", ErrInvalidScalar)
	}
	var buf [32]byte
	n.FillBytes(buf[:])
	s := &secpScalar{}
	s.s.SetBytes(&buf)
	return s, nil
}

func (c *Secp256k1) DecodePoint(b []byte) (Point, error) {
	if len(b) != secp256k1.PubKeyBytesLenCompressed {
		return nil, &DecodeError{
			Curve:  c.Name(),
			Reason: fmt.Sprintf("expected %d bytes, got %d", secp256k1.PubKeyBytesLenCompressed, len(b)),
		}
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, &DecodeError{Curve: c.Name(), Reason: "malformed compressed point", Err: err}
	}
	var j secp256k1.JacobianPoint
	pub.AsJacobian(&j)
	return newSecpPoint(&j), nil
}

func (c *Secp256k1) EncodePoint(p Point) ([]byte, error) {
	sp, ok := p.(*secpPoint)
	if !ok || sp == nil {
		return nil, fmt.Errorf("%w: not a %s point", ErrInvalidPoint, c.Name())
	}
	if sp.IsIdentity() {
		return nil, ErrIdentityPoint
	}
	return sp.Bytes(), nil
}

// secpPoint holds a point normalized to affine coordinates (Z = 1), or the
// identity.
type secpPoint struct {
	p secp256k1.JacobianPoint
}

func newSecpPoint(j *secp256k1.JacobianPoint) *secpPoint {
	pt := &secpPoint{}
	pt.p.Set(j)
	pt.p.ToAffine()
	return pt
}

func (p *secpPoint) Bytes() []byte {
	if p.IsIdentity() {
		return nil
	}
	return secp256k1.NewPublicKey(&p.p.X, &p.p.Y).SerializeCompressed()
}

func (p *secpPoint) Add(other Point) Point {
	o, ok := other.(*secpPoint)
	if !ok {
		panic("type mismatch")
	}
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &o.p, &r)
	return newSecpPoint(&r)
}

func (p *secpPoint) ScalarMult(scalar Scalar) Point {
	s, ok := scalar.(*secpScalar)
	if !ok {
		panic("type mismatch")
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.s, &p.p, &r)
	return newSecpPoint(&r)
}

func (p *secpPoint) Equal(other Point) bool {
	o, ok := other.(*secpPoint)
	if !ok || o == nil {
		return false
	}
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() && o.IsIdentity()
	}
	return p.p.X.Equals(&o.p.X) && p.p.Y.Equals(&o.p.Y)
}

func (p *secpPoint) IsIdentity() bool {
	return (p.p.X.IsZero() && p.p.Y.IsZero()) || p.p.Z.IsZero()
}

type secpScalar struct {
	s secp256k1.ModNScalar
}

func (s *secpScalar) Bytes() []byte {
	b := s.s.Bytes()
	return b[:]
}

func (s *secpScalar) BigInt() *big.Int {
	b := s.s.Bytes()
	return new(big.Int).SetBytes(b[:])
}

func (s *secpScalar) Add(other Scalar) Scalar {
	o, ok := other.(*secpScalar)
	if !ok {
		panic("type mismatch")
	}
	r := &secpScalar{}
	r.s.Add2(&s.s, &o.s)
	return r
}

func (s *secpScalar) Equal(other Scalar) bool {
	o, ok := other.(*secpScalar)
	if !ok || o == nil {
		return false
	}
	return s.s.Equals(&o.s)
}

func (s *secpScalar) IsZero() bool {
	return s.s.IsZero()
}
