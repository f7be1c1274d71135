package dleq

import (
	"errors"
	"io"
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/smallyu/go-dht-stealth/internal/crypto/curves"
)

// Statement is a Diffie-Hellman tuple: the prover claims one scalar x with
// TargetA = x*BaseA and TargetB = x*BaseB.
type Statement struct {
	BaseA, TargetA curves.Point
	BaseB, TargetB curves.Point
}

// Proof is a Chaum-Pedersen proof of equality of discrete logarithms.
type Proof struct {
	CommitA curves.Point  // k * BaseA
	CommitB curves.Point  // k * BaseB
	S       curves.Scalar // k + e * x
}

var ErrMalformedStatement = errors.New("dleq: malformed statement")

// Prove generates a proof for x over st. It does not check the relation; a
// proof for a wrong x fails Verify.
func Prove(c curves.Curve, rand io.Reader, x curves.Scalar, st *Statement) (*Proof, error) {
	if x == nil || !st.valid() {
		return nil, ErrMalformedStatement
	}

	// 1. Nonce k and commitments
	k, err := c.NewScalar(rand)
	if err != nil {
		return nil, err
	}
	ra := st.BaseA.ScalarMult(k)
	rb := st.BaseB.ScalarMult(k)

	// 2. Challenge e = H(curve, statement, commitments)
	e, err := challenge(c, st, ra, rb)
	if err != nil {
		return nil, err
	}

	// 3. s = k + e * x mod n
	n := c.Order()
	s := new(big.Int).Mul(e, x.BigInt())
	s.Add(s, k.BigInt())
	s.Mod(s, n)
	sScalar, err := c.ScalarFromBigInt(s)
	if err != nil {
		return nil, err
	}

	return &Proof{CommitA: ra, CommitB: rb, S: sScalar}, nil
}

// Verify checks s*BaseA == CommitA + e*TargetA and the same for B.
func (p *Proof) Verify(c curves.Curve, st *Statement) bool {
	if p == nil || p.CommitA == nil || p.CommitB == nil || p.S == nil || !st.valid() {
		return false
	}
	e, err := challenge(c, st, p.CommitA, p.CommitB)
	if err != nil {
		return false
	}
	eScalar, err := c.ScalarFromBigInt(e)
	if err != nil {
		return false
	}

	lhsA := st.BaseA.ScalarMult(p.S)
	rhsA := p.CommitA.Add(st.TargetA.ScalarMult(eScalar))
	if !lhsA.Equal(rhsA) {
		return false
	}
	lhsB := st.BaseB.ScalarMult(p.S)
	rhsB := p.CommitB.Add(st.TargetB.ScalarMult(eScalar))
	return lhsB.Equal(rhsB)
}

func (st *Statement) valid() bool {
	return st != nil && st.BaseA != nil && st.TargetA != nil && st.BaseB != nil && st.TargetB != nil
}

// challenge hashes with blake2b-256 and reduces mod n.
func challenge(c curves.Curve, st *Statement, ra, rb curves.Point) (*big.Int, error) {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(c.Name()))
	for _, p := range []curves.Point{st.BaseA, st.TargetA, st.BaseB, st.TargetB, ra, rb} {
		b, err := c.EncodePoint(p)
		if err != nil {
			return nil, err
		}
		h.Write(b)
	}
	e := new(big.Int).SetBytes(h.Sum(nil))
	return e.Mod(e, c.Order()), nil
}
