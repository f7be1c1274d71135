package signer

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"

	"github.com/smallyu/go-dht-stealth/internal/crypto/zk/dleq"
	"github.com/smallyu/go-dht-stealth/internal/logging"
	"github.com/smallyu/go-dht-stealth/pkg/stealth"
)

var ErrBadProof = errors.New("signer: proof does not verify")

// TupleProof is a non-interactive proof that one secret links both halves
// of a stealth payload. All fields are hex.
type TupleProof struct {
	CommitA  string `json:"commitA"`
	CommitB  string `json:"commitB"`
	Response string `json:"response"`
}

// ProvenTx is what LocalProver returns: the untouched transaction plus one
// proof per secret, in request order.
type ProvenTx struct {
	Tx     json.RawMessage `json:"tx"`
	Proofs []TupleProof    `json:"proofs"`
}

// LocalProver is an in-process Signer. It does not produce a ledger
// signature; it proves each DH tuple with a Chaum-Pedersen proof, which lets
// a wallet check a witness before handing it to the node.
type LocalProver struct {
	curve  stealth.Curve
	rand   io.Reader
	logger log.Logger
}

func NewLocalProver(c stealth.Curve) *LocalProver {
	return &LocalProver{curve: c, rand: rand.Reader, logger: logging.Module("signer")}
}

func (p *LocalProver) Sign(ctx context.Context, req *SignRequest) (json.RawMessage, error) {
	if req == nil || req.Secrets == nil || len(req.Secrets.DHT) == 0 {
		return nil, ErrNoWitness
	}
	ws, err := req.Secrets.Witnesses(p.curve)
	if err != nil {
		return nil, err
	}
	out := ProvenTx{Tx: req.Tx, Proofs: make([]TupleProof, 0, len(ws))}
	for i, w := range ws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		proof, err := dleq.Prove(p.curve, p.rand, w.Scalar, statement(w))
		if err != nil {
			return nil, fmt.Errorf("signer: prove secret %d: %w", i, err)
		}
		tp, err := encodeProof(p.curve, proof)
		if err != nil {
			return nil, fmt.Errorf("signer: encode proof %d: %w", i, err)
		}
		out.Proofs = append(out.Proofs, tp)
	}
	p.logger.Debug("Proved stealth tuples", "count", len(out.Proofs))
	return json.Marshal(out)
}

// VerifyProvenTx checks every proof in raw against payloads, in order.
func VerifyProvenTx(c stealth.Curve, raw json.RawMessage, payloads ...*stealth.Payload) error {
	var tx ProvenTx
	if err := json.Unmarshal(raw, &tx); err != nil {
		return fmt.Errorf("signer: decode proven tx: %w", err)
	}
	if len(tx.Proofs) != len(payloads) {
		return fmt.Errorf("%w: %d proofs for %d payloads", ErrBadProof, len(tx.Proofs), len(payloads))
	}
	for i, tp := range tx.Proofs {
		proof, err := decodeProof(c, tp)
		if err != nil {
			return fmt.Errorf("signer: proof %d: %w", i, err)
		}
		st := statement(&stealth.WitnessDescriptor{
			BaseA: payloads[i].Gr, TargetA: payloads[i].Ur,
			BaseB: payloads[i].Gy, TargetB: payloads[i].Uy,
		})
		if !proof.Verify(c, st) {
			return fmt.Errorf("%w: index %d", ErrBadProof, i)
		}
	}
	return nil
}

func statement(w *stealth.WitnessDescriptor) *dleq.Statement {
	return &dleq.Statement{BaseA: w.BaseA, TargetA: w.TargetA, BaseB: w.BaseB, TargetB: w.TargetB}
}

func encodeProof(c stealth.Curve, p *dleq.Proof) (TupleProof, error) {
	a, err := c.EncodePoint(p.CommitA)
	if err != nil {
		return TupleProof{}, err
	}
	b, err := c.EncodePoint(p.CommitB)
	if err != nil {
		return TupleProof{}, err
	}
	return TupleProof{CommitA: toHex(a), CommitB: toHex(b), Response: toHex(p.S.Bytes())}, nil
}

func decodeProof(c stealth.Curve, tp TupleProof) (*dleq.Proof, error) {
	a, err := stealth.ParsePointHex(c, tp.CommitA)
	if err != nil {
		return nil, err
	}
	b, err := stealth.ParsePointHex(c, tp.CommitB)
	if err != nil {
		return nil, err
	}
	s, err := stealth.ParseScalarHex(c, tp.Response)
	if err != nil {
		return nil, err
	}
	return &dleq.Proof{CommitA: a, CommitB: b, S: s}, nil
}
