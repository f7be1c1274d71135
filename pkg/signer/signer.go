// Package signer shapes a stealth WitnessDescriptor for the external signing
// service. The node wallet's sign endpoint accepts extra secrets next to the
// unsigned transaction; a stealth spend supplies one Diffie-Hellman tuple
// secret per stealth input.
package signer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/smallyu/go-dht-stealth/pkg/stealth"
)

// StealthErgoTree is the compiled guard script for stealth outputs:
//
//	proveDHTuple(SELF.R4, SELF.R5, SELF.R6, SELF.R7)
//
// with each register read as a GroupElement.
const StealthErgoTree = "1000cee4c6a70407e4c6a70507e4c6a70607e4c6a70707"

var ErrNoWitness = errors.New("signer: no witness")

// DHTSecret is one proveDHTuple secret. The node proves knowledge of Secret
// such that U = Secret*G and V = Secret*H, so G/H carry the payload bases and
// U/V the matching targets.
type DHTSecret struct {
	Secret string `json:"secret"`
	G      string `json:"g"`
	H      string `json:"h"`
	U      string `json:"u"`
	V      string `json:"v"`
}

// Secrets is the "secrets" member of a sign request.
type Secrets struct {
	DHT []DHTSecret `json:"dht"`
}

// SignRequest is the body posted to the wallet's sign endpoint.
type SignRequest struct {
	Tx      json.RawMessage `json:"tx"`
	Secrets *Secrets        `json:"secrets,omitempty"`
}

// NewSecrets converts descriptors into the wire form. Points are compressed
// hex without register tags; the scalar is its canonical 32-byte hex.
func NewSecrets(c stealth.Curve, ws ...*stealth.WitnessDescriptor) (*Secrets, error) {
	if len(ws) == 0 {
		return nil, ErrNoWitness
	}
	out := &Secrets{DHT: make([]DHTSecret, 0, len(ws))}
	for i, w := range ws {
		if w == nil || w.Scalar == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNoWitness, i)
		}
		enc, err := w.Payload().Encode(c)
		if err != nil {
			return nil, fmt.Errorf("signer: witness %d: %w", i, err)
		}
		out.DHT = append(out.DHT, DHTSecret{
			Secret: toHex(w.Scalar.Bytes()),
			G:      toHex(enc[stealth.SlotGr]),
			H:      toHex(enc[stealth.SlotGy]),
			U:      toHex(enc[stealth.SlotUr]),
			V:      toHex(enc[stealth.SlotUy]),
		})
	}
	return out, nil
}

// NewSignRequest pairs an unsigned transaction with stealth secrets. secrets
// may be nil for transactions the wallet can sign on its own.
func NewSignRequest(unsignedTx json.RawMessage, secrets *Secrets) *SignRequest {
	return &SignRequest{Tx: unsignedTx, Secrets: secrets}
}

// Witnesses decodes the secrets back into descriptors. It is used by signer
// implementations that run in-process.
func (s *Secrets) Witnesses(c stealth.Curve) ([]*stealth.WitnessDescriptor, error) {
	out := make([]*stealth.WitnessDescriptor, 0, len(s.DHT))
	for i, d := range s.DHT {
		x, err := stealth.ParseScalarHex(c, d.Secret)
		if err != nil {
			return nil, fmt.Errorf("signer: secret %d: %w", i, err)
		}
		var pts [4]stealth.Point
		for slot, h := range [4]string{d.G, d.H, d.U, d.V} {
			if pts[slot], err = stealth.ParsePointHex(c, h); err != nil {
				return nil, fmt.Errorf("signer: secret %d: %w", i, &stealth.RegisterError{Slot: stealth.Slot(slot), Err: err})
			}
		}
		p := &stealth.Payload{Gr: pts[0], Gy: pts[1], Ur: pts[2], Uy: pts[3]}
		out = append(out, stealth.BuildWitness(x, p))
	}
	return out, nil
}

// Signer is the external proving collaborator. It returns the signed
// transaction as produced by the service; the result is not interpreted.
type Signer interface {
	Sign(ctx context.Context, req *SignRequest) (json.RawMessage, error)
}

// SignerFunc adapts a function to Signer.
type SignerFunc func(ctx context.Context, req *SignRequest) (json.RawMessage, error)

func (f SignerFunc) Sign(ctx context.Context, req *SignRequest) (json.RawMessage, error) {
	return f(ctx, req)
}

// SignStealthSpend builds the request for a spend of one or more recognized
// stealth outputs and hands it to s. The secrets exist only for the duration
// of the call.
func SignStealthSpend(ctx context.Context, s Signer, c stealth.Curve, unsignedTx json.RawMessage, ws ...*stealth.WitnessDescriptor) (json.RawMessage, error) {
	secrets, err := NewSecrets(c, ws...)
	if err != nil {
		return nil, err
	}
	signed, err := s.Sign(ctx, NewSignRequest(unsignedTx, secrets))
	if err != nil {
		return nil, fmt.Errorf("signer: sign stealth spend: %w", err)
	}
	return signed, nil
}

func toHex(b []byte) string {
	return strings.TrimPrefix(hexutil.Encode(b), "0x")
}
