package stealth

import (
	"encoding/hex"
	"fmt"
	"log/slog"
)

// WitnessDescriptor is what an external signer needs to prove knowledge of
// Scalar for the tuple (BaseA, BaseB, TargetA, TargetB). It lives for one spend
// attempt and must not be cached or persisted.
type WitnessDescriptor struct {
	Scalar  Scalar
	BaseA   Point // G_r
	TargetA Point // U_r
	BaseB   Point // G_y
	TargetB Point // U_y
}

// BuildWitness assembles the descriptor for p. The caller must have seen
// Detector.IsSpendable(x, p) return true; the relation is not checked again
// here and a descriptor for a foreign payload yields a proof that fails
// verification.
func BuildWitness(x Scalar, p *Payload) *WitnessDescriptor {
	return &WitnessDescriptor{
		Scalar:  x,
		BaseA:   p.Gr,
		TargetA: p.Ur,
		BaseB:   p.Gy,
		TargetB: p.Uy,
	}
}

// Payload returns the public part of the descriptor.
func (w *WitnessDescriptor) Payload() *Payload {
	return &Payload{Gr: w.BaseA, Gy: w.BaseB, Ur: w.TargetA, Uy: w.TargetB}
}

func (w *WitnessDescriptor) String() string {
	return fmt.Sprintf("WitnessDescriptor{scalar: <redacted>, baseA: %s, targetA: %s, baseB: %s, targetB: %s}",
		pointHex(w.BaseA), pointHex(w.TargetA), pointHex(w.BaseB), pointHex(w.TargetB))
}

func (w *WitnessDescriptor) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("baseA", pointHex(w.BaseA)),
		slog.String("targetA", pointHex(w.TargetA)),
		slog.String("baseB", pointHex(w.BaseB)),
		slog.String("targetB", pointHex(w.TargetB)),
	)
}

func pointHex(p Point) string {
	if p == nil {
		return "<nil>"
	}
	return hex.EncodeToString(p.Bytes())
}
