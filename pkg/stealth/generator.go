package stealth

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
)

// Generator builds stealth payloads on the sender side.
type Generator struct {
	curve  Curve
	rand   io.Reader
	logger log.Logger
}

// NewGenerator returns a Generator for curve c.
func NewGenerator(c Curve, opts ...Option) *Generator {
	o := buildOptions(opts)
	return &Generator{curve: c, rand: o.rand, logger: o.logger}
}

// Generate draws fresh ephemeral scalars r and y and returns the payload for
// recipient. Every call uses new scalars; a failing entropy source aborts
// with ErrEntropy.
func (g *Generator) Generate(recipient Point) (*Payload, error) {
	if err := g.checkRecipient(recipient); err != nil {
		return nil, err
	}
	r, err := g.curve.NewScalar(g.rand)
	if err != nil {
		return nil, fmt.Errorf("stealth: sample r: %w", err)
	}
	y, err := g.curve.NewScalar(g.rand)
	if err != nil {
		return nil, fmt.Errorf("stealth: sample y: %w", err)
	}
	return g.GenerateWithScalars(recipient, r, y)
}

// GenerateWithScalars builds the payload from caller-chosen r and y. The
// result is fully determined by its inputs. Reusing r or y across payments
// links them, so outside of tests use Generate.
func (g *Generator) GenerateWithScalars(recipient Point, r, y Scalar) (*Payload, error) {
	if err := g.checkRecipient(recipient); err != nil {
		return nil, err
	}
	if !g.validEphemeral(r) {
		return nil, fmt.Errorf("stealth: ephemeral r: %w", ErrInvalidScalar)
	}
	if !g.validEphemeral(y) {
		return nil, fmt.Errorf("stealth: ephemeral y: %w", ErrInvalidScalar)
	}

	base := g.curve.Generator()
	p := &Payload{
		Gr: base.ScalarMult(r),
		Gy: base.ScalarMult(y),
		Ur: recipient.ScalarMult(r),
		Uy: recipient.ScalarMult(y),
	}
	g.logger.Trace("Generated stealth payload", "curve", g.curve.Name())
	return p, nil
}

func (g *Generator) checkRecipient(recipient Point) error {
	if recipient == nil {
		return fmt.Errorf("stealth: recipient: %w", ErrIdentityPoint)
	}
	if _, err := g.curve.EncodePoint(recipient); err != nil {
		return fmt.Errorf("stealth: recipient: %w", err)
	}
	return nil
}

func (g *Generator) validEphemeral(s Scalar) bool {
	return s != nil && !s.IsZero() && ownsScalar(g.curve, s)
}
