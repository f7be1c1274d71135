package stealth

import (
	"runtime"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
)

// Detector recognizes payloads addressed to a secret scalar.
type Detector struct {
	curve  Curve
	logger log.Logger
}

// NewDetector returns a Detector for curve c.
func NewDetector(c Curve, opts ...Option) *Detector {
	o := buildOptions(opts)
	return &Detector{curve: c, logger: o.logger}
}

// IsSpendable reports whether x*Gr == Ur and x*Gy == Uy. Both relations must
// hold for the same x, which is exactly what the guarding proveDHTuple
// script checks. A zero x, a missing or identity point, or a point of another
// curve yields false.
func (d *Detector) IsSpendable(x Scalar, p *Payload) bool {
	if x == nil || x.IsZero() || p == nil || !ownsScalar(d.curve, x) {
		return false
	}
	for _, pt := range p.Points() {
		if pt == nil {
			return false
		}
		if _, err := d.curve.EncodePoint(pt); err != nil {
			return false
		}
	}
	return p.Gr.ScalarMult(x).Equal(p.Ur) && p.Gy.ScalarMult(x).Equal(p.Uy)
}

// CheckRegisters decodes raw R4..R7 values and tests them against x. Unlike
// ScanRegisters it reports malformed registers as a *RegisterError, so callers
// can tell "not ours" from "not a stealth payload".
func (d *Detector) CheckRegisters(x Scalar, regs Registers) (bool, error) {
	p, err := regs.Payload(d.curve)
	if err != nil {
		return false, err
	}
	return d.IsSpendable(x, p), nil
}

// ScanRegisters is CheckRegisters for scanning loops: boxes with malformed
// registers are common on a shared ledger and simply count as not spendable.
func (d *Detector) ScanRegisters(x Scalar, regs Registers) bool {
	ok, err := d.CheckRegisters(x, regs)
	if err != nil {
		d.logger.Debug("Skipping box with malformed stealth registers", "err", err)
		return false
	}
	return ok
}

// Scan checks candidates concurrently and returns the indices of the
// spendable ones in ascending order.
func (d *Detector) Scan(x Scalar, candidates []Registers) []int {
	hits := make([]bool, len(candidates))

	// errgroup only bounds concurrency here; workers never fail.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range candidates {
		i := i
		g.Go(func() error {
			hits[i] = d.ScanRegisters(x, candidates[i])
			return nil
		})
	}
	g.Wait()

	var out []int
	for i, hit := range hits {
		if hit {
			out = append(out, i)
		}
	}
	d.logger.Debug("Scanned stealth candidates", "candidates", len(candidates), "spendable", len(out))
	return out
}
