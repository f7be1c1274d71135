package stealth

import (
	"fmt"

	"github.com/smallyu/go-dht-stealth/internal/crypto/curves"
)

// Error kinds. Decode failures match ErrCurveDecode, including the typed
// *DecodeError and *RegisterError values.
var (
	ErrCurveDecode      = curves.ErrInvalidPoint
	ErrIdentityPoint    = curves.ErrIdentityPoint
	ErrInvalidScalar    = curves.ErrInvalidScalar
	ErrEntropy          = curves.ErrEntropy
	ErrUnsupportedCurve = curves.ErrUnsupportedCurve

	ErrEmptyRegister = fmt.Errorf("%w: empty register", ErrCurveDecode)
)

// DecodeError describes bytes that are not a valid point on the curve.
type DecodeError = curves.DecodeError

// RegisterError identifies which payload slot failed to decode or encode.
type RegisterError struct {
	Slot Slot
	Err  error
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("stealth: register %s: %v", e.Slot, e.Err)
}

func (e *RegisterError) Unwrap() error {
	return e.Err
}
