package stealth

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/smallyu/go-dht-stealth/internal/keys"
)

// KeyPair is a recipient's long-term stealth identity: a secret scalar x and
// its public point X = x*G. Only the public half is ever rendered by String
// or the logger.
type KeyPair struct {
	curve  Curve
	secret Scalar
	public Point
}

// NewKeyPair wraps a secret obtained from a key-derivation collaborator.
func NewKeyPair(c Curve, x Scalar) (*KeyPair, error) {
	if x == nil || x.IsZero() {
		return nil, fmt.Errorf("%w: secret is zero", ErrInvalidScalar)
	}
	if !ownsScalar(c, x) {
		return nil, fmt.Errorf("%w: secret does not belong to %s", ErrInvalidScalar, c.Name())
	}
	return &KeyPair{curve: c, secret: x, public: c.Generator().ScalarMult(x)}, nil
}

// GenerateKeyPair draws a fresh secret from rand.
func GenerateKeyPair(c Curve, rand io.Reader) (*KeyPair, error) {
	x, err := c.NewScalar(rand)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(c, x)
}

// KeyPairFromMnemonic derives the secret as a node wallet does: BIP39 seed,
// then the BIP32 key at path (nil for the master key). Only secp256k1
// supports BIP32.
func KeyPairFromMnemonic(c Curve, mnemonic, passphrase string, path []uint32) (*KeyPair, error) {
	if c.Name() != "secp256k1" {
		return nil, fmt.Errorf("%w: bip32 derivation on %s", ErrUnsupportedCurve, c.Name())
	}
	seed, err := keys.SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	raw, err := keys.DeriveSecret(seed, path)
	if err != nil {
		return nil, err
	}
	x, err := c.ScalarFromBytes(raw)
	clear(raw)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(c, x)
}

func (k *KeyPair) Curve() Curve { return k.curve }

// Secret returns x. Callers pass it straight to a Detector or BuildWitness.
func (k *KeyPair) Secret() Scalar { return k.secret }

// Public returns X = x*G, the value a sender needs.
func (k *KeyPair) Public() Point { return k.public }

// PublicHex returns the compressed public point in hex.
func (k *KeyPair) PublicHex() string {
	return hex.EncodeToString(k.public.Bytes())
}

func (k *KeyPair) String() string {
	return fmt.Sprintf("KeyPair{curve: %s, public: %s}", k.curve.Name(), k.PublicHex())
}

func (k *KeyPair) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("curve", k.curve.Name()),
		slog.String("public", k.PublicHex()),
	)
}

// ownsScalar reports whether x is a scalar of curve c.
func ownsScalar(c Curve, x Scalar) bool {
	s, err := c.ScalarFromBytes(x.Bytes())
	return err == nil && s.Equal(x)
}
