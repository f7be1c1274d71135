package stealth

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// RegisterTypeTag is the type code of a serialized GroupElement constant. A
// register holding a payload point is this byte followed by the compressed
// point.
const RegisterTypeTag byte = 0x07

// registerTagLen is the fixed offset of the point inside a register value.
// The tag is skipped, not interpreted.
const registerTagLen = 1

// Slot is the position of a point within a payload. Slots map onto the
// non-mandatory registers R4..R7 in this order.
type Slot int

const (
	SlotGr Slot = iota
	SlotGy
	SlotUr
	SlotUy
)

func (s Slot) String() string {
	if s < SlotGr || s > SlotUy {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return fmt.Sprintf("R%d", int(s)+4)
}

// Registers holds the raw R4..R7 values of a candidate box, tag included.
type Registers [4][]byte

// StripRegisterTag drops the one-byte type tag ahead of a register's
// compressed point.
func StripRegisterTag(reg []byte) ([]byte, error) {
	if len(reg) <= registerTagLen {
		return nil, ErrEmptyRegister
	}
	return reg[registerTagLen:], nil
}

// DecodeRegister strips the type tag and decodes the point behind it.
func DecodeRegister(c Curve, reg []byte) (Point, error) {
	raw, err := StripRegisterTag(reg)
	if err != nil {
		return nil, err
	}
	return c.DecodePoint(raw)
}

// EncodeRegister returns the register value for p: RegisterTypeTag followed
// by the compressed point.
func EncodeRegister(c Curve, p Point) ([]byte, error) {
	raw, err := c.EncodePoint(p)
	if err != nil {
		return nil, err
	}
	reg := make([]byte, 0, registerTagLen+len(raw))
	reg = append(reg, RegisterTypeTag)
	return append(reg, raw...), nil
}

// RegistersFromHex parses R4..R7 as served by a node: lowercase hex with no
// 0x prefix. A 0x prefix is tolerated.
func RegistersFromHex(hexes [4]string) (Registers, error) {
	var regs Registers
	for i, h := range hexes {
		b, err := decodeHex(h)
		if err != nil {
			return Registers{}, &RegisterError{Slot: Slot(i), Err: fmt.Errorf("%w: %w", ErrCurveDecode, err)}
		}
		regs[i] = b
	}
	return regs, nil
}

// Hex renders the registers in the node's text form.
func (r Registers) Hex() [4]string {
	var out [4]string
	for i, b := range r {
		out[i] = strings.TrimPrefix(hexutil.Encode(b), "0x")
	}
	return out
}

// Payload decodes all four registers. The first failing slot is reported as
// a *RegisterError.
func (r Registers) Payload(c Curve) (*Payload, error) {
	var pts [4]Point
	for i, reg := range r {
		p, err := DecodeRegister(c, reg)
		if err != nil {
			return nil, &RegisterError{Slot: Slot(i), Err: err}
		}
		pts[i] = p
	}
	return payloadFromPoints(pts), nil
}

func decodeHex(s string) ([]byte, error) {
	s = trimHexPrefix(strings.TrimSpace(s))
	if s == "" {
		return nil, hexutil.ErrEmptyString
	}
	return hexutil.Decode("0x" + s)
}
