package stealth

// Payload is the public four-point structure stored with a stealth output.
// It is spendable by the key x with Ur == x*Gr and Uy == x*Gy.
type Payload struct {
	Gr Point // r*G, register R4
	Gy Point // y*G, register R5
	Ur Point // r*U, register R6
	Uy Point // y*U, register R7
}

func payloadFromPoints(pts [4]Point) *Payload {
	return &Payload{Gr: pts[SlotGr], Gy: pts[SlotGy], Ur: pts[SlotUr], Uy: pts[SlotUy]}
}

// Points returns the points in slot order.
func (p *Payload) Points() [4]Point {
	return [4]Point{p.Gr, p.Gy, p.Ur, p.Uy}
}

// Equal compares payloads point by point on curve coordinates.
func (p *Payload) Equal(o *Payload) bool {
	if p == nil || o == nil {
		return p == o
	}
	a, b := p.Points(), o.Points()
	for i := range a {
		if a[i] == nil || b[i] == nil || !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Encode returns the compressed encoding of each point in slot order.
func (p *Payload) Encode(c Curve) ([4][]byte, error) {
	var out [4][]byte
	for i, pt := range p.Points() {
		if pt == nil {
			return [4][]byte{}, &RegisterError{Slot: Slot(i), Err: ErrIdentityPoint}
		}
		b, err := c.EncodePoint(pt)
		if err != nil {
			return [4][]byte{}, &RegisterError{Slot: Slot(i), Err: err}
		}
		out[i] = b
	}
	return out, nil
}

// DecodePayload decodes four compressed points given without register tags.
func DecodePayload(c Curve, enc [4][]byte) (*Payload, error) {
	var pts [4]Point
	for i, b := range enc {
		pt, err := c.DecodePoint(b)
		if err != nil {
			return nil, &RegisterError{Slot: Slot(i), Err: err}
		}
		pts[i] = pt
	}
	return payloadFromPoints(pts), nil
}

// Registers returns the tagged R4..R7 values for the payload.
func (p *Payload) Registers(c Curve) (Registers, error) {
	var regs Registers
	for i, pt := range p.Points() {
		if pt == nil {
			return Registers{}, &RegisterError{Slot: Slot(i), Err: ErrIdentityPoint}
		}
		reg, err := EncodeRegister(c, pt)
		if err != nil {
			return Registers{}, &RegisterError{Slot: Slot(i), Err: err}
		}
		regs[i] = reg
	}
	return regs, nil
}
