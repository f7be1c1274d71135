package stealth

import (
	"encoding/hex"
	"testing"
)

func FuzzScanRegisters(f *testing.F) {
	reg, _ := hex.DecodeString(nodeRegisterHex)
	f.Add(reg, reg, reg, reg)
	f.Add([]byte{}, []byte{0x07}, []byte{0x07, 0x02}, reg[:20])
	f.Add(make([]byte, 34), reg, make([]byte, 33), reg)

	c := Secp256k1()
	det := NewDetector(c, quietOpts()...)
	kp := mustKeyPair(f, c)

	f.Fuzz(func(t *testing.T, r4, r5, r6, r7 []byte) {
		regs := Registers{r4, r5, r6, r7}

		ok, err := det.CheckRegisters(kp.Secret(), regs)
		if err != nil && ok {
			t.Fatal("malformed registers reported as spendable")
		}
		if det.ScanRegisters(kp.Secret(), regs) != ok {
			t.Fatal("ScanRegisters disagrees with CheckRegisters")
		}

		// Anything that decodes must survive a register round trip.
		if p, err := regs.Payload(c); err == nil {
			back, err := p.Registers(c)
			if err != nil {
				t.Fatalf("re-encode: %v", err)
			}
			q, err := back.Payload(c)
			if err != nil || !q.Equal(p) {
				t.Fatalf("round trip mismatch: %v", err)
			}
		}
	})
}
